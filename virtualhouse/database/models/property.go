package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Property is a single owned piece of land. LandType keys into the static
// catalog and is immutable after creation, as is IsGold. LastCollectTime
// marks the start of the currently uncollected accrual window and is reset
// on every collection, including the implicit one performed by an upgrade.
type Property struct {
	bun.BaseModel `bun:"table:properties,alias:pr"`

	ID       int64  `bun:"id,pk,autoincrement"`
	OwnerID  string `bun:"owner_id,notnull"`
	LandType string `bun:"land_type,notnull"`

	Level     int  `bun:"level,notnull,default:1"`
	Condition int  `bun:"condition,notnull,default:100"`
	IsGold    bool `bun:"is_gold,notnull,default:false"`

	LastCollectTime time.Time `bun:"last_collect_time,notnull,default:current_timestamp"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
