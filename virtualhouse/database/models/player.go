package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Player is a single economy participant, keyed by the platform-assigned
// Discord ID. Records are created lazily on first interaction and never
// deleted.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID      string `bun:"id,pk"`
	Balance int64  `bun:"balance,notnull,default:0"`
	Level   int    `bun:"level,notnull,default:1"`
	Exp     int64  `bun:"exp,notnull,default:0"`

	// LastWorkTime is nil until the player works for the first time.
	LastWorkTime *time.Time `bun:"last_work_time"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
