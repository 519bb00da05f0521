package game

import (
	"math"
	"time"

	"github.com/acmavirus/Virtual-House/virtualhouse/config"
	"github.com/acmavirus/Virtual-House/virtualhouse/database/models"
)

// RentRate returns the currency generated per second by a property at its
// current level and rarity, before condition wear. An unknown land type
// yields 0.
func RentRate(p *models.Property) float64 {
	land, ok := LookupLand(p.LandType)
	if !ok {
		return 0
	}
	rate := land.BaseRent * math.Pow(config.RentLevelGrowth, float64(p.Level-1))
	if p.IsGold {
		rate *= 2
	}
	return rate
}

// PendingRent returns the whole-currency rent accrued on p since its last
// collection, as of now. Condition scales the rate linearly. Non-positive
// elapsed time (clock skew, freshly reset window) yields 0. Pure: calling
// it twice with the same inputs gives the same answer.
func PendingRent(p *models.Property, now time.Time) int64 {
	seconds := now.Sub(p.LastCollectTime).Seconds()
	if seconds <= 0 {
		return 0
	}
	rent := RentRate(p) * seconds * (float64(p.Condition) / 100)
	if rent <= 0 {
		return 0
	}
	return int64(math.Floor(rent))
}

// UpgradeCost is floor(price * 0.5 * currentLevel).
func UpgradeCost(land Land, level int) int64 {
	return int64(math.Floor(float64(land.Price) * config.UpgradeCostRate * float64(level)))
}

// RepairCost charges per missing condition point.
func RepairCost(condition int) int64 {
	return int64(100-condition) * config.RepairCostPerPoint
}

// SellRefund is floor(price * 0.75). Pending rent is not part of the
// refund; an uncollected window is forfeited on sale.
func SellRefund(land Land) int64 {
	return int64(math.Floor(float64(land.Price) * config.SellRefundRate))
}

// WorkExp scales with player level.
func WorkExp(level int) int64 {
	return int64(10 + level*2)
}

// BuyExp grants price/100, clamped to [50, 500].
func BuyExp(price int64) int64 {
	return clampExp(price / 100)
}

// UpgradeExp grants cost/50, clamped to [50, 500].
func UpgradeExp(cost int64) int64 {
	return clampExp(cost / 50)
}

func clampExp(v int64) int64 {
	if v < config.ActionExpMin {
		return config.ActionExpMin
	}
	if v > config.ActionExpMax {
		return config.ActionExpMax
	}
	return v
}

func wearDown(condition int) int {
	condition -= config.CollectWear
	if condition < 0 {
		return 0
	}
	return condition
}
