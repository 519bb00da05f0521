package game

import (
	"testing"
	"time"

	"github.com/acmavirus/Virtual-House/virtualhouse/database/models"
)

var rentEpoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newProperty(landType LandType, level, condition int, gold bool, lastCollect time.Time) *models.Property {
	return &models.Property{
		ID:              1,
		OwnerID:         "123",
		LandType:        string(landType),
		Level:           level,
		Condition:       condition,
		IsGold:          gold,
		LastCollectTime: lastCollect,
	}
}

func TestRentRateMonotonicInLevel(t *testing.T) {
	prev := 0.0
	for level := 1; level <= 10; level++ {
		rate := RentRate(newProperty(LandSuburbs, level, 100, false, rentEpoch))
		if rate <= prev {
			t.Fatalf("rate at level %d = %f, not greater than level %d rate %f", level, rate, level-1, prev)
		}
		prev = rate
	}
}

func TestRentRateGoldDoublesExactly(t *testing.T) {
	for _, landType := range CatalogOrder {
		base := RentRate(newProperty(landType, 3, 100, false, rentEpoch))
		gold := RentRate(newProperty(landType, 3, 100, true, rentEpoch))
		if gold != base*2 {
			t.Errorf("%s: gold rate %f, want exactly %f", landType, gold, base*2)
		}
	}
}

func TestRentRateUnknownLandType(t *testing.T) {
	if rate := RentRate(newProperty("volcano_fortress", 1, 100, false, rentEpoch)); rate != 0 {
		t.Errorf("unknown land type rate = %f, want 0", rate)
	}
}

func TestPendingRent(t *testing.T) {
	tests := []struct {
		name     string
		property *models.Property
		now      time.Time
		want     int64
	}{
		{
			// suburbs at base rate 0.5/s for 100s at full condition
			name:     "suburbs 100 seconds",
			property: newProperty(LandSuburbs, 1, 100, false, rentEpoch),
			now:      rentEpoch.Add(100 * time.Second),
			want:     50,
		},
		{
			name:     "zero elapsed",
			property: newProperty(LandSuburbs, 1, 100, false, rentEpoch),
			now:      rentEpoch,
			want:     0,
		},
		{
			name:     "clock skew yields zero",
			property: newProperty(LandSuburbs, 1, 100, false, rentEpoch),
			now:      rentEpoch.Add(-10 * time.Second),
			want:     0,
		},
		{
			name:     "condition halves the take",
			property: newProperty(LandSuburbs, 1, 50, false, rentEpoch),
			now:      rentEpoch.Add(100 * time.Second),
			want:     25,
		},
		{
			name:     "zero condition accrues nothing",
			property: newProperty(LandPrivateIsland, 1, 0, false, rentEpoch),
			now:      rentEpoch.Add(time.Hour),
			want:     0,
		},
		{
			name:     "unknown land type accrues nothing",
			property: newProperty("volcano_fortress", 1, 100, false, rentEpoch),
			now:      rentEpoch.Add(time.Hour),
			want:     0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PendingRent(tt.property, tt.now); got != tt.want {
				t.Errorf("PendingRent = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPendingRentMonotonicInElapsedTime(t *testing.T) {
	p := newProperty(LandPrimeLocation, 2, 80, false, rentEpoch)
	prev := int64(-1)
	for _, elapsed := range []time.Duration{0, time.Second, time.Minute, time.Hour, 24 * time.Hour} {
		got := PendingRent(p, rentEpoch.Add(elapsed))
		if got < prev {
			t.Fatalf("pending rent decreased from %d to %d at elapsed %s", prev, got, elapsed)
		}
		prev = got
	}
}

func TestUpgradeCost(t *testing.T) {
	tests := []struct {
		landType LandType
		level    int
		want     int64
	}{
		{LandSuburbs, 1, 1250},
		{LandSuburbs, 2, 2500},
		{LandPrimeLocation, 3, 15000},
		{LandEmptyLot, 1, 250},
	}
	for _, tt := range tests {
		land := Catalog[tt.landType]
		if got := UpgradeCost(land, tt.level); got != tt.want {
			t.Errorf("UpgradeCost(%s, %d) = %d, want %d", tt.landType, tt.level, got, tt.want)
		}
	}
}

func TestRepairCost(t *testing.T) {
	tests := []struct {
		condition int
		want      int64
	}{
		{95, 50},
		{50, 500},
		{0, 1000},
	}
	for _, tt := range tests {
		if got := RepairCost(tt.condition); got != tt.want {
			t.Errorf("RepairCost(%d) = %d, want %d", tt.condition, got, tt.want)
		}
	}
}

func TestSellRefund(t *testing.T) {
	if got := SellRefund(Catalog[LandPrimeLocation]); got != 7500 {
		t.Errorf("SellRefund(prime_location) = %d, want 7500", got)
	}
	if got := SellRefund(Catalog[LandEmptyLot]); got != 375 {
		t.Errorf("SellRefund(empty_lot) = %d, want 375", got)
	}
}

func TestExpGrantClamps(t *testing.T) {
	if got := BuyExp(10000); got != 100 {
		t.Errorf("BuyExp(10000) = %d, want 100", got)
	}
	if got := BuyExp(500); got != 50 {
		t.Errorf("BuyExp(500) = %d, want clamp floor 50", got)
	}
	if got := BuyExp(100000); got != 500 {
		t.Errorf("BuyExp(100000) = %d, want clamp ceiling 500", got)
	}
	if got := UpgradeExp(1250); got != 50 {
		t.Errorf("UpgradeExp(1250) = %d, want clamp floor 50", got)
	}
	if got := UpgradeExp(50000); got != 500 {
		t.Errorf("UpgradeExp(50000) = %d, want clamp ceiling 500", got)
	}
}

func TestCatalog(t *testing.T) {
	if len(Catalog) != 4 {
		t.Fatalf("catalog has %d entries, want 4", len(Catalog))
	}
	var prevPrice int64
	for _, landType := range CatalogOrder {
		land, ok := Catalog[landType]
		if !ok {
			t.Fatalf("CatalogOrder entry %s missing from catalog", landType)
		}
		if land.Price <= prevPrice {
			t.Errorf("%s price %d does not escalate past %d", landType, land.Price, prevPrice)
		}
		prevPrice = land.Price
	}
	if _, ok := LookupLand("volcano_fortress"); ok {
		t.Error("LookupLand accepted an unknown key")
	}
}
