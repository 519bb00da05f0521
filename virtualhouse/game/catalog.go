package game

// LandType keys the static catalog of purchasable property kinds. The set
// is closed; any string outside it is a validation error for every consumer.
type LandType string

const (
	LandEmptyLot      LandType = "empty_lot"
	LandSuburbs       LandType = "suburbs"
	LandPrimeLocation LandType = "prime_location"
	LandPrivateIsland LandType = "private_island"
)

// Land holds the economic parameters of one catalog entry. BaseRent is
// currency generated per second at level 1 and full condition.
type Land struct {
	Name     string
	Price    int64
	BaseRent float64
	Emoji    string
}

// Catalog is loaded once at process start and never mutated at runtime.
var Catalog = map[LandType]Land{
	LandEmptyLot:      {Name: "Empty Lot", Price: 500, BaseRent: 0.1, Emoji: "🌱"},
	LandSuburbs:       {Name: "Suburbs", Price: 2500, BaseRent: 0.5, Emoji: "🏡"},
	LandPrimeLocation: {Name: "Prime Location", Price: 10000, BaseRent: 2.0, Emoji: "🏢"},
	LandPrivateIsland: {Name: "Private Island", Price: 100000, BaseRent: 20.0, Emoji: "🏝️"},
}

// CatalogOrder fixes the display order, cheapest first.
var CatalogOrder = []LandType{
	LandEmptyLot,
	LandSuburbs,
	LandPrimeLocation,
	LandPrivateIsland,
}

// LookupLand validates a free-form key against the catalog.
func LookupLand(key string) (Land, bool) {
	land, ok := Catalog[LandType(key)]
	return land, ok
}
