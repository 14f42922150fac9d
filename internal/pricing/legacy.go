package pricing

// defaultUnitPrice is the global last-resort unit price when a product id is
// absent from the legacy table.
const defaultUnitPrice = 5300

// legacyUnitPrices carries per-product unit prices for catalog rows that
// predate tiered pricing.
//
// Deprecated: this table exists only so quotations against legacy catalog
// ids keep pricing; it goes away once those rows are backfilled with
// override data. Do not add entries.
var legacyUnitPrices = map[string]float64{
	"P1R-IND-09":  42000,
	"P1R-IND-125": 36500,
	"P2S-IND-15":  31800,
	"P2S-IND-18":  28700,
	"P3S-IND-25":  19400,
	"P3S-IND-30":  16200,
	"P6F-OUT-40":  13900,
	"P6F-OUT-60":  11200,
	"P8F-OUT-80":  9600,
	"P9F-OUT-100": 8300,
}

// legacyFallbackPrice looks up the deprecated per-id price table.
func legacyFallbackPrice(productID string) (float64, bool) {
	price, ok := legacyUnitPrices[productID]
	return price, ok
}
