package catalog

// Environment enumerates installation environments.
type Environment string

const (
	EnvironmentIndoor  Environment = "Indoor"
	EnvironmentOutdoor Environment = "Outdoor"
)

// CustomerTier enumerates pricing tiers.
type CustomerTier string

const (
	TierEndUser  CustomerTier = "endUser"
	TierReseller CustomerTier = "reseller"
	TierChannel  CustomerTier = "siChannel"
)

// PricingKind tags the pricing variant carried by a product.
type PricingKind string

const (
	PricingFlat   PricingKind = "FLAT"
	PricingRental PricingKind = "RENTAL"
)

// FlatPrices holds per-tier unit prices. Nil means the tier has no
// dedicated price and pricing falls through to the next precedence step.
type FlatPrices struct {
	Base     *float64
	Reseller *float64
	Channel  *float64
	// Generic is the legacy untyped price field, coerced from a numeric
	// string at load time when necessary.
	Generic *float64
}

// RentalPrices holds per-tier unit prices for rental-style products.
type RentalPrices struct {
	EndCustomer float64
	Reseller    float64
	Channel     float64
}

// ProductPricing is the tagged variant selected at load time. Exactly one of
// Flat or Rental is set, matching Kind.
type ProductPricing struct {
	Kind   PricingKind
	Flat   *FlatPrices
	Rental *RentalPrices
}

// Product is an immutable catalog record.
type Product struct {
	ID          string
	Name        string
	PixelPitch  float64 // mm, always > 0
	Environment Environment
	Category    string
	SubType     string // e.g. SMD or COB; empty means derive from Name
	Enabled     bool
	Pricing     ProductPricing
}

// TierPrice returns the rental unit price for a tier.
func (r RentalPrices) TierPrice(tier CustomerTier) float64 {
	switch tier {
	case TierReseller:
		return r.Reseller
	case TierChannel:
		return r.Channel
	default:
		return r.EndCustomer
	}
}

// TierPrice returns the flat unit price for a tier, or nil when the tier has
// no dedicated price.
func (f FlatPrices) TierPrice(tier CustomerTier) *float64 {
	switch tier {
	case TierReseller:
		return f.Reseller
	case TierChannel:
		return f.Channel
	default:
		return f.Base
	}
}
