package pricing

import (
	"fmt"

	"github.com/lumengrid/lumengrid-quote/internal/catalog"
	"github.com/lumengrid/lumengrid-quote/internal/shared"
)

// CabinetGrid is the columns x rows arrangement of display cabinets.
type CabinetGrid struct {
	Columns int `json:"columns"`
	Rows    int `json:"rows"`
}

// Quantity returns the cabinet count, never below one.
func (g CabinetGrid) Quantity() int {
	q := g.Columns * g.Rows
	if q < 1 {
		return 1
	}
	return q
}

// PriceInput collects everything the calculator needs for one breakdown.
// Structure and installation costs are computed by an external estimator and
// pass through verbatim, taxed like every other component.
type PriceInput struct {
	Product          catalog.Product
	Grid             CabinetGrid
	Processor        string // empty means no processor selected
	Tier             catalog.CustomerTier
	StructureCost    float64
	InstallationCost float64
	// Override is an explicit unit price for this exact product and tier,
	// taking precedence over every catalog-derived price.
	Override *float64
}

// Calculator produces cost breakdowns. It is pure and safe for concurrent
// use; every invocation depends only on its input.
type Calculator struct{}

// NewCalculator builds a Calculator.
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Price computes the complete breakdown for the input. It returns a
// validation error for an unknown processor selection rather than silently
// pricing it at zero.
func (c *Calculator) Price(in PriceInput) (Breakdown, error) {
	quantity := in.Grid.Quantity()

	unitPrice, ok := resolveUnitPrice(in.Product, in.Tier, in.Override)
	if !ok || unitPrice <= 0 {
		// The fallback chain never yields zero; this covers direct callers.
		return Breakdown{
			ProductName:   in.Product.Name,
			UserTypeLabel: TierLabel(in.Tier),
			IsAvailable:   false,
		}, nil
	}

	var processorPrice float64
	if in.Processor != "" {
		price, err := ProcessorPrice(in.Processor, in.Tier)
		if err != nil {
			return Breakdown{}, err
		}
		processorPrice = price
	}

	b := Breakdown{
		UnitPrice:        Round(unitPrice),
		Quantity:         quantity,
		ProcessorPrice:   Round(processorPrice),
		StructureCost:    Round(in.StructureCost),
		InstallationCost: Round(in.InstallationCost),
		UserTypeLabel:    TierLabel(in.Tier),
		ProductName:      in.Product.Name,
		IsAvailable:      true,
	}

	b.ProductSubtotal, b.ProductGST, b.ProductTotal = component(unitPrice * float64(quantity))

	var procGST, procTotal float64
	if processorPrice > 0 {
		_, procGST, procTotal = component(processorPrice)
	}
	b.ProcessorGST, b.ProcessorTotal = procGST, procTotal

	if in.StructureCost > 0 {
		_, b.StructureGST, b.StructureTotal = component(in.StructureCost)
	}
	if in.InstallationCost > 0 {
		_, b.InstallationGST, b.InstallationTotal = component(in.InstallationCost)
	}

	b.GrandTotal = b.ProductTotal + b.ProcessorTotal + b.StructureTotal + b.InstallationTotal
	return b, nil
}

// resolveUnitPrice walks the unit price precedence chain:
// explicit override, rental tier price, flat tier price, legacy generic
// price, per-id fallback table, global constant.
func resolveUnitPrice(p catalog.Product, tier catalog.CustomerTier, override *float64) (float64, bool) {
	if override != nil && *override > 0 {
		return *override, true
	}
	switch p.Pricing.Kind {
	case catalog.PricingRental:
		if p.Pricing.Rental != nil {
			if price := p.Pricing.Rental.TierPrice(tier); price > 0 {
				return price, true
			}
		}
	case catalog.PricingFlat:
		if p.Pricing.Flat != nil {
			if price := p.Pricing.Flat.TierPrice(tier); price != nil && *price > 0 {
				return *price, true
			}
			if p.Pricing.Flat.Generic != nil && *p.Pricing.Flat.Generic > 0 {
				return *p.Pricing.Flat.Generic, true
			}
		}
	}
	if price, ok := legacyFallbackPrice(p.ID); ok {
		return price, true
	}
	return defaultUnitPrice, true
}

// TierLabel is the display label for a customer tier.
func TierLabel(tier catalog.CustomerTier) string {
	switch tier {
	case catalog.TierReseller:
		return "Reseller"
	case catalog.TierChannel:
		return "SI Channel"
	default:
		return "End User"
	}
}

// tierPrices holds one price per customer tier.
type tierPrices struct {
	endUser  float64
	reseller float64
	channel  float64
}

func (t tierPrices) forTier(tier catalog.CustomerTier) float64 {
	switch tier {
	case catalog.TierReseller:
		return t.reseller
	case catalog.TierChannel:
		return t.channel
	default:
		return t.endUser
	}
}

// processorPrices maps controller/processor names to tier prices.
var processorPrices = map[string]tierPrices{
	"VX400":    {endUser: 55000, reseller: 50000, channel: 47000},
	"VX600":    {endUser: 75000, reseller: 69000, channel: 65000},
	"VX1000":   {endUser: 110000, reseller: 100000, channel: 95000},
	"MCTRL300": {endUser: 28000, reseller: 25000, channel: 23500},
	"MCTRL600": {endUser: 42000, reseller: 38000, channel: 36000},
	"TB40":     {endUser: 24000, reseller: 21500, channel: 20000},
	"TB60":     {endUser: 33000, reseller: 30000, channel: 28000},
}

// ProcessorPrice resolves a processor selection to its tier price.
func ProcessorPrice(name string, tier catalog.CustomerTier) (float64, error) {
	prices, ok := processorPrices[name]
	if !ok {
		return 0, fmt.Errorf("%w: unknown processor %q", shared.ErrValidation, name)
	}
	return prices.forTier(tier), nil
}
