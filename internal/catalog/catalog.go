package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
)

var (
	// ErrEmptyCatalog indicates the loaded catalog holds no products.
	ErrEmptyCatalog = errors.New("catalog: no products loaded")
	// ErrProductNotFound indicates the product id is not in the catalog.
	ErrProductNotFound = errors.New("catalog: product not found")
)

// Catalog is an immutable, in-memory product table loaded once at startup.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds a catalog from the given products. The slice is copied; callers
// cannot mutate the catalog afterwards.
func New(products []Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: product at index %d has no id", i)
		}
		if p.PixelPitch <= 0 {
			return nil, fmt.Errorf("catalog: product %s has non-positive pixel pitch", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %s", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// Products returns a copy of all catalog products.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// DistinctPitches returns the sorted distinct pixel pitches among enabled
// products, optionally restricted to an environment.
func (c *Catalog) DistinctPitches(env *Environment) []float64 {
	seen := make(map[float64]struct{})
	var pitches []float64
	for _, p := range c.products {
		if !p.Enabled {
			continue
		}
		if env != nil && p.Environment != *env {
			continue
		}
		if _, ok := seen[p.PixelPitch]; ok {
			continue
		}
		seen[p.PixelPitch] = struct{}{}
		pitches = append(pitches, p.PixelPitch)
	}
	sort.Float64s(pitches)
	return pitches
}

// productFile is the JSON shape of the catalog seed file.
type productFile struct {
	Products []productRecord `json:"products"`
}

type productRecord struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	PixelPitch    float64         `json:"pixel_pitch"`
	Environment   string          `json:"environment"`
	Category      string          `json:"category"`
	SubType       string          `json:"sub_type"`
	Enabled       *bool           `json:"enabled"`
	BasePrice     *float64        `json:"base_price"`
	ResellerPrice *float64        `json:"reseller_price"`
	ChannelPrice  *float64        `json:"channel_price"`
	Price         json.RawMessage `json:"price"`
	RentalPrices  *struct {
		EndCustomer float64 `json:"end_customer"`
		Reseller    float64 `json:"reseller"`
		Channel     float64 `json:"channel"`
	} `json:"rental_prices"`
}

// LoadFile reads and parses the catalog seed file.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read seed file: %w", err)
	}
	var file productFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("catalog: parse seed file: %w", err)
	}
	products := make([]Product, 0, len(file.Products))
	for _, rec := range file.Products {
		p, err := rec.toProduct()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return New(products)
}

// toProduct selects the pricing variant at load time so the rest of the
// engine never probes record shapes.
func (rec productRecord) toProduct() (Product, error) {
	p := Product{
		ID:          rec.ID,
		Name:        rec.Name,
		PixelPitch:  rec.PixelPitch,
		Environment: Environment(rec.Environment),
		Category:    rec.Category,
		SubType:     rec.SubType,
		Enabled:     true,
	}
	if rec.Enabled != nil {
		p.Enabled = *rec.Enabled
	}

	if rec.RentalPrices != nil {
		p.Pricing = ProductPricing{
			Kind: PricingRental,
			Rental: &RentalPrices{
				EndCustomer: rec.RentalPrices.EndCustomer,
				Reseller:    rec.RentalPrices.Reseller,
				Channel:     rec.RentalPrices.Channel,
			},
		}
		return p, nil
	}

	flat := &FlatPrices{
		Base:     rec.BasePrice,
		Reseller: rec.ResellerPrice,
		Channel:  rec.ChannelPrice,
	}
	if len(rec.Price) > 0 {
		generic, err := coercePrice(rec.Price)
		if err != nil {
			return Product{}, fmt.Errorf("catalog: product %s: %w", rec.ID, err)
		}
		flat.Generic = generic
	}
	p.Pricing = ProductPricing{Kind: PricingFlat, Flat: flat}
	return p, nil
}

// coercePrice accepts a JSON number or a numeric string; legacy catalog rows
// store prices as strings.
func coercePrice(raw json.RawMessage) (*float64, error) {
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return &num, nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return nil, fmt.Errorf("price is neither number nor string: %s", string(raw))
	}
	if str == "" {
		return nil, nil
	}
	num, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return nil, fmt.Errorf("price string %q is not numeric", str)
	}
	return &num, nil
}
