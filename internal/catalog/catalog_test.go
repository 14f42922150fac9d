package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadProducts(t *testing.T) {
	price := 100.0
	flat := ProductPricing{Kind: PricingFlat, Flat: &FlatPrices{Generic: &price}}

	_, err := New(nil)
	require.ErrorIs(t, err, ErrEmptyCatalog)

	_, err = New([]Product{{Name: "no id", PixelPitch: 2, Pricing: flat}})
	require.Error(t, err)

	_, err = New([]Product{{ID: "A", Name: "bad pitch", PixelPitch: 0, Pricing: flat}})
	require.Error(t, err)

	_, err = New([]Product{
		{ID: "A", Name: "one", PixelPitch: 2, Pricing: flat},
		{ID: "A", Name: "two", PixelPitch: 3, Pricing: flat},
	})
	require.Error(t, err)
}

func TestGetUnknownProduct(t *testing.T) {
	c := testCatalog(t)
	_, err := c.Get("nope")
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestDistinctPitchesFiltersEnvironmentAndDisabled(t *testing.T) {
	c := testCatalog(t)

	env := EnvironmentOutdoor
	pitches := c.DistinctPitches(&env)
	require.Equal(t, []float64{6, 10}, pitches, "disabled P5 must stay out")

	all := c.DistinctPitches(nil)
	require.Contains(t, all, 0.9)
	require.Contains(t, all, 10.0)
	require.NotContains(t, all, 5.0)
}

func TestLoadFileCoercesStringPrices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	seed := `{
		"products": [
			{"id": "A", "name": "Numeric", "pixel_pitch": 2.5, "environment": "Indoor", "price": 24800},
			{"id": "B", "name": "Stringly", "pixel_pitch": 3, "environment": "Indoor", "price": "19600"},
			{"id": "C", "name": "Rental", "pixel_pitch": 3.9, "environment": "Indoor", "sub_type": "Rental",
			 "rental_prices": {"end_customer": 22600, "reseller": 20900, "channel": 19700}},
			{"id": "D", "name": "Off", "pixel_pitch": 5, "environment": "Outdoor", "enabled": false, "price": 1}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)

	a, err := c.Get("A")
	require.NoError(t, err)
	require.Equal(t, PricingFlat, a.Pricing.Kind)
	require.NotNil(t, a.Pricing.Flat.Generic)
	require.InDelta(t, 24800, *a.Pricing.Flat.Generic, 1e-9)

	b, err := c.Get("B")
	require.NoError(t, err)
	require.NotNil(t, b.Pricing.Flat.Generic)
	require.InDelta(t, 19600, *b.Pricing.Flat.Generic, 1e-9)

	cProd, err := c.Get("C")
	require.NoError(t, err)
	require.Equal(t, PricingRental, cProd.Pricing.Kind)
	require.InDelta(t, 20900, cProd.Pricing.Rental.Reseller, 1e-9)

	d, err := c.Get("D")
	require.NoError(t, err)
	require.False(t, d.Enabled)
}

func TestLoadFileRejectsGarbagePrices(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	seed := `{"products": [{"id": "A", "name": "Bad", "pixel_pitch": 2, "environment": "Indoor", "price": "N/A"}]}`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestBandForPitch(t *testing.T) {
	band, ok := BandForPitch(1.8)
	require.True(t, ok)
	require.InDelta(t, 1.8, band.MinMeters, 1e-9)
	require.InDelta(t, 7.5, band.MaxMeters, 1e-9)
	require.InDelta(t, band.MinMeters/MetersPerFoot, band.MinFeet(), 1e-9)

	_, ok = BandForPitch(7.3)
	require.False(t, ok)
}
