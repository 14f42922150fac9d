package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumengrid/lumengrid-quote/internal/shared"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	price := func(v float64) *float64 { return &v }
	products := []Product{
		{ID: "IND-09", Name: "COB P0.9 Indoor", PixelPitch: 0.9, Environment: EnvironmentIndoor, Category: "COB", SubType: "Fine Pitch", Enabled: true, Pricing: ProductPricing{Kind: PricingFlat, Flat: &FlatPrices{Base: price(98500)}}},
		{ID: "IND-125", Name: "P1.25 Indoor", PixelPitch: 1.25, Environment: EnvironmentIndoor, Category: "SMD", SubType: "Fine Pitch", Enabled: true, Pricing: ProductPricing{Kind: PricingFlat, Flat: &FlatPrices{Base: price(64800)}}},
		{ID: "IND-15", Name: "P1.5 Indoor", PixelPitch: 1.5, Environment: EnvironmentIndoor, Category: "SMD", SubType: "Standard", Enabled: true, Pricing: ProductPricing{Kind: PricingFlat, Flat: &FlatPrices{Base: price(47200)}}},
		{ID: "IND-18", Name: "P1.8 Indoor", PixelPitch: 1.8, Environment: EnvironmentIndoor, Category: "SMD", SubType: "Standard", Enabled: true, Pricing: ProductPricing{Kind: PricingFlat, Flat: &FlatPrices{Base: price(35600)}}},
		{ID: "IND-25", Name: "P2.5 Indoor", PixelPitch: 2.5, Environment: EnvironmentIndoor, Category: "SMD", SubType: "Standard", Enabled: true, Pricing: ProductPricing{Kind: PricingFlat, Flat: &FlatPrices{Generic: price(24800)}}},
		{ID: "IND-30", Name: "P3 Indoor", PixelPitch: 3, Environment: EnvironmentIndoor, Category: "SMD", SubType: "Standard", Enabled: true, Pricing: ProductPricing{Kind: PricingFlat, Flat: &FlatPrices{Generic: price(19600)}}},
		{ID: "IND-40", Name: "P4 Indoor", PixelPitch: 4, Environment: EnvironmentIndoor, Category: "SMD", SubType: "Standard", Enabled: true, Pricing: ProductPricing{Kind: PricingFlat, Flat: &FlatPrices{Base: price(15400)}}},
		{ID: "IND-RNT-39", Name: "Rental P3.9 Indoor", PixelPitch: 3.9, Environment: EnvironmentIndoor, Category: "SMD", SubType: "Rental", Enabled: true, Pricing: ProductPricing{Kind: PricingRental, Rental: &RentalPrices{EndCustomer: 22600, Reseller: 20900, Channel: 19700}}},
		{ID: "OUT-60", Name: "P6 Outdoor", PixelPitch: 6, Environment: EnvironmentOutdoor, Category: "SMD", SubType: "Standard", Enabled: true, Pricing: ProductPricing{Kind: PricingFlat, Flat: &FlatPrices{Generic: price(16200)}}},
		{ID: "OUT-100", Name: "P10 Outdoor", PixelPitch: 10, Environment: EnvironmentOutdoor, Category: "DIP", SubType: "Standard", Enabled: true, Pricing: ProductPricing{Kind: PricingFlat, Flat: &FlatPrices{Base: price(11200)}}},
		{ID: "OUT-50-OLD", Name: "P5 Outdoor", PixelPitch: 5, Environment: EnvironmentOutdoor, Category: "SMD", SubType: "Standard", Enabled: false, Pricing: ProductPricing{Kind: PricingFlat, Flat: &FlatPrices{Generic: price(17800)}}},
	}
	c, err := New(products)
	require.NoError(t, err)
	return c
}

func TestResolveTwentyFeetIndoor(t *testing.T) {
	r := NewResolver(testCatalog(t))
	env := EnvironmentIndoor

	pitch, ok, err := r.Resolve(Scalar(20), UnitFeet, &env)
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 1.8, pitch, 1e-9)
}

func TestResolveIsDeterministic(t *testing.T) {
	r := NewResolver(testCatalog(t))
	env := EnvironmentIndoor

	first, ok, err := r.Resolve(Distance{Min: 10, Max: 30}, UnitFeet, &env)
	require.NoError(t, err)
	require.True(t, ok)
	for i := 0; i < 50; i++ {
		pitch, ok, err := r.Resolve(Distance{Min: 10, Max: 30}, UnitFeet, &env)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, first, pitch)
	}
}

func TestResolveRangeUsesMidpoint(t *testing.T) {
	r := NewResolver(testCatalog(t))
	env := EnvironmentIndoor

	fromRange, _, err := r.Resolve(Distance{Min: 15, Max: 25}, UnitFeet, &env)
	require.NoError(t, err)
	fromScalar, _, err := r.Resolve(Scalar(20), UnitFeet, &env)
	require.NoError(t, err)
	require.Equal(t, fromScalar, fromRange)
}

func TestResolveMonotonicWithDistance(t *testing.T) {
	r := NewResolver(testCatalog(t))
	env := EnvironmentIndoor

	prev := 0.0
	for _, feet := range []float64{6, 10, 15, 20, 28, 38} {
		pitch, ok, err := r.Resolve(Scalar(feet), UnitFeet, &env)
		require.NoError(t, err)
		require.True(t, ok)
		require.GreaterOrEqual(t, pitch, prev, "pitch must not shrink as distance grows (at %v ft)", feet)
		prev = pitch
	}
}

func TestResolveFallsBackToNearestOutsideWindow(t *testing.T) {
	r := NewResolver(testCatalog(t))
	env := EnvironmentOutdoor

	// 300 ft gives an ideal pitch of 30 mm; window is capped at 20 mm and
	// holds no outdoor candidate, so the closest catalog pitch wins.
	pitch, ok, err := r.Resolve(Scalar(300), UnitFeet, &env)
	require.NoError(t, err)
	require.True(t, ok)
	require.InDelta(t, 10, pitch, 1e-9)
}

func TestResolveSkipsDisabledProducts(t *testing.T) {
	r := NewResolver(testCatalog(t))
	env := EnvironmentOutdoor

	// The only P5 panel is disabled; 16 ft (ideal 1.6 mm) must not pick it.
	pitch, ok, err := r.Resolve(Scalar(5), UnitMeters, &env)
	require.NoError(t, err)
	require.True(t, ok)
	require.Greater(t, math.Abs(pitch-5), 1e-9)
}

func TestResolveNonPositiveDistance(t *testing.T) {
	r := NewResolver(testCatalog(t))

	_, ok, err := r.Resolve(Scalar(0), UnitMeters, nil)
	require.NoError(t, err)
	require.False(t, ok)

	_, ok, err = r.Resolve(Scalar(-3), UnitFeet, nil)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolveUnknownUnit(t *testing.T) {
	r := NewResolver(testCatalog(t))

	_, _, err := r.Resolve(Scalar(10), DistanceUnit("furlongs"), nil)
	require.ErrorIs(t, err, shared.ErrValidation)
}

func TestIdealPitch(t *testing.T) {
	// 20 ft of viewing distance maps to a 2 mm ideal pitch.
	require.InDelta(t, 2.0, IdealPitch(20*MetersPerFoot), 1e-9)
}
