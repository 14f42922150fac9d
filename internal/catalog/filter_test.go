package catalog

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterCuratedExcludesSpecialFamilies(t *testing.T) {
	c := testCatalog(t)

	out := c.Filter(FilterCriteria{Environment: "Indoor", Curated: true})
	require.NotEmpty(t, out)
	for _, p := range out {
		require.NotEqual(t, "Rental", p.SubType, "curated results must not include rental panels")
	}

	// Manual browsing, by contrast, may surface them.
	manual := c.Filter(FilterCriteria{Environment: "Indoor", SubType: "Rental"})
	require.Len(t, manual, 1)
	require.Equal(t, "IND-RNT-39", manual[0].ID)
}

func TestFilterEnvironmentIsCaseAndSpaceInsensitive(t *testing.T) {
	c := testCatalog(t)

	strict := c.Filter(FilterCriteria{Environment: "Outdoor"})
	sloppy := c.Filter(FilterCriteria{Environment: " out door "})
	require.Equal(t, strict, sloppy)
}

func TestFilterPitchTolerance(t *testing.T) {
	c := testCatalog(t)

	pitch := 2.45 // within 0.1 of the 2.5 panel
	out := c.Filter(FilterCriteria{Pitch: &pitch})
	require.Len(t, out, 1)
	require.Equal(t, "IND-25", out[0].ID)

	pitch = 2.3 // outside tolerance
	out = c.Filter(FilterCriteria{Pitch: &pitch})
	require.Empty(t, out)
}

func TestFilterPitchSet(t *testing.T) {
	c := testCatalog(t)

	out := c.Filter(FilterCriteria{Environment: "Indoor", Pitches: []float64{1.5, 3}})
	require.Len(t, out, 2)
	require.Equal(t, "IND-15", out[0].ID)
	require.Equal(t, "IND-30", out[1].ID)
}

func TestFilterExcludesDisabledByDefault(t *testing.T) {
	c := testCatalog(t)

	out := c.Filter(FilterCriteria{Environment: "Outdoor"})
	for _, p := range out {
		require.True(t, p.Enabled)
	}

	withDisabled := c.Filter(FilterCriteria{Environment: "Outdoor", IncludeDisabled: true})
	require.Greater(t, len(withDisabled), len(out))
}

func TestFilterSortedByPitch(t *testing.T) {
	c := testCatalog(t)

	out := c.Filter(FilterCriteria{})
	require.True(t, sort.SliceIsSorted(out, func(i, j int) bool {
		return out[i].PixelPitch < out[j].PixelPitch
	}))
}

func TestFilterSubTypeFallsBackToName(t *testing.T) {
	price := 100.0
	c, err := New([]Product{
		{ID: "X1", Name: "Flexible Ribbon P2", PixelPitch: 2, Environment: EnvironmentIndoor, Enabled: true,
			Pricing: ProductPricing{Kind: PricingFlat, Flat: &FlatPrices{Generic: &price}}},
	})
	require.NoError(t, err)

	out := c.Filter(FilterCriteria{SubType: "Flexible"})
	require.Len(t, out, 1)

	// The name keyword also drives the curated exclusion.
	require.Empty(t, c.Filter(FilterCriteria{Curated: true}))
}
