package catalog

import (
	"math"
	"sort"
	"strings"
)

// PitchTolerance absorbs floating point noise in catalog pitch values.
const PitchTolerance = 0.1

// curatedExclusions lists category families the guided recommendation flow
// skips. Manual browsing still surfaces them.
var curatedExclusions = []string{"rental", "flexible", "transparent", "jumbo"}

// FilterCriteria narrows the catalog. Zero values mean "no constraint";
// Enabled-only is the default unless IncludeDisabled is set.
type FilterCriteria struct {
	Environment     string
	SubType         string
	Category        string
	Pitch           *float64
	Pitches         []float64
	Curated         bool
	IncludeDisabled bool
}

// Filter returns catalog products matching the criteria, sorted ascending by
// pixel pitch and de-duplicated by id.
func (c *Catalog) Filter(criteria FilterCriteria) []Product {
	var out []Product
	seen := make(map[string]struct{})

	for _, p := range c.products {
		if !matches(p, criteria) {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PixelPitch < out[j].PixelPitch
	})
	return out
}

func matches(p Product, criteria FilterCriteria) bool {
	if !p.Enabled && !criteria.IncludeDisabled {
		return false
	}
	if criteria.Curated && isExcludedFamily(p) {
		return false
	}
	if criteria.Environment != "" && normalize(string(p.Environment)) != normalize(criteria.Environment) {
		return false
	}
	if criteria.Category != "" && normalize(p.Category) != normalize(criteria.Category) {
		return false
	}
	if criteria.SubType != "" && !matchesSubType(p, criteria.SubType) {
		return false
	}
	if !matchesPitch(p.PixelPitch, criteria) {
		return false
	}
	return true
}

func matchesPitch(pitch float64, criteria FilterCriteria) bool {
	if criteria.Pitch == nil && len(criteria.Pitches) == 0 {
		return true
	}
	if criteria.Pitch != nil && floatsEqual(pitch, *criteria.Pitch, PitchTolerance) {
		return true
	}
	for _, want := range criteria.Pitches {
		if floatsEqual(pitch, want, PitchTolerance) {
			return true
		}
	}
	return false
}

// matchesSubType prefers the declared sub-type field and falls back to a
// keyword scan of the display name when the field is absent.
func matchesSubType(p Product, want string) bool {
	if p.SubType != "" {
		return normalize(p.SubType) == normalize(want)
	}
	return strings.Contains(normalize(p.Name), normalize(want))
}

// isExcludedFamily checks the sub-type, falling back to the display name
// when no sub-type is declared, then the category.
func isExcludedFamily(p Product) bool {
	family := normalize(p.SubType)
	if family == "" {
		family = normalize(p.Name)
	}
	family += normalize(p.Category)
	for _, excluded := range curatedExclusions {
		if strings.Contains(family, excluded) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

func floatsEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}
