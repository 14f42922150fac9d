package catalog

import (
	"fmt"
	"math"

	"github.com/lumengrid/lumengrid-quote/internal/shared"
)

// DistanceUnit enumerates supported viewing-distance units.
type DistanceUnit string

const (
	UnitMeters DistanceUnit = "meters"
	UnitFeet   DistanceUnit = "feet"
)

// Distance is a scalar or closed range of viewing distances. A scalar is a
// range whose bounds coincide.
type Distance struct {
	Min float64
	Max float64
}

// Scalar builds a single-valued distance.
func Scalar(v float64) Distance {
	return Distance{Min: v, Max: v}
}

// midpoint reduces a range to the value resolution operates on.
func (d Distance) midpoint() float64 {
	return (d.Min + d.Max) / 2
}

const (
	// pitchPerTenFeet is the linear heuristic: about 1 mm of pitch per
	// 10 feet of viewing distance.
	pitchPerTenFeet = 10.0

	windowLowFactor  = 0.7
	windowHighFactor = 1.3
	windowFloorMM    = 0.9
	windowCapMM      = 20.0
)

// Resolver maps viewing distances to catalog-constrained pixel pitches.
type Resolver struct {
	catalog *Catalog
}

// NewResolver builds a resolver over the injected catalog.
func NewResolver(c *Catalog) *Resolver {
	return &Resolver{catalog: c}
}

// IdealPitch computes the heuristic pitch for a distance in meters.
func IdealPitch(meters float64) float64 {
	feet := meters / MetersPerFoot
	return feet / pitchPerTenFeet
}

// Resolve maps a distance to the recommended catalog pitch. The boolean is
// false when the environment filter eliminates every candidate or the
// distance is not positive. Candidates are always pitches present among
// enabled catalog products, never invented values.
func (r *Resolver) Resolve(dist Distance, unit DistanceUnit, env *Environment) (float64, bool, error) {
	meters, err := toMeters(dist.midpoint(), unit)
	if err != nil {
		return 0, false, err
	}
	if meters <= 0 {
		return 0, false, nil
	}

	candidates := r.catalog.DistinctPitches(env)
	if len(candidates) == 0 {
		return 0, false, nil
	}

	ideal := IdealPitch(meters)
	lo := math.Max(ideal*windowLowFactor, windowFloorMM)
	hi := math.Min(ideal*windowHighFactor, windowCapMM)

	if pitch, ok := nearest(candidates, ideal, func(p float64) bool { return p >= lo && p <= hi }); ok {
		return pitch, true, nil
	}

	// Nothing inside the acceptance window: fall back to the closest
	// catalog pitch overall rather than returning no recommendation.
	pitch, _ := nearest(candidates, ideal, func(float64) bool { return true })
	return pitch, true, nil
}

// nearest returns the admissible pitch closest to ideal, preferring the
// finer pitch on ties.
func nearest(pitches []float64, ideal float64, admit func(float64) bool) (float64, bool) {
	best := 0.0
	bestDist := math.MaxFloat64
	found := false
	for _, p := range pitches {
		if !admit(p) {
			continue
		}
		d := math.Abs(p - ideal)
		if !found || d < bestDist || (d == bestDist && p < best) {
			best = p
			bestDist = d
			found = true
		}
	}
	return best, found
}

func toMeters(v float64, unit DistanceUnit) (float64, error) {
	switch unit {
	case UnitMeters:
		return v, nil
	case UnitFeet:
		return v * MetersPerFoot, nil
	default:
		return 0, fmt.Errorf("%w: unknown distance unit %q", shared.ErrValidation, unit)
	}
}
