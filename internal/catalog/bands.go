package catalog

// MetersPerFoot is the fixed feet-to-meters conversion constant.
const MetersPerFoot = 0.3048

// ViewingDistanceBand publishes the comfortable viewing range for a pitch.
// Adjacent bands may overlap; resolution still returns at most one pitch.
type ViewingDistanceBand struct {
	PixelPitch float64 `json:"pixel_pitch"`
	MinMeters  float64 `json:"min_meters"`
	MaxMeters  float64 `json:"max_meters"`
}

// MinFeet returns the band lower bound in feet.
func (b ViewingDistanceBand) MinFeet() float64 { return b.MinMeters / MetersPerFoot }

// MaxFeet returns the band upper bound in feet.
func (b ViewingDistanceBand) MaxFeet() float64 { return b.MaxMeters / MetersPerFoot }

// DefaultViewingDistanceBands is the fixed band table, ordered by pitch and
// by minimum distance.
func DefaultViewingDistanceBands() []ViewingDistanceBand {
	return []ViewingDistanceBand{
		{PixelPitch: 0.9, MinMeters: 0.9, MaxMeters: 3.5},
		{PixelPitch: 1.25, MinMeters: 1.2, MaxMeters: 5},
		{PixelPitch: 1.5, MinMeters: 1.5, MaxMeters: 6},
		{PixelPitch: 1.8, MinMeters: 1.8, MaxMeters: 7.5},
		{PixelPitch: 2.5, MinMeters: 2.5, MaxMeters: 10},
		{PixelPitch: 3, MinMeters: 3, MaxMeters: 12},
		{PixelPitch: 4, MinMeters: 4, MaxMeters: 16},
		{PixelPitch: 6, MinMeters: 6, MaxMeters: 25},
		{PixelPitch: 8, MinMeters: 8, MaxMeters: 35},
		{PixelPitch: 10, MinMeters: 10, MaxMeters: 45},
	}
}

// BandForPitch returns the band describing the given pitch, if published.
func BandForPitch(pitch float64) (ViewingDistanceBand, bool) {
	for _, b := range DefaultViewingDistanceBands() {
		if floatsEqual(b.PixelPitch, pitch, PitchTolerance) {
			return b, true
		}
	}
	return ViewingDistanceBand{}, false
}
