package natal

import "math"

// Separation returns the shorter arc between two longitudes, in [0, 180].
func Separation(a, b float64) float64 {
	diff := math.Abs(Normalize(a) - Normalize(b))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// IsCombust reports whether planet lies within its combustion orb of the Sun.
// The Sun and the lunar nodes are never combust.
func IsCombust(planet Planet, longitude, sunLongitude float64, retrograde bool) bool {
	orb, ok := combustion[planet]
	if !ok {
		return false
	}
	limit := orb.direct
	if retrograde {
		limit = orb.retrograde
	}
	return Separation(longitude, sunLongitude) < limit
}
