package natal

import "math"

// degenerateDenominator is the magnitude below which the ascendant
// denominator is treated as zero.
const degenerateDenominator = 1e-9

// Ascendant returns the tropical ascendant in degrees for a local sidereal
// time, geographic latitude and obliquity, all in degrees. The second result
// is true when the geometry was degenerate and a limiting or fallback value
// was returned.
//
// The arctangent is folded into [0, 180) and moved to the western half when
// cos(LST) < 0, so LST 90 yields [0, 180) and LST 270 yields [180, 360).
func Ascendant(lst, latitude, obliquity float64) (float64, bool) {
	theta := radians(Normalize(lst))
	eps := radians(obliquity)
	phi := radians(latitude)

	num := -math.Cos(theta)
	den := math.Sin(eps)*math.Tan(phi) + math.Cos(eps)*math.Sin(theta)
	western := math.Cos(theta) < 0

	if math.Abs(den) < degenerateDenominator {
		switch {
		case math.Abs(num) < degenerateDenominator:
			return 0, true
		case western:
			return 270, true
		default:
			return 90, true
		}
	}

	asc := math.Mod(degrees(math.Atan(num/den)), 180)
	if asc < 0 {
		asc += 180
	}
	if asc >= 180 {
		asc = math.Nextafter(180, 0)
	}
	if western {
		asc += 180
		if asc >= 360 {
			asc = math.Nextafter(360, 0)
		}
	}
	return asc, false
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
