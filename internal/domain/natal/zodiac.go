package natal

import "math"

// boundaryTolerance is how close, in span units, a longitude must be to an
// exact multiple of a span to be treated as sitting on that boundary. It only
// absorbs rounding in the division; anything measurably below a boundary
// stays below it.
const boundaryTolerance = 1e-12

// segmentIndex returns floor(l/span), snapping to k when l/span is within
// boundaryTolerance of the integer k.
func segmentIndex(l, span float64) int {
	x := l / span
	if k := math.Round(x); math.Abs(x-k) < boundaryTolerance {
		return int(k)
	}
	return int(math.Floor(x))
}

// SignOf returns the sign containing a sidereal longitude.
func SignOf(longitude float64) Sign {
	return signTable[segmentIndex(Normalize(longitude), signSpan)%12].name
}

// DegreeInSign returns the offset of longitude within its sign, in [0, 30).
func DegreeInSign(longitude float64) float64 {
	l := Normalize(longitude)
	deg := l - float64(segmentIndex(l, signSpan))*signSpan
	if deg < 0 || deg >= signSpan {
		deg = 0
	}
	return deg
}

// HouseOf returns the whole-sign house (1-12) of sign counted from the lagna sign.
func HouseOf(sign, lagna Sign) int {
	s, ok := signIndex(sign)
	if !ok {
		return 0
	}
	l, ok := signIndex(lagna)
	if !ok {
		return 0
	}
	return (s-l+12)%12 + 1
}

// HouseSigns returns the sign occupying each house, index 0 being the first house.
func HouseSigns(lagna Sign) [12]Sign {
	var out [12]Sign
	l, _ := signIndex(lagna)
	for house := range out {
		out[house] = signTable[(l+house)%12].name
	}
	return out
}

// NakshatraOf returns the nakshatra and pada (1-4) containing a sidereal longitude.
func NakshatraOf(longitude float64) (NakshatraInfo, int) {
	padas := segmentIndex(Normalize(longitude), padaSpan) % (27 * 4)
	return nakshatraInfos[padas/4], padas%4 + 1
}
