package natal

import (
	"math"
	"time"
)

const (
	// J2000 is the Julian day of the J2000.0 epoch.
	J2000 = 2451545.0
	// DaysPerCentury is the length of a Julian century.
	DaysPerCentury = 36525.0

	// Lahiri ayanamsa, linear approximation.
	ayanamsaAtJ2000     = 23.85
	ayanamsaArcsecPerYr = 50.29

	// Mean lunar node polynomial, degrees.
	nodeAtJ2000    = 125.04452
	nodePerCentury = -1934.136261
	nodeQuadratic  = 0.0020708

	// NodeDailyMotion is the fixed apparent motion assigned to Rahu and Ketu.
	NodeDailyMotion = -0.053

	signSpan      = 30.0
	nakshatraSpan = 360.0 / 27.0
	padaSpan      = nakshatraSpan / 4.0

	unixEpochJD = 2440587.5
	ttMinusTAI  = 32.184
)

// Normalize maps an angle in degrees into [0, 360).
func Normalize(deg float64) float64 {
	out := math.Mod(deg, 360)
	if out < 0 {
		out += 360
	}
	// -1e-15 + 360 rounds to 360 in float64.
	if out >= 360 {
		out = 0
	}
	return out
}

// JulianCenturies returns Julian centuries since J2000.0 for jd.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// JulianDay converts a UTC instant to a Julian day number.
func JulianDay(t time.Time) float64 {
	t = t.UTC()
	seconds := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return unixEpochJD + seconds/86400
}

// JulianDayTT converts a UTC instant to a Julian day on the Terrestrial Time scale.
func JulianDayTT(t time.Time) float64 {
	return JulianDay(t) + (float64(LeapSeconds(t))+ttMinusTAI)/86400
}

// Ayanamsa returns the Lahiri ayanamsa in degrees for a Julian day (TT).
func Ayanamsa(jdTT float64) float64 {
	years := JulianCenturies(jdTT) * 100
	return ayanamsaAtJ2000 + (ayanamsaArcsecPerYr/3600)*years
}

// ToSidereal subtracts the ayanamsa from a tropical longitude.
func ToSidereal(tropical, ayanamsa float64) float64 {
	return Normalize(tropical - ayanamsa)
}

// MeanNode returns the tropical longitude of the mean ascending lunar node.
func MeanNode(jdTT float64) float64 {
	t := JulianCenturies(jdTT)
	return Normalize(nodeAtJ2000 + nodePerCentury*t + nodeQuadratic*t*t)
}

// LocalSiderealTime adds an east longitude to Greenwich sidereal time.
func LocalSiderealTime(gmst, longitude float64) float64 {
	return Normalize(gmst + longitude)
}

// DailyMotion returns the signed change between two longitudes one day apart,
// taking the shorter way around the circle. The result lies in (-180, 180].
func DailyMotion(current, next float64) float64 {
	delta := Normalize(next - current)
	if delta > 180 {
		delta -= 360
	}
	return delta
}
