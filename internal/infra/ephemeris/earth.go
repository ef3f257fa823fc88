package ephemeris

import (
	"errors"
	"math"
	"time"

	"github.com/yanqian/kundali/internal/domain/natal"
)

// ErrUnknownBody is returned for a body the provider cannot place.
var ErrUnknownBody = errors.New("body not available")

const (
	// Obliquity of the ecliptic, linear model in Julian centuries.
	obliquityAtJ2000    = 23.4393
	obliquityPerCentury = -0.0130

	// Obliquity of the J2000 ecliptic used to rotate ICRF vectors.
	j2000Obliquity = 23.4392911
)

// GreenwichMeanSiderealTime returns GMST in degrees for a UT Julian day.
func GreenwichMeanSiderealTime(jdUT float64) float64 {
	t := natal.JulianCenturies(jdUT)
	gmst := 280.46061837 +
		360.98564736629*(jdUT-natal.J2000) +
		0.000387933*t*t -
		t*t*t/38710000
	return natal.Normalize(gmst)
}

// MeanObliquity returns the obliquity of the ecliptic in degrees for a TT Julian day.
func MeanObliquity(jdTT float64) float64 {
	return obliquityAtJ2000 + obliquityPerCentury*natal.JulianCenturies(jdTT)
}

func siderealTime(utc time.Time) float64 {
	// UT1 is taken equal to UTC.
	return GreenwichMeanSiderealTime(natal.JulianDay(utc))
}

func obliquity(utc time.Time) float64 {
	return MeanObliquity(natal.JulianDayTT(utc))
}

// eclipticLongitude rotates an equatorial J2000 vector about the x axis into
// the J2000 ecliptic frame and returns its longitude in degrees.
func eclipticLongitude(x, y, z float64) float64 {
	eps := j2000Obliquity * math.Pi / 180
	ye := y*math.Cos(eps) + z*math.Sin(eps)
	return natal.Normalize(math.Atan2(ye, x) * 180 / math.Pi)
}
