package natal

import "time"

// Planet names one of the nine grahas the engine places in a chart.
type Planet string

const (
	Sun     Planet = "Sun"
	Moon    Planet = "Moon"
	Mars    Planet = "Mars"
	Mercury Planet = "Mercury"
	Jupiter Planet = "Jupiter"
	Venus   Planet = "Venus"
	Saturn  Planet = "Saturn"
	Rahu    Planet = "Rahu"
	Ketu    Planet = "Ketu"
)

// Planets lists the bodies in chart output order.
var Planets = []Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}

// EphemerisBodies are the bodies whose longitudes come from the ephemeris.
// Rahu and Ketu are derived from the mean node.
var EphemerisBodies = []Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn}

// Sign is a 30 degree zodiac sign.
type Sign string

const (
	Aries       Sign = "Aries"
	Taurus      Sign = "Taurus"
	Gemini      Sign = "Gemini"
	Cancer      Sign = "Cancer"
	Leo         Sign = "Leo"
	Virgo       Sign = "Virgo"
	Libra       Sign = "Libra"
	Scorpio     Sign = "Scorpio"
	Sagittarius Sign = "Sagittarius"
	Capricorn   Sign = "Capricorn"
	Aquarius    Sign = "Aquarius"
	Pisces      Sign = "Pisces"
)

// Dignity is the strength classification of a body in its sign.
type Dignity string

const (
	DignityExalted      Dignity = "exalted"
	DignityDebilitated  Dignity = "debilitated"
	DignityMoolatrikona Dignity = "moolatrikona"
	DignityOwn          Dignity = "own"
	DignityFriendly     Dignity = "friendly"
	DignityEnemy        Dignity = "enemy"
	DignityNeutral      Dignity = "neutral"
)

// BirthInput is the caller supplied birth data.
type BirthInput struct {
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ChartMoment is the resolved astronomical instant shared by every reading of a chart.
type ChartMoment struct {
	UTC          time.Time `json:"utc"`
	JulianDayUT  float64   `json:"julianDayUt"`
	JulianDayTT  float64   `json:"julianDayTt"`
	Ayanamsa     float64   `json:"ayanamsa"`
	SiderealTime float64   `json:"siderealTime"`
	Obliquity    float64   `json:"obliquity"`
}

// PlanetReading is the placement of a single body.
type PlanetReading struct {
	Planet        Planet  `json:"planet"`
	Longitude     float64 `json:"longitude"`
	Sign          Sign    `json:"sign"`
	Degree        float64 `json:"degree"`
	House         int     `json:"house"`
	Nakshatra     string  `json:"nakshatra"`
	Pada          int     `json:"pada"`
	NakshatraLord Planet  `json:"nakshatraLord"`
	Speed         float64 `json:"speed"`
	Retrograde    bool    `json:"retrograde"`
	Combust       bool    `json:"combust"`
	Dignity       Dignity `json:"dignity"`
}

// LagnaReading is the sidereal ascendant.
type LagnaReading struct {
	Longitude float64 `json:"longitude"`
	Sign      Sign    `json:"sign"`
	Degree    float64 `json:"degree"`
	// LowConfidence is set when the ascendant geometry was degenerate and a
	// fallback value was used.
	LowConfidence bool `json:"lowConfidence"`
}

// ChartResult is a complete natal chart.
type ChartResult struct {
	Moment  ChartMoment     `json:"moment"`
	Lagna   LagnaReading    `json:"lagna"`
	Planets []PlanetReading `json:"planets"`
}

// Planet returns the reading for p.
func (c ChartResult) Planet(p Planet) (PlanetReading, bool) {
	for _, reading := range c.Planets {
		if reading.Planet == p {
			return reading, true
		}
	}
	return PlanetReading{}, false
}
