package natal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	apperrors "github.com/yanqian/kundali/pkg/errors"
)

// Error codes surfaced by Compute.
const (
	CodeInvalidInput         = "invalid_input"
	CodeEphemerisUnavailable = "ephemeris_unavailable"
)

// motionStep is the sampling interval used for apparent daily motion.
const motionStep = 24 * time.Hour

// Engine assembles sidereal natal charts from an ephemeris.
type Engine struct {
	ephem  Ephemeris
	logger *slog.Logger
}

// NewEngine builds an engine backed by ephem.
func NewEngine(ephem Ephemeris, logger *slog.Logger) *Engine {
	return &Engine{ephem: ephem, logger: logger.With("component", "natal.engine")}
}

// Compute builds the chart for a birth input. Any ephemeris failure aborts
// the whole chart.
func (e *Engine) Compute(ctx context.Context, in BirthInput) (ChartResult, error) {
	utc, err := in.UTC()
	if err != nil {
		return ChartResult{}, apperrors.Wrap(CodeInvalidInput, "invalid birth input", err)
	}

	moment, err := e.resolveMoment(ctx, utc)
	if err != nil {
		return ChartResult{}, err
	}

	next := utc.Add(motionStep)
	sidereal := make(map[Planet]float64, len(Planets))
	speed := make(map[Planet]float64, len(Planets))
	for _, body := range EphemerisBodies {
		current, err := e.ephem.Position(ctx, body, utc)
		if err != nil {
			return ChartResult{}, unavailable(fmt.Sprintf("%s position", body), err)
		}
		following, err := e.ephem.Position(ctx, body, next)
		if err != nil {
			return ChartResult{}, unavailable(fmt.Sprintf("%s position", body), err)
		}
		sidereal[body] = ToSidereal(current, moment.Ayanamsa)
		speed[body] = DailyMotion(current, following)
	}

	rahu := ToSidereal(MeanNode(moment.JulianDayTT), moment.Ayanamsa)
	sidereal[Rahu] = rahu
	sidereal[Ketu] = Normalize(rahu + 180)
	speed[Rahu] = NodeDailyMotion
	speed[Ketu] = NodeDailyMotion

	lst := LocalSiderealTime(moment.SiderealTime, in.Longitude)
	tropicalAsc, degenerate := Ascendant(lst, in.Latitude, moment.Obliquity)
	if degenerate {
		e.logger.Warn("degenerate ascendant geometry", "lst", lst, "latitude", in.Latitude)
	}
	lagnaLongitude := ToSidereal(tropicalAsc, moment.Ayanamsa)
	lagna := LagnaReading{
		Longitude:     lagnaLongitude,
		Sign:          SignOf(lagnaLongitude),
		Degree:        DegreeInSign(lagnaLongitude),
		LowConfidence: degenerate,
	}

	readings := make([]PlanetReading, 0, len(Planets))
	for _, body := range Planets {
		readings = append(readings, readPlanet(body, sidereal[body], speed[body], lagna.Sign, sidereal[Sun]))
	}

	return ChartResult{Moment: moment, Lagna: lagna, Planets: readings}, nil
}

func (e *Engine) resolveMoment(ctx context.Context, utc time.Time) (ChartMoment, error) {
	gmst, err := e.ephem.SiderealTime(ctx, utc)
	if err != nil {
		return ChartMoment{}, unavailable("sidereal time", err)
	}
	obliquity, err := e.ephem.Obliquity(ctx, utc)
	if err != nil {
		return ChartMoment{}, unavailable("obliquity", err)
	}
	jdTT := JulianDayTT(utc)
	return ChartMoment{
		UTC:          utc,
		JulianDayUT:  JulianDay(utc),
		JulianDayTT:  jdTT,
		Ayanamsa:     Ayanamsa(jdTT),
		SiderealTime: Normalize(gmst),
		Obliquity:    obliquity,
	}, nil
}

func readPlanet(body Planet, longitude, speed float64, lagna Sign, sunLongitude float64) PlanetReading {
	sign := SignOf(longitude)
	degree := DegreeInSign(longitude)
	nakshatra, pada := NakshatraOf(longitude)
	retrograde := speed < 0
	return PlanetReading{
		Planet:        body,
		Longitude:     longitude,
		Sign:          sign,
		Degree:        degree,
		House:         HouseOf(sign, lagna),
		Nakshatra:     nakshatra.Name,
		Pada:          pada,
		NakshatraLord: nakshatra.Ruler,
		Speed:         speed,
		Retrograde:    retrograde,
		Combust:       IsCombust(body, longitude, sunLongitude, retrograde),
		Dignity:       ClassifyDignity(body, sign, degree),
	}
}

func unavailable(what string, err error) error {
	return apperrors.Wrap(CodeEphemerisUnavailable, "ephemeris could not provide "+what, err)
}
