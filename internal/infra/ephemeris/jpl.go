package ephemeris

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/mshafiee/jpleph"

	"github.com/yanqian/kundali/internal/domain/natal"
)

// speedOfLight in AU per day.
const speedOfLight = 173.1446326846693

const lightTimeIterations = 3

var jplBodies = map[natal.Planet]jpleph.Planet{
	natal.Sun:     jpleph.Sun,
	natal.Moon:    jpleph.Moon,
	natal.Mercury: jpleph.Mercury,
	natal.Venus:   jpleph.Venus,
	natal.Mars:    jpleph.Mars,
	natal.Jupiter: jpleph.Jupiter,
	natal.Saturn:  jpleph.Saturn,
}

// JPL reads planetary positions from a JPL DE binary ephemeris file.
type JPL struct {
	mu     sync.Mutex
	ephem  *jpleph.Ephemeris
	start  float64
	end    float64
	logger *slog.Logger
}

var _ natal.Ephemeris = (*JPL)(nil)

// OpenJPL loads the ephemeris file at path.
func OpenJPL(path string, logger *slog.Logger) (*JPL, error) {
	ephem, err := jpleph.NewEphemeris(path, false)
	if err != nil {
		return nil, fmt.Errorf("open jpl ephemeris %s: %w", path, err)
	}
	j := &JPL{
		ephem:  ephem,
		start:  ephem.GetEphemerisDouble(jpleph.EphemerisStartJD),
		end:    ephem.GetEphemerisDouble(jpleph.EphemerisEndJD),
		logger: logger.With("component", "ephemeris.jpl"),
	}
	j.logger.Info("jpl ephemeris loaded",
		"path", path,
		"version", ephem.GetEphemerisLong(jpleph.EphemerisVersion),
		"startJd", j.start,
		"endJd", j.end,
	)
	return j, nil
}

// Position returns the geocentric, light-time corrected ecliptic longitude of body.
func (j *JPL) Position(ctx context.Context, body natal.Planet, utc time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	target, ok := jplBodies[body]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownBody, body)
	}
	et := natal.JulianDayTT(utc)
	if et < j.start || et > j.end {
		return 0, fmt.Errorf("jd %.2f not in [%.2f, %.2f]: %w", et, j.start, j.end, jpleph.ErrOutsideRange)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	earth, _, err := j.ephem.CalculatePV(et, jpleph.Earth, jpleph.CenterSolarSystemBarycenter, false)
	if err != nil {
		return 0, fmt.Errorf("earth position: %w", err)
	}

	var x, y, z, lightTime float64
	for i := 0; i < lightTimeIterations; i++ {
		pos, _, err := j.ephem.CalculatePV(et-lightTime, target, jpleph.CenterSolarSystemBarycenter, false)
		if err != nil {
			return 0, fmt.Errorf("%s position: %w", body, err)
		}
		x, y, z = pos.X-earth.X, pos.Y-earth.Y, pos.Z-earth.Z
		lightTime = math.Sqrt(x*x+y*y+z*z) / speedOfLight
	}
	return eclipticLongitude(x, y, z), nil
}

// SiderealTime returns Greenwich mean sidereal time in degrees.
func (j *JPL) SiderealTime(ctx context.Context, utc time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return siderealTime(utc), nil
}

// Obliquity returns the mean obliquity of the ecliptic in degrees.
func (j *JPL) Obliquity(ctx context.Context, utc time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return obliquity(utc), nil
}

// Close releases the ephemeris file.
func (j *JPL) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.ephem.Close()
}
