package ephemeris

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/yanqian/kundali/internal/domain/natal"
)

// Canned is a deterministic ephemeris: each body starts at a fixed tropical
// longitude at the epoch and moves at a constant daily rate. Sidereal time and
// obliquity use the same closed forms as the JPL provider.
type Canned struct {
	epoch      time.Time
	longitudes map[natal.Planet]float64
	motion     map[natal.Planet]float64
}

var _ natal.Ephemeris = (*Canned)(nil)

// NewCanned builds a canned provider. The maps are copied.
func NewCanned(epoch time.Time, longitudes, motion map[natal.Planet]float64) *Canned {
	return &Canned{
		epoch:      epoch.UTC(),
		longitudes: maps.Clone(longitudes),
		motion:     maps.Clone(motion),
	}
}

// DefaultCanned returns mean geocentric longitudes at J2000.0 with mean daily motions.
func DefaultCanned() *Canned {
	return NewCanned(
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		map[natal.Planet]float64{
			natal.Sun:     280.46,
			natal.Moon:    218.32,
			natal.Mercury: 271.89,
			natal.Venus:   241.57,
			natal.Mars:    327.96,
			natal.Jupiter: 25.25,
			natal.Saturn:  40.40,
		},
		map[natal.Planet]float64{
			natal.Sun:     0.9856,
			natal.Moon:    13.1764,
			natal.Mercury: 1.3833,
			natal.Venus:   1.2021,
			natal.Mars:    0.5240,
			natal.Jupiter: 0.0831,
			natal.Saturn:  0.0335,
		},
	)
}

// Position extrapolates body linearly from the epoch.
func (c *Canned) Position(ctx context.Context, body natal.Planet, utc time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	base, ok := c.longitudes[body]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownBody, body)
	}
	days := natal.JulianDay(utc) - natal.JulianDay(c.epoch)
	return natal.Normalize(base + c.motion[body]*days), nil
}

// SiderealTime returns Greenwich mean sidereal time in degrees.
func (c *Canned) SiderealTime(ctx context.Context, utc time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return siderealTime(utc), nil
}

// Obliquity returns the mean obliquity of the ecliptic in degrees.
func (c *Canned) Obliquity(ctx context.Context, utc time.Time) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return obliquity(utc), nil
}
