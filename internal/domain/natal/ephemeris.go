package natal

import (
	"context"
	"time"
)

// Ephemeris supplies the astronomical quantities the engine cannot derive in
// closed form. All angles are in degrees.
type Ephemeris interface {
	// Position returns the tropical apparent ecliptic longitude of body.
	Position(ctx context.Context, body Planet, utc time.Time) (float64, error)
	// SiderealTime returns Greenwich mean sidereal time.
	SiderealTime(ctx context.Context, utc time.Time) (float64, error)
	// Obliquity returns the obliquity of the ecliptic.
	Obliquity(ctx context.Context, utc time.Time) (float64, error)
}
