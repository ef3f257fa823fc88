package natal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsCombust(t *testing.T) {
	tests := []struct {
		name       string
		planet     Planet
		longitude  float64
		sun        float64
		retrograde bool
		want       bool
	}{
		{"sun is never combust", Sun, 10, 10, false, false},
		{"rahu is never combust", Rahu, 10, 10, true, false},
		{"ketu is never combust", Ketu, 10, 10, true, false},
		{"mercury direct within 14", Mercury, 113, 100, false, true},
		{"mercury retrograde uses 12", Mercury, 113, 100, true, false},
		{"venus direct within 10", Venus, 91, 100, false, true},
		{"venus retrograde uses 8", Venus, 91, 100, true, false},
		{"mars just inside", Mars, 116.9, 100, false, true},
		{"threshold is exclusive", Mars, 117, 100, false, false},
		{"shorter arc across zero", Moon, 355, 5, false, true},
		{"far apart across zero", Saturn, 340, 20, false, false},
		{"jupiter retrograde keeps orb", Jupiter, 110.5, 100, true, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsCombust(tc.planet, tc.longitude, tc.sun, tc.retrograde))
		})
	}
}

func TestSeparationUsesShorterArc(t *testing.T) {
	require.InDelta(t, 10.0, Separation(355, 5), 1e-9)
	require.InDelta(t, 180.0, Separation(0, 180), 1e-9)
	require.InDelta(t, 20.0, Separation(-10, 10), 1e-9)
}
