package ephemeris

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/kundali/internal/domain/natal"
)

func TestCannedPosition(t *testing.T) {
	epoch := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	longitudes := map[natal.Planet]float64{natal.Sun: 359.5, natal.Saturn: 10}
	motion := map[natal.Planet]float64{natal.Sun: 1, natal.Saturn: -0.25}
	canned := NewCanned(epoch, longitudes, motion)
	longitudes[natal.Sun] = 0

	ctx := context.Background()
	sun, err := canned.Position(ctx, natal.Sun, epoch)
	require.NoError(t, err)
	require.InDelta(t, 359.5, sun, 1e-9)

	sun, err = canned.Position(ctx, natal.Sun, epoch.Add(24*time.Hour))
	require.NoError(t, err)
	require.InDelta(t, 0.5, sun, 1e-9)

	saturn, err := canned.Position(ctx, natal.Saturn, epoch.Add(-48*time.Hour))
	require.NoError(t, err)
	require.InDelta(t, 10.5, saturn, 1e-9)

	_, err = canned.Position(ctx, natal.Moon, epoch)
	require.ErrorIs(t, err, ErrUnknownBody)
}

func TestCannedPositionCenturiesFromEpoch(t *testing.T) {
	canned := DefaultCanned()
	ctx := context.Background()

	first := time.Date(1650, 3, 1, 0, 0, 0, 0, time.UTC)
	second := time.Date(1651, 3, 1, 0, 0, 0, 0, time.UTC)
	a, err := canned.Position(ctx, natal.Sun, first)
	require.NoError(t, err)
	b, err := canned.Position(ctx, natal.Sun, second)
	require.NoError(t, err)
	require.InDelta(t, natal.Normalize(a+0.9856*365), b, 1e-6)

	today, err := canned.Position(ctx, natal.Moon, first)
	require.NoError(t, err)
	tomorrow, err := canned.Position(ctx, natal.Moon, first.Add(24*time.Hour))
	require.NoError(t, err)
	require.InDelta(t, 13.1764, natal.DailyMotion(today, tomorrow), 1e-6)

	late, err := canned.Position(ctx, natal.Sun, time.Date(2400, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	later, err := canned.Position(ctx, natal.Sun, time.Date(2401, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.InDelta(t, natal.Normalize(late+0.9856*365), later, 1e-6)
}

func TestCannedHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DefaultCanned().Position(ctx, natal.Sun, time.Now())
	require.ErrorIs(t, err, context.Canceled)
	_, err = DefaultCanned().SiderealTime(ctx, time.Now())
	require.ErrorIs(t, err, context.Canceled)
}

func TestDefaultCannedDrivesEngine(t *testing.T) {
	engine := natal.NewEngine(DefaultCanned(), newTestLogger())
	chart, err := engine.Compute(context.Background(), natal.BirthInput{
		Date: "1990-06-15", Time: "14:30", Timezone: "IST", Latitude: 28.6, Longitude: 77.2,
	})
	require.NoError(t, err)
	require.Len(t, chart.Planets, 9)
	require.InDelta(t, 23.4393-0.0130*natal.JulianCenturies(chart.Moment.JulianDayTT), chart.Moment.Obliquity, 1e-12)
	require.InDelta(t, GreenwichMeanSiderealTime(chart.Moment.JulianDayUT), chart.Moment.SiderealTime, 1e-9)
}
