package ephemeris

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/kundali/internal/domain/natal"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenJPLMissingFile(t *testing.T) {
	_, err := OpenJPL(filepath.Join(t.TempDir(), "missing.bin"), newTestLogger())
	require.Error(t, err)
}

// Set JPL_EPHEMERIS_FILE to a DE binary (de421.bin, de440.bin) to run.
func TestJPLSunAtJ2000(t *testing.T) {
	path := os.Getenv("JPL_EPHEMERIS_FILE")
	if path == "" {
		t.Skip("JPL_EPHEMERIS_FILE not set")
	}
	jpl, err := OpenJPL(path, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = jpl.Close() })

	ctx := context.Background()
	noon := time.Date(2000, 1, 1, 11, 58, 56, 0, time.UTC)
	sun, err := jpl.Position(ctx, natal.Sun, noon)
	require.NoError(t, err)
	require.InDelta(t, 280.37, sun, 0.1)

	_, err = jpl.Position(ctx, natal.Rahu, noon)
	require.ErrorIs(t, err, ErrUnknownBody)

	_, err = jpl.Position(ctx, natal.Sun, time.Date(1000, 1, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
}
