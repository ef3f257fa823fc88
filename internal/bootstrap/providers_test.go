package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/kundali/internal/domain/chart"
	"github.com/yanqian/kundali/internal/infra/chartarchive"
	"github.com/yanqian/kundali/internal/infra/chartcache"
	"github.com/yanqian/kundali/internal/infra/chartrepo"
	"github.com/yanqian/kundali/internal/infra/config"
)

func TestProvideRepository(t *testing.T) {
	logger := newTestLogger()

	cfg := &config.Config{Storage: config.StorageConfig{Driver: config.StorageMemory}}
	repo, cleanup := ProvideRepository(cfg, logger)
	cleanup()
	require.IsType(t, &chartrepo.MemoryRepository{}, repo)

	cfg.Storage = config.StorageConfig{Driver: config.StorageSQLite, SQLite: config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "charts.db")}}
	repo, cleanup = ProvideRepository(cfg, logger)
	t.Cleanup(cleanup)
	require.IsType(t, &chartrepo.SQLiteRepository{}, repo)

	cfg.Storage = config.StorageConfig{Driver: config.StoragePostgres, Postgres: config.PostgresConfig{DSN: "::not a dsn::"}}
	repo, cleanup = ProvideRepository(cfg, logger)
	cleanup()
	require.IsType(t, &chartrepo.MemoryRepository{}, repo)
}

func TestProvideCacheAndArchiveDefaults(t *testing.T) {
	cfg := &config.Config{}
	cache, cleanup := ProvideCache(cfg, newTestLogger())
	cleanup()
	require.IsType(t, &chartcache.MemoryCache{}, cache)

	require.Equal(t, chartarchive.Discard{}, ProvideArchive(cfg, newTestLogger()))

	cfg.Archive = config.ArchiveConfig{Enabled: true, Endpoint: "localhost:9000"}
	require.Equal(t, chartarchive.Discard{}, ProvideArchive(cfg, newTestLogger()))
}

func TestProvideAuthConfigGeneratesSecret(t *testing.T) {
	cfg := &config.Config{Auth: config.AuthConfig{Issuer: "kundali"}}
	first := ProvideAuthConfig(cfg, newTestLogger())
	second := ProvideAuthConfig(cfg, newTestLogger())
	require.Len(t, first.Secret, 64)
	require.NotEqual(t, first.Secret, second.Secret)

	cfg.Auth.Secret = "configured"
	require.Equal(t, "configured", ProvideAuthConfig(cfg, newTestLogger()).Secret)
}

func TestProvideEphemerisMissingFile(t *testing.T) {
	cfg := &config.Config{Ephemeris: config.EphemerisConfig{Mode: config.EphemerisJPL, Path: filepath.Join(t.TempDir(), "missing.440")}}
	_, _, err := ProvideEphemeris(cfg, newTestLogger())
	require.Error(t, err)
}

func TestInitializePreviewService(t *testing.T) {
	cfg := &config.Config{
		Ephemeris: config.EphemerisConfig{Mode: config.EphemerisCanned},
		Chart:     config.ChartConfig{ListLimit: 10},
	}
	svc, cleanup, err := InitializePreviewService(cfg, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	lat, lon := 28.6139, 77.2090
	resp, err := svc.Preview(context.Background(), chart.Request{
		DOB: "1990-06-15", TOB: "10:30", Lat: &lat, Lon: &lon, TZ: "IST",
	})
	require.NoError(t, err)
	require.Len(t, resp.Chart.Planets, 9)
	require.NotEmpty(t, resp.Chart.Lagna.Sign)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
