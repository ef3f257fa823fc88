package bootstrap

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/kundali/internal/domain/auth"
	"github.com/yanqian/kundali/internal/domain/chart"
	"github.com/yanqian/kundali/internal/domain/natal"
	"github.com/yanqian/kundali/internal/infra/chartarchive"
	"github.com/yanqian/kundali/internal/infra/chartcache"
	"github.com/yanqian/kundali/internal/infra/chartrepo"
	"github.com/yanqian/kundali/internal/infra/config"
	"github.com/yanqian/kundali/internal/infra/ephemeris"
)

// ProvideEphemeris opens the configured position source.
func ProvideEphemeris(cfg *config.Config, logger *slog.Logger) (natal.Ephemeris, func(), error) {
	if cfg.Ephemeris.Mode == config.EphemerisCanned {
		logger.Warn("using canned ephemeris, positions are approximate")
		return ephemeris.DefaultCanned(), func() {}, nil
	}
	jpl, err := ephemeris.OpenJPL(cfg.Ephemeris.Path, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := jpl.Close(); err != nil {
			logger.Error("close ephemeris failed", "error", err)
		}
	}
	return jpl, cleanup, nil
}

// ProvideChartConfig maps runtime config onto the chart domain.
func ProvideChartConfig(cfg *config.Config) chart.Config {
	return chart.Config{
		CacheTTL:      cfg.Cache.TTL,
		ListLimit:     cfg.Chart.ListLimit,
		ArchivePrefix: cfg.Archive.Prefix,
	}
}

// ProvideAuthConfig maps runtime config onto the auth domain. An empty secret
// is replaced by a random one so tokens only live as long as the process.
func ProvideAuthConfig(cfg *config.Config, logger *slog.Logger) auth.Config {
	secret := cfg.Auth.Secret
	if strings.TrimSpace(secret) == "" {
		buf := make([]byte, 32)
		_, _ = rand.Read(buf)
		secret = hex.EncodeToString(buf)
		logger.Warn("auth secret not set, generated an ephemeral one")
	}
	return auth.Config{
		Secret:   secret,
		Issuer:   cfg.Auth.Issuer,
		TokenTTL: cfg.Auth.TokenTTL,
	}
}

// ProvideRepository selects the chart store, falling back to memory when the
// configured backend cannot be reached.
func ProvideRepository(cfg *config.Config, logger *slog.Logger) (chart.Repository, func()) {
	noop := func() {}
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := openPostgres(cfg.Storage.Postgres, logger)
		if err != nil {
			logger.Error("postgres unavailable, using memory repository", "error", err)
			return chartrepo.NewMemoryRepository(), noop
		}
		logger.Info("chart postgres repository enabled")
		return chartrepo.NewPostgresRepository(pool), pool.Close
	case config.StorageSQLite:
		repo, err := chartrepo.OpenSQLite(cfg.Storage.SQLite.Path)
		if err != nil {
			logger.Error("sqlite unavailable, using memory repository", "path", cfg.Storage.SQLite.Path, "error", err)
			return chartrepo.NewMemoryRepository(), noop
		}
		logger.Info("chart sqlite repository enabled", "path", cfg.Storage.SQLite.Path)
		return repo, func() {
			if err := repo.Close(); err != nil {
				logger.Error("close sqlite failed", "error", err)
			}
		}
	default:
		logger.Info("using memory chart repository")
		return chartrepo.NewMemoryRepository(), noop
	}
}

func openPostgres(cfg config.PostgresConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.DSN))
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	logger.Debug("postgres pool ready", "maxConns", poolConfig.MaxConns)
	return pool, nil
}

// ProvideCache returns the valkey chart cache when enabled and reachable,
// otherwise an in-process cache.
func ProvideCache(cfg *config.Config, logger *slog.Logger) (chart.Cache, func()) {
	if cfg.Cache.Enabled {
		opt, err := buildValkeyOptions(cfg.Cache.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return chartcache.NewMemoryCache(), func() {}
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return chartcache.NewMemoryCache(), func() {}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
		} else {
			logger.Info("chart valkey cache enabled", "addr", cfg.Cache.Addr)
			cache := chartcache.NewValkeyCache(client, cfg.Cache.Prefix)
			return cache, cache.Close
		}
	}
	return chartcache.NewMemoryCache(), func() {}
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

// ProvideArchive returns the snapshot bucket, or a discarding archive when
// archiving is off or misconfigured.
func ProvideArchive(cfg *config.Config, logger *slog.Logger) chart.Archive {
	if !cfg.Archive.Enabled {
		return chartarchive.Discard{}
	}
	a := cfg.Archive
	archive, err := chartarchive.NewS3Archive(a.Endpoint, a.AccessKey, a.SecretKey, a.Bucket, a.Region, logger)
	if err != nil {
		logger.Error("chart archive disabled", "error", err)
		return chartarchive.Discard{}
	}
	logger.Info("chart archive enabled", "bucket", a.Bucket)
	return archive
}
