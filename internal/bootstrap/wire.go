//go:build wireinject
// +build wireinject

package bootstrap

import (
	"log/slog"

	"github.com/google/wire"

	"github.com/yanqian/kundali/internal/domain/auth"
	"github.com/yanqian/kundali/internal/domain/chart"
	"github.com/yanqian/kundali/internal/domain/natal"
	"github.com/yanqian/kundali/internal/infra/chartarchive"
	"github.com/yanqian/kundali/internal/infra/chartcache"
	"github.com/yanqian/kundali/internal/infra/chartrepo"
	"github.com/yanqian/kundali/internal/infra/config"
	httpiface "github.com/yanqian/kundali/internal/interface/http"
	"github.com/yanqian/kundali/pkg/logger"
)

var engineSet = wire.NewSet(
	ProvideEphemeris,
	natal.NewEngine,
	wire.Bind(new(chart.Computer), new(*natal.Engine)),
)

// InitializeApp builds the HTTP server with every configured backend.
func InitializeApp() (*App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		engineSet,
		ProvideChartConfig,
		ProvideAuthConfig,
		ProvideRepository,
		ProvideCache,
		ProvideArchive,
		chart.NewService,
		auth.NewService,
		httpiface.NewHandler,
		httpiface.NewRouter,
		NewApp,
	)
	return nil, nil, nil
}

// InitializeChartService builds a chart service that persists to the
// configured store.
func InitializeChartService(cfg *config.Config, logger *slog.Logger) (chart.Service, func(), error) {
	wire.Build(
		engineSet,
		ProvideChartConfig,
		ProvideRepository,
		ProvideCache,
		ProvideArchive,
		chart.NewService,
	)
	return nil, nil, nil
}

// InitializePreviewService builds a chart service backed only by memory.
func InitializePreviewService(cfg *config.Config, logger *slog.Logger) (chart.Service, func(), error) {
	wire.Build(
		engineSet,
		ProvideChartConfig,
		chartrepo.NewMemoryRepository,
		chartcache.NewMemoryCache,
		wire.Bind(new(chart.Repository), new(*chartrepo.MemoryRepository)),
		wire.Bind(new(chart.Cache), new(*chartcache.MemoryCache)),
		wire.InterfaceValue(new(chart.Archive), chartarchive.Discard{}),
		chart.NewService,
	)
	return nil, nil, nil
}

// InitializeAuthService builds the token issuer.
func InitializeAuthService(cfg *config.Config, logger *slog.Logger) auth.Service {
	wire.Build(ProvideAuthConfig, auth.NewService)
	return nil
}
