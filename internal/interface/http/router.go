package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/kundali/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/reference", handler.Reference)
		api.POST("/charts/preview", handler.PreviewChart)
	}

	charts := api.Group("/charts", authMiddleware(handler.authSvc))
	{
		charts.POST("", handler.CreateChart)
		charts.GET("", handler.ListCharts)
		charts.GET("/:id", handler.GetChart)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
