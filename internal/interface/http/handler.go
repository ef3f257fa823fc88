package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/kundali/internal/domain/auth"
	"github.com/yanqian/kundali/internal/domain/chart"
	"github.com/yanqian/kundali/internal/domain/natal"
	apperrors "github.com/yanqian/kundali/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	chartSvc chart.Service
	authSvc  auth.Service
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(chartSvc chart.Service, authSvc auth.Service, logger *slog.Logger) *Handler {
	return &Handler{
		chartSvc: chartSvc,
		authSvc:  authSvc,
		logger:   logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Reference returns the static zodiac and lunar mansion tables.
func (h *Handler) Reference(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"signs":      natal.Signs(),
		"nakshatras": natal.Nakshatras(),
	})
}

// PreviewChart computes a chart without storing it.
func (h *Handler) PreviewChart(c *gin.Context) {
	var req chart.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.chartSvc.Preview(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, chartError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// CreateChart computes and stores a chart for the caller.
func (h *Handler) CreateChart(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}
	var req chart.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.chartSvc.Create(c.Request.Context(), claims.Subject, req)
	if err != nil {
		abortWithError(c, chartError(err))
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListCharts returns the caller's stored charts, newest first.
func (h *Handler) ListCharts(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	items, err := h.chartSvc.List(c.Request.Context(), claims.Subject)
	if err != nil {
		abortWithError(c, chartError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"charts": items})
}

// GetChart returns one stored chart.
func (h *Handler) GetChart(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}

	resp, err := h.chartSvc.Get(c.Request.Context(), claims.Subject, c.Param("id"))
	if err != nil {
		abortWithError(c, chartError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func chartError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case natal.CodeInvalidInput:
		status = http.StatusBadRequest
	case "not_found":
		status = http.StatusNotFound
	case natal.CodeEphemerisUnavailable:
		status = http.StatusBadGateway
	case "invalid_token":
		status = http.StatusForbidden
	case "":
		code = "chart_failed"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	return apperrors.MessageOf(err)
}
