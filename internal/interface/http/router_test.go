package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/kundali/internal/domain/auth"
	"github.com/yanqian/kundali/internal/domain/chart"
	"github.com/yanqian/kundali/internal/domain/natal"
	"github.com/yanqian/kundali/internal/infra/config"
	apperrors "github.com/yanqian/kundali/pkg/errors"
)

func TestRouter_Health(t *testing.T) {
	server, _ := newRouterUnderTest(t, &stubCharts{})

	recorder := performRequest(server, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

func TestRouter_Reference(t *testing.T) {
	server, _ := newRouterUnderTest(t, &stubCharts{})

	recorder := performRequest(server, http.MethodGet, "/api/v1/reference", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Signs      []natal.SignInfo      `json:"signs"`
		Nakshatras []natal.NakshatraInfo `json:"nakshatras"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Signs, 12)
	require.Len(t, body.Nakshatras, 27)
}

func TestRouter_PreviewSuccess(t *testing.T) {
	svc := &stubCharts{
		previewFn: func(ctx context.Context, req chart.Request) (chart.Response, error) {
			require.Equal(t, "1990-06-15", req.DOB)
			require.NotNil(t, req.Lat)
			require.InDelta(t, 28.6139, *req.Lat, 1e-9)
			return chart.Response{Chart: natal.ChartResult{Lagna: natal.LagnaReading{Sign: natal.Virgo}}}, nil
		},
	}
	server, _ := newRouterUnderTest(t, svc)

	recorder := performRequest(server, http.MethodPost, "/api/v1/charts/preview",
		`{"dob":"1990-06-15","tob":"10:30","lat":28.6139,"lon":77.209,"tz":"IST"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var got chart.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, natal.Virgo, got.Chart.Lagna.Sign)
}

func TestRouter_PreviewInvalidJSON(t *testing.T) {
	server, _ := newRouterUnderTest(t, &stubCharts{})

	recorder := performRequest(server, http.MethodPost, "/api/v1/charts/preview", `{"lat":"north"}`, "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_PreviewErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"invalid input", apperrors.Wrap(natal.CodeInvalidInput, "latitude out of range", nil), http.StatusBadRequest, natal.CodeInvalidInput},
		{"ephemeris", apperrors.Wrap(natal.CodeEphemerisUnavailable, "position of Sun unavailable", nil), http.StatusBadGateway, natal.CodeEphemerisUnavailable},
		{"storage", apperrors.Wrap("storage_error", "failed to persist chart", nil), http.StatusInternalServerError, "storage_error"},
		{"unclassified", io.ErrUnexpectedEOF, http.StatusInternalServerError, "chart_failed"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubCharts{
				previewFn: func(context.Context, chart.Request) (chart.Response, error) {
					return chart.Response{}, tc.err
				},
			}
			server, _ := newRouterUnderTest(t, svc)

			recorder := performRequest(server, http.MethodPost, "/api/v1/charts/preview", `{}`, "")
			require.Equal(t, tc.status, recorder.Code)
			errBody := decodeErrorBody(t, recorder.Body.Bytes())
			require.Equal(t, tc.code, errBody["error"]["code"])
		})
	}
}

func TestRouter_CreateRequiresToken(t *testing.T) {
	server, _ := newRouterUnderTest(t, &stubCharts{})

	recorder := performRequest(server, http.MethodPost, "/api/v1/charts", `{}`, "")
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = performRequest(server, http.MethodPost, "/api/v1/charts", `{}`, "Basic abc")
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = performRequest(server, http.MethodPost, "/api/v1/charts", `{}`, "Bearer not-a-jwt")
	require.Equal(t, http.StatusForbidden, recorder.Code)
	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_token", errBody["error"]["code"])
}

func TestRouter_CreateUsesTokenSubject(t *testing.T) {
	svc := &stubCharts{
		createFn: func(ctx context.Context, owner string, req chart.Request) (chart.Response, error) {
			require.Equal(t, "user-42", owner)
			require.Equal(t, "Asha", req.Name)
			return chart.Response{ID: "c1", Name: req.Name}, nil
		},
	}
	server, authSvc := newRouterUnderTest(t, svc)
	token := issueToken(t, authSvc, "user-42")

	recorder := performRequest(server, http.MethodPost, "/api/v1/charts", `{"name":"Asha","dob":"1990-06-15","tob":"10:30"}`, "Bearer "+token)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var got chart.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "c1", got.ID)
}

func TestRouter_ListAndGet(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := &stubCharts{
		listFn: func(ctx context.Context, owner string) ([]chart.Summary, error) {
			require.Equal(t, "user-7", owner)
			return []chart.Summary{{ID: "c2", Name: "Ravi", LagnaSign: natal.Leo, CreatedAt: created}}, nil
		},
		getFn: func(ctx context.Context, owner, id string) (chart.Response, error) {
			require.Equal(t, "user-7", owner)
			if id != "c2" {
				return chart.Response{}, apperrors.Wrap("not_found", "chart not found", nil)
			}
			return chart.Response{ID: id}, nil
		},
	}
	server, authSvc := newRouterUnderTest(t, svc)
	bearer := "Bearer " + issueToken(t, authSvc, "user-7")

	recorder := performRequest(server, http.MethodGet, "/api/v1/charts", "", bearer)
	require.Equal(t, http.StatusOK, recorder.Code)
	var list struct {
		Charts []chart.Summary `json:"charts"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))
	require.Len(t, list.Charts, 1)
	require.Equal(t, natal.Leo, list.Charts[0].LagnaSign)

	recorder = performRequest(server, http.MethodGet, "/api/v1/charts/c2", "", bearer)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = performRequest(server, http.MethodGet, "/api/v1/charts/missing", "", bearer)
	require.Equal(t, http.StatusNotFound, recorder.Code)
	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "not_found", errBody["error"]["code"])
}

func TestRouter_CORSPreflight(t *testing.T) {
	server, _ := newRouterUnderTest(t, &stubCharts{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/charts/preview", nil)
	req.Header.Set("Origin", "https://charts.example")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestResolveOrigin(t *testing.T) {
	allowed := []string{"https://a.example", "https://b.example"}
	require.Equal(t, "https://b.example", resolveOrigin("https://B.example", allowed))
	require.Equal(t, "https://a.example", resolveOrigin("https://evil.example", allowed))
	require.Equal(t, "*", resolveOrigin("https://any.example", nil))
}

func TestRateLimiter(t *testing.T) {
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 2})
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.True(t, limiter.allow("10.0.0.1", now))
	require.True(t, limiter.allow("10.0.0.1", now))
	require.False(t, limiter.allow("10.0.0.1", now))
	require.True(t, limiter.allow("10.0.0.2", now))

	require.True(t, limiter.allow("10.0.0.1", now.Add(time.Second)))
}

func TestRouter_RateLimitExceeded(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	authSvc := auth.NewService(auth.Config{Secret: "router-test-secret", Issuer: "kundali"}, newTestLogger())
	server := NewRouter(cfg, NewHandler(&stubCharts{}, authSvc, newTestLogger()))

	require.Equal(t, http.StatusOK, performRequest(server, http.MethodGet, "/healthz", "", "").Code)
	recorder := performRequest(server, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "rate_limit_exceeded", errBody["error"]["code"])
}

func performRequest(server *http.Server, method, path, body, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, svc chart.Service) (*http.Server, auth.Service) {
	t.Helper()
	authSvc := auth.NewService(auth.Config{Secret: "router-test-secret", Issuer: "kundali"}, newTestLogger())
	handler := NewHandler(svc, authSvc, newTestLogger())
	return NewRouter(testConfig(), handler), authSvc
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
}

func issueToken(t *testing.T, svc auth.Service, subject string) string {
	t.Helper()
	resp, err := svc.IssueToken(subject, time.Hour)
	require.NoError(t, err)
	return resp.Token
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubCharts struct {
	previewFn func(ctx context.Context, req chart.Request) (chart.Response, error)
	createFn  func(ctx context.Context, owner string, req chart.Request) (chart.Response, error)
	getFn     func(ctx context.Context, owner, id string) (chart.Response, error)
	listFn    func(ctx context.Context, owner string) ([]chart.Summary, error)
}

func (s *stubCharts) Preview(ctx context.Context, req chart.Request) (chart.Response, error) {
	if s.previewFn != nil {
		return s.previewFn(ctx, req)
	}
	return chart.Response{}, nil
}

func (s *stubCharts) Create(ctx context.Context, owner string, req chart.Request) (chart.Response, error) {
	if s.createFn != nil {
		return s.createFn(ctx, owner, req)
	}
	return chart.Response{}, nil
}

func (s *stubCharts) Get(ctx context.Context, owner, id string) (chart.Response, error) {
	if s.getFn != nil {
		return s.getFn(ctx, owner, id)
	}
	return chart.Response{}, nil
}

func (s *stubCharts) List(ctx context.Context, owner string) ([]chart.Summary, error) {
	if s.listFn != nil {
		return s.listFn(ctx, owner)
	}
	return nil, nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
