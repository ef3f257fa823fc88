package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/kundali/internal/bootstrap"
	"github.com/yanqian/kundali/internal/domain/chart"
	"github.com/yanqian/kundali/internal/domain/natal"
	"github.com/yanqian/kundali/internal/infra/config"
)

func TestParseRequests(t *testing.T) {
	reqs, batch, err := parseRequests([]byte(` {"name":"Asha","dob":"1990-06-15","tob":"10:30","lat":28.6,"lon":77.2,"tz":"IST"} `))
	require.NoError(t, err)
	require.False(t, batch)
	require.Len(t, reqs, 1)
	require.Equal(t, "Asha", reqs[0].Name)
	require.InDelta(t, 28.6, *reqs[0].Lat, 1e-9)

	reqs, batch, err = parseRequests([]byte(`[{"name":"A","dob":"1990-06-15"},{"name":"B","dob":"1985-01-02"}]`))
	require.NoError(t, err)
	require.True(t, batch)
	require.Len(t, reqs, 2)
	require.Equal(t, "1985-01-02", reqs[1].DOB)
}

func TestParseRequestsRejects(t *testing.T) {
	for _, raw := range []string{"", "   ", "[]", `"text"`, `{"name":"A","birthday":"1990"}`, `{"lat":"north"}`} {
		_, _, err := parseRequests([]byte(raw))
		require.Error(t, err, raw)
	}
}

func TestFormatDegree(t *testing.T) {
	require.Equal(t, "0°00'00\"", formatDegree(0))
	require.Equal(t, "15°30'00\"", formatDegree(15.5))
	require.Equal(t, "29°59'59\"", formatDegree(29.99972))
	require.Equal(t, "-1°15'00\"", formatDegree(-1.25))
}

func TestRenderTableAndJSON(t *testing.T) {
	resp := previewChart(t)

	var table bytes.Buffer
	require.NoError(t, render(&table, "table", []chart.Response{resp}, false))
	out := table.String()
	require.Contains(t, out, "Asha")
	require.Contains(t, out, "Lagna")
	for _, p := range natal.Planets {
		require.Contains(t, out, string(p))
	}

	var single bytes.Buffer
	require.NoError(t, render(&single, "json", []chart.Response{resp}, false))
	var decoded chart.Response
	require.NoError(t, json.Unmarshal(single.Bytes(), &decoded))
	require.Equal(t, resp.Chart.Lagna.Sign, decoded.Chart.Lagna.Sign)

	var batch bytes.Buffer
	require.NoError(t, render(&batch, "json", []chart.Response{resp}, true))
	require.True(t, strings.HasPrefix(strings.TrimSpace(batch.String()), "["))

	var empty bytes.Buffer
	require.NoError(t, render(&empty, "json", nil, true))
	require.Equal(t, "[]", strings.TrimSpace(empty.String()))
}

func TestMotionFlags(t *testing.T) {
	require.Equal(t, "-", motionFlags(natal.PlanetReading{}))
	require.Equal(t, "R,C", motionFlags(natal.PlanetReading{Retrograde: true, Combust: true}))
}

func previewChart(t *testing.T) chart.Response {
	t.Helper()
	cfg := &config.Config{Ephemeris: config.EphemerisConfig{Mode: config.EphemerisCanned}}
	svc, cleanup, err := bootstrap.InitializePreviewService(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(cleanup)

	reqs, _, err := parseRequests([]byte(`{"name":"Asha","dob":"1990-06-15","tob":"10:30","place":"Delhi","lat":28.6139,"lon":77.209,"tz":"IST"}`))
	require.NoError(t, err)
	resp, err := svc.Preview(context.Background(), reqs[0])
	require.NoError(t, err)
	return resp
}
