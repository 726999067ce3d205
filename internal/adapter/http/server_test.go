package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/monsoonlab/weather-marts-etl/internal/adapter/http"
	"github.com/monsoonlab/weather-marts-etl/internal/pipeline"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockRuns struct {
	summary pipeline.Summary
	ok      bool
}

func (m *mockRuns) LastSummary() (pipeline.Summary, bool) { return m.summary, m.ok }

func newTestServer(readyErr error, runs httpadapter.SummarySource) *httpadapter.Server {
	if runs == nil {
		runs = &mockRuns{}
	}
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, runs, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(fmt.Errorf("no pipeline run has completed yet"), nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no pipeline run has completed yet", body["error"])
}

func TestStatusReturns503BeforeFirstRun(t *testing.T) {
	srv := newTestServer(nil, &mockRuns{ok: false})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStatusReportsLastRun(t *testing.T) {
	runs := &mockRuns{
		summary: pipeline.Summary{
			RunID:       "run-123",
			RunDate:     time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
			RawRows:     120,
			StagingRows: 118,
			QualityRows: 110,
			DailyRows:   5,
			FeatureRows: 4,
			Duration:    1500 * time.Millisecond,
		},
		ok: true,
	}
	srv := newTestServer(nil, runs)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "run-123", body["run_id"])
	assert.Equal(t, "2024-06-15", body["run_date"])
	assert.InDelta(t, 120, body["raw_rows"], 0.01)
	assert.InDelta(t, 1.5, body["duration_seconds"], 0.001)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
