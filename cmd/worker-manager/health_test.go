package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobezie-workers/internal/common/config"
	"jobezie-workers/internal/common/logger"
	"jobezie-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error { return nil }

func TestHealthServer_Health(t *testing.T) {
	h := newHealthServer(0, logger.NewTestLogger(t), nil)
	assert.Equal(t, ":8080", h.srv.Addr)

	rec := httptest.NewRecorder()
	h.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestHealthServer_Ready(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]pinger
		wantStatus int
		wantBody   string
	}{
		{
			name:       "all dependencies up",
			checks:     map[string]pinger{"postgres": ok, "redis": ok},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready","checks":{"postgres":"ok","redis":"ok"}}`,
		},
		{
			name: "redis down",
			checks: map[string]pinger{
				"postgres": ok,
				"redis":    func(context.Context) error { return fmt.Errorf("dial tcp: connection refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"not_ready","checks":{"postgres":"ok","redis":"dial tcp: connection refused"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHealthServer(9090, logger.NewTestLogger(t), tt.checks)
			rec := httptest.NewRecorder()
			h.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestHealthServer_Metrics(t *testing.T) {
	h := newHealthServer(0, logger.NewTestLogger(t), nil)
	rec := httptest.NewRecorder()
	h.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWorkerDeps_Timeout(t *testing.T) {
	reg, err := registry.Parse([]byte(`{"activities":[
		{"taskType":"score-resume-ats","timeout":"12s"},
		{"taskType":"check-career-readiness","timeout":"bogus"}
	]}`))
	require.NoError(t, err)

	d := workerDeps{
		cfg: &config.Config{Workers: map[string]config.WorkerConfig{
			"calculate-follow-up-priority": {Enabled: true, Timeout: 2500},
		}},
		registry: reg,
	}

	assert.Equal(t, 2500*time.Millisecond, d.timeout("calculate-follow-up-priority", time.Second))
	assert.Equal(t, 12*time.Second, d.timeout("score-resume-ats", time.Second))
	assert.Equal(t, time.Second, d.timeout("check-career-readiness", time.Second))
	assert.Equal(t, time.Second, d.timeout("unknown", time.Second))
}

func TestWorkerDeps_OptionalBackendsAreNilInterfaces(t *testing.T) {
	d := workerDeps{}
	assert.Nil(t, d.atsIndex())
	assert.Nil(t, d.latestScores())
	assert.Nil(t, d.emailSender())
	assert.Nil(t, d.smsSender())
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusTeapot, map[string]int{"n": 1})
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var got map[string]int
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 1, got["n"])
}
