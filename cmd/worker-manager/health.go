package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"jobezie-workers/internal/common/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type pinger func(ctx context.Context) error

type healthServer struct {
	srv    *http.Server
	log    logger.Logger
	checks map[string]pinger
}

func newHealthServer(port int, log logger.Logger, checks map[string]pinger) *healthServer {
	if port == 0 {
		port = 8080
	}
	h := &healthServer{log: log, checks: checks}
	h.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           h.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return h
}

func (h *healthServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "healthy"})
	})
	mux.HandleFunc("/ready", h.ready)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// ready pings every dependency and reports 503 if any of them fails.
func (h *healthServer) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			status = http.StatusServiceUnavailable
			results[name] = err.Error()
			h.log.Warn("readiness check failed", map[string]interface{}{"dependency": name, "error": err})
			continue
		}
		results[name] = "ok"
	}

	body := map[string]interface{}{"status": "ready", "checks": results}
	if status != http.StatusOK {
		body["status"] = "not_ready"
	}
	writeJSON(w, status, body)
}

func (h *healthServer) serve() {
	h.log.Info("health/metrics server listening", map[string]interface{}{"addr": h.srv.Addr})
	if err := h.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		h.log.Error("health/metrics server failed", map[string]interface{}{"error": err})
	}
}

func (h *healthServer) shutdown(ctx context.Context) {
	if err := h.srv.Shutdown(ctx); err != nil {
		h.log.Warn("health server shutdown", map[string]interface{}{"error": err})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
