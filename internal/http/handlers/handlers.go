package handlers

import (
	"log/slog"
	nethttp "net/http"

	"github.com/preston-bernstein/ops-console-service/internal/refresher"
)

// Handler serves the health and readiness checks.
type Handler struct {
	logger   *slog.Logger
	statusFn func() refresher.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case the service is always ready.
func NewHandler(logger *slog.Logger, statusFn func() refresher.Status) *Handler {
	return &Handler{logger: logger, statusFn: statusFn}
}

// Register mounts /health and /ready.
func (h *Handler) Register(mux *nethttp.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

type readiness struct {
	Status  string            `json:"status"`
	Refresh *refresher.Status `json:"refresh,omitempty"`
}

// Ready answers 200 once the KYC catalog has loaded and is not failing repeatedly.
// The refresh status rides along in both the ready body and the error detail.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, readiness{Status: "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, readiness{Status: "ready", Refresh: &status}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeErrorBody(w, r, nethttp.StatusServiceUnavailable, errorBody{Error: msg, Code: "not_ready", Detail: status}, h.logger)
}
