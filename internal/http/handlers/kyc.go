package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"

	appkyc "github.com/preston-bernstein/ops-console-service/internal/app/kyc"
)

// KYCHandler exposes the KYC catalog and document request shaping.
type KYCHandler struct {
	svc    *appkyc.Service
	logger *slog.Logger
}

// NewKYCHandler constructs a KYCHandler.
func NewKYCHandler(svc *appkyc.Service, logger *slog.Logger) *KYCHandler {
	return &KYCHandler{svc: svc, logger: logger}
}

type documentRequest struct {
	Actions []appkyc.Action `json:"actions"`
}

// Register mounts the KYC routes.
func (h *KYCHandler) Register(mux *nethttp.ServeMux) {
	mux.HandleFunc("GET /kyc/state", h.State)
	mux.HandleFunc("POST /kyc/refresh", h.Refresh)
	mux.HandleFunc("GET /kyc/draft", h.Draft)
	mux.HandleFunc("POST /kyc/requests", h.BuildRequest)
}

// State returns each catalog resource with its load status.
func (h *KYCHandler) State(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, h.svc.State(), loggerFromContext(r, h.logger))
}

// Refresh reloads the catalog. Partial failures still return the current state.
func (h *KYCHandler) Refresh(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	state, err := h.svc.Refresh(r.Context())
	if err != nil {
		writeErrorBody(w, r, nethttp.StatusBadGateway, errorBody{Error: err.Error(), Code: "refresh_failed", Detail: state}, logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, state, logger)
}

// Draft returns the selection draft a new document request starts from.
func (h *KYCHandler) Draft(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, h.svc.Draft(), loggerFromContext(r, h.logger))
}

// BuildRequest replays the posted draft actions and returns the shaped request.
func (h *KYCHandler) BuildRequest(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromContext(r, h.logger)
	var req documentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
		return
	}
	sub, err := h.svc.BuildRequest(r.Context(), req.Actions)
	switch {
	case errors.Is(err, appkyc.ErrNotReady):
		writeErrorBody(w, r, nethttp.StatusServiceUnavailable, errorBody{Error: err.Error(), Code: "catalog_not_ready"}, logger)
	case errors.Is(err, appkyc.ErrInvalidAction):
		writeErrorBody(w, r, nethttp.StatusBadRequest, errorBody{Error: err.Error(), Code: "invalid_action"}, logger)
	case err != nil:
		writeError(w, r, nethttp.StatusInternalServerError, err.Error(), logger)
	default:
		writeJSON(w, nethttp.StatusOK, sub, logger)
	}
}
