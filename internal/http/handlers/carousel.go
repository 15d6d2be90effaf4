package handlers

import (
	"errors"
	"log/slog"
	nethttp "net/http"

	appcarousel "github.com/preston-bernstein/ops-console-service/internal/app/carousel"
	"github.com/preston-bernstein/ops-console-service/internal/carousel"
	"github.com/preston-bernstein/ops-console-service/internal/http/requestutil"
	"github.com/preston-bernstein/ops-console-service/internal/store"
)

// CarouselHandler exposes carousel editing sessions.
type CarouselHandler struct {
	svc    *appcarousel.Service
	logger *slog.Logger
}

// NewCarouselHandler constructs a CarouselHandler.
func NewCarouselHandler(svc *appcarousel.Service, logger *slog.Logger) *CarouselHandler {
	return &CarouselHandler{svc: svc, logger: logger}
}

type reorderRequest struct {
	DraggedID string `json:"draggedId"`
	TargetID  string `json:"targetId"`
}

// Register mounts the session routes.
func (h *CarouselHandler) Register(mux *nethttp.ServeMux) {
	mux.HandleFunc("GET /carousel/sessions", h.List)
	mux.HandleFunc("POST /carousel/sessions", h.Open)
	mux.HandleFunc("GET /carousel/sessions/{id}", h.View)
	mux.HandleFunc("DELETE /carousel/sessions/{id}", h.Close)
	mux.HandleFunc("POST /carousel/sessions/{id}/entries", h.AddEntry)
	mux.HandleFunc("DELETE /carousel/sessions/{id}/entries/{entryId}", h.RemoveEntry)
	mux.HandleFunc("POST /carousel/sessions/{id}/entries/{entryId}/visibility", h.ToggleVisible)
	mux.HandleFunc("POST /carousel/sessions/{id}/reorder", h.Reorder)
	mux.HandleFunc("POST /carousel/sessions/{id}/save", h.Save)
	mux.HandleFunc("POST /carousel/sessions/{id}/cancel", h.Cancel)
}

type sessionList struct {
	Sessions []store.Info `json:"sessions"`
}

func (h *CarouselHandler) List(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, sessionList{Sessions: h.svc.Sessions()}, loggerFromContext(r, h.logger))
}

func (h *CarouselHandler) Open(w nethttp.ResponseWriter, r *nethttp.Request) {
	view, err := h.svc.Open(r.Context())
	h.respond(w, r, nethttp.StatusCreated, view, err)
}

func (h *CarouselHandler) View(w nethttp.ResponseWriter, r *nethttp.Request) {
	view, err := h.svc.View(r.Context(), r.PathValue("id"))
	h.respond(w, r, nethttp.StatusOK, view, err)
}

// Close ends a session; ?force=true discards unsaved changes.
func (h *CarouselHandler) Close(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := h.svc.Close(r.Context(), r.PathValue("id"), requestutil.QueryBool(r, "force")); err != nil {
		h.respond(w, r, nethttp.StatusOK, appcarousel.View{}, err)
		return
	}
	w.WriteHeader(nethttp.StatusNoContent)
}

func (h *CarouselHandler) AddEntry(w nethttp.ResponseWriter, r *nethttp.Request) {
	view, err := h.svc.AddEntry(r.Context(), r.PathValue("id"))
	h.respond(w, r, nethttp.StatusCreated, view, err)
}

func (h *CarouselHandler) RemoveEntry(w nethttp.ResponseWriter, r *nethttp.Request) {
	view, err := h.svc.RemoveEntry(r.Context(), r.PathValue("id"), r.PathValue("entryId"))
	h.respond(w, r, nethttp.StatusOK, view, err)
}

func (h *CarouselHandler) ToggleVisible(w nethttp.ResponseWriter, r *nethttp.Request) {
	view, err := h.svc.ToggleVisible(r.Context(), r.PathValue("id"), r.PathValue("entryId"))
	h.respond(w, r, nethttp.StatusOK, view, err)
}

func (h *CarouselHandler) Reorder(w nethttp.ResponseWriter, r *nethttp.Request) {
	var req reorderRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
		return
	}
	if req.DraggedID == "" || req.TargetID == "" {
		writeError(w, r, nethttp.StatusBadRequest, "draggedId and targetId are required", h.logger)
		return
	}
	view, err := h.svc.Reorder(r.Context(), r.PathValue("id"), req.DraggedID, req.TargetID)
	h.respond(w, r, nethttp.StatusOK, view, err)
}

func (h *CarouselHandler) Save(w nethttp.ResponseWriter, r *nethttp.Request) {
	view, err := h.svc.Save(r.Context(), r.PathValue("id"))
	h.respond(w, r, nethttp.StatusOK, view, err)
}

func (h *CarouselHandler) Cancel(w nethttp.ResponseWriter, r *nethttp.Request) {
	view, err := h.svc.Cancel(r.Context(), r.PathValue("id"))
	h.respond(w, r, nethttp.StatusOK, view, err)
}

func (h *CarouselHandler) respond(w nethttp.ResponseWriter, r *nethttp.Request, status int, view appcarousel.View, err error) {
	logger := loggerFromContext(r, h.logger)
	if err == nil {
		writeJSON(w, status, view, logger)
		return
	}

	code, status := carouselErrorStatus(err)
	body := errorBody{Error: err.Error(), Code: code}
	if view.ID != "" {
		body.Detail = view
	}
	writeErrorBody(w, r, status, body, logger)
}

func carouselErrorStatus(err error) (string, int) {
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		return "session_not_found", nethttp.StatusNotFound
	case errors.Is(err, store.ErrSessionDirty):
		return "unsaved_changes", nethttp.StatusConflict
	case errors.Is(err, carousel.ErrCapacityExceeded):
		return "capacity_exceeded", nethttp.StatusConflict
	case errors.Is(err, carousel.ErrIllegalPromotion):
		return "illegal_promotion", nethttp.StatusConflict
	case errors.Is(err, carousel.ErrUnresolvableReference):
		return "unresolvable_reference", nethttp.StatusNotFound
	default:
		return "", nethttp.StatusInternalServerError
	}
}
