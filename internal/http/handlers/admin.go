package handlers

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/preston-bernstein/ops-console-service/internal/admin"
	"github.com/preston-bernstein/ops-console-service/internal/http/requestutil"
	"github.com/preston-bernstein/ops-console-service/internal/logging"
)

// AdminHandler exposes the per-brand admin catalog. Writes are guarded by ADMIN_TOKEN.
type AdminHandler struct {
	registry *admin.Registry
	token    string
	logger   *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(registry *admin.Registry, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		registry: registry,
		token:    token,
		logger:   logger,
	}
}

// Register mounts the admin routes.
func (h *AdminHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /admin/brands", h.Brands)
	mux.HandleFunc("GET /admin/catalog", h.Catalog)
	mux.HandleFunc("POST /admin/catalog/{section}", h.requireToken(h.Add))
	mux.HandleFunc("PATCH /admin/catalog/{section}/{id}", h.requireToken(h.Update))
	mux.HandleFunc("POST /admin/catalog/{section}/{id}/toggle", h.requireToken(h.Toggle))
}

func (h *AdminHandler) Brands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"brands": h.registry.Brands()}, loggerFromContext(r, h.logger))
}

// Catalog returns every section for ?brand= (default brand when empty).
func (h *AdminHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	c, err := h.registry.Catalog(brandParam(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c, loggerFromContext(r, h.logger))
}

func (h *AdminHandler) Add(w http.ResponseWriter, r *http.Request) {
	var rec admin.NewRecord
	if err := decodeBody(r, &rec); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	id, err := h.registry.Add(brandParam(r), r.PathValue("section"), rec)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id}, loggerFromContext(r, h.logger))
}

func (h *AdminHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch admin.Patch
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	if err := h.registry.Update(brandParam(r), r.PathValue("section"), r.PathValue("id"), patch); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	checked, err := h.registry.Toggle(brandParam(r), r.PathValue("section"), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"checked": checked}, loggerFromContext(r, h.logger))
}

func (h *AdminHandler) requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.authorize(r) {
			logging.Warn(h.logger, "admin unauthorized",
				slog.String(logging.FieldPath, r.URL.Path),
				slog.String("client_ip", requestutil.ClientIP(r)),
			)
			writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
			return
		}
		next(w, r)
	}
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}

func (h *AdminHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger := loggerFromContext(r, h.logger)
	status := http.StatusInternalServerError
	code := ""
	switch {
	case errors.Is(err, admin.ErrDuplicate):
		status, code = http.StatusConflict, "duplicate"
	case errors.Is(err, admin.ErrInvalid):
		status, code = http.StatusBadRequest, "invalid"
	case errors.Is(err, admin.ErrUnsupported):
		status, code = http.StatusBadRequest, "unsupported"
	case errors.Is(err, admin.ErrNotFound), errors.Is(err, admin.ErrUnknownBrand):
		status, code = http.StatusNotFound, "not_found"
	}
	logging.Warn(logger, "admin request rejected", logging.FieldBrand, brandParam(r), "error", err)
	writeErrorBody(w, r, status, errorBody{Error: err.Error(), Code: code}, logger)
}

func brandParam(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("brand"))
}
