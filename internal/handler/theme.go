package handler

import (
	"net/http"

	"go.uber.org/zap"

	"openway/internal/httputil"
	"openway/internal/model"
	"openway/internal/repository"
	"openway/internal/service"
	"openway/internal/transport/http/middleware"
)

// ThemeHandler exposes the theme preference protocol to thin clients. Each
// request runs against a fresh ThemeService keyed by the caller's device.
type ThemeHandler struct {
	repo repository.ThemePreferenceRepository
	log  *zap.Logger
}

func NewThemeHandler(repo repository.ThemePreferenceRepository, log *zap.Logger) *ThemeHandler {
	return &ThemeHandler{repo: repo, log: log}
}

func (h *ThemeHandler) serviceFor(r *http.Request) (*service.ThemeService, model.DeviceID, bool) {
	id, ok := middleware.GetDeviceIDFromContext(r.Context())
	if !ok {
		return nil, "", false
	}
	svc := service.NewThemeService(h.repo, h.log)
	svc.SetDeviceID(id)
	return svc, id, true
}

// Get returns the stored mode, or light when nothing is stored.
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	svc, id, ok := h.serviceFor(r)
	if !ok {
		httputil.WriteBadRequestWithCode(w, httputil.ErrCodeMissingDevice, "X-Device-ID header is required")
		return
	}

	svc.Load(r.Context())
	httputil.WriteJSON(w, http.StatusOK, model.ThemeResponse{DeviceID: id, IsDarkMode: svc.IsDarkMode()})
}

// Toggle loads the stored mode, flips it and writes it back.
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	svc, id, ok := h.serviceFor(r)
	if !ok {
		httputil.WriteBadRequestWithCode(w, httputil.ErrCodeMissingDevice, "X-Device-ID header is required")
		return
	}

	svc.Load(r.Context())
	dark := svc.Toggle(r.Context())
	httputil.WriteJSON(w, http.StatusOK, model.ThemeResponse{DeviceID: id, IsDarkMode: dark})
}

// Set upserts an explicit mode.
func (h *ThemeHandler) Set(w http.ResponseWriter, r *http.Request) {
	svc, id, ok := h.serviceFor(r)
	if !ok {
		httputil.WriteBadRequestWithCode(w, httputil.ErrCodeMissingDevice, "X-Device-ID header is required")
		return
	}

	var req model.SetThemeRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	if req.IsDarkMode == nil {
		httputil.WriteBadRequestWithCode(w, httputil.ErrCodeValidation, "isDarkMode is required")
		return
	}

	svc.Upsert(r.Context(), id, *req.IsDarkMode)
	httputil.WriteJSON(w, http.StatusOK, model.ThemeResponse{DeviceID: id, IsDarkMode: *req.IsDarkMode})
}
