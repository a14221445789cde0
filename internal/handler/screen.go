package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"openway/internal/httputil"
	"openway/internal/model"
	"openway/internal/repository"
	"openway/internal/screen"
	"openway/internal/service"
	"openway/internal/transport/http/middleware"
)

// ScreenHandler tells a client how to render a screen for its device.
type ScreenHandler struct {
	repo repository.ThemePreferenceRepository
	log  *zap.Logger
}

func NewScreenHandler(repo repository.ThemePreferenceRepository, log *zap.Logger) *ScreenHandler {
	return &ScreenHandler{repo: repo, log: log}
}

func (h *ScreenHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.GetDeviceIDFromContext(r.Context())
	if !ok {
		httputil.WriteBadRequestWithCode(w, httputil.ErrCodeMissingDevice, "X-Device-ID header is required")
		return
	}

	spec, err := screen.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		if errors.Is(err, model.ErrUnknownScreen) {
			httputil.WriteNotFound(w, err.Error())
			return
		}
		httputil.WriteInternalError(w, "Failed to load screen")
		return
	}

	svc := service.NewThemeService(h.repo, h.log)
	svc.SetDeviceID(id)
	svc.Load(r.Context())
	dark := svc.IsDarkMode()

	httputil.WriteJSON(w, http.StatusOK, model.ScreenState{
		Screen:     spec.Name,
		DeviceID:   id,
		IsDarkMode: dark,
		Palette:    spec.Palette(dark),
	})
}
