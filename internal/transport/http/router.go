package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"openway/internal/handler"
	"openway/internal/httputil"
	devicemw "openway/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	ThemeHandler     *handler.ThemeHandler
	ScreenHandler    *handler.ScreenHandler
	WeatherHandler   *handler.WeatherHandler
	SentimentHandler *handler.SentimentHandler
	AccountHandler   *handler.AccountHandler
}

// NewRouter creates the chi router with every route group.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		// Public routes
		r.Get("/weather", cfg.WeatherHandler.Current)
		r.Post("/account/signin", cfg.AccountHandler.SignIn)
		r.Post("/account/signup", cfg.AccountHandler.SignUp)

		// Device-scoped routes
		r.Group(func(r chi.Router) {
			r.Use(devicemw.DeviceMiddleware)

			r.Get("/theme", cfg.ThemeHandler.Get)
			r.Put("/theme", cfg.ThemeHandler.Set)
			r.Post("/theme/toggle", cfg.ThemeHandler.Toggle)

			r.Get("/screens/{name}", cfg.ScreenHandler.Get)

			r.Post("/sentiment", cfg.SentimentHandler.Analyze)
		})
	})

	return r
}
