package handler

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"openway/internal/httputil"
	"openway/internal/service"
)

type WeatherHandler struct {
	weather *service.WeatherService
	log     *zap.Logger
}

func NewWeatherHandler(weather *service.WeatherService, log *zap.Logger) *WeatherHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WeatherHandler{weather: weather, log: log}
}

// Current serves GET /v1/weather?latitude=&longitude=. Without coordinates
// it reports Tokyo, including the local time there.
func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("latitude") == "" && q.Get("longitude") == "" {
		resp, err := h.weather.Tokyo(r.Context())
		if err != nil {
			h.log.Error("weather lookup failed", zap.Error(err))
			httputil.WriteBadGateway(w, "Failed to fetch weather")
			return
		}
		httputil.WriteJSON(w, http.StatusOK, resp)
		return
	}

	lat, err := parseCoordinate(q.Get("latitude"), 90)
	if err != nil {
		httputil.WriteBadRequestWithCode(w, httputil.ErrCodeValidation, "latitude must be a number between -90 and 90")
		return
	}
	lon, err := parseCoordinate(q.Get("longitude"), 180)
	if err != nil {
		httputil.WriteBadRequestWithCode(w, httputil.ErrCodeValidation, "longitude must be a number between -180 and 180")
		return
	}

	resp, err := h.weather.Current(r.Context(), lat, lon)
	if err != nil {
		h.log.Error("weather lookup failed", zap.Float64("lat", lat), zap.Float64("lon", lon), zap.Error(err))
		httputil.WriteBadGateway(w, "Failed to fetch weather")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func parseCoordinate(raw string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if v < -limit || v > limit {
		return 0, strconv.ErrRange
	}
	return v, nil
}

