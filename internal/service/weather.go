package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"openway/internal/cache"
	"openway/internal/model"
)

// WeatherService reads current conditions from an open-meteo compatible
// forecast endpoint.
type WeatherService struct {
	baseURL string
	client  *http.Client
	cache   cache.WeatherCache // nil disables caching
	log     *zap.Logger
	now     func() time.Time
}

func NewWeatherService(baseURL string, client *http.Client, wc cache.WeatherCache, log *zap.Logger) *WeatherService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &WeatherService{
		baseURL: baseURL,
		client:  client,
		cache:   wc,
		log:     log.Named("weather"),
		now:     time.Now,
	}
}

type forecastResponse struct {
	Latitude       float64               `json:"latitude"`
	Longitude      float64               `json:"longitude"`
	CurrentWeather *model.CurrentWeather `json:"current_weather"`
}

// Current returns the current weather at lat/lon. Cache errors are logged
// and bypassed.
func (s *WeatherService) Current(ctx context.Context, lat, lon float64) (*model.WeatherResponse, error) {
	if s.cache != nil {
		w, found, err := s.cache.Get(ctx, lat, lon)
		if err != nil {
			s.log.Warn("weather cache read failed", zap.Error(err))
		} else if found {
			return &model.WeatherResponse{Latitude: lat, Longitude: lon, Current: w, Cached: true}, nil
		}
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current_weather", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather status %d: %s", resp.StatusCode, body)
	}

	var out forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}
	if out.CurrentWeather == nil {
		return nil, fmt.Errorf("weather response has no current_weather")
	}

	s.log.Debug("weather fetched",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon),
		zap.Float64("temperature", out.CurrentWeather.Temperature),
		zap.Duration("duration", time.Since(start)),
	)

	if s.cache != nil {
		if err := s.cache.Set(ctx, lat, lon, out.CurrentWeather); err != nil {
			s.log.Warn("weather cache write failed", zap.Error(err))
		}
	}

	return &model.WeatherResponse{Latitude: lat, Longitude: lon, Current: out.CurrentWeather}, nil
}

// LocalTime formats the current time in the named zone as HH:MM:SS.
func (s *WeatherService) LocalTime(zone string) (string, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return "", fmt.Errorf("load time zone %q: %w", zone, err)
	}
	return s.now().In(loc).Format("15:04:05"), nil
}

// Tokyo is the report the index screen shows: Tokyo weather plus its
// local time.
func (s *WeatherService) Tokyo(ctx context.Context) (*model.WeatherResponse, error) {
	resp, err := s.Current(ctx, model.TokyoLatitude, model.TokyoLongitude)
	if err != nil {
		return nil, err
	}
	if lt, err := s.LocalTime(model.TokyoTimeZone); err == nil {
		resp.LocalTime = lt
	} else {
		s.log.Warn("tokyo local time unavailable", zap.Error(err))
	}
	return resp, nil
}
