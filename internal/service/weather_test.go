package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openway/internal/model"
)

const forecastBody = `{"latitude":35.7,"longitude":139.6875,"current_weather":{"temperature":12.3,"windspeed":7.2,"winddirection":250,"weathercode":3,"is_day":1,"time":"2025-01-01T12:00"}}`

type mapWeatherCache struct {
	data   map[string]*model.CurrentWeather
	getErr error
	sets   int
}

func (m *mapWeatherCache) key(lat, lon float64) string {
	return fmt.Sprintf("%.4f/%.4f", lat, lon)
}

func (m *mapWeatherCache) Get(ctx context.Context, lat, lon float64) (*model.CurrentWeather, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	w, ok := m.data[m.key(lat, lon)]
	return w, ok, nil
}

func (m *mapWeatherCache) Set(ctx context.Context, lat, lon float64, w *model.CurrentWeather) error {
	if m.data == nil {
		m.data = make(map[string]*model.CurrentWeather)
	}
	m.data[m.key(lat, lon)] = w
	m.sets++
	return nil
}

func newForecastServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		assert.Equal(t, "35.6895", r.URL.Query().Get("latitude"))
		assert.Equal(t, "139.6917", r.URL.Query().Get("longitude"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(forecastBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestWeatherService_Current(t *testing.T) {
	var hits int32
	srv := newForecastServer(t, &hits)
	svc := NewWeatherService(srv.URL, srv.Client(), nil, nil)

	resp, err := svc.Current(context.Background(), model.TokyoLatitude, model.TokyoLongitude)
	require.NoError(t, err)

	assert.Equal(t, 12.3, resp.Current.Temperature)
	assert.Equal(t, 7.2, resp.Current.WindSpeed)
	assert.Equal(t, 3, resp.Current.WeatherCode)
	assert.False(t, resp.Cached)
}

func TestWeatherService_UsesCache(t *testing.T) {
	var hits int32
	srv := newForecastServer(t, &hits)
	wc := &mapWeatherCache{}
	svc := NewWeatherService(srv.URL, srv.Client(), wc, nil)
	ctx := context.Background()

	_, err := svc.Current(ctx, model.TokyoLatitude, model.TokyoLongitude)
	require.NoError(t, err)
	resp, err := svc.Current(ctx, model.TokyoLatitude, model.TokyoLongitude)
	require.NoError(t, err)

	assert.True(t, resp.Cached)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, 1, wc.sets)
}

func TestWeatherService_CacheErrorBypassed(t *testing.T) {
	var hits int32
	srv := newForecastServer(t, &hits)
	svc := NewWeatherService(srv.URL, srv.Client(), &mapWeatherCache{getErr: errors.New("redis down")}, nil)

	resp, err := svc.Current(context.Background(), model.TokyoLatitude, model.TokyoLongitude)
	require.NoError(t, err)
	assert.False(t, resp.Cached)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestWeatherService_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"status", http.StatusBadGateway, "bad gateway"},
		{"missing current", http.StatusOK, `{"latitude":1}`},
		{"bad json", http.StatusOK, `[`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewWeatherService(srv.URL, srv.Client(), nil, nil).Current(context.Background(), 1, 2)
			assert.Error(t, err)
		})
	}
}

func TestWeatherService_LocalTime(t *testing.T) {
	svc := NewWeatherService("http://unused", nil, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 1, 1, 3, 4, 5, 0, time.UTC) }

	got, err := svc.LocalTime(model.TokyoTimeZone)
	require.NoError(t, err)
	assert.Equal(t, "12:04:05", got)

	_, err = svc.LocalTime("Not/AZone")
	assert.Error(t, err)
}

func TestWeatherService_Tokyo(t *testing.T) {
	var hits int32
	srv := newForecastServer(t, &hits)
	svc := NewWeatherService(srv.URL, srv.Client(), nil, nil)
	svc.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	resp, err := svc.Tokyo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "09:00:00", resp.LocalTime)
	assert.NotNil(t, resp.Current)
}
