package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openway/internal/handler"
	"openway/internal/model"
	"openway/internal/repository"
	"openway/internal/service"
)

type testEnv struct {
	router  http.Handler
	themes  *repository.MemoryThemeRepository
	history *repository.MemorySentimentRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(`{"current_weather":{"temperature":21.5,"windspeed":4,"winddirection":180,"weathercode":1,"is_day":1,"time":"2025-06-01T12:00"}}`))
		default:
			w.Write([]byte(`[[{"label":"NEGATIVE","score":0.97}]]`))
		}
	}))
	t.Cleanup(upstream.Close)

	themes := repository.NewMemoryThemeRepository()
	history := &repository.MemorySentimentRepository{}

	router := NewRouter(RouterConfig{
		ThemeHandler:     handler.NewThemeHandler(themes, nil),
		ScreenHandler:    handler.NewScreenHandler(themes, nil),
		WeatherHandler:   handler.NewWeatherHandler(service.NewWeatherService(upstream.URL, upstream.Client(), nil, nil), nil),
		SentimentHandler: handler.NewSentimentHandler(service.NewSentimentService(upstream.URL, "", upstream.Client(), nil, history, nil), nil),
		AccountHandler:   handler.NewAccountHandler(service.NewAccountService()),
	})
	return &testEnv{router: router, themes: themes, history: history}
}

func (e *testEnv) do(t *testing.T, method, path, deviceID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if deviceID != "" {
		req.Header.Set("X-Device-ID", deviceID)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestTheme_ToggleFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/v1/theme", "abc123", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ThemeResponse{DeviceID: "abc123", IsDarkMode: false}, decode[model.ThemeResponse](t, rec))

	rec = env.do(t, http.MethodPost, "/v1/theme/toggle", "abc123", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[model.ThemeResponse](t, rec).IsDarkMode)

	rec = env.do(t, http.MethodPost, "/v1/theme/toggle", "abc123", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[model.ThemeResponse](t, rec).IsDarkMode)

	assert.Equal(t, 2, env.themes.Calls("create"))
	assert.Equal(t, 1, env.themes.Calls("update"))
}

func TestTheme_Set(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/v1/theme", "ab:c1:23", `{"isDarkMode":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.DeviceID("abc123"), decode[model.ThemeResponse](t, rec).DeviceID)

	rec = env.do(t, http.MethodGet, "/v1/theme", "abc123", "")
	assert.True(t, decode[model.ThemeResponse](t, rec).IsDarkMode)
}

func TestTheme_BadRequests(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		method   string
		path     string
		deviceID string
		body     string
		code     string
	}{
		{"missing device", http.MethodGet, "/v1/theme", "", "", "MISSING_DEVICE_ID"},
		{"device sanitizes to empty", http.MethodPost, "/v1/theme/toggle", "::::", "", "MISSING_DEVICE_ID"},
		{"missing field", http.MethodPut, "/v1/theme", "abc123", `{}`, "VALIDATION_ERROR"},
		{"unknown field", http.MethodPut, "/v1/theme", "abc123", `{"dark":true}`, "BAD_REQUEST"},
		{"empty body", http.MethodPut, "/v1/theme", "abc123", "", "BAD_REQUEST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.path, tt.deviceID, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.code, decode[struct {
				Error struct{ Code string } `json:"error"`
			}](t, rec).Error.Code)
		})
	}
	assert.Equal(t, 0, env.themes.Calls("create"))
}

func TestScreens(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPut, "/v1/theme", "abc123", `{"isDarkMode":true}`)

	rec := env.do(t, http.MethodGet, "/v1/screens/signin", "abc123", "")
	require.Equal(t, http.StatusOK, rec.Code)
	st := decode[model.ScreenState](t, rec)
	assert.Equal(t, model.ScreenSignIn, st.Screen)
	assert.True(t, st.IsDarkMode)
	assert.Equal(t, "#333333", st.Palette.InputBackground)

	rec = env.do(t, http.MethodGet, "/v1/screens/settings", "abc123", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWeather(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/v1/weather", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[model.WeatherResponse](t, rec)
	assert.Equal(t, model.TokyoLatitude, resp.Latitude)
	assert.Equal(t, 21.5, resp.Current.Temperature)
	assert.NotEmpty(t, resp.LocalTime)

	rec = env.do(t, http.MethodGet, "/v1/weather?latitude=48.85&longitude=2.35", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[model.WeatherResponse](t, rec).LocalTime)

	rec = env.do(t, http.MethodGet, "/v1/weather?latitude=100&longitude=2", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSentiment(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/sentiment", "abc123", `{"text":"this is awful"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.SentimentNegative, decode[model.SentimentResponse](t, rec).Sentiment)
	assert.Len(t, env.history.Records(), 1)

	rec = env.do(t, http.MethodPost, "/v1/sentiment", "abc123", `{"text":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter text before analyzing.")

	rec = env.do(t, http.MethodPost, "/v1/sentiment", "", `{"text":"hi"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccount(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/account/signin", "", `{"email":"a@b.c","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sign In", decode[model.Notice](t, rec).Title)

	rec = env.do(t, http.MethodPost, "/v1/account/signup", "", `{"email":"a@b.c","password":"pw","confirmPassword":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Passwords do not match.")

	rec = env.do(t, http.MethodPost, "/v1/account/signup", "", `{"email":"a@b.c","password":"pw","confirmPassword":"pw"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
