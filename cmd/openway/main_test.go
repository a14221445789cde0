package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openway/internal/model"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	deviceIDFlag, platformFlag, assumeYes, verbose, jsonOutput = "", "", false, false, false
	weatherLat, weatherLon = 0, 0
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDeviceID_SanitizesFlag(t *testing.T) {
	out, err := execute(t, "device", "id", "--device-id", "abc/123:x")
	require.NoError(t, err)
	assert.Equal(t, "abc123x\n", out)
}

func TestLocate_GrantedWithYes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"success","lat":35.6895,"lon":139.6917}`))
	}))
	defer srv.Close()
	t.Setenv("GEOIP_URL", srv.URL)

	out, err := execute(t, "locate", "--yes", "--json")
	require.NoError(t, err)

	var got struct {
		State model.AcquireState `json:"state"`
		Fix   *model.LocationFix `json:"fix"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, model.AcquireFixObtained, got.State)
	require.NotNil(t, got.Fix)
	assert.Equal(t, 35.6895, got.Fix.Latitude)
}

func TestLocate_DeniedAtPrompt(t *testing.T) {
	out, err := execute(t, "locate", "--platform", "ios")
	require.NoError(t, err)
	assert.Contains(t, out, "Permission Denied")
	assert.Contains(t, out, "permission denied")
}

func TestWeather_Tokyo(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"latitude":35.7,"longitude":139.7,"current_weather":{"temperature":21.5,"windspeed":7.2}}`))
	}))
	defer srv.Close()
	t.Setenv("WEATHER_URL", srv.URL)
	t.Setenv("STORE_BACKEND", "none")

	out, err := execute(t, "weather")
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "latitude=35.6895")
	assert.Contains(t, out, "21.5°C")
	assert.Contains(t, out, "tokyo:")
}

func TestWeather_RequiresBothCoordinates(t *testing.T) {
	_, err := execute(t, "weather", "--lat", "10")
	assert.ErrorContains(t, err, "--lat and --lon")
}

func TestThemeSet_RejectsNonBool(t *testing.T) {
	_, err := execute(t, "theme", "set", "maybe", "--device-id", "abc")
	assert.ErrorContains(t, err, "invalid value")
}

func TestPrintScreen_Text(t *testing.T) {
	var out bytes.Buffer
	jsonOutput = false
	err := printScreen(&out, model.ScreenState{
		Screen:        model.ScreenHome,
		DeviceID:      "abc123",
		IsDarkMode:    true,
		Palette:       model.Palette{GradientColors: []string{"#0d47a1", "#01579b"}, TextColor: "#ffffff"},
		LocationState: model.AcquireDenied,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "theme:     dark")
	assert.Contains(t, out.String(), "#0d47a1 -> #01579b")
	assert.Contains(t, out.String(), "location:  denied")
}
