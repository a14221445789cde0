package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"openway/internal/model"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func modeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

func printScreen(w io.Writer, st model.ScreenState) error {
	if jsonOutput {
		return printJSON(w, st)
	}

	fmt.Fprintf(w, "screen:    %s\n", st.Screen)
	if st.DeviceID.IsZero() {
		fmt.Fprintln(w, "device:    (unresolved)")
	} else {
		fmt.Fprintf(w, "device:    %s\n", st.DeviceID)
	}
	fmt.Fprintf(w, "theme:     %s\n", modeName(st.IsDarkMode))
	if len(st.Palette.GradientColors) > 0 {
		fmt.Fprintf(w, "gradient:  %s\n", strings.Join(st.Palette.GradientColors, " -> "))
	}
	if st.Palette.BackgroundColor != "" {
		fmt.Fprintf(w, "background: %s\n", st.Palette.BackgroundColor)
	}
	fmt.Fprintf(w, "text:      %s\n", st.Palette.TextColor)

	if st.LocationState != "" {
		fmt.Fprintf(w, "location:  %s", st.LocationState)
		if st.Location != nil {
			fmt.Fprintf(w, " (%s)", st.Location)
		}
		fmt.Fprintln(w)
	}
	if st.Weather != nil {
		printWeatherLines(w, st.Weather)
	}
	return nil
}

func printWeatherLines(w io.Writer, r *model.WeatherResponse) {
	if r.Current != nil {
		fmt.Fprintf(w, "weather:   %.1f°C, wind %.1f km/h\n", r.Current.Temperature, r.Current.WindSpeed)
	}
	if r.LocalTime != "" {
		fmt.Fprintf(w, "tokyo:     %s\n", r.LocalTime)
	}
}
