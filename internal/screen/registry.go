package screen

import (
	"fmt"
	"sort"
	"strings"

	"openway/internal/model"
)

// Spec describes what a screen shows and which services it runs on mount.
type Spec struct {
	Name         model.ScreenName
	Light        model.Palette
	Dark         model.Palette
	UsesLocation bool
	UsesWeather  bool
	DeniedNotice model.Notice
}

// Palette returns the colour set for the given mode.
func (s Spec) Palette(dark bool) model.Palette {
	p := s.Light
	if dark {
		p = s.Dark
	}
	p.GradientColors = append([]string(nil), p.GradientColors...)
	return p
}

const accentPurple = "#613be9"

var (
	lightGradient = []string{"#b3e5fc", "#0288d1"}
	darkGradient  = []string{"#0d47a1", "#01579b"}

	buttonLight = model.Palette{GradientColors: lightGradient, TextColor: "#000000", AccentColor: accentPurple, ButtonBorder: "#ffffff"}
	buttonDark  = model.Palette{GradientColors: darkGradient, TextColor: "#ffffff", AccentColor: accentPurple, ButtonBorder: "#ffffff"}

	formLight = model.Palette{
		GradientColors:   lightGradient,
		TextColor:        "#000000",
		AccentColor:      accentPurple,
		ButtonBorder:     "#ffffff",
		InputBackground:  "#ffffff",
		InputBorder:      "#cccccc",
		PlaceholderColor: "#888888",
	}
	formDark = model.Palette{
		GradientColors:   darkGradient,
		TextColor:        "#ffffff",
		AccentColor:      accentPurple,
		ButtonBorder:     "#ffffff",
		InputBackground:  "#333333",
		InputBorder:      "#555555",
		PlaceholderColor: "#aaaaaa",
	}

	showPositionNotice = model.Notice{Title: "Permission Denied", Message: "Location access is required to show your position."}
)

var registry = map[model.ScreenName]Spec{
	model.ScreenIndex: {
		Name: model.ScreenIndex,
		Light: model.Palette{
			BackgroundColor:  "#ffffff",
			TextColor:        "#000000",
			InputBackground:  "#f0f0f0",
			InputBorder:      "#d3d3d3",
			PlaceholderColor: "#7f7f7f",
		},
		Dark: model.Palette{
			BackgroundColor:  "#000000",
			TextColor:        "#ffffff",
			InputBackground:  "#333333",
			InputBorder:      "#555555",
			PlaceholderColor: "#aaaaaa",
		},
		UsesWeather: true,
	},
	model.ScreenHome: {
		Name:         model.ScreenHome,
		Light:        model.Palette{GradientColors: lightGradient, TextColor: "#000000", PlaceholderColor: "#888888", AccentColor: accentPurple},
		Dark:         model.Palette{GradientColors: darkGradient, TextColor: "#ffffff", PlaceholderColor: "#aaaaaa", AccentColor: accentPurple},
		UsesLocation: true,
		DeniedNotice: showPositionNotice,
	},
	model.ScreenSignIn: {
		Name:         model.ScreenSignIn,
		Light:        formLight,
		Dark:         formDark,
		UsesLocation: true,
		DeniedNotice: showPositionNotice,
	},
	model.ScreenSignUp: {
		Name:         model.ScreenSignUp,
		Light:        formLight,
		Dark:         formDark,
		UsesLocation: true,
		DeniedNotice: model.Notice{Title: "Permission Denied", Message: "Location access is required."},
	},
	model.ScreenProfile: {
		Name:  model.ScreenProfile,
		Light: buttonLight,
		Dark:  buttonDark,
	},
	model.ScreenReview: {
		Name:         model.ScreenReview,
		Light:        buttonLight,
		Dark:         buttonDark,
		UsesLocation: true,
		DeniedNotice: showPositionNotice,
	},
}

// Lookup finds a screen by name, case-insensitively.
func Lookup(name string) (Spec, error) {
	spec, ok := registry[model.ScreenName(strings.ToLower(strings.TrimSpace(name)))]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", model.ErrUnknownScreen, name)
	}
	return spec, nil
}

// Names lists the registered screens in sorted order.
func Names() []model.ScreenName {
	names := make([]model.ScreenName, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
