package model

import "time"

// ThemePreference is the single stored document per device.
type ThemePreference struct {
	ID         DeviceID  `db:"device_id" json:"id"`
	IsDarkMode bool      `db:"is_dark_mode" json:"isDarkMode"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt,omitempty"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt,omitempty"`
}

// ThemeResponse is returned by the theme endpoints.
type ThemeResponse struct {
	DeviceID   DeviceID `json:"deviceId"`
	IsDarkMode bool     `json:"isDarkMode"`
}

// SetThemeRequest is the request body for PUT /v1/theme.
type SetThemeRequest struct {
	IsDarkMode *bool `json:"isDarkMode"`
}

// Palette is the colour set a screen renders with.
type Palette struct {
	GradientColors   []string `json:"gradientColors,omitempty"`
	BackgroundColor  string   `json:"backgroundColor,omitempty"`
	TextColor        string   `json:"textColor"`
	PlaceholderColor string   `json:"placeholderColor,omitempty"`
	AccentColor      string   `json:"accentColor,omitempty"`
	ButtonBorder     string   `json:"buttonBorderColor,omitempty"`
	InputBackground  string   `json:"inputBackgroundColor,omitempty"`
	InputBorder      string   `json:"inputBorderColor,omitempty"`
}
