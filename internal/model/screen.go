package model

// ScreenName identifies one of the app screens.
type ScreenName string

// Screens
const (
	ScreenIndex   ScreenName = "index"
	ScreenHome    ScreenName = "home"
	ScreenSignIn  ScreenName = "signin"
	ScreenSignUp  ScreenName = "signup"
	ScreenProfile ScreenName = "profile"
	ScreenReview  ScreenName = "review"
)

// ScreenState is a snapshot of a mounted screen.
type ScreenState struct {
	Screen        ScreenName       `json:"screen"`
	DeviceID      DeviceID         `json:"deviceId"`
	IsDarkMode    bool             `json:"isDarkMode"`
	Palette       Palette          `json:"palette"`
	Loading       bool             `json:"loading"`
	LocationState AcquireState     `json:"locationState,omitempty"`
	Location      *LocationFix     `json:"location,omitempty"`
	Weather       *WeatherResponse `json:"weather,omitempty"`
	Mounted       bool             `json:"mounted"`
}
