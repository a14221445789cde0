package model

import (
	"strings"
)

// DeviceID is the sanitized per-install identifier used as the preference
// document key. The empty value means "not yet resolved".
type DeviceID string

// IsZero reports whether the id has not been resolved yet.
func (id DeviceID) IsZero() bool {
	return id == ""
}

func (id DeviceID) String() string {
	return string(id)
}

// SanitizeDeviceID drops every character outside [A-Za-z0-9_-].
func SanitizeDeviceID(raw string) DeviceID {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return DeviceID(b.String())
}

// Platform identifies the OS family of the device.
type Platform string

// Platform constants
const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// ParsePlatform maps a free-form platform name onto a Platform.
// Anything that is not iOS is treated as Android-style permissions.
func ParsePlatform(s string) Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ios", "iphone", "ipad", "darwin":
		return PlatformIOS
	default:
		return PlatformAndroid
	}
}
