package model

import (
	"fmt"
	"time"
)

// LocationFix is a single position reading. It lives in memory only.
type LocationFix struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy,omitempty"` // metres, 0 when unknown
	Timestamp time.Time `json:"timestamp"`
}

// Age returns how old the fix is relative to now.
func (f LocationFix) Age(now time.Time) time.Duration {
	return now.Sub(f.Timestamp)
}

func (f LocationFix) String() string {
	return fmt.Sprintf("%.5f,%.5f", f.Latitude, f.Longitude)
}

// PositionOptions configures a one-shot position request.
type PositionOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

// Default position request parameters
const (
	DefaultFixTimeout = 15 * time.Second
	DefaultFixMaxAge  = 10 * time.Second
)

// DefaultPositionOptions returns {highAccuracy: true, timeout: 15s, maxFixAge: 10s}.
func DefaultPositionOptions() PositionOptions {
	return PositionOptions{
		HighAccuracy: true,
		Timeout:      DefaultFixTimeout,
		MaximumAge:   DefaultFixMaxAge,
	}
}

// AcquireState is the step a location acquisition is in.
type AcquireState string

const (
	AcquireIdle                 AcquireState = "idle"
	AcquireRequestingPermission AcquireState = "requesting_permission"
	AcquireDenied               AcquireState = "denied"
	AcquireGranted              AcquireState = "granted"
	AcquireFixObtained          AcquireState = "fix_obtained"
	AcquireFixFailed            AcquireState = "fix_failed"
)

// Terminal reports whether no further transition follows this state.
func (s AcquireState) Terminal() bool {
	switch s {
	case AcquireDenied, AcquireFixObtained, AcquireFixFailed:
		return true
	}
	return false
}

// Permission outcomes reported by the platform prompts.
const (
	PermissionGranted       = "granted"
	PermissionDenied        = "denied"
	PermissionNeverAskAgain = "never_ask_again"
	PermissionRestricted    = "restricted"
	PermissionDisabled      = "disabled"
)

// Platform permission identifiers
const (
	AuthorizationWhenInUse = "whenInUse"
	PermissionFineLocation = "android.permission.ACCESS_FINE_LOCATION"
)

// Default map region when no fix is available (San Francisco).
const (
	DefaultLatitude  = 37.78825
	DefaultLongitude = -122.4324
)
