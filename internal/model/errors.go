package model

import "errors"

var (
	// ErrNotFound is returned when no document exists for a device id.
	// For theme preferences this is the normal "no preference yet" case.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned by create when a document already exists.
	ErrConflict = errors.New("conflict")

	// ErrPermissionDenied is returned when the user refuses location access.
	ErrPermissionDenied = errors.New("location permission denied")

	// ErrLocationUnavailable wraps timeouts and provider failures of a fix.
	ErrLocationUnavailable = errors.New("location unavailable")

	// ErrDeviceUnresolved is returned when an operation needs a device id
	// and none has been resolved.
	ErrDeviceUnresolved = errors.New("device id not resolved")

	// ErrEmptyText is returned when sentiment analysis is requested without text.
	ErrEmptyText = errors.New("please enter text before analyzing")

	// ErrSentimentFailed is returned when the inference API rejects a request.
	ErrSentimentFailed = errors.New("failed to analyze sentiment")

	// ErrPasswordMismatch is returned by sign-up when the confirmation differs.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrMissingCredentials is returned by the sign-in/sign-up placeholders.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrUnknownScreen is returned for screen names outside the registry.
	ErrUnknownScreen = errors.New("unknown screen")
)
