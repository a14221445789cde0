package geo

import (
	"context"
	"fmt"

	"openway/internal/model"
)

// Authorizer is the iOS-style prompt: requestAuthorization(scope).
type Authorizer interface {
	RequestAuthorization(ctx context.Context, scope string) (string, error)
}

// PermissionRequester is the Android-style prompt: request(permissionId).
type PermissionRequester interface {
	RequestPermission(ctx context.Context, permission string) (string, error)
}

// Permissions reduces a platform prompt to a single granted outcome.
type Permissions interface {
	Request(ctx context.Context) (bool, error)
}

// PlatformPermissions picks the prompt branch for Platform.
type PlatformPermissions struct {
	Platform   model.Platform
	Authorizer Authorizer
	Requester  PermissionRequester
}

// Request asks for when-in-use location access on iOS and fine location on
// Android. Only the "granted" outcome counts as granted.
func (p PlatformPermissions) Request(ctx context.Context) (bool, error) {
	var (
		status string
		err    error
	)

	switch p.Platform {
	case model.PlatformIOS:
		if p.Authorizer == nil {
			return false, fmt.Errorf("no authorizer for platform %s", p.Platform)
		}
		status, err = p.Authorizer.RequestAuthorization(ctx, model.AuthorizationWhenInUse)
	default:
		if p.Requester == nil {
			return false, fmt.Errorf("no permission requester for platform %s", p.Platform)
		}
		status, err = p.Requester.RequestPermission(ctx, model.PermissionFineLocation)
	}
	if err != nil {
		return false, fmt.Errorf("request location permission: %w", err)
	}
	return status == model.PermissionGranted, nil
}

// StaticPrompt answers every prompt with the same status. It satisfies
// both platform interfaces.
type StaticPrompt string

func (s StaticPrompt) RequestAuthorization(ctx context.Context, scope string) (string, error) {
	return string(s), nil
}

func (s StaticPrompt) RequestPermission(ctx context.Context, permission string) (string, error) {
	return string(s), nil
}

// Alerter shows a user-facing notice.
type Alerter interface {
	Alert(title, message string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(title, message string)

func (f AlertFunc) Alert(title, message string) { f(title, message) }

// NopAlerter discards alerts.
type NopAlerter struct{}

func (NopAlerter) Alert(string, string) {}
