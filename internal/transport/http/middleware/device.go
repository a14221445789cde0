package middleware

import (
	"context"
	"net/http"

	"openway/internal/httputil"
	"openway/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const (
	// DeviceIDKey is the context key for the calling device's id
	DeviceIDKey contextKey = "device_id"

	// DeviceIDHeader carries the client's raw device identifier.
	DeviceIDHeader = "X-Device-ID"
)

// DeviceMiddleware sanitizes the X-Device-ID header and stores the result
// in the request context. Requests whose id is empty after sanitizing are
// rejected with 400.
func DeviceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := model.SanitizeDeviceID(r.Header.Get(DeviceIDHeader))
		if id.IsZero() {
			httputil.WriteBadRequestWithCode(w, httputil.ErrCodeMissingDevice, "X-Device-ID header is required")
			return
		}

		ctx := context.WithValue(r.Context(), DeviceIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetDeviceIDFromContext returns the device id stored by DeviceMiddleware.
func GetDeviceIDFromContext(ctx context.Context) (model.DeviceID, bool) {
	id, ok := ctx.Value(DeviceIDKey).(model.DeviceID)
	return id, ok && !id.IsZero()
}
