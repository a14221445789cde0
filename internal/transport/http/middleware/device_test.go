package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"openway/internal/model"
)

func TestDeviceMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantID     model.DeviceID
	}{
		{"clean id", "abc123", http.StatusOK, "abc123"},
		{"sanitized", "AB:CD-12_34.x", http.StatusOK, "ABCD-12_34x"},
		{"missing", "", http.StatusBadRequest, ""},
		{"nothing left", ":::/..", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got model.DeviceID
			h := DeviceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got, _ = GetDeviceIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/theme", nil)
			if tt.header != "" {
				req.Header.Set(DeviceIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantID, got)
			if tt.wantStatus == http.StatusBadRequest {
				assert.Contains(t, rec.Body.String(), "MISSING_DEVICE_ID")
			}
		})
	}
}
