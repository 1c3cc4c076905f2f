package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-learning-platform/internal/service"
	"github.com/MKhiriev/go-learning-platform/internal/utils"
	"github.com/MKhiriev/go-learning-platform/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = injectNopLogger(req)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

func TestAuth_TableTest(t *testing.T) {
	tests := []struct {
		name        string
		header      string
		parseErr    error
		wantStatus  int
		wantMessage string
		wantNext    bool
	}{
		{
			name:        "missing header",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "unauthorized",
		},
		{
			name:        "wrong scheme",
			header:      "Basic dXNlcjpwYXNz",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "unauthorized",
		},
		{
			name:        "scheme without token",
			header:      "Bearer",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "unauthorized",
		},
		{
			name:        "expired token",
			header:      "Bearer expired",
			parseErr:    service.ErrTokenIsExpired,
			wantStatus:  http.StatusForbidden,
			wantMessage: "invalid token",
		},
		{
			name:        "refresh token used as access token",
			header:      "Bearer refresh",
			parseErr:    service.ErrTokenIsExpiredOrInvalid,
			wantStatus:  http.StatusForbidden,
			wantMessage: "invalid token",
		},
		{
			name:       "valid token",
			header:     "Bearer good",
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestHandler(&service.Services{AuthService: &mockAuthService{
				parseFn: func(_ context.Context, token string) (models.Identity, error) {
					if tc.parseErr != nil {
						return models.Identity{}, tc.parseErr
					}
					return models.Identity{UserID: 42, Username: "bob"}, nil
				},
			}})

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			rr := executeAuth(h, tc.header, next)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantNext, nextCalled)
			if tc.wantMessage != "" {
				env, _ := decodeEnvelope(t, rr)
				assert.True(t, env.Error)
				assert.Equal(t, tc.wantMessage, env.Message)
			}
		})
	}
}

func TestAuth_StoresIdentityInContext(t *testing.T) {
	h := newTestHandler(&service.Services{AuthService: &mockAuthService{
		parseFn: func(_ context.Context, token string) (models.Identity, error) {
			assert.Equal(t, "good", token)
			return models.Identity{UserID: 42, Email: "bob@example.com", Username: "bob"}, nil
		},
	}})

	var got models.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		got, ok = utils.GetIdentityFromContext(r.Context())
		require.True(t, ok)
	})

	executeAuth(h, "bearer good", next)

	assert.Equal(t, models.Identity{UserID: 42, Email: "bob@example.com", Username: "bob"}, got)
}
