package adapter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respondWith(t *testing.T, status int, body string) *resty.Response {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	resp, err := resty.New().R().Get(srv.URL)
	require.NoError(t, err)
	return resp
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		target  error
		wantMsg string
	}{
		{name: "success", status: http.StatusOK, body: `{}`},
		{name: "created", status: http.StatusCreated},
		{name: "json message is extracted", status: http.StatusForbidden, body: `{"message":"Your account cannot be authenticated."}`, target: ErrForbidden, wantMsg: "imagekit: forbidden: Your account cannot be authenticated."},
		{name: "plain body kept", status: http.StatusNotFound, body: " no such file \n", target: ErrNotFound, wantMsg: "imagekit: not found: no such file"},
		{name: "empty body uses status text", status: http.StatusTooManyRequests, target: ErrTooManyRequests, wantMsg: "imagekit: too many requests: Too Many Requests"},
		{name: "gateway timeout", status: http.StatusGatewayTimeout, target: ErrBadGateway},
		{name: "service unavailable", status: http.StatusServiceUnavailable, target: ErrBadGateway},
		{name: "unmapped status", status: http.StatusTeapot, body: `{"message":""}`, wantMsg: `imagekit: unexpected status 418: {"message":""}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := mapHTTPError("imagekit", respondWith(t, tc.status, tc.body))

			if tc.status < http.StatusMultipleChoices {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			if tc.target != nil {
				assert.ErrorIs(t, err, tc.target)
			}
			if tc.wantMsg != "" {
				assert.EqualError(t, err, tc.wantMsg)
			}
		})
	}
}
