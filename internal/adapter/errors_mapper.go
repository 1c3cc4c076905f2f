package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// statusErrors maps upstream status codes onto adapter sentinels. Gateway
// failures of any kind collapse into ErrBadGateway.
var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusServiceUnavailable:  ErrBadGateway,
	http.StatusGatewayTimeout:      ErrBadGateway,
}

// mapHTTPError turns a non-2xx response from upstream into an error that
// wraps the matching sentinel. Both Google and ImageKit report failures as a
// JSON object with a "message" field; when present it replaces the raw body.
func mapHTTPError(upstream string, resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	detail := upstreamMessage(resp.Body())
	if detail == "" {
		detail = http.StatusText(code)
	}

	if sentinel, ok := statusErrors[code]; ok {
		return fmt.Errorf("%s: %w: %s", upstream, sentinel, detail)
	}
	return fmt.Errorf("%s: unexpected status %d: %s", upstream, code, detail)
}

func upstreamMessage(body []byte) string {
	raw := strings.TrimSpace(string(body))
	if raw == "" {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return raw
}
