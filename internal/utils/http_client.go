package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultRetryCount = 2

// HTTPClient is a wrapper around the resty.Client HTTP client used by the
// outbound adapters (identity verifier, image CDN).
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient(10 * time.Second)
//	resp, err := client.R().Get("https://example.com")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a new HTTPClient whose requests are bounded by
// timeout. A non-positive timeout leaves resty's default (no timeout).
//
// Idempotent requests are retried on transport errors and 5xx responses.
// Each call returns an independent client with its own connection pool.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetRetryCount(defaultRetryCount).
		SetRetryWaitTime(100 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if r == nil || r.Request == nil {
				return err != nil
			}
			if r.Request.Method == resty.MethodPost {
				return false
			}
			return err != nil || r.StatusCode() >= 500
		})

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
