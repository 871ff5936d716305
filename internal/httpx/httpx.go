// Package httpx holds the shared client for outbound webhook calls.
package httpx

import (
	"net/http"
	"time"
)

const defaultExternalTimeout = 30 * time.Second

// ExternalClient is used for every outbound HTTP call (Teams and Slack
// webhooks). A single client keeps connection reuse and timeout policy
// in one place.
var ExternalClient = &http.Client{
	Timeout: defaultExternalTimeout,
}

// ConfigureExternalHTTPClient applies the configured timeout, falling
// back to the default when seconds is not positive. Returns the timeout
// in effect.
func ConfigureExternalHTTPClient(seconds int) time.Duration {
	d := defaultExternalTimeout
	if seconds > 0 {
		d = time.Duration(seconds) * time.Second
	}
	ExternalClient.Timeout = d
	return d
}
