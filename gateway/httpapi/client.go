/*
Package httpapi provides the HTTP clients behind the engine's remote
contracts: the monthly snapshot gateway, the today's-live gateway and the
trusted network clock.

All clients share the same resty construction: base URL, bounded timeout,
a few retries with backoff, JSON in and out, and zap logging per call.
Failures are normalized into engine.GatewayError so the orchestrator's
recovery path sees one shape regardless of transport detail.
*/
package httpapi

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// Config is the shared HTTP-client configuration.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	AuthToken  string
}

func newClient(cfg Config) *resty.Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.AuthToken != "" {
		c.SetAuthToken(cfg.AuthToken)
	}
	return c
}
