package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// NETWORK CLOCK - trusted external time with optional local fallback
// =============================================================================

// NetworkClock implements engine.Clock against a trusted time endpoint,
// pinned to the school's timezone. Device clocks drift and get adjusted by
// hand; time-based sync decisions should not trust them blindly. When the
// endpoint is unreachable, the clock either falls back to the local system
// clock (AllowLocalFallback) or reports "unavailable", which downstream
// logic turns into cache-only behavior.
type NetworkClock struct {
	http     *resty.Client
	log      *zap.Logger
	location *time.Location

	// AllowLocalFallback uses the device clock when the endpoint fails.
	AllowLocalFallback bool
}

type timeResponse struct {
	Now string `json:"now"` // RFC 3339
}

func NewNetworkClock(cfg Config, loc *time.Location, log *zap.Logger) *NetworkClock {
	if log == nil {
		log = zap.NewNop()
	}
	if loc == nil {
		loc = time.Local
	}
	return &NetworkClock{
		http:     newClient(cfg),
		log:      log.With(zap.String("gateway", "network_clock")),
		location: loc,
	}
}

// Now returns the trusted current time in the school's timezone, or
// ok=false when no time source can be reached.
func (c *NetworkClock) Now(ctx context.Context) (time.Time, bool) {
	var out timeResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/time/now")

	if err == nil && resp.StatusCode() == http.StatusOK {
		if t, perr := time.Parse(time.RFC3339, out.Now); perr == nil {
			return t.In(c.location), true
		}
		c.log.Warn("time endpoint returned unparseable payload", zap.String("now", out.Now))
	} else {
		c.log.Warn("time endpoint unreachable", zap.Error(err))
	}

	if c.AllowLocalFallback {
		return time.Now().In(c.location), true
	}
	return time.Time{}, false
}

var _ engine.Clock = (*NetworkClock)(nil)
