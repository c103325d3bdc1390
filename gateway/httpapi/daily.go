package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/warp/attendance-engine/engine"
)

// =============================================================================
// TODAY'S LIVE CLIENT
// =============================================================================

// DailyClient implements engine.DailyGateway over HTTP. The endpoint is
// only meaningful during the schooling window; an empty result outside the
// window says nothing about attendance, and callers (the orchestrator's
// strategy selector) already avoid it then.
type DailyClient struct {
	http *resty.Client
	log  *zap.Logger
}

type dailyResponse struct {
	Records []engine.LiveRecord `json:"records"`
	Message string              `json:"message,omitempty"`
}

func NewDailyClient(cfg Config, log *zap.Logger) *DailyClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &DailyClient{
		http: newClient(cfg),
		log:  log.With(zap.String("gateway", "daily_live")),
	}
}

// FetchToday returns today's in-progress records for the queried group.
func (c *DailyClient) FetchToday(ctx context.Context, q engine.LiveQuery) ([]engine.LiveRecord, error) {
	var out dailyResponse
	req := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetQueryParams(map[string]string{
			"level":     q.Level,
			"grade":     q.Grade,
			"section":   q.Section,
			"actor_tag": q.ActorTag,
		})
	if q.EntityID != "" {
		req.SetQueryParam("entity_id", string(q.EntityID))
	}

	resp, err := req.Get("/attendance/today")
	if err != nil {
		c.log.Warn("daily live call failed", zap.Error(err))
		return nil, &engine.GatewayError{Endpoint: "daily_live", Cause: err}
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return out.Records, nil
	case http.StatusForbidden, http.StatusUnauthorized:
		return nil, &engine.GatewayError{Endpoint: "daily_live", Kind: engine.ErrPermissionDenied}
	default:
		c.log.Warn("daily live returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("message", out.Message),
		)
		return nil, &engine.GatewayError{
			Endpoint: "daily_live",
			Cause:    fmt.Errorf("status %d: %s", resp.StatusCode(), out.Message),
		}
	}
}

var _ engine.DailyGateway = (*DailyClient)(nil)
