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
// MONTHLY SNAPSHOT CLIENT
// =============================================================================

// ScopeVariant names the backend endpoint family a role queries. The wire
// contract differs: entity-scoped endpoints return a bare day map, while
// classroom/level/school endpoints return a per-student mapping that this
// client narrows to the requested entity.
type ScopeVariant string

const (
	ScopeStudent   ScopeVariant = "student"
	ScopeClassroom ScopeVariant = "classroom"
	ScopeLevel     ScopeVariant = "level"
	ScopeSchool    ScopeVariant = "school"
)

// MonthlyClient implements engine.MonthlyGateway over HTTP.
type MonthlyClient struct {
	http    *resty.Client
	log     *zap.Logger
	variant ScopeVariant

	// container is the classroom/level identifier for container-scoped
	// variants; unused for ScopeStudent and ScopeSchool.
	container string
}

type monthlyResponse struct {
	Days     engine.DayMap                   `json:"days,omitempty"`
	Students map[engine.EntityID]engine.DayMap `json:"students,omitempty"`
	Message  string                          `json:"message,omitempty"`
}

// NewMonthlyClient builds a snapshot client for one scope variant.
func NewMonthlyClient(cfg Config, variant ScopeVariant, container string, log *zap.Logger) *MonthlyClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &MonthlyClient{
		http:      newClient(cfg),
		log:       log.With(zap.String("gateway", "monthly_snapshot"), zap.String("variant", string(variant))),
		variant:   variant,
		container: container,
	}
}

// FetchMonth returns all days recorded so far for (entityID, month).
func (c *MonthlyClient) FetchMonth(ctx context.Context, entityID engine.EntityID, month engine.Month) (engine.DayMap, error) {
	var out monthlyResponse
	req := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		SetQueryParam("month", fmt.Sprintf("%d", int(month)))

	var path string
	switch c.variant {
	case ScopeStudent:
		path = fmt.Sprintf("/attendance/students/%s/monthly", entityID)
	case ScopeClassroom:
		path = fmt.Sprintf("/attendance/classrooms/%s/monthly", c.container)
	case ScopeLevel:
		path = fmt.Sprintf("/attendance/levels/%s/monthly", c.container)
	default:
		path = "/attendance/school/monthly"
		req.SetQueryParam("entity_id", string(entityID))
	}

	resp, err := req.Get(path)
	if err != nil {
		c.log.Warn("monthly snapshot call failed", zap.Error(err))
		return nil, &engine.GatewayError{Endpoint: "monthly_snapshot", Cause: err}
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &engine.GatewayError{Endpoint: "monthly_snapshot", Kind: engine.ErrNoRemoteData}
	case http.StatusForbidden, http.StatusUnauthorized:
		return nil, &engine.GatewayError{Endpoint: "monthly_snapshot", Kind: engine.ErrPermissionDenied}
	default:
		c.log.Warn("monthly snapshot returned error status",
			zap.Int("status", resp.StatusCode()),
			zap.String("message", out.Message),
		)
		return nil, &engine.GatewayError{
			Endpoint: "monthly_snapshot",
			Cause:    fmt.Errorf("status %d: %s", resp.StatusCode(), out.Message),
		}
	}

	// Container-scoped responses map student -> day map; narrow to ours.
	if out.Students != nil {
		days, ok := out.Students[entityID]
		if !ok {
			return nil, &engine.GatewayError{Endpoint: "monthly_snapshot", Kind: engine.ErrNoRemoteData}
		}
		return days, nil
	}
	if out.Days == nil {
		return nil, &engine.GatewayError{
			Endpoint: "monthly_snapshot",
			Cause:    fmt.Errorf("malformed payload: no day map"),
		}
	}
	return out.Days, nil
}

var _ engine.MonthlyGateway = (*MonthlyClient)(nil)
