/*
errors.go - Centralized error types for the attendance engine

PURPOSE:
  All engine error types in one place. The taxonomy mirrors how callers
  must react:

  ValidationError  invalid month or out-of-scope entity; surfaced
                   immediately, no network call attempted.
  Throttled        not an error at all - a soft "wait N minutes" carried on
                   the Envelope with the cached data still attached.
  GatewayError     network failure, non-2xx response or malformed payload;
                   recovered locally (touch + cache fallback), surfaced only
                   when no cached data exists.

USAGE:
  if engine.IsGatewayFailure(err) { ... }
  errors.Is(err, engine.ErrScopeDenied)
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - use with errors.Is()
// =============================================================================

var (
	// ErrInvalidMonth is returned for month numbers outside 1..12.
	ErrInvalidMonth = errors.New("month out of range")

	// ErrScopeDenied is returned when the caller's role scope does not
	// include the requested entity.
	ErrScopeDenied = errors.New("entity outside caller scope")

	// ErrClockUnavailable marks decisions taken without a trusted time source.
	ErrClockUnavailable = errors.New("no trusted clock available")

	// ErrGatewayFailure is the sentinel under every remote-call failure.
	ErrGatewayFailure = errors.New("gateway failure")

	// ErrNoRemoteData is a GatewayError kind: the backend has nothing yet
	// for the requested month.
	ErrNoRemoteData = errors.New("no remote data for month")

	// ErrPermissionDenied is a GatewayError kind: the backend rejected the
	// role's credentials for this scope.
	ErrPermissionDenied = errors.New("permission denied by gateway")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// GatewayError wraps a remote-call failure with the endpoint that failed.
type GatewayError struct {
	Endpoint string // e.g. "monthly_snapshot", "daily_live"
	Kind     error  // ErrNoRemoteData, ErrPermissionDenied, or nil for transient
	Cause    error
}

func (e *GatewayError) Error() string {
	if e.Kind != nil {
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Endpoint, e.Cause)
}

func (e *GatewayError) Unwrap() error {
	if e.Kind != nil {
		return e.Kind
	}
	return ErrGatewayFailure
}

// ValidationError reports a request rejected before any remote work.
type ValidationError struct {
	Field  string
	Reason error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Reason }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsValidation reports whether err is a pre-flight rejection.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsGatewayFailure reports whether err came out of a remote call.
func IsGatewayFailure(err error) bool {
	return errors.Is(err, ErrGatewayFailure) ||
		errors.Is(err, ErrNoRemoteData) ||
		errors.Is(err, ErrPermissionDenied)
}
