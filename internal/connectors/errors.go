package connectors

import (
	"fmt"
	"time"
)

// ThrottleError — бэкенд просит подождать (429 + Retry-After).
// ReliabilityWrapper использует RetryAfter как задержку следующей попытки.
type ThrottleError struct {
	RetryAfter time.Duration
	Cause      error
}

func (e *ThrottleError) Error() string {
	return fmt.Sprintf("throttled: retry after %v (cause: %v)", e.RetryAfter, e.Cause)
}

func (e *ThrottleError) Unwrap() error {
	return e.Cause
}
