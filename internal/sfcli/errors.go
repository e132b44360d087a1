package sfcli

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// TimeoutError reports an invocation abandoned at its wall-clock budget.
// The external tool keeps running on its own side; the error only means
// this process stopped waiting.
type TimeoutError struct {
	Budget time.Duration
}

// Error implements the error interface for TimeoutError.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("sf did not finish within %s", e.Budget)
}

// Unwrap returns context.DeadlineExceeded to support error wrapping.
func (e *TimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}

// OverflowError reports a stream that exceeded the capture limit.
type OverflowError struct {
	Stream string
	Limit  int64
}

// Error implements the error interface for OverflowError.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("%s exceeded the %d byte capture limit", e.Stream, e.Limit)
}

// IsTimeout checks if the error is or wraps a TimeoutError or
// context.DeadlineExceeded.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	var te *TimeoutError
	if errors.As(err, &te) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// IsOverflow checks if the error is or wraps an OverflowError.
func IsOverflow(err error) bool {
	if err == nil {
		return false
	}
	var oe *OverflowError
	return errors.As(err, &oe)
}
