package model

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds, per spec.md §7. These are sentinels wrapped with context via
// fmt.Errorf("...: %w", ...); callers classify with errors.Is/As.
var (
	// ErrConfiguration marks a fatal startup error (missing binary, bad config).
	ErrConfiguration = errors.New("configuration error")

	// ErrBackendUnavailable marks a transient failure reaching the vector
	// store or embedding provider. Retried with backoff where applicable.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrInvalidInput marks a caller error (bad line range, missing file).
	// Never retried.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCancelled marks work dropped because a cancellation token fired.
	ErrCancelled = errors.New("operation cancelled")
)

// RateLimitError is returned when a remote provider responds 429. It
// carries enough detail for the caller to render a user-facing message.
type RateLimitError struct {
	Provider   string
	Model      string
	RetryAfter *time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter != nil {
		return fmt.Sprintf("%s rate limited model %q, retry after %s", e.Provider, e.Model, *e.RetryAfter)
	}
	return fmt.Sprintf("%s rate limited model %q", e.Provider, e.Model)
}

// IsRateLimit reports whether err is (or wraps) a *RateLimitError.
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}
