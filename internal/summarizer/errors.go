package summarizer

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when a provider answers without text.
var ErrEmptyResponse = errors.New("empty response from provider")

// UpstreamError wraps a failed provider call.
type UpstreamError struct {
	Provider string
	Err      error
	// Retryable is set for rate limits, exhausted quotas and server errors.
	Retryable bool
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is an upstream failure worth retrying later.
func IsRetryable(err error) bool {
	var upErr *UpstreamError
	return errors.As(err, &upErr) && upErr.Retryable
}
