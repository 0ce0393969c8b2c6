package gapclient

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrNoCredential is returned by New when no API key is configured.
// Callers must treat this as a distinct, non-retryable condition.
var ErrNoCredential = errors.New("GAP_API_KEY is not set")

// UpstreamError reports a non-2xx or malformed response from the weather API.
// The status and body are for server-side logging only and must never be
// surfaced to the caller.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("weather API returned status %d: %s", e.Status, e.Body)
}
