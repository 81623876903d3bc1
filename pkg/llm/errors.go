// Package llm holds the shared types exchanged between the provider
// adapters and the stream session controller: the failure taxonomy and the
// streaming generation parameters.
package llm

import "errors"

// Sentinel errors classifying session failures. User-facing messages wrap
// one of these via Error so callers can branch with errors.Is while still
// surfacing the provider-specific message text.
var (
	// ErrMissingCredential means no API key is stored for the resolved
	// provider. Surfaced before any network call.
	ErrMissingCredential = errors.New("missing credential")

	// ErrAuthentication means the provider rejected the supplied key.
	ErrAuthentication = errors.New("authentication failed")

	// ErrQuotaExceeded means the provider signaled a billing or rate limit.
	ErrQuotaExceeded = errors.New("quota exceeded")

	// ErrTransport means the request could not be sent or the response
	// stream broke mid-read.
	ErrTransport = errors.New("transport failure")
)

// Error pairs a failure classification with the human-readable message shown
// to the user. Error() returns only the message; errors.Is matches the Kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}
