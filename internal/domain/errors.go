package domain

import "errors"

// Sentinel errors for peer operations
var (
	// ErrServerOffline indicates the peer did not answer at all
	ErrServerOffline = errors.New("peer is unreachable")

	// ErrUnexpectedStatus indicates the peer answered with a non-2xx status
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrMalformedDocument indicates the response body is not well-formed XML
	ErrMalformedDocument = errors.New("malformed document")

	// ErrEmptyHash indicates a delete was requested for an entry without hash
	ErrEmptyHash = errors.New("entry has no hash")
)

// IsTransportError reports whether err means no response was received.
// Such failures leave the current rendering in place.
func IsTransportError(err error) bool {
	return errors.Is(err, ErrServerOffline)
}
