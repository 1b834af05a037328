package core

import "errors"

// Sentinel errors for the service layer. Handlers map these to HTTP status
// codes; none of them is retried automatically.
var (
	// ErrUserNotFound is returned when a user record does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPlan is returned for a plan ID absent from the catalog.
	ErrInvalidPlan = errors.New("invalid plan")
	// ErrQuotaExceeded is returned when a metered action is requested with
	// no allowance remaining.
	ErrQuotaExceeded = errors.New("quota exceeded")
	// ErrStoreUnavailable is returned when the user record store cannot be
	// reached.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrTranscriptionFailed is returned when both transcription backends
	// failed; the wrapped message carries both causes.
	ErrTranscriptionFailed = errors.New("transcription failed")
	// ErrAgentUnavailable is returned when the conversational agent call
	// errored. Quota is never consumed on this path.
	ErrAgentUnavailable = errors.New("agent unavailable")
)
