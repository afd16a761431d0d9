package app

import "fmt"

type RequestErrorCode string

const (
	ErrInvalidHorizon RequestErrorCode = "INVALID_HORIZON"
	ErrInvalidMeeting RequestErrorCode = "INVALID_MEETING"
	ErrInvalidTopK    RequestErrorCode = "INVALID_TOP_K"
	ErrUnknownMeeting RequestErrorCode = "UNKNOWN_MEETING"
)

// RequestError marks a caller contract violation. These fail the call
// synchronously and are never converted into a degraded result.
type RequestError struct {
	Code    RequestErrorCode
	Message string
}

func (e *RequestError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// ProviderError wraps a collaborator failure (energy or constraint lookup)
// so the caller can distinguish retryable infrastructure trouble from bad
// input. The engine never retries internally.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider unavailable: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
