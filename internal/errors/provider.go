package errors

import (
	stdErrors "errors"
	"fmt"
)

// ProviderUnavailableError is returned when a required provider call cannot
// produce a usable answer: network failure, timeout, non-2xx status or a
// payload that does not decode.
type ProviderUnavailableError struct {
	Provider   string
	Op         string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *ProviderUnavailableError) Error() string {
	msg := fmt.Sprintf("%s unavailable during %s", e.Provider, e.Op)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProviderUnavailableError) Unwrap() error {
	return e.Err
}

// NewProviderUnavailableError wraps err as a ProviderUnavailableError.
func NewProviderUnavailableError(provider, op string, statusCode int, err error) *ProviderUnavailableError {
	return &ProviderUnavailableError{
		Provider:   provider,
		Op:         op,
		StatusCode: statusCode,
		Err:        err,
	}
}

// IsProviderUnavailable reports whether err is a ProviderUnavailableError (even when wrapped).
func IsProviderUnavailable(err error) bool {
	var unavailable *ProviderUnavailableError
	return stdErrors.As(err, &unavailable)
}

// NotFoundError is returned when the provider confirms that the requested
// resource does not exist.
type NotFoundError struct {
	Provider string
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: %s not found", e.Provider, e.Resource)
}

// NewNotFoundError creates a NotFoundError for the given resource.
func NewNotFoundError(provider, resource string) *NotFoundError {
	return &NotFoundError{Provider: provider, Resource: resource}
}

// IsNotFound reports whether err is a NotFoundError (even when wrapped).
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return stdErrors.As(err, &notFound)
}
