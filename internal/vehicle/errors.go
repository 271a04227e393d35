package vehicle

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for vehicle service calls.
type ErrorCategory string

const (
	// ErrorTimeout indicates the vehicle service took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the response body could not be decoded
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates the service rejected our credentials
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorProviderOutage indicates the service is unavailable or the circuit is open
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorNotFound indicates the registration number is unknown
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected failure on our side
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError wraps vehicle service failures with a normalized category.
type ProviderError struct {
	Category   ErrorCategory
	StatusCode int
	Message    string
	Underlying error
	Retryable  bool
}

func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("vehicle service [%s]: %s: %v", e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("vehicle service [%s]: %s", e.Category, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError creates a categorized error. Timeouts, outages and rate
// limiting are retryable and count against the circuit breaker.
func NewProviderError(category ErrorCategory, message string, underlying error) *ProviderError {
	return &ProviderError{
		Category:   category,
		Message:    message,
		Underlying: underlying,
		Retryable: category == ErrorTimeout ||
			category == ErrorProviderOutage ||
			category == ErrorRateLimited,
	}
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// GetCategory extracts the category from err, defaulting to ErrorInternal.
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}

// ErrCircuitOpen is wrapped by the provider_outage error returned while the breaker is open.
var ErrCircuitOpen = errors.New("circuit open")

func categoryForStatus(status int) ErrorCategory {
	switch {
	case status == 404:
		return ErrorNotFound
	case status == 401 || status == 403:
		return ErrorAuthentication
	case status == 429:
		return ErrorRateLimited
	case status >= 500:
		return ErrorProviderOutage
	default:
		return ErrorBadData
	}
}
