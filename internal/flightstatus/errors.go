package flightstatus

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lookup pipeline
var (
	// ErrInvalidQuery indicates the raw query parameters failed validation
	ErrInvalidQuery = errors.New("invalid query parameters provided")

	// ErrConfigMissing indicates the provider credentials are absent.
	// Detected before any network call; fatal to the request, never retried.
	ErrConfigMissing = errors.New("provider API configuration missing")

	// ErrFlightNotFound indicates the provider returned zero flights for
	// the query. Distinct from provider failures: the call succeeded but
	// nothing matched.
	ErrFlightNotFound = errors.New("flight not found for the given details")
)

// defaultProviderMessage is the last-resort message when a provider failure
// carries no usable text
const defaultProviderMessage = "Failed to fetch flight status."

// ProviderError is a classified provider failure. Status carries the
// provider's HTTP status when one was available, else 500.
type ProviderError struct {
	Status  int
	Message string
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return e.Message
}

// newProviderHTTPError builds a ProviderError from a structured provider
// error body (title plus optional detail)
func newProviderHTTPError(status int, title, detail string) *ProviderError {
	msg := fmt.Sprintf("Provider API error: %s", title)
	if detail != "" {
		msg += " - " + detail
	}
	if status == 0 {
		status = 500
	}
	return &ProviderError{Status: status, Message: msg}
}

// newProviderSDKError builds a ProviderError from a client-level failure
// that carried no structured HTTP body
func newProviderSDKError(description string) *ProviderError {
	if description == "" {
		description = defaultProviderMessage
	}
	return &ProviderError{Status: 500, Message: description}
}
