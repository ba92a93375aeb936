package exchangerate

import (
	"errors"
	"fmt"
)

// ErrNetwork indicates the provider could not be reached
var ErrNetwork = errors.New("exchange rate provider unreachable")

// ErrMalformedResponse indicates a success response without usable rates
var ErrMalformedResponse = errors.New("malformed exchange rate response")

// ErrorKind is the provider's error-type value.
type ErrorKind string

const (
	KindInvalidKey   ErrorKind = "invalid-key"
	KindQuotaReached ErrorKind = "quota-reached"
	KindUnknown      ErrorKind = "unknown"
)

// ProviderError represents an error reported by the provider, either in the
// response payload or through a non-2xx status.
type ProviderError struct {
	Kind       ErrorKind
	StatusCode int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("exchange rate provider error: %s (HTTP %d)", e.Kind, e.StatusCode)
}

// IsKeyProblem reports whether the error is caused by the API key itself.
func (e *ProviderError) IsKeyProblem() bool {
	return e.Kind == KindInvalidKey || e.Kind == KindQuotaReached
}
