package rates

import (
	"errors"
	"fmt"

	"github.com/mrlokans/smartrate/internal/exchangerate"
)

// ErrInvalidInput indicates a malformed currency code or amount
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidAmount indicates an amount that is not a number
var ErrInvalidAmount = fmt.Errorf("%w: amount is not a number", ErrInvalidInput)

// ErrRateUnavailable indicates the rate table has no entry for the target
var ErrRateUnavailable = errors.New("rate unavailable")

// FetchError wraps a failure on the provider fetch path.
type FetchError struct {
	Err error
	// UserKey is true when the failing request used the user's own key.
	UserKey bool
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch rates: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KeyProblem reports whether the user's own key was rejected or exhausted.
// Failures of the built-in key are never reported as key problems.
func (e *FetchError) KeyProblem() bool {
	if !e.UserKey {
		return false
	}
	var providerErr *exchangerate.ProviderError
	return errors.As(e.Err, &providerErr) && providerErr.IsKeyProblem()
}

// Message keys understood by the UI layer.
const (
	MessageInvalidBaseCurrency = "invalidBaseCurrencyError"
	MessageAPIKeyInvalid       = "apiKeyInvalidError"
	MessageAPIQuotaReached     = "apiQuotaReachedError"
	MessageAPINetwork          = "apiNetworkError"
	MessageAPIData             = "apiDataError"
	MessageAPIFetch            = "apiFetchError"
	MessageAPICurrencies       = "apiCurrenciesError"
	MessageRateUnavailable     = "rateUnavailableError"
	MessageInvalidAmount       = "invalidAmountError"
)

// MessageKey maps err to a UI message key. It returns "" for nil.
func MessageKey(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrInvalidAmount) {
		return MessageInvalidAmount
	}
	if errors.Is(err, ErrInvalidInput) {
		return MessageInvalidBaseCurrency
	}
	if errors.Is(err, ErrRateUnavailable) {
		return MessageRateUnavailable
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) && fetchErr.KeyProblem() {
		var providerErr *exchangerate.ProviderError
		errors.As(fetchErr.Err, &providerErr)
		if providerErr.Kind == exchangerate.KindQuotaReached {
			return MessageAPIQuotaReached
		}
		return MessageAPIKeyInvalid
	}

	switch {
	case errors.Is(err, exchangerate.ErrNetwork):
		return MessageAPINetwork
	case errors.Is(err, exchangerate.ErrMalformedResponse):
		return MessageAPIData
	default:
		return MessageAPIFetch
	}
}
