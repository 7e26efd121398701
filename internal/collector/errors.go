package collector

import (
	"errors"
	"fmt"
)

var (
	// ErrNoData means the provider knows nothing about the symbol.
	ErrNoData = errors.New("no data returned")
	// ErrUnknownPeriod is returned for a period outside the supported enum.
	ErrUnknownPeriod = errors.New("unknown period")
	// ErrEmptyQuery is returned when the submitted query is blank.
	ErrEmptyQuery = errors.New("empty query")
)

// ProviderError reports a failed call to the market data provider.
// It is never retried; the caller surfaces it to the user.
type ProviderError struct {
	Provider string
	Op       string
	Symbol   string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Provider, e.Op, e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsProviderError reports whether err wraps a ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
