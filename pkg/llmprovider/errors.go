package llmprovider

import (
	"errors"
	"fmt"
)

var (
	// ErrNoProvidersConfigured means every provider is disabled or none is listed.
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrAllProvidersFailed wraps the last provider error once the chain is exhausted.
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrProviderTimeout is returned when the chain deadline passes between providers.
	ErrProviderTimeout = errors.New("provider timeout")
)

// ProviderError tags an upstream failure with the provider that produced it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
