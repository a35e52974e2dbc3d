package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"task-reminder/pkg/log"
)

// Manager sends a request to the highest-priority provider. Each provider
// gets exactly one attempt; with fallback enabled a failure moves on to the
// next one, and every attempt shares the MaxTotalTimeout deadline.
type Manager struct {
	providers []Provider
	config    Config
	logger    log.Logger
}

// Config controls the provider chain. The zero value means one provider, no deadline.
type Config struct {
	FallbackEnabled bool
	MaxTotalTimeout time.Duration
}

// NewManager creates a Manager over providers, which must already be in priority order.
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	m := &Manager{providers: providers, logger: logger}
	if config != nil {
		m.config = *config
	}
	return m
}

// Providers returns the configured providers in priority order.
func (m *Manager) Providers() []Provider {
	return m.providers
}

// GenerateContent returns the first successful response in the chain.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	if m.config.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	chain := m.providers[:1]
	if m.config.FallbackEnabled {
		chain = m.providers
	}

	var errs []error
	for _, provider := range chain {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrProviderTimeout, err)
		}

		started := time.Now()
		resp, err := provider.GenerateContent(ctx, req)
		if err != nil {
			m.logger.Warnf(ctx, "llmprovider.Manager.GenerateContent: %s/%s failed after %s: %v",
				provider.Name(), provider.Model(), time.Since(started).Round(time.Millisecond), err)
			errs = append(errs, err)
			continue
		}

		var in, out int
		if resp.Usage != nil {
			in, out = resp.Usage.InputTokens, resp.Usage.OutputTokens
		}
		m.logger.Infof(ctx, "llmprovider.Manager.GenerateContent: %s/%s answered in %s (tokens in=%d out=%d)",
			provider.Name(), provider.Model(), time.Since(started).Round(time.Millisecond), in, out)
		return resp, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrAllProvidersFailed, errors.Join(errs...))
}
