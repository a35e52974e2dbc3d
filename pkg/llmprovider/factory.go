package llmprovider

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"task-reminder/config"
	"task-reminder/pkg/gemini"
	"task-reminder/pkg/log"
	"task-reminder/pkg/perplexity"
)

// NewManagerFromConfig builds a Manager over every usable provider in cfg.
// It returns ErrNoProvidersConfigured when there is none, which callers treat
// as "run without a language model".
func NewManagerFromConfig(cfg *config.LLMConfig, logger log.Logger) (*Manager, error) {
	providers, err := InitializeProviders(cfg)
	if err != nil {
		return nil, err
	}
	managerCfg, err := NewManagerConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewManager(providers, managerCfg, logger), nil
}

// InitializeProviders creates Provider instances from config.LLMConfig.
// Providers are sorted by priority (ascending); disabled providers and providers
// without an API key are skipped. It fails only when nothing usable remains.
func InitializeProviders(cfg *config.LLMConfig) ([]Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}

	var enabled []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabled = append(enabled, p)
		}
	}
	if len(enabled) == 0 {
		return nil, ErrNoProvidersConfigured
	}

	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})

	var providers []Provider
	var initErrors []string
	for _, p := range enabled {
		provider, err := createProvider(p)
		if err != nil {
			initErrors = append(initErrors, fmt.Sprintf("%s (priority %d): %v", p.Name, p.Priority, err))
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoProvidersConfigured, strings.Join(initErrors, "; "))
	}
	return providers, nil
}

// NewManagerConfig converts the string durations of config.LLMConfig.
func NewManagerConfig(cfg *config.LLMConfig) (*Config, error) {
	maxTotal, err := parseDuration(cfg.MaxTotalTimeout)
	if err != nil {
		return nil, fmt.Errorf("llm.max_total_timeout: %w", err)
	}
	return &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		MaxTotalTimeout: maxTotal,
	}, nil
}

// createProvider creates a concrete provider instance based on the provider config
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	timeout, err := parseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("timeout: %w", err)
	}
	var httpClient *http.Client
	if timeout > 0 {
		httpClient = &http.Client{Timeout: timeout}
	}

	switch strings.ToLower(cfg.Name) {
	case ProviderPerplexity:
		client, err := perplexity.New(perplexity.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create perplexity client: %w", err)
		}
		return NewPerplexityAdapter(client), nil

	case ProviderGemini:
		client, err := gemini.New(gemini.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			APIURL:     cfg.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeminiAdapter(client), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
