package llmprovider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"task-reminder/config"
	"task-reminder/pkg/llmprovider"
	"task-reminder/pkg/log"
)

// TestIntegration_ConfigToManagerFlow verifies that configuration, provider
// initialization and the manager work together against a fake endpoint.
func TestIntegration_ConfigToManagerFlow(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"model": "sonar", "choices": [{"message": {"role": "assistant", "content": "{\"title\": \"x\"}"}}], "usage": {"total_tokens": 3}}`))
	}))
	defer ts.Close()

	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 2, APIKey: "test-gemini-key", Model: "gemini-2.5-flash", Timeout: "30s"},
			{Name: "perplexity", Enabled: true, Priority: 1, APIKey: "test-pplx-key", BaseURL: ts.URL, Model: "sonar", Timeout: "5s"},
			{Name: "perplexity", Enabled: true, Priority: 3, Model: "sonar"},
			{Name: "gemini", Enabled: false, Priority: 4, APIKey: "unused"},
		},
		FallbackEnabled: false,
		MaxTotalTimeout: "20s",
	}

	providers, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize providers: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("Expected 2 providers (keyless and disabled skipped), got %d", len(providers))
	}
	if providers[0].Name() != "perplexity" || providers[1].Name() != "gemini" {
		t.Errorf("unexpected provider order: %s, %s", providers[0].Name(), providers[1].Name())
	}

	managerCfg, err := llmprovider.NewManagerConfig(cfg)
	if err != nil {
		t.Fatalf("NewManagerConfig: %v", err)
	}
	if managerCfg.FallbackEnabled || managerCfg.MaxTotalTimeout != 20*time.Second {
		t.Errorf("unexpected durations: %+v", managerCfg)
	}

	manager := llmprovider.NewManager(providers, managerCfg, log.NewNop())
	resp, err := manager.GenerateContent(context.Background(), &llmprovider.Request{
		SystemInstruction: &llmprovider.Message{Role: "system", Parts: []llmprovider.Part{{Text: "sys"}}},
		Messages:          []llmprovider.Message{{Role: "user", Parts: []llmprovider.Part{{Text: "hi"}}}},
	})
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if resp.Text() != `{"title": "x"}` || resp.ProviderName != "perplexity" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestInitializeProviders_NothingUsable(t *testing.T) {
	_, err := llmprovider.InitializeProviders(&config.LLMConfig{
		Providers: []config.ProviderConfig{{Name: "perplexity", Enabled: true, Priority: 1}},
	})
	if !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
		t.Errorf("expected ErrNoProvidersConfigured, got %v", err)
	}

	_, err = llmprovider.InitializeProviders(&config.LLMConfig{
		Providers: []config.ProviderConfig{{Name: "unknown", Enabled: true, Priority: 1, APIKey: "k"}},
	})
	if err == nil {
		t.Errorf("expected error for unknown provider")
	}
}

func TestNewManagerFromConfig(t *testing.T) {
	_, err := llmprovider.NewManagerFromConfig(&config.LLMConfig{}, log.NewNop())
	if !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
		t.Errorf("expected ErrNoProvidersConfigured, got %v", err)
	}

	_, err = llmprovider.NewManagerFromConfig(&config.LLMConfig{
		Providers:       []config.ProviderConfig{{Name: "gemini", Enabled: true, Priority: 1, APIKey: "k"}},
		MaxTotalTimeout: "soon",
	}, log.NewNop())
	if err == nil {
		t.Errorf("expected error for bad max_total_timeout")
	}

	m, err := llmprovider.NewManagerFromConfig(&config.LLMConfig{
		Providers: []config.ProviderConfig{{Name: "gemini", Enabled: true, Priority: 1, APIKey: "k"}},
	}, log.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m.Providers()) != 1 || m.Providers()[0].Name() != "gemini" {
		t.Errorf("unexpected providers: %v", m.Providers())
	}
}
