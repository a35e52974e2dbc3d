package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

var errUpstream = errors.New("upstream 503")

// stubProvider answers with reply or fails with err. When block is set it waits for ctx.
type stubProvider struct {
	name  string
	reply string
	err   error
	block bool
	calls atomic.Int32
}

func (s *stubProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	s.calls.Add(1)
	if s.block {
		<-ctx.Done()
		return nil, &ProviderError{Provider: s.name, Err: ctx.Err()}
	}
	if s.err != nil {
		return nil, &ProviderError{Provider: s.name, Err: s.err}
	}
	return &Response{
		Content:      Message{Role: "assistant", Parts: []Part{{Text: s.reply}}},
		ProviderName: s.name,
		Usage:        &Usage{InputTokens: 12, OutputTokens: 3},
	}, nil
}

func (s *stubProvider) Name() string  { return s.name }
func (s *stubProvider) Model() string { return s.name + "-model" }

// recordingLogger keeps formatted info and warn lines.
type recordingLogger struct {
	infos []string
	warns []string
}

func (l *recordingLogger) Debug(ctx context.Context, arg ...any)                   {}
func (l *recordingLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (l *recordingLogger) Info(ctx context.Context, arg ...any)                    {}
func (l *recordingLogger) Infof(ctx context.Context, template string, arg ...any) {
	l.infos = append(l.infos, fmt.Sprintf(template, arg...))
}
func (l *recordingLogger) Warn(ctx context.Context, arg ...any) {}
func (l *recordingLogger) Warnf(ctx context.Context, template string, arg ...any) {
	l.warns = append(l.warns, fmt.Sprintf(template, arg...))
}
func (l *recordingLogger) Error(ctx context.Context, arg ...any)                    {}
func (l *recordingLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (l *recordingLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (l *recordingLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (l *recordingLogger) Panic(ctx context.Context, arg ...any)                    {}
func (l *recordingLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (l *recordingLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (l *recordingLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func extractionRequest() *Request {
	return &Request{
		SystemInstruction: &Message{Role: "system", Parts: []Part{{Text: "return JSON"}}},
		Messages:          []Message{{Role: "user", Parts: []Part{{Text: "call mom tomorrow at 9"}}}},
		Temperature:       0,
	}
}

func TestManager_Chain(t *testing.T) {
	tests := []struct {
		name          string
		config        *Config
		primaryErr    error
		wantText      string
		wantErr       error
		wantSecondary int32
	}{
		{
			name:     "default config answers from primary",
			config:   nil,
			wantText: `{"title":"primary"}`,
		},
		{
			name:          "default config never falls back",
			config:        nil,
			primaryErr:    errUpstream,
			wantErr:       ErrAllProvidersFailed,
			wantSecondary: 0,
		},
		{
			name:          "fallback moves to the next provider",
			config:        &Config{FallbackEnabled: true},
			primaryErr:    errUpstream,
			wantText:      `{"title":"secondary"}`,
			wantSecondary: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &stubProvider{name: "perplexity", reply: `{"title":"primary"}`, err: tt.primaryErr}
			secondary := &stubProvider{name: "gemini", reply: `{"title":"secondary"}`}
			m := NewManager([]Provider{primary, secondary}, tt.config, &recordingLogger{})

			resp, err := m.GenerateContent(context.Background(), extractionRequest())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			} else if resp.Text() != tt.wantText {
				t.Errorf("text = %q, want %q", resp.Text(), tt.wantText)
			}

			if got := primary.calls.Load(); got != 1 {
				t.Errorf("primary called %d times, want exactly one attempt", got)
			}
			if got := secondary.calls.Load(); got != tt.wantSecondary {
				t.Errorf("secondary called %d times, want %d", got, tt.wantSecondary)
			}
		})
	}
}

func TestManager_FailureKeepsProviderCause(t *testing.T) {
	primary := &stubProvider{name: "perplexity", err: errUpstream}
	secondary := &stubProvider{name: "gemini", err: errors.New("quota exceeded")}
	m := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true}, &recordingLogger{})

	_, err := m.GenerateContent(context.Background(), extractionRequest())
	if !errors.Is(err, ErrAllProvidersFailed) || !errors.Is(err, errUpstream) {
		t.Fatalf("err = %v, want ErrAllProvidersFailed wrapping the upstream error", err)
	}
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Provider != "perplexity" {
		t.Errorf("expected the first ProviderError to name perplexity, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("every provider failure should be reported, got %v", err)
	}
}

func TestManager_NoProviders(t *testing.T) {
	m := NewManager(nil, &Config{FallbackEnabled: true}, &recordingLogger{})
	if _, err := m.GenerateContent(context.Background(), extractionRequest()); !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("err = %v, want ErrNoProvidersConfigured", err)
	}
}

func TestManager_DeadlineBoundsChain(t *testing.T) {
	slow := &stubProvider{name: "perplexity", block: true}
	next := &stubProvider{name: "gemini", reply: "{}"}
	m := NewManager([]Provider{slow, next}, &Config{FallbackEnabled: true, MaxTotalTimeout: 20 * time.Millisecond}, &recordingLogger{})

	started := time.Now()
	_, err := m.GenerateContent(context.Background(), extractionRequest())
	if elapsed := time.Since(started); elapsed > 2*time.Second {
		t.Fatalf("GenerateContent took %s, the deadline did not bound it", elapsed)
	}
	if !errors.Is(err, ErrProviderTimeout) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want ErrProviderTimeout wrapping DeadlineExceeded", err)
	}
	if got := next.calls.Load(); got != 0 {
		t.Errorf("no provider may start after the deadline, gemini called %d times", got)
	}
}

func TestManager_CallerDeadlineWins(t *testing.T) {
	slow := &stubProvider{name: "gemini", block: true}
	m := NewManager([]Provider{slow}, &Config{MaxTotalTimeout: time.Minute}, &recordingLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	started := time.Now()
	_, err := m.GenerateContent(ctx, extractionRequest())
	if elapsed := time.Since(started); elapsed > 2*time.Second {
		t.Fatalf("GenerateContent took %s, the caller deadline was ignored", elapsed)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

func TestManager_LogsOutcome(t *testing.T) {
	logger := &recordingLogger{}
	primary := &stubProvider{name: "perplexity", err: errUpstream}
	secondary := &stubProvider{name: "gemini", reply: "{}"}
	m := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true}, logger)

	if _, err := m.GenerateContent(context.Background(), extractionRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logger.warns) != 1 || !strings.Contains(logger.warns[0], "perplexity/perplexity-model") {
		t.Errorf("warns = %q", logger.warns)
	}
	if len(logger.infos) != 1 || !strings.Contains(logger.infos[0], "gemini/gemini-model") || !strings.Contains(logger.infos[0], "in=12 out=3") {
		t.Errorf("infos = %q", logger.infos)
	}
}
