package usecase

import (
	"context"
	"testing"
	"time"

	"task-reminder/pkg/datemath"
	"task-reminder/pkg/llmprovider"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

// Mock LLM returning a fixed text or error
type mockLLM struct {
	text  string
	err   error
	calls int
	last  *llmprovider.Request
}

func (m *mockLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.calls++
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &llmprovider.Response{
		Content: llmprovider.Message{Role: "assistant", Parts: []llmprovider.Part{{Text: m.text}}},
	}, nil
}

// Mock LLM that hangs until its context is done
type blockingLLM struct {
	ctxErr error
}

func (m *blockingLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	<-ctx.Done()
	m.ctxErr = ctx.Err()
	return nil, ctx.Err()
}

func newTestDates(t *testing.T) *datemath.Parser {
	t.Helper()
	p, err := datemath.NewParser("UTC")
	if err != nil {
		t.Fatalf("datemath.NewParser: %v", err)
	}
	return p
}

// Mock date parser with canned search results
type fakeDates struct {
	matches []datemath.Match
}

func (f fakeDates) Parse(phrase string, base time.Time) (time.Time, error) {
	for _, m := range f.matches {
		if m.Text == phrase {
			return m.Time, nil
		}
	}
	return time.Time{}, datemath.ErrNoDate
}

func (f fakeDates) SearchAll(text string, base time.Time) []datemath.Match { return f.matches }

func (f fakeDates) Location() *time.Location { return time.UTC }

// monday is 2026-02-02 12:00 UTC.
var monday = time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC)

func ptrTime(t time.Time) *time.Time { return &t }

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
