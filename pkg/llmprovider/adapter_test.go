package llmprovider

import (
	"context"
	"errors"
	"testing"

	"task-reminder/pkg/gemini"
	"task-reminder/pkg/perplexity"
)

type fakeGemini struct {
	last *gemini.Request
	resp *gemini.Response
	err  error
}

func (f *fakeGemini) GenerateContent(ctx context.Context, req *gemini.Request) (*gemini.Response, error) {
	f.last = req
	return f.resp, f.err
}

func (f *fakeGemini) Model() string { return "gemini-test" }

type fakePerplexity struct {
	last *perplexity.Request
	resp *perplexity.Response
	err  error
}

func (f *fakePerplexity) GenerateContent(ctx context.Context, req *perplexity.Request) (*perplexity.Response, error) {
	f.last = req
	return f.resp, f.err
}

func (f *fakePerplexity) Model() string { return "sonar" }

func testRequest() *Request {
	return &Request{
		SystemInstruction: &Message{Role: "system", Parts: []Part{{Text: "sys"}}},
		Messages:          []Message{{Role: "user", Parts: []Part{{Text: "hello"}}}},
		Temperature:       0.1,
	}
}

func TestGeminiAdapter(t *testing.T) {
	fake := &fakeGemini{resp: &gemini.Response{
		Content: gemini.Content{Role: "model", Parts: []gemini.Part{{Text: "ok"}}},
		Usage:   &gemini.Usage{InputTokens: 3, OutputTokens: 1, TotalTokens: 4},
	}}
	a := NewGeminiAdapter(fake)

	resp, err := a.GenerateContent(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "ok" || resp.ProviderName != ProviderGemini || resp.ModelName != "gemini-test" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if resp.Usage.TotalTokens != 4 {
		t.Errorf("usage not converted: %+v", resp.Usage)
	}
	if fake.last.SystemInstruction == nil || fake.last.SystemInstruction.Parts[0].Text != "sys" {
		t.Errorf("system instruction not forwarded")
	}
	if fake.last.Temperature != 0.1 {
		t.Errorf("temperature not forwarded")
	}

	fake.err = errors.New("boom")
	_, err = a.GenerateContent(context.Background(), testRequest())
	var perr *ProviderError
	if !errors.As(err, &perr) || perr.Provider != ProviderGemini {
		t.Errorf("expected ProviderError, got %v", err)
	}
}

func TestPerplexityAdapter(t *testing.T) {
	fake := &fakePerplexity{resp: &perplexity.Response{
		Model:   "sonar",
		Choices: []perplexity.Choice{{Message: perplexity.Message{Role: "assistant", Content: "ok"}}},
		Usage:   perplexity.Usage{PromptTokens: 5, CompletionTokens: 1, TotalTokens: 6},
	}}
	a := NewPerplexityAdapter(fake)

	resp, err := a.GenerateContent(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "ok" || resp.Usage.InputTokens != 5 {
		t.Errorf("unexpected response: %+v", resp)
	}
	if len(fake.last.Messages) != 2 || fake.last.Messages[0].Role != "system" || fake.last.Messages[1].Content != "hello" {
		t.Errorf("unexpected messages: %+v", fake.last.Messages)
	}

	fake.resp = &perplexity.Response{}
	if _, err := a.GenerateContent(context.Background(), testRequest()); err == nil {
		t.Errorf("expected error for empty choices")
	}
}
