package llmprovider

import (
	"context"
	"fmt"
	"strings"

	"task-reminder/pkg/gemini"
	"task-reminder/pkg/perplexity"
)

const (
	ProviderGemini     = "gemini"
	ProviderPerplexity = "perplexity"
)

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		Messages:    make([]gemini.Content, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != nil {
		geminiReq.SystemInstruction = &gemini.Content{Parts: toGeminiParts(req.SystemInstruction.Parts)}
	}
	for i, msg := range req.Messages {
		geminiReq.Messages[i] = gemini.Content{Role: msg.Role, Parts: toGeminiParts(msg.Parts)}
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderGemini, Err: err}
	}

	parts := make([]Part, len(resp.Content.Parts))
	for i, p := range resp.Content.Parts {
		parts[i] = Part{Text: p.Text}
	}

	usage := &Usage{}
	if resp.Usage != nil {
		usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}

	return &Response{
		Content:      Message{Role: "assistant", Parts: parts},
		ProviderName: ProviderGemini,
		ModelName:    a.client.Model(),
		Usage:        usage,
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return ProviderGemini
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

func toGeminiParts(parts []Part) []gemini.Part {
	out := make([]gemini.Part, len(parts))
	for i, p := range parts {
		out[i] = gemini.Part{Text: p.Text}
	}
	return out
}

// PerplexityAdapter adapts pkg/perplexity to llmprovider.Provider interface
type PerplexityAdapter struct {
	client perplexity.IPerplexity
}

// NewPerplexityAdapter creates a new Perplexity adapter
func NewPerplexityAdapter(client perplexity.IPerplexity) *PerplexityAdapter {
	return &PerplexityAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *PerplexityAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	pReq := &perplexity.Request{
		Messages:    make([]perplexity.Message, 0, len(req.Messages)+1),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	// System instruction goes first as a system message
	if req.SystemInstruction != nil && len(req.SystemInstruction.Parts) > 0 {
		pReq.Messages = append(pReq.Messages, perplexity.Message{
			Role:    "system",
			Content: joinParts(req.SystemInstruction.Parts),
		})
	}
	for _, msg := range req.Messages {
		pReq.Messages = append(pReq.Messages, perplexity.Message{
			Role:    msg.Role,
			Content: joinParts(msg.Parts),
		})
	}

	resp, err := a.client.GenerateContent(ctx, pReq)
	if err != nil {
		return nil, &ProviderError{Provider: ProviderPerplexity, Err: err}
	}
	if len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: ProviderPerplexity, Err: fmt.Errorf("empty choices")}
	}

	model := resp.Model
	if model == "" {
		model = a.client.Model()
	}

	return &Response{
		Content: Message{
			Role:  "assistant",
			Parts: []Part{{Text: resp.Choices[0].Message.Content}},
		},
		ProviderName: ProviderPerplexity,
		ModelName:    model,
		Usage: &Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns the provider name
func (a *PerplexityAdapter) Name() string {
	return ProviderPerplexity
}

// Model returns the model name
func (a *PerplexityAdapter) Model() string {
	return a.client.Model()
}

func joinParts(parts []Part) string {
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n")
}
