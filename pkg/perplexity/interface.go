package perplexity

import "context"

// IPerplexity defines the interface for the Perplexity chat completions client
type IPerplexity interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}
