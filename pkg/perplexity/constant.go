package perplexity

import "time"

const (
	// DefaultBaseURL is the default Perplexity API endpoint
	DefaultBaseURL = "https://api.perplexity.ai"

	// DefaultModel is the default model to use
	DefaultModel = "sonar"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 60 * time.Second
)
