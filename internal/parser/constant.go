package parser

const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"

	// UntitledTitle replaces a title that is empty after cleanup.
	UntitledTitle = "Untitled"
)
