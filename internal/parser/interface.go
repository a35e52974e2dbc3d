package parser

import (
	"context"
	"time"

	"task-reminder/pkg/datemath"
	"task-reminder/pkg/llmprovider"
)

// UseCase extracts tasks from natural-language text.
type UseCase interface {
	// Extract never fails. In the worst case only Title is set.
	Extract(ctx context.Context, text string, now time.Time) ParsedTask
}

// Strategy is one tier of extraction. Attempt reports false when it has no result.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, text string, now time.Time) (ParsedTask, bool)
}

// Matcher recognizes one kind of phrase.
type Matcher interface {
	Match(text string) (Match, bool)
}

// DateParser resolves date phrases. Implemented by *datemath.Parser.
type DateParser interface {
	Parse(phrase string, base time.Time) (time.Time, error)
	SearchAll(text string, base time.Time) []datemath.Match
	Location() *time.Location
}

// LLM generates text. Implemented by *llmprovider.Manager and every llmprovider.Provider.
type LLM interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}
