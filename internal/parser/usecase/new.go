package usecase

import (
	"time"

	"task-reminder/internal/parser"
	pkgLog "task-reminder/pkg/log"
)

// DefaultLLMTimeout bounds one language-model call.
const DefaultLLMTimeout = 20 * time.Second

type implUseCase struct {
	l          pkgLog.Logger
	loc        *time.Location
	strategies []parser.Strategy
}

// Options configures the extraction chain.
type Options struct {
	// LLM is optional. Without it only the rule-based extractor runs.
	LLM        parser.LLM
	LLMTimeout time.Duration
}

// New creates a parser UseCase. The language-model tier is tried first when
// opts.LLM is set; the rule-based tier always runs last.
func New(l pkgLog.Logger, dates parser.DateParser, opts Options) parser.UseCase {
	timeout := opts.LLMTimeout
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}

	var strategies []parser.Strategy
	if opts.LLM != nil {
		strategies = append(strategies, llmStrategy{
			l:       l,
			llm:     opts.LLM,
			loc:     dates.Location(),
			timeout: timeout,
		})
	}
	strategies = append(strategies, newFallbackStrategy(dates))

	return &implUseCase{
		l:          l,
		loc:        dates.Location(),
		strategies: strategies,
	}
}
