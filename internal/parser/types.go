package parser

import "time"

// ParsedTask is the structured result of extracting a task from free text.
type ParsedTask struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	DueAt       *time.Time `json:"due_at,omitempty" yaml:"due_at,omitempty"`
	RemindAt    *time.Time `json:"remind_at,omitempty" yaml:"remind_at,omitempty"`
	RepeatRule  string     `json:"repeat_rule,omitempty" yaml:"repeat_rule,omitempty"`
	Source      string     `json:"source" yaml:"source"` // SourceLLM or SourceFallback
}

// Match is a phrase recognized by a Matcher.
type Match struct {
	Start, End int
	Text       string

	// Delta is the offset or relative reminder duration.
	Delta time.Duration

	// Phrase is the free text after "remind me at", starting at PhraseStart.
	Phrase      string
	PhraseStart int

	// Rule is the canonical recurrence rule.
	Rule string
}
