package usecase

import (
	"regexp"
	"strings"

	"task-reminder/internal/parser"
	"task-reminder/internal/recurrence"
)

const remindCue = `\bremind(?:\s+me)?`

var (
	offsetRe   = regexp.MustCompile(`(?i)` + remindCue + `\s+(\d+|an?|one)\s*([a-z]+)\s+(?:before|earlier|ahead|in\s+advance)\b`)
	absoluteRe = regexp.MustCompile(`(?is)` + remindCue + `\s+at\s+(\S.*)$`)
	relativeRe = regexp.MustCompile(`(?i)` + remindCue + `\s+in\s+(` + parser.DurationPattern + `(?:(?:\s*,\s*|\s+and\s+|\s+)` + parser.DurationPattern + `)*)`)

	fixedCycleRe = regexp.MustCompile(`(?i)\b(?:every\s*day|daily|each\s+day|every\s+week|weekly|each\s+week|every\s+month|monthly|each\s+month|every\s+year|yearly|annually|each\s+year)\b`)
	everyNRe     = regexp.MustCompile(`(?i)\bevery\s+(\d+)\s*(days?|weeks?)\b`)

	dateCueRe = regexp.MustCompile(`(?i)\b(?:\d{1,2}:\d{2}|\d{1,2}|today|tomorrow|day\s+after\s+tomorrow|tonight|monday|tuesday|wednesday|thursday|friday|saturday|sunday|morning|afternoon|evening|night)\b`)

	bareCueRe = regexp.MustCompile(`(?i)` + remindCue + `(?:\s+to)?\b`)
)

// offsetMatcher: "remind me 1 hour before".
type offsetMatcher struct{}

func (offsetMatcher) Match(text string) (parser.Match, bool) {
	m := offsetRe.FindStringSubmatchIndex(text)
	if m == nil {
		return parser.Match{}, false
	}
	amount := parser.ParseAmount(text[m[2]:m[3]])
	if amount <= 0 {
		return parser.Match{}, false
	}
	return parser.Match{
		Start: m[0],
		End:   m[1],
		Text:  text[m[0]:m[1]],
		Delta: parser.ToDuration(amount, text[m[4]:m[5]]),
	}, true
}

// absoluteMatcher: "remind me at 9:30 tomorrow". The payload runs to the end of text.
type absoluteMatcher struct{}

func (absoluteMatcher) Match(text string) (parser.Match, bool) {
	m := absoluteRe.FindStringSubmatchIndex(text)
	if m == nil {
		return parser.Match{}, false
	}
	return parser.Match{
		Start:       m[0],
		End:         m[1],
		Text:        text[m[0]:m[1]],
		Phrase:      text[m[2]:m[3]],
		PhraseStart: m[2],
	}, true
}

// relativeMatcher: "remind me in 2 hours and 20 minutes".
type relativeMatcher struct{}

func (relativeMatcher) Match(text string) (parser.Match, bool) {
	m := relativeRe.FindStringSubmatchIndex(text)
	if m == nil {
		return parser.Match{}, false
	}
	delta := parser.SumDurations(text[m[2]:m[3]])
	if delta <= 0 {
		return parser.Match{}, false
	}
	return parser.Match{
		Start: m[0],
		End:   m[1],
		Text:  text[m[0]:m[1]],
		Delta: delta,
	}, true
}

// recurrenceMatcher checks fixed cycles before "every N days|weeks".
type recurrenceMatcher struct{}

func (recurrenceMatcher) Match(text string) (parser.Match, bool) {
	if loc := fixedCycleRe.FindStringIndex(text); loc != nil {
		phrase := text[loc[0]:loc[1]]
		if rule := recurrence.Normalize(phrase); rule != "" {
			return parser.Match{Start: loc[0], End: loc[1], Text: phrase, Rule: rule}, true
		}
	}

	m := everyNRe.FindStringSubmatchIndex(text)
	if m == nil {
		return parser.Match{}, false
	}
	phrase := text[m[0]:m[1]]
	rule := recurrence.Normalize(phrase)
	if rule == "" {
		return parser.Match{}, false
	}
	return parser.Match{Start: m[0], End: m[1], Text: phrase, Rule: rule}, true
}

// dateCueMatcher reports whether text has anything that looks like a date or time.
type dateCueMatcher struct{}

func (dateCueMatcher) Match(text string) (parser.Match, bool) {
	loc := dateCueRe.FindStringIndex(text)
	if loc == nil {
		return parser.Match{}, false
	}
	return parser.Match{Start: loc[0], End: loc[1], Text: text[loc[0]:loc[1]]}, true
}

// hasRemindCue reports whether text asks for a reminder without saying when.
func hasRemindCue(text string) bool {
	return bareCueRe.MatchString(text)
}

// normalizeSpace collapses runs of whitespace and trims the ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
