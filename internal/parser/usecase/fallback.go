package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"task-reminder/internal/parser"
)

// connectorWords are dropped when they are left dangling next to a removed phrase.
var connectorWords = map[string]bool{
	"to":  true,
	"at":  true,
	"on":  true,
	"by":  true,
	"and": true,
}

const edgePunct = " \t\r\n,.;:-"

// fallbackStrategy is the deterministic, rule-based extractor. It always succeeds.
type fallbackStrategy struct {
	resolver   resolver
	offset     parser.Matcher
	absolute   parser.Matcher
	relative   parser.Matcher
	recurrence parser.Matcher
}

func newFallbackStrategy(dates parser.DateParser) fallbackStrategy {
	return fallbackStrategy{
		resolver:   resolver{dates: dates, cue: dateCueMatcher{}},
		offset:     offsetMatcher{},
		absolute:   absoluteMatcher{},
		relative:   relativeMatcher{},
		recurrence: recurrenceMatcher{},
	}
}

func (fallbackStrategy) Name() string {
	return parser.SourceFallback
}

func (s fallbackStrategy) Attempt(_ context.Context, text string, now time.Time) (parser.ParsedTask, bool) {
	task := parser.ParsedTask{Source: parser.SourceFallback}
	var removed []span

	offsetM, hasOffset := s.offset.Match(text)
	absoluteM, hasAbsolute := s.absolute.Match(text)
	relativeM, hasRelative := s.relative.Match(text)
	recurM, hasRecur := s.recurrence.Match(text)

	// Reminder and recurrence phrases must not be read as the due date.
	masked := text
	for _, m := range []struct {
		parser.Match
		ok bool
	}{{offsetM, hasOffset}, {absoluteM, hasAbsolute}, {relativeM, hasRelative}, {recurM, hasRecur}} {
		if m.ok {
			masked = mask(masked, m.Start, m.End)
		}
	}

	if due, spans, ok := s.resolver.resolveDue(masked, now); ok {
		task.DueAt = &due
		removed = append(removed, spans...)
	}

	// Reminder phrasings are tried in order until one yields a moment.
	// An offset needs a due time; its phrase never reaches the title.
	if hasOffset {
		removed = append(removed, span{offsetM.Start, offsetM.End})
		if task.DueAt != nil {
			task.RemindAt = futureOrNil(task.DueAt.Add(-offsetM.Delta), now)
		}
	}
	if task.RemindAt == nil && hasAbsolute {
		if c, ok := s.resolver.earliest(absoluteM.Phrase, now); ok {
			removed = append(removed, span{absoluteM.Start, absoluteM.PhraseStart + c.End})
			task.RemindAt = futureOrNil(c.Time, now)
		}
	}
	if task.RemindAt == nil && hasRelative {
		removed = append(removed, span{relativeM.Start, relativeM.End})
		task.RemindAt = futureOrNil(now.Add(relativeM.Delta), now)
	}

	if task.RemindAt != nil && task.DueAt == nil {
		due := *task.RemindAt
		task.DueAt = &due
	}

	// Any reminder request without a usable moment reminds at the due moment.
	// TODO: decide whether a bare cue should get a default lead before the due.
	if task.RemindAt == nil && task.DueAt != nil && hasRemindCue(text) {
		task.RemindAt = futureOrNil(*task.DueAt, now)
	}

	if hasRecur {
		task.RepeatRule = recurM.Rule
		removed = append(removed, span{recurM.Start, recurM.End})
	}

	// Without any other match the text is kept as written.
	if len(removed) > 0 {
		for _, loc := range bareCueRe.FindAllStringIndex(text, -1) {
			removed = append(removed, span{loc[0], loc[1]})
		}
	}

	task.Title = cleanTitle(text, removed)
	return task, true
}

// mask blanks text[start:end] while keeping byte offsets intact.
func mask(text string, start, end int) string {
	return text[:start] + strings.Repeat(" ", end-start) + text[end:]
}

func futureOrNil(t, now time.Time) *time.Time {
	if !t.After(now) {
		return nil
	}
	return &t
}

// cleanTitle removes the given spans and tidies what is left.
func cleanTitle(text string, removed []span) string {
	if len(removed) == 0 {
		return titleOrPlaceholder(normalizeSpace(text))
	}

	sort.Slice(removed, func(i, j int) bool { return removed[i].start < removed[j].start })
	merged := []span{removed[0]}
	for _, sp := range removed[1:] {
		last := &merged[len(merged)-1]
		if sp.start <= last.end {
			if sp.end > last.end {
				last.end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}

	var pieces []string
	prev := 0
	for i := 0; i <= len(merged); i++ {
		end := len(text)
		if i < len(merged) {
			end = merged[i].start
		}
		piece := text[prev:end]
		if i > 0 {
			piece = trimLeadingConnectors(piece)
		}
		if i < len(merged) {
			piece = trimTrailingConnectors(piece)
			prev = merged[i].end
		}
		if piece = normalizeSpace(piece); piece != "" {
			pieces = append(pieces, piece)
		}
	}

	return titleOrPlaceholder(strings.Join(pieces, " "))
}

func trimLeadingConnectors(s string) string {
	for {
		s = strings.TrimLeft(s, edgePunct)
		word, rest, _ := strings.Cut(s, " ")
		if word == "" || !connectorWords[strings.ToLower(word)] {
			return s
		}
		s = rest
	}
}

func trimTrailingConnectors(s string) string {
	for {
		s = strings.TrimRight(s, edgePunct)
		i := strings.LastIndexAny(s, " \t\r\n")
		word := s[i+1:]
		if word == "" || !connectorWords[strings.ToLower(word)] {
			return s
		}
		s = s[:i+1]
	}
}

func titleOrPlaceholder(title string) string {
	if title == "" {
		return parser.UntitledTitle
	}
	return title
}
