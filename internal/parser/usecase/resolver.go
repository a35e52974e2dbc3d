package usecase

import (
	"regexp"
	"sort"
	"time"

	"task-reminder/internal/parser"
)

const dayPartPattern = `(?:morning|afternoon|evening|night)`

var (
	dateWordRe = regexp.MustCompile(`(?i)\b(?:(?:next|this)\s+)?(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b|\b(?:day\s+after\s+tomorrow|today|tomorrow)\b`)

	timeTokenRe = regexp.MustCompile(`(?i)(?:(?:\bat\s+)?\b\d{1,2}:\d{2}(?:\s*[ap]\.?m\b\.?)?|(?:\bat\s+)?\b\d{1,2}\s*[ap]\.?m\b\.?|\bat\s+\d{1,2}\b|\b(?:noon|midday|midnight)\b)(?:\s+(?:in\s+the\s+|at\s+)?` + dayPartPattern + `\b)?`)

	dayPartWordRe = regexp.MustCompile(`(?i)\b(?:in\s+the\s+|this\s+)?` + dayPartPattern + `\b`)

	bareWeekdayRe = regexp.MustCompile(`(?i)^(?:this\s+)?(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)$`)
)

// span is a byte range of the input that a resolved phrase came from.
type span struct {
	start, end int
}

// resolver finds the due moment of a task in free text.
type resolver struct {
	dates parser.DateParser
	cue   parser.Matcher
}

// resolveDue tries combined assembly first and full-text search second.
// The returned spans cover the text the due time was read from.
func (r resolver) resolveDue(text string, now time.Time) (time.Time, []span, bool) {
	if t, spans, ok := r.combined(text, now); ok {
		return t, spans, true
	}
	if m, ok := r.search(text, now); ok {
		return m.Time, []span{{m.Start, m.End}}, true
	}
	return time.Time{}, nil, false
}

// combined resolves a date word and a time token separately and splices the
// time of day onto the date, e.g. "friday ... at 18:00".
func (r resolver) combined(text string, now time.Time) (time.Time, []span, bool) {
	if _, ok := r.cue.Match(text); !ok {
		return time.Time{}, nil, false
	}

	dateLoc := dateWordRe.FindStringIndex(text)
	if dateLoc == nil {
		return time.Time{}, nil, false
	}
	timeLoc := timeTokenRe.FindStringIndex(text)
	if timeLoc == nil {
		timeLoc = dayPartWordRe.FindStringIndex(text)
	}
	if timeLoc == nil || (timeLoc[0] < dateLoc[1] && dateLoc[0] < timeLoc[1]) {
		return time.Time{}, nil, false
	}

	day, err := r.dates.Parse(text[dateLoc[0]:dateLoc[1]], now)
	if err != nil {
		return time.Time{}, nil, false
	}
	clock, err := r.dates.Parse(text[timeLoc[0]:timeLoc[1]], now)
	if err != nil {
		return time.Time{}, nil, false
	}

	loc := r.dates.Location()
	day, clock = day.In(loc), clock.In(loc)
	due := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc)
	if bareWeekdayRe.MatchString(text[dateLoc[0]:dateLoc[1]]) {
		due = nearestWeekday(due, now)
	}

	return due, []span{{dateLoc[0], dateLoc[1]}, {timeLoc[0], timeLoc[1]}}, true
}

// nearestWeekday moves a weekday instant to its first occurrence after now.
// The weekday alone is resolved against the current clock, so today's
// weekday comes back a week late even when the spliced time is still ahead.
func nearestWeekday(due, now time.Time) time.Time {
	for due.AddDate(0, 0, -7).After(now) {
		due = due.AddDate(0, 0, -7)
	}
	for !due.After(now) {
		due = due.AddDate(0, 0, 7)
	}
	return due
}

// search collects every date expression that lies in the future and prefers
// expressions with a time of day, then the earliest one.
func (r resolver) search(text string, now time.Time) (candidate, bool) {
	var found []candidate
	for _, m := range r.dates.SearchAll(text, now) {
		if !m.Time.After(now) {
			continue
		}
		found = append(found, candidate{Time: m.Time, HasTime: m.HasTime, Start: m.Start, End: m.End})
	}
	if len(found) == 0 {
		return candidate{}, false
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].HasTime != found[j].HasTime {
			return found[i].HasTime
		}
		return found[i].Time.Before(found[j].Time)
	})
	return found[0], true
}

// earliest resolves the leftmost date expression in phrase.
func (r resolver) earliest(phrase string, now time.Time) (candidate, bool) {
	matches := r.dates.SearchAll(phrase, now)
	if len(matches) == 0 {
		return candidate{}, false
	}
	first := matches[0]
	for _, m := range matches[1:] {
		if m.Start < first.Start {
			first = m
		}
	}
	return candidate{Time: first.Time, HasTime: first.HasTime, Start: first.Start, End: first.End}, true
}

type candidate struct {
	Time       time.Time
	HasTime    bool
	Start, End int
}
