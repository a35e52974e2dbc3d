package datemath

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	dps "github.com/markusmobius/go-dateparser"
)

// Parser converts natural-language date and time expressions to absolute time.Time values.
// Phrase recognition is done by go-dateparser; Parser adds day-part words and
// keeps every result in one configured location.
type Parser struct {
	location     *time.Location
	locale       string
	preferFuture bool
	engine       *dps.Parser
}

// Option configures a Parser.
type Option func(*Parser)

// WithLocale selects the phrase vocabulary. Only LocaleEnglish is supported.
func WithLocale(locale string) Option {
	return func(p *Parser) {
		p.locale = locale
	}
}

// WithPreferFuture controls whether a past time of day or weekday rolls forward.
func WithPreferFuture(prefer bool) Option {
	return func(p *Parser) {
		p.preferFuture = prefer
	}
}

// NewParser creates a new date parser for the given IANA timezone string.
// e.g. "Europe/Moscow"
func NewParser(timezone string, opts ...Option) (*Parser, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	p := &Parser{location: loc, locale: LocaleEnglish, preferFuture: true, engine: &dps.Parser{}}
	for _, opt := range opts {
		opt(p)
	}

	lang, _, _ := strings.Cut(strings.ToLower(p.locale), "-")
	if lang != LocaleEnglish {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, p.locale)
	}
	return p, nil
}

// Location returns the timezone results are expressed in.
func (p *Parser) Location() *time.Location {
	return p.location
}

// Parse resolves a phrase that consists of one date/time expression,
// e.g. "tomorrow at 15:00", "next friday", "in 2 hours", "tonight".
func (p *Parser) Parse(phrase string, base time.Time) (time.Time, error) {
	phrase = normalize(phrase)
	if phrase == "" {
		return time.Time{}, fmt.Errorf("%w: empty phrase", ErrNoDate)
	}

	if m := dayPartRe.FindStringSubmatchIndex(phrase); m != nil {
		part := "night"
		if m[2] >= 0 {
			part = strings.ToLower(phrase[m[2]:m[3]])
		}
		rest := strings.Trim(phrase[:m[0]]+" "+phrase[m[1]:], " ,")
		rest = strings.TrimSuffix(strings.TrimSpace(rest), " at")
		return p.withDayPart(rest, part, base)
	}

	d, err := p.engine.Parse(p.config(base), phrase)
	if err != nil || d.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNoDate, phrase)
	}
	return p.fromNaive(d.Time), nil
}

// SearchAll finds every date/time expression in text, in order of appearance.
func (p *Parser) SearchAll(text string, base time.Time) []Match {
	var matches []Match

	found, err := p.engine.SearchWithLanguage(p.config(base), LocaleEnglish, text)
	if err == nil {
		cursor := 0
		for _, r := range found {
			start, ok := locate(text, r.Text, cursor)
			if !ok || r.Date.IsZero() {
				continue
			}
			end := start + len(r.Text)
			cursor = end
			matches = append(matches, Match{
				Text:    r.Text,
				Start:   start,
				End:     end,
				Time:    p.fromNaive(r.Date.Time),
				HasTime: hasClockRe.MatchString(r.Text) || r.Date.Period.IsTime(),
			})
		}
	}

	// go-dateparser has no day-part vocabulary, so "tonight" and friends are added here.
	for _, loc := range dayPartRe.FindAllStringIndex(text, -1) {
		if overlaps(matches, loc[0], loc[1]) {
			continue
		}
		t, err := p.Parse(text[loc[0]:loc[1]], base)
		if err != nil {
			continue
		}
		matches = append(matches, Match{Text: text[loc[0]:loc[1]], Start: loc[0], End: loc[1], Time: t, HasTime: true})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Start < matches[j].Start })
	return matches
}

func (p *Parser) config(base time.Time) *dps.Configuration {
	source := dps.Future
	if !p.preferFuture {
		source = dps.CurrentPeriod
	}
	return &dps.Configuration{
		Languages:           []string{LocaleEnglish},
		CurrentTime:         p.naive(base),
		PreferredDateSource: source,
		ReturnTimeAsPeriod:  true,
	}
}

// withDayPart places a day-part word on the day (and clock) given by rest.
func (p *Parser) withDayPart(rest, part string, base time.Time) (time.Time, error) {
	local := base.In(p.location)
	if rest == "" || strings.EqualFold(rest, "today") {
		return p.rollPast(p.at(local, dayPartHour[part], 0), base), nil
	}

	if m := clockOnlyRe.FindStringSubmatch(rest); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		if hour > 23 || minute > 59 {
			return time.Time{}, fmt.Errorf("%w: %q", ErrNoDate, rest)
		}
		if m[3] != "" {
			hour = meridiem(hour, strings.ToLower(m[3]))
		} else {
			hour = shiftHour(hour, part)
		}
		return p.rollPast(p.at(local, hour, minute), base), nil
	}

	d, err := p.engine.Parse(p.config(base), rest)
	if err != nil || d.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q", ErrNoDate, rest)
	}
	t := p.fromNaive(d.Time)
	if d.Period.IsTime() {
		return p.at(t, shiftHour(t.Hour(), part), t.Minute()), nil
	}
	return p.at(t, dayPartHour[part], 0), nil
}

func (p *Parser) rollPast(t, base time.Time) time.Time {
	if p.preferFuture && !t.After(base) {
		return t.AddDate(0, 0, 1)
	}
	return t
}

// at sets the clock on day, which must already be in p.location.
func (p *Parser) at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, p.location)
}

// naive re-labels base's wall clock in p.location as UTC. go-dateparser
// resolves in the location of the current time and its time-only rollover
// is only exact in UTC.
func (p *Parser) naive(base time.Time) time.Time {
	t := base.In(p.location)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// fromNaive reverses naive. Results carrying an explicit zone are converted as instants.
func (p *Parser) fromNaive(t time.Time) time.Time {
	if t.Location() != time.UTC {
		return t.In(p.location)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), p.location)
}

func normalize(phrase string) string {
	phrase = strings.Join(strings.Fields(phrase), " ")
	phrase = weekdayQualifierRe.ReplaceAllString(phrase, "$1")
	return middayRe.ReplaceAllString(phrase, "noon")
}

// locate finds sub in text at or after cursor, falling back to a case-insensitive scan.
func locate(text, sub string, cursor int) (int, bool) {
	if sub == "" {
		return 0, false
	}
	if i := strings.Index(text[cursor:], sub); i >= 0 {
		return cursor + i, true
	}
	lower := strings.ToLower(text[cursor:])
	if len(lower) != len(text)-cursor {
		return 0, false
	}
	if i := strings.Index(lower, strings.ToLower(sub)); i >= 0 {
		return cursor + i, true
	}
	return 0, false
}

func overlaps(matches []Match, start, end int) bool {
	for _, m := range matches {
		if start < m.End && m.Start < end {
			return true
		}
	}
	return false
}

// shiftHour moves a 12-hour reading into the given day part.
func shiftHour(hour int, part string) int {
	if hour > 12 {
		return hour
	}
	switch part {
	case "morning":
		if hour == 12 {
			return 0
		}
	case "afternoon", "evening":
		if hour < 12 {
			return hour + 12
		}
	case "night":
		if hour >= 5 && hour < 12 {
			return hour + 12
		}
	}
	return hour
}

func meridiem(hour int, marker string) int {
	switch {
	case marker == "p" && hour < 12:
		return hour + 12
	case marker == "a" && hour == 12:
		return 0
	}
	return hour
}
