package datemath

import (
	"errors"
	"regexp"
)

// LocaleEnglish is the only locale the parser understands.
const LocaleEnglish = "en"

// Default clock hours for bare day-part words.
var dayPartHour = map[string]int{
	"morning":   9,
	"afternoon": 14,
	"evening":   19,
	"night":     22,
}

var (
	// "next friday" and "this friday" both name the nearest friday ahead.
	weekdayQualifierRe = regexp.MustCompile(`(?i)\b(?:next|this)\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	middayRe           = regexp.MustCompile(`(?i)\bmidday\b`)

	dayPartRe   = regexp.MustCompile(`(?i)\b(?:(?:in|at)\s+the\s+|this\s+|at\s+)?(morning|afternoon|evening|night)\b|\btonight\b`)
	clockOnlyRe = regexp.MustCompile(`(?i)^(?:at\s+)?(\d{1,2})(?:[:.](\d{2}))?\s*(?:([ap])\.?m\.?)?$`)
	hasClockRe  = regexp.MustCompile(`(?i)\d{1,2}[.:]\d{2}|\b\d{1,2}\s*[ap]\.?m\b|\b(?:noon|midday|midnight|tonight|morning|afternoon|evening|night)\b`)
)

var (
	ErrNoDate            = errors.New("no date expression found")
	ErrUnsupportedLocale = errors.New("unsupported locale")
)
