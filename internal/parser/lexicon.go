package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DurationPattern matches one "N unit" pair, e.g. "2 hours", "an hour", "15min".
const DurationPattern = `(?:\d+|an?|one)\s*(?:minutes?|mins?|hours?|hrs?|h|days?|d|weeks?|wks?|w)\b`

var durationPairRe = regexp.MustCompile(`(?i)(\d+|\ban?\b|\bone\b)\s*(minutes?|mins?|hours?|hrs?|h|days?|d|weeks?|wks?|w)\b`)

// ToDuration converts an amount and a unit word into a duration. Units are
// matched by prefix: min* minutes, h* hours, w* weeks, anything else days.
func ToDuration(amount int, unit string) time.Duration {
	unit = strings.ToLower(strings.TrimSpace(unit))
	switch {
	case strings.HasPrefix(unit, "min"):
		return time.Duration(amount) * time.Minute
	case strings.HasPrefix(unit, "h"):
		return time.Duration(amount) * time.Hour
	case strings.HasPrefix(unit, "w"):
		return time.Duration(amount) * 7 * 24 * time.Hour
	default:
		return time.Duration(amount) * 24 * time.Hour
	}
}

// SumDurations adds up every "N unit" pair in text.
func SumDurations(text string) time.Duration {
	var total time.Duration
	for _, m := range durationPairRe.FindAllStringSubmatch(text, -1) {
		total += ToDuration(ParseAmount(m[1]), m[2])
	}
	return total
}

// ParseAmount reads a numeral or "a", "an", "one". It returns 0 for anything else.
func ParseAmount(s string) int {
	switch strings.ToLower(s) {
	case "a", "an", "one":
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
