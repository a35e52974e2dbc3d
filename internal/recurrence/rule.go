package recurrence

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies a recurrence cycle.
type Kind string

const (
	KindDaily       Kind = "daily"
	KindWeekly      Kind = "weekly"
	KindMonthly     Kind = "monthly"
	KindYearly      Kind = "yearly"
	KindEveryNDays  Kind = "every_n_days"
	KindEveryNWeeks Kind = "every_n_weeks"
)

// Rule is a canonical recurrence descriptor. N is used only by the parametric kinds.
type Rule struct {
	Kind Kind
	N    int
}

// String returns the canonical text form stored on tasks.
func (r Rule) String() string {
	switch r.Kind {
	case KindEveryNDays:
		return fmt.Sprintf("every %d days", r.N)
	case KindEveryNWeeks:
		return fmt.Sprintf("every %d weeks", r.N)
	default:
		return string(r.Kind)
	}
}

var (
	everyNRe = regexp.MustCompile(`^every\s+(\d+)\s*(days?|d|weeks?|w)$`)

	fixedAliases = map[string]Kind{
		"daily":       KindDaily,
		"every day":   KindDaily,
		"each day":    KindDaily,
		"everyday":    KindDaily,
		"weekly":      KindWeekly,
		"every week":  KindWeekly,
		"each week":   KindWeekly,
		"monthly":     KindMonthly,
		"every month": KindMonthly,
		"each month":  KindMonthly,
		"yearly":      KindYearly,
		"annually":    KindYearly,
		"every year":  KindYearly,
		"each year":   KindYearly,
	}
)

// ParseRule normalizes a recurrence string. It accepts canonical forms and
// common spellings; ParseRule(r.String()) always returns r.
func ParseRule(s string) (Rule, bool) {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")
	if s == "" {
		return Rule{}, false
	}

	if kind, ok := fixedAliases[s]; ok {
		return Rule{Kind: kind}, true
	}

	m := everyNRe.FindStringSubmatch(s)
	if m == nil {
		return Rule{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return Rule{}, false
	}

	// A period of one is stored as daily or weekly.
	if strings.HasPrefix(m[2], "w") {
		if n == 1 {
			return Rule{Kind: KindWeekly}, true
		}
		return Rule{Kind: KindEveryNWeeks, N: n}, true
	}
	if n == 1 {
		return Rule{Kind: KindDaily}, true
	}
	return Rule{Kind: KindEveryNDays, N: n}, true
}

// Normalize returns the canonical form of s, or "" when s is not a recurrence rule.
func Normalize(s string) string {
	r, ok := ParseRule(s)
	if !ok {
		return ""
	}
	return r.String()
}
