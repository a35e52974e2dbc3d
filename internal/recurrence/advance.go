package recurrence

import "time"

// maxRollSteps bounds RollForward for tasks that have been overdue for a long time.
const maxRollSteps = 10000

// Advance moves due forward by one application of rule. It returns false when
// due is nil or rule is not recognized.
func Advance(due *time.Time, rule string) (time.Time, bool) {
	if due == nil {
		return time.Time{}, false
	}
	r, ok := ParseRule(rule)
	if !ok {
		return time.Time{}, false
	}
	return r.Next(*due), true
}

// Next returns t advanced by one cycle. Time of day and location are preserved.
func (r Rule) Next(t time.Time) time.Time {
	switch r.Kind {
	case KindDaily:
		return t.AddDate(0, 0, 1)
	case KindWeekly:
		return t.AddDate(0, 0, 7)
	case KindEveryNDays:
		return t.AddDate(0, 0, r.N)
	case KindEveryNWeeks:
		return t.AddDate(0, 0, 7*r.N)
	case KindMonthly:
		return addMonthsClamped(t, 1)
	case KindYearly:
		return addMonthsClamped(t, 12)
	}
	return t
}

// addMonthsClamped keeps the day of month, clamped to the target month's length.
// time.AddDate would normalize Jan 31 + 1 month into March.
func addMonthsClamped(t time.Time, months int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()

	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// ShiftReminder carries the old reminder lead time over to newDue. The result
// is nil when there was no positive lead or the shifted reminder is not after now.
func ShiftReminder(oldDue, oldRemind *time.Time, newDue, now time.Time) *time.Time {
	if oldDue == nil || oldRemind == nil {
		return nil
	}
	lead := oldDue.Sub(*oldRemind)
	if lead <= 0 {
		return nil
	}
	next := newDue.Add(-lead)
	if !next.After(now) {
		return nil
	}
	return &next
}

// RollForward advances due until it is strictly after now, then recomputes the
// reminder against the final due. It returns false when the rule cannot advance due.
func RollForward(due, remind *time.Time, rule string, now time.Time) (time.Time, *time.Time, bool) {
	if due == nil {
		return time.Time{}, nil, false
	}
	r, ok := ParseRule(rule)
	if !ok {
		return time.Time{}, nil, false
	}

	next := r.Next(*due)
	for i := 0; i < maxRollSteps && !next.After(now); i++ {
		next = r.Next(next)
	}
	return next, ShiftReminder(due, remind, next, now), true
}
