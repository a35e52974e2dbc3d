package task

import (
	"fmt"
	"strings"
	"time"

	"task-reminder/internal/model"
)

// WhenLayout is the human-readable layout for due and reminder times.
const WhenLayout = "Mon, 02 Jan 2006 15:04"

// FormatWhen renders t in loc, or "none" when t is nil.
func FormatWhen(t *time.Time, loc *time.Location) string {
	if t == nil {
		return "none"
	}
	if loc != nil {
		return t.In(loc).Format(WhenLayout)
	}
	return t.Format(WhenLayout)
}

// FormatReminder is the text sent when a task's reminder fires.
func FormatReminder(t model.Task, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reminder for task #%d\n", t.ID)
	fmt.Fprintf(&b, "%s\n", t.Title)
	fmt.Fprintf(&b, "Due: %s\n", FormatWhen(t.DueAt, loc))
	fmt.Fprintf(&b, "Mark done: /done %d", t.ID)
	return b.String()
}
