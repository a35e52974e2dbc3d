package telegram

import (
	"fmt"
	"strings"
	"time"

	"task-reminder/internal/model"
	"task-reminder/internal/task"
)

const (
	startText = "Hi! I am a reminder bot.\n" +
		"Just send me a task as a normal message.\n" +
		"Example: buy milk tomorrow at 18:00 remind me 2 hours before"

	helpText = "Every message becomes a task.\n" +
		"Example: call the client tomorrow 15:00 remind 1 hour before\n" +
		"Repeats: daily, weekly, monthly, every 3 days, every 2 weeks\n\n" +
		"/list - open tasks\n" +
		"/done <id> - complete a task\n" +
		"/delete <id> - delete a task"

	noTasksText = "No open tasks."
)

// createdReply confirms a stored task.
func createdReply(out task.CreateOutput, loc *time.Location) string {
	t := out.Task
	repeat := t.RepeatRule
	if repeat == "" {
		repeat = "none"
	}
	return fmt.Sprintf("Added task #%d\nTitle: %s\nDue: %s\nReminder: %s\nRepeat: %s",
		t.ID, t.Title, task.FormatWhen(t.DueAt, loc), task.FormatWhen(t.RemindAt, loc), repeat)
}

func listReply(tasks []model.Task, loc *time.Location) string {
	if len(tasks) == 0 {
		return noTasksText
	}

	var b strings.Builder
	b.WriteString("Open tasks:")
	for _, t := range tasks {
		fmt.Fprintf(&b, "\n#%d %s", t.ID, t.Title)
		if t.DueAt != nil {
			fmt.Fprintf(&b, " (due %s)", task.FormatWhen(t.DueAt, loc))
		}
		if t.IsRecurring() {
			fmt.Fprintf(&b, " [%s]", t.RepeatRule)
		}
	}
	return b.String()
}

func completedReply(out task.CompleteOutput, loc *time.Location) string {
	if out.Rolled {
		return fmt.Sprintf("Done. Task #%d repeats %s, next due %s.",
			out.Task.ID, out.Task.RepeatRule, task.FormatWhen(out.Task.DueAt, loc))
	}
	return fmt.Sprintf("Task #%d is done.", out.Task.ID)
}

func deletedReply(id int64) string {
	return fmt.Sprintf("Task #%d deleted.", id)
}
