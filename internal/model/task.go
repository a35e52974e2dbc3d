package model

import "time"

// TaskStatus is the lifecycle state of a stored task.
type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "open"
	TaskStatusDone TaskStatus = "done"
)

// Task is a reminder task owned by a Telegram user.
type Task struct {
	ID          int64
	UserID      int64
	ChatID      int64
	Title       string
	Description string
	DueAt       *time.Time
	RemindAt    *time.Time
	RepeatRule  string // canonical recurrence rule or ""
	Status      TaskStatus

	// External mirrors; empty when the task was not synced.
	NotionPageID    string
	CalendarEventID string

	RemindedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsRecurring reports whether the task carries a repeat rule.
func (t Task) IsRecurring() bool {
	return t.RepeatRule != ""
}
