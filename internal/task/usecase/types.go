package usecase

import (
	"context"
	"time"
)

const (
	DefaultEventDuration = 30 * time.Minute
	DefaultReminderBatch = 50
)

// Notifier delivers plain-text messages to a chat.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Config holds the non-dependency settings of the task use case.
type Config struct {
	Location      *time.Location // zone tasks are extracted and displayed in
	CalendarID    string
	EventDuration time.Duration // length of mirrored calendar events
	ReminderBatch int           // max reminders sent per dispatch
}
