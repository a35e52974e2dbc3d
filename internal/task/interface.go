package task

import (
	"context"
	"time"

	"task-reminder/internal/model"
)

// UseCase defines the business logic interface for the task domain.
type UseCase interface {
	// Create extracts a task from free text, stores it and mirrors it to Notion and Google Calendar.
	Create(ctx context.Context, sc model.Scope, input CreateInput) (CreateOutput, error)

	// List returns the user's open tasks, earliest due first.
	List(ctx context.Context, sc model.Scope) ([]model.Task, error)

	// Complete closes a task. Recurring tasks roll forward to their next occurrence instead.
	Complete(ctx context.Context, sc model.Scope, id int64) (CompleteOutput, error)

	// Delete removes a task and its mirrors.
	Delete(ctx context.Context, sc model.Scope, id int64) error

	// DispatchReminders sends every reminder due at now and returns how many were sent.
	DispatchReminders(ctx context.Context, now time.Time) (int, error)
}
