package repository

import (
	"context"
	"time"

	"task-reminder/internal/model"
)

// Repository is the persistence port of the task domain.
type Repository interface {
	CreateTask(ctx context.Context, opt CreateTaskOptions) (model.Task, error)
	// GetTask returns a zero-value Task (ID == 0) when no row matches.
	GetTask(ctx context.Context, id int64) (model.Task, error)
	ListTasks(ctx context.Context, opt ListTasksOptions) ([]model.Task, error)
	UpdateTask(ctx context.Context, opt UpdateTaskOptions) (model.Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// ListPendingReminders returns open tasks whose reminder is due at now and not yet sent.
	ListPendingReminders(ctx context.Context, now time.Time, limit int) ([]model.Task, error)
	MarkReminded(ctx context.Context, id int64, at time.Time) error
}
