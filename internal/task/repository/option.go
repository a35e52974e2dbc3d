package repository

import (
	"time"

	"task-reminder/internal/model"
)

// CreateTaskOptions holds the parameters for inserting a task.
type CreateTaskOptions struct {
	UserID      int64
	ChatID      int64
	Title       string
	Description string
	DueAt       *time.Time
	RemindAt    *time.Time
	RepeatRule  string
}

// ListTasksOptions filters ListTasks. Zero fields are not applied.
type ListTasksOptions struct {
	UserID int64
	Status model.TaskStatus
	Limit  int
}

// UpdateTaskOptions replaces every mutable column of the task with ID.
type UpdateTaskOptions struct {
	ID              int64
	Title           string
	Description     string
	DueAt           *time.Time
	RemindAt        *time.Time
	RepeatRule      string
	Status          model.TaskStatus
	NotionPageID    string
	CalendarEventID string
	RemindedAt      *time.Time
}
