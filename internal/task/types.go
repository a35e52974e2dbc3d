package task

import "task-reminder/internal/model"

// CreateInput is the input for task creation.
// UserID and ChatID are stored in model.Scope, not here.
type CreateInput struct {
	Text string // Natural language task description from the user
}

// CreateOutput is the result of task creation.
type CreateOutput struct {
	Task   model.Task
	Source string // extraction strategy that produced the task: "llm" or "fallback"
}

// CompleteOutput is the result of completing a task.
type CompleteOutput struct {
	Task   model.Task
	Rolled bool // true when a recurring task moved to its next occurrence
}
