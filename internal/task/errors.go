package task

import "errors"

// Domain-specific errors for the task package.
var (
	ErrEmptyInput       = errors.New("input text is empty")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskAlreadyDone  = errors.New("task is already done")
	ErrNotifierRequired = errors.New("reminder notifier is not configured")
)
