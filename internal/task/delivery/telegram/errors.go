package telegram

import (
	"errors"

	"task-reminder/internal/task"
)

var errBadTaskID = errors.New("invalid task id")

// errorMessage maps an error to the reply shown to the user.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, task.ErrEmptyInput):
		return "Send me the task as a normal message, e.g. \"buy milk tomorrow at 18:00\"."
	case errors.Is(err, task.ErrTaskNotFound):
		return "Task not found."
	case errors.Is(err, task.ErrTaskAlreadyDone):
		return "That task is already done."
	case errors.Is(err, errBadTaskID):
		return "Please give a task number, e.g. /done 12."
	default:
		return "Something went wrong, please try again."
	}
}
