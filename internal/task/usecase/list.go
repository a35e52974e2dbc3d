package usecase

import (
	"context"
	"fmt"

	"task-reminder/internal/model"
	"task-reminder/internal/task/repository"
)

// List returns the user's open tasks, earliest due first.
func (uc *implUseCase) List(ctx context.Context, sc model.Scope) ([]model.Task, error) {
	tasks, err := uc.repo.ListTasks(ctx, repository.ListTasksOptions{
		UserID: sc.UserID,
		Status: model.TaskStatusOpen,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
