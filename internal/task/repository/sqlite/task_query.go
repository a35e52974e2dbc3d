package sqlite

import (
	"database/sql"
	"strings"
	"time"

	"task-reminder/internal/model"
	repo "task-reminder/internal/task/repository"
)

const defaultLimit = 100

type scanner interface {
	Scan(dest ...any) error
}

// buildListQuery builds the WHERE + ORDER + LIMIT clause for ListTasks.
func (r *implRepository) buildListQuery(opt repo.ListTasksOptions) (string, []any) {
	var parts []string
	var conditions []string
	var args []any

	if opt.UserID != 0 {
		conditions = append(conditions, "user_id = ?")
		args = append(args, opt.UserID)
	}
	if opt.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, string(opt.Status))
	}
	if len(conditions) > 0 {
		parts = append(parts, "WHERE "+strings.Join(conditions, " AND "))
	}

	parts = append(parts, "ORDER BY COALESCE(due_at, created_at), id")

	limit := opt.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	parts = append(parts, "LIMIT ?")
	args = append(args, limit)

	return strings.Join(parts, " "), args
}

func (r *implRepository) scanTask(s scanner) (model.Task, error) {
	var (
		t                           model.Task
		status                      string
		dueAt, remindAt, remindedAt sql.NullInt64
		createdAt, updatedAt        int64
	)
	err := s.Scan(
		&t.ID, &t.UserID, &t.ChatID, &t.Title, &t.Description, &dueAt, &remindAt, &t.RepeatRule,
		&t.NotionPageID, &t.CalendarEventID, &status, &remindedAt, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Task{}, err
	}

	t.Status = model.TaskStatus(status)
	t.DueAt = r.fromUnix(dueAt)
	t.RemindAt = r.fromUnix(remindAt)
	t.RemindedAt = r.fromUnix(remindedAt)
	t.CreatedAt = time.Unix(createdAt, 0).In(r.loc)
	t.UpdatedAt = time.Unix(updatedAt, 0).In(r.loc)
	return t, nil
}

func (r *implRepository) fromUnix(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := time.Unix(v.Int64, 0).In(r.loc)
	return &t
}

func toUnix(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}
