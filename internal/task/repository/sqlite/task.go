package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"task-reminder/internal/model"
	repo "task-reminder/internal/task/repository"
)

const taskColumns = `id, user_id, chat_id, title, description, due_at, remind_at, repeat_rule,
	notion_page_id, calendar_event_id, status, reminded_at, created_at, updated_at`

// CreateTask inserts a new open task and returns the stored row.
func (r *implRepository) CreateTask(ctx context.Context, opt repo.CreateTaskOptions) (model.Task, error) {
	const query = `
		INSERT INTO tasks (user_id, chat_id, title, description, due_at, remind_at, repeat_rule, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := r.now().Unix()
	res, err := r.db.ExecContext(ctx, query,
		opt.UserID, opt.ChatID, opt.Title, opt.Description,
		toUnix(opt.DueAt), toUnix(opt.RemindAt), opt.RepeatRule,
		string(model.TaskStatusOpen), now, now,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTask"), err)
		return model.Task{}, repo.ErrFailedToInsert
	}

	id, err := res.LastInsertId()
	if err != nil {
		r.l.Errorf(ctx, "%s: last insert id: %v", r.dsn("CreateTask"), err)
		return model.Task{}, repo.ErrFailedToInsert
	}
	return r.GetTask(ctx, id)
}

// GetTask retrieves a task by id. Not found yields a zero-value Task and no error.
func (r *implRepository) GetTask(ctx context.Context, id int64) (model.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = ?`, taskColumns)

	t, err := r.scanTask(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return model.Task{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetTask"), err)
		return model.Task{}, repo.ErrFailedToGet
	}
	return t, nil
}

// ListTasks returns tasks matching opt, earliest due (or creation) first.
func (r *implRepository) ListTasks(ctx context.Context, opt repo.ListTasksOptions) ([]model.Task, error) {
	mods, args := r.buildListQuery(opt)
	query := fmt.Sprintf(`SELECT %s FROM tasks %s`, taskColumns, mods)

	tasks, err := r.queryTasks(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTasks"), err)
		return nil, repo.ErrFailedToList
	}
	return tasks, nil
}

// UpdateTask overwrites the mutable columns of a task and returns the stored row.
// A missing row yields a zero-value Task and no error.
func (r *implRepository) UpdateTask(ctx context.Context, opt repo.UpdateTaskOptions) (model.Task, error) {
	const query = `
		UPDATE tasks
		SET title = ?, description = ?, due_at = ?, remind_at = ?, repeat_rule = ?, status = ?,
		    notion_page_id = ?, calendar_event_id = ?, reminded_at = ?, updated_at = ?
		WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query,
		opt.Title, opt.Description, toUnix(opt.DueAt), toUnix(opt.RemindAt), opt.RepeatRule,
		string(opt.Status), opt.NotionPageID, opt.CalendarEventID, toUnix(opt.RemindedAt),
		r.now().Unix(), opt.ID,
	)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateTask"), err)
		return model.Task{}, repo.ErrFailedToUpdate
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Task{}, nil
	}
	return r.GetTask(ctx, opt.ID)
}

// DeleteTask removes a task by id. Deleting a missing row is not an error.
func (r *implRepository) DeleteTask(ctx context.Context, id int64) error {
	const query = `DELETE FROM tasks WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteTask"), err)
		return repo.ErrFailedToDelete
	}
	return nil
}

// ListPendingReminders returns open tasks with remind_at <= now that were not reminded yet.
func (r *implRepository) ListPendingReminders(ctx context.Context, now time.Time, limit int) ([]model.Task, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	query := fmt.Sprintf(`
		SELECT %s FROM tasks
		WHERE status = ? AND remind_at IS NOT NULL AND remind_at <= ? AND reminded_at IS NULL
		ORDER BY remind_at, id
		LIMIT ?`, taskColumns)

	tasks, err := r.queryTasks(ctx, query, string(model.TaskStatusOpen), now.Unix(), limit)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListPendingReminders"), err)
		return nil, repo.ErrFailedToList
	}
	return tasks, nil
}

// MarkReminded records that the reminder of task id was delivered at.
func (r *implRepository) MarkReminded(ctx context.Context, id int64, at time.Time) error {
	const query = `UPDATE tasks SET reminded_at = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, at.Unix(), r.now().Unix(), id); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("MarkReminded"), err)
		return repo.ErrFailedToUpdate
	}
	return nil
}

func (r *implRepository) queryTasks(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := r.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
