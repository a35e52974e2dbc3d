package usecase

import (
	"context"
	"fmt"

	"task-reminder/internal/model"
	"task-reminder/internal/recurrence"
	"task-reminder/internal/task"
	"task-reminder/pkg/gcalendar"
	"task-reminder/pkg/notion"
)

// Complete closes a task. A recurring task is rolled forward past now, reopened and
// its reminder re-armed instead.
func (uc *implUseCase) Complete(ctx context.Context, sc model.Scope, id int64) (task.CompleteOutput, error) {
	t, err := uc.ownedTask(ctx, sc, id)
	if err != nil {
		return task.CompleteOutput{}, err
	}
	if t.Status == model.TaskStatusDone {
		return task.CompleteOutput{}, task.ErrTaskAlreadyDone
	}

	if t.IsRecurring() {
		now := uc.now().In(uc.loc)
		due, remind, ok := recurrence.RollForward(t.DueAt, t.RemindAt, t.RepeatRule, now)
		if ok {
			t.DueAt = &due
			t.RemindAt = remind
			t.RemindedAt = nil
			t.Status = model.TaskStatusOpen

			updated, err := uc.update(ctx, t)
			if err != nil {
				return task.CompleteOutput{}, err
			}
			uc.l.Infof(ctx, "task.usecase.Complete: task %d rolled to %s", t.ID, task.FormatWhen(updated.DueAt, uc.loc))
			uc.syncRolled(ctx, updated)
			return task.CompleteOutput{Task: updated, Rolled: true}, nil
		}
		uc.l.Warnf(ctx, "task.usecase.Complete: task %d has rule %q but cannot advance, closing it", t.ID, t.RepeatRule)
	}

	t.Status = model.TaskStatusDone
	updated, err := uc.update(ctx, t)
	if err != nil {
		return task.CompleteOutput{}, err
	}
	uc.syncDone(ctx, updated)
	return task.CompleteOutput{Task: updated}, nil
}

// Delete removes a task and its mirrors.
func (uc *implUseCase) Delete(ctx context.Context, sc model.Scope, id int64) error {
	t, err := uc.ownedTask(ctx, sc, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteTask(ctx, t.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	if uc.notion != nil && t.NotionPageID != "" {
		if err := uc.notion.ArchivePage(ctx, t.NotionPageID); err != nil {
			uc.l.Warnf(ctx, "task.usecase.Delete: notion archive failed for task %d (non-fatal): %v", t.ID, err)
		}
	}
	if uc.calendar != nil && t.CalendarEventID != "" {
		if err := uc.calendar.DeleteEvent(ctx, uc.calendarID, t.CalendarEventID); err != nil {
			uc.l.Warnf(ctx, "task.usecase.Delete: calendar delete failed for task %d (non-fatal): %v", t.ID, err)
		}
	}
	return nil
}

// ownedTask loads task id and hides tasks of other users behind ErrTaskNotFound.
func (uc *implUseCase) ownedTask(ctx context.Context, sc model.Scope, id int64) (model.Task, error) {
	t, err := uc.repo.GetTask(ctx, id)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to load task: %w", err)
	}
	if t.ID == 0 || t.UserID != sc.UserID {
		return model.Task{}, task.ErrTaskNotFound
	}
	return t, nil
}

func (uc *implUseCase) update(ctx context.Context, t model.Task) (model.Task, error) {
	updated, err := uc.repo.UpdateTask(ctx, updateOptions(t))
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}
	if updated.ID == 0 {
		return model.Task{}, task.ErrTaskNotFound
	}
	return updated, nil
}

func (uc *implUseCase) syncRolled(ctx context.Context, t model.Task) {
	if uc.notion != nil && t.NotionPageID != "" {
		err := uc.notion.UpdatePage(ctx, notion.UpdatePageRequest{PageID: t.NotionPageID, Status: notion.StatusOpen, Due: t.DueAt})
		if err != nil {
			uc.l.Warnf(ctx, "task.usecase.Complete: notion update failed for task %d (non-fatal): %v", t.ID, err)
		}
	}
	if uc.calendar != nil && t.CalendarEventID != "" && t.DueAt != nil {
		err := uc.calendar.UpdateEventTime(ctx, gcalendar.UpdateEventRequest{
			CalendarID:   uc.calendarID,
			EventID:      t.CalendarEventID,
			StartTime:    *t.DueAt,
			EndTime:      t.DueAt.Add(uc.eventDuration),
			Timezone:     uc.loc.String(),
			ReminderLead: reminderLead(t),
		})
		if err != nil {
			uc.l.Warnf(ctx, "task.usecase.Complete: calendar update failed for task %d (non-fatal): %v", t.ID, err)
		}
	}
}

func (uc *implUseCase) syncDone(ctx context.Context, t model.Task) {
	if uc.notion == nil || t.NotionPageID == "" {
		return
	}
	err := uc.notion.UpdatePage(ctx, notion.UpdatePageRequest{PageID: t.NotionPageID, Status: notion.StatusDone, Due: t.DueAt})
	if err != nil {
		uc.l.Warnf(ctx, "task.usecase.Complete: notion update failed for task %d (non-fatal): %v", t.ID, err)
	}
}
