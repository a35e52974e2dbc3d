package usecase

import (
	"context"
	"fmt"
	"time"

	"task-reminder/internal/task"
)

// DispatchReminders sends every pending reminder due at now and marks it sent.
// A failed send leaves the task pending so the next dispatch retries it.
func (uc *implUseCase) DispatchReminders(ctx context.Context, now time.Time) (int, error) {
	if uc.notifier == nil {
		return 0, task.ErrNotifierRequired
	}

	pending, err := uc.repo.ListPendingReminders(ctx, now, uc.reminderBatch)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending reminders: %w", err)
	}

	sent := 0
	for _, t := range pending {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		if err := uc.notifier.SendMessage(ctx, t.ChatID, task.FormatReminder(t, uc.loc)); err != nil {
			uc.l.Warnf(ctx, "task.usecase.DispatchReminders: send failed for task %d: %v", t.ID, err)
			continue
		}
		if err := uc.repo.MarkReminded(ctx, t.ID, now); err != nil {
			uc.l.Errorf(ctx, "task.usecase.DispatchReminders: mark reminded failed for task %d: %v", t.ID, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		uc.l.Infof(ctx, "task.usecase.DispatchReminders: sent %d of %d reminders", sent, len(pending))
	}
	return sent, nil
}
