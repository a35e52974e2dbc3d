package usecase

import (
	"time"

	"task-reminder/internal/model"
	"task-reminder/internal/task/repository"
)

func updateOptions(t model.Task) repository.UpdateTaskOptions {
	return repository.UpdateTaskOptions{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		DueAt:           t.DueAt,
		RemindAt:        t.RemindAt,
		RepeatRule:      t.RepeatRule,
		Status:          t.Status,
		NotionPageID:    t.NotionPageID,
		CalendarEventID: t.CalendarEventID,
		RemindedAt:      t.RemindedAt,
	}
}

// reminderLead is how long before the due the reminder fires, or 0.
func reminderLead(t model.Task) time.Duration {
	if t.DueAt == nil || t.RemindAt == nil {
		return 0
	}
	if lead := t.DueAt.Sub(*t.RemindAt); lead > 0 {
		return lead
	}
	return 0
}
