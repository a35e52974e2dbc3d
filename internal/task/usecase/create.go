package usecase

import (
	"context"
	"fmt"
	"strings"

	"task-reminder/internal/model"
	"task-reminder/internal/task"
	"task-reminder/internal/task/repository"
	"task-reminder/pkg/gcalendar"
	"task-reminder/pkg/notion"
)

// Create extracts a task from free text, stores it and mirrors it to Notion and Google Calendar.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input task.CreateInput) (task.CreateOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return task.CreateOutput{}, task.ErrEmptyInput
	}

	now := uc.now().In(uc.loc)
	parsed := uc.extractor.Extract(ctx, text, now)
	uc.l.Infof(ctx, "task.usecase.Create: user=%d source=%s due=%s remind=%s repeat=%q",
		sc.UserID, parsed.Source, task.FormatWhen(parsed.DueAt, uc.loc), task.FormatWhen(parsed.RemindAt, uc.loc), parsed.RepeatRule)

	t, err := uc.repo.CreateTask(ctx, repository.CreateTaskOptions{
		UserID:      sc.UserID,
		ChatID:      sc.ChatID,
		Title:       parsed.Title,
		Description: parsed.Description,
		DueAt:       parsed.DueAt,
		RemindAt:    parsed.RemindAt,
		RepeatRule:  parsed.RepeatRule,
	})
	if err != nil {
		return task.CreateOutput{}, fmt.Errorf("failed to store task: %w", err)
	}

	t = uc.mirrorCreated(ctx, t)

	return task.CreateOutput{Task: t, Source: parsed.Source}, nil
}

// mirrorCreated creates the Notion page and calendar event for t and stores their ids.
// Mirror failures are logged and never fail the creation.
func (uc *implUseCase) mirrorCreated(ctx context.Context, t model.Task) model.Task {
	t.NotionPageID = uc.tryCreatePage(ctx, t)
	t.CalendarEventID = uc.tryCreateEvent(ctx, t)
	if t.NotionPageID == "" && t.CalendarEventID == "" {
		return t
	}

	updated, err := uc.repo.UpdateTask(ctx, updateOptions(t))
	if err != nil || updated.ID == 0 {
		uc.l.Warnf(ctx, "task.usecase.Create: failed to store mirror ids for task %d: %v", t.ID, err)
		return t
	}
	return updated
}

func (uc *implUseCase) tryCreatePage(ctx context.Context, t model.Task) string {
	if uc.notion == nil {
		return ""
	}

	page, err := uc.notion.CreatePage(ctx, notion.CreatePageRequest{
		Title:  t.Title,
		Status: notion.StatusOpen,
		Due:    t.DueAt,
		Repeat: t.RepeatRule,
	})
	if err != nil {
		uc.l.Warnf(ctx, "task.usecase.Create: notion page creation failed for task %d (non-fatal): %v", t.ID, err)
		return ""
	}
	return page.ID
}

func (uc *implUseCase) tryCreateEvent(ctx context.Context, t model.Task) string {
	if uc.calendar == nil || t.DueAt == nil {
		return ""
	}

	event, err := uc.calendar.CreateEvent(ctx, gcalendar.CreateEventRequest{
		CalendarID:   uc.calendarID,
		Summary:      t.Title,
		Description:  t.Description,
		StartTime:    *t.DueAt,
		EndTime:      t.DueAt.Add(uc.eventDuration),
		Timezone:     uc.loc.String(),
		ReminderLead: reminderLead(t),
	})
	if err != nil {
		uc.l.Warnf(ctx, "task.usecase.Create: calendar event creation failed for task %d (non-fatal): %v", t.ID, err)
		return ""
	}
	return event.ID
}
