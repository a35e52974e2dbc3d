package usecase

import (
	"context"
	"time"

	"task-reminder/internal/parser"
	"task-reminder/internal/recurrence"
)

// Extract runs the strategies in order and returns the first result.
func (uc *implUseCase) Extract(ctx context.Context, text string, now time.Time) parser.ParsedTask {
	now = now.In(uc.loc)

	for _, s := range uc.strategies {
		task, ok := s.Attempt(ctx, text, now)
		if !ok {
			uc.l.Warnf(ctx, "parser.usecase.Extract: %s strategy gave no result, falling through", s.Name())
			continue
		}
		uc.l.Debugf(ctx, "parser.usecase.Extract: source=%s title=%q", task.Source, task.Title)
		return sanitize(task, now)
	}

	return sanitize(parser.ParsedTask{Source: parser.SourceFallback, Title: text}, now)
}

// sanitize enforces the result invariants regardless of which strategy produced it.
func sanitize(task parser.ParsedTask, now time.Time) parser.ParsedTask {
	task.Title = titleOrPlaceholder(normalizeSpace(task.Title))
	if task.RemindAt != nil && !task.RemindAt.After(now) {
		task.RemindAt = nil
	}
	task.RepeatRule = recurrence.Normalize(task.RepeatRule)
	return task
}
