package usecase

import (
	"time"

	"task-reminder/internal/parser"
	"task-reminder/internal/task"
	"task-reminder/internal/task/repository"
	"task-reminder/pkg/gcalendar"
	pkgLog "task-reminder/pkg/log"
	"task-reminder/pkg/notion"
)

type implUseCase struct {
	l         pkgLog.Logger
	repo      repository.Repository
	extractor parser.UseCase
	notifier  Notifier
	notion    notion.INotion
	calendar  gcalendar.ICalendar

	loc           *time.Location
	calendarID    string
	eventDuration time.Duration
	reminderBatch int
	now           func() time.Time
}

// New creates a new task UseCase instance.
// notifier, notionClient and calendar are optional; nil disables the feature.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	extractor parser.UseCase,
	notifier Notifier,
	notionClient notion.INotion,
	calendar gcalendar.ICalendar,
	cfg Config,
) task.UseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.EventDuration <= 0 {
		cfg.EventDuration = DefaultEventDuration
	}
	if cfg.ReminderBatch <= 0 {
		cfg.ReminderBatch = DefaultReminderBatch
	}

	return &implUseCase{
		l:             l,
		repo:          repo,
		extractor:     extractor,
		notifier:      notifier,
		notion:        notionClient,
		calendar:      calendar,
		loc:           cfg.Location,
		calendarID:    cfg.CalendarID,
		eventDuration: cfg.EventDuration,
		reminderBatch: cfg.ReminderBatch,
		now:           time.Now,
	}
}
