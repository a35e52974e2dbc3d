package job

import (
	"context"
	"time"

	"task-reminder/internal/task"
	pkgLog "task-reminder/pkg/log"
)

// DefaultInterval is used when the configured poll interval is not positive.
const DefaultInterval = 30 * time.Second

// Dispatcher periodically sends due reminders.
type Dispatcher interface {
	// Run blocks until ctx is cancelled.
	Run(ctx context.Context)
}

type dispatcher struct {
	l        pkgLog.Logger
	uc       task.UseCase
	interval time.Duration
	now      func() time.Time
}

// New creates a reminder Dispatcher polling every interval.
func New(l pkgLog.Logger, uc task.UseCase, interval time.Duration) Dispatcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &dispatcher{
		l:        l,
		uc:       uc,
		interval: interval,
		now:      time.Now,
	}
}
