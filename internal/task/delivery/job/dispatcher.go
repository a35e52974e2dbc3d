package job

import (
	"context"
	"errors"
	"time"

	pkgLog "task-reminder/pkg/log"
)

// Run dispatches once at start, so reminders missed while the service was down
// go out immediately, then once per interval.
func (d *dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	d.l.Infof(ctx, "reminder dispatcher started, interval=%s", d.interval)
	d.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			d.l.Info(ctx, "reminder dispatcher stopped")
			return
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

func (d *dispatcher) tick(ctx context.Context) {
	ctx = pkgLog.WithTraceID(ctx)
	if _, err := d.uc.DispatchReminders(ctx, d.now()); err != nil && !errors.Is(err, context.Canceled) {
		d.l.Errorf(ctx, "reminder dispatcher: %v", err)
	}
}
