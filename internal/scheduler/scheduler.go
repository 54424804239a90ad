package scheduler

import (
	"context"
	"time"

	"jobhunt-workbench/internal/logging"
)

type Task func(ctx context.Context) error

// Every runs task immediately and then once per interval until ctx is done.
// Runs never overlap; errors are logged and do not stop the loop.
func Every(ctx context.Context, interval time.Duration, name string, log *logging.Logger, task Task) {
	if log == nil {
		log = logging.Nop()
	}
	run := func() {
		if err := task(ctx); err != nil {
			log.Warn("task failed", "task", name, "err", err)
		}
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			run()
		}
	}
}
