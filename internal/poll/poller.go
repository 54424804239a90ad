package poll

import (
	"context"
	"database/sql"
	"errors"
	"sync/atomic"
	"time"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/events"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/metrics"
	"jobhunt-workbench/internal/scheduler"
	"jobhunt-workbench/internal/scrape/types"
)

// ErrAlreadyRunning is returned when an ingest pass is requested while one
// is in flight.
var ErrAlreadyRunning = errors.New("ingest already running")

// IngestFunc runs one ingest pass and reports how many jobs were added.
type IngestFunc func(ctx context.Context, db *sql.DB, cfg config.Config, onNewJob func()) (added int, err error)

// Runner serializes ingest passes and records their outcome.
type Runner struct {
	DB     *sql.DB
	Hub    *events.Hub
	Log    *logging.Logger
	Ingest IngestFunc

	running atomic.Bool
	status  atomic.Value // types.Status
}

func (r *Runner) Status() types.Status {
	if st, ok := r.status.Load().(types.Status); ok {
		return st
	}
	return types.Status{}
}

// RunOnce runs a pass synchronously.
func (r *Runner) RunOnce(ctx context.Context, cfg config.Config) (int, error) {
	if !r.running.CompareAndSwap(false, true) {
		return 0, ErrAlreadyRunning
	}
	return r.run(ctx, cfg)
}

// Trigger starts a pass in the background. It reports false when one is
// already running.
func (r *Runner) Trigger(ctx context.Context, cfg config.Config) bool {
	if !r.running.CompareAndSwap(false, true) {
		return false
	}
	go func() { _, _ = r.run(ctx, cfg) }()
	return true
}

func (r *Runner) run(ctx context.Context, cfg config.Config) (int, error) {
	defer r.running.Store(false)
	log := r.Log
	if log == nil {
		log = logging.Nop()
	}

	st := r.Status()
	st.Running = true
	st.LastRunAt = time.Now().Format(time.RFC3339)
	r.status.Store(st)

	added, err := r.Ingest(ctx, r.DB, cfg, func() {
		r.Hub.Publish(events.MakeEvent("", events.TypeJobCreated, 1, nil))
	})

	st = r.Status()
	st.Running = false
	st.LastAdded = added
	if err != nil {
		st.LastError = err.Error()
		metrics.IngestRuns.WithLabelValues("error").Inc()
		log.Warn("ingest failed", "added", added, "err", err)
	} else {
		st.LastError = ""
		st.LastOkAt = time.Now().Format(time.RFC3339)
		metrics.IngestRuns.WithLabelValues("ok").Inc()
		log.Info("ingest ok", "added", added)
	}
	r.status.Store(st)
	r.Hub.Publish(events.MakeEvent("", events.TypeIngestFinished, 1, st))
	return added, err
}

// Start polls on the interval from the config current at start. cfgVal
// holds a config.Config and is re-read before every pass.
func (r *Runner) Start(ctx context.Context, cfgVal *atomic.Value) {
	cfg, _ := cfgVal.Load().(config.Config)
	secs := cfg.Polling.IngestSeconds
	if secs <= 0 {
		secs = 900
	}

	go scheduler.Every(ctx, time.Duration(secs)*time.Second, "ingest", r.Log, func(ctx context.Context) error {
		cfg, ok := cfgVal.Load().(config.Config)
		if !ok {
			return nil
		}
		// nothing enabled, skip quietly
		if !cfg.AnySourceEnabled() {
			return nil
		}
		_, err := r.RunOnce(ctx, cfg)
		if errors.Is(err, ErrAlreadyRunning) {
			return nil
		}
		return err
	})
}
