// Package scheduler keeps the task widget fresh from a single long-running
// process, for bars that read a stream of JSON lines instead of polling.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/shaharia-lab/deskhooks/internal/waybar"
)

// Runner produces one bar update.
type Runner interface {
	Run(ctx context.Context) (waybar.Output, error)
}

// Config holds the watcher configuration.
type Config struct {
	Runner   Runner
	Interval time.Duration
	Out      io.Writer
	Logger   *slog.Logger
}

// Watcher re-runs a Runner on a fixed interval using gocron and writes one
// newline-terminated JSON object per run.
type Watcher struct {
	cron   gocron.Scheduler
	cfg    Config
	mu     sync.Mutex // serializes writes to cfg.Out
	logger *slog.Logger
}

// New creates a new Watcher.
func New(cfg Config) (*Watcher, error) {
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("watch interval must be positive, got %s", cfg.Interval)
	}

	cron, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating gocron scheduler: %w", err)
	}

	return &Watcher{cron: cron, cfg: cfg, logger: cfg.Logger}, nil
}

// Run emits an update immediately and then every interval until ctx is done.
// Runs never overlap; a run still in progress delays the next one.
func (w *Watcher) Run(ctx context.Context) error {
	_, err := w.cron.NewJob(
		gocron.DurationJob(w.cfg.Interval),
		gocron.NewTask(func() {
			w.executeRun(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("scheduling refresh job: %w", err)
	}

	w.cron.Start()
	w.logger.Info("task watcher started", "interval", w.cfg.Interval)

	<-ctx.Done()

	if err := w.cron.Shutdown(); err != nil {
		return fmt.Errorf("stopping scheduler: %w", err)
	}
	w.logger.Info("task watcher stopped")
	return nil
}
