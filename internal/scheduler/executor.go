package scheduler

import (
	"context"

	"github.com/shaharia-lab/deskhooks/internal/waybar"
)

// executeRun performs one refresh. A failed run is shown as the degraded
// error tooltip so the stream keeps going.
func (w *Watcher) executeRun(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	out, err := w.cfg.Runner.Run(ctx)
	if err != nil {
		w.logger.Error("task refresh failed", "error", err)
		out = waybar.ErrorOutput()
	}

	data, err := out.Marshal()
	if err != nil {
		w.logger.Error("encoding task widget output", "error", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.cfg.Out.Write(append(data, '\n')); err != nil {
		w.logger.Error("writing task widget output", "error", err)
	}
}
