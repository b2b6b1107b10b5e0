package scheduler

import "context"

// ExportedExecuteRun exposes the private executeRun method for external tests.
func (w *Watcher) ExportedExecuteRun(ctx context.Context) {
	w.executeRun(ctx)
}
