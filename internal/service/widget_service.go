// Package service runs the task widget pipeline: locate the client secrets,
// authorize, fetch the pending tasks and render them for the bar.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/shaharia-lab/deskhooks/internal/integrations/google"
	"github.com/shaharia-lab/deskhooks/internal/tasks"
	"github.com/shaharia-lab/deskhooks/internal/waybar"
)

// AuthorizeFunc turns the client secrets file into an authenticated HTTP client.
type AuthorizeFunc func(ctx context.Context, credentialsPath string) (*http.Client, error)

// FetchFunc returns the pending tasks visible to client, in any order.
type FetchFunc func(ctx context.Context, client *http.Client) ([]tasks.Task, error)

// WidgetConfig holds the dependencies of a WidgetService.
type WidgetConfig struct {
	CacheDir        string
	CredentialsFile string
	// Fallback replaces a failed run with the degraded error tooltip.
	Fallback  bool
	Authorize AuthorizeFunc
	Fetch     FetchFunc
	// Lists backs TaskLists; it is optional for the widget itself.
	Lists  TaskListsFunc
	Logger *slog.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// WidgetService produces one bar update per Run.
type WidgetService struct {
	cfg    WidgetConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewWidgetService returns a new WidgetService.
func NewWidgetService(cfg WidgetConfig) *WidgetService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &WidgetService{cfg: cfg, logger: cfg.Logger, now: now}
}

// Run executes every stage and returns the bar update. With fallback enabled a
// failing stage yields waybar.ErrorOutput and a nil error.
func (s *WidgetService) Run(ctx context.Context) (waybar.Output, error) {
	out, err := s.run(ctx)
	if err == nil {
		return out, nil
	}

	var stageErr *StageError
	if errors.As(err, &stageErr) {
		s.logger.Error("task widget stage failed", "stage", stageErr.Stage, "error", stageErr.Err)
	}
	if s.cfg.Fallback {
		return waybar.ErrorOutput(), nil
	}
	return waybar.Output{}, err
}

// TaskLists runs the credentials and authorize stages and returns the task
// lists of the account, so users can pick a title for the widget.
func (s *WidgetService) TaskLists(ctx context.Context) ([]google.TaskList, error) {
	credentials, err := s.locateCredentials()
	if err != nil {
		return nil, &StageError{Stage: StageCredentials, Err: err}
	}

	client, err := s.cfg.Authorize(ctx, credentials)
	if err != nil {
		return nil, &StageError{Stage: StageAuthorize, Err: err}
	}

	if s.cfg.Lists == nil {
		return nil, &StageError{Stage: StageFetch, Err: errors.New("no task list source configured")}
	}
	lists, err := s.cfg.Lists(ctx, client)
	if err != nil {
		return nil, &StageError{Stage: StageFetch, Err: err}
	}
	return lists, nil
}

func (s *WidgetService) run(ctx context.Context) (waybar.Output, error) {
	credentials, err := s.locateCredentials()
	if err != nil {
		return waybar.Output{}, &StageError{Stage: StageCredentials, Err: err}
	}

	client, err := s.cfg.Authorize(ctx, credentials)
	if err != nil {
		return waybar.Output{}, &StageError{Stage: StageAuthorize, Err: err}
	}

	pending, err := s.cfg.Fetch(ctx, client)
	if err != nil {
		return waybar.Output{}, &StageError{Stage: StageFetch, Err: err}
	}
	s.logger.Debug("fetched pending tasks", "count", len(pending))

	return s.render(pending), nil
}

// locateCredentials makes sure the cache directory exists and the client
// secrets file is present.
func (s *WidgetService) locateCredentials() (string, error) {
	if err := os.MkdirAll(s.cfg.CacheDir, 0750); err != nil {
		return "", fmt.Errorf("creating cache dir %q: %w", s.cfg.CacheDir, err)
	}

	if _, err := os.Stat(s.cfg.CredentialsFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", &MissingCredentialsError{Path: s.cfg.CredentialsFile}
		}
		return "", fmt.Errorf("checking credentials file: %w", err)
	}
	return s.cfg.CredentialsFile, nil
}

func (s *WidgetService) render(pending []tasks.Task) waybar.Output {
	tasks.Sort(pending)
	return waybar.NewOutput(tasks.Tooltip(tasks.Render(pending, s.now())))
}
