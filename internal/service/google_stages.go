package service

import (
	"context"
	"log/slog"
	"net/http"

	"google.golang.org/api/option"

	"github.com/shaharia-lab/deskhooks/internal/integrations/google"
	"github.com/shaharia-lab/deskhooks/internal/tasks"
)

// GoogleAuthorize returns the authorize stage backed by Google OAuth. The token
// is cached at tokenFile; consent runs when no usable token is cached.
func GoogleAuthorize(tokenFile string, consent google.ConsentFunc, logger *slog.Logger) AuthorizeFunc {
	return func(ctx context.Context, credentialsPath string) (*http.Client, error) {
		oauthCfg, err := google.LoadOAuthConfig(credentialsPath)
		if err != nil {
			return nil, err
		}
		auth := google.NewAuthorizer(oauthCfg, google.NewTokenCache(tokenFile, oauthCfg), consent, logger)
		tok, err := auth.Token(ctx)
		if err != nil {
			return nil, err
		}
		return auth.Client(ctx, tok), nil
	}
}

// GoogleFetch returns the fetch stage backed by the Google Tasks API.
func GoogleFetch(listTitle string, maxLists int64, opts ...option.ClientOption) FetchFunc {
	return func(ctx context.Context, client *http.Client) ([]tasks.Task, error) {
		tc, err := google.NewTaskClient(ctx, client, listTitle, maxLists, opts...)
		if err != nil {
			return nil, err
		}
		return tc.PendingTasks(ctx)
	}
}

// TaskListsFunc returns every task list visible to client.
type TaskListsFunc func(ctx context.Context, client *http.Client) ([]google.TaskList, error)

// GoogleTaskLists returns a TaskListsFunc backed by the Google Tasks API.
func GoogleTaskLists(maxLists int64, opts ...option.ClientOption) TaskListsFunc {
	return func(ctx context.Context, client *http.Client) ([]google.TaskList, error) {
		tc, err := google.NewTaskClient(ctx, client, "", maxLists, opts...)
		if err != nil {
			return nil, err
		}
		return tc.TaskLists(ctx)
	}
}
