package google

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/api/option"
	tasksapi "google.golang.org/api/tasks/v1"

	"github.com/shaharia-lab/deskhooks/internal/tasks"
)

// StatusNeedsAction is the Google Tasks status of an open item.
const StatusNeedsAction = "needsAction"

// TaskList identifies one Google Tasks list.
type TaskList struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TaskClient reads pending tasks from one named Google Tasks list.
type TaskClient struct {
	svc       *tasksapi.Service
	listTitle string
	maxLists  int64
}

// NewTaskClient creates a TaskClient over httpClient. opts are appended to the
// service options, which lets tests point the client at a fake endpoint.
func NewTaskClient(
	ctx context.Context, httpClient *http.Client, listTitle string, maxLists int64, opts ...option.ClientOption,
) (*TaskClient, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := tasksapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating tasks service: %w", err)
	}
	return &TaskClient{svc: svc, listTitle: listTitle, maxLists: maxLists}, nil
}

// PendingTasks returns the items of the configured list whose status is
// needsAction, unsorted. A missing list yields no tasks.
func (c *TaskClient) PendingTasks(ctx context.Context) ([]tasks.Task, error) {
	listID, err := c.findList(ctx)
	if err != nil {
		return nil, err
	}
	if listID == "" {
		return nil, nil
	}

	var out []tasks.Task
	err = c.svc.Tasks.List(listID).Pages(ctx, func(page *tasksapi.Tasks) error {
		for _, item := range page.Items {
			if item.Status != StatusNeedsAction {
				continue
			}
			t, err := toTask(item)
			if err != nil {
				return err
			}
			out = append(out, t)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing tasks of %q: %w", c.listTitle, err)
	}
	return out, nil
}

// TaskLists returns every task list of the account, across all pages, in API order.
func (c *TaskClient) TaskLists(ctx context.Context) ([]TaskList, error) {
	out := []TaskList{}
	err := c.svc.Tasklists.List().MaxResults(c.maxLists).Pages(ctx, func(page *tasksapi.TaskLists) error {
		for _, l := range page.Items {
			out = append(out, TaskList{ID: l.Id, Title: l.Title})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing task lists: %w", err)
	}
	return out, nil
}

// findList returns the id of the first task list titled c.listTitle among the
// first c.maxLists lists, or "".
func (c *TaskClient) findList(ctx context.Context) (string, error) {
	page, err := c.svc.Tasklists.List().MaxResults(c.maxLists).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("listing task lists: %w", err)
	}
	for _, l := range page.Items {
		if l.Title == c.listTitle {
			return l.Id, nil
		}
	}
	return "", nil
}

func toTask(item *tasksapi.Task) (tasks.Task, error) {
	due, err := tasks.ParseTimestamp(item.Due)
	if err != nil {
		return tasks.Task{}, fmt.Errorf("task %q due: %w", item.Title, err)
	}
	updated, err := tasks.ParseTimestamp(item.Updated)
	if err != nil {
		return tasks.Task{}, fmt.Errorf("task %q updated: %w", item.Title, err)
	}
	return tasks.Task{Title: item.Title, Due: due, Updated: updated}, nil
}
