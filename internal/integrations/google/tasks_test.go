package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// fakeTasksAPI serves the two Google Tasks endpoints used by TaskClient.
// lists is the task lists response; tasksPages maps a page token ("" for the
// first page) to a tasks response body.
func fakeTasksAPI(t *testing.T, lists string, tasksPages map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/users/@me/lists"):
			_, _ = w.Write([]byte(lists))
		case strings.HasSuffix(r.URL.Path, "/lists/L2/tasks"):
			body, ok := tasksPages[r.URL.Query().Get("pageToken")]
			if !ok {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write([]byte(body))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestTaskClient(t *testing.T, srv *httptest.Server, listTitle string) *TaskClient {
	t.Helper()
	c, err := NewTaskClient(context.Background(), srv.Client(), listTitle, 10,
		option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)
	return c
}

const twoLists = `{"items":[
  {"id":"L1","title":"Groceries"},
  {"id":"L2","title":"My Tasks"}
]}`

func TestTaskClient_PendingTasks(t *testing.T) {
	srv := fakeTasksAPI(t, twoLists, map[string]string{
		"": `{"items":[
		  {"id":"1","title":"Pay rent","status":"needsAction","due":"2025-11-10T00:00:00.000Z","updated":"2025-11-01T08:00:00.000Z"},
		  {"id":"2","title":"Done already","status":"completed","due":"2025-11-02T00:00:00.000Z"}
		],"nextPageToken":"p2"}`,
		"p2": `{"items":[
		  {"id":"3","title":"Read book","status":"needsAction","updated":"2025-11-03T09:30:00.000Z"}
		]}`,
	})

	got, err := newTestTaskClient(t, srv, "My Tasks").PendingTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Pay rent", got[0].Title)
	assert.True(t, time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC).Equal(got[0].Due))
	assert.True(t, got[0].HasDue())

	assert.Equal(t, "Read book", got[1].Title)
	assert.False(t, got[1].HasDue())
	assert.Equal(t, 9, got[1].Updated.Hour())
}

func TestTaskClient_MissingListYieldsNothing(t *testing.T) {
	srv := fakeTasksAPI(t, twoLists, nil)

	got, err := newTestTaskClient(t, srv, "Work").PendingTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTaskClient_ListsRequestedOnce(t *testing.T) {
	var (
		mu         sync.Mutex
		calls      int
		maxResults string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		mu.Lock()
		calls++
		maxResults = r.URL.Query().Get("maxResults")
		mu.Unlock()
		_, _ = w.Write([]byte(`{"items":[{"id":"L1","title":"Groceries"}],"nextPageToken":"more"}`))
	}))
	t.Cleanup(srv.Close)

	got, err := newTestTaskClient(t, srv, "My Tasks").PendingTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "later list pages are not fetched")
	assert.Equal(t, "10", maxResults)
}

func TestTaskClient_NoListsAtAll(t *testing.T) {
	srv := fakeTasksAPI(t, `{}`, nil)

	got, err := newTestTaskClient(t, srv, "My Tasks").PendingTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTaskClient_EmptyList(t *testing.T) {
	srv := fakeTasksAPI(t, twoLists, map[string]string{"": `{}`})

	got, err := newTestTaskClient(t, srv, "My Tasks").PendingTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTaskClient_MalformedDue(t *testing.T) {
	srv := fakeTasksAPI(t, twoLists, map[string]string{
		"": `{"items":[{"id":"1","title":"Broken","status":"needsAction","due":"next tuesday"}]}`,
	})

	_, err := newTestTaskClient(t, srv, "My Tasks").PendingTasks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `task "Broken" due`)
}

func TestTaskClient_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":503,"message":"backend unavailable"}}`, http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	_, err := newTestTaskClient(t, srv, "My Tasks").PendingTasks(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing task lists")
}

func TestTaskClient_TaskListsAllPages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("pageToken") == "p2" {
			_, _ = w.Write([]byte(`{"items":[{"id":"L3","title":"Work"}]}`))
			return
		}
		_, _ = w.Write([]byte(`{"items":[{"id":"L1","title":"Groceries"},{"id":"L2","title":"My Tasks"}],"nextPageToken":"p2"}`))
	}))
	t.Cleanup(srv.Close)

	got, err := newTestTaskClient(t, srv, "My Tasks").TaskLists(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []TaskList{
		{ID: "L1", Title: "Groceries"},
		{ID: "L2", Title: "My Tasks"},
		{ID: "L3", Title: "Work"},
	}, got)
}

func TestTaskClient_TaskListsEmptyAccount(t *testing.T) {
	srv := fakeTasksAPI(t, `{}`, nil)

	got, err := newTestTaskClient(t, srv, "My Tasks").TaskLists(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got, "encodes as [] rather than null")
	assert.Empty(t, got)
}

func TestTaskClient_TaskListsServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"code":403,"message":"insufficient scope"}}`, http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	_, err := newTestTaskClient(t, srv, "My Tasks").TaskLists(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing task lists")
}
