// Package google authorizes against Google with an installed-app OAuth client
// and reads pending items from Google Tasks.
package google

import (
	"fmt"
	"os"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	tasksapi "google.golang.org/api/tasks/v1"
)

// tasksScopes are the OAuth2 scopes required to read task lists and tasks.
var tasksScopes = []string{
	tasksapi.TasksReadonlyScope,
}

// LoadOAuthConfig builds an *oauth2.Config from a client secrets file downloaded
// from the Google Cloud console ("installed" or "web" application).
func LoadOAuthConfig(credentialsPath string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsPath) //nolint:gosec // path is user-configured
	if err != nil {
		return nil, fmt.Errorf("reading client secrets %q: %w", credentialsPath, err)
	}
	cfg, err := googleoauth.ConfigFromJSON(data, tasksScopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing client secrets %q: %w", credentialsPath, err)
	}
	return cfg, nil
}
