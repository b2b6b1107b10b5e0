package google

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testOAuthConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Scopes:       tasksScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   "https://accounts.example.com/auth",
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

func TestTokenCache_LoadMissing(t *testing.T) {
	c := NewTokenCache(filepath.Join(t.TempDir(), "token.json"), nil)

	tok, err := c.Load()
	require.NoError(t, err)
	assert.Nil(t, tok)
}

func TestTokenCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	c := NewTokenCache(path, testOAuthConfig("https://oauth2.example.com/token"))

	expiry := time.Date(2025, 11, 8, 12, 34, 56, 123456000, time.UTC)
	in := &oauth2.Token{AccessToken: "at", RefreshToken: "rt", TokenType: "Bearer", Expiry: expiry}
	require.NoError(t, c.Save(in))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	out, err := c.Load()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "at", out.AccessToken)
	assert.Equal(t, "rt", out.RefreshToken)
	assert.True(t, expiry.Equal(out.Expiry))
}

func TestTokenCache_WritesAuthorizedUserLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	c := NewTokenCache(path, testOAuthConfig("https://oauth2.example.com/token"))
	require.NoError(t, c.Save(&oauth2.Token{AccessToken: "at", RefreshToken: "rt"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "at", raw["token"])
	assert.Equal(t, "rt", raw["refresh_token"])
	assert.Equal(t, "client-id", raw["client_id"])
	assert.Equal(t, "https://oauth2.example.com/token", raw["token_uri"])
	assert.Equal(t, []any{"https://www.googleapis.com/auth/tasks.readonly"}, raw["scopes"])
	assert.NotContains(t, raw, "expiry")
}

func TestTokenCache_ReadsGoogleLibraryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	content := `{"token": "ya29.a0", "refresh_token": "1//0g", "token_uri": "https://oauth2.googleapis.com/token",
"client_id": "x.apps.googleusercontent.com", "client_secret": "s",
"scopes": ["https://www.googleapis.com/auth/tasks.readonly"], "universe_domain": "googleapis.com",
"account": "", "expiry": "2025-11-08T12:34:56.123456Z"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	tok, err := NewTokenCache(path, nil).Load()
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.Equal(t, "ya29.a0", tok.AccessToken)
	assert.Equal(t, "1//0g", tok.RefreshToken)
	assert.Equal(t, 2025, tok.Expiry.Year())
}

func TestTokenCache_InvalidContentTreatedAsAbsent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", "garbage"},
		{"empty object", "{}"},
		{"bad expiry", `{"token":"at","expiry":"yesterday"}`},
		{"wrong types", `{"token": 42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "token.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			tok, err := NewTokenCache(path, nil).Load()
			require.NoError(t, err)
			assert.Nil(t, tok)
		})
	}
}

func TestTokenCache_SaveNil(t *testing.T) {
	c := NewTokenCache(filepath.Join(t.TempDir(), "token.json"), nil)
	assert.Error(t, c.Save(nil))
}
