package google

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// tokenRecord is the on-disk token layout. It follows the authorized-user JSON
// written by Google's client libraries, so an existing cache keeps working.
type tokenRecord struct {
	Token        string   `json:"token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	TokenURI     string   `json:"token_uri,omitempty"`
	ClientID     string   `json:"client_id,omitempty"`
	ClientSecret string   `json:"client_secret,omitempty"`
	Scopes       []string `json:"scopes,omitempty"`
	TokenType    string   `json:"token_type,omitempty"`
	Expiry       string   `json:"expiry,omitempty"`
}

// TokenCache persists a single OAuth token as a JSON file.
type TokenCache struct {
	path string
	cfg  *oauth2.Config
}

// NewTokenCache creates a TokenCache at path. cfg supplies the client fields
// written alongside the token.
func NewTokenCache(path string, cfg *oauth2.Config) *TokenCache {
	return &TokenCache{path: path, cfg: cfg}
}

// Path returns the cache file location.
func (c *TokenCache) Path() string {
	return c.path
}

// Load returns the cached token, or nil if the file is absent or does not hold
// a usable token record.
func (c *TokenCache) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(c.path) //nolint:gosec // path constructed from configured cache dir
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading token cache %q: %w", c.path, err)
	}

	var rec tokenRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil
	}
	if rec.Token == "" && rec.RefreshToken == "" {
		return nil, nil
	}

	tok := &oauth2.Token{
		AccessToken:  rec.Token,
		RefreshToken: rec.RefreshToken,
		TokenType:    rec.TokenType,
	}
	if rec.Expiry != "" {
		expiry, err := time.Parse(time.RFC3339Nano, rec.Expiry)
		if err != nil {
			return nil, nil
		}
		tok.Expiry = expiry
	}
	return tok, nil
}

// Save overwrites the cache file with tok.
func (c *TokenCache) Save(tok *oauth2.Token) error {
	if tok == nil {
		return fmt.Errorf("token is required")
	}

	rec := tokenRecord{
		Token:        tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if c.cfg != nil {
		rec.TokenURI = c.cfg.Endpoint.TokenURL
		rec.ClientID = c.cfg.ClientID
		rec.ClientSecret = c.cfg.ClientSecret
		rec.Scopes = c.cfg.Scopes
	}
	if !tok.Expiry.IsZero() {
		rec.Expiry = tok.Expiry.UTC().Format(time.RFC3339Nano)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling token: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("creating token cache dir: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		return fmt.Errorf("writing token cache %q: %w", c.path, err)
	}
	return nil
}
