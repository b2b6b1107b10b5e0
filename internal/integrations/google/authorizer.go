package google

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
)

// ConsentFunc obtains a brand-new token through user interaction.
type ConsentFunc func(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)

// Authorizer produces a usable token from the cache, a silent refresh or an
// interactive consent, in that order, and writes the result back to the cache.
type Authorizer struct {
	cfg     *oauth2.Config
	cache   *TokenCache
	consent ConsentFunc
	logger  *slog.Logger
}

// NewAuthorizer creates an Authorizer.
func NewAuthorizer(cfg *oauth2.Config, cache *TokenCache, consent ConsentFunc, logger *slog.Logger) *Authorizer {
	return &Authorizer{cfg: cfg, cache: cache, consent: consent, logger: logger}
}

// Token returns a valid token and saves it to the cache, overwriting any
// previous content.
func (a *Authorizer) Token(ctx context.Context) (*oauth2.Token, error) {
	tok, err := a.cache.Load()
	if err != nil {
		return nil, err
	}

	switch {
	case tok != nil && tok.Valid():
		a.logger.Debug("using cached token", "expiry", tok.Expiry)
	case tok != nil && tok.RefreshToken != "":
		a.logger.Info("refreshing expired token")
		tok, err = a.cfg.TokenSource(ctx, tok).Token()
		if err != nil {
			return nil, fmt.Errorf("refreshing token: %w", err)
		}
	default:
		a.logger.Info("no usable cached token, starting interactive authorization")
		tok, err = a.consent(ctx, a.cfg)
		if err != nil {
			return nil, fmt.Errorf("interactive authorization: %w", err)
		}
	}

	if err := a.cache.Save(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

// Login runs the interactive consent regardless of the cache and saves the new token.
func (a *Authorizer) Login(ctx context.Context) (*oauth2.Token, error) {
	tok, err := a.consent(ctx, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("interactive authorization: %w", err)
	}
	if err := a.cache.Save(tok); err != nil {
		return nil, err
	}
	a.logger.Info("authorization saved", "path", a.cache.Path())
	return tok, nil
}

// Client returns an HTTP client that authenticates with tok and refreshes it as needed.
func (a *Authorizer) Client(ctx context.Context, tok *oauth2.Token) *http.Client {
	return oauth2.NewClient(ctx, a.cfg.TokenSource(ctx, tok))
}
