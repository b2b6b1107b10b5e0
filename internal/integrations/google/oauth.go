package google

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// CallbackResult holds the result of a completed OAuth callback.
type CallbackResult struct {
	Token *oauth2.Token
	Err   error
}

// RunLocalServer performs the installed-app consent flow: it listens on an
// ephemeral loopback port, hands the authorization URL to open and blocks
// until Google redirects back with a code or ctx is canceled.
func RunLocalServer(
	ctx context.Context, cfg *oauth2.Config, open func(authURL string) error, logger *slog.Logger,
) (*oauth2.Token, error) {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", "localhost:0")
	if err != nil {
		return nil, fmt.Errorf("listening for oauth callback: %w", err)
	}

	port := ln.Addr().(*net.TCPAddr).Port
	oauthCfg := *cfg
	oauthCfg.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	resultCh := make(chan CallbackResult, 1)

	r := chi.NewRouter()
	r.Get("/callback", callbackHandler(&oauthCfg, state, verifier, resultCh))

	srv := &http.Server{
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		if serveErr := srv.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("oauth callback server error", "error", serveErr)
		}
	}()
	defer func() {
		if cerr := srv.Close(); cerr != nil {
			logger.Warn("oauth server close error", "error", cerr)
		}
	}()

	authURL := oauthCfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))
	logger.Debug("waiting for oauth callback", "port", port)
	if err := open(authURL); err != nil {
		return nil, fmt.Errorf("opening consent page: %w", err)
	}

	select {
	case result := <-resultCh:
		return result.Token, result.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

const oauthSuccessHTML = `<!DOCTYPE html><html><body>
<h2>Authentication successful!</h2>
<p>You can close this tab; the task widget will refresh on its next run.</p>
<script>window.close();</script>
</body></html>`

func callbackHandler(
	oauthCfg *oauth2.Config, state, verifier string, resultCh chan<- CallbackResult,
) http.HandlerFunc {
	deliver := func(res CallbackResult) {
		select {
		case resultCh <- res:
		default:
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "Authentication failed: state mismatch", http.StatusBadRequest)
			deliver(CallbackResult{Err: fmt.Errorf("oauth callback error: state mismatch")})
			return
		}

		code := q.Get("code")
		if code == "" {
			errMsg := q.Get("error")
			if errMsg == "" {
				errMsg = "no code in callback"
			}
			http.Error(w, "Authentication failed: "+errMsg, http.StatusBadRequest)
			deliver(CallbackResult{Err: fmt.Errorf("oauth callback error: %s", errMsg)})
			return
		}

		token, err := oauthCfg.Exchange(r.Context(), code, oauth2.VerifierOption(verifier))
		if err != nil {
			http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
			deliver(CallbackResult{Err: fmt.Errorf("exchanging code: %w", err)})
			return
		}

		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, oauthSuccessHTML)
		deliver(CallbackResult{Token: token})
	}
}

// BrowserOpener returns an opener that prints the authorization URL to w and
// tries to launch the desktop's default browser. A browser that fails to start
// is not an error; the printed URL still works.
func BrowserOpener(w io.Writer, logger *slog.Logger) func(string) error {
	return func(authURL string) error {
		if _, err := fmt.Fprintf(w, "Please visit this URL to authorize this application: %s\n", authURL); err != nil {
			return err
		}
		if err := browserCommand(authURL).Start(); err != nil {
			logger.Warn("could not launch browser", "error", err)
		}
		return nil
	}
}

func browserCommand(url string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}
