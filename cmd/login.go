package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/deskhooks/internal/integrations/google"
	"github.com/shaharia-lab/deskhooks/internal/service"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authorize Google Tasks access and cache the token",
	Long: `Run the browser consent flow now and cache the resulting token, so that the
bar never has to wait for it. Re-run it after revoking access.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.CredentialsFile); errors.Is(err, os.ErrNotExist) {
		return &service.MissingCredentialsError{Path: cfg.CredentialsFile}
	}

	oauthCfg, err := google.LoadOAuthConfig(cfg.CredentialsFile)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cache := google.NewTokenCache(cfg.TokenFile(), oauthCfg)
	auth := google.NewAuthorizer(oauthCfg, cache, browserConsent(log), log)
	if _, err := auth.Login(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Token saved to %s\n", cache.Path())
	return nil
}
