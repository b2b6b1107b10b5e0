package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/deskhooks/internal/config"
	"github.com/shaharia-lab/deskhooks/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "deskhooks",
	Short: "Desktop hooks for the terminal and the status bar",
	Long: `deskhooks bundles small hooks invoked by desktop host processes:

  notify  rewrites terminal notifications (kitty notification hook)
  tasks   prints pending Google Tasks as Waybar custom-module JSON`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(NewUpdateCmd())
}

// loadRuntime loads the environment configuration and the process logger.
func loadRuntime() (*config.AppConfig, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return nil, nil, fmt.Errorf("setting up logger: %w", err)
	}
	slog.SetDefault(log)

	return cfg, log, nil
}
