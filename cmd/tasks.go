package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/shaharia-lab/deskhooks/internal/config"
	"github.com/shaharia-lab/deskhooks/internal/integrations/google"
	"github.com/shaharia-lab/deskhooks/internal/scheduler"
	"github.com/shaharia-lab/deskhooks/internal/service"
	"github.com/shaharia-lab/deskhooks/internal/waybar"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Print pending Google Tasks as Waybar JSON",
	Long: `Fetch the pending items of a Google Tasks list and print them as a
Waybar custom-module object: {"text":"","tooltip":"..."}.

The OAuth client secrets are read from credentials.json next to the binary
(or DESKHOOKS_CREDENTIALS_FILE); the token is cached in
$XDG_CACHE_HOME/waybar-google-tasks/token.json.

Examples:
  deskhooks tasks
  deskhooks tasks --fallback
  deskhooks tasks --watch 5m      # continuous mode, one JSON line per refresh
  deskhooks tasks --preview       # inspect the tooltip in a terminal
  deskhooks tasks lists           # show the available list titles`,
	Args: cobra.NoArgs,
	RunE: runTasks,
}

func init() {
	tasksCmd.Flags().Bool("fallback", false, "Print an error tooltip instead of failing (overrides DESKHOOKS_TASKS_FALLBACK)")
	tasksCmd.Flags().String("task-list", "", "Title of the task list to show (overrides DESKHOOKS_TASK_LIST)")
	tasksCmd.Flags().Duration("watch", 0, "Keep running and print one JSON line every interval")
	tasksCmd.Flags().Bool("preview", false, "Render the tooltip for a terminal instead of printing JSON")
}

func runTasks(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadRuntime()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fallback") {
		cfg.Fallback, _ = cmd.Flags().GetBool("fallback")
	}
	if cmd.Flags().Changed("task-list") {
		cfg.TaskList, _ = cmd.Flags().GetString("task-list")
	}
	watch, _ := cmd.Flags().GetDuration("watch")
	preview, _ := cmd.Flags().GetBool("preview")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	svc := newWidgetService(cfg, log)

	if watch > 0 {
		w, err := scheduler.New(scheduler.Config{
			Runner:   svc,
			Interval: watch,
			Out:      cmd.OutOrStdout(),
			Logger:   log,
		})
		if err != nil {
			return err
		}
		return w.Run(ctx)
	}

	out, err := svc.Run(ctx)
	if err != nil {
		return err
	}

	if preview {
		return waybar.Preview(cmd.OutOrStdout(), out)
	}

	data, err := out.Marshal()
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

func newWidgetService(cfg *config.AppConfig, log *slog.Logger) *service.WidgetService {
	return service.NewWidgetService(service.WidgetConfig{
		CacheDir:        cfg.CacheDir,
		CredentialsFile: cfg.CredentialsFile,
		Fallback:        cfg.Fallback,
		Authorize:       service.GoogleAuthorize(cfg.TokenFile(), browserConsent(log), log),
		Fetch:           service.GoogleFetch(cfg.TaskList, cfg.MaxTaskLists),
		Lists:           service.GoogleTaskLists(cfg.MaxTaskLists),
		Logger:          log,
	})
}

// browserConsent runs the loopback consent flow, printing the URL on stderr
// since stdout belongs to the bar.
func browserConsent(log *slog.Logger) google.ConsentFunc {
	return func(ctx context.Context, oauthCfg *oauth2.Config) (*oauth2.Token, error) {
		return google.RunLocalServer(ctx, oauthCfg, google.BrowserOpener(os.Stderr, log), log)
	}
}
