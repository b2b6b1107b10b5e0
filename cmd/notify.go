package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/deskhooks/internal/config"
	"github.com/shaharia-lab/deskhooks/internal/logger"
	"github.com/shaharia-lab/deskhooks/internal/notification"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Rewrite one desktop notification read from stdin",
	Long: `Read a notification as JSON from stdin, apply the rewrite rules and print
{"suppress":false,"notification":{...}} on stdout.

Input fields: title, body, application_name, notification_types.
Without a rules file the built-in rule retitles OpenAI Codex approval requests.

kitty only loads ~/.config/kitty/notifications.py, so hook it up with a shim:

  import json, subprocess
  from kitty.notifications import NotificationCommand

  def main(nc: NotificationCommand) -> bool:
      msg = {"title": nc.title, "body": nc.body,
             "application_name": nc.application_name,
             "notification_types": list(nc.notification_types)}
      p = subprocess.run(["deskhooks", "notify"], input=json.dumps(msg),
                         capture_output=True, text=True, timeout=2)
      if p.returncode != 0:
          return False
      res = json.loads(p.stdout)
      n = res["notification"]
      nc.title, nc.body, nc.application_name = n["title"], n["body"], n["application_name"]
      return res["suppress"]

Example:
  echo '{"title":"Approval requested: rm -rf build"}' | deskhooks notify`,
	Args: cobra.NoArgs,
	RunE: runNotify,
}

func init() {
	notifyCmd.Flags().String("rules", "", "YAML rules file (overrides DESKHOOKS_NOTIFY_RULES)")
}

func runNotify(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadNotify()
	if err != nil {
		return err
	}
	log := notifyLogger(cfg)

	rules, err := notification.LoadRules(resolveRulesFile(cmd, cfg))
	if err != nil {
		return err
	}

	var nc notification.Command
	if err := json.NewDecoder(cmd.InOrStdin()).Decode(&nc); err != nil {
		return fmt.Errorf("decoding notification: %w", err)
	}
	log.Debug("notification received",
		"title", nc.Title, "body", nc.Body, "app", nc.ApplicationName, "types", nc.NotificationTypes)

	suppress := notification.NewFilter(rules).Apply(&nc)

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	return enc.Encode(notification.Result{Suppress: suppress, Notification: nc})
}

// notifyLogger never fails: a notification must get an answer even when the
// cache directory cannot be resolved or created.
func notifyLogger(cfg *config.NotifyConfig) *slog.Logger {
	dir, err := cfg.LogDir()
	if err != nil {
		return logger.Discard()
	}
	log, err := logger.New(dir, cfg.SlogLevel())
	if err != nil {
		return logger.Discard()
	}
	return log
}

func resolveRulesFile(cmd *cobra.Command, cfg *config.NotifyConfig) string {
	if cmd.Flags().Changed("rules") {
		f, _ := cmd.Flags().GetString("rules")
		return f
	}
	return cfg.RulesFile
}
