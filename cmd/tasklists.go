package cmd

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/deskhooks/internal/integrations/google"
)

var taskListsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Print the Google Tasks lists of the account as JSON",
	Long: `Print every task list of the authorized account as a JSON array of
{"id":"...","title":"..."} objects. Use a title with --task-list or
DESKHOOKS_TASK_LIST. The widget itself only looks at the first
DESKHOOKS_MAX_TASK_LISTS lists.

On failure {"error":"..."} is printed on stdout and the exit status is 1.

Access is read-only; completing or deleting tasks is not supported.`,
	Args: cobra.NoArgs,
	RunE: runTaskLists,
}

func init() {
	tasksCmd.AddCommand(taskListsCmd)
}

func runTaskLists(cmd *cobra.Command, _ []string) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)

	lists, err := fetchTaskLists()
	if err != nil {
		_ = enc.Encode(map[string]string{"error": err.Error()})
		return err
	}
	return enc.Encode(lists)
}

func fetchTaskLists() ([]google.TaskList, error) {
	cfg, log, err := loadRuntime()
	if err != nil {
		return nil, err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return newWidgetService(cfg, log).TaskLists(ctx)
}
