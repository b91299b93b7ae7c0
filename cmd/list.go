package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List top-level windows",
	Long:  "List the desktop's top-level windows with their automation id, class name, PID and process name.",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	return runOp(cmd, func(ctx context.Context, e *automation.Engine) automation.Result {
		return e.ListWindows(ctx)
	})
}
