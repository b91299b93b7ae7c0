package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

var launchCmd = &cobra.Command{
	Use:   "launch <path> [args...]",
	Short: "Launch an application",
	Long:  "Start an application and wait for its main window.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	return runOp(cmd, func(ctx context.Context, e *automation.Engine) automation.Result {
		return e.Launch(ctx, automation.LaunchRequest{Path: args[0], Args: args[1:]})
	})
}
