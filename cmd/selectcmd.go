package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

var selectCmd = &cobra.Command{
	Use:   "select <item>...",
	Short: "Select items in a list or combo box",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSelect,
}

func init() {
	rootCmd.AddCommand(selectCmd)
	addTargetFlags(selectCmd, "List, combo box or tree holding the items")
}

func runSelect(cmd *cobra.Command, args []string) error {
	window, element := targetFlags(cmd)
	return runOp(cmd, func(ctx context.Context, e *automation.Engine) automation.Result {
		return e.Select(ctx, automation.SelectRequest{Window: window, Element: element, Items: args})
	})
}
