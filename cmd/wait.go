package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for a window or element to appear",
	Long: `Poll until --window exists or, with --element, until the element exists in
that window. Fails with a timeout after --timeout.`,
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	addTargetFlags(waitCmd, "Element to wait for (omit to wait for the window)")
	waitCmd.Flags().Duration("timeout", 0, "How long to wait (0 = configured default)")
}

func runWait(cmd *cobra.Command, args []string) error {
	window, element := targetFlags(cmd)
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return runOp(cmd, func(ctx context.Context, e *automation.Engine) automation.Result {
		req := automation.WaitRequest{Window: window, Element: element, Timeout: timeout}
		if element == "" {
			return e.WaitForWindow(ctx, req)
		}
		return e.WaitForElement(ctx, req)
	})
}
