package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

var keysCmd = &cobra.Command{
	Use:   "keys <combo>",
	Short: "Press a key combination",
	Long: `Press a key combination in a window, e.g. "ctrl+s", "alt+f4" or "enter".
With --element the element is clicked first.`,
	Args: cobra.ExactArgs(1),
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
	addTargetFlags(keysCmd, "Element to click before pressing the keys")
}

func runKeys(cmd *cobra.Command, args []string) error {
	window, element := targetFlags(cmd)
	return runOp(cmd, func(ctx context.Context, e *automation.Engine) automation.Result {
		return e.SendKeys(ctx, automation.KeysRequest{Window: window, Element: element, Keys: args[0]})
	})
}
