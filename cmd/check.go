package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check or uncheck a checkbox",
	Long:  "Set a checkbox to --state. Nothing is clicked when it is already in that state.",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	addTargetFlags(checkCmd, "Checkbox to set")
	checkCmd.Flags().String("state", "on", "on, true, checked or yes to check; anything else unchecks")
}

func runCheck(cmd *cobra.Command, args []string) error {
	window, element := targetFlags(cmd)
	state, _ := cmd.Flags().GetString("state")
	return runOp(cmd, func(ctx context.Context, e *automation.Engine) automation.Result {
		return e.SetCheckbox(ctx, automation.CheckboxRequest{Window: window, Element: element, State: state})
	})
}
