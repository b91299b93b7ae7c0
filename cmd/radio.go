package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

var radioCmd = &cobra.Command{
	Use:   "radio <option>",
	Short: "Select a radio button",
	Args:  cobra.ExactArgs(1),
	RunE:  runRadio,
}

func init() {
	rootCmd.AddCommand(radioCmd)
	radioCmd.Flags().StringP("window", "w", "", "Window holding the radio buttons")
	radioCmd.Flags().StringP("group", "g", "", "Group containing the option")
}

func runRadio(cmd *cobra.Command, args []string) error {
	window, _ := cmd.Flags().GetString("window")
	group, _ := cmd.Flags().GetString("group")
	return runOp(cmd, func(ctx context.Context, e *automation.Engine) automation.Result {
		return e.SelectRadio(ctx, automation.RadioRequest{Window: window, Group: group, Option: args[0]})
	})
}
