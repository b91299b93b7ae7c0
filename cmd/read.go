package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Read an element's text",
	Long:  "Print an element's text content, else its value, else its name.",
	RunE:  runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
	addTargetFlags(readCmd, "Element to read")
}

func runRead(cmd *cobra.Command, args []string) error {
	window, element := targetFlags(cmd)
	return runOp(cmd, func(ctx context.Context, e *automation.Engine) automation.Result {
		return e.ReadText(ctx, automation.ReadRequest{Window: window, Element: element})
	})
}
