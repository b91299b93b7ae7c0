package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Replace the text of an input field",
	Long: `Replace the text of an input field. The value is set directly when the
control supports it and typed on the keyboard otherwise.`,
	RunE: runWrite,
}

func init() {
	rootCmd.AddCommand(writeCmd)
	addTargetFlags(writeCmd, "Field to write into")
	writeCmd.Flags().StringP("text", "t", "", "Text to enter")
	writeCmd.Flags().String("special-keys", "", "Key combo pressed before typing, e.g. ctrl+a")
}

func runWrite(cmd *cobra.Command, args []string) error {
	window, element := targetFlags(cmd)
	text, _ := cmd.Flags().GetString("text")
	special, _ := cmd.Flags().GetString("special-keys")
	return runOp(cmd, func(ctx context.Context, e *automation.Engine) automation.Result {
		return e.Write(ctx, automation.WriteRequest{Window: window, Element: element, Text: text, SpecialKeys: special})
	})
}
