package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

var clickCmd = &cobra.Command{
	Use:   "click",
	Short: "Click an element",
	Long:  "Click a UI element, through its invoke pattern when it has one and with the mouse otherwise.",
	RunE:  runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	addTargetFlags(clickCmd, "Element to click")
	clickCmd.Flags().String("button", "left", "Mouse button: left, right, middle")
	clickCmd.Flags().Bool("double", false, "Double-click")
}

func runClick(cmd *cobra.Command, args []string) error {
	window, element := targetFlags(cmd)
	button, _ := cmd.Flags().GetString("button")
	double, _ := cmd.Flags().GetBool("double")
	return runOp(cmd, func(ctx context.Context, e *automation.Engine) automation.Result {
		return e.Click(ctx, automation.ClickRequest{Window: window, Element: element, Button: button, Double: double})
	})
}
