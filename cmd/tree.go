package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print a window's element tree",
	Long: `Print the UI element tree of a window down to --depth levels. Unnamed panes
are left out together with their contents.`,
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().StringP("window", "w", "", "Window to snapshot (default: the desktop)")
	treeCmd.Flags().Int("depth", 0, "Levels below the window to include (0 = configured default)")
	treeCmd.Flags().String("filter", "", "Keep only elements whose name, automation id or class contains this text")
}

func runTree(cmd *cobra.Command, args []string) error {
	window, _ := cmd.Flags().GetString("window")
	depth, _ := cmd.Flags().GetInt("depth")
	filter, _ := cmd.Flags().GetString("filter")
	return runOp(cmd, func(ctx context.Context, e *automation.Engine) automation.Result {
		return e.WindowTree(ctx, automation.TreeRequest{Window: window, MaxDepth: depth, Filter: filter})
	})
}
