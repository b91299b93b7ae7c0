package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

var doCmd = &cobra.Command{
	Use:   "do",
	Short: "Run a batch of steps",
	Long: `Run the YAML list of steps read from --file or stdin, in order. Each step
has one action key mapping to its parameters:

  - write: {element: Email, text: admin@example.com}
  - check: {element: Remember me}
  - click: {element: Submit}
  - wait: {element: Signed in, timeout: 5}

Actions: launch, close, list, tree, click, write, keys, select, check, radio,
wait, read, sleep.`,
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
	doCmd.Flags().StringP("window", "w", "", "Default window for all steps")
	doCmd.Flags().StringP("file", "f", "", "Read steps from this file instead of stdin")
	doCmd.Flags().Bool("stop-on-error", true, "Stop execution on first error")
}

func runDo(cmd *cobra.Command, args []string) error {
	window, _ := cmd.Flags().GetString("window")
	file, _ := cmd.Flags().GetString("file")
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")

	var in io.Reader = cmd.InOrStdin()
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read steps: %w", err)
	}
	steps, err := automation.ParseSteps(data)
	if err != nil {
		return err
	}
	return runOp(cmd, func(ctx context.Context, e *automation.Engine) automation.Result {
		return e.Do(ctx, steps, automation.DoOptions{Window: window, StopOnError: stopOnError})
	})
}
