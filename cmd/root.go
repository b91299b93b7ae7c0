package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/desktop-mcp/internal/output"
	"github.com/mj1618/desktop-mcp/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "desktop-mcp",
	Short: "Drive desktop applications through their accessibility tree",
	Long: `desktop-mcp finds windows and controls by name or automation id and
operates them the way a user would: click, type, select, check. Run "serve"
to expose these operations to AI agents as MCP tools, or call them one at a
time from the shell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errFailed reports a failed operation whose result has already been printed.
var errFailed = errors.New("operation failed")

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file")
	pf.String("fixture", "", "Run against a virtual desktop described by this YAML file")
	pf.Bool("exec", false, "With --fixture, launch and close real processes instead of fixture apps")
	pf.String("format", "yaml", "Output format: yaml, json, text")
	pf.Bool("pretty", false, "Pretty-print JSON output")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
}
