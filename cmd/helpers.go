package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-mcp/internal/automation"
	"github.com/mj1618/desktop-mcp/internal/config"
	"github.com/mj1618/desktop-mcp/internal/observability"
	"github.com/mj1618/desktop-mcp/internal/output"
	"github.com/mj1618/desktop-mcp/internal/platform"
	"github.com/mj1618/desktop-mcp/internal/platform/procs"
	"github.com/mj1618/desktop-mcp/internal/platform/virtual"
)

// app is everything a command needs to run operations.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	engine   *automation.Engine
}

// bindings maps config keys to the flags that override them.
var bindings = map[string]string{
	"logger.level":     "log-level",
	"server.transport": "transport",
	"server.address":   "address",
	"server.port":      "port",
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	for key, name := range bindings {
		if f := cmd.Flag(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, err
			}
		}
	}
	path, _ := cmd.Flags().GetString("config")
	return config.Load(v, path)
}

// newProvider returns the virtual desktop when --fixture is set and the
// platform backend otherwise. With --exec, processes are real: launch and
// close go through os/exec while the accessibility tree stays virtual.
func newProvider(cmd *cobra.Command, logger *zap.Logger) (*platform.Provider, error) {
	fixture, _ := cmd.Flags().GetString("fixture")
	if fixture == "" {
		return platform.NewProvider()
	}
	d, err := virtual.LoadFile(fixture)
	if err != nil {
		return nil, err
	}
	p := d.Provider()
	if useExec, _ := cmd.Flags().GetBool("exec"); useExec {
		p.Processes = procs.New(logger)
	}
	return p, nil
}

func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := observability.NewLogger(cfg.Logger)

	provider, err := newProvider(cmd, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	engine, err := automation.New(provider,
		automation.OptionsFromConfig(cfg.Automation, cfg.Input),
		automation.WithLogger(logger),
		automation.WithMetrics(automation.NewMetrics(reg)),
	)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, logger: logger, registry: reg, engine: engine}, nil
}

// signalContext is cancelled on interrupt or termination.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// runOp runs a single operation and prints its result. A failed operation
// makes the command exit non-zero.
func runOp(cmd *cobra.Command, op func(ctx context.Context, e *automation.Engine) automation.Result) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	ctx, stop := signalContext(cmd)
	defer stop()

	res := op(ctx, a.engine)
	if err := output.Print(res); err != nil {
		return err
	}
	if !res.OK {
		return errFailed
	}
	return nil
}

// addTargetFlags adds the --window and --element flags shared by most
// commands.
func addTargetFlags(cmd *cobra.Command, elementUsage string) {
	cmd.Flags().StringP("window", "w", "", `Window title, automation id or process name ("current" or empty for the desktop)`)
	cmd.Flags().StringP("element", "e", "", elementUsage)
}

func targetFlags(cmd *cobra.Command) (window, element string) {
	window, _ = cmd.Flags().GetString("window")
	element, _ = cmd.Flags().GetString("element")
	return window, element
}
