// Package automation is the engine behind every desktop-mcp operation: it
// owns the current-application session and composes window resolution,
// element resolution and interaction into named operations that never fail
// across their boundary.
package automation

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-mcp/internal/config"
	"github.com/mj1618/desktop-mcp/internal/interact"
	"github.com/mj1618/desktop-mcp/internal/platform"
	"github.com/mj1618/desktop-mcp/internal/resolve"
	"github.com/mj1618/desktop-mcp/internal/retry"
)

// Options holds engine timing.
type Options struct {
	WindowTimeout  time.Duration
	ElementTimeout time.Duration
	WaitTimeout    time.Duration
	LaunchTimeout  time.Duration
	PollInterval   time.Duration
	SnapshotDepth  int
	CloseGrace     time.Duration
	HistorySize    int
	// KeystrokesPerSecond paces typed text; zero disables pacing.
	KeystrokesPerSecond float64
	Interact            interact.Options
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		WindowTimeout:  10 * time.Second,
		ElementTimeout: 5 * time.Second,
		WaitTimeout:    30 * time.Second,
		LaunchTimeout:  30 * time.Second,
		PollInterval:   200 * time.Millisecond,
		SnapshotDepth:  4,
		CloseGrace:     5 * time.Second,
		HistorySize:    16,
		Interact:       interact.DefaultOptions(),
	}
}

// OptionsFromConfig converts the automation and input configuration.
func OptionsFromConfig(a config.AutomationConfig, in config.InputConfig) Options {
	return Options{
		WindowTimeout:       a.WindowTimeout,
		ElementTimeout:      a.ElementTimeout,
		WaitTimeout:         a.WaitTimeout,
		LaunchTimeout:       a.LaunchTimeout,
		PollInterval:        a.PollInterval,
		SnapshotDepth:       a.SnapshotDepth,
		CloseGrace:          a.CloseGrace,
		HistorySize:         a.HistorySize,
		KeystrokesPerSecond: in.KeystrokesPerSecond,
		Interact: interact.Options{
			InteractableTimeout: a.InteractableTimeout,
			PollInterval:        a.PollInterval,
			SelectSettle:        a.SelectSettle,
			InputIdleTimeout:    a.InputIdleTimeout,
		},
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// Engine runs automation operations against a platform provider. It is safe
// for concurrent use.
type Engine struct {
	provider   *platform.Provider
	opts       Options
	logger     *zap.Logger
	metrics    *Metrics
	windows    *resolve.WindowResolver
	elements   *resolve.ElementResolver
	dispatcher *interact.Dispatcher
	history    *History

	// lifecycle is held for writing by launch and close, and for reading by
	// operations that resolve the current application's window.
	lifecycle sync.RWMutex

	mu      sync.Mutex
	session *Session
}

// New creates an engine.
func New(p *platform.Provider, opts Options, options ...Option) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		provider: p,
		opts:     opts,
		logger:   zap.NewNop(),
		history:  NewHistory(opts.HistorySize),
	}
	for _, o := range options {
		o(e)
	}
	e.logger = e.logger.Named("automation")

	var input platform.Inputter = p.Inputter
	if opts.KeystrokesPerSecond > 0 {
		input = platform.NewPacedInputter(p.Inputter, opts.KeystrokesPerSecond)
	}
	e.windows = &resolve.WindowResolver{
		Desktop:   p.Desktop,
		Processes: p.Processes,
		Current:   e.currentWindow,
		Logger:    e.logger.Named("resolve"),
	}
	e.elements = &resolve.ElementResolver{Logger: e.logger.Named("resolve")}
	e.dispatcher = &interact.Dispatcher{
		Input:     input,
		Windows:   p.WindowManager,
		InputLock: &sync.Mutex{},
		Options:   opts.Interact,
		Logger:    e.logger.Named("interact"),
	}
	return e, nil
}

// Session returns a copy of the current session, or nil.
func (e *Engine) Session() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session == nil {
		return nil
	}
	s := *e.session
	return &s
}

// currentWindow returns the live main window of the current session. A
// main window that has disappeared is replaced by another window of the
// same process when one exists.
func (e *Engine) currentWindow() (platform.Element, bool) {
	e.mu.Lock()
	s := e.session
	var main platform.Element
	if s != nil {
		main = s.main
	}
	e.mu.Unlock()

	if s == nil || !e.provider.Processes.IsRunning(s.PID) {
		return nil, false
	}
	if main != nil {
		if _, err := main.Name(); err == nil {
			return main, true
		}
	}
	w := e.findProcessWindow(s.PID, s.Name)
	if w == nil {
		return nil, false
	}
	e.mu.Lock()
	if e.session == s {
		s.main = w
	}
	e.mu.Unlock()
	return w, true
}

// findProcessWindow returns the first top-level window owned by pid, else
// the first owned by a process called name.
func (e *Engine) findProcessWindow(pid int, name string) platform.Element {
	windows, err := e.provider.Desktop.TopLevelWindows()
	if err != nil {
		return nil
	}
	var byName platform.Element
	for _, w := range windows {
		wpid, err := w.ProcessID()
		if err != nil {
			continue
		}
		if wpid == pid {
			return w
		}
		if byName == nil && name != "" {
			if pn, err := e.provider.Processes.ProcessName(wpid); err == nil && strings.EqualFold(pn, name) {
				byName = w
			}
		}
	}
	return byName
}

// lockFor takes the lifecycle read lock when window refers to the current
// application, so that launch and close cannot swap the session mid-way.
func (e *Engine) lockFor(window string) func() {
	if !resolve.IsCurrent(window) {
		return func() {}
	}
	e.lifecycle.RLock()
	return e.lifecycle.RUnlock
}

func (e *Engine) policy(timeout time.Duration) retry.Policy {
	return retry.Policy{Timeout: timeout, Interval: e.opts.PollInterval}
}

// run executes one operation, converting failures and panics into the
// Result and recording logs and metrics.
func (e *Engine) run(ctx context.Context, op string, fn func(ctx context.Context, res *Result) error) Result {
	start := time.Now()
	res := Result{Op: op}
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("internal error: %v", r)
				e.logger.Error("operation panicked", zap.String("op", op), zap.Any("panic", r))
			}
		}()
		return fn(ctx, &res)
	}()
	elapsed := time.Since(start)
	res.Elapsed = elapsed.Round(time.Millisecond).String()

	if err != nil {
		ae := wrap(op, "", err)
		res.OK = false
		res.Kind = ae.Kind
		res.TimedOut = ae.TimedOut
		res.Message = describe(ae)
		if len(res.Selected) > 0 {
			res.Message += fmt.Sprintf("; selected before failure: %s", strings.Join(res.Selected, ", "))
		}
		e.logger.Info("operation failed",
			zap.String("op", op), zap.String("kind", string(ae.Kind)), zap.Bool("timed_out", ae.TimedOut),
			zap.Duration("elapsed", elapsed), zap.Error(err))
	} else {
		res.OK = true
		e.logger.Debug("operation succeeded",
			zap.String("op", op), zap.String("strategy", res.Strategy), zap.Duration("elapsed", elapsed))
	}

	e.metrics.observeOp(op, res.Kind, elapsed)
	e.metrics.observeTier(res.Tier)
	for _, a := range res.Attempts {
		e.metrics.observeAttempt(op, a.Strategy, a.Result)
	}
	return res
}

func describe(e *Error) string {
	if e.Op == OpDo && e.Target != "" {
		return e.Target + " failed: " + e.Err.Error()
	}
	var msg string
	switch e.Kind {
	case KindWindowNotFound:
		msg = fmt.Sprintf("Window %q not found", e.Target)
	case KindElementNotFound:
		msg = fmt.Sprintf("Element %q not found", e.Target)
	case KindTimeout:
		msg = fmt.Sprintf("Timed out waiting for %q", e.Target)
	case KindCanceled:
		return "Operation canceled: " + e.Err.Error()
	default:
		msg = e.Op + " failed"
		if e.Target != "" {
			msg += fmt.Sprintf(" on %q", e.Target)
		}
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func exeName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func nameOf(el platform.Element) string {
	if el == nil {
		return ""
	}
	if n, err := el.Name(); err == nil && n != "" {
		return n
	}
	if id, err := el.AutomationID(); err == nil && id != "" {
		return id
	}
	if ct, err := el.ControlType(); err == nil {
		return string(ct)
	}
	return ""
}
