// Package interact performs actions on resolved elements by trying a fixed
// chain of strategies: background accessibility patterns first, verified
// where possible, then simulated foreground input.
package interact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-mcp/internal/platform"
)

// Outcome is the result of running one strategy.
type Outcome int

const (
	// NotApplicable means the element lacks what the strategy needs.
	NotApplicable Outcome = iota
	// Applied means the action took effect (and was verified if possible).
	Applied
	// NoOp means the element was already in the requested state.
	NoOp
	// Unverified means the action ran but read-back did not confirm it.
	Unverified
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case NoOp:
		return "no-op"
	case Unverified:
		return "unverified"
	default:
		return "not-applicable"
	}
}

func (o Outcome) success() bool { return o == Applied || o == NoOp }

var (
	// ErrNotApplicable is returned when no strategy could act on the element.
	ErrNotApplicable = errors.New("element does not support this action")
	// ErrVerification is returned when every strategy that ran failed its
	// read-back check.
	ErrVerification = errors.New("action could not be verified")
	// ErrFailed is returned when strategies ran but failed.
	ErrFailed = errors.New("interaction failed")
)

// Strategy is one way of performing an action.
type Strategy struct {
	Name string
	// Foreground strategies inject synthetic input and run while holding the
	// dispatcher's input lock.
	Foreground bool
	Run        func(ctx context.Context) (Outcome, error)
}

// Attempt records one strategy run.
type Attempt struct {
	Strategy string  `json:"strategy" yaml:"strategy"`
	Outcome  Outcome `json:"-" yaml:"-"`
	Result   string  `json:"result" yaml:"result"`
	Error    string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Report describes how an action was carried out.
type Report struct {
	// Strategy is the strategy that succeeded, empty on failure.
	Strategy string    `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	NoOp     bool      `json:"no_op,omitempty" yaml:"no_op,omitempty"`
	Attempts []Attempt `json:"attempts,omitempty" yaml:"attempts,omitempty"`
}

func (r *Report) merge(o Report) {
	r.Strategy = o.Strategy
	r.NoOp = o.NoOp
	r.Attempts = append(r.Attempts, o.Attempts...)
}

// Options tunes foreground behaviour.
type Options struct {
	// InteractableTimeout bounds the wait for an element to become clickable.
	InteractableTimeout time.Duration
	// PollInterval is used by the interactable wait.
	PollInterval time.Duration
	// SelectSettle is the pause after expanding a container before its items
	// are selected.
	SelectSettle time.Duration
	// InputIdleTimeout bounds WaitForInputIdle after typing.
	InputIdleTimeout time.Duration
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		InteractableTimeout: 2 * time.Second,
		PollInterval:        100 * time.Millisecond,
		SelectSettle:        250 * time.Millisecond,
		InputIdleTimeout:    time.Second,
	}
}

// Dispatcher runs strategy chains.
type Dispatcher struct {
	Input   platform.Inputter
	Windows platform.WindowManager
	// InputLock serialises foreground strategies across the process.
	InputLock sync.Locker
	Options   Options
	Logger    *zap.Logger

	once sync.Once
}

func (d *Dispatcher) init() {
	d.once.Do(func() {
		if d.InputLock == nil {
			d.InputLock = &sync.Mutex{}
		}
		if d.Logger == nil {
			d.Logger = zap.NewNop()
		}
		def := DefaultOptions()
		if d.Options.InteractableTimeout <= 0 {
			d.Options.InteractableTimeout = def.InteractableTimeout
		}
		if d.Options.PollInterval <= 0 {
			d.Options.PollInterval = def.PollInterval
		}
		if d.Options.SelectSettle < 0 {
			d.Options.SelectSettle = 0
		}
		if d.Options.InputIdleTimeout <= 0 {
			d.Options.InputIdleTimeout = def.InputIdleTimeout
		}
	})
}

// Dispatch runs strategies in order until one succeeds. Errors and
// unverified outcomes fall through to the next strategy.
func (d *Dispatcher) Dispatch(ctx context.Context, action string, strategies []Strategy) (Report, error) {
	d.init()
	var (
		rep        Report
		errs       []error
		unverified bool
	)
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		outcome, err := d.run(ctx, s)
		a := Attempt{Strategy: s.Name, Outcome: outcome, Result: outcome.String()}
		if err != nil {
			a.Result = "error"
			a.Error = err.Error()
		}
		rep.Attempts = append(rep.Attempts, a)

		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return rep, fmt.Errorf("%s: %s: %w", action, s.Name, err)
		case err != nil:
			d.Logger.Debug("strategy failed, falling through",
				zap.String("action", action), zap.String("strategy", s.Name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
		case outcome.success():
			rep.Strategy = s.Name
			rep.NoOp = outcome == NoOp
			d.Logger.Debug("strategy applied",
				zap.String("action", action), zap.String("strategy", s.Name), zap.Bool("no_op", rep.NoOp))
			return rep, nil
		case outcome == Unverified:
			d.Logger.Debug("strategy unverified, falling through",
				zap.String("action", action), zap.String("strategy", s.Name))
			unverified = true
		}
	}

	if err := ctx.Err(); err != nil {
		return rep, err
	}
	switch {
	case len(errs) > 0:
		return rep, fmt.Errorf("%s: %w", action, errors.Join(append([]error{ErrFailed}, errs...)...))
	case unverified:
		return rep, fmt.Errorf("%s: %w", action, ErrVerification)
	default:
		return rep, fmt.Errorf("%s: %w (tried %s)", action, ErrNotApplicable, strategyNames(strategies))
	}
}

func (d *Dispatcher) run(ctx context.Context, s Strategy) (outcome Outcome, err error) {
	if s.Foreground {
		d.InputLock.Lock()
		defer d.InputLock.Unlock()
	}
	defer func() {
		if r := recover(); r != nil {
			outcome, err = NotApplicable, fmt.Errorf("strategy panicked: %v", r)
		}
	}()
	return s.Run(ctx)
}

func strategyNames(strategies []Strategy) string {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}

// sleep pauses for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ParseDesiredState maps a free-text checkbox state to a boolean:
// "on", "true", "checked" and "yes" mean checked, anything else unchecked.
func ParseDesiredState(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "checked", "yes":
		return true
	}
	return false
}
