package interact

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-mcp/internal/keys"
	"github.com/mj1618/desktop-mcp/internal/platform"
)

// caretReset selects the whole field content and deletes it.
const caretReset = "{HOME}+{END}{DEL}"

// Click clicks el. A plain left click tries the invoke pattern first; right
// and double clicks go straight to a physical click.
func (d *Dispatcher) Click(ctx context.Context, el platform.Element, button platform.MouseButton, count int) (Report, error) {
	if count < 1 {
		count = 1
	}
	var chain []Strategy
	if button == platform.MouseLeft && count == 1 {
		chain = append(chain, Strategy{Name: "invoke", Run: func(context.Context) (Outcome, error) {
			inv, ok := el.Invoker()
			if !ok {
				return NotApplicable, nil
			}
			if err := inv.Invoke(); err != nil {
				return NotApplicable, err
			}
			return Applied, nil
		}})
	}
	chain = append(chain, Strategy{Name: "physical-click", Foreground: true, Run: func(ctx context.Context) (Outcome, error) {
		if err := d.physicalClick(ctx, el, button, count); err != nil {
			return NotApplicable, err
		}
		return Applied, nil
	}})
	return d.Dispatch(ctx, "click", chain)
}

// Write replaces el's content with text. specialKeys, when set, is a key
// combo sent after focusing and before typing; it rules out the value
// pattern since a pattern write cannot deliver keystrokes.
func (d *Dispatcher) Write(ctx context.Context, el platform.Element, text, specialKeys string) (Report, error) {
	return d.Dispatch(ctx, "write", []Strategy{
		{Name: "value-pattern", Run: func(context.Context) (Outcome, error) {
			if specialKeys != "" {
				return NotApplicable, nil
			}
			v, ok := el.Value()
			if !ok {
				return NotApplicable, nil
			}
			if ro, err := v.IsReadOnly(); err != nil || ro {
				return NotApplicable, err
			}
			if err := v.SetValue(""); err != nil {
				return NotApplicable, err
			}
			if got, err := v.Value(); err != nil || got != "" {
				return Unverified, err
			}
			if err := v.SetValue(text); err != nil {
				return NotApplicable, err
			}
			if got, err := v.Value(); err != nil || got != text {
				return Unverified, err
			}
			return Applied, nil
		}},
		{Name: "keyboard", Foreground: true, Run: func(ctx context.Context) (Outcome, error) {
			if d.Windows != nil {
				if err := d.Windows.BringToForeground(el); err != nil {
					d.Logger.Debug("bring to foreground failed", zap.Error(err))
				}
			}
			if err := el.Focus(); err != nil {
				if err := d.physicalClick(ctx, el, platform.MouseLeft, 1); err != nil {
					return NotApplicable, fmt.Errorf("focus: %w", err)
				}
			}
			if specialKeys != "" {
				if err := d.Input.SendKeys(keys.Translate(specialKeys)); err != nil {
					return NotApplicable, err
				}
			}
			if err := d.Input.SendKeys(caretReset); err != nil {
				return NotApplicable, err
			}
			if err := d.typeText(ctx, text); err != nil {
				return NotApplicable, err
			}
			if err := d.Input.WaitForInputIdle(d.Options.InputIdleTimeout); err != nil {
				d.Logger.Debug("input idle wait failed", zap.Error(err))
			}
			if v, ok := el.Value(); ok {
				if got, err := v.Value(); err != nil || got != text {
					return Unverified, err
				}
			}
			return Applied, nil
		}},
	})
}

// SendKeys sends a key combo to window. With a target the target is clicked
// first; otherwise the window's title bar is clicked to reset keyboard
// context. A nil window (the desktop) skips the context click.
func (d *Dispatcher) SendKeys(ctx context.Context, window, target platform.Element, combo string) (Report, error) {
	tokens := keys.Translate(combo)
	return d.Dispatch(ctx, "send_keys", []Strategy{
		{Name: "keys", Foreground: true, Run: func(ctx context.Context) (Outcome, error) {
			switch {
			case target != nil:
				if err := d.physicalClick(ctx, target, platform.MouseLeft, 1); err != nil {
					return NotApplicable, err
				}
			case window != nil:
				if d.Windows != nil {
					if err := d.Windows.BringToForeground(window); err != nil {
						d.Logger.Debug("bring to foreground failed", zap.Error(err))
					}
				}
				if err := d.clickTitleBar(window); err != nil {
					d.Logger.Debug("title bar click failed", zap.Error(err))
				}
			}
			if err := d.Input.SendKeys(tokens); err != nil {
				return NotApplicable, err
			}
			if err := d.Input.WaitForInputIdle(d.Options.InputIdleTimeout); err != nil {
				d.Logger.Debug("input idle wait failed", zap.Error(err))
			}
			return Applied, nil
		}},
	})
}

// ItemFinder resolves a selectable item by name inside container.
type ItemFinder func(ctx context.Context, container platform.Element, item string) (platform.Element, error)

// SelectReport is a Report for a selection, listing the items that were
// selected before any failure.
type SelectReport struct {
	Report
	Selected []string `json:"selected" yaml:"selected"`
}

// Select selects items in container. A single item is first tried through
// the container's value pattern. Otherwise the container is expanded and
// each item is selected through its selection-item pattern or clicked.
// Selection stops at the first item that cannot be found or selected.
func (d *Dispatcher) Select(ctx context.Context, container platform.Element, items []string, find ItemFinder) (SelectReport, error) {
	d.init()
	rep := SelectReport{Selected: []string{}}
	if len(items) == 0 {
		return rep, fmt.Errorf("select: no items given")
	}

	if len(items) == 1 {
		item := items[0]
		r, err := d.Dispatch(ctx, "select", []Strategy{{Name: "value-pattern", Run: func(context.Context) (Outcome, error) {
			v, ok := container.Value()
			if !ok {
				return NotApplicable, nil
			}
			if ro, err := v.IsReadOnly(); err != nil || ro {
				return NotApplicable, err
			}
			if err := v.SetValue(item); err != nil {
				return NotApplicable, err
			}
			if got, err := v.Value(); err != nil || !strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(item)) {
				return Unverified, err
			}
			return Applied, nil
		}}})
		rep.Attempts = append(rep.Attempts, r.Attempts...)
		if err == nil {
			rep.Strategy = r.Strategy
			rep.Selected = append(rep.Selected, item)
			return rep, nil
		}
		if ctx.Err() != nil {
			return rep, ctx.Err()
		}
	}

	if err := d.expand(ctx, container); err != nil {
		return rep, err
	}

	multi := len(items) > 1
	for i, item := range items {
		el, err := find(ctx, container, item)
		if err != nil {
			return rep, fmt.Errorf("select %q: %w", item, err)
		}
		add := multi && i > 0
		r, err := d.Dispatch(ctx, "select", []Strategy{
			{Name: "selection-item", Run: func(context.Context) (Outcome, error) {
				si, ok := el.SelectionItem()
				if !ok {
					return NotApplicable, nil
				}
				op := si.Select
				if add {
					op = si.AddToSelection
				}
				if err := op(); err != nil {
					return NotApplicable, err
				}
				return Applied, nil
			}},
			{Name: "physical-click", Foreground: true, Run: func(ctx context.Context) (Outcome, error) {
				if err := d.physicalClick(ctx, el, platform.MouseLeft, 1); err != nil {
					return NotApplicable, err
				}
				return Applied, nil
			}},
		})
		rep.merge(r)
		if err != nil {
			return rep, fmt.Errorf("select %q: %w", item, err)
		}
		rep.Selected = append(rep.Selected, item)
	}
	return rep, nil
}

// expand opens a collapsed container and waits for its items to settle.
func (d *Dispatcher) expand(ctx context.Context, container platform.Element) error {
	ec, ok := container.ExpandCollapse()
	if !ok {
		return nil
	}
	st, err := ec.ExpandState()
	if err != nil || st != platform.Collapsed {
		return nil
	}
	if err := ec.Expand(); err != nil {
		d.Logger.Debug("expand failed", zap.Error(err))
		return nil
	}
	return sleep(ctx, d.Options.SelectSettle)
}

// SetCheckbox drives el to the desired checked state. Nothing is changed
// when the element already reports that state.
func (d *Dispatcher) SetCheckbox(ctx context.Context, el platform.Element, desired bool) (Report, error) {
	return d.Dispatch(ctx, "set_checkbox", []Strategy{
		{Name: "checkable", Run: func(context.Context) (Outcome, error) {
			c, ok := el.Checkable()
			if !ok {
				return NotApplicable, nil
			}
			cur, err := c.IsChecked()
			if err != nil {
				return NotApplicable, err
			}
			if cur == desired {
				return NoOp, nil
			}
			if err := c.SetChecked(desired); err != nil {
				return NotApplicable, err
			}
			if got, err := c.IsChecked(); err != nil || got != desired {
				return Unverified, err
			}
			return Applied, nil
		}},
		{Name: "toggle", Run: func(context.Context) (Outcome, error) {
			t, ok := el.Toggle()
			if !ok {
				return NotApplicable, nil
			}
			st, err := t.State()
			if err != nil {
				return NotApplicable, err
			}
			if (st == platform.ToggleOn) == desired && st != platform.ToggleIndeterminate {
				return NoOp, nil
			}
			// Three-state boxes may need two toggles to land on the target.
			for i := 0; i < 2; i++ {
				if err := t.Toggle(); err != nil {
					return NotApplicable, err
				}
				if st, err = t.State(); err != nil {
					return Unverified, err
				}
				if st != platform.ToggleIndeterminate && (st == platform.ToggleOn) == desired {
					return Applied, nil
				}
			}
			return Unverified, nil
		}},
		{Name: "physical-click", Foreground: true, Run: func(ctx context.Context) (Outcome, error) {
			if cur, err := checkedState(el); err == nil && cur == desired {
				return NoOp, nil
			}
			if err := d.physicalClick(ctx, el, platform.MouseLeft, 1); err != nil {
				return NotApplicable, err
			}
			cur, err := checkedState(el)
			if errors.Is(err, errNoState) {
				return Applied, nil
			}
			if err != nil || cur != desired {
				return Unverified, err
			}
			return Applied, nil
		}},
	})
}

var errNoState = errors.New("element exposes no check state")

func checkedState(el platform.Element) (bool, error) {
	if c, ok := el.Checkable(); ok {
		return c.IsChecked()
	}
	if t, ok := el.Toggle(); ok {
		st, err := t.State()
		return st == platform.ToggleOn, err
	}
	return false, errNoState
}

// SelectRadio selects a radio option.
func (d *Dispatcher) SelectRadio(ctx context.Context, option platform.Element) (Report, error) {
	return d.Dispatch(ctx, "select_radio", []Strategy{
		{Name: "selection-item", Run: func(context.Context) (Outcome, error) {
			si, ok := option.SelectionItem()
			if !ok {
				return NotApplicable, nil
			}
			if err := si.Select(); err != nil {
				return NotApplicable, err
			}
			return Applied, nil
		}},
		{Name: "physical-click", Foreground: true, Run: func(ctx context.Context) (Outcome, error) {
			if err := d.physicalClick(ctx, option, platform.MouseLeft, 1); err != nil {
				return NotApplicable, err
			}
			return Applied, nil
		}},
	})
}
