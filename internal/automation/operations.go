package automation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-mcp/internal/interact"
	"github.com/mj1618/desktop-mcp/internal/model"
	"github.com/mj1618/desktop-mcp/internal/platform"
	"github.com/mj1618/desktop-mcp/internal/resolve"
	"github.com/mj1618/desktop-mcp/internal/retry"
	"github.com/mj1618/desktop-mcp/internal/snapshot"
)

// Operation names, as exposed to agents.
const (
	OpLaunch         = "launch_app"
	OpClose          = "close_app"
	OpListWindows    = "list_windows"
	OpWindowTree     = "get_window_tree"
	OpClick          = "click_element"
	OpWrite          = "write_text"
	OpSendKeys       = "send_keys"
	OpSelect         = "select_items"
	OpSetCheckbox    = "set_checkbox"
	OpSelectRadio    = "select_radio"
	OpWaitForElement = "wait_for_element"
	OpWaitForWindow  = "wait_for_window"
	OpReadText       = "read_text"
	OpDo             = "do"
)

// LaunchRequest starts an application.
type LaunchRequest struct {
	Path string
	Args []string
}

// TreeRequest snapshots a window.
type TreeRequest struct {
	Window   string
	MaxDepth int
	// Changes reports the difference from the previous snapshot of the same
	// window instead of the full tree.
	Changes bool
	// Filter keeps only nodes whose name, automation id or class name
	// contains it, plus their ancestors.
	Filter string
}

// ClickRequest clicks an element.
type ClickRequest struct {
	Window  string
	Element string
	Button  string
	Double  bool
}

// WriteRequest enters text into an element.
type WriteRequest struct {
	Window      string
	Element     string
	Text        string
	SpecialKeys string
}

// KeysRequest sends a key combination. Element is optional.
type KeysRequest struct {
	Window  string
	Element string
	Keys    string
}

// SelectRequest selects items in a list or combo box.
type SelectRequest struct {
	Window  string
	Element string
	Items   []string
}

// CheckboxRequest sets a checkbox to State.
type CheckboxRequest struct {
	Window  string
	Element string
	State   string
}

// RadioRequest selects Option, inside Group when Group is set.
type RadioRequest struct {
	Window string
	Group  string
	Option string
}

// WaitRequest waits for a window, or for an element in a window. A zero
// Timeout uses the configured wait timeout.
type WaitRequest struct {
	Window  string
	Element string
	Timeout time.Duration
}

// ReadRequest reads an element's text.
type ReadRequest struct {
	Window  string
	Element string
}

// Launch starts an application and makes it the current session.
func (e *Engine) Launch(ctx context.Context, req LaunchRequest) Result {
	return e.run(ctx, OpLaunch, func(ctx context.Context, res *Result) error {
		path := strings.TrimSpace(req.Path)
		if path == "" {
			return invalid(OpLaunch, "path is required")
		}
		e.lifecycle.Lock()
		defer e.lifecycle.Unlock()

		proc, err := e.provider.Processes.Launch(ctx, path, req.Args)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			return &Error{Kind: KindProcessLaunchFailure, Op: OpLaunch, Target: path, Err: err}
		}
		if proc.Name == "" {
			proc.Name = exeName(path)
		}
		if proc.Path == "" {
			proc.Path = path
		}

		main, err := retry.Poll(ctx, e.policy(e.opts.LaunchTimeout), retry.Once(func(context.Context) (platform.Element, error) {
			return e.findProcessWindow(proc.PID, proc.Name), nil
		}))
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			main = nil
			res.Warning = fmt.Sprintf("no window appeared for %s within %s", proc.Name, e.opts.LaunchTimeout)
		}

		s := newSession(proc, main)
		e.mu.Lock()
		e.session = s
		e.mu.Unlock()
		e.history.Invalidate()
		e.metrics.setSession(true)

		cp := *s
		res.Session = &cp
		res.Window = s.Window
		res.Message = fmt.Sprintf("Launched %s (pid %d)", s.Name, s.PID)
		if s.Window != "" {
			res.Message += fmt.Sprintf(" with window %q", s.Window)
		}
		e.logger.Info("application launched", zap.String("name", s.Name), zap.Int("pid", s.PID), zap.String("session", s.ID))
		return nil
	})
}

// Close terminates the current application.
func (e *Engine) Close(ctx context.Context) Result {
	return e.run(ctx, OpClose, func(ctx context.Context, res *Result) error {
		e.lifecycle.Lock()
		defer e.lifecycle.Unlock()

		e.mu.Lock()
		s := e.session
		e.mu.Unlock()
		if s == nil {
			return invalid(OpClose, "no application has been launched")
		}

		if err := e.provider.Processes.Close(ctx, s.PID, e.opts.CloseGrace); err != nil {
			if ctx.Err() != nil {
				return err
			}
			if e.provider.Processes.IsRunning(s.PID) {
				return &Error{Kind: KindProcessCloseFailure, Op: OpClose, Target: s.Name, Err: err}
			}
			res.Warning = err.Error()
		}

		e.mu.Lock()
		if e.session == s {
			e.session = nil
		}
		e.mu.Unlock()
		e.history.Invalidate()
		e.metrics.setSession(false)

		cp := *s
		res.Session = &cp
		res.Message = fmt.Sprintf("Closed %s (pid %d)", s.Name, s.PID)
		e.logger.Info("application closed", zap.String("name", s.Name), zap.Int("pid", s.PID), zap.String("session", s.ID))
		return nil
	})
}

// ListWindows lists the desktop's top-level windows.
func (e *Engine) ListWindows(ctx context.Context) Result {
	return e.run(ctx, OpListWindows, func(ctx context.Context, res *Result) error {
		windows, err := e.provider.Desktop.TopLevelWindows()
		if err != nil {
			return err
		}
		current := e.Session()
		res.Windows = make([]WindowInfo, 0, len(windows))
		for _, w := range windows {
			if err := ctx.Err(); err != nil {
				return err
			}
			name, err := w.Name()
			if err != nil {
				continue
			}
			info := WindowInfo{Name: name}
			info.AutomationID, _ = w.AutomationID()
			info.ClassName, _ = w.ClassName()
			if ct, err := w.ControlType(); err == nil {
				info.ControlType = string(ct)
			}
			if pid, err := w.ProcessID(); err == nil {
				info.PID = pid
				info.Process, _ = e.provider.Processes.ProcessName(pid)
				info.Current = current != nil && current.PID == pid
			}
			res.Windows = append(res.Windows, info)
		}
		res.Message = fmt.Sprintf("%d windows", len(res.Windows))
		return nil
	})
}

// WindowTree snapshots a window. With Changes set, the result carries the
// difference from the previous snapshot of the same window.
func (e *Engine) WindowTree(ctx context.Context, req TreeRequest) Result {
	return e.run(ctx, OpWindowTree, func(ctx context.Context, res *Result) error {
		if req.MaxDepth < 0 {
			return invalid(OpWindowTree, "max depth must not be negative")
		}
		defer e.lockFor(req.Window)()
		wm, err := e.resolveWindow(ctx, OpWindowTree, req.Window, res)
		if err != nil {
			return err
		}
		depth := req.MaxDepth
		if depth == 0 {
			depth = e.opts.SnapshotDepth
		}
		tree := snapshot.Build(wm.Element, snapshot.Options{MaxDepth: depth})
		prev, seen := e.history.Swap(historyKey(wm.Element), tree)

		view, ok := model.FilterByText(tree, req.Filter)
		if !ok {
			return &Error{Kind: KindElementNotFound, Op: OpWindowTree, Target: req.Filter,
				Err: fmt.Errorf("no element in %q matches the filter", res.Window)}
		}
		res.Tree = &view

		var text any = view
		switch {
		case req.Changes && seen:
			before, _ := model.FilterByText(prev, req.Filter)
			d := model.DiffSnapshots(before, view)
			res.Diff = &d
			text = d
			if d.Empty() {
				res.Message = fmt.Sprintf("No changes since the previous snapshot (%d unchanged)", d.UnchangedCount)
				break
			}
			res.Message = fmt.Sprintf("%d added, %d removed, %d changed, %d unchanged",
				len(d.Added), len(d.Removed), len(d.Changed), d.UnchangedCount)
		case req.Changes:
			res.Warning = "no previous snapshot of this window, returning the full tree"
			fallthrough
		default:
			res.Message = fmt.Sprintf("Snapshot of %q: %d elements, depth %d", res.Window, view.Count(), view.Depth())
		}
		b, err := json.MarshalIndent(text, "", "  ")
		if err != nil {
			return err
		}
		res.Text = string(b)
		return nil
	})
}

// Click clicks an element.
func (e *Engine) Click(ctx context.Context, req ClickRequest) Result {
	return e.run(ctx, OpClick, func(ctx context.Context, res *Result) error {
		button, err := platform.ParseMouseButton(req.Button)
		if err != nil {
			return invalid(OpClick, "%v", err)
		}
		defer e.lockFor(req.Window)()
		_, em, err := e.resolveTarget(ctx, OpClick, req.Window, req.Element, res)
		if err != nil {
			return err
		}
		count := 1
		if req.Double {
			count = 2
		}
		rep, err := e.dispatcher.Click(ctx, em.Element, button, count)
		res.applyReport(rep)
		if err != nil {
			return wrap(OpClick, req.Element, err)
		}
		res.Message = fmt.Sprintf("Clicked %q via %s", req.Element, rep.Strategy)
		return nil
	})
}

// Write enters text into an element, replacing its content.
func (e *Engine) Write(ctx context.Context, req WriteRequest) Result {
	return e.run(ctx, OpWrite, func(ctx context.Context, res *Result) error {
		defer e.lockFor(req.Window)()
		_, em, err := e.resolveTarget(ctx, OpWrite, req.Window, req.Element, res)
		if err != nil {
			return err
		}
		rep, err := e.dispatcher.Write(ctx, em.Element, req.Text, req.SpecialKeys)
		res.applyReport(rep)
		if err != nil {
			return wrap(OpWrite, req.Element, err)
		}
		res.Message = fmt.Sprintf("Wrote %d characters to %q via %s", len([]rune(req.Text)), req.Element, rep.Strategy)
		return nil
	})
}

// SendKeys sends a key combination to a window, optionally clicking an
// element first.
func (e *Engine) SendKeys(ctx context.Context, req KeysRequest) Result {
	return e.run(ctx, OpSendKeys, func(ctx context.Context, res *Result) error {
		if strings.TrimSpace(req.Keys) == "" {
			return invalid(OpSendKeys, "keys are required")
		}
		defer e.lockFor(req.Window)()
		wm, err := e.resolveWindow(ctx, OpSendKeys, req.Window, res)
		if err != nil {
			return err
		}
		window := wm.Element
		if wm.Step == resolve.StepDesktop {
			window = nil
		}
		var target platform.Element
		if strings.TrimSpace(req.Element) != "" {
			em, err := e.resolveElement(ctx, OpSendKeys, wm.Element, req.Element, res)
			if err != nil {
				return err
			}
			target = em.Element
		}
		rep, err := e.dispatcher.SendKeys(ctx, window, target, req.Keys)
		res.applyReport(rep)
		if err != nil {
			return wrap(OpSendKeys, req.Keys, err)
		}
		res.Message = fmt.Sprintf("Sent %q", req.Keys)
		return nil
	})
}

// Select selects one or more items in a list or combo box.
func (e *Engine) Select(ctx context.Context, req SelectRequest) Result {
	return e.run(ctx, OpSelect, func(ctx context.Context, res *Result) error {
		items := make([]string, 0, len(req.Items))
		for _, it := range req.Items {
			if it = strings.TrimSpace(it); it != "" {
				items = append(items, it)
			}
		}
		if len(items) == 0 {
			return invalid(OpSelect, "at least one item is required")
		}
		defer e.lockFor(req.Window)()
		wm, em, err := e.resolveTarget(ctx, OpSelect, req.Window, req.Element, res)
		if err != nil {
			return err
		}
		// Items of an expanded combo box may live outside the container, so
		// the window is searched as well.
		find := func(ctx context.Context, container platform.Element, item string) (platform.Element, error) {
			el, err := retry.Poll(ctx, e.policy(e.opts.ElementTimeout), func(context.Context) (platform.Element, bool, error) {
				if m, ok := e.elements.FindWith(resolve.ItemTiers, container, item); ok {
					return m.Element, true, nil
				}
				if m, ok := e.elements.FindWith(resolve.ItemTiers, wm.Element, item); ok {
					return m.Element, true, nil
				}
				return nil, false, nil
			})
			if err != nil {
				if ctx.Err() != nil {
					return nil, err
				}
				return nil, &Error{Kind: KindElementNotFound, Op: OpSelect, Target: item, TimedOut: true,
					Err: fmt.Errorf("%w: %q: %w", resolve.ErrElementNotFound, item, err)}
			}
			return el, nil
		}
		rep, err := e.dispatcher.Select(ctx, em.Element, items, find)
		res.applyReport(rep.Report)
		res.Selected = rep.Selected
		if err != nil {
			return wrap(OpSelect, req.Element, err)
		}
		res.Message = fmt.Sprintf("Selected %s in %q via %s", strings.Join(rep.Selected, ", "), req.Element, rep.Strategy)
		return nil
	})
}

// SetCheckbox sets a checkbox to the requested state.
func (e *Engine) SetCheckbox(ctx context.Context, req CheckboxRequest) Result {
	return e.run(ctx, OpSetCheckbox, func(ctx context.Context, res *Result) error {
		desired := interact.ParseDesiredState(req.State)
		defer e.lockFor(req.Window)()
		_, em, err := e.resolveTarget(ctx, OpSetCheckbox, req.Window, req.Element, res)
		if err != nil {
			return err
		}
		rep, err := e.dispatcher.SetCheckbox(ctx, em.Element, desired)
		res.applyReport(rep)
		if err != nil {
			return wrap(OpSetCheckbox, req.Element, err)
		}
		state := "unchecked"
		if desired {
			state = "checked"
		}
		if rep.NoOp {
			res.Message = fmt.Sprintf("Checkbox %q was already %s", req.Element, state)
		} else {
			res.Message = fmt.Sprintf("Checkbox %q is now %s via %s", req.Element, state, rep.Strategy)
		}
		return nil
	})
}

// SelectRadio selects a radio button, looked up inside Group when given.
func (e *Engine) SelectRadio(ctx context.Context, req RadioRequest) Result {
	return e.run(ctx, OpSelectRadio, func(ctx context.Context, res *Result) error {
		if strings.TrimSpace(req.Option) == "" {
			return invalid(OpSelectRadio, "option is required")
		}
		defer e.lockFor(req.Window)()
		wm, err := e.resolveWindow(ctx, OpSelectRadio, req.Window, res)
		if err != nil {
			return err
		}
		scope := wm.Element
		if strings.TrimSpace(req.Group) != "" {
			gm, err := e.resolveElement(ctx, OpSelectRadio, scope, req.Group, res)
			if err != nil {
				return err
			}
			scope = gm.Element
		}
		om, err := e.resolveElement(ctx, OpSelectRadio, scope, req.Option, res)
		if err != nil {
			return err
		}
		rep, err := e.dispatcher.SelectRadio(ctx, om.Element)
		res.applyReport(rep)
		if err != nil {
			return wrap(OpSelectRadio, req.Option, err)
		}
		if rep.NoOp {
			res.Message = fmt.Sprintf("Radio %q was already selected", req.Option)
		} else {
			res.Message = fmt.Sprintf("Selected radio %q via %s", req.Option, rep.Strategy)
		}
		return nil
	})
}

// WaitForElement waits until an element exists in a window.
func (e *Engine) WaitForElement(ctx context.Context, req WaitRequest) Result {
	return e.run(ctx, OpWaitForElement, func(ctx context.Context, res *Result) error {
		field := strings.TrimSpace(req.Element)
		if field == "" {
			return invalid(OpWaitForElement, "element is required")
		}
		timeout := e.waitTimeout(req.Timeout)
		defer e.lockFor(req.Window)()
		start := time.Now()
		type found struct {
			window resolve.WindowMatch
			elem   resolve.ElementMatch
		}
		f, err := retry.Poll(ctx, e.policy(timeout), func(context.Context) (found, bool, error) {
			wm, ok, err := e.windows.Find(req.Window)
			if err != nil || !ok {
				return found{}, false, err
			}
			em, ok := e.elements.Find(wm.Element, field)
			return found{window: wm, elem: em}, ok, nil
		})
		if err != nil {
			return e.waitFailure(ctx, OpWaitForElement, field, err)
		}
		res.Window, res.WindowStep = nameOf(f.window.Element), f.window.Step
		res.Element, res.Tier = nameOf(f.elem.Element), f.elem.Tier
		res.Message = fmt.Sprintf("Element %q appeared after %s", field, time.Since(start).Round(time.Millisecond))
		return nil
	})
}

// WaitForWindow waits until a window exists.
func (e *Engine) WaitForWindow(ctx context.Context, req WaitRequest) Result {
	return e.run(ctx, OpWaitForWindow, func(ctx context.Context, res *Result) error {
		id := strings.TrimSpace(req.Window)
		if id == "" {
			return invalid(OpWaitForWindow, "window is required")
		}
		defer e.lockFor(id)()
		timeout := e.waitTimeout(req.Timeout)
		start := time.Now()
		wm, err := retry.Poll(ctx, e.policy(timeout), func(context.Context) (resolve.WindowMatch, bool, error) {
			return e.windows.Find(id)
		})
		if err != nil {
			return e.waitFailure(ctx, OpWaitForWindow, id, err)
		}
		res.Window, res.WindowStep = nameOf(wm.Element), wm.Step
		res.Message = fmt.Sprintf("Window %q appeared after %s", id, time.Since(start).Round(time.Millisecond))
		return nil
	})
}

// ReadText reads an element's text: its text content, else its value,
// else its name.
func (e *Engine) ReadText(ctx context.Context, req ReadRequest) Result {
	return e.run(ctx, OpReadText, func(ctx context.Context, res *Result) error {
		defer e.lockFor(req.Window)()
		_, em, err := e.resolveTarget(ctx, OpReadText, req.Window, req.Element, res)
		if err != nil {
			return err
		}
		text, err := readText(em.Element)
		if err != nil {
			return wrap(OpReadText, req.Element, err)
		}
		res.Text = text
		res.Message = strconv.Quote(text)
		return nil
	})
}

func readText(el platform.Element) (string, error) {
	if t, ok := el.Text(); ok {
		if s, err := t.Text(); err == nil && s != "" {
			return s, nil
		}
	}
	if v, ok := el.Value(); ok {
		if s, err := v.Value(); err == nil && s != "" {
			return s, nil
		}
	}
	return el.Name()
}

func (e *Engine) waitTimeout(d time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return e.opts.WaitTimeout
}

func (e *Engine) waitFailure(ctx context.Context, op, target string, err error) error {
	if ctx.Err() != nil {
		return err
	}
	kind := KindTimeout
	if !errors.Is(err, retry.ErrTimeout) {
		kind = KindOf(err)
	}
	return &Error{Kind: kind, Op: op, Target: target, TimedOut: errors.Is(err, retry.ErrTimeout), Err: err}
}

func (e *Engine) resolveWindow(ctx context.Context, op, window string, res *Result) (resolve.WindowMatch, error) {
	wm, err := e.windows.Resolve(ctx, window, e.policy(e.opts.WindowTimeout))
	if err != nil {
		label := strings.TrimSpace(window)
		if label == "" {
			label = "current"
		}
		return wm, wrap(op, label, err)
	}
	res.Window, res.WindowStep = nameOf(wm.Element), wm.Step
	return wm, nil
}

func (e *Engine) resolveElement(ctx context.Context, op string, scope platform.Element, field string, res *Result) (resolve.ElementMatch, error) {
	em, err := e.elements.Resolve(ctx, scope, field, e.policy(e.opts.ElementTimeout))
	if err != nil {
		return em, wrap(op, strings.TrimSpace(field), err)
	}
	res.Element, res.Tier = nameOf(em.Element), em.Tier
	return em, nil
}

func (e *Engine) resolveTarget(ctx context.Context, op, window, field string, res *Result) (resolve.WindowMatch, resolve.ElementMatch, error) {
	if strings.TrimSpace(field) == "" {
		return resolve.WindowMatch{}, resolve.ElementMatch{}, invalid(op, "element is required")
	}
	wm, err := e.resolveWindow(ctx, op, window, res)
	if err != nil {
		return wm, resolve.ElementMatch{}, err
	}
	em, err := e.resolveElement(ctx, op, wm.Element, field, res)
	return wm, em, err
}

// historyKey identifies a window across snapshots.
func historyKey(w platform.Element) string {
	ct, _ := w.ControlType()
	name, _ := w.Name()
	id, _ := w.AutomationID()
	pid, _ := w.ProcessID()
	return fmt.Sprintf("%s|%s|%s|%d", ct, name, id, pid)
}
