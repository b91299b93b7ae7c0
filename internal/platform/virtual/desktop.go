// Package virtual implements an in-memory accessibility tree, input injector
// and process manager driven by a YAML fixture. It backs the test suites and
// --fixture runs of the binary.
package virtual

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mj1618/desktop-mcp/internal/model"
	"github.com/mj1618/desktop-mcp/internal/platform"
)

var screen = platform.Bounds{X: 0, Y: 0, Width: 1920, Height: 1080}

type node struct {
	parent   *node
	children []*node

	controlType  model.ControlType
	name         string
	automationID string
	className    string
	pid          int
	process      string
	bounds       platform.Bounds
	offscreen    bool
	hidden       bool
	born         time.Time
	appearAfter  time.Duration
	removed      bool

	invokable  bool
	value      *string
	readOnly   bool
	toggle     *platform.ToggleState
	checked    *bool
	selectable bool
	selected   bool
	expandable bool
	expanded   bool
	scrollable bool
	text       *string
	reveals    []string
	faults     Faults
}

func (n *node) label() string {
	if n.automationID != "" {
		return n.automationID
	}
	if n.name != "" {
		return n.name
	}
	return string(n.controlType)
}

// Event records one side effect performed on the virtual desktop.
type Event struct {
	Kind   string
	Target string
	Detail string
}

func (e Event) String() string {
	s := e.Kind + " " + e.Target
	if e.Detail != "" {
		s += " " + e.Detail
	}
	return s
}

// Desktop is an in-memory accessibility tree. All methods are safe for
// concurrent use.
type Desktop struct {
	mu      sync.Mutex
	root    *node
	focused *node
	events  []Event
	now     func() time.Time

	apps    []AppSpec
	procs   map[int]*process
	nextPID int
}

// New builds a desktop from a fixture.
func New(f Fixture) (*Desktop, error) {
	d := &Desktop{
		now:     time.Now,
		apps:    f.Apps,
		procs:   make(map[int]*process),
		nextPID: 1000,
	}
	d.root = &node{
		controlType: model.ControlPane,
		name:        "Desktop",
		className:   "#32769",
		bounds:      screen,
		born:        d.now(),
	}
	for i, w := range f.Windows {
		win, err := d.build(w, d.root, i, len(f.Windows), w.PID, w.Process)
		if err != nil {
			return nil, err
		}
		d.root.children = append(d.root.children, win)
		if w.PID != 0 {
			if _, ok := d.procs[w.PID]; !ok {
				d.procs[w.PID] = &process{pid: w.PID, name: w.Process, path: w.Process}
			}
		}
	}
	return d, nil
}

// Provider bundles the desktop as a platform provider.
func (d *Desktop) Provider() *platform.Provider {
	return &platform.Provider{
		Desktop:       d,
		Inputter:      d,
		WindowManager: d,
		Processes:     d,
	}
}

func (d *Desktop) build(spec ElementSpec, parent *node, index, siblings, pid int, proc string) (*node, error) {
	ct := model.ControlPane
	if spec.ControlType != "" {
		parsed, ok := model.ParseControlType(spec.ControlType)
		if !ok {
			return nil, fmt.Errorf("unknown control type %q", spec.ControlType)
		}
		ct = parsed
	}
	n := &node{
		parent:       parent,
		controlType:  ct,
		name:         spec.Name,
		automationID: spec.AutomationID,
		className:    spec.ClassName,
		pid:          pid,
		process:      proc,
		offscreen:    spec.Offscreen,
		hidden:       spec.Hidden,
		born:         d.now(),
		appearAfter:  spec.AppearAfter,
		invokable:    spec.Invokable,
		value:        spec.Value,
		readOnly:     spec.ReadOnly,
		checked:      spec.Checked,
		selectable:   spec.Selectable,
		selected:     spec.Selected,
		expandable:   spec.Expandable,
		expanded:     spec.Expanded,
		scrollable:   spec.Scrollable,
		text:         spec.Text,
		reveals:      spec.Reveals,
		faults:       spec.Faults,
	}
	if spec.Toggle != "" {
		st, err := parseToggle(spec.Toggle)
		if err != nil {
			return nil, err
		}
		n.toggle = &st
	}
	switch len(spec.Bounds) {
	case 0:
		n.bounds = layout(parent.bounds, index, siblings, parent == nil || parent.parent == nil)
	case 4:
		n.bounds = platform.Bounds{X: spec.Bounds[0], Y: spec.Bounds[1], Width: spec.Bounds[2], Height: spec.Bounds[3]}
	default:
		return nil, fmt.Errorf("%s: bounds must have 4 values, got %d", n.label(), len(spec.Bounds))
	}
	for i, c := range spec.Children {
		child, err := d.build(c, n, i, len(spec.Children), pid, proc)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	return n, nil
}

// layout places an element without explicit bounds. Top-level windows are
// cascaded across the screen; other elements are stacked in rows inside
// their parent's client area.
func layout(parent platform.Bounds, index, siblings int, topLevel bool) platform.Bounds {
	if topLevel {
		return platform.Bounds{X: 40 * index, Y: 40 * index, Width: 800, Height: 600}
	}
	const titleBar, margin = 24, 4
	h := (parent.Height - titleBar) / max(siblings, 1)
	return platform.Bounds{
		X:      parent.X + margin,
		Y:      parent.Y + titleBar + index*h,
		Width:  parent.Width - 2*margin,
		Height: h,
	}
}

func parseToggle(s string) (platform.ToggleState, error) {
	switch strings.ToLower(s) {
	case "on":
		return platform.ToggleOn, nil
	case "off":
		return platform.ToggleOff, nil
	case "indeterminate":
		return platform.ToggleIndeterminate, nil
	}
	return platform.ToggleOff, fmt.Errorf("unknown toggle state %q", s)
}

// visible reports whether n is currently part of the tree. Callers hold d.mu.
func (d *Desktop) visible(n *node) bool {
	if n.removed || n.hidden {
		return false
	}
	return !d.now().Before(n.born.Add(n.appearAfter))
}

func (d *Desktop) visibleChildren(n *node) []*node {
	var out []*node
	for _, c := range n.children {
		if d.visible(c) {
			out = append(out, c)
		}
	}
	return out
}

func (d *Desktop) record(kind string, n *node, detail string) {
	target := ""
	if n != nil {
		target = n.label()
	}
	d.events = append(d.events, Event{Kind: kind, Target: target, Detail: detail})
}

// Events returns a copy of the side effects recorded so far.
func (d *Desktop) Events() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Event(nil), d.events...)
}

// EventKinds returns "kind target" strings for events of the given kinds, or
// all events when no kinds are given.
func (d *Desktop) EventKinds(kinds ...string) []string {
	var out []string
	for _, e := range d.Events() {
		if len(kinds) == 0 || contains(kinds, e.Kind) {
			out = append(out, e.Kind+" "+e.Target)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Root implements platform.Desktop.
func (d *Desktop) Root() (platform.Element, error) {
	return &element{d: d, n: d.root}, nil
}

// TopLevelWindows implements platform.Desktop.
func (d *Desktop) TopLevelWindows() ([]platform.Element, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.wrap(d.visibleChildren(d.root)), nil
}

func (d *Desktop) wrap(nodes []*node) []platform.Element {
	out := make([]platform.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &element{d: d, n: n})
	}
	return out
}

// Lookup returns the first element in the tree with the given automation id,
// including hidden ones. It is meant for test assertions.
func (d *Desktop) Lookup(automationID string) platform.Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n := findNode(d.root, func(n *node) bool { return n.automationID == automationID }); n != nil {
		return &element{d: d, n: n}
	}
	return nil
}

func findNode(n *node, match func(*node) bool) *node {
	for _, c := range n.children {
		if c.removed {
			continue
		}
		if match(c) {
			return c
		}
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func topLevel(n *node) *node {
	for n.parent != nil && n.parent.parent != nil {
		n = n.parent
	}
	return n
}

func markRemoved(n *node) {
	n.removed = true
	for _, c := range n.children {
		markRemoved(c)
	}
}
