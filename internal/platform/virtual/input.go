package virtual

import (
	"fmt"
	"strings"
	"time"

	"github.com/mj1618/desktop-mcp/internal/platform"
)

// caretReset selects from the start of the field to the end and deletes it.
const caretReset = "{HOME}+{END}{DEL}"

// Click implements platform.Inputter. The deepest visible on-screen element
// under the point, searched front window first, receives the click.
func (d *Desktop) Click(x, y int, button platform.MouseButton, count int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	target := d.hitTest(d.root, x, y)
	detail := fmt.Sprintf("%s x%d at %d,%d", button, count, x, y)
	if target == nil {
		d.record("click", d.root, detail)
		return nil
	}
	d.record("click", target, detail)
	if button != platform.MouseLeft {
		return nil
	}

	d.focused = target
	switch {
	case target.invokable:
		d.activate(target)
	case target.checked != nil:
		v := !*target.checked
		target.checked = &v
	case target.toggle != nil:
		return d.cycleToggle(target)
	case target.selectable:
		return d.selectNode(target, false)
	case target.expandable:
		target.expanded = !target.expanded
	}
	return nil
}

func (d *Desktop) hitTest(n *node, x, y int) *node {
	for _, c := range d.visibleChildren(n) {
		if c.offscreen || !contains2D(c.bounds, x, y) {
			continue
		}
		if deeper := d.hitTest(c, x, y); deeper != nil {
			return deeper
		}
		return c
	}
	return nil
}

func contains2D(b platform.Bounds, x, y int) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}

// SendKeys implements platform.Inputter. The caret reset sequence clears
// the focused field; everything else is only recorded.
func (d *Desktop) SendKeys(tokens string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("send_keys", d.focused, tokens)
	if f := d.focused; f != nil && f.value != nil && !f.readOnly && strings.Contains(tokens, caretReset) {
		empty := ""
		f.value = &empty
	}
	return nil
}

// TypeText implements platform.Inputter by appending to the focused field.
func (d *Desktop) TypeText(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record("type", d.focused, text)
	f := d.focused
	if f == nil || f.removed || f.value == nil || f.readOnly {
		return nil
	}
	v := *f.value + text
	f.value = &v
	return nil
}

// WaitForInputIdle implements platform.Inputter.
func (d *Desktop) WaitForInputIdle(time.Duration) error {
	return nil
}

// BringToForeground implements platform.WindowManager by moving the owning
// top-level window to the front of the z-order.
func (d *Desktop) BringToForeground(el platform.Element) error {
	ve, ok := el.(*element)
	if !ok {
		return fmt.Errorf("element does not belong to the virtual desktop")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if ve.n.removed {
		return platform.ErrElementGone
	}
	if ve.n == d.root {
		return nil
	}
	win := topLevel(ve.n)
	d.record("foreground", win, "")
	windows := []*node{win}
	for _, w := range d.root.children {
		if w != win {
			windows = append(windows, w)
		}
	}
	d.root.children = windows
	return nil
}

// Foreground returns the front-most visible top-level window.
func (d *Desktop) Foreground() platform.Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	if ws := d.visibleChildren(d.root); len(ws) > 0 {
		return &element{d: d, n: ws[0]}
	}
	return nil
}
