package virtual

import (
	"errors"
	"fmt"

	"github.com/mj1618/desktop-mcp/internal/model"
	"github.com/mj1618/desktop-mcp/internal/platform"
)

type element struct {
	d *Desktop
	n *node
}

// read runs fn under the desktop lock, failing once the node is gone.
func (e *element) read(fn func(n *node) error) error {
	e.d.mu.Lock()
	defer e.d.mu.Unlock()
	if e.n.removed {
		return platform.ErrElementGone
	}
	return fn(e.n)
}

func (e *element) Name() (string, error) {
	var v string
	err := e.read(func(n *node) error {
		if n.faults.NameError {
			return fmt.Errorf("%w: name", platform.ErrNotSupported)
		}
		v = n.name
		return nil
	})
	return v, err
}

func (e *element) AutomationID() (string, error) {
	var v string
	err := e.read(func(n *node) error { v = n.automationID; return nil })
	return v, err
}

func (e *element) ClassName() (string, error) {
	var v string
	err := e.read(func(n *node) error { v = n.className; return nil })
	return v, err
}

func (e *element) ControlType() (model.ControlType, error) {
	var v model.ControlType
	err := e.read(func(n *node) error { v = n.controlType; return nil })
	return v, err
}

func (e *element) IsOffscreen() (bool, error) {
	var v bool
	err := e.read(func(n *node) error { v = n.offscreen || !e.d.visible(n); return nil })
	return v, err
}

func (e *element) ProcessID() (int, error) {
	var v int
	err := e.read(func(n *node) error { v = n.pid; return nil })
	return v, err
}

func (e *element) BoundingRect() (platform.Bounds, error) {
	var v platform.Bounds
	err := e.read(func(n *node) error {
		if !n.offscreen {
			v = n.bounds
		}
		return nil
	})
	return v, err
}

func (e *element) Children() ([]platform.Element, error) {
	var v []platform.Element
	err := e.read(func(n *node) error {
		if n.faults.ChildrenError {
			return errors.New("child enumeration failed")
		}
		v = e.d.wrap(e.d.visibleChildren(n))
		return nil
	})
	return v, err
}

func (e *element) Focus() error {
	return e.read(func(n *node) error {
		e.d.focused = n
		e.d.record("focus", n, "")
		return nil
	})
}

func (e *element) Invoker() (platform.Invoker, bool) {
	return e, e.has(func(n *node) bool { return n.invokable })
}

func (e *element) Value() (platform.ValueAccessor, bool) {
	return valueAccessor{e}, e.has(func(n *node) bool { return n.value != nil })
}

func (e *element) Toggle() (platform.Toggler, bool) {
	return toggler{e}, e.has(func(n *node) bool { return n.toggle != nil })
}

func (e *element) Checkable() (platform.Checkable, bool) {
	return checkable{e}, e.has(func(n *node) bool { return n.checked != nil })
}

func (e *element) SelectionItem() (platform.SelectionItem, bool) {
	return selectionItem{e}, e.has(func(n *node) bool { return n.selectable })
}

func (e *element) ExpandCollapse() (platform.ExpandCollapser, bool) {
	return expander{e}, e.has(func(n *node) bool { return n.expandable })
}

func (e *element) ScrollItem() (platform.ScrollItem, bool) {
	return scroller{e}, e.has(func(n *node) bool { return n.scrollable })
}

func (e *element) Text() (platform.TextReader, bool) {
	return textReader{e}, e.has(func(n *node) bool { return n.text != nil })
}

func (e *element) has(pred func(*node) bool) bool {
	e.d.mu.Lock()
	defer e.d.mu.Unlock()
	return !e.n.removed && pred(e.n)
}

// Invoke implements platform.Invoker.
func (e *element) Invoke() error {
	return e.read(func(n *node) error { return e.d.invoke(n) })
}

func (d *Desktop) invoke(n *node) error {
	if n.faults.InvokeError != "" {
		return errors.New(n.faults.InvokeError)
	}
	d.record("invoke", n, "")
	d.activate(n)
	return nil
}

// activate applies the effect of pressing n, however it was pressed.
func (d *Desktop) activate(n *node) {
	for _, id := range n.reveals {
		if target := findNode(d.root, func(c *node) bool { return c.automationID == id }); target != nil {
			target.hidden = false
			target.born = d.now()
		}
	}
}

type valueAccessor struct{ e *element }

func (v valueAccessor) Value() (string, error) {
	var s string
	err := v.e.read(func(n *node) error {
		if n.faults.ValueReadBack != nil {
			s = *n.faults.ValueReadBack
			return nil
		}
		if n.value != nil {
			s = *n.value
		}
		return nil
	})
	return s, err
}

func (v valueAccessor) SetValue(s string) error {
	return v.e.read(func(n *node) error { return v.e.d.setValue(n, s) })
}

func (v valueAccessor) IsReadOnly() (bool, error) {
	var ro bool
	err := v.e.read(func(n *node) error { ro = n.readOnly; return nil })
	return ro, err
}

func (d *Desktop) setValue(n *node, s string) error {
	if n.faults.SetValueError != "" {
		return errors.New(n.faults.SetValueError)
	}
	if n.readOnly {
		return fmt.Errorf("%s is read-only", n.label())
	}
	d.record("set_value", n, s)
	if n.faults.IgnoreSetValue {
		return nil
	}
	n.value = &s
	return nil
}

type toggler struct{ e *element }

func (t toggler) State() (platform.ToggleState, error) {
	var st platform.ToggleState
	err := t.e.read(func(n *node) error {
		if n.toggle != nil {
			st = *n.toggle
		}
		return nil
	})
	return st, err
}

func (t toggler) Toggle() error {
	return t.e.read(func(n *node) error { return t.e.d.cycleToggle(n) })
}

func (d *Desktop) cycleToggle(n *node) error {
	if n.faults.ToggleError != "" {
		return errors.New(n.faults.ToggleError)
	}
	d.record("toggle", n, "")
	if n.faults.IgnoreToggle || n.toggle == nil {
		return nil
	}
	next := platform.ToggleOn
	if *n.toggle != platform.ToggleOff {
		next = platform.ToggleOff
	}
	n.toggle = &next
	return nil
}

type checkable struct{ e *element }

func (c checkable) IsChecked() (bool, error) {
	var v bool
	err := c.e.read(func(n *node) error {
		if n.checked != nil {
			v = *n.checked
		}
		return nil
	})
	return v, err
}

func (c checkable) SetChecked(checked bool) error {
	return c.e.read(func(n *node) error {
		if n.faults.ToggleError != "" {
			return errors.New(n.faults.ToggleError)
		}
		c.e.d.record("set_checked", n, fmt.Sprint(checked))
		if !n.faults.IgnoreToggle {
			n.checked = &checked
		}
		return nil
	})
}

type selectionItem struct{ e *element }

func (s selectionItem) Select() error {
	return s.e.read(func(n *node) error { return s.e.d.selectNode(n, false) })
}

func (s selectionItem) AddToSelection() error {
	return s.e.read(func(n *node) error { return s.e.d.selectNode(n, true) })
}

func (s selectionItem) IsSelected() (bool, error) {
	var v bool
	err := s.e.read(func(n *node) error { v = n.selected; return nil })
	return v, err
}

// selectNode marks n selected. A plain select clears its siblings; when n
// sits inside a combo box with a value, the combo box takes n's name.
func (d *Desktop) selectNode(n *node, add bool) error {
	if n.faults.SelectError != "" {
		return errors.New(n.faults.SelectError)
	}
	kind := "select"
	if add {
		kind = "add_to_selection"
	}
	d.record(kind, n, "")
	if !add && n.parent != nil {
		for _, sib := range n.parent.children {
			sib.selected = false
		}
	}
	n.selected = true
	for p := n.parent; p != nil; p = p.parent {
		if p.controlType == model.ControlComboBox {
			if p.value != nil && !add {
				name := n.name
				p.value = &name
			}
			if !add {
				p.expanded = false
			}
			break
		}
	}
	return nil
}

type expander struct{ e *element }

func (x expander) ExpandState() (platform.ExpandState, error) {
	var st platform.ExpandState
	err := x.e.read(func(n *node) error {
		st = platform.Collapsed
		if n.expanded {
			st = platform.Expanded
		}
		return nil
	})
	return st, err
}

func (x expander) Expand() error {
	return x.e.read(func(n *node) error {
		x.e.d.record("expand", n, "")
		n.expanded = true
		return nil
	})
}

func (x expander) Collapse() error {
	return x.e.read(func(n *node) error {
		x.e.d.record("collapse", n, "")
		n.expanded = false
		return nil
	})
}

type scroller struct{ e *element }

func (s scroller) ScrollIntoView() error {
	return s.e.read(func(n *node) error {
		s.e.d.record("scroll", n, "")
		n.offscreen = false
		return nil
	})
}

type textReader struct{ e *element }

func (t textReader) Text() (string, error) {
	var s string
	err := t.e.read(func(n *node) error {
		if n.text != nil {
			s = *n.text
		}
		return nil
	})
	return s, err
}
