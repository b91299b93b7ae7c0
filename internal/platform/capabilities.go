package platform

// Invoker triggers an element's default action (button press, menu command).
type Invoker interface {
	Invoke() error
}

// ValueAccessor reads and writes an element's string value.
type ValueAccessor interface {
	Value() (string, error)
	SetValue(v string) error
	IsReadOnly() (bool, error)
}

// ToggleState is the state reported by a Toggler.
type ToggleState int

const (
	ToggleOff ToggleState = iota
	ToggleOn
	ToggleIndeterminate
)

func (s ToggleState) String() string {
	switch s {
	case ToggleOn:
		return "on"
	case ToggleIndeterminate:
		return "indeterminate"
	default:
		return "off"
	}
}

// Toggler cycles an element through its toggle states.
type Toggler interface {
	State() (ToggleState, error)
	Toggle() error
}

// Checkable is a boolean check state that can be set directly, without
// cycling through intermediate states.
type Checkable interface {
	IsChecked() (bool, error)
	SetChecked(checked bool) error
}

// SelectionItem is an element that can be selected inside a container.
type SelectionItem interface {
	Select() error
	AddToSelection() error
	IsSelected() (bool, error)
}

// ExpandState is the state reported by an ExpandCollapser.
type ExpandState int

const (
	Collapsed ExpandState = iota
	Expanded
	PartiallyExpanded
	LeafNode
)

// ExpandCollapser shows or hides an element's children (combo boxes, tree
// items, menus).
type ExpandCollapser interface {
	ExpandState() (ExpandState, error)
	Expand() error
	Collapse() error
}

// ScrollItem scrolls its container until the element is visible.
type ScrollItem interface {
	ScrollIntoView() error
}

// TextReader extracts the document text of an element.
type TextReader interface {
	Text() (string, error)
}
