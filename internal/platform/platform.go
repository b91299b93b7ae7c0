package platform

import (
	"context"
	"time"

	"github.com/mj1618/desktop-mcp/internal/model"
)

// Element is a live handle into the accessibility tree. Handles are only
// valid for the duration of one operation; any read may fail with
// ErrElementGone once the underlying control disappears.
type Element interface {
	Name() (string, error)
	AutomationID() (string, error)
	ClassName() (string, error)
	ControlType() (model.ControlType, error)
	IsOffscreen() (bool, error)
	ProcessID() (int, error)
	BoundingRect() (Bounds, error)
	Children() ([]Element, error)

	// Focus moves keyboard focus to the element.
	Focus() error

	Invoker() (Invoker, bool)
	Value() (ValueAccessor, bool)
	Toggle() (Toggler, bool)
	Checkable() (Checkable, bool)
	SelectionItem() (SelectionItem, bool)
	ExpandCollapse() (ExpandCollapser, bool)
	ScrollItem() (ScrollItem, bool)
	Text() (TextReader, bool)
}

// DescendantFinder is implemented by elements whose provider can run a
// descendant search natively (for example a UIA FindFirst with a property
// condition). FindFirst falls back to a depth-first walk otherwise.
type DescendantFinder interface {
	FindFirstDescendant(cond Condition) (Element, error)
}

// Desktop is the root of the accessibility tree.
type Desktop interface {
	// Root returns the desktop element itself.
	Root() (Element, error)

	// TopLevelWindows returns the immediate children of the desktop in
	// enumeration (z-) order.
	TopLevelWindows() ([]Element, error)
}

// Inputter injects synthetic mouse and keyboard input. It is a process-wide
// exclusive resource; callers serialise foreground work around it.
type Inputter interface {
	Click(x, y int, button MouseButton, count int) error

	// SendKeys injects a key sequence in token syntax: "+" shift, "^" ctrl,
	// "%" alt, and braced names such as "{ENTER}" or "{F5}".
	SendKeys(tokens string) error

	// TypeText injects literal characters.
	TypeText(text string) error

	// WaitForInputIdle blocks until injected input has been processed or the
	// timeout elapses.
	WaitForInputIdle(timeout time.Duration) error
}

// WindowManager brings windows to the foreground.
type WindowManager interface {
	// BringToForeground activates the top-level window that owns el.
	BringToForeground(el Element) error
}

// Process is a launched application process.
type Process struct {
	PID  int
	Name string
	Path string
}

// ContextTyper is implemented by inputters whose TypeText can block and
// should stop when ctx is done.
type ContextTyper interface {
	TypeTextContext(ctx context.Context, text string) error
}

// ProcessManager launches, enumerates and terminates processes.
type ProcessManager interface {
	Launch(ctx context.Context, path string, args []string) (Process, error)
	Processes() ([]Process, error)
	ProcessName(pid int) (string, error)
	IsRunning(pid int) bool

	// Close asks the process to exit and force-kills it if it is still
	// running after grace.
	Close(ctx context.Context, pid int, grace time.Duration) error
}
