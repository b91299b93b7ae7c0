package virtual

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Fixture describes a virtual desktop: the windows present at start and the
// applications that can be launched.
type Fixture struct {
	Windows []ElementSpec `yaml:"windows"`
	Apps    []AppSpec     `yaml:"apps"`
}

// AppSpec is an application that Launch can start.
type AppSpec struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
	PID  int    `yaml:"pid,omitempty"`
	// WindowDelay postpones the appearance of the app's windows after launch.
	WindowDelay time.Duration `yaml:"windowDelay,omitempty"`
	// IgnoreClose makes the process ignore graceful close requests so that
	// Close has to fall back to a kill.
	IgnoreClose bool          `yaml:"ignoreClose,omitempty"`
	Windows     []ElementSpec `yaml:"windows"`
}

// ElementSpec describes one element and, through Children, its subtree.
// Capabilities are enabled by setting the corresponding field.
type ElementSpec struct {
	ControlType  string `yaml:"controlType"`
	Name         string `yaml:"name,omitempty"`
	AutomationID string `yaml:"automationId,omitempty"`
	ClassName    string `yaml:"className,omitempty"`

	// Process and PID apply to top-level windows; descendants inherit them.
	Process string `yaml:"process,omitempty"`
	PID     int    `yaml:"pid,omitempty"`

	// Bounds is x, y, width, height. Elements without bounds are laid out
	// inside their parent.
	Bounds      []int         `yaml:"bounds,omitempty"`
	Offscreen   bool          `yaml:"offscreen,omitempty"`
	Hidden      bool          `yaml:"hidden,omitempty"`
	AppearAfter time.Duration `yaml:"appearAfter,omitempty"`

	Invokable  bool    `yaml:"invokable,omitempty"`
	Value      *string `yaml:"value,omitempty"`
	ReadOnly   bool    `yaml:"readOnly,omitempty"`
	Toggle     string  `yaml:"toggle,omitempty"`
	Checked    *bool   `yaml:"checked,omitempty"`
	Selectable bool    `yaml:"selectable,omitempty"`
	Selected   bool    `yaml:"selected,omitempty"`
	Expandable bool    `yaml:"expandable,omitempty"`
	Expanded   bool    `yaml:"expanded,omitempty"`
	Scrollable bool    `yaml:"scrollable,omitempty"`
	Text       *string `yaml:"text,omitempty"`

	// Reveals lists automation ids of hidden elements shown when this
	// element is invoked.
	Reveals []string `yaml:"reveals,omitempty"`

	Faults Faults `yaml:"faults,omitempty"`

	Children []ElementSpec `yaml:"children,omitempty"`
}

// Faults injects provider misbehaviour.
type Faults struct {
	NameError      bool    `yaml:"nameError,omitempty"`
	ChildrenError  bool    `yaml:"childrenError,omitempty"`
	InvokeError    string  `yaml:"invokeError,omitempty"`
	SetValueError  string  `yaml:"setValueError,omitempty"`
	IgnoreSetValue bool    `yaml:"ignoreSetValue,omitempty"`
	ValueReadBack  *string `yaml:"valueReadBack,omitempty"`
	ToggleError    string  `yaml:"toggleError,omitempty"`
	IgnoreToggle   bool    `yaml:"ignoreToggle,omitempty"`
	SelectError    string  `yaml:"selectError,omitempty"`
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(r io.Reader) (Fixture, error) {
	var f Fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return Fixture{}, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return f, nil
}

// LoadFile reads a fixture file and builds a desktop from it.
func LoadFile(path string) (*Desktop, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixture: %w", err)
	}
	defer file.Close()
	f, err := ParseFixture(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return New(f)
}

// FromYAML builds a desktop from an inline YAML fixture.
func FromYAML(doc string) (*Desktop, error) {
	f, err := ParseFixture(strings.NewReader(doc))
	if err != nil {
		return nil, err
	}
	return New(f)
}
