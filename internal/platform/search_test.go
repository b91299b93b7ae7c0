package platform

import (
	"errors"
	"testing"

	"github.com/mj1618/desktop-mcp/internal/model"
)

type stubElement struct {
	name, id, class string
	ct              model.ControlType
	children        []Element
	childErr        error
}

func (s *stubElement) Name() (string, error)                   { return s.name, nil }
func (s *stubElement) AutomationID() (string, error)           { return s.id, nil }
func (s *stubElement) ClassName() (string, error)              { return s.class, nil }
func (s *stubElement) ControlType() (model.ControlType, error) { return s.ct, nil }
func (s *stubElement) IsOffscreen() (bool, error)              { return false, nil }
func (s *stubElement) ProcessID() (int, error)                 { return 1, nil }
func (s *stubElement) BoundingRect() (Bounds, error)           { return Bounds{}, nil }
func (s *stubElement) Children() ([]Element, error)            { return s.children, s.childErr }
func (s *stubElement) Focus() error                            { return nil }
func (s *stubElement) Invoker() (Invoker, bool)                { return nil, false }
func (s *stubElement) Value() (ValueAccessor, bool)            { return nil, false }
func (s *stubElement) Toggle() (Toggler, bool)                 { return nil, false }
func (s *stubElement) Checkable() (Checkable, bool)            { return nil, false }
func (s *stubElement) SelectionItem() (SelectionItem, bool)    { return nil, false }
func (s *stubElement) ExpandCollapse() (ExpandCollapser, bool) { return nil, false }
func (s *stubElement) ScrollItem() (ScrollItem, bool)          { return nil, false }
func (s *stubElement) Text() (TextReader, bool)                { return nil, false }

func stubTree() *stubElement {
	return &stubElement{name: "Login", ct: model.ControlWindow, children: []Element{
		&stubElement{ct: model.ControlPane, children: []Element{
			&stubElement{name: "Email", ct: model.ControlText},
			&stubElement{name: "Email", id: "emailBox", ct: model.ControlEdit, class: "TextBox"},
		}},
		&stubElement{name: "Submit", id: "submitBtn", ct: model.ControlButton, class: "Button"},
	}}
}

func TestFindFirst_PreOrder(t *testing.T) {
	root := stubTree()

	el, err := FindFirst(root, ByName("Email"))
	if err != nil {
		t.Fatal(err)
	}
	if ct, _ := el.ControlType(); ct != model.ControlText {
		t.Errorf("expected first Email in pre-order to be Text, got %s", ct)
	}

	el, _ = FindFirst(root, And(ByName("Email"), ByControlTypes(model.EditableTypes)))
	if id, _ := el.AutomationID(); id != "emailBox" {
		t.Errorf("expected emailBox, got %q", id)
	}
}

func TestFindFirst_ExcludesScope(t *testing.T) {
	root := stubTree()
	el, err := FindFirst(root, ByName("Login"))
	if err != nil {
		t.Fatal(err)
	}
	if el != nil {
		t.Error("scope itself must not match")
	}
}

func TestFindFirst_NoMatch(t *testing.T) {
	el, err := FindFirst(stubTree(), ByClassName("Missing"))
	if err != nil || el != nil {
		t.Errorf("expected (nil, nil), got (%v, %v)", el, err)
	}
}

func TestFindFirst_SkipsBrokenSubtree(t *testing.T) {
	root := &stubElement{children: []Element{
		&stubElement{childErr: ErrElementGone},
		&stubElement{name: "OK", ct: model.ControlButton},
	}}
	el, err := FindFirst(root, ByControlType(model.ControlButton))
	if err != nil {
		t.Fatal(err)
	}
	if el == nil {
		t.Fatal("expected match after broken sibling")
	}

	_, err = FindFirst(&stubElement{childErr: ErrElementGone}, ByName("x"))
	if !errors.Is(err, ErrElementGone) {
		t.Errorf("expected ErrElementGone from scope, got %v", err)
	}
}
