package model

import "testing"

func TestParseControlType_Known(t *testing.T) {
	tests := []struct {
		input string
		want  ControlType
	}{
		{"Button", ControlButton},
		{"button", ControlButton},
		{"BUTTON", ControlButton},
		{"Edit", ControlEdit},
		{"  edit  ", ControlEdit},
		{"ListItem", ControlListItem},
		{"list item", ControlListItem},
		{"TitleBar", ControlTitleBar},
		{"Pane", ControlPane},
		{"Window", ControlWindow},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseControlType(tt.input)
			if !ok {
				t.Fatalf("ParseControlType(%q) not recognised", tt.input)
			}
			if got != tt.want {
				t.Errorf("ParseControlType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseControlType_Aliases(t *testing.T) {
	tests := []struct {
		input string
		want  ControlType
	}{
		{"Dialog", ControlWindow},
		{"textbox", ControlEdit},
		{"label", ControlText},
		{"Link", ControlHyperlink},
	}
	for _, tt := range tests {
		got, ok := ParseControlType(tt.input)
		if !ok || got != tt.want {
			t.Errorf("ParseControlType(%q) = %q, %v; want %q", tt.input, got, ok, tt.want)
		}
	}
}

func TestParseControlType_Unknown(t *testing.T) {
	for _, s := range []string{"", "Submit", "emailTextBox", "current"} {
		if ct, ok := ParseControlType(s); ok {
			t.Errorf("ParseControlType(%q) = %q, want not recognised", s, ct)
		}
	}
}

func TestContainsType(t *testing.T) {
	if !ContainsType(EditableTypes, ControlEdit) {
		t.Error("Edit should be editable")
	}
	if ContainsType(EditableTypes, ControlText) {
		t.Error("Text should not be editable")
	}
	if !ContainsType(InteractiveTypes, ControlCheckBox) {
		t.Error("CheckBox should be interactive")
	}
	if ContainsType(InteractiveTypes, ControlPane) {
		t.Error("Pane should not be interactive")
	}
}
