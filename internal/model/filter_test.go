package model

import "testing"

func TestPruneEmptyPane(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"anonymous pane", Node{ControlType: "Pane"}, true},
		{"named pane", Node{ControlType: "Pane", Name: "Content"}, false},
		{"pane with id", Node{ControlType: "Pane", AutomationID: "root"}, false},
		{"pane with class only", Node{ControlType: "Pane", ClassName: "Chrome_WidgetWin_1"}, true},
		{"anonymous group", Node{ControlType: "Group"}, false},
		{"anonymous button", Node{ControlType: "Button"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PruneEmptyPane(tt.node); got != tt.want {
				t.Errorf("PruneEmptyPane(%+v) = %v, want %v", tt.node, got, tt.want)
			}
		})
	}
}

func TestFilterByText_KeepsAncestors(t *testing.T) {
	tree := Node{
		ControlType: "Window", Name: "Login",
		Children: []Node{
			{ControlType: "Pane", Name: "Form", Children: []Node{
				{ControlType: "Edit", AutomationID: "emailTextBox"},
				{ControlType: "Button", Name: "Submit"},
			}},
			{ControlType: "StatusBar", Name: "Ready"},
		},
	}
	got, ok := FilterByText(tree, "EMAIL")
	if !ok {
		t.Fatal("expected a match")
	}
	if got.Count() != 3 {
		t.Fatalf("expected window > pane > edit (3 nodes), got %d", got.Count())
	}
	if got.Children[0].Children[0].AutomationID != "emailTextBox" {
		t.Errorf("unexpected leaf %+v", got.Children[0].Children[0])
	}
}

func TestFilterByText_NoMatch(t *testing.T) {
	tree := Node{ControlType: "Window", Name: "Login"}
	if _, ok := FilterByText(tree, "nothing"); ok {
		t.Error("expected no match")
	}
	if got, ok := FilterByText(tree, ""); !ok || got.Name != "Login" {
		t.Error("empty filter should return the tree unchanged")
	}
}
