package model

import "testing"

func TestFlattenNode_Single(t *testing.T) {
	result := FlattenNode(Node{ControlType: "Window", Name: "Main"})
	if len(result) != 1 {
		t.Fatalf("expected 1 flat node, got %d", len(result))
	}
	if result[0].Path != "Window" || result[0].Depth != 0 {
		t.Errorf("unexpected root entry %+v", result[0])
	}
}

func TestFlattenNode_NestedPath(t *testing.T) {
	tree := Node{
		ControlType: "Window", Name: "Main",
		Children: []Node{
			{
				ControlType: "ToolBar", Name: "Nav",
				Children: []Node{
					{ControlType: "Button", Name: "Back"},
				},
			},
			{ControlType: "Edit", AutomationID: "address"},
		},
	}
	result := FlattenNode(tree)
	if len(result) != 4 {
		t.Fatalf("expected 4 flat nodes, got %d", len(result))
	}
	wantPaths := []string{"Window", "Window > ToolBar", "Window > ToolBar > Button", "Window > Edit"}
	for i, want := range wantPaths {
		if result[i].Path != want {
			t.Errorf("result[%d].Path = %q, want %q", i, result[i].Path, want)
		}
	}
	if result[2].Depth != 2 {
		t.Errorf("Back button depth = %d, want 2", result[2].Depth)
	}
	if result[3].AutomationID != "address" {
		t.Errorf("expected automation id to be preserved, got %q", result[3].AutomationID)
	}
}

func TestNode_DepthAndCount(t *testing.T) {
	tree := Node{ControlType: "Window", Children: []Node{
		{ControlType: "Pane", Name: "a", Children: []Node{{ControlType: "Button"}}},
		{ControlType: "Text"},
	}}
	if tree.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", tree.Depth())
	}
	if tree.Count() != 4 {
		t.Errorf("Count() = %d, want 4", tree.Count())
	}
}
