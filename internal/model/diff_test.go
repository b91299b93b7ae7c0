package model

import "testing"

func loginTree() Node {
	return Node{
		ControlType: "Window", Name: "Login",
		Children: []Node{
			{ControlType: "Edit", AutomationID: "user", Name: "User name"},
			{ControlType: "Button", Name: "Submit"},
			{ControlType: "Text", Name: "Ready"},
		},
	}
}

func TestDiffSnapshots_NoChanges(t *testing.T) {
	d := DiffSnapshots(loginTree(), loginTree())
	if !d.Empty() {
		t.Errorf("expected no changes, got %+v", d)
	}
	if d.UnchangedCount != 4 {
		t.Errorf("UnchangedCount = %d, want 4", d.UnchangedCount)
	}
}

func TestDiffSnapshots_AddedAndRemoved(t *testing.T) {
	prev := loginTree()
	curr := loginTree()
	curr.Children[2] = Node{ControlType: "Text", Name: "Signing in..."}

	d := DiffSnapshots(prev, curr)
	if len(d.Added) != 1 || d.Added[0].Name != "Signing in..." {
		t.Errorf("expected one added status text, got %+v", d.Added)
	}
	if len(d.Removed) != 1 || d.Removed[0].Name != "Ready" {
		t.Errorf("expected one removed status text, got %+v", d.Removed)
	}
}

func TestDiffSnapshots_ChangedByAutomationID(t *testing.T) {
	prev := loginTree()
	curr := loginTree()
	curr.Children[0].Name = "Email"

	d := DiffSnapshots(prev, curr)
	if len(d.Added) != 0 || len(d.Removed) != 0 {
		t.Fatalf("rename should not add or remove, got %+v", d)
	}
	if len(d.Changed) != 1 {
		t.Fatalf("expected 1 change, got %d", len(d.Changed))
	}
	if d.Changed[0].Changes["name"] != [2]string{"User name", "Email"} {
		t.Errorf("unexpected change %v", d.Changed[0].Changes)
	}
}

func TestDiffSnapshots_Duplicates(t *testing.T) {
	prev := Node{ControlType: "List", Children: []Node{
		{ControlType: "ListItem"}, {ControlType: "ListItem"}, {ControlType: "ListItem"},
	}}
	curr := Node{ControlType: "List", Children: []Node{
		{ControlType: "ListItem"}, {ControlType: "ListItem"},
	}}
	d := DiffSnapshots(prev, curr)
	if len(d.Removed) != 1 {
		t.Errorf("expected exactly one removal, got %d", len(d.Removed))
	}
	if len(d.Added) != 0 {
		t.Errorf("expected no additions, got %d", len(d.Added))
	}
	if d.UnchangedCount != 3 {
		t.Errorf("UnchangedCount = %d, want 3", d.UnchangedCount)
	}
}

func TestNodeHash_Stable(t *testing.T) {
	n := FlatNode{ControlType: "Button", Name: "OK", Path: "Window > Button"}
	if NodeHash(n) != NodeHash(n) {
		t.Error("hash should be deterministic")
	}
	renamed := n
	renamed.Name = "Cancel"
	if NodeHash(n) == NodeHash(renamed) {
		t.Error("anonymous nodes should hash by content")
	}
	withID := FlatNode{ControlType: "Button", Name: "OK", AutomationID: "ok", Path: "Window > Button"}
	withIDRenamed := withID
	withIDRenamed.Name = "Okay"
	if NodeHash(withID) != NodeHash(withIDRenamed) {
		t.Error("nodes with automation id should hash by path and id")
	}
}
