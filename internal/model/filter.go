package model

import "strings"

// PrunePredicate decides whether a captured child node is dropped from a
// snapshot, together with its subtree.
type PrunePredicate func(Node) bool

// PruneEmptyPane drops generic "Pane" containers that carry neither a name nor
// an automation id. They only inflate payload size.
func PruneEmptyPane(n Node) bool {
	return n.ControlType == string(ControlPane) && n.Name == "" && n.AutomationID == ""
}

// FilterByText returns the nodes of tree whose name, automation id or class
// name contains text (case-insensitive). Ancestors of a match are kept so the
// result is still a tree; ok is false when nothing matched.
func FilterByText(tree Node, text string) (Node, bool) {
	if text == "" {
		return tree, true
	}
	return filterByText(tree, strings.ToLower(text))
}

func filterByText(n Node, textLower string) (Node, bool) {
	var kept []Node
	for _, c := range n.Children {
		if fc, ok := filterByText(c, textLower); ok {
			kept = append(kept, fc)
		}
	}
	if len(kept) == 0 && !textMatchesNode(n, textLower) {
		return Node{}, false
	}
	out := n
	out.Children = kept
	if out.Children == nil {
		out.Children = []Node{}
	}
	return out, true
}

func textMatchesNode(n Node, textLower string) bool {
	return strings.Contains(strings.ToLower(n.Name), textLower) ||
		strings.Contains(strings.ToLower(n.AutomationID), textLower) ||
		strings.Contains(strings.ToLower(n.ClassName), textLower)
}
