package model

// FlatNode is a snapshot node with a path breadcrumb instead of children.
type FlatNode struct {
	ControlType  string `yaml:"controlType"            json:"controlType"`
	Name         string `yaml:"name,omitempty"         json:"name,omitempty"`
	AutomationID string `yaml:"automationId,omitempty" json:"automationId,omitempty"`
	ClassName    string `yaml:"className,omitempty"    json:"className,omitempty"`
	Depth        int    `yaml:"depth"                  json:"depth"`
	Path         string `yaml:"path"                   json:"path"`
}

// FlattenNode converts a snapshot tree into a pre-order list. Each entry's
// path joins the control types from the root, e.g. "Window > Pane > Button".
func FlattenNode(root Node) []FlatNode {
	var result []FlatNode
	flattenRecursive(root, "", 0, &result)
	return result
}

func flattenRecursive(n Node, parentPath string, depth int, result *[]FlatNode) {
	currentPath := n.ControlType
	if parentPath != "" {
		currentPath = parentPath + " > " + n.ControlType
	}

	*result = append(*result, FlatNode{
		ControlType:  n.ControlType,
		Name:         n.Name,
		AutomationID: n.AutomationID,
		ClassName:    n.ClassName,
		Depth:        depth,
		Path:         currentPath,
	})

	for _, child := range n.Children {
		flattenRecursive(child, currentPath, depth+1, result)
	}
}
