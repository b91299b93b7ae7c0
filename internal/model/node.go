package model

// Node is a value copy of one accessibility element, captured by a snapshot.
// It holds no reference to the live tree. Field order is the serialized order.
type Node struct {
	ControlType  string `yaml:"controlType"  json:"controlType"`
	Name         string `yaml:"name"         json:"name"`
	AutomationID string `yaml:"automationId" json:"automationId"`
	ClassName    string `yaml:"className"    json:"className"`
	Children     []Node `yaml:"children"     json:"children"`
}

// Depth returns the number of levels below n (a leaf has depth 0).
func (n Node) Depth() int {
	max := 0
	for _, c := range n.Children {
		if d := c.Depth() + 1; d > max {
			max = d
		}
	}
	return max
}

// Count returns the number of nodes in the tree rooted at n, including n.
func (n Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}
