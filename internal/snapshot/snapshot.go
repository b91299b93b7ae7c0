// Package snapshot captures a bounded, detached copy of a live
// accessibility subtree.
package snapshot

import (
	"github.com/mj1618/desktop-mcp/internal/model"
	"github.com/mj1618/desktop-mcp/internal/platform"
)

// DefaultMaxDepth is the depth bound used when Options.MaxDepth is zero.
const DefaultMaxDepth = 4

// Options controls a capture.
type Options struct {
	// MaxDepth bounds recursion; the root is depth 0 and nodes at MaxDepth
	// have no children.
	MaxDepth int
	// Prune drops a child, with its subtree, when it returns true. Nil means
	// model.PruneEmptyPane.
	Prune model.PrunePredicate
}

func (o Options) withDefaults() Options {
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.Prune == nil {
		o.Prune = model.PruneEmptyPane
	}
	return o
}

// Build captures root and its descendants. Attribute reads that fail yield
// empty strings and failed child enumerations yield no children; Build
// itself never fails.
func Build(root platform.Element, opts Options) model.Node {
	opts = opts.withDefaults()
	return build(root, read(root), 0, opts)
}

func build(el platform.Element, n model.Node, depth int, opts Options) model.Node {
	n.Children = []model.Node{}
	if depth >= opts.MaxDepth {
		return n
	}
	children, err := el.Children()
	if err != nil {
		return n
	}
	for _, c := range children {
		cn := read(c)
		if opts.Prune(cn) {
			continue
		}
		n.Children = append(n.Children, build(c, cn, depth+1, opts))
	}
	return n
}

func read(el platform.Element) model.Node {
	var n model.Node
	if ct, err := el.ControlType(); err == nil {
		n.ControlType = string(ct)
	}
	n.Name = orEmpty(el.Name())
	n.AutomationID = orEmpty(el.AutomationID())
	n.ClassName = orEmpty(el.ClassName())
	return n
}

func orEmpty(s string, err error) string {
	if err != nil {
		return ""
	}
	return s
}
