package model

import (
	"crypto/sha256"
	"fmt"
)

// NodeChange is a node whose identity matched across two snapshots but whose
// mutable attributes differ.
type NodeChange struct {
	Path         string               `yaml:"path"                   json:"path"`
	AutomationID string               `yaml:"automationId,omitempty" json:"automationId,omitempty"`
	Changes      map[string][2]string `yaml:"changes"                json:"changes"`
}

// TreeDiff is the result of comparing two snapshots.
type TreeDiff struct {
	Added          []FlatNode   `yaml:"added,omitempty"   json:"added,omitempty"`
	Removed        []FlatNode   `yaml:"removed,omitempty" json:"removed,omitempty"`
	Changed        []NodeChange `yaml:"changed,omitempty" json:"changed,omitempty"`
	UnchangedCount int          `yaml:"unchanged_count"   json:"unchanged_count"`
}

// Empty reports whether the two snapshots were identical.
func (d TreeDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// NodeHash computes a stable identity for a flattened node. Nodes with an
// automation id are identified by path and id only, so a renamed control is
// reported as changed rather than removed and re-added. Anonymous nodes are
// identified by their full content.
func NodeHash(n FlatNode) string {
	h := sha256.New()
	if n.AutomationID != "" {
		fmt.Fprintf(h, "id|%s|%s", n.Path, n.AutomationID)
	} else {
		fmt.Fprintf(h, "content|%s|%s|%s|%s", n.Path, n.ControlType, n.Name, n.ClassName)
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// DiffSnapshots compares two snapshot trees by content hash. Sibling
// duplicates (several anonymous nodes at the same path) are counted, so
// removing one of three identical buttons reports exactly one removal.
func DiffSnapshots(prev, curr Node) TreeDiff {
	prevFlat := FlattenNode(prev)
	currFlat := FlattenNode(curr)

	prevByHash := make(map[string][]FlatNode, len(prevFlat))
	for _, n := range prevFlat {
		h := NodeHash(n)
		prevByHash[h] = append(prevByHash[h], n)
	}

	var diff TreeDiff
	for _, n := range currFlat {
		h := NodeHash(n)
		queue := prevByHash[h]
		if len(queue) == 0 {
			diff.Added = append(diff.Added, n)
			continue
		}
		prevNode := queue[0]
		prevByHash[h] = queue[1:]

		if changes := diffNodeProperties(prevNode, n); len(changes) > 0 {
			diff.Changed = append(diff.Changed, NodeChange{
				Path:         n.Path,
				AutomationID: n.AutomationID,
				Changes:      changes,
			})
		} else {
			diff.UnchangedCount++
		}
	}

	// Queues are consumed front first, so the unmatched nodes of each hash
	// are its last occurrences. Walk prevFlat to keep traversal order.
	matched := make(map[string]int, len(prevByHash))
	for _, n := range prevFlat {
		matched[NodeHash(n)]++
	}
	for h, q := range prevByHash {
		matched[h] -= len(q)
	}
	seen := make(map[string]int, len(matched))
	for _, n := range prevFlat {
		h := NodeHash(n)
		seen[h]++
		if seen[h] > matched[h] {
			diff.Removed = append(diff.Removed, n)
		}
	}
	return diff
}

// diffNodeProperties compares the attributes that are not part of a node's
// identity hash.
func diffNodeProperties(prev, curr FlatNode) map[string][2]string {
	diffs := make(map[string][2]string)
	if prev.Name != curr.Name {
		diffs["name"] = [2]string{prev.Name, curr.Name}
	}
	if prev.ClassName != curr.ClassName {
		diffs["className"] = [2]string{prev.ClassName, curr.ClassName}
	}
	if prev.ControlType != curr.ControlType {
		diffs["controlType"] = [2]string{prev.ControlType, curr.ControlType}
	}
	if len(diffs) == 0 {
		return nil
	}
	return diffs
}
