package automation

import (
	"sync"

	"github.com/mj1618/desktop-mcp/internal/model"
)

// History keeps the last snapshot taken of each window so that a later
// snapshot can be reported as a diff. The oldest window is evicted once
// size windows are tracked.
type History struct {
	mu      sync.Mutex
	entries map[string]model.Node
	order   []string
	size    int
}

// NewHistory creates a history for up to size windows. A size of 0
// disables it.
func NewHistory(size int) *History {
	return &History{entries: make(map[string]model.Node), size: size}
}

// Swap stores tree under key and returns the previous snapshot, if any.
func (h *History) Swap(key string, tree model.Node) (model.Node, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.size <= 0 {
		return model.Node{}, false
	}
	prev, ok := h.entries[key]
	if !ok {
		h.order = append(h.order, key)
		if len(h.order) > h.size {
			delete(h.entries, h.order[0])
			h.order = h.order[1:]
		}
	}
	h.entries[key] = tree
	return prev, ok
}

// Invalidate removes every snapshot.
func (h *History) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = make(map[string]model.Node)
	h.order = nil
}
