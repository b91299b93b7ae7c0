package automation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mj1618/desktop-mcp/internal/model"
)

func TestHistory_SwapAndEvict(t *testing.T) {
	h := NewHistory(2)
	a := model.Node{Name: "a"}

	_, ok := h.Swap("w1", a)
	assert.False(t, ok)
	prev, ok := h.Swap("w1", model.Node{Name: "a2"})
	assert.True(t, ok)
	assert.Equal(t, "a", prev.Name)

	h.Swap("w2", model.Node{Name: "b"})
	h.Swap("w3", model.Node{Name: "c"})
	_, ok = h.Swap("w1", a)
	assert.False(t, ok, "oldest window is evicted")

	h.Invalidate()
	_, ok = h.Swap("w3", a)
	assert.False(t, ok)
}

func TestHistory_Disabled(t *testing.T) {
	h := NewHistory(0)
	h.Swap("w", model.Node{})
	_, ok := h.Swap("w", model.Node{})
	assert.False(t, ok)
}
