package automation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-mcp/internal/resolve"
)

// While one goroutine launches and closes notepad, "current" operations
// must see either the live notepad window or the desktop, never a window
// from a session that has already been closed.
func TestCurrentOperationsDuringLaunchAndClose(t *testing.T) {
	e, _ := newTestEngine(t, loginFixture)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		for i := 0; i < 10; i++ {
			if res := e.Launch(context.Background(), LaunchRequest{Path: "notepad"}); !res.OK {
				t.Errorf("launch %d: %s", i, res.Message)
				return
			}
			if res := e.Close(context.Background()); !res.OK {
				t.Errorf("close %d: %s", i, res.Message)
				return
			}
		}
	}()

	type observation struct {
		op     string
		result Result
	}
	results := make(chan observation, 1024)
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for ctx.Err() == nil {
				if w%2 == 0 {
					results <- observation{OpWindowTree, e.WindowTree(context.Background(), TreeRequest{Window: "current", MaxDepth: 1})}
				} else {
					results <- observation{OpClick, e.Click(context.Background(), ClickRequest{Window: "current", Element: "Submit"})}
				}
			}
		}(w)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var seen int
	for obs := range results {
		seen++
		res := obs.result
		switch res.WindowStep {
		case resolve.StepCurrent:
			assert.Equal(t, "Untitled - Notepad", res.Window, "%s resolved a stale current window", obs.op)
		case resolve.StepDesktop:
		default:
			t.Errorf("%s: unexpected window step %q (%s)", obs.op, res.WindowStep, res.Message)
		}
		switch obs.op {
		case OpWindowTree:
			assert.True(t, res.OK, res.Message)
		case OpClick:
			if !res.OK {
				assert.Equal(t, KindElementNotFound, res.Kind, res.Message)
				assert.Equal(t, resolve.StepCurrent, res.WindowStep)
			}
		}
	}
	require.Positive(t, seen)
	assert.Nil(t, e.Session())
}
