package interact

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-mcp/internal/model"
	"github.com/mj1618/desktop-mcp/internal/platform"
	"github.com/mj1618/desktop-mcp/internal/retry"
)

// titleBarOffset is how far below a window's top edge the title-bar click
// lands when the window exposes no TitleBar element.
const titleBarOffset = 10

// physicalClick scrolls el into view if needed, brings its window to the
// foreground, waits until it is interactable and clicks its centre.
// Callers hold the input lock.
func (d *Dispatcher) physicalClick(ctx context.Context, el platform.Element, button platform.MouseButton, count int) error {
	if off, err := el.IsOffscreen(); err == nil && off {
		if s, ok := el.ScrollItem(); ok {
			if err := s.ScrollIntoView(); err != nil {
				d.Logger.Debug("scroll into view failed", zap.Error(err))
			}
		}
	}
	if d.Windows != nil {
		if err := d.Windows.BringToForeground(el); err != nil {
			d.Logger.Debug("bring to foreground failed", zap.Error(err))
		}
	}
	rect, err := d.waitInteractable(ctx, el)
	if err != nil {
		return err
	}
	x, y := rect.Center()
	return d.Input.Click(x, y, button, count)
}

// waitInteractable polls until el is on-screen with a non-empty bounding
// rectangle.
func (d *Dispatcher) waitInteractable(ctx context.Context, el platform.Element) (platform.Bounds, error) {
	p := retry.Policy{Timeout: d.Options.InteractableTimeout, Interval: d.Options.PollInterval}
	rect, err := retry.Poll(ctx, p, func(context.Context) (platform.Bounds, bool, error) {
		off, err := el.IsOffscreen()
		if err != nil {
			return platform.Bounds{}, false, err
		}
		if off {
			return platform.Bounds{}, false, nil
		}
		r, err := el.BoundingRect()
		if err != nil {
			return platform.Bounds{}, false, err
		}
		return r, !r.Empty(), nil
	})
	if err != nil {
		return platform.Bounds{}, fmt.Errorf("element never became interactable: %w", err)
	}
	return rect, nil
}

// clickTitleBar clicks window's title bar to give it keyboard context: the
// centre of its TitleBar child if it has one, else just below its top edge.
func (d *Dispatcher) clickTitleBar(window platform.Element) error {
	children, _ := window.Children()
	for _, c := range children {
		ct, err := c.ControlType()
		if err != nil || ct != model.ControlTitleBar {
			continue
		}
		if r, err := c.BoundingRect(); err == nil && !r.Empty() {
			x, y := r.Center()
			return d.Input.Click(x, y, platform.MouseLeft, 1)
		}
	}
	r, err := window.BoundingRect()
	if err != nil {
		return err
	}
	if r.Empty() {
		return fmt.Errorf("window has no on-screen area")
	}
	x, _ := r.Center()
	return d.Input.Click(x, r.Y+titleBarOffset, platform.MouseLeft, 1)
}

// typeText injects text, stopping early once ctx is done when the inputter
// can observe it.
func (d *Dispatcher) typeText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ct, ok := d.Input.(platform.ContextTyper); ok {
		return ct.TypeTextContext(ctx, text)
	}
	return d.Input.TypeText(text)
}
