package platform

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// PacedInputter wraps an Inputter and rate-limits TypeText so that
// applications with slow input handling do not drop characters.
type PacedInputter struct {
	Inputter
	limiter *rate.Limiter
}

var _ ContextTyper = (*PacedInputter)(nil)

// NewPacedInputter paces TypeText at perSecond characters per second.
// A non-positive rate disables pacing.
func NewPacedInputter(in Inputter, perSecond float64) *PacedInputter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &PacedInputter{Inputter: in, limiter: rate.NewLimiter(limit, 1)}
}

// TypeText is TypeTextContext without cancellation.
func (p *PacedInputter) TypeText(text string) error {
	return p.TypeTextContext(context.Background(), text)
}

// TypeTextContext injects text one character at a time, waiting for the
// limiter between characters. It stops as soon as ctx is done or the next
// character could not be typed before ctx's deadline.
func (p *PacedInputter) TypeTextContext(ctx context.Context, text string) error {
	if p.limiter.Limit() == rate.Inf {
		if err := ctx.Err(); err != nil {
			return err
		}
		return p.Inputter.TypeText(text)
	}
	for _, r := range text {
		if err := p.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if _, ok := ctx.Deadline(); ok {
				return fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
			}
			return err
		}
		if err := p.Inputter.TypeText(string(r)); err != nil {
			return err
		}
	}
	return nil
}
