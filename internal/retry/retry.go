// Package retry provides the bounded poll loop used by every search in the
// automation engine.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultInterval is used when a Policy has no interval.
const DefaultInterval = 100 * time.Millisecond

// ErrTimeout is matched by every *TimeoutError.
var ErrTimeout = errors.New("timed out")

// Policy bounds a poll loop.
type Policy struct {
	// Timeout is the total time budget. Zero means a single probe.
	Timeout time.Duration
	// Interval is the pause between probes.
	Interval time.Duration
}

func (p Policy) interval() time.Duration {
	if p.Interval <= 0 {
		return DefaultInterval
	}
	return p.Interval
}

// TimeoutError is returned when the probe never reported found.
type TimeoutError struct {
	Timeout  time.Duration
	Elapsed  time.Duration
	Attempts int
	// LastErr is the most recent error returned (or panic raised) by the
	// probe, if any.
	LastErr error
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("timed out after %s (%d attempts)", e.Elapsed.Round(time.Millisecond), e.Attempts)
	if e.LastErr != nil {
		msg += fmt.Sprintf(" (last error: %v)", e.LastErr)
	}
	return msg
}

func (e *TimeoutError) Is(target error) bool { return target == ErrTimeout }

func (e *TimeoutError) Unwrap() error { return e.LastErr }

// Probe makes one attempt. It returns found=true together with the value
// once the condition holds. Errors are recorded and treated as not found.
type Probe[T any] func(ctx context.Context) (T, bool, error)

// Poll runs probe until it reports found, the policy's timeout elapses, or
// ctx is done. A final probe always runs at the deadline.
func Poll[T any](ctx context.Context, p Policy, probe Probe[T]) (T, error) {
	var zero T
	start := time.Now()
	deadline := start.Add(p.Timeout)
	interval := p.interval()

	attempts := 0
	var lastErr error
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		attempts++
		v, found, err := attempt(ctx, probe)
		if found {
			return v, nil
		}
		if err != nil {
			lastErr = err
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return zero, &TimeoutError{
				Timeout:  p.Timeout,
				Elapsed:  time.Since(start),
				Attempts: attempts,
				LastErr:  lastErr,
			}
		}

		wait := interval
		if wait > remaining {
			wait = remaining
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return zero, ctx.Err()
		case <-t.C:
		}
	}
}

// attempt runs probe once, converting a panic into an error.
func attempt[T any](ctx context.Context, probe Probe[T]) (v T, found bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, found, err = zero, false, fmt.Errorf("probe panicked: %v", r)
		}
	}()
	return probe(ctx)
}

// Once adapts a lookup that returns (nil, nil) for "absent" into a Probe.
func Once[T comparable](fn func(ctx context.Context) (T, error)) Probe[T] {
	return func(ctx context.Context) (T, bool, error) {
		var zero T
		v, err := fn(ctx)
		if err != nil {
			return zero, false, err
		}
		return v, v != zero, nil
	}
}
