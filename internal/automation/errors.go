package automation

import (
	"context"
	"errors"
	"fmt"

	"github.com/mj1618/desktop-mcp/internal/interact"
	"github.com/mj1618/desktop-mcp/internal/resolve"
	"github.com/mj1618/desktop-mcp/internal/retry"
)

// Kind classifies an operation failure.
type Kind string

const (
	KindWindowNotFound        Kind = "window_not_found"
	KindElementNotFound       Kind = "element_not_found"
	KindTimeout               Kind = "timeout"
	KindCapabilityUnsupported Kind = "capability_unsupported"
	KindVerificationFailed    Kind = "verification_failed"
	KindProcessLaunchFailure  Kind = "process_launch_failure"
	KindProcessCloseFailure   Kind = "process_close_failure"
	KindInvalidArgument       Kind = "invalid_argument"
	KindInteractionFailed     Kind = "interaction_failed"
	KindCanceled              Kind = "canceled"
)

// Error is a classified operation failure.
type Error struct {
	Kind Kind
	Op   string
	// Target names what the operation was looking for or acting on.
	Target   string
	TimedOut bool
	Err      error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + string(e.Kind)
	if e.Target != "" {
		msg += fmt.Sprintf(" %q", e.Target)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf classifies err. A nil error has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, resolve.ErrWindowNotFound):
		return KindWindowNotFound
	case errors.Is(err, resolve.ErrElementNotFound):
		return KindElementNotFound
	case errors.Is(err, resolve.ErrEmptyIdentifier):
		return KindInvalidArgument
	case errors.Is(err, interact.ErrNotApplicable):
		return KindCapabilityUnsupported
	case errors.Is(err, interact.ErrVerification):
		return KindVerificationFailed
	case errors.Is(err, interact.ErrFailed):
		return KindInteractionFailed
	case errors.Is(err, retry.ErrTimeout):
		return KindTimeout
	}
	return KindInteractionFailed
}

// wrap classifies err as an *Error for op and target.
func wrap(op, target string, err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{
		Kind:     KindOf(err),
		Op:       op,
		Target:   target,
		TimedOut: errors.Is(err, retry.ErrTimeout),
		Err:      err,
	}
}

func invalid(op, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Op: op, Err: fmt.Errorf(format, args...)}
}
