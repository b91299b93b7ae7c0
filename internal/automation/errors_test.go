package automation

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mj1618/desktop-mcp/internal/interact"
	"github.com/mj1618/desktop-mcp/internal/resolve"
	"github.com/mj1618/desktop-mcp/internal/retry"
)

func TestKindOf(t *testing.T) {
	timeout := &retry.TimeoutError{}
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"typed", &Error{Kind: KindProcessCloseFailure}, KindProcessCloseFailure},
		{"wrapped typed", fmt.Errorf("step: %w", &Error{Kind: KindVerificationFailed}), KindVerificationFailed},
		{"canceled", context.Canceled, KindCanceled},
		{"deadline", fmt.Errorf("poll: %w", context.DeadlineExceeded), KindCanceled},
		{"window", fmt.Errorf("%w: %q: %w", resolve.ErrWindowNotFound, "x", timeout), KindWindowNotFound},
		{"element", fmt.Errorf("%w: %q: %w", resolve.ErrElementNotFound, "x", timeout), KindElementNotFound},
		{"empty identifier", resolve.ErrEmptyIdentifier, KindInvalidArgument},
		{"not applicable", fmt.Errorf("click: %w", interact.ErrNotApplicable), KindCapabilityUnsupported},
		{"verification", fmt.Errorf("write: %w", interact.ErrVerification), KindVerificationFailed},
		{"failed", fmt.Errorf("click: %w", errors.Join(interact.ErrFailed, timeout)), KindInteractionFailed},
		{"timeout", timeout, KindTimeout},
		{"other", errors.New("boom"), KindInteractionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	err := fmt.Errorf("%w: %q: %w", resolve.ErrElementNotFound, "Submit", &retry.TimeoutError{})
	ae := wrap(OpClick, "Submit", err)
	assert.Equal(t, KindElementNotFound, ae.Kind)
	assert.True(t, ae.TimedOut)
	assert.ErrorIs(t, ae, resolve.ErrElementNotFound)
	assert.Equal(t, `Element "Submit" not found: `+err.Error(), describe(ae))

	inner := &Error{Kind: KindTimeout, Op: OpWaitForWindow, Target: "Payroll"}
	assert.Same(t, inner, wrap(OpDo, "", fmt.Errorf("step 1: %w", inner)))
}
