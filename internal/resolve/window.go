package resolve

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mj1618/desktop-mcp/internal/model"
	"github.com/mj1618/desktop-mcp/internal/platform"
	"github.com/mj1618/desktop-mcp/internal/retry"
)

// Window resolution steps, reported in WindowMatch.Step.
const (
	StepCurrent      = "current"
	StepDesktop      = "desktop"
	StepTopLevelName = "top-level-name"
	StepTopLevelID   = "top-level-automation-id"
	StepTopLevelProc = "top-level-process"
	StepDeepName     = "deep-name"
	StepControlType  = "control-type"
)

const currentIdentifier = "current"

// WindowMatch is a resolved search scope.
type WindowMatch struct {
	Element platform.Element
	Step    string
}

// WindowResolver resolves a window identifier to a search scope.
type WindowResolver struct {
	Desktop   platform.Desktop
	Processes platform.ProcessManager
	// Current returns the live main window of the current application, or
	// false when there is no live session.
	Current func() (platform.Element, bool)
	Logger  *zap.Logger
}

// IsCurrent reports whether identifier refers to the current application.
func IsCurrent(identifier string) bool {
	id := strings.TrimSpace(identifier)
	return id == "" || strings.EqualFold(id, currentIdentifier)
}

// Resolve polls until identifier matches a window or the policy times out.
func (r *WindowResolver) Resolve(ctx context.Context, identifier string, p retry.Policy) (WindowMatch, error) {
	m, err := retry.Poll(ctx, p, func(context.Context) (WindowMatch, bool, error) {
		return r.Find(identifier)
	})
	if err != nil {
		if ctx.Err() != nil {
			return WindowMatch{}, err
		}
		return WindowMatch{}, fmt.Errorf("%w: %q: %w", ErrWindowNotFound, identifier, err)
	}
	r.logger().Debug("window resolved", zap.String("window", identifier), zap.String("step", m.Step))
	return m, nil
}

// Find makes a single pass over the resolution steps.
func (r *WindowResolver) Find(identifier string) (WindowMatch, bool, error) {
	if IsCurrent(identifier) {
		if r.Current != nil {
			if w, ok := r.Current(); ok {
				return WindowMatch{Element: w, Step: StepCurrent}, true, nil
			}
		}
		root, err := r.Desktop.Root()
		if err != nil {
			return WindowMatch{}, false, err
		}
		return WindowMatch{Element: root, Step: StepDesktop}, true, nil
	}
	id := strings.TrimSpace(identifier)

	windows, err := r.Desktop.TopLevelWindows()
	if err == nil {
		if w, step := r.matchTopLevel(windows, id); w != nil {
			return WindowMatch{Element: w, Step: step}, true, nil
		}
	}

	root, err := r.Desktop.Root()
	if err != nil {
		return WindowMatch{}, false, err
	}
	if w, err := platform.FindFirst(root, nameFold(id)); err == nil && w != nil {
		return WindowMatch{Element: w, Step: StepDeepName}, true, nil
	}
	if ct, ok := model.ParseControlType(id); ok {
		if w, err := platform.FindFirst(root, platform.ByControlType(ct)); err == nil && w != nil {
			return WindowMatch{Element: w, Step: StepControlType}, true, nil
		}
	}
	return WindowMatch{}, false, nil
}

// matchTopLevel tests each window in enumeration order against name,
// automation id and owning process name.
func (r *WindowResolver) matchTopLevel(windows []platform.Element, id string) (platform.Element, string) {
	procNames := map[int]string{}
	for _, w := range windows {
		if name, err := w.Name(); err == nil && containsFold(name, id) {
			return w, StepTopLevelName
		}
		if aid, err := w.AutomationID(); err == nil && containsFold(aid, id) {
			return w, StepTopLevelID
		}
		if r.Processes == nil {
			continue
		}
		pid, err := w.ProcessID()
		if err != nil || pid == 0 {
			continue
		}
		name, seen := procNames[pid]
		if !seen {
			name, _ = r.Processes.ProcessName(pid)
			procNames[pid] = name
		}
		if name != "" && containsFold(name, id) {
			return w, StepTopLevelProc
		}
	}
	return nil, ""
}

func (r *WindowResolver) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
