package automation

import (
	"fmt"
	"strings"

	"github.com/mj1618/desktop-mcp/internal/interact"
	"github.com/mj1618/desktop-mcp/internal/model"
)

// Result is the outcome of one operation. It is what the protocol layer
// returns to the agent: Message for people, the rest for programs.
type Result struct {
	OK       bool   `json:"ok" yaml:"ok"`
	Op       string `json:"op" yaml:"op"`
	Kind     Kind   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Message  string `json:"message" yaml:"message"`
	TimedOut bool   `json:"timed_out,omitempty" yaml:"timed_out,omitempty"`
	Warning  string `json:"warning,omitempty" yaml:"warning,omitempty"`
	Elapsed  string `json:"elapsed,omitempty" yaml:"elapsed,omitempty"`

	Window     string `json:"window,omitempty" yaml:"window,omitempty"`
	WindowStep string `json:"window_step,omitempty" yaml:"window_step,omitempty"`
	Element    string `json:"element,omitempty" yaml:"element,omitempty"`
	Tier       string `json:"tier,omitempty" yaml:"tier,omitempty"`

	Strategy string             `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	NoOp     bool               `json:"no_op,omitempty" yaml:"no_op,omitempty"`
	Attempts []interact.Attempt `json:"attempts,omitempty" yaml:"attempts,omitempty"`
	Selected []string           `json:"selected,omitempty" yaml:"selected,omitempty"`

	Text    string          `json:"text,omitempty" yaml:"text,omitempty"`
	Tree    *model.Node     `json:"tree,omitempty" yaml:"tree,omitempty"`
	Diff    *model.TreeDiff `json:"diff,omitempty" yaml:"diff,omitempty"`
	Windows []WindowInfo    `json:"windows,omitempty" yaml:"windows,omitempty"`
	Session *Session        `json:"session,omitempty" yaml:"session,omitempty"`

	Steps []StepResult `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// WindowInfo describes a top-level window.
type WindowInfo struct {
	Name         string `json:"name" yaml:"name"`
	AutomationID string `json:"automationId,omitempty" yaml:"automationId,omitempty"`
	ClassName    string `json:"className,omitempty" yaml:"className,omitempty"`
	ControlType  string `json:"controlType" yaml:"controlType"`
	PID          int    `json:"pid,omitempty" yaml:"pid,omitempty"`
	Process      string `json:"process,omitempty" yaml:"process,omitempty"`
	Current      bool   `json:"current,omitempty" yaml:"current,omitempty"`
}

func (r *Result) applyReport(rep interact.Report) {
	r.Strategy = rep.Strategy
	r.NoOp = rep.NoOp
	r.Attempts = rep.Attempts
}

// String renders the result for people: the message, any warning, and the
// listing the operation produced.
func (r Result) String() string {
	var b strings.Builder
	if !r.OK {
		b.WriteString("error: ")
	}
	b.WriteString(r.Message)
	if r.Warning != "" {
		fmt.Fprintf(&b, "\nwarning: %s", r.Warning)
	}
	for _, w := range r.Windows {
		fmt.Fprintf(&b, "\n%s %q", w.ControlType, w.Name)
		if w.Process != "" {
			fmt.Fprintf(&b, " (%s, pid %d)", w.Process, w.PID)
		}
		if w.Current {
			b.WriteString(" [current]")
		}
	}
	if r.Tree != nil || r.Diff != nil {
		b.WriteString("\n")
		b.WriteString(r.Text)
	}
	for _, s := range r.Steps {
		status := "ok"
		if !s.OK {
			status = "failed"
		}
		fmt.Fprintf(&b, "\n%d. %s %s: %s", s.Step, s.Action, status, s.Message)
	}
	return b.String()
}
