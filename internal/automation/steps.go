package automation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Step is one action of a batch: an action name and its parameters.
type Step struct {
	Action string
	Params map[string]interface{}
}

// StepResult is the outcome of one step within a batch.
type StepResult struct {
	Step   int    `json:"step" yaml:"step"`
	Action string `json:"action" yaml:"action"`
	Result `yaml:",inline"`
}

// DoOptions are the batch-wide defaults.
type DoOptions struct {
	// Window is used by steps that do not name one.
	Window      string
	StopOnError bool
}

// ParseSteps parses a YAML (or JSON) list of single-key maps:
//
//   - click: {element: Submit}
//   - write: {element: Email, text: admin@example.com}
func ParseSteps(data []byte) ([]Step, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("no steps provided, expected a YAML list of actions")
	}
	var raw []map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse steps: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("no steps provided, expected a YAML list of actions")
	}
	steps := make([]Step, 0, len(raw))
	for i, m := range raw {
		if len(m) != 1 {
			return nil, fmt.Errorf("step %d: expected exactly one action key, got %d", i+1, len(m))
		}
		for action, params := range m {
			if params == nil {
				params = map[string]interface{}{}
			}
			steps = append(steps, Step{Action: action, Params: params})
		}
	}
	return steps, nil
}

// Do runs steps in order. With StopOnError the first failing step ends the
// batch; otherwise every step runs and the batch fails if any step did.
func (e *Engine) Do(ctx context.Context, steps []Step, opts DoOptions) Result {
	return e.run(ctx, OpDo, func(ctx context.Context, res *Result) error {
		if len(steps) == 0 {
			return invalid(OpDo, "no steps provided")
		}
		res.Steps = make([]StepResult, 0, len(steps))
		var first *StepResult
		for i, s := range steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := e.runStep(ctx, s, opts)
			sr := StepResult{Step: i + 1, Action: s.Action, Result: r}
			res.Steps = append(res.Steps, sr)
			if !r.OK && first == nil {
				first = &res.Steps[len(res.Steps)-1]
				if opts.StopOnError {
					break
				}
			}
		}
		completed := 0
		for _, s := range res.Steps {
			if s.OK {
				completed++
			}
		}
		if first != nil {
			return &Error{
				Kind:     first.Kind,
				Op:       OpDo,
				Target:   fmt.Sprintf("step %d (%s)", first.Step, first.Action),
				TimedOut: first.TimedOut,
				Err:      fmt.Errorf("%d of %d steps completed: %s", completed, len(steps), first.Message),
			}
		}
		res.Message = fmt.Sprintf("%d of %d steps completed", completed, len(steps))
		return nil
	})
}

var errUnknownStep = errors.New("unknown step")

func (e *Engine) runStep(ctx context.Context, s Step, opts DoOptions) Result {
	p := s.Params
	window := StringParam(p, "window", opts.Window)
	element := StringParam(p, "element", "")
	switch s.Action {
	case "launch", OpLaunch:
		return e.Launch(ctx, LaunchRequest{Path: StringParam(p, "path", ""), Args: ListParam(p, "args")})
	case "close", OpClose:
		return e.Close(ctx)
	case "list", OpListWindows:
		return e.ListWindows(ctx)
	case "tree", OpWindowTree:
		return e.WindowTree(ctx, TreeRequest{Window: window, MaxDepth: IntParam(p, "depth", 0), Changes: BoolParam(p, "changes", false), Filter: StringParam(p, "filter", "")})
	case "click", OpClick:
		return e.Click(ctx, ClickRequest{Window: window, Element: element,
			Button: StringParam(p, "button", ""), Double: BoolParam(p, "double", false)})
	case "write", "type", OpWrite:
		return e.Write(ctx, WriteRequest{Window: window, Element: element,
			Text: StringParam(p, "text", ""), SpecialKeys: StringParam(p, "special_keys", "")})
	case "keys", "key", OpSendKeys:
		return e.SendKeys(ctx, KeysRequest{Window: window, Element: element, Keys: StringParam(p, "keys", "")})
	case "select", OpSelect:
		return e.Select(ctx, SelectRequest{Window: window, Element: element, Items: ListParam(p, "items")})
	case "check", OpSetCheckbox:
		return e.SetCheckbox(ctx, CheckboxRequest{Window: window, Element: element, State: StringParam(p, "state", "on")})
	case "radio", OpSelectRadio:
		return e.SelectRadio(ctx, RadioRequest{Window: window,
			Group: StringParam(p, "group", ""), Option: StringParam(p, "option", "")})
	case "wait", OpWaitForElement, OpWaitForWindow:
		timeout := SecondsParam(p, "timeout")
		if s.Action == OpWaitForWindow || (s.Action == "wait" && element == "") {
			return e.WaitForWindow(ctx, WaitRequest{Window: window, Timeout: timeout})
		}
		return e.WaitForElement(ctx, WaitRequest{Window: window, Element: element, Timeout: timeout})
	case "read", OpReadText:
		return e.ReadText(ctx, ReadRequest{Window: window, Element: element})
	case "sleep":
		return e.run(ctx, "sleep", func(ctx context.Context, res *Result) error {
			d := time.Duration(IntParam(p, "ms", 0)) * time.Millisecond
			if d <= 0 {
				return invalid("sleep", "ms must be positive")
			}
			t := time.NewTimer(d)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-t.C:
			}
			res.Message = fmt.Sprintf("Slept %s", d)
			return nil
		})
	}
	return e.run(ctx, "unknown_step", func(context.Context, *Result) error {
		return &Error{Kind: KindInvalidArgument, Op: s.Action, Target: s.Action,
			Err: fmt.Errorf("%w %q, supported: launch, close, list, tree, click, write, keys, select, check, radio, wait, read, sleep", errUnknownStep, s.Action)}
	})
}

// StringParam reads a string parameter, formatting scalars of other types.
func StringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok && v != nil {
		if s, ok := v.(string); ok {
			return s
		}
		// YAML may parse names like 42 or true as scalars
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

// IntParam reads an integer parameter; JSON numbers arrive as float64.
func IntParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case float64:
			return int(n)
		case int64:
			return int(n)
		}
	}
	return defaultVal
}

// BoolParam reads a boolean parameter.
func BoolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// SecondsParam reads a duration given in (possibly fractional) seconds.
func SecondsParam(params map[string]interface{}, key string) time.Duration {
	switch n := params[key].(type) {
	case int:
		return time.Duration(n) * time.Second
	case float64:
		return time.Duration(n * float64(time.Second))
	}
	return 0
}

// ListParam accepts a YAML list or a comma-separated string.
func ListParam(params map[string]interface{}, key string) []string {
	switch v := params[key].(type) {
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, it := range v {
			out = append(out, fmt.Sprintf("%v", it))
		}
		return out
	case string:
		var out []string
		for _, it := range strings.Split(v, ",") {
			if it = strings.TrimSpace(it); it != "" {
				out = append(out, it)
			}
		}
		return out
	}
	return nil
}
