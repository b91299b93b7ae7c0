package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

// toolResult converts an operation result to an MCP tool result. Failures
// are reported in the result, never as a protocol error. The text is the
// tree JSON for a successful get_window_tree and the human rendering
// otherwise; the full result is attached as structured content.
func toolResult(res automation.Result) *mcp.CallToolResult {
	text := res.String()
	if res.OK && res.Op == automation.OpWindowTree {
		text = res.Text
	}
	out := mcp.NewToolResultText(text)
	out.StructuredContent = res
	out.IsError = !res.OK
	return out
}

func (s *Server) handleLaunch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := request.GetArguments()
	return toolResult(s.engine.Launch(ctx, automation.LaunchRequest{
		Path: automation.StringParam(p, "path", ""),
		Args: automation.ListParam(p, "args"),
	})), nil
}

func (s *Server) handleClose(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.engine.Close(ctx)), nil
}

func (s *Server) handleListWindows(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.engine.ListWindows(ctx)), nil
}

func (s *Server) handleWindowTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := request.GetArguments()
	return toolResult(s.engine.WindowTree(ctx, automation.TreeRequest{
		Window:   automation.StringParam(p, "window", ""),
		MaxDepth: automation.IntParam(p, "max_depth", 0),
		Changes:  automation.BoolParam(p, "changes", false),
		Filter:   automation.StringParam(p, "filter", ""),
	})), nil
}

func (s *Server) handleClick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := request.GetArguments()
	return toolResult(s.engine.Click(ctx, automation.ClickRequest{
		Window:  automation.StringParam(p, "window", ""),
		Element: automation.StringParam(p, "element", ""),
		Button:  automation.StringParam(p, "button", ""),
		Double:  automation.BoolParam(p, "double", false),
	})), nil
}

func (s *Server) handleWrite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := request.GetArguments()
	return toolResult(s.engine.Write(ctx, automation.WriteRequest{
		Window:      automation.StringParam(p, "window", ""),
		Element:     automation.StringParam(p, "element", ""),
		Text:        automation.StringParam(p, "text", ""),
		SpecialKeys: automation.StringParam(p, "special_keys", ""),
	})), nil
}

func (s *Server) handleSendKeys(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := request.GetArguments()
	return toolResult(s.engine.SendKeys(ctx, automation.KeysRequest{
		Window:  automation.StringParam(p, "window", ""),
		Element: automation.StringParam(p, "element", ""),
		Keys:    automation.StringParam(p, "keys", ""),
	})), nil
}

func (s *Server) handleSelect(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := request.GetArguments()
	return toolResult(s.engine.Select(ctx, automation.SelectRequest{
		Window:  automation.StringParam(p, "window", ""),
		Element: automation.StringParam(p, "element", ""),
		Items:   automation.ListParam(p, "items"),
	})), nil
}

func (s *Server) handleSetCheckbox(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := request.GetArguments()
	return toolResult(s.engine.SetCheckbox(ctx, automation.CheckboxRequest{
		Window:  automation.StringParam(p, "window", ""),
		Element: automation.StringParam(p, "element", ""),
		State:   automation.StringParam(p, "state", ""),
	})), nil
}

func (s *Server) handleSelectRadio(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := request.GetArguments()
	return toolResult(s.engine.SelectRadio(ctx, automation.RadioRequest{
		Window: automation.StringParam(p, "window", ""),
		Group:  automation.StringParam(p, "group", ""),
		Option: automation.StringParam(p, "option", ""),
	})), nil
}

func (s *Server) handleWaitForElement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := request.GetArguments()
	return toolResult(s.engine.WaitForElement(ctx, automation.WaitRequest{
		Window:  automation.StringParam(p, "window", ""),
		Element: automation.StringParam(p, "element", ""),
		Timeout: automation.SecondsParam(p, "timeout"),
	})), nil
}

func (s *Server) handleWaitForWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := request.GetArguments()
	return toolResult(s.engine.WaitForWindow(ctx, automation.WaitRequest{
		Window:  automation.StringParam(p, "window", ""),
		Timeout: automation.SecondsParam(p, "timeout"),
	})), nil
}

func (s *Server) handleReadText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := request.GetArguments()
	return toolResult(s.engine.ReadText(ctx, automation.ReadRequest{
		Window:  automation.StringParam(p, "window", ""),
		Element: automation.StringParam(p, "element", ""),
	})), nil
}

func (s *Server) handleDo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := request.GetArguments()
	steps, err := parseSteps(p["steps"])
	if err != nil {
		return toolResult(automation.Result{
			Op:      automation.OpDo,
			Kind:    automation.KindInvalidArgument,
			Message: err.Error(),
		}), nil
	}
	return toolResult(s.engine.Do(ctx, steps, automation.DoOptions{
		Window:      automation.StringParam(p, "window", ""),
		StopOnError: automation.BoolParam(p, "stop_on_error", true),
	})), nil
}

// parseSteps accepts the steps as a YAML document or as decoded JSON,
// which is re-encoded since JSON is valid YAML.
func parseSteps(v interface{}) ([]automation.Step, error) {
	switch raw := v.(type) {
	case nil:
		return nil, fmt.Errorf("steps are required")
	case string:
		return automation.ParseSteps([]byte(raw))
	default:
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("steps: %w", err)
		}
		return automation.ParseSteps(b)
	}
}
