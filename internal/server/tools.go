package server

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

const (
	windowDescription  = `Window title, automation id, process name or control type (substring, case-insensitive). Empty or "current" means the last launched application, or the whole desktop when there is none.`
	elementDescription = "Element automation id, name (editable fields win over labels), class name or control type"
)

func windowArg() mcp.ToolOption {
	return mcp.WithString("window", mcp.Description(windowDescription))
}

func elementArg(required bool) mcp.ToolOption {
	opts := []mcp.PropertyOption{mcp.Description(elementDescription)}
	if required {
		opts = append(opts, mcp.Required())
	}
	return mcp.WithString("element", opts...)
}

func (s *Server) tools() []mcpserver.ServerTool {
	return []mcpserver.ServerTool{
		{
			Tool: mcp.NewTool(automation.OpLaunch,
				mcp.WithDescription("Launch an application and make it the current application for later calls"),
				mcp.WithString("path", mcp.Description("Executable path or name"), mcp.Required()),
				mcp.WithArray("args", mcp.Description("Command line arguments"), mcp.Items(map[string]any{"type": "string"})),
			),
			Handler: s.handleLaunch,
		},
		{
			Tool: mcp.NewTool(automation.OpClose,
				mcp.WithDescription("Close the current application, killing it if it does not exit within the grace period"),
			),
			Handler: s.handleClose,
		},
		{
			Tool: mcp.NewTool(automation.OpListWindows,
				mcp.WithDescription("List the top-level windows on the desktop with their process"),
			),
			Handler: s.handleListWindows,
		},
		{
			Tool: mcp.NewTool(automation.OpWindowTree,
				mcp.WithDescription("Return a window's UI element tree as JSON: control type, name, automation id and class name of each element"),
				windowArg(),
				mcp.WithNumber("max_depth", mcp.Description("Levels below the window to include (default 4)")),
				mcp.WithBoolean("changes", mcp.Description("Return only what changed since the previous tree of this window")),
				mcp.WithString("filter", mcp.Description("Keep only elements whose name, automation id or class name contains this text, with their ancestors")),
			),
			Handler: s.handleWindowTree,
		},
		{
			Tool: mcp.NewTool(automation.OpClick,
				mcp.WithDescription("Click an element, through its invoke pattern when possible and with the mouse otherwise"),
				windowArg(),
				elementArg(true),
				mcp.WithString("button", mcp.Description("Mouse button: left (default), right or middle")),
				mcp.WithBoolean("double", mcp.Description("Double-click")),
			),
			Handler: s.handleClick,
		},
		{
			Tool: mcp.NewTool(automation.OpWrite,
				mcp.WithDescription("Replace the text of an input field"),
				windowArg(),
				elementArg(true),
				mcp.WithString("text", mcp.Description("Text to enter"), mcp.Required()),
				mcp.WithString("special_keys", mcp.Description("Key combo pressed before typing, e.g. 'ctrl+a'")),
			),
			Handler: s.handleWrite,
		},
		{
			Tool: mcp.NewTool(automation.OpSendKeys,
				mcp.WithDescription("Press a key combination such as 'ctrl+s', 'alt+f4' or 'enter' in a window"),
				windowArg(),
				elementArg(false),
				mcp.WithString("keys", mcp.Description("Key combo: modifiers ctrl, alt, shift joined with '+' to a key"), mcp.Required()),
			),
			Handler: s.handleSendKeys,
		},
		{
			Tool: mcp.NewTool(automation.OpSelect,
				mcp.WithDescription("Select one or more items in a list, combo box or tree"),
				windowArg(),
				elementArg(true),
				mcp.WithArray("items", mcp.Description("Item names to select"), mcp.Required(), mcp.Items(map[string]any{"type": "string"})),
			),
			Handler: s.handleSelect,
		},
		{
			Tool: mcp.NewTool(automation.OpSetCheckbox,
				mcp.WithDescription("Check or uncheck a checkbox; nothing changes when it is already in that state"),
				windowArg(),
				elementArg(true),
				mcp.WithString("state", mcp.Description("on, true, checked or yes to check; anything else unchecks"), mcp.Required()),
			),
			Handler: s.handleSetCheckbox,
		},
		{
			Tool: mcp.NewTool(automation.OpSelectRadio,
				mcp.WithDescription("Select a radio button, optionally within a named group"),
				windowArg(),
				mcp.WithString("group", mcp.Description("Group containing the option")),
				mcp.WithString("option", mcp.Description("Radio button to select"), mcp.Required()),
			),
			Handler: s.handleSelectRadio,
		},
		{
			Tool: mcp.NewTool(automation.OpWaitForElement,
				mcp.WithDescription("Wait until an element exists in a window"),
				windowArg(),
				elementArg(true),
				mcp.WithNumber("timeout", mcp.Description("Seconds to wait (default 30)")),
			),
			Handler: s.handleWaitForElement,
		},
		{
			Tool: mcp.NewTool(automation.OpWaitForWindow,
				mcp.WithDescription("Wait until a window exists"),
				mcp.WithString("window", mcp.Description("Window title, automation id or process name"), mcp.Required()),
				mcp.WithNumber("timeout", mcp.Description("Seconds to wait (default 30)")),
			),
			Handler: s.handleWaitForWindow,
		},
		{
			Tool: mcp.NewTool(automation.OpReadText,
				mcp.WithDescription("Read an element's text, value or name"),
				windowArg(),
				elementArg(true),
			),
			Handler: s.handleReadText,
		},
		{
			Tool: mcp.NewTool(automation.OpDo,
				mcp.WithDescription("Run several steps in order. Each step is an object with one action key (launch, close, list, tree, click, write, keys, select, check, radio, wait, read, sleep) mapping to its parameters, e.g. {\"click\": {\"element\": \"Submit\"}}"),
				mcp.WithArray("steps", mcp.Description("Step objects, or a YAML list as a string"), mcp.Required()),
				windowArg(),
				mcp.WithBoolean("stop_on_error", mcp.Description("Stop at the first failing step (default true)")),
			),
			Handler: s.handleDo,
		},
	}
}
