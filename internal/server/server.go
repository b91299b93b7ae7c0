// Package server exposes the automation engine as Model Context Protocol
// tools over stdio or streamable HTTP.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/mj1618/desktop-mcp/internal/automation"
)

// Server wraps the MCP server around an automation engine.
type Server struct {
	engine *automation.Engine
	mcp    *mcpserver.MCPServer
	logger *zap.Logger
}

// New creates a server with every desktop tool registered.
func New(engine *automation.Engine, name, version string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{engine: engine, logger: logger.Named("mcp")}
	s.mcp = mcpserver.NewMCPServer(
		name,
		version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
		mcpserver.WithToolHandlerMiddleware(s.logCalls),
	)
	s.mcp.AddTools(s.tools()...)
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer {
	return s.mcp
}

// ServeStdio serves MCP over in and out until ctx is done or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))
	return stdio.Listen(ctx, in, out)
}

// Handler returns an HTTP handler serving MCP at /mcp and, when metrics is
// non-nil, Prometheus metrics at /metrics.
func (s *Server) Handler(metrics http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(s.mcp))
	if metrics != nil {
		mux.Handle("/metrics", metrics)
	}
	return mux
}

func (s *Server) logCalls(next mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		res, err := next(ctx, request)
		fields := []zap.Field{
			zap.String("tool", request.Params.Name),
			zap.Duration("elapsed", time.Since(start)),
		}
		switch {
		case err != nil:
			s.logger.Error("tool call failed", append(fields, zap.Error(err))...)
		case res != nil && res.IsError:
			s.logger.Info("tool call returned an error result", fields...)
		default:
			s.logger.Debug("tool call", fields...)
		}
		return res, err
	}
}
