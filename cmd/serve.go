package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mj1618/desktop-mcp/internal/config"
	"github.com/mj1618/desktop-mcp/internal/server"
	"github.com/mj1618/desktop-mcp/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing desktop automation tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the automation
operations as tools. AI agents can call tools directly without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP at /mcp, with Prometheus metrics at /metrics

Examples:
  desktop-mcp serve
  desktop-mcp serve --transport streamable-http --port 8080
  desktop-mcp --fixture demo.yaml serve`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", config.TransportStdio, "Transport: stdio, streamable-http")
	serveCmd.Flags().String("address", "127.0.0.1", "Listen address for streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.logger.Sync() }()

	ctx, stop := signalContext(cmd)
	defer stop()

	srv := server.New(a.engine, a.cfg.Server.Name, version.Version, a.logger)
	if a.cfg.Server.Transport == config.TransportHTTP {
		return serveHTTP(ctx, a, srv)
	}
	a.logger.Info("serving MCP over stdio")
	if err := srv.ServeStdio(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// serveHTTP runs the streamable HTTP transport until ctx is done, then shuts
// down gracefully.
func serveHTTP(ctx context.Context, a *app, srv *server.Server) error {
	addr := net.JoinHostPort(a.cfg.Server.Address, strconv.Itoa(a.cfg.Server.Port))
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("serving MCP over streamable HTTP", zap.String("address", addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down", zap.Duration("timeout", a.cfg.Server.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
