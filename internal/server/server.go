// Package server exposes the action dispatcher as an MCP server over
// streamable HTTP on a loopback listener, or over stdio.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/Cyclone1070/devrelay/internal/action"
	"github.com/Cyclone1070/devrelay/internal/config"
	"github.com/Cyclone1070/devrelay/internal/tool"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// dispatcher is the subset of action.Dispatcher the server needs.
type dispatcher interface {
	Actions() []action.Action
	Aliases(name string) []string
	Dispatch(ctx context.Context, name string, args map[string]any) (any, error)
}

// Server registers every action, and each alias, as an MCP tool.
type Server struct {
	mcp        *server.MCPServer
	dispatcher dispatcher
	config     *config.Config
	logger     *zap.Logger
}

// New creates the MCP server and registers the dispatcher's actions.
func New(cfg *config.Config, d dispatcher, logger *zap.Logger, version string) *Server {
	if cfg == nil {
		panic("cfg is required")
	}
	if d == nil {
		panic("dispatcher is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		mcp: server.NewMCPServer(
			cfg.Server.Name,
			version,
			server.WithToolCapabilities(true),
			server.WithRecovery(),
		),
		dispatcher: d,
		config:     cfg,
		logger:     logger,
	}

	for _, a := range d.Actions() {
		decl := a.Declaration()
		s.mcp.AddTool(toMCPTool(decl.Name, decl), s.handle)
		for _, alias := range d.Aliases(decl.Name) {
			s.mcp.AddTool(toMCPTool(alias, decl), s.handle)
		}
	}
	return s
}

// MCP returns the underlying mcp-go server.
func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// handle dispatches a tool call. Failures become MCP tool errors so the
// caller sees them without the connection failing.
func (s *Server) handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := s.dispatcher.Dispatch(ctx, req.Params.Name, req.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func toMCPTool(name string, decl tool.Declaration) mcp.Tool {
	schema := mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]any{},
	}
	if decl.Parameters != nil {
		for prop, p := range decl.Parameters.Properties {
			schema.Properties[prop] = toJSONSchema(p)
		}
		schema.Required = decl.Parameters.Required
	}
	return mcp.Tool{
		Name:        name,
		Description: decl.Description,
		InputSchema: schema,
	}
}

func toJSONSchema(p *tool.Schema) map[string]any {
	out := map[string]any{"type": string(p.Type)}
	if p.Description != "" {
		out["description"] = p.Description
	}
	if p.Default != "" {
		out["default"] = p.Default
	}
	if len(p.Enum) > 0 {
		out["enum"] = p.Enum
	}
	return out
}

// Handler returns the HTTP surface: the MCP endpoint at the configured path
// and a liveness probe at /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(s.config.Server.Path, server.NewStreamableHTTPServer(s.mcp, server.WithEndpointPath(s.config.Server.Path)))
	mux.HandleFunc("GET /health", handleHealth)
	return mux
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// Listen binds the configured loopback address. Port 0 picks a free port.
func (s *Server) Listen() (net.Listener, error) {
	addr := net.JoinHostPort(s.config.Server.Host, strconv.Itoa(s.config.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return ln, nil
}

// URL returns the MCP endpoint URL for a bound listener.
func (s *Server) URL(ln net.Listener) string {
	return "http://" + ln.Addr().String() + s.config.Server.Path
}

// ServeHTTP serves on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) ServeHTTP(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		done <- httpServer.Serve(ln)
	}()
	s.logger.Info("serving MCP over HTTP", zap.String("url", s.URL(ln)))

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP transport")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down HTTP transport: %w", err)
		}
		<-done
		return nil
	case err := <-done:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// ServeStdio serves newline-delimited JSON-RPC on in/out until ctx is
// cancelled or in is closed.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcp)
	s.logger.Info("serving MCP over stdio")
	err := stdio.Listen(ctx, in, out)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
