// Package mcp serves read-only window inspection over the Model Context
// Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/winsurf/internal/config"
	"github.com/1broseidon/winsurf/internal/inspect"
)

const (
	ServerName    = "winsurf"
	ServerVersion = "0.1.0"
)

// Snapshotter reports the current windows.
type Snapshotter interface {
	Snapshot() ([]inspect.Report, error)
}

// Server is the MCP server for window inspection.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.LoadResult
	logger    *slog.Logger

	// mu serializes snapshots; the X connection and the surface layer are
	// single-threaded.
	mu      sync.Mutex
	windows Snapshotter
}

// NewServer creates a server over windows. cfg may be nil, in which case
// explain_config is not offered.
func NewServer(windows Snapshotter, cfg *config.LoadResult, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		config:  cfg,
		logger:  logger,
		windows: windows,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
// Run serves on stdio until the client disconnects or ctx is cancelled.
// Cancellation is a clean shutdown.
func (s *Server) Run(ctx context.Context) error {
	err := s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the windows on the XWayland display with what the surface layer decided for each: kind, class, title, monitor, geometry, floating, focus and border flags, and max size (0 means unbounded).",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "classify_window",
		Description: "Classify one window by id and return the same report list_windows gives for it.",
	}, s.handleClassifyWindow)

	if s.config != nil {
		mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
			Name:        "explain_config",
			Description: "Show the effective value of a winsurf configuration setting and the file and line it came from.",
		}, s.handleExplainConfig)
	}
}

func (s *Server) snapshot() ([]inspect.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.windows.Snapshot()
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	kind := strings.ToLower(strings.TrimSpace(args.Kind))
	switch kind {
	case "", "native", "xwayland":
	default:
		return nil, ListWindowsOutput{}, fmt.Errorf("unknown kind %q (want native or xwayland)", args.Kind)
	}

	reports, err := s.snapshot()
	if err != nil {
		s.logger.Warn("list_windows failed", "error", err)
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{Windows: make([]inspect.Report, 0, len(reports))}
	for _, r := range reports {
		if kind != "" && r.Kind != kind {
			continue
		}
		if args.FloatingOnly && !r.Floating {
			continue
		}
		out.Windows = append(out.Windows, r)
	}
	s.logger.Debug("list_windows", "count", len(out.Windows), "total", len(reports))
	return nil, out, nil
}

func (s *Server) handleClassifyWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args ClassifyWindowInput) (*mcpsdk.CallToolResult, inspect.Report, error) {
	id := strings.TrimSpace(args.ID)
	if id == "" {
		return nil, inspect.Report{}, fmt.Errorf("id is required")
	}

	reports, err := s.snapshot()
	if err != nil {
		return nil, inspect.Report{}, err
	}
	r, ok := inspect.Find(reports, id)
	if !ok {
		return nil, inspect.Report{}, fmt.Errorf("no window with id %s", id)
	}
	return nil, r, nil
}

func (s *Server) handleExplainConfig(_ context.Context, _ *mcpsdk.CallToolRequest, args ExplainConfigInput) (*mcpsdk.CallToolResult, ExplainConfigOutput, error) {
	value, src, err := config.Explain(s.config, args.Path)
	if err != nil {
		return nil, ExplainConfigOutput{}, err
	}
	data, err := yaml.Marshal(value)
	if err != nil {
		return nil, ExplainConfigOutput{}, fmt.Errorf("failed to encode value: %w", err)
	}
	return nil, ExplainConfigOutput{
		Path:   args.Path,
		Source: src.String(),
		Value:  strings.TrimRight(string(data), "\n"),
	}, nil
}
