package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/1broseidon/winsurf/internal/classify"
	"github.com/1broseidon/winsurf/internal/config"
	"github.com/1broseidon/winsurf/internal/diaglog"
	"github.com/1broseidon/winsurf/internal/inspect"
	"github.com/1broseidon/winsurf/internal/surfaces"
	"github.com/1broseidon/winsurf/internal/xwm"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "inspect":
		os.Exit(runInspect(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: winsurf <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  inspect             Classify the windows on the XWayland display")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'winsurf <command> --help' for command-specific options.")
}

// loadConfig loads path, or the default location when path is empty.
func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

// newLogger builds the process logger from the logging configuration.
func newLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	logCfg := cfg.GetLoggingConfig()
	return diaglog.New(os.Stderr, cfg.LogLevel, diaglog.Options{
		FilePath:  logCfg.File,
		MaxSizeMB: logCfg.MaxSizeMB,
		MaxFiles:  logCfg.MaxFiles,
	})
}

// session is a live connection to the XWayland display with the surface
// layer wired on top of it.
type session struct {
	conn      *xwm.Connection
	inspector *inspect.Inspector
}

func openSession(cfg *config.Config, display string, scale float64, logger *slog.Logger) (*session, error) {
	if display == "" {
		display = cfg.XWayland.Display
	}

	conn, err := xwm.Dial(display, logger.With("component", "xwm"))
	if err != nil {
		return nil, err
	}

	atoms := conn.Atoms()
	if err := atoms.Preload(classify.AtomNames()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to intern window type atoms: %w", err)
	}

	monitors, err := conn.Monitors(scale)
	if err != nil {
		conn.Close()
		return nil, err
	}

	manager := surfaces.NewManager(surfaces.Options{
		Atoms:    atoms,
		Options:  cfg,
		Monitors: monitors,
		Rules:    cfg,
		Logger:   logger,
	})

	return &session{
		conn:      conn,
		inspector: inspect.New(conn, monitors, manager),
	}, nil
}

func (s *session) Close() {
	s.conn.Close()
}

func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}
