package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/1broseidon/winsurf/internal/inspect"
)

func runInspect(args []string) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: winsurf inspect [--path P] [--display :N] [--scale F] [--watch] [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List the client windows on the XWayland display and how the surface")
		fmt.Fprintln(os.Stderr, "layer classifies, decorates and constrains each of them.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	path := fs.String("path", "", "Config file path (default: ~/.config/winsurf/config.yaml)")
	display := fs.String("display", "", "X display of the XWayland server (default: xwayland.display or $DISPLAY)")
	scale := fs.Float64("scale", 1, "Monitor scale used for scale compensation")
	watch := fs.Bool("watch", false, "Re-print whenever windows or their properties change")
	jsonOut := fs.Bool("json", false, "Output reports as JSON")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "inspect takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger, closer, err := newLogger(res.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()

	sess, err := openSession(res.Config, *display, *scale, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sess.Close()

	show := func() error {
		reports, err := sess.inspector.Snapshot()
		if err != nil {
			return err
		}
		if *jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		}
		return inspect.WriteTable(os.Stdout, reports, terminalWidth())
	}

	if err := show(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if !*watch {
		return 0
	}

	redraw := !*jsonOut && term.IsTerminal(int(os.Stdout.Fd()))
	if err := sess.conn.Watch(func() {
		if redraw {
			fmt.Print("\x1b[H\x1b[2J")
		}
		if err := show(); err != nil {
			logger.Warn("inspect failed", "error", err)
		}
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to watch display: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("watching for window changes")
	sess.conn.Run(ctx)
	return 0
}

// terminalWidth returns the stdout width, or 0 when stdout is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}
