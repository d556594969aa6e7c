// Package diaglog sets up the structured diagnostics logger and its
// size-rotated log file.
package diaglog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Options configures the diagnostics log file.
type Options struct {
	FilePath  string
	MaxSizeMB int
	MaxFiles  int
}

// Writer is an append-only log file rotated by size.
// With MaxFiles=3, rotation keeps file.1, file.2 and file.3.
type Writer struct {
	mu          sync.Mutex
	file        *os.File
	opts        Options
	currentSize int64
}

// Open opens or creates the log file with owner-only permissions.
func Open(opts Options) (*Writer, error) {
	if opts.FilePath == "" {
		return nil, fmt.Errorf("log file path is empty")
	}

	dir := filepath.Dir(opts.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}

	f, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", opts.FilePath, err)
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	return &Writer{file: f, opts: opts, currentSize: stat.Size()}, nil
}

// Write appends p, rotating first when the file has reached its size limit.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, os.ErrClosed
	}

	maxBytes := int64(w.opts.MaxSizeMB) * 1024 * 1024
	if maxBytes > 0 && w.currentSize >= maxBytes {
		if err := w.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
		if w.file == nil {
			return 0, os.ErrClosed
		}
	}

	n, err := w.file.Write(p)
	w.currentSize += int64(n)
	return n, err
}

// Close closes the file. Further writes fail with os.ErrClosed.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *Writer) rotate() error {
	if w.file != nil {
		w.file.Close()
		w.file = nil
	}

	base := w.opts.FilePath
	if w.opts.MaxFiles <= 0 {
		os.Remove(base)
	} else {
		os.Remove(fmt.Sprintf("%s.%d", base, w.opts.MaxFiles))
		for i := w.opts.MaxFiles - 1; i >= 1; i-- {
			os.Rename(fmt.Sprintf("%s.%d", base, i), fmt.Sprintf("%s.%d", base, i+1))
		}
		if err := os.Rename(base, base+".1"); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	}

	f, err := os.OpenFile(base, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open new log file: %w", err)
	}
	w.file = f
	w.currentSize = 0
	return nil
}

// ParseLevel converts a configured level name to a slog level.
// Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New builds a text logger writing to stderr and, when opts names a file,
// to the rotated log file as well. The returned closer is never nil.
func New(stderr io.Writer, level string, opts Options) (*slog.Logger, io.Closer, error) {
	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if opts.FilePath == "" {
		return slog.New(slog.NewTextHandler(stderr, handlerOpts)), nopCloser{}, nil
	}

	w, err := Open(opts)
	if err != nil {
		return nil, nil, err
	}
	out := io.MultiWriter(stderr, w)
	return slog.New(slog.NewTextHandler(out, handlerOpts)), w, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
