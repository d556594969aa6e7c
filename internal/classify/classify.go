// Package classify derives floating, focus and border signals from surface
// metadata.
package classify

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/1broseidon/winsurf/internal/window"
)

// Result is the outcome of one classification pass.
type Result struct {
	Floating       bool
	ShouldNotFocus bool
	NoInitialFocus bool
	IsModal        bool
}

// Engine classifies windows against a window type atom table.
type Engine struct {
	atoms  AtomTable
	logger *slog.Logger
}

// NewEngine creates an engine. A nil logger uses slog.Default().
func NewEngine(atoms AtomTable, logger *slog.Logger) *Engine {
	if atoms == nil {
		atoms = StaticAtoms{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{atoms: atoms, logger: logger}
}

// Classify computes the floating signal for w and records the side-effect
// flags on it. ShouldNotFocus, NoInitialFocus and IsModal are only ever
// raised; Floating is overwritten.
func (e *Engine) Classify(w *window.Window) Result {
	var res Result
	switch s := w.Surface().(type) {
	case *window.Legacy:
		res = e.classifyLegacy(w, s)
	case *window.Native:
		res = classifyNative(s)
	}

	w.Flags.Floating = res.Floating
	w.Flags.ShouldNotFocus = w.Flags.ShouldNotFocus || res.ShouldNotFocus
	w.Flags.NoInitialFocus = w.Flags.NoInitialFocus || res.NoInitialFocus
	w.Flags.IsModal = w.Flags.IsModal || res.IsModal
	return res
}

func (e *Engine) classifyLegacy(w *window.Window, s *window.Legacy) Result {
	var res Result
	h := s.Handle

	if name, ok := matchType(e.atoms, h.WindowTypes(), floatingTypes); ok {
		res.Floating = true
		if name == TypeDropdownMenu || name == TypeMenu {
			res.ShouldNotFocus = true
		}
		if name != TypeDialog {
			res.NoInitialFocus = true
		}
		return res
	}

	if role, ok := h.Role(); ok {
		if !utf8.ValidString(role) {
			e.logger.Warn("skipping malformed window role", "window", w.String(), "field", "role")
		} else if strings.Contains(role, "pop-up") || strings.Contains(role, "task_dialog") {
			res.Floating = true
			return res
		}
	}

	if h.Modal() {
		res.IsModal = true
		res.Floating = true
		return res
	}

	if s.OverrideRedirect() {
		res.Floating = true
		return res
	}

	if hints := h.SizeHints(); hints != nil {
		if h.HasParent() || (hints.MinWidth == hints.MaxWidth && hints.MinHeight == hints.MaxHeight) {
			res.Floating = true
		}
	}
	return res
}

func classifyNative(s *window.Native) Result {
	t := s.Toplevel
	if t.HasParent() {
		return Result{Floating: true}
	}
	st, ok := t.Current()
	if !ok {
		return Result{}
	}
	if st.MinWidth != 0 && st.MinHeight != 0 && (st.MinWidth == st.MaxWidth || st.MinHeight == st.MaxHeight) {
		return Result{Floating: true}
	}
	return Result{}
}

// SuppressBorders reports whether an XWayland window asked not to be
// decorated, and records it on the window. Native windows never suppress
// borders through this path.
func (e *Engine) SuppressBorders(w *window.Window) bool {
	switch s := w.Surface().(type) {
	case *window.Legacy:
		_, typed := matchType(e.atoms, s.Handle.WindowTypes(), borderlessTypes)
		if typed || s.OverrideRedirect() {
			w.Flags.NoBorders = true
			return true
		}
		return false
	case *window.Native:
		return false
	}
	return false
}
