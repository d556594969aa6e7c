// Package surfaces is the entry point the compositor uses to operate on
// windows without caring which protocol backs them.
package surfaces

import (
	"log/slog"
	"unicode/utf8"

	"github.com/1broseidon/winsurf/internal/classify"
	"github.com/1broseidon/winsurf/internal/geometry"
	"github.com/1broseidon/winsurf/internal/lifecycle"
	"github.com/1broseidon/winsurf/internal/scaleoverride"
	"github.com/1broseidon/winsurf/internal/window"
)

// RuleMatcher resolves per-window configuration from a window's class and
// title.
type RuleMatcher interface {
	MatchRules(class, title string) window.RuleData
}

// Options configures a Manager. Atoms, Options and Monitors are required.
type Options struct {
	Atoms    classify.AtomTable
	Options  geometry.Options
	Monitors geometry.Monitors

	// Rules is optional; without it ApplyRules leaves windows untouched.
	Rules RuleMatcher

	// Outputs enables the XWayland scale override for the Bridge client.
	Outputs scaleoverride.Registry
	Bridge  scaleoverride.Client

	Logger *slog.Logger
}

// Manager dispatches window operations to the component that owns them.
type Manager struct {
	classifier *classify.Engine
	negotiator *geometry.Negotiator
	dispatcher *lifecycle.Dispatcher
	override   *scaleoverride.Synthesizer
	rules      RuleMatcher
	logger     *slog.Logger
}

// NewManager creates a Manager.
func NewManager(opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := &Manager{
		classifier: classify.NewEngine(opts.Atoms, logger.With("component", "classify")),
		negotiator: geometry.NewNegotiator(opts.Options, opts.Monitors, logger.With("component", "geometry")),
		dispatcher: lifecycle.NewDispatcher(logger.With("component", "lifecycle")),
		rules:      opts.Rules,
		logger:     logger,
	}
	if opts.Outputs != nil {
		m.override = scaleoverride.New(opts.Outputs, opts.Bridge, logger.With("component", "scaleoverride"))
	}
	return m
}

// Classify computes and records the floating signal for w.
func (m *Manager) Classify(w *window.Window) classify.Result {
	return m.classifier.Classify(w)
}

// SuppressBorders reports whether w asked not to be decorated.
func (m *Manager) SuppressBorders(w *window.Window) bool {
	return m.classifier.SuppressBorders(w)
}

// Geometry returns the geometry the client describes for w.
func (m *Manager) Geometry(w *window.Window) window.Box {
	return m.negotiator.Geometry(w)
}

// Resize configures w to size, see geometry.Negotiator.Resize.
func (m *Manager) Resize(w *window.Window, size window.Vector, force bool) bool {
	return m.negotiator.Resize(w, size, force)
}

// MoveLegacy moves a mapped XWayland window to pos.
func (m *Manager) MoveLegacy(w *window.Window, pos window.Vector) {
	m.negotiator.MoveLegacy(w, pos)
}

// MaxSize returns the largest size w accepts.
func (m *Manager) MaxSize(w *window.Window) window.Vector {
	return m.negotiator.MaxSize(w)
}

// Activate sets the activated state of w and returns the focus change the
// caller must apply.
func (m *Manager) Activate(w *window.Window, state bool) lifecycle.FocusChange {
	return m.dispatcher.Activate(w, state)
}

// ActivateSurface sets the activated state of a bare surface.
func (m *Manager) ActivateSurface(s window.Surface, state bool) {
	m.dispatcher.ActivateSurface(s, state)
}

// Close asks the client of w to close it.
func (m *Manager) Close(w *window.Window) {
	m.dispatcher.Close(w)
}

// SetFullscreen sets the fullscreen state of w.
func (m *Manager) SetFullscreen(w *window.Window, state bool) {
	m.dispatcher.SetFullscreen(w, state)
}

// SetTiled sets the tiled edges of a native window.
func (m *Manager) SetTiled(w *window.Window, edges window.Edges) {
	m.dispatcher.SetTiled(w, edges)
}

// SurfaceAt hit-tests the surface tree of w at a window-local point.
func (m *Manager) SurfaceAt(w *window.Window, point window.Vector) (window.SurfaceRef, window.Vector, bool) {
	return m.dispatcher.SurfaceAt(w, point)
}

// Surface returns the root surface of w.
func (m *Manager) Surface(w *window.Window) window.SurfaceRef {
	return m.dispatcher.Surface(w)
}

// UpdateScaleOverride enables or disables the XWayland scale override. It
// does nothing when the Manager was built without an output registry.
func (m *Manager) UpdateScaleOverride(enabled bool) {
	if m.override == nil {
		return
	}
	m.override.Update(enabled)
}

// MonitorChanged re-applies the scale override after a monitor changed.
func (m *Manager) MonitorChanged() {
	if m.override == nil {
		return
	}
	m.override.MonitorChanged()
}

// ScaleOverride returns the synthesizer state, Unscaled when disabled.
func (m *Manager) ScaleOverride() (scaleoverride.State, float64) {
	if m.override == nil {
		return scaleoverride.Unscaled, 0
	}
	return m.override.State()
}

// Title returns the window title, or "" when w is not mapped or has none.
func (m *Manager) Title(w *window.Window) string {
	if !m.queryable(w) {
		return ""
	}
	var title string
	var ok bool
	switch s := w.Surface().(type) {
	case *window.Legacy:
		title, ok = s.Handle.Title()
	case *window.Native:
		title, ok = s.Toplevel.Title()
	}
	return m.text(w, "title", title, ok)
}

// AppIDClass returns the X11 class or the native app id of w, or "" when
// w is not mapped or has none.
func (m *Manager) AppIDClass(w *window.Window) string {
	if !m.queryable(w) {
		return ""
	}
	var class string
	var ok bool
	switch s := w.Surface().(type) {
	case *window.Legacy:
		class, ok = s.Handle.Class()
	case *window.Native:
		class, ok = s.Toplevel.AppID()
	}
	return m.text(w, "class", class, ok)
}

// ApplyRules resolves the configured window rules for w and stores them on
// the window.
func (m *Manager) ApplyRules(w *window.Window) window.RuleData {
	if m.rules == nil {
		return w.Rules
	}
	w.Rules = m.rules.MatchRules(m.AppIDClass(w), m.Title(w))
	return w.Rules
}

// queryable reports whether title and class may be read. XWayland windows
// also need the X11 side mapped, and override-redirect windows never expose
// them.
func (m *Manager) queryable(w *window.Window) bool {
	if w == nil || !w.IsMapped {
		return false
	}
	switch s := w.Surface().(type) {
	case *window.Legacy:
		return w.MappedLegacy && !s.OverrideRedirect()
	case *window.Native:
		return true
	}
	return false
}

func (m *Manager) text(w *window.Window, field, value string, ok bool) string {
	if !ok {
		return ""
	}
	if !utf8.ValidString(value) {
		m.logger.Warn("skipping malformed window metadata", "window", w.String(), "field", field)
		return ""
	}
	return value
}
