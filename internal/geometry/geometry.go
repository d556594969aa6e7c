// Package geometry resolves requested against actual window geometry and
// sends configure requests to the right protocol.
package geometry

import (
	"log/slog"
	"math"

	"github.com/1broseidon/winsurf/internal/window"
)

// minPlausibleMax is the smallest max-size axis taken at face value.
const minPlausibleMax = 5

// Options exposes the configuration this package reads on every call.
type Options interface {
	ForceZeroScaling() bool
}

// Monitors looks up monitors owned by the compositor.
type Monitors interface {
	MonitorByID(id int) (*window.Monitor, bool)
}

// Negotiator sizes and positions windows.
type Negotiator struct {
	opts     Options
	monitors Monitors
	logger   *slog.Logger
}

// NewNegotiator creates a Negotiator. A nil logger uses slog.Default().
func NewNegotiator(opts Options, monitors Monitors, logger *slog.Logger) *Negotiator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Negotiator{opts: opts, monitors: monitors, logger: logger}
}

// Geometry returns the window geometry as the client describes it.
// XWayland windows prefer their size hints unless they are override-redirect.
func (n *Negotiator) Geometry(w *window.Window) window.Box {
	switch s := w.Surface().(type) {
	case *window.Legacy:
		if hints := s.Handle.SizeHints(); hints != nil && !s.OverrideRedirect() {
			return window.Box{
				X:      float64(hints.X),
				Y:      float64(hints.Y),
				Width:  float64(hints.Width),
				Height: float64(hints.Height),
			}
		}
		return s.Handle.Geometry()
	case *window.Native:
		return s.Toplevel.Geometry()
	}
	return window.Box{}
}

// Resize asks the client to take size at the window's real position.
// Unless force is set, the request is dropped when the size was already
// reported and, for XWayland windows, the position has not moved since.
// It reports whether a configure was sent.
func (n *Negotiator) Resize(w *window.Window, size window.Vector, force bool) bool {
	if !force && w.ReportedSize == size && (w.RealPosition == w.ReportedPosition || !w.IsLegacy()) {
		return false
	}

	// Written before the configure so a synchronous reply sees it.
	w.ReportedPosition = w.RealPosition
	w.ReportedSize = size
	w.SurfaceScale = 1

	switch s := w.Surface().(type) {
	case *window.Legacy:
		pos := w.RealPosition
		if n.forceZeroScaling() {
			if mon, ok := n.monitor(w.MonitorID); ok {
				size = size.Scale(mon.Scale)
				pos = pos.Scale(mon.Scale)
				w.SurfaceScale = mon.Scale
			} else {
				n.logger.Debug("no monitor for scale compensation", "window", w.String(), "monitor", w.MonitorID)
			}
		}
		s.Handle.Configure(round(pos.X), round(pos.Y), round(size.X), round(size.Y))
	case *window.Native:
		s.Toplevel.SetSize(round(size.X), round(size.Y))
	}
	return true
}

// MoveLegacy moves a mapped XWayland window to pos keeping its real size.
// Native windows position themselves and are left alone.
func (n *Negotiator) MoveLegacy(w *window.Window, pos window.Vector) {
	if !w.ValidMapped() {
		return
	}
	switch s := w.Surface().(type) {
	case *window.Legacy:
		s.Handle.Configure(round(pos.X), round(pos.Y), round(w.RealSize.X), round(w.RealSize.Y))
	case *window.Native:
	}
}

// MaxSize returns the largest size the window accepts. Windows without a
// usable constraint, and axes below a plausible minimum, get
// window.UnboundedSize.
func (n *Negotiator) MaxSize(w *window.Window) window.Vector {
	if !w.ValidMapped() || w.Rules.NoMaxSize {
		return window.UnboundedSize
	}

	var limit window.Vector
	switch s := w.Surface().(type) {
	case *window.Legacy:
		hints := s.Handle.SizeHints()
		if hints == nil {
			return window.UnboundedSize
		}
		limit = window.Vector{X: float64(hints.MaxWidth), Y: float64(hints.MaxHeight)}
	case *window.Native:
		st, ok := s.Toplevel.Current()
		if !ok {
			return window.UnboundedSize
		}
		limit = window.Vector{X: float64(st.MaxWidth), Y: float64(st.MaxHeight)}
	}

	if limit.X < minPlausibleMax {
		limit.X = window.UnboundedSize.X
	}
	if limit.Y < minPlausibleMax {
		limit.Y = window.UnboundedSize.Y
	}
	return limit
}

func (n *Negotiator) forceZeroScaling() bool {
	return n.opts != nil && n.opts.ForceZeroScaling()
}

func (n *Negotiator) monitor(id int) (*window.Monitor, bool) {
	if n.monitors == nil {
		return nil, false
	}
	mon, ok := n.monitors.MonitorByID(id)
	if !ok || mon == nil {
		return nil, false
	}
	return mon, true
}

func round(v float64) int32 {
	return int32(math.Round(v))
}
