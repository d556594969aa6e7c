// Package lifecycle routes activation, close, fullscreen and tiling requests
// to the protocol that backs a window.
package lifecycle

import (
	"log/slog"

	"github.com/1broseidon/winsurf/internal/window"
)

// FocusChange is the focus bookkeeping an activation implies. The caller
// applies it to the compositor's focus registry.
type FocusChange struct {
	// Changed is false for deactivation; the other fields are then zero.
	Changed bool
	Surface window.SurfaceRef
	Window  *window.Window

	// SetWorkspaceLast is false for pinned windows, whose workspace keeps
	// its previous last-focused window.
	SetWorkspaceLast bool
	WorkspaceID      int
}

// Dispatcher sends lifecycle requests to window surfaces.
type Dispatcher struct {
	logger *slog.Logger
}

// NewDispatcher creates a Dispatcher. A nil logger uses slog.Default().
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger}
}

// Activate sets the activated state of w. XWayland windows are un-minimized
// and raised before they are activated.
func (d *Dispatcher) Activate(w *window.Window, state bool) FocusChange {
	var ref window.SurfaceRef
	switch s := w.Surface().(type) {
	case *window.Legacy:
		if state {
			s.Handle.SetMinimized(false)
			s.Handle.RestackAbove()
		}
		s.Handle.Activate(state)
		ref = s.Handle.Surface()
	case *window.Native:
		s.Toplevel.SetActivated(state)
		ref = s.Toplevel.Surface()
	}

	if !state {
		return FocusChange{}
	}
	d.logger.Debug("window activated", "window", w.String())
	return FocusChange{
		Changed:          true,
		Surface:          ref,
		Window:           w,
		SetWorkspaceLast: !w.Flags.Pinned,
		WorkspaceID:      w.WorkspaceID,
	}
}

// ActivateSurface activates a surface that is not necessarily the root of a
// window, such as one picked by the seat under the cursor. Native surfaces
// without a toplevel role are ignored.
func (d *Dispatcher) ActivateSurface(s window.Surface, state bool) {
	switch s := s.(type) {
	case *window.Legacy:
		s.Handle.Activate(state)
	case *window.Native:
		if _, ok := s.Toplevel.Current(); !ok {
			return
		}
		s.Toplevel.SetActivated(state)
	}
}

// Close asks the client to close w. The client may ignore it.
func (d *Dispatcher) Close(w *window.Window) {
	switch s := w.Surface().(type) {
	case *window.Legacy:
		s.Handle.Close()
	case *window.Native:
		s.Toplevel.SendClose()
	}
}

// SetFullscreen sets the fullscreen state of w and mirrors it onto the
// window's foreign toplevel handle when there is one.
func (d *Dispatcher) SetFullscreen(w *window.Window, state bool) {
	switch s := w.Surface().(type) {
	case *window.Legacy:
		s.Handle.SetFullscreen(state)
	case *window.Native:
		s.Toplevel.SetFullscreen(state)
	}

	if w.ForeignToplevel != nil {
		w.ForeignToplevel.SetFullscreen(state)
	}
}

// SetTiled tells a native window which edges are tiled. XWayland has no
// equivalent state.
func (d *Dispatcher) SetTiled(w *window.Window, edges window.Edges) {
	switch s := w.Surface().(type) {
	case *window.Legacy:
	case *window.Native:
		s.Toplevel.SetTiled(edges)
	}
}

// SurfaceAt returns the leaf surface under point, given in window-local
// coordinates, and the point relative to that surface.
func (d *Dispatcher) SurfaceAt(w *window.Window, point window.Vector) (window.SurfaceRef, window.Vector, bool) {
	switch s := w.Surface().(type) {
	case *window.Legacy:
		return s.Handle.SurfaceAt(point.X, point.Y)
	case *window.Native:
		return s.Toplevel.SurfaceAt(point.X, point.Y)
	}
	return nil, window.Vector{}, false
}

// Surface returns the root surface of w.
func (d *Dispatcher) Surface(w *window.Window) window.SurfaceRef {
	switch s := w.Surface().(type) {
	case *window.Legacy:
		return s.Handle.Surface()
	case *window.Native:
		return s.Toplevel.Surface()
	}
	return nil
}
