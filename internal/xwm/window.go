package xwm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/1broseidon/winsurf/internal/window"
)

// Surface identifies an X window as a window.SurfaceRef.
type Surface xproto.Window

func (s Surface) SurfaceID() uint32 { return uint32(s) }

// Window is a client window on the XWayland display. Metadata is served from
// the snapshot taken by Refresh; requests go to the server immediately and
// failures are logged.
type Window struct {
	conn  *Connection
	id    xproto.Window
	props Props
}

var _ window.LegacySurface = (*Window)(nil)

// NewWindow wraps id and reads its properties.
func (c *Connection) NewWindow(id xproto.Window) *Window {
	w := &Window{conn: c, id: id}
	w.Refresh()
	return w
}

// ID returns the X window id.
func (w *Window) ID() xproto.Window {
	return w.id
}

// Refresh re-reads the window properties.
func (w *Window) Refresh() {
	w.props = w.conn.readProps(w.id)
}

// Props returns the current property snapshot.
func (w *Window) Props() Props {
	return w.props
}

func (w *Window) Surface() window.SurfaceRef { return Surface(w.id) }

func (w *Window) Title() (string, bool) { return deref(w.props.Title) }
func (w *Window) Class() (string, bool) { return deref(w.props.Class) }
func (w *Window) Role() (string, bool)  { return deref(w.props.Role) }

func (w *Window) WindowTypes() []xproto.Atom {
	return w.conn.atoms.Names(w.props.Types)
}

func (w *Window) SizeHints() *window.SizeHints { return w.props.Hints }
func (w *Window) Modal() bool                  { return w.props.HasState(stateModal) }
func (w *Window) HasParent() bool              { return w.props.TransientFor != 0 }

// Geometry returns the window's root-relative geometry.
func (w *Window) Geometry() window.Box {
	c := w.conn
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(w.id)).Reply()
	if err != nil {
		c.logger.Debug("failed to get window geometry", "xid", w.id, "error", err)
		return window.Box{}
	}
	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), w.id, c.Root, 0, 0).Reply()
	if err != nil {
		c.logger.Debug("failed to translate window coordinates", "xid", w.id, "error", err)
		return window.Box{}
	}
	return window.Box{
		X:      float64(translate.DstX),
		Y:      float64(translate.DstY),
		Width:  float64(geom.Width),
		Height: float64(geom.Height),
	}
}

// Activate gives the window input focus and publishes it as
// _NET_ACTIVE_WINDOW. Deactivating clears the active window.
func (w *Window) Activate(activated bool) {
	c := w.conn
	if !activated {
		if err := ewmh.ActiveWindowSet(c.XUtil, 0); err != nil {
			c.logger.Warn("failed to clear active window", "xid", w.id, "error", err)
		}
		return
	}

	if err := xproto.SetInputFocusChecked(c.XUtil.Conn(), xproto.InputFocusPointerRoot, w.id, xproto.TimeCurrentTime).Check(); err != nil {
		c.logger.Warn("failed to focus window", "xid", w.id, "error", err)
	}
	if err := ewmh.ActiveWindowSet(c.XUtil, w.id); err != nil {
		c.logger.Warn("failed to set active window", "xid", w.id, "error", err)
	}
}

// SetMinimized moves the window between the Normal and Iconic ICCCM states.
func (w *Window) SetMinimized(minimized bool) {
	c := w.conn
	state := uint(icccm.StateNormal)
	if minimized {
		state = icccm.StateIconic
	}
	if err := icccm.WmStateSet(c.XUtil, w.id, &icccm.WmState{State: state}); err != nil {
		c.logger.Warn("failed to set WM_STATE", "xid", w.id, "minimized", minimized, "error", err)
	}

	states := without(w.props.States, stateHidden)
	if minimized {
		states = append(states, stateHidden)
	}
	w.setStates(states)
}

// RestackAbove raises the window to the top of the X stacking order.
func (w *Window) RestackAbove() {
	c := w.conn
	err := xproto.ConfigureWindowChecked(c.XUtil.Conn(), w.id,
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove}).Check()
	if err != nil {
		c.logger.Warn("failed to restack window", "xid", w.id, "error", err)
	}
}

// Configure moves and resizes the window.
func (w *Window) Configure(x, y, width, height int32) {
	c := w.conn
	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	values := []uint32{uint32(x), uint32(y), uint32(max(width, 1)), uint32(max(height, 1))}
	if err := xproto.ConfigureWindowChecked(c.XUtil.Conn(), w.id, mask, values).Check(); err != nil {
		c.logger.Warn("failed to configure window", "xid", w.id, "error", err)
	}
}

// SetFullscreen updates _NET_WM_STATE_FULLSCREEN.
func (w *Window) SetFullscreen(fullscreen bool) {
	states := without(w.props.States, stateFullscreen)
	if fullscreen {
		states = append(states, stateFullscreen)
	}
	w.setStates(states)
}

// Close asks the client to close via WM_DELETE_WINDOW, or kills the client
// when it does not support the protocol.
func (w *Window) Close() {
	c := w.conn
	if w.props.SupportsProtocol(atomWMDeleteWindow) {
		deleteAtom, err := c.atoms.intern(atomWMDeleteWindow)
		if err == nil {
			err = c.sendClientMessage(w.id, w.id, xproto.EventMaskNoEvent, atomWMProtocols, uint32(deleteAtom), xproto.TimeCurrentTime)
		}
		if err != nil {
			c.logger.Warn("failed to send WM_DELETE_WINDOW", "xid", w.id, "error", err)
		}
		return
	}
	if err := xproto.KillClientChecked(c.XUtil.Conn(), uint32(w.id)).Check(); err != nil {
		c.logger.Warn("failed to kill client", "xid", w.id, "error", err)
	}
}

// SurfaceAt hit-tests the window. X11 clients draw into a single surface.
func (w *Window) SurfaceAt(x, y float64) (window.SurfaceRef, window.Vector, bool) {
	geom := w.Geometry()
	if x < 0 || y < 0 || x >= geom.Width || y >= geom.Height {
		return nil, window.Vector{}, false
	}
	return Surface(w.id), window.Vector{X: x, Y: y}, true
}

func (w *Window) setStates(states []string) {
	c := w.conn
	if err := ewmh.WmStateSet(c.XUtil, w.id, states); err != nil {
		c.logger.Warn("failed to set _NET_WM_STATE", "xid", w.id, "error", err)
		return
	}
	w.props.States = states
}

func without(list []string, drop string) []string {
	out := make([]string, 0, len(list)+1)
	for _, s := range list {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
