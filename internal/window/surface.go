package window

import "github.com/BurntSushi/xgb/xproto"

// SurfaceRef is an opaque reference to a protocol surface owned by the
// compositor. It is only valid for the duration of the call that returned it.
type SurfaceRef interface {
	SurfaceID() uint32
}

// NativeToplevel is the native windowing-protocol (xdg toplevel) handle of a
// window.
type NativeToplevel interface {
	Surface() SurfaceRef
	// Current returns the committed toplevel state. ok is false while the
	// xdg surface has no toplevel role yet.
	Current() (state ToplevelState, ok bool)
	Title() (string, bool)
	AppID() (string, bool)
	HasParent() bool
	Geometry() Box

	SetActivated(activated bool)
	SetSize(width, height int32)
	SetTiled(edges Edges)
	SetFullscreen(fullscreen bool)
	SendClose()
	SurfaceAt(x, y float64) (SurfaceRef, Vector, bool)
}

// LegacySurface is the XWayland (X11 compatibility) handle of a window.
type LegacySurface interface {
	Surface() SurfaceRef
	Title() (string, bool)
	Class() (string, bool)
	Role() (string, bool)
	WindowTypes() []xproto.Atom
	// SizeHints returns nil when the client never set WM_NORMAL_HINTS.
	SizeHints() *SizeHints
	Modal() bool
	HasParent() bool
	// Geometry is the live X window geometry.
	Geometry() Box

	Activate(activated bool)
	SetMinimized(minimized bool)
	RestackAbove()
	Configure(x, y, width, height int32)
	SetFullscreen(fullscreen bool)
	Close()
	SurfaceAt(x, y float64) (SurfaceRef, Vector, bool)
}

// ForeignToplevel mirrors window state to foreign-toplevel-management clients.
type ForeignToplevel interface {
	SetFullscreen(fullscreen bool)
}

// Surface is the closed set of surface variants a window can be backed by:
// *Native or *Legacy.
type Surface interface {
	Kind() Kind
	sealed()
}

// Native is the native-protocol variant.
type Native struct {
	Toplevel NativeToplevel
}

// Legacy is the XWayland variant.
type Legacy struct {
	Handle LegacySurface
	Class  LegacyClass
}

func (*Native) Kind() Kind { return KindNative }
func (*Legacy) Kind() Kind { return KindLegacy }

func (*Native) sealed() {}
func (*Legacy) sealed() {}

// OverrideRedirect reports whether the X11 window bypasses window management.
func (l *Legacy) OverrideRedirect() bool {
	return l.Class == LegacyOverrideRedirect
}
