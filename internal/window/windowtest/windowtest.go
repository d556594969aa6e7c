// Package windowtest provides recording fakes for the surface handles and
// output resources consumed by the window layer.
package windowtest

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/winsurf/internal/window"
)

// Ref is a trivial window.SurfaceRef.
type Ref uint32

func (r Ref) SurfaceID() uint32 { return uint32(r) }

// Configure records one configure or set-size request.
type Configure struct {
	X, Y          int32
	Width, Height int32
}

// Legacy is a fake XWayland surface. Metadata fields are read by the code
// under test; request fields record what was sent.
type Legacy struct {
	Ref Ref

	TitleValue *string
	ClassValue *string
	RoleValue  *string
	Types      []xproto.Atom
	Hints      *window.SizeHints
	IsModal    bool
	Parent     bool
	Geom       window.Box

	Calls      []string
	Configures []Configure
	Activated  bool
	Minimized  bool
	Fullscreen bool
	Closed     int
}

var _ window.LegacySurface = (*Legacy)(nil)

func (l *Legacy) Surface() window.SurfaceRef { return l.Ref }

func (l *Legacy) Title() (string, bool) { return optional(l.TitleValue) }
func (l *Legacy) Class() (string, bool) { return optional(l.ClassValue) }
func (l *Legacy) Role() (string, bool)  { return optional(l.RoleValue) }

func (l *Legacy) WindowTypes() []xproto.Atom  { return l.Types }
func (l *Legacy) SizeHints() *window.SizeHints { return l.Hints }
func (l *Legacy) Modal() bool                  { return l.IsModal }
func (l *Legacy) HasParent() bool              { return l.Parent }
func (l *Legacy) Geometry() window.Box         { return l.Geom }

func (l *Legacy) Activate(activated bool) {
	l.Activated = activated
	l.Calls = append(l.Calls, fmt.Sprintf("activate(%t)", activated))
}

func (l *Legacy) SetMinimized(minimized bool) {
	l.Minimized = minimized
	l.Calls = append(l.Calls, fmt.Sprintf("minimize(%t)", minimized))
}

func (l *Legacy) RestackAbove() {
	l.Calls = append(l.Calls, "restack")
}

func (l *Legacy) Configure(x, y, width, height int32) {
	l.Configures = append(l.Configures, Configure{X: x, Y: y, Width: width, Height: height})
	l.Calls = append(l.Calls, fmt.Sprintf("configure(%d,%d,%d,%d)", x, y, width, height))
}

func (l *Legacy) SetFullscreen(fullscreen bool) {
	l.Fullscreen = fullscreen
	l.Calls = append(l.Calls, fmt.Sprintf("fullscreen(%t)", fullscreen))
}

func (l *Legacy) Close() {
	l.Closed++
	l.Calls = append(l.Calls, "close")
}

func (l *Legacy) SurfaceAt(x, y float64) (window.SurfaceRef, window.Vector, bool) {
	if x < 0 || y < 0 || x >= l.Geom.Width || y >= l.Geom.Height {
		return nil, window.Vector{}, false
	}
	return l.Ref, window.Vector{X: x, Y: y}, true
}

// Native is a fake native toplevel.
type Native struct {
	Ref Ref

	NoToplevel bool
	State      window.ToplevelState
	TitleValue *string
	AppIDValue *string
	Parent     bool
	Geom       window.Box
	// Popup, when set, is returned by SurfaceAt for points inside PopupBox.
	Popup    Ref
	PopupBox window.Box

	Calls      []string
	Sizes      []Configure
	Activated  bool
	Tiled      window.Edges
	Fullscreen bool
	Closed     int
}

var _ window.NativeToplevel = (*Native)(nil)

func (n *Native) Surface() window.SurfaceRef { return n.Ref }

func (n *Native) Current() (window.ToplevelState, bool) {
	if n.NoToplevel {
		return window.ToplevelState{}, false
	}
	return n.State, true
}

func (n *Native) Title() (string, bool) { return optional(n.TitleValue) }
func (n *Native) AppID() (string, bool) { return optional(n.AppIDValue) }
func (n *Native) HasParent() bool       { return n.Parent }
func (n *Native) Geometry() window.Box  { return n.Geom }

func (n *Native) SetActivated(activated bool) {
	n.Activated = activated
	n.Calls = append(n.Calls, fmt.Sprintf("activate(%t)", activated))
}

func (n *Native) SetSize(width, height int32) {
	n.Sizes = append(n.Sizes, Configure{Width: width, Height: height})
	n.Calls = append(n.Calls, fmt.Sprintf("size(%d,%d)", width, height))
}

func (n *Native) SetTiled(edges window.Edges) {
	n.Tiled = edges
	n.Calls = append(n.Calls, fmt.Sprintf("tiled(%d)", edges))
}

func (n *Native) SetFullscreen(fullscreen bool) {
	n.Fullscreen = fullscreen
	n.Calls = append(n.Calls, fmt.Sprintf("fullscreen(%t)", fullscreen))
}

func (n *Native) SendClose() {
	n.Closed++
	n.Calls = append(n.Calls, "close")
}

func (n *Native) SurfaceAt(x, y float64) (window.SurfaceRef, window.Vector, bool) {
	if n.Popup != 0 && contains(n.PopupBox, x, y) {
		return n.Popup, window.Vector{X: x - n.PopupBox.X, Y: y - n.PopupBox.Y}, true
	}
	if x < 0 || y < 0 || x >= n.Geom.Width || y >= n.Geom.Height {
		return nil, window.Vector{}, false
	}
	return n.Ref, window.Vector{X: x, Y: y}, true
}

// ForeignToplevel records fullscreen mirroring.
type ForeignToplevel struct {
	Fullscreen []bool
}

func (f *ForeignToplevel) SetFullscreen(fullscreen bool) {
	f.Fullscreen = append(f.Fullscreen, fullscreen)
}

// Str returns a pointer to s for optional metadata fields.
func Str(s string) *string {
	return &s
}

func optional(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func contains(b window.Box, x, y float64) bool {
	return x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height
}
