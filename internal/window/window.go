// Package window holds the dual-variant window record shared by the
// classification, sizing and activation components.
package window

import "fmt"

// Kind tags which surface protocol backs a window.
type Kind int

const (
	KindNative Kind = iota
	KindLegacy
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindLegacy:
		return "xwayland"
	default:
		return "unknown"
	}
}

// LegacyClass is the X11 window subtype fixed when the surface is created.
type LegacyClass int

const (
	LegacyNormal           LegacyClass = 1
	LegacyOverrideRedirect LegacyClass = 2
)

// Flags are advisory outputs of classification and external policy.
type Flags struct {
	ShouldNotFocus bool
	NoInitialFocus bool
	IsModal        bool
	NoBorders      bool
	Pinned         bool
	Floating       bool
}

// RuleData is per-window configuration resolved from window rules.
type RuleData struct {
	NoMaxSize bool
}

// Window is a compositor window backed by exactly one surface variant.
type Window struct {
	surface Surface

	IsMapped     bool
	MappedLegacy bool
	Hidden       bool

	RealPosition     Vector
	RealSize         Vector
	ReportedPosition Vector
	ReportedSize     Vector

	// SurfaceScale is the factor XWayland surfaces were scaled by when the
	// scale override is active. Always 1 for native windows.
	SurfaceScale float64

	Flags Flags
	Rules RuleData

	MonitorID   int
	WorkspaceID int

	ForeignToplevel ForeignToplevel
}

// NewNative creates a window backed by a native toplevel.
func NewNative(toplevel NativeToplevel) *Window {
	return &Window{
		surface:      &Native{Toplevel: toplevel},
		SurfaceScale: 1,
	}
}

// NewLegacy creates a window backed by an XWayland surface.
func NewLegacy(handle LegacySurface, class LegacyClass) *Window {
	return &Window{
		surface:      &Legacy{Handle: handle, Class: class},
		SurfaceScale: 1,
	}
}

// Surface returns the surface variant. Callers type switch on *Native and
// *Legacy.
func (w *Window) Surface() Surface {
	return w.surface
}

// Kind returns which protocol backs the window.
func (w *Window) Kind() Kind {
	return w.surface.Kind()
}

// IsLegacy reports whether the window is an XWayland window.
func (w *Window) IsLegacy() bool {
	return w.surface.Kind() == KindLegacy
}

// ValidMapped reports whether the window is mapped and not hidden.
func (w *Window) ValidMapped() bool {
	return w != nil && w.IsMapped && !w.Hidden
}

func (w *Window) String() string {
	if w == nil {
		return "window(nil)"
	}
	if s, ok := w.surface.(*Legacy); ok && s.Handle != nil && s.Handle.Surface() != nil {
		return fmt.Sprintf("window(%s %#x)", w.Kind(), s.Handle.Surface().SurfaceID())
	}
	if s, ok := w.surface.(*Native); ok && s.Toplevel != nil && s.Toplevel.Surface() != nil {
		return fmt.Sprintf("window(%s %#x)", w.Kind(), s.Toplevel.Surface().SurfaceID())
	}
	return fmt.Sprintf("window(%s)", w.Kind())
}
