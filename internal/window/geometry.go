package window

// UnboundedSize is reported as the maximum size of windows that have no
// usable constraint.
var UnboundedSize = Vector{X: 99999, Y: 99999}

// Vector is a position or size in logical compositor coordinates.
type Vector struct {
	X float64
	Y float64
}

// Scale returns v multiplied by f on both axes.
func (v Vector) Scale(f float64) Vector {
	return Vector{X: v.X * f, Y: v.Y * f}
}

// Box describes a rectangle in logical coordinates.
type Box struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Pos returns the top-left corner of the box.
func (b Box) Pos() Vector {
	return Vector{X: b.X, Y: b.Y}
}

// Size returns the width and height of the box.
func (b Box) Size() Vector {
	return Vector{X: b.Width, Y: b.Height}
}

// Edges is a bitmask of toplevel edges considered tiled against a neighbour.
type Edges uint32

const (
	EdgeNone   Edges = 0
	EdgeTop    Edges = 1
	EdgeBottom Edges = 2
	EdgeLeft   Edges = 4
	EdgeRight  Edges = 8

	EdgeAll = EdgeTop | EdgeBottom | EdgeLeft | EdgeRight
)

// SizeHints are the size constraints advertised by an X11 client
// (WM_NORMAL_HINTS). Unset minimums are 0 and unset maximums are -1.
type SizeHints struct {
	X         int32
	Y         int32
	Width     int32
	Height    int32
	MinWidth  int32
	MinHeight int32
	MaxWidth  int32
	MaxHeight int32
}

// ToplevelState is the committed size constraint state of a native toplevel.
type ToplevelState struct {
	MinWidth  int32
	MinHeight int32
	MaxWidth  int32
	MaxHeight int32
}

// Monitor is the read-only view of an output owned by the compositor.
type Monitor struct {
	ID              int
	Name            string
	Scale           float64
	TransformedSize Vector
	// RefreshRate is in mHz, as announced in wl_output.mode.
	RefreshRate int32
}
