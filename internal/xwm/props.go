package xwm

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/winsurf/internal/window"
)

// Props is a snapshot of the client properties of one X window. Optional
// strings are nil when the property is not set.
type Props struct {
	Title  *string
	Class  *string
	Role   *string
	Types  []string
	States []string
	Hints  *window.SizeHints
	// TransientFor is zero when the window has no transient parent.
	TransientFor xproto.Window
	Protocols    []string
}

// HasState reports whether state is in _NET_WM_STATE.
func (p Props) HasState(state string) bool {
	for _, s := range p.States {
		if s == state {
			return true
		}
	}
	return false
}

// SupportsProtocol reports whether the client lists protocol in
// WM_PROTOCOLS.
func (p Props) SupportsProtocol(protocol string) bool {
	for _, s := range p.Protocols {
		if s == protocol {
			return true
		}
	}
	return false
}

// readProps fetches every property the bridge uses. Missing or unreadable
// properties are left unset.
func (c *Connection) readProps(id xproto.Window) Props {
	xu := c.XUtil
	var p Props

	if title, ok := c.title(id); ok {
		p.Title = &title
	}
	if class, err := icccm.WmClassGet(xu, id); err == nil {
		name := strings.TrimSpace(class.Class)
		p.Class = &name
	}
	if role, err := xprop.PropValStr(xprop.GetProperty(xu, id, atomWMWindowRole)); err == nil {
		p.Role = &role
	}
	if types, err := ewmh.WmWindowTypeGet(xu, id); err == nil {
		p.Types = types
	}
	if states, err := ewmh.WmStateGet(xu, id); err == nil {
		p.States = states
	}
	if nh, err := icccm.WmNormalHintsGet(xu, id); err == nil {
		p.Hints = sizeHints(nh)
	}
	if parent, err := icccm.WmTransientForGet(xu, id); err == nil {
		p.TransientFor = parent
	}
	if protocols, err := icccm.WmProtocolsGet(xu, id); err == nil {
		p.Protocols = protocols
	}
	return p
}

// title prefers _NET_WM_NAME and falls back to WM_NAME.
func (c *Connection) title(id xproto.Window) (string, bool) {
	if title, err := ewmh.WmNameGet(c.XUtil, id); err == nil && title != "" {
		return title, true
	}
	if title, err := icccm.WmNameGet(c.XUtil, id); err == nil {
		return title, true
	}
	return "", false
}

// sizeHints converts WM_NORMAL_HINTS. Minimums the client did not set are
// 0 and maximums it did not set are -1.
func sizeHints(nh *icccm.NormalHints) *window.SizeHints {
	if nh == nil {
		return nil
	}
	h := &window.SizeHints{
		X:         int32(nh.X),
		Y:         int32(nh.Y),
		Width:     int32(nh.Width),
		Height:    int32(nh.Height),
		MaxWidth:  -1,
		MaxHeight: -1,
	}
	if nh.Flags&icccm.SizeHintPMinSize != 0 {
		h.MinWidth = int32(nh.MinWidth)
		h.MinHeight = int32(nh.MinHeight)
	}
	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		h.MaxWidth = int32(nh.MaxWidth)
		h.MaxHeight = int32(nh.MaxHeight)
	}
	return h
}
