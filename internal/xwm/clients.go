package xwm

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/winsurf/internal/window"
)

// Client is a top-level X window together with the attributes fixed when it
// was created.
type Client struct {
	*Window
	LegacyClass window.LegacyClass
	Mapped      bool
}

// NewCompositorWindow builds the window record the surface layer operates
// on. XWayland windows are treated as mapped on both sides once viewable.
func (cl Client) NewCompositorWindow() *window.Window {
	w := window.NewLegacy(cl.Window, cl.LegacyClass)
	w.IsMapped = cl.Mapped
	w.MappedLegacy = cl.Mapped
	w.Hidden = cl.props.HasState(stateHidden)
	if cl.Mapped {
		geom := cl.Geometry()
		w.RealPosition = geom.Pos()
		w.RealSize = geom.Size()
	}
	return w
}

// Clients lists managed client windows from _NET_CLIENT_LIST plus mapped
// override-redirect windows on the root. Without a client list, every
// viewable top-level window is treated as managed.
func (c *Connection) Clients() ([]Client, error) {
	tree, err := xproto.QueryTree(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to query window tree: %w", err)
	}

	managed, listErr := ewmh.ClientListGet(c.XUtil)
	hasList := listErr == nil
	seen := make(map[xproto.Window]bool, len(managed))

	var clients []Client
	for _, id := range managed {
		attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), id).Reply()
		if err != nil {
			c.logger.Debug("skipping vanished client", "xid", id, "error", err)
			continue
		}
		seen[id] = true
		clients = append(clients, c.client(id, attrs))
	}

	for _, id := range tree.Children {
		if seen[id] {
			continue
		}
		attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), id).Reply()
		if err != nil {
			continue
		}
		if attrs.Class == xproto.WindowClassInputOnly || attrs.MapState != xproto.MapStateViewable {
			continue
		}
		if !attrs.OverrideRedirect && hasList {
			continue
		}
		clients = append(clients, c.client(id, attrs))
	}

	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients, nil
}

// Windows builds compositor windows for every current client.
func (c *Connection) Windows() ([]*window.Window, error) {
	clients, err := c.Clients()
	if err != nil {
		return nil, err
	}
	windows := make([]*window.Window, 0, len(clients))
	for _, cl := range clients {
		windows = append(windows, cl.NewCompositorWindow())
	}
	return windows, nil
}

func (c *Connection) client(id xproto.Window, attrs *xproto.GetWindowAttributesReply) Client {
	return Client{
		Window:      c.NewWindow(id),
		LegacyClass: legacyClass(attrs.OverrideRedirect),
		Mapped:      attrs.MapState == xproto.MapStateViewable,
	}
}

func legacyClass(overrideRedirect bool) window.LegacyClass {
	if overrideRedirect {
		return window.LegacyOverrideRedirect
	}
	return window.LegacyNormal
}
