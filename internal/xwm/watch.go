package xwm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Watch calls fn whenever the client list, a client property or the
// window tree changes. Callbacks run on the event loop started by Run.
func (c *Connection) Watch(fn func()) error {
	root := xwindow.New(c.XUtil, c.Root)
	if err := root.Listen(xproto.EventMaskPropertyChange, xproto.EventMaskSubstructureNotify); err != nil {
		return err
	}

	c.listenClients()
	changed := func() {
		c.listenClients()
		fn()
	}

	xevent.PropertyNotifyFun(func(_ *xgbutil.XUtil, _ xevent.PropertyNotifyEvent) {
		changed()
	}).Connect(c.XUtil, c.Root)
	xevent.MapNotifyFun(func(_ *xgbutil.XUtil, _ xevent.MapNotifyEvent) {
		changed()
	}).Connect(c.XUtil, c.Root)
	xevent.UnmapNotifyFun(func(_ *xgbutil.XUtil, _ xevent.UnmapNotifyEvent) {
		changed()
	}).Connect(c.XUtil, c.Root)

	c.watchFn = changed
	return nil
}

// listenClients subscribes to property changes on clients not yet watched.
func (c *Connection) listenClients() {
	clients, err := c.Clients()
	if err != nil {
		c.logger.Debug("failed to list clients for watching", "error", err)
		return
	}
	if c.watched == nil {
		c.watched = make(map[xproto.Window]bool)
	}
	for _, cl := range clients {
		if c.watched[cl.id] {
			continue
		}
		if err := xwindow.New(c.XUtil, cl.id).Listen(xproto.EventMaskPropertyChange); err != nil {
			continue
		}
		c.watched[cl.id] = true
		id := cl.id
		xevent.PropertyNotifyFun(func(_ *xgbutil.XUtil, _ xevent.PropertyNotifyEvent) {
			if c.watchFn != nil {
				c.watchFn()
			}
		}).Connect(c.XUtil, id)
	}
}
