// Package xwm is the X11 half of the XWayland bridge. It reads client window
// metadata from the XWayland display and applies the requests the
// compositor routes to legacy windows.
package xwm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Connection is a connection to the XWayland X server.
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	atoms  *Atoms
	logger *slog.Logger

	watched map[xproto.Window]bool
	watchFn func()
}

// Dial connects to display, or $DISPLAY when display is empty.
func Dial(display string, logger *slog.Logger) (*Connection, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to X display %q: %w", display, err)
	}

	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	c := &Connection{
		XUtil:  xu,
		Root:   xu.RootWin(),
		logger: logger,
	}
	c.atoms = NewAtoms(xu)
	return c, nil
}

// Atoms returns the atom table of this display.
func (c *Connection) Atoms() *Atoms {
	return c.atoms
}

// Run processes X events until ctx is done. Watch callbacks run on the
// event loop goroutine while Run waits for them.
func (c *Connection) Run(ctx context.Context) {
	before, after, quit := xevent.MainPing(c.XUtil)
	for {
		select {
		case <-before:
			<-after
		case <-quit:
			return
		case <-ctx.Done():
			xevent.Quit(c.XUtil)
			return
		}
	}
}

// Close disconnects from the X server.
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}

// sendClientMessage sends a 32-bit client message. The message is built by
// hand because the ewmh request helpers panic on mixed int/uint data with
// this xgbutil version.
func (c *Connection) sendClientMessage(dest, win xproto.Window, mask uint32, typ string, data ...uint32) error {
	atom, err := c.atoms.intern(typ)
	if err != nil {
		return err
	}

	payload := make([]uint32, 5)
	copy(payload, data)
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atom,
		Data:   xproto.ClientMessageDataUnionData32New(payload),
	}

	return xproto.SendEventChecked(c.XUtil.Conn(), false, dest, mask, string(ev.Bytes())).Check()
}
