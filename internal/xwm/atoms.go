package xwm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Atom names the bridge reads or sends besides window types.
const (
	atomWMProtocols    = "WM_PROTOCOLS"
	atomWMDeleteWindow = "WM_DELETE_WINDOW"
	atomWMWindowRole   = "WM_WINDOW_ROLE"

	stateModal      = "_NET_WM_STATE_MODAL"
	stateFullscreen = "_NET_WM_STATE_FULLSCREEN"
	stateHidden     = "_NET_WM_STATE_HIDDEN"
)

// Atoms interns atom names on the XWayland display. It satisfies
// classify.AtomTable. Lookups are cached by xprop.
type Atoms struct {
	xu *xgbutil.XUtil
}

// NewAtoms creates an atom table for xu.
func NewAtoms(xu *xgbutil.XUtil) *Atoms {
	return &Atoms{xu: xu}
}

// Atom returns the atom for name, interning it if needed.
func (a *Atoms) Atom(name string) (xproto.Atom, bool) {
	atom, err := a.intern(name)
	if err != nil {
		return 0, false
	}
	return atom, true
}

// Preload interns names up front so later lookups never round-trip.
func (a *Atoms) Preload(names []string) error {
	for _, name := range names {
		if _, err := a.intern(name); err != nil {
			return err
		}
	}
	return nil
}

// Names converts atom names to atoms, dropping names that fail to intern.
func (a *Atoms) Names(names []string) []xproto.Atom {
	atoms := make([]xproto.Atom, 0, len(names))
	for _, name := range names {
		if atom, ok := a.Atom(name); ok {
			atoms = append(atoms, atom)
		}
	}
	return atoms
}

func (a *Atoms) intern(name string) (xproto.Atom, error) {
	atom, err := xprop.Atm(a.xu, name)
	if err != nil {
		return 0, fmt.Errorf("failed to intern %s: %w", name, err)
	}
	return atom, nil
}
