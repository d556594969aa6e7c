package classify

import "github.com/BurntSushi/xgb/xproto"

// Window type atom names used by the classification tables.
const (
	TypeDialog       = "_NET_WM_WINDOW_TYPE_DIALOG"
	TypeSplash       = "_NET_WM_WINDOW_TYPE_SPLASH"
	TypeToolbar      = "_NET_WM_WINDOW_TYPE_TOOLBAR"
	TypeUtility      = "_NET_WM_WINDOW_TYPE_UTILITY"
	TypeTooltip      = "_NET_WM_WINDOW_TYPE_TOOLTIP"
	TypePopupMenu    = "_NET_WM_WINDOW_TYPE_POPUP_MENU"
	TypeDock         = "_NET_WM_WINDOW_TYPE_DOCK"
	TypeDropdownMenu = "_NET_WM_WINDOW_TYPE_DROPDOWN_MENU"
	TypeMenu         = "_NET_WM_WINDOW_TYPE_MENU"
	TypeNotification = "_NET_WM_WINDOW_TYPE_NOTIFICATION"
	TypeCombo        = "_NET_WM_WINDOW_TYPE_COMBO"
	TypeKDEOverride  = "_KDE_NET_WM_WINDOW_TYPE_OVERRIDE"
)

// floatingTypes trigger the floating signal, in match order.
var floatingTypes = []string{
	TypeDialog,
	TypeSplash,
	TypeToolbar,
	TypeUtility,
	TypeTooltip,
	TypePopupMenu,
	TypeDock,
	TypeDropdownMenu,
	TypeMenu,
	TypeKDEOverride,
}

// borderlessTypes suppress compositor borders.
var borderlessTypes = []string{
	TypePopupMenu,
	TypeNotification,
	TypeDropdownMenu,
	TypeCombo,
	TypeMenu,
	TypeSplash,
	TypeTooltip,
}

// AtomNames lists every atom the engine looks up, for interning up front.
func AtomNames() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, list := range [][]string{floatingTypes, borderlessTypes} {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// AtomTable maps window type names to the atoms the X server assigned them.
type AtomTable interface {
	Atom(name string) (xproto.Atom, bool)
}

// StaticAtoms is an AtomTable backed by a fixed map.
type StaticAtoms map[string]xproto.Atom

func (s StaticAtoms) Atom(name string) (xproto.Atom, bool) {
	a, ok := s[name]
	return a, ok
}

// matchType returns the first name in names whose atom appears in types.
func matchType(atoms AtomTable, types []xproto.Atom, names []string) (string, bool) {
	for _, t := range types {
		for _, name := range names {
			a, ok := atoms.Atom(name)
			if ok && a == t {
				return name, true
			}
		}
	}
	return "", false
}
