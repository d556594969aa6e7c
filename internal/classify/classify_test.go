package classify

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/winsurf/internal/window"
	"github.com/1broseidon/winsurf/internal/window/windowtest"
)

var testAtoms = StaticAtoms{
	TypeDialog:       101,
	TypeSplash:       102,
	TypeToolbar:      103,
	TypeUtility:      104,
	TypeTooltip:      105,
	TypePopupMenu:    106,
	TypeDock:         107,
	TypeDropdownMenu: 108,
	TypeMenu:         109,
	TypeNotification: 110,
	TypeCombo:        111,
	TypeKDEOverride:  112,
}

const atomNormal xproto.Atom = 200

func atom(name string) xproto.Atom {
	a, _ := testAtoms.Atom(name)
	return a
}

func newEngine(buf *bytes.Buffer) *Engine {
	var logger *slog.Logger
	if buf != nil {
		logger = slog.New(slog.NewTextHandler(buf, nil))
	}
	return NewEngine(testAtoms, logger)
}

func TestClassify_LegacyWindowTypes(t *testing.T) {
	tests := []struct {
		name           string
		types          []xproto.Atom
		shouldNotFocus bool
		noInitialFocus bool
	}{
		{name: "dialog", types: []xproto.Atom{atom(TypeDialog)}},
		{name: "splash", types: []xproto.Atom{atom(TypeSplash)}, noInitialFocus: true},
		{name: "utility after normal", types: []xproto.Atom{atomNormal, atom(TypeUtility)}, noInitialFocus: true},
		{name: "dropdown menu", types: []xproto.Atom{atom(TypeDropdownMenu)}, shouldNotFocus: true, noInitialFocus: true},
		{name: "menu", types: []xproto.Atom{atom(TypeMenu)}, shouldNotFocus: true, noInitialFocus: true},
		{name: "kde override", types: []xproto.Atom{atom(TypeKDEOverride)}, noInitialFocus: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := window.NewLegacy(&windowtest.Legacy{Types: tt.types}, window.LegacyNormal)

			res := newEngine(nil).Classify(w)

			assert.True(t, res.Floating)
			assert.Equal(t, tt.shouldNotFocus, res.ShouldNotFocus)
			assert.Equal(t, tt.noInitialFocus, res.NoInitialFocus)
			assert.False(t, res.IsModal)
			assert.True(t, w.Flags.Floating)
			assert.Equal(t, tt.shouldNotFocus, w.Flags.ShouldNotFocus)
		})
	}
}

func TestClassify_LegacyPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		surface  *windowtest.Legacy
		class    window.LegacyClass
		floating bool
		modal    bool
	}{
		{
			name:     "pop-up role",
			surface:  &windowtest.Legacy{RoleValue: windowtest.Str("gimp-pop-up")},
			class:    window.LegacyNormal,
			floating: true,
		},
		{
			name:     "task dialog role",
			surface:  &windowtest.Legacy{RoleValue: windowtest.Str("task_dialog")},
			class:    window.LegacyNormal,
			floating: true,
		},
		{
			name:    "unrelated role",
			surface: &windowtest.Legacy{RoleValue: windowtest.Str("browser")},
			class:   window.LegacyNormal,
		},
		{
			name:     "modal",
			surface:  &windowtest.Legacy{IsModal: true},
			class:    window.LegacyNormal,
			floating: true,
			modal:    true,
		},
		{
			name:     "role wins over modal",
			surface:  &windowtest.Legacy{RoleValue: windowtest.Str("pop-up"), IsModal: true},
			class:    window.LegacyNormal,
			floating: true,
		},
		{
			name:     "override redirect",
			surface:  &windowtest.Legacy{},
			class:    window.LegacyOverrideRedirect,
			floating: true,
		},
		{
			name:     "fixed size hints",
			surface:  &windowtest.Legacy{Hints: &window.SizeHints{MinWidth: 300, MinHeight: 200, MaxWidth: 300, MaxHeight: 200}},
			class:    window.LegacyNormal,
			floating: true,
		},
		{
			name:     "hints with parent",
			surface:  &windowtest.Legacy{Hints: &window.SizeHints{MinWidth: 10, MaxWidth: -1, MaxHeight: -1}, Parent: true},
			class:    window.LegacyNormal,
			floating: true,
		},
		{
			name:    "parent without hints",
			surface: &windowtest.Legacy{Parent: true},
			class:   window.LegacyNormal,
		},
		{
			name:    "resizable",
			surface: &windowtest.Legacy{Hints: &window.SizeHints{MinWidth: 100, MinHeight: 100, MaxWidth: -1, MaxHeight: -1}},
			class:   window.LegacyNormal,
		},
		{
			name:    "one axis fixed",
			surface: &windowtest.Legacy{Hints: &window.SizeHints{MinWidth: 300, MinHeight: 100, MaxWidth: 300, MaxHeight: 900}},
			class:   window.LegacyNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := window.NewLegacy(tt.surface, tt.class)

			res := newEngine(nil).Classify(w)

			assert.Equal(t, tt.floating, res.Floating)
			assert.Equal(t, tt.modal, res.IsModal)
			assert.Equal(t, tt.modal, w.Flags.IsModal)
			assert.False(t, res.NoInitialFocus)
			assert.False(t, res.ShouldNotFocus)
		})
	}
}

func TestClassify_MalformedRoleIsSkippedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	surface := &windowtest.Legacy{
		RoleValue: windowtest.Str("pop-up\xff\xfe"),
		IsModal:   true,
	}
	w := window.NewLegacy(surface, window.LegacyNormal)

	res := newEngine(&buf).Classify(w)

	assert.True(t, res.Floating)
	assert.True(t, res.IsModal, "classification should fall through to the modal check")
	assert.Contains(t, buf.String(), "malformed window role")
}

func TestClassify_Native(t *testing.T) {
	tests := []struct {
		name     string
		surface  *windowtest.Native
		floating bool
	}{
		{name: "fixed size", surface: &windowtest.Native{State: window.ToplevelState{MinWidth: 400, MinHeight: 300, MaxWidth: 400, MaxHeight: 300}}, floating: true},
		{name: "fixed width only", surface: &windowtest.Native{State: window.ToplevelState{MinWidth: 400, MinHeight: 300, MaxWidth: 400}}, floating: true},
		{name: "zero minimum", surface: &windowtest.Native{State: window.ToplevelState{MinWidth: 0, MinHeight: 300, MaxWidth: 0, MaxHeight: 300}}},
		{name: "unconstrained", surface: &windowtest.Native{}},
		{name: "parent", surface: &windowtest.Native{Parent: true}, floating: true},
		{name: "no toplevel role", surface: &windowtest.Native{NoToplevel: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := window.NewNative(tt.surface)

			res := newEngine(nil).Classify(w)

			assert.Equal(t, Result{Floating: tt.floating}, res)
			assert.Equal(t, tt.floating, w.Flags.Floating)
		})
	}
}

func TestClassify_Idempotent(t *testing.T) {
	surfaces := []*windowtest.Legacy{
		{Types: []xproto.Atom{atom(TypeMenu)}},
		{IsModal: true},
		{Hints: &window.SizeHints{MinWidth: 5, MinHeight: 5, MaxWidth: 5, MaxHeight: 5}},
		{},
	}
	engine := newEngine(nil)

	for _, s := range surfaces {
		w := window.NewLegacy(s, window.LegacyNormal)
		first := engine.Classify(w)
		flags := w.Flags
		second := engine.Classify(w)

		assert.Equal(t, first, second)
		assert.Equal(t, flags, w.Flags)
	}
}

func TestClassify_MonotonicFlagsSurviveMetadataChange(t *testing.T) {
	surface := &windowtest.Legacy{Types: []xproto.Atom{atom(TypeDropdownMenu)}, IsModal: true}
	w := window.NewLegacy(surface, window.LegacyNormal)
	engine := newEngine(nil)

	engine.Classify(w)
	require.True(t, w.Flags.ShouldNotFocus)

	surface.Types = nil
	engine.Classify(w)
	require.True(t, w.Flags.IsModal)

	surface.IsModal = false
	res := engine.Classify(w)

	assert.False(t, res.Floating)
	assert.False(t, w.Flags.Floating, "floating follows the latest pass")
	assert.True(t, w.Flags.ShouldNotFocus)
	assert.True(t, w.Flags.IsModal)
}

func TestSuppressBorders(t *testing.T) {
	tests := []struct {
		name  string
		w     *window.Window
		wants bool
	}{
		{name: "notification", w: window.NewLegacy(&windowtest.Legacy{Types: []xproto.Atom{atom(TypeNotification)}}, window.LegacyNormal), wants: true},
		{name: "combo", w: window.NewLegacy(&windowtest.Legacy{Types: []xproto.Atom{atomNormal, atom(TypeCombo)}}, window.LegacyNormal), wants: true},
		{name: "dialog keeps borders", w: window.NewLegacy(&windowtest.Legacy{Types: []xproto.Atom{atom(TypeDialog)}}, window.LegacyNormal)},
		{name: "override redirect", w: window.NewLegacy(&windowtest.Legacy{}, window.LegacyOverrideRedirect), wants: true},
		{name: "native", w: window.NewNative(&windowtest.Native{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newEngine(nil).SuppressBorders(tt.w)
			assert.Equal(t, tt.wants, got)
			assert.Equal(t, tt.wants, tt.w.Flags.NoBorders)
		})
	}
}

func TestClassify_MissingAtomNeverMatches(t *testing.T) {
	engine := NewEngine(StaticAtoms{TypeDialog: 1}, nil)
	w := window.NewLegacy(&windowtest.Legacy{Types: []xproto.Atom{0}}, window.LegacyNormal)

	assert.False(t, engine.Classify(w).Floating)
}

func TestAtomNames_Unique(t *testing.T) {
	names := AtomNames()
	seen := make(map[string]bool)
	for _, n := range names {
		require.False(t, seen[n], "duplicate %s", n)
		seen[n] = true
	}
	assert.Len(t, names, 12)
}
