package scaleoverride

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/winsurf/internal/window"
)

const bridge Client = 1

type fakeOutput struct {
	version uint32
	events  *[]string
}

func (o *fakeOutput) Version() uint32 { return o.version }

func (o *fakeOutput) SendMode(flags uint32, width, height, refresh int32) {
	*o.events = append(*o.events, fmt.Sprintf("mode(%d,%d,%d,%d)", flags, width, height, refresh))
}

func (o *fakeOutput) SendScale(factor int32) {
	*o.events = append(*o.events, fmt.Sprintf("scale(%d)", factor))
}

func (o *fakeOutput) SendName(name string) {
	*o.events = append(*o.events, "name("+name+")")
}

func (o *fakeOutput) SendDone() {
	*o.events = append(*o.events, "done")
}

type fakeXDGOutput struct {
	version uint32
	events  *[]string
}

func (o *fakeXDGOutput) Version() uint32 { return o.version }

func (o *fakeXDGOutput) SendLogicalSize(width, height int32) {
	*o.events = append(*o.events, fmt.Sprintf("logical(%d,%d)", width, height))
}

func (o *fakeXDGOutput) SendDone() {
	*o.events = append(*o.events, "xdg-done")
}

type fakeRegistry struct {
	monitors []*window.Monitor
	outputs  map[int]map[Client][]OutputResource
	xdg      map[int]map[Client][]XDGOutputResource
	events   map[int]*[]string
}

func newRegistry() *fakeRegistry {
	return &fakeRegistry{
		outputs: make(map[int]map[Client][]OutputResource),
		xdg:     make(map[int]map[Client][]XDGOutputResource),
		events:  make(map[int]*[]string),
	}
}

// addMonitor registers mon with one wl_output and, when xdgVersion is
// non-zero, one xdg-output resource for client.
func (r *fakeRegistry) addMonitor(mon *window.Monitor, client Client, outputVersion, xdgVersion uint32) {
	r.monitors = append(r.monitors, mon)
	events := &[]string{}
	r.events[mon.ID] = events
	if r.outputs[mon.ID] == nil {
		r.outputs[mon.ID] = make(map[Client][]OutputResource)
		r.xdg[mon.ID] = make(map[Client][]XDGOutputResource)
	}
	r.outputs[mon.ID][client] = append(r.outputs[mon.ID][client], &fakeOutput{version: outputVersion, events: events})
	if xdgVersion != 0 {
		r.xdg[mon.ID][client] = append(r.xdg[mon.ID][client], &fakeXDGOutput{version: xdgVersion, events: events})
	}
}

func (r *fakeRegistry) Monitors() []*window.Monitor { return r.monitors }

func (r *fakeRegistry) OutputResources(monitorID int, client Client) []OutputResource {
	return r.outputs[monitorID][client]
}

func (r *fakeRegistry) XDGOutputResources(monitorID int, client Client) []XDGOutputResource {
	return r.xdg[monitorID][client]
}

func (r *fakeRegistry) eventsFor(id int) []string {
	return *r.events[id]
}

func count(events []string, name string) int {
	n := 0
	for _, e := range events {
		if e == name {
			n++
		}
	}
	return n
}

func TestUpdate_EnableAnnouncesUnitScale(t *testing.T) {
	reg := newRegistry()
	reg.addMonitor(&window.Monitor{ID: 0, Scale: 1.5, TransformedSize: window.Vector{X: 2560, Y: 1440}, RefreshRate: 60000}, bridge, 4, 3)
	reg.addMonitor(&window.Monitor{ID: 1, Scale: 2, TransformedSize: window.Vector{X: 3840, Y: 2160}, RefreshRate: 144000}, bridge, 4, 3)

	s := New(reg, bridge, nil)
	s.Update(true)

	state, scale := s.State()
	assert.Equal(t, Overridden, state)
	assert.Equal(t, 1.0, scale)

	assert.Equal(t, []string{
		"mode(3,2560,1440,60000)",
		"scale(1)",
		"name(XWAYLAND0)",
		"logical(2560,1440)",
		"done",
	}, reg.eventsFor(0))
	assert.Equal(t, []string{
		"mode(3,3840,2160,144000)",
		"scale(1)",
		"name(XWAYLAND1)",
		"logical(3840,2160)",
		"done",
	}, reg.eventsFor(1))
}

func TestApply_OneDonePerMonitor(t *testing.T) {
	reg := newRegistry()
	for id := 0; id < 3; id++ {
		reg.addMonitor(&window.Monitor{ID: id, Scale: 1.25, TransformedSize: window.Vector{X: 1920, Y: 1080}}, bridge, 4, 2)
	}

	New(reg, bridge, nil).Update(true)

	for id := 0; id < 3; id++ {
		events := reg.eventsFor(id)
		assert.Equal(t, 1, count(events, "done"), "monitor %d", id)
		assert.Equal(t, "done", events[len(events)-1], "monitor %d", id)
	}
}

func TestApply_EffectiveScale(t *testing.T) {
	reg := newRegistry()
	reg.addMonitor(&window.Monitor{ID: 0, Scale: 1.5, TransformedSize: window.Vector{X: 3000, Y: 1500}, RefreshRate: 60000}, bridge, 2, 0)

	New(reg, bridge, nil).Apply(nil)

	assert.Equal(t, []string{"mode(3,2000,1000,60000)", "scale(2)", "done"}, reg.eventsFor(0))
}

func TestApply_VersionGating(t *testing.T) {
	tests := []struct {
		name          string
		outputVersion uint32
		xdgVersion    uint32
		want          []string
	}{
		{
			name:          "v1 output has no scale or name",
			outputVersion: 1,
			want:          []string{"mode(3,1920,1080,0)", "done"},
		},
		{
			name:          "v3 output has scale but no name",
			outputVersion: 3,
			want:          []string{"mode(3,1920,1080,0)", "scale(1)", "done"},
		},
		{
			name:          "old xdg output sends its own done",
			outputVersion: 4,
			xdgVersion:    2,
			want:          []string{"mode(3,1920,1080,0)", "scale(1)", "name(XWAYLAND0)", "logical(1920,1080)", "xdg-done", "done"},
		},
		{
			name:          "current xdg output relies on wl_output done",
			outputVersion: 4,
			xdgVersion:    3,
			want:          []string{"mode(3,1920,1080,0)", "scale(1)", "name(XWAYLAND0)", "logical(1920,1080)", "done"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newRegistry()
			reg.addMonitor(&window.Monitor{ID: 0, Scale: 1, TransformedSize: window.Vector{X: 1920, Y: 1080}}, bridge, tt.outputVersion, tt.xdgVersion)

			New(reg, bridge, nil).Update(true)

			assert.Equal(t, tt.want, reg.eventsFor(0))
		})
	}
}

func TestApply_OnlyBridgeClientResources(t *testing.T) {
	reg := newRegistry()
	mon := &window.Monitor{ID: 0, Scale: 2, TransformedSize: window.Vector{X: 1000, Y: 1000}}
	reg.addMonitor(mon, 42, 4, 3)

	New(reg, bridge, nil).Update(true)

	assert.Empty(t, reg.eventsFor(0))
}

func TestApply_FirstResourceOnly(t *testing.T) {
	reg := newRegistry()
	mon := &window.Monitor{ID: 0, Scale: 1, TransformedSize: window.Vector{X: 800, Y: 600}}
	reg.addMonitor(mon, bridge, 4, 0)
	second := &[]string{}
	reg.outputs[0][bridge] = append(reg.outputs[0][bridge], &fakeOutput{version: 4, events: second})

	New(reg, bridge, nil).Update(true)

	assert.Equal(t, 1, count(reg.eventsFor(0), "done"))
	assert.Empty(t, *second)
}

func TestApply_Idempotent(t *testing.T) {
	reg := newRegistry()
	reg.addMonitor(&window.Monitor{ID: 0, Scale: 1.5, TransformedSize: window.Vector{X: 2560, Y: 1600}, RefreshRate: 60000}, bridge, 4, 3)
	s := New(reg, bridge, nil)

	s.Update(true)
	first := append([]string(nil), reg.eventsFor(0)...)
	s.Update(true)
	all := reg.eventsFor(0)

	require.Len(t, all, 2*len(first))
	assert.Equal(t, first, all[len(first):])
}

func TestUpdate_DisableRestoresMonitorScaleOnce(t *testing.T) {
	reg := newRegistry()
	reg.addMonitor(&window.Monitor{ID: 0, Scale: 2, TransformedSize: window.Vector{X: 3840, Y: 2160}}, bridge, 4, 3)
	s := New(reg, bridge, nil)

	s.Update(false)
	assert.Empty(t, reg.eventsFor(0), "disabling while unscaled is a no-op")

	s.Update(true)
	*reg.events[0] = nil
	s.Update(false)

	state, _ := s.State()
	assert.Equal(t, Unscaled, state)
	assert.Equal(t, []string{
		"mode(3,1920,1080,0)",
		"scale(2)",
		"name(XWAYLAND0)",
		"logical(1920,1080)",
		"done",
	}, reg.eventsFor(0))

	*reg.events[0] = nil
	s.Update(false)
	assert.Empty(t, reg.eventsFor(0))
}

func TestMonitorChanged(t *testing.T) {
	reg := newRegistry()
	mon := &window.Monitor{ID: 0, Scale: 1, TransformedSize: window.Vector{X: 1920, Y: 1080}}
	reg.addMonitor(mon, bridge, 4, 3)
	s := New(reg, bridge, nil)

	s.MonitorChanged()
	assert.Empty(t, reg.eventsFor(0))

	s.Update(true)
	*reg.events[0] = nil
	mon.TransformedSize = window.Vector{X: 2560, Y: 1440}
	mon.Scale = 1.75
	s.MonitorChanged()

	assert.Equal(t, "mode(3,2560,1440,0)", reg.eventsFor(0)[0])
	assert.Equal(t, "scale(1)", reg.eventsFor(0)[1])
}

func TestApply_SkipsMonitorsWithoutOutput(t *testing.T) {
	reg := newRegistry()
	reg.monitors = append(reg.monitors, &window.Monitor{ID: 9, Scale: 1})

	assert.NotPanics(t, func() { New(reg, bridge, nil).Update(true) })
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "XWAYLAND3", OutputName(3))
}
