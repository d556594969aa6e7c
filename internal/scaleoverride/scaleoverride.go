// Package scaleoverride re-announces output state to the XWayland client so
// that a fixed override scale stands in for fractional monitor scales.
package scaleoverride

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/1broseidon/winsurf/internal/window"
)

// wl_output mode flags.
const (
	ModeCurrent   uint32 = 0x1
	ModePreferred uint32 = 0x2
)

// Protocol versions that gate individual events.
const (
	OutputScaleSinceVersion    uint32 = 2
	OutputNameSinceVersion     uint32 = 4
	XDGOutputDoneDeprecatedVer uint32 = 3
)

// Client identifies a Wayland client connection.
type Client uint32

// OutputResource is one client's binding of a wl_output global.
type OutputResource interface {
	Version() uint32
	SendMode(flags uint32, width, height, refresh int32)
	SendScale(factor int32)
	SendName(name string)
	SendDone()
}

// XDGOutputResource is one client's zxdg_output_v1 for a monitor.
type XDGOutputResource interface {
	Version() uint32
	SendLogicalSize(width, height int32)
	SendDone()
}

// Registry exposes monitors and the protocol resources clients hold for them.
type Registry interface {
	Monitors() []*window.Monitor
	OutputResources(monitorID int, client Client) []OutputResource
	XDGOutputResources(monitorID int, client Client) []XDGOutputResource
}

// State is the synthesizer mode.
type State int

const (
	Unscaled State = iota
	Overridden
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Unscaled:
		return "unscaled"
	case Overridden:
		return "overridden"
	default:
		return "unknown"
	}
}

// Synthesizer tracks the override state for one XWayland client.
type Synthesizer struct {
	registry Registry
	client   Client
	logger   *slog.Logger

	state State
	scale float64
}

// New creates a Synthesizer in the Unscaled state. A nil logger uses
// slog.Default().
func New(registry Registry, client Client, logger *slog.Logger) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{registry: registry, client: client, logger: logger}
}

// State returns the current state and, when Overridden, the override scale.
func (s *Synthesizer) State() (State, float64) {
	return s.state, s.scale
}

// Update switches the override on or off. Enabling announces scale 1 on
// every monitor; disabling announces each monitor's own scale once.
func (s *Synthesizer) Update(enabled bool) {
	if enabled {
		s.state = Overridden
		s.scale = 1
		s.logger.Info("xwayland scale override enabled", "scale", s.scale)
		s.Apply(&s.scale)
		return
	}

	if s.state == Unscaled {
		return
	}
	s.state = Unscaled
	s.scale = 0
	s.logger.Info("xwayland scale override disabled")
	s.Apply(nil)
}

// MonitorChanged re-applies the override after a monitor's scale or mode
// changed. It does nothing while Unscaled.
func (s *Synthesizer) MonitorChanged() {
	if s.state != Overridden {
		return
	}
	s.Apply(&s.scale)
}

// Apply announces output state to the XWayland client for every monitor.
// A nil scale uses each monitor's own scale.
func (s *Synthesizer) Apply(scale *float64) {
	for _, mon := range s.registry.Monitors() {
		if mon == nil {
			continue
		}
		effective := mon.Scale
		if scale != nil {
			effective = *scale
		}
		if effective <= 0 {
			s.logger.Warn("skipping monitor with invalid scale", "monitor", mon.ID, "scale", effective)
			continue
		}
		s.applyMonitor(mon, effective)
	}
}

func (s *Synthesizer) applyMonitor(mon *window.Monitor, scale float64) {
	outputs := s.registry.OutputResources(mon.ID, s.client)
	if len(outputs) == 0 {
		s.logger.Debug("xwayland has not bound output", "monitor", mon.ID)
		return
	}
	out := outputs[0]

	logical := mon.TransformedSize.Scale(1 / scale)
	width, height := int32(math.Round(logical.X)), int32(math.Round(logical.Y))

	out.SendMode(ModeCurrent|ModePreferred, width, height, mon.RefreshRate)
	if out.Version() >= OutputScaleSinceVersion {
		out.SendScale(int32(math.Ceil(scale)))
	}
	if out.Version() >= OutputNameSinceVersion {
		out.SendName(OutputName(mon.ID))
	}

	if xdg := s.registry.XDGOutputResources(mon.ID, s.client); len(xdg) > 0 {
		xdg[0].SendLogicalSize(width, height)
		if xdg[0].Version() < XDGOutputDoneDeprecatedVer {
			xdg[0].SendDone()
		}
	}

	out.SendDone()
	s.logger.Debug("announced xwayland output", "monitor", mon.ID, "width", width, "height", height, "scale", scale)
}

// OutputName is the output name announced to XWayland for a monitor.
func OutputName(monitorID int) string {
	return fmt.Sprintf("XWAYLAND%d", monitorID)
}
