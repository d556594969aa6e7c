package xwm

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"

	"github.com/1broseidon/winsurf/internal/window"
)

// MonitorSet is the RandR monitor layout of the XWayland display.
type MonitorSet struct {
	monitors []*window.Monitor
	bounds   []window.Box
}

// Monitors reads active CRTCs through RandR. X has no fractional scale of
// its own, so every monitor gets scale.
func (c *Connection) Monitors(scale float64) (*MonitorSet, error) {
	if scale <= 0 {
		scale = 1
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	modes := make(map[randr.Mode]randr.ModeInfo, len(resources.Modes))
	for _, m := range resources.Modes {
		modes[randr.Mode(m.Id)] = m
	}

	set := &MonitorSet{}
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		set.add(&window.Monitor{
			ID:              i,
			Name:            name,
			Scale:           scale,
			TransformedSize: window.Vector{X: float64(info.Width), Y: float64(info.Height)},
			RefreshRate:     refreshRate(modes[info.Mode]),
		}, window.Box{X: float64(info.X), Y: float64(info.Y), Width: float64(info.Width), Height: float64(info.Height)})
	}
	return set, nil
}

func (s *MonitorSet) add(mon *window.Monitor, bounds window.Box) {
	s.monitors = append(s.monitors, mon)
	s.bounds = append(s.bounds, bounds)
}

// Monitors returns every monitor in CRTC order.
func (s *MonitorSet) Monitors() []*window.Monitor {
	return s.monitors
}

// MonitorByID looks up a monitor.
func (s *MonitorSet) MonitorByID(id int) (*window.Monitor, bool) {
	for _, m := range s.monitors {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// MonitorAt returns the id of the monitor containing the center of box, or
// the first monitor when none does.
func (s *MonitorSet) MonitorAt(box window.Box) int {
	if len(s.monitors) == 0 {
		return 0
	}
	cx := box.X + box.Width/2
	cy := box.Y + box.Height/2
	for i, b := range s.bounds {
		if cx >= b.X && cx < b.X+b.Width && cy >= b.Y && cy < b.Y+b.Height {
			return s.monitors[i].ID
		}
	}
	return s.monitors[0].ID
}

// refreshRate returns the vertical refresh of a mode in mHz.
func refreshRate(m randr.ModeInfo) int32 {
	if m.Htotal == 0 || m.Vtotal == 0 {
		return 0
	}
	return int32(uint64(m.DotClock) * 1000 / (uint64(m.Htotal) * uint64(m.Vtotal)))
}
