// Package inspect snapshots the surface layer's view of live windows for the
// CLI and the MCP server.
package inspect

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/1broseidon/winsurf/internal/surfaces"
	"github.com/1broseidon/winsurf/internal/window"
)

// Source enumerates the windows to inspect.
type Source interface {
	Windows() ([]*window.Window, error)
}

// MonitorLocator assigns windows to monitors by geometry.
type MonitorLocator interface {
	MonitorAt(box window.Box) int
}

// Report is what the surface layer decides about one window.
type Report struct {
	ID               string `json:"id"`
	Kind             string `json:"kind"`
	OverrideRedirect bool   `json:"override_redirect,omitempty"`
	Class            string `json:"class"`
	Title            string `json:"title"`
	Monitor          int    `json:"monitor"`
	X                int    `json:"x"`
	Y                int    `json:"y"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Floating         bool   `json:"floating"`
	ShouldNotFocus   bool   `json:"should_not_focus"`
	NoInitialFocus   bool   `json:"no_initial_focus"`
	Modal            bool   `json:"modal"`
	NoBorders        bool   `json:"no_borders"`
	NoMaxSize        bool   `json:"no_max_size,omitempty"`
	// MaxWidth and MaxHeight are 0 on unbounded axes.
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
}

// Inspector classifies windows from a Source through a surfaces.Manager.
type Inspector struct {
	src      Source
	monitors MonitorLocator
	mgr      *surfaces.Manager
}

// New creates an Inspector. monitors may be nil.
func New(src Source, monitors MonitorLocator, mgr *surfaces.Manager) *Inspector {
	return &Inspector{src: src, monitors: monitors, mgr: mgr}
}

// Snapshot reports every window the source currently lists.
func (i *Inspector) Snapshot() ([]Report, error) {
	windows, err := i.src.Windows()
	if err != nil {
		return nil, fmt.Errorf("failed to list windows: %w", err)
	}
	reports := make([]Report, 0, len(windows))
	for _, w := range windows {
		reports = append(reports, i.Describe(w))
	}
	return reports, nil
}

// Describe runs rules, classification and sizing for w and reports the
// result. It records the outcome on w the way the compositor would.
func (i *Inspector) Describe(w *window.Window) Report {
	geom := window.Box{X: w.RealPosition.X, Y: w.RealPosition.Y, Width: w.RealSize.X, Height: w.RealSize.Y}
	if i.monitors != nil {
		w.MonitorID = i.monitors.MonitorAt(geom)
	}

	rules := i.mgr.ApplyRules(w)
	res := i.mgr.Classify(w)
	noBorders := i.mgr.SuppressBorders(w)
	limit := i.mgr.MaxSize(w)

	r := Report{
		ID:             surfaceID(i.mgr.Surface(w)),
		Kind:           w.Kind().String(),
		Class:          i.mgr.AppIDClass(w),
		Title:          i.mgr.Title(w),
		Monitor:        w.MonitorID,
		X:              int(geom.X),
		Y:              int(geom.Y),
		Width:          int(geom.Width),
		Height:         int(geom.Height),
		Floating:       res.Floating,
		ShouldNotFocus: w.Flags.ShouldNotFocus,
		NoInitialFocus: w.Flags.NoInitialFocus,
		Modal:          w.Flags.IsModal,
		NoBorders:      noBorders,
		NoMaxSize:      rules.NoMaxSize,
	}
	if s, ok := w.Surface().(*window.Legacy); ok {
		r.OverrideRedirect = s.OverrideRedirect()
	}
	if limit.X != window.UnboundedSize.X {
		r.MaxWidth = int(limit.X)
	}
	if limit.Y != window.UnboundedSize.Y {
		r.MaxHeight = int(limit.Y)
	}
	return r
}

func surfaceID(ref window.SurfaceRef) string {
	if ref == nil {
		return ""
	}
	return fmt.Sprintf("%#x", ref.SurfaceID())
}

// Find returns the report with the given id.
func Find(reports []Report, id string) (Report, bool) {
	for _, r := range reports {
		if strings.EqualFold(r.ID, id) {
			return r, true
		}
	}
	return Report{}, false
}

// minTitleWidth keeps titles readable on narrow terminals.
const minTitleWidth = 12

const tableHeader = "ID\tKIND\tMON\tGEOMETRY\tFLOAT\tFLAGS\tMAX\tCLASS\tTITLE"

// WriteTable prints reports as aligned columns. A positive width truncates
// titles so rows fit.
func WriteTable(out io.Writer, reports []Report, width int) error {
	titleWidth := 0
	if width > 0 {
		// Measure the table without titles, then give titles what is left.
		var sb strings.Builder
		if err := writeRows(&sb, reports, -1); err != nil {
			return err
		}
		used := 0
		for _, line := range strings.Split(sb.String(), "\n") {
			used = max(used, utf8.RuneCountInString(line))
		}
		titleWidth = max(width-used, minTitleWidth)
	}
	return writeRows(out, reports, titleWidth)
}

// writeRows truncates titles to titleWidth runes; 0 keeps them whole and a
// negative width drops them.
func writeRows(out io.Writer, reports []Report, titleWidth int) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, tableHeader)
	for _, r := range reports {
		title := r.Title
		switch {
		case titleWidth < 0:
			title = ""
		case titleWidth > 0:
			title = Truncate(title, titleWidth)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%dx%d+%d+%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID,
			kindLabel(r),
			r.Monitor,
			r.Width, r.Height, r.X, r.Y,
			yesNo(r.Floating),
			flagsLabel(r),
			maxLabel(r),
			r.Class,
			title,
		)
	}
	return tw.Flush()
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-3]) + "..."
}

func kindLabel(r Report) string {
	if r.OverrideRedirect {
		return r.Kind + "/or"
	}
	return r.Kind
}

func flagsLabel(r Report) string {
	var flags []string
	if r.ShouldNotFocus {
		flags = append(flags, "nofocus")
	}
	if r.NoInitialFocus {
		flags = append(flags, "noinitialfocus")
	}
	if r.Modal {
		flags = append(flags, "modal")
	}
	if r.NoBorders {
		flags = append(flags, "noborders")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ",")
}

func maxLabel(r Report) string {
	if r.MaxWidth == 0 && r.MaxHeight == 0 {
		return "-"
	}
	axis := func(v int) string {
		if v == 0 {
			return "*"
		}
		return fmt.Sprint(v)
	}
	return axis(r.MaxWidth) + "x" + axis(r.MaxHeight)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
