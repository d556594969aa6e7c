package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, path string, lines ...string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.ForceZeroScaling() {
		t.Fatalf("expected force_zero_scaling to default to false")
	}
	logging := cfg.GetLoggingConfig()
	if logging.MaxSizeMB != 10 || logging.MaxFiles != 3 {
		t.Fatalf("unexpected logging defaults: %+v", logging)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "info" {
		t.Fatalf("expected log_level info, got %q", res.Config.LogLevel)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "# empty")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "info" {
		t.Fatalf("expected log_level info, got %q", res.Config.LogLevel)
	}
	if len(res.Files) != 1 {
		t.Fatalf("expected one loaded file, got %v", res.Files)
	}
}

func TestLoadFromPath_XWaylandKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path,
		"log_level: \" DEBUG \"",
		"xwayland:",
		"  force_zero_scaling: true",
		"  display: \":1\"",
	)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !res.Config.ForceZeroScaling() {
		t.Fatalf("expected force_zero_scaling to be true")
	}
	if res.Config.XWayland.Display != ":1" {
		t.Fatalf("expected display :1, got %q", res.Config.XWayland.Display)
	}
	if res.Config.LogLevel != "debug" {
		t.Fatalf("expected normalized log_level debug, got %q", res.Config.LogLevel)
	}

	val, src, err := Explain(res, "xwayland.display")
	if err != nil {
		t.Fatalf("explain display: %v", err)
	}
	if val != ":1" {
		t.Fatalf("expected explain value :1, got %#v", val)
	}
	if src.Kind != SourceFile || src.File == "" || src.Line != 4 {
		t.Fatalf("expected file source on line 4, got %#v", src)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "xwayland:", "  force_zero_scale: true")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "force_zero_scale") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_InvalidLogLevelHasSourceContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "log_level: verbose")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "log_level" {
		t.Fatalf("expected path log_level, got %q", verr.Path)
	}
	if !strings.Contains(err.Error(), path+":1:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, "config.d", "10-base.yaml"),
		"log_level: debug",
		"window_rules:",
		"  - class: \"^steam$\"",
		"    no_max_size: true",
	)
	writeConfig(t, filepath.Join(dir, "config.d", "20-override.yaml"),
		"log_level: warning",
		"window_rules:",
		"  - title: \"Picture-in-Picture\"",
	)
	writeConfig(t, filepath.Join(dir, "config.d", "notes.txt"), "ignored: true")

	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path,
		"include:",
		"  - config.d",
		"log_level: error",
		"window_rules:",
		"  - class: \"^gimp\"",
	)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != "error" {
		t.Fatalf("expected log_level error, got %q", res.Config.LogLevel)
	}
	if len(res.Config.WindowRules) != 3 {
		t.Fatalf("expected 3 accumulated rules, got %d", len(res.Config.WindowRules))
	}
	if res.Config.WindowRules[0].Class != "^steam$" || res.Config.WindowRules[2].Class != "^gimp" {
		t.Fatalf("unexpected rule order: %+v", res.Config.WindowRules)
	}
	if len(res.Files) != 3 || filepath.Base(res.Files[2]) != "config.yaml" {
		t.Fatalf("expected main file loaded last, got %v", res.Files)
	}

	_, src, err := Explain(res, "window_rules[2].class")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if filepath.Base(src.File) != "config.yaml" || src.Line != 5 {
		t.Fatalf("expected rule 2 from config.yaml:5, got %#v", src)
	}
	_, src, err = Explain(res, "window_rules[1].title")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if filepath.Base(src.File) != "20-override.yaml" {
		t.Fatalf("expected rule 1 from 20-override.yaml, got %#v", src)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "include:", "  - missing.yaml")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected error to include file:line:col prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	writeConfig(t, a, "include: b.yaml")
	writeConfig(t, filepath.Join(dir, "b.yaml"), "include: a.yaml")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestLoadFromPath_InvalidRuleExpressionHasSourceContext(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, filepath.Join(dir, "rules.yaml"),
		"window_rules:",
		"  - class: \"^ok$\"",
	)
	path := filepath.Join(dir, "config.yaml")
	writeConfig(t, path,
		"include: rules.yaml",
		"window_rules:",
		"  - class: \"([\"",
	)

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "window_rules[1].class" {
		t.Fatalf("expected path window_rules[1].class, got %q", verr.Path)
	}
	if !strings.Contains(err.Error(), path+":3:") {
		t.Fatalf("expected config.yaml:3 prefix, got %v", err)
	}
}

func TestLoadFromPath_RuleWithoutMatcherRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path,
		"window_rules:",
		"  - no_max_size: true",
	)

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "window_rules[0]" {
		t.Fatalf("expected path window_rules[0], got %q", verr.Path)
	}
	if verr.Source.Line != 2 {
		t.Fatalf("expected source line 2, got %#v", verr.Source)
	}
}

func TestLoadFromPath_NegativeLoggingLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "logging:", "  max_files: -1")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "logging.max_files" {
		t.Fatalf("expected logging.max_files error, got %v", err)
	}
}

func TestMatchRules(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowRules = []WindowRule{
		{Class: "^steam$", NoMaxSize: true},
		{Title: "Settings"},
		{Class: "^gimp", Title: "Export", NoMaxSize: true},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	tests := []struct {
		class, title string
		want         bool
	}{
		{"steam", "Library", true},
		{"steamwebhelper", "Library", false},
		{"gimp-2.10", "Export Image", true},
		{"gimp-2.10", "Open Image", false},
		{"firefox", "Settings", false},
	}
	for _, tt := range tests {
		got := cfg.MatchRules(tt.class, tt.title).NoMaxSize
		if got != tt.want {
			t.Fatalf("MatchRules(%q, %q).NoMaxSize = %v, want %v", tt.class, tt.title, got, tt.want)
		}
	}

	var nilCfg *Config
	if nilCfg.MatchRules("steam", "").NoMaxSize {
		t.Fatalf("nil config must not match")
	}
}

func TestExplain_DefaultsAndUnknownPaths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "logging:", "  file: /tmp/winsurf.log")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "logging.max_files")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 3 {
		t.Fatalf("expected default 3, got %#v", val)
	}
	if src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %#v", src)
	}

	val, src, err = Explain(res, "logging.file")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != "/tmp/winsurf.log" || src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("unexpected explain result %#v %#v", val, src)
	}

	for _, bad := range []string{"", "hotkey", "xwayland.scale", "window_rules[0]", "logging.file.x"} {
		if _, _, err := Explain(res, bad); err == nil {
			t.Fatalf("expected error for path %q", bad)
		}
	}
}

func TestSource_String(t *testing.T) {
	tests := []struct {
		src  Source
		want string
	}{
		{Source{Kind: SourceFile, File: "/etc/a.yaml", Line: 3, Column: 5}, "file:/etc/a.yaml:3:5"},
		{Source{Kind: SourceFile, File: "/etc/a.yaml"}, "file:/etc/a.yaml"},
		{Source{Kind: SourceFile}, "file"},
		{Source{Kind: SourceDefault, Name: "defaults"}, "default:defaults"},
		{Source{Kind: SourceDefault}, "default"},
	}
	for _, tt := range tests {
		if got := tt.src.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}
