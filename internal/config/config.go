package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/1broseidon/winsurf/internal/window"
)

// XWaylandConfig configures the XWayland bridge.
type XWaylandConfig struct {
	// ForceZeroScaling renders XWayland clients at the monitor's native
	// resolution instead of letting the compositor upscale them.
	ForceZeroScaling bool `yaml:"force_zero_scaling"`
	// Display is the X display of the XWayland server; empty uses $DISPLAY.
	Display string `yaml:"display,omitempty"`
}

// WindowRule applies per-window settings to windows whose class and title
// match. Class and Title are RE2 expressions; an empty one matches anything,
// but at least one must be set.
type WindowRule struct {
	Class     string `yaml:"class,omitempty"`
	Title     string `yaml:"title,omitempty"`
	NoMaxSize bool   `yaml:"no_max_size,omitempty"`

	classRE *regexp.Regexp
	titleRE *regexp.Regexp
}

// LoggingConfig configures the diagnostics log file.
type LoggingConfig struct {
	// File is the diagnostics log path. Empty logs to stderr only.
	File string `yaml:"file,omitempty"`
	// MaxSizeMB is the size at which the file is rotated (default: 10)
	MaxSizeMB int `yaml:"max_size_mb,omitempty"`
	// MaxFiles is the number of rotated files to keep (default: 3)
	MaxFiles int `yaml:"max_files,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	LogLevel    string         `yaml:"log_level"`
	XWayland    XWaylandConfig `yaml:"xwayland"`
	WindowRules []WindowRule   `yaml:"window_rules,omitempty"`
	Logging     LoggingConfig  `yaml:"logging,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Logging: LoggingConfig{
			MaxSizeMB: 10,
			MaxFiles:  3,
		},
	}
}

// ForceZeroScaling reports whether XWayland scale compensation is on.
func (c *Config) ForceZeroScaling() bool {
	return c != nil && c.XWayland.ForceZeroScaling
}

// GetLoggingConfig returns the logging configuration with defaults applied.
func (c *Config) GetLoggingConfig() LoggingConfig {
	if c == nil {
		return LoggingConfig{MaxSizeMB: 10, MaxFiles: 3}
	}
	cfg := c.Logging
	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 3
	}
	return cfg
}

// MatchRules merges the settings of every rule matching class and title.
func (c *Config) MatchRules(class, title string) window.RuleData {
	var out window.RuleData
	if c == nil {
		return out
	}
	for i := range c.WindowRules {
		rule := &c.WindowRules[i]
		if !rule.matches(class, title) {
			continue
		}
		out.NoMaxSize = out.NoMaxSize || rule.NoMaxSize
	}
	return out
}

func (r *WindowRule) matches(class, title string) bool {
	if err := r.compile(); err != nil {
		return false
	}
	if r.classRE == nil && r.titleRE == nil {
		return false
	}
	if r.classRE != nil && !r.classRE.MatchString(class) {
		return false
	}
	if r.titleRE != nil && !r.titleRE.MatchString(title) {
		return false
	}
	return true
}

// compile builds the expressions once. It reports which field failed.
func (r *WindowRule) compile() error {
	if r.Class != "" && r.classRE == nil {
		re, err := regexp.Compile(r.Class)
		if err != nil {
			return &ValidationError{Path: "class", Err: fmt.Errorf("invalid expression: %w", err)}
		}
		r.classRE = re
	}
	if r.Title != "" && r.titleRE == nil {
		re, err := regexp.Compile(r.Title)
		if err != nil {
			return &ValidationError{Path: "title", Err: fmt.Errorf("invalid expression: %w", err)}
		}
		r.titleRE = re
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	for i := range c.WindowRules {
		rule := &c.WindowRules[i]
		path := fmt.Sprintf("window_rules[%d]", i)
		if strings.TrimSpace(rule.Class) == "" && strings.TrimSpace(rule.Title) == "" {
			return &ValidationError{Path: path, Err: fmt.Errorf("rule must set class or title")}
		}
		if err := rule.compile(); err != nil {
			verr := err.(*ValidationError)
			verr.Path = path + "." + verr.Path
			return verr
		}
	}

	if c.Logging.MaxSizeMB < 0 {
		return &ValidationError{Path: "logging.max_size_mb", Err: fmt.Errorf("max_size_mb must be >= 0")}
	}
	if c.Logging.MaxFiles < 0 {
		return &ValidationError{Path: "logging.max_files", Err: fmt.Errorf("max_files must be >= 0")}
	}
	return nil
}
