package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}

	if raw.XWayland != nil {
		if raw.XWayland.ForceZeroScaling != nil {
			cfg.XWayland.ForceZeroScaling = *raw.XWayland.ForceZeroScaling
		}
		if raw.XWayland.Display != nil {
			cfg.XWayland.Display = *raw.XWayland.Display
		}
	}

	for i, rule := range raw.WindowRules {
		if rule.Class == nil && rule.Title == nil && rule.NoMaxSize == nil {
			return nil, &ValidationError{Path: fmt.Sprintf("window_rules[%d]", i), Err: fmt.Errorf("rule is empty")}
		}
		cfg.WindowRules = append(cfg.WindowRules, WindowRule{
			Class:     derefString(rule.Class, ""),
			Title:     derefString(rule.Title, ""),
			NoMaxSize: derefBool(rule.NoMaxSize, false),
		})
	}

	if raw.Logging != nil {
		if raw.Logging.File != nil {
			cfg.Logging.File = *raw.Logging.File
		}
		if raw.Logging.MaxSizeMB != nil {
			cfg.Logging.MaxSizeMB = *raw.Logging.MaxSizeMB
		}
		if raw.Logging.MaxFiles != nil {
			cfg.Logging.MaxFiles = *raw.Logging.MaxFiles
		}
	}

	return cfg, nil
}

func derefString(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}

func derefBool(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
