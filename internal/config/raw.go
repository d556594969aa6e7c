package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawXWaylandConfig struct {
	ForceZeroScaling *bool   `yaml:"force_zero_scaling"`
	Display          *string `yaml:"display"`
}

type RawWindowRule struct {
	Class     *string `yaml:"class"`
	Title     *string `yaml:"title"`
	NoMaxSize *bool   `yaml:"no_max_size"`
}

type RawLoggingConfig struct {
	File      *string `yaml:"file"`
	MaxSizeMB *int    `yaml:"max_size_mb"`
	MaxFiles  *int    `yaml:"max_files"`
}

// RawConfig is one configuration file as written. Nil fields were not set.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	LogLevel    *string            `yaml:"log_level"`
	XWayland    *RawXWaylandConfig `yaml:"xwayland"`
	WindowRules []RawWindowRule    `yaml:"window_rules"`
	Logging     *RawLoggingConfig  `yaml:"logging"`
}

// merge applies overlay on top of c. Window rules accumulate in load order.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	out.Include = nil

	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}

	if overlay.XWayland != nil {
		if out.XWayland == nil {
			out.XWayland = &RawXWaylandConfig{}
		} else {
			x := *out.XWayland
			out.XWayland = &x
		}
		if overlay.XWayland.ForceZeroScaling != nil {
			out.XWayland.ForceZeroScaling = overlay.XWayland.ForceZeroScaling
		}
		if overlay.XWayland.Display != nil {
			out.XWayland.Display = overlay.XWayland.Display
		}
	}

	if len(overlay.WindowRules) > 0 {
		rules := make([]RawWindowRule, 0, len(out.WindowRules)+len(overlay.WindowRules))
		rules = append(rules, out.WindowRules...)
		out.WindowRules = append(rules, overlay.WindowRules...)
	}

	if overlay.Logging != nil {
		if out.Logging == nil {
			out.Logging = &RawLoggingConfig{}
		} else {
			l := *out.Logging
			out.Logging = &l
		}
		if overlay.Logging.File != nil {
			out.Logging.File = overlay.Logging.File
		}
		if overlay.Logging.MaxSizeMB != nil {
			out.Logging.MaxSizeMB = overlay.Logging.MaxSizeMB
		}
		if overlay.Logging.MaxFiles != nil {
			out.Logging.MaxFiles = overlay.Logging.MaxFiles
		}
	}

	return out
}
