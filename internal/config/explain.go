package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	log_level
//	xwayland
//	xwayland.force_zero_scaling
//	xwayland.display
//	window_rules
//	window_rules[<n>]
//	window_rules[<n>].class
//	logging.file
//	logging.max_size_mb
//	logging.max_files
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	// Exact-path file source wins.
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	if idx, rest, ok := ruleIndex(path); ok {
		return lookupRule(cfg, idx, rest, path)
	}

	parts := strings.Split(path, ".")
	switch parts[0] {
	case "log_level":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.LogLevel, nil
	case "xwayland":
		if len(parts) == 1 {
			return cfg.XWayland, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "force_zero_scaling":
			return cfg.XWayland.ForceZeroScaling, nil
		case "display":
			return cfg.XWayland.Display, nil
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	case "window_rules":
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return cfg.WindowRules, nil
	case "logging":
		logging := cfg.GetLoggingConfig()
		if len(parts) == 1 {
			return logging, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "file":
			return logging.File, nil
		case "max_size_mb":
			return logging.MaxSizeMB, nil
		case "max_files":
			return logging.MaxFiles, nil
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}

func lookupRule(cfg *Config, idx int, rest string, path string) (any, error) {
	if idx < 0 || idx >= len(cfg.WindowRules) {
		return nil, fmt.Errorf("unknown window_rules entry %d", idx)
	}
	rule := cfg.WindowRules[idx]
	switch rest {
	case "":
		return rule, nil
	case ".class":
		return rule.Class, nil
	case ".title":
		return rule.Title, nil
	case ".no_max_size":
		return rule.NoMaxSize, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
