package mcp

import "github.com/1broseidon/winsurf/internal/inspect"

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Kind         string `json:"kind,omitempty" jsonschema:"Only list windows of this kind: native or xwayland"`
	FloatingOnly bool   `json:"floating_only,omitempty" jsonschema:"Only list windows classified as floating"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []inspect.Report `json:"windows"`
}

// ClassifyWindowInput is the input for the classify_window tool.
type ClassifyWindowInput struct {
	ID string `json:"id" jsonschema:"Window id as printed by list_windows (e.g. 0x400001)"`
}

// ExplainConfigInput is the input for the explain_config tool.
type ExplainConfigInput struct {
	Path string `json:"path" jsonschema:"YAML path of the setting (e.g. xwayland.force_zero_scaling or window_rules[0].class)"`
}

// ExplainConfigOutput is the output for the explain_config tool.
type ExplainConfigOutput struct {
	Path   string `json:"path"`
	Source string `json:"source"`
	Value  string `json:"value"`
}
