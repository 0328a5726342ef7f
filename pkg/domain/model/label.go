package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// DefaultReleasedLabel is applied when no label configuration is given. It
// renders to "released", or "released on @<channel>" for non-default channels.
const DefaultReleasedLabel = `released{{with .NextRelease.Channel}} on @{{.}}{{end}}`

// LabelMode is the variant of a LabelConfig
type LabelMode int

const (
	LabelModeDefault LabelMode = iota
	LabelModeDisabled
	LabelModeCustom
)

// LabelConfig decides which labels are applied to resolved issues
type LabelConfig struct {
	mode      LabelMode
	templates []string
}

// DefaultLabels returns the configuration used when releasedLabels is omitted
func DefaultLabels() LabelConfig {
	return LabelConfig{mode: LabelModeDefault}
}

// DisabledLabels returns a configuration that applies no labels
func DisabledLabels() LabelConfig {
	return LabelConfig{mode: LabelModeDisabled}
}

// CustomLabels returns a configuration with the given label templates
func CustomLabels(templates ...string) LabelConfig {
	return LabelConfig{mode: LabelModeCustom, templates: append([]string{}, templates...)}
}

// Mode returns the variant of the configuration
func (x LabelConfig) Mode() LabelMode {
	return x.mode
}

// Enabled returns false only when labeling was explicitly disabled
func (x LabelConfig) Enabled() bool {
	return x.mode != LabelModeDisabled
}

// Templates returns label templates to render. It is empty when disabled.
func (x LabelConfig) Templates() []string {
	switch x.mode {
	case LabelModeDisabled:
		return nil
	case LabelModeCustom:
		return append([]string{}, x.templates...)
	default:
		return []string{DefaultReleasedLabel}
	}
}

// ParseLabelConfig resolves a raw releasedLabels value decoded from JSON or
// TOML: nil or true selects the default label, false disables labeling, a
// string or a list of strings gives custom templates.
func ParseLabelConfig(v any) (LabelConfig, error) {
	switch t := v.(type) {
	case nil:
		return DefaultLabels(), nil
	case bool:
		if t {
			return DefaultLabels(), nil
		}
		return DisabledLabels(), nil
	case string:
		return CustomLabels(t), nil
	case []string:
		return CustomLabels(t...), nil
	case []any:
		templates := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return LabelConfig{}, goerr.New("releasedLabels must contain only strings",
					goerr.V("index", i), goerr.V("value", item))
			}
			templates = append(templates, s)
		}
		return CustomLabels(templates...), nil
	default:
		return LabelConfig{}, goerr.New("releasedLabels must be false, a string or a list of strings",
			goerr.V("value", v))
	}
}
