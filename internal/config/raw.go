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
		// Not present.
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

type RawImages struct {
	Directory  *string  `yaml:"directory"`
	Extensions []string `yaml:"extensions"`
}

type RawLayout struct {
	Mode                *string  `yaml:"mode"`
	PreserveAspectRatio *bool    `yaml:"preserve_aspect_ratio"`
	Framing             *bool    `yaml:"framing"`
	PaddingPercent      *float64 `yaml:"padding_percent"`
}

type RawWindow struct {
	X      *int `yaml:"x"`
	Y      *int `yaml:"y"`
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

type RawLoggingConfig struct {
	Level *string `yaml:"level"`
}

// RawConfig mirrors the YAML file. Nil pointers are keys the file did not
// set. Displays replace the defaults wholesale when present.
type RawConfig struct {
	Include  IncludeList       `yaml:"include"`
	Backend  *BackendKind      `yaml:"backend"`
	Images   *RawImages        `yaml:"images"`
	Layout   *RawLayout        `yaml:"layout"`
	Window   *RawWindow        `yaml:"window"`
	Displays []DisplayConfig   `yaml:"displays"`
	Logging  *RawLoggingConfig `yaml:"logging"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Backend != nil {
		out.Backend = overlay.Backend
	}
	if overlay.Images != nil {
		base := RawImages{}
		if out.Images != nil {
			base = *out.Images
		}
		merged := mergeRawImages(base, *overlay.Images)
		out.Images = &merged
	}
	if overlay.Layout != nil {
		base := RawLayout{}
		if out.Layout != nil {
			base = *out.Layout
		}
		merged := mergeRawLayout(base, *overlay.Layout)
		out.Layout = &merged
	}
	if overlay.Window != nil {
		base := RawWindow{}
		if out.Window != nil {
			base = *out.Window
		}
		merged := mergeRawWindow(base, *overlay.Window)
		out.Window = &merged
	}
	if overlay.Displays != nil {
		out.Displays = append([]DisplayConfig(nil), overlay.Displays...)
	}
	if overlay.Logging != nil {
		base := RawLoggingConfig{}
		if out.Logging != nil {
			base = *out.Logging
		}
		if overlay.Logging.Level != nil {
			base.Level = overlay.Logging.Level
		}
		out.Logging = &base
	}

	return out
}

func mergeRawImages(base RawImages, overlay RawImages) RawImages {
	out := base
	if overlay.Directory != nil {
		out.Directory = overlay.Directory
	}
	if overlay.Extensions != nil {
		out.Extensions = append([]string(nil), overlay.Extensions...)
	}
	return out
}

func mergeRawLayout(base RawLayout, overlay RawLayout) RawLayout {
	out := base
	if overlay.Mode != nil {
		out.Mode = overlay.Mode
	}
	if overlay.PreserveAspectRatio != nil {
		out.PreserveAspectRatio = overlay.PreserveAspectRatio
	}
	if overlay.Framing != nil {
		out.Framing = overlay.Framing
	}
	if overlay.PaddingPercent != nil {
		out.PaddingPercent = overlay.PaddingPercent
	}
	return out
}

func mergeRawWindow(base RawWindow, overlay RawWindow) RawWindow {
	out := base
	if overlay.X != nil {
		out.X = overlay.X
	}
	if overlay.Y != nil {
		out.Y = overlay.Y
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	return out
}
