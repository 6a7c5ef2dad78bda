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

// BuildEffectiveConfig applies raw onto DefaultConfig. It does not validate.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Backend != nil {
		cfg.Backend = BackendKind(strings.ToLower(strings.TrimSpace(string(*raw.Backend))))
	}

	if raw.Images != nil {
		if raw.Images.Directory != nil {
			dir, err := expandHome(*raw.Images.Directory)
			if err != nil {
				return nil, &ValidationError{Path: "images.directory", Err: err}
			}
			cfg.Images.Directory = dir
		}
		if raw.Images.Extensions != nil {
			cfg.Images.Extensions = append([]string(nil), raw.Images.Extensions...)
		}
	}

	if raw.Layout != nil {
		if raw.Layout.Mode != nil {
			cfg.Layout.Mode = strings.ToLower(strings.TrimSpace(*raw.Layout.Mode))
		}
		if raw.Layout.PreserveAspectRatio != nil {
			cfg.Layout.PreserveAspectRatio = *raw.Layout.PreserveAspectRatio
		}
		if raw.Layout.Framing != nil {
			cfg.Layout.Framing = *raw.Layout.Framing
		}
		if raw.Layout.PaddingPercent != nil {
			cfg.Layout.PaddingPercent = *raw.Layout.PaddingPercent
		}
	}

	if raw.Window != nil {
		cfg.Window.X = derefInt(raw.Window.X, cfg.Window.X)
		cfg.Window.Y = derefInt(raw.Window.Y, cfg.Window.Y)
		cfg.Window.Width = derefInt(raw.Window.Width, cfg.Window.Width)
		cfg.Window.Height = derefInt(raw.Window.Height, cfg.Window.Height)
	}

	if raw.Displays != nil {
		cfg.Displays = make([]DisplayConfig, len(raw.Displays))
		for i, d := range raw.Displays {
			if strings.TrimSpace(d.Name) == "" {
				d.Name = fmt.Sprintf("Display%d", i)
			}
			cfg.Displays[i] = d
		}
	}

	if raw.Logging != nil && raw.Logging.Level != nil {
		cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*raw.Logging.Level))
	}

	return cfg, nil
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
