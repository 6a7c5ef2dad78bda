package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths include:
//
//	backend
//	images.directory
//	images.extensions
//	layout.mode
//	layout.preserve_aspect_ratio
//	layout.framing
//	layout.padding_percent
//	window.width
//	displays
//	displays.<index>.dpi
//	logging.level
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

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	unknown := fmt.Errorf("unknown path: %s", path)

	leaf := func(v any) (any, error) {
		if len(parts) != 1 {
			return nil, unknown
		}
		return v, nil
	}
	field := func(values map[string]any) (any, error) {
		if len(parts) == 1 {
			return values, nil
		}
		if len(parts) != 2 {
			return nil, unknown
		}
		v, ok := values[parts[1]]
		if !ok {
			return nil, unknown
		}
		return v, nil
	}

	switch parts[0] {
	case "backend":
		return leaf(string(cfg.Backend))
	case "images":
		return field(map[string]any{
			"directory":  cfg.Images.Directory,
			"extensions": cfg.Images.Extensions,
		})
	case "layout":
		return field(map[string]any{
			"mode":                  cfg.Layout.Mode,
			"preserve_aspect_ratio": cfg.Layout.PreserveAspectRatio,
			"framing":               cfg.Layout.Framing,
			"padding_percent":       cfg.Layout.PaddingPercent,
		})
	case "window":
		return field(map[string]any{
			"x":      cfg.Window.X,
			"y":      cfg.Window.Y,
			"width":  cfg.Window.Width,
			"height": cfg.Window.Height,
		})
	case "logging":
		return field(map[string]any{"level": cfg.Logging.Level})
	case "displays":
		if len(parts) == 1 {
			return cfg.Displays, nil
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil || idx < 0 || idx >= len(cfg.Displays) {
			return nil, fmt.Errorf("display index out of range: %s", path)
		}
		d := cfg.Displays[idx]
		if len(parts) == 2 {
			return d, nil
		}
		if len(parts) != 3 {
			return nil, unknown
		}
		switch parts[2] {
		case "name":
			return d.Name, nil
		case "x":
			return d.X, nil
		case "y":
			return d.Y, nil
		case "width":
			return d.Width, nil
		case "height":
			return d.Height, nil
		case "dpi":
			return d.DPI, nil
		case "refresh_rate":
			return d.RefreshRate, nil
		case "primary":
			return d.Primary, nil
		}
		return nil, unknown
	default:
		return nil, unknown
	}
}
