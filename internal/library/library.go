// Package library scans an image directory and probes pixel sizes without
// decoding image data.
package library

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	// Registered decoders for image.DecodeConfig.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/1broseidon/aetherwave/internal/content"
)

// DefaultExtensions are the file extensions scanned when none are configured.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".tiff", ".webp", ".bmp", ".gif"}

// Entry is one probed image.
type Entry struct {
	Path   string
	Format string
	Width  int
	Height int
}

// Image returns the layout descriptor for e.
func (e Entry) Image() content.Image {
	return content.Image{Width: e.Width, Height: e.Height}
}

// Images converts entries to layout descriptors, preserving order.
func Images(entries []Entry) []content.Image {
	images := make([]content.Image, len(entries))
	for i, e := range entries {
		images[i] = e.Image()
	}
	return images
}

// Scanner lists images in a directory.
type Scanner struct {
	extensions map[string]bool
	logger     *slog.Logger
}

// NewScanner returns a scanner matching extensions case-insensitively. An
// empty list selects DefaultExtensions.
func NewScanner(extensions []string, logger *slog.Logger) *Scanner {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return &Scanner{extensions: set, logger: logger}
}

// Matches reports whether name has a scanned extension.
func (s *Scanner) Matches(name string) bool {
	return s.extensions[strings.ToLower(filepath.Ext(name))]
}

// Scan probes every matching regular file directly inside dir, sorted by
// name. Files that cannot be probed are logged and skipped.
func (s *Scanner) Scan(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read image directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() || !s.Matches(de.Name()) {
			continue
		}
		names = append(names, de.Name())
	}
	slices.Sort(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		entry, err := Probe(path)
		if err != nil {
			s.logger.Warn("skipping image", "path", path, "error", err)
			continue
		}
		entries = append(entries, entry)
	}

	s.logger.Debug("scanned image directory", "dir", dir, "matched", len(names), "probed", len(entries))
	return entries, nil
}

// Probe reads the header of the image at path.
func Probe(path string) (Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return Entry{}, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Entry{}, fmt.Errorf("decode image header %s: %w", path, err)
	}
	return Entry{Path: path, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
