package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	charmlog "github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/aetherwave/internal/config"
	"github.com/1broseidon/aetherwave/internal/display"
	"github.com/1broseidon/aetherwave/internal/platform"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "displays":
		os.Exit(runDisplays(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "watch":
		os.Exit(runWatch(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: aetherwave <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  displays            List attached displays")
	fmt.Fprintln(w, "  layout              Compute the layout for an image directory")
	fmt.Fprintln(w, "  watch               Track the presentation window and recompute per frame")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "  config init         Write the default configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'aetherwave <command> --help' for command-specific options.")
}

const pathUsage = "Config file path (default: ~/.config/aetherwave/config.yaml)"

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.LoadWithSources()
	}
	return config.LoadFromPath(path)
}

// newLogger backs slog with charmbracelet/log on stderr.
func newLogger(level slog.Level, verbose bool) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           charmlog.Level(level),
	})
	return slog.New(handler)
}

// session is an opened backend plus what it needs to be closed.
type session struct {
	backend platform.Backend
	x11     *platform.LinuxBackend // nil unless the X11 backend is in use
}

func (s *session) Close() {
	if s.x11 != nil {
		s.x11.Disconnect()
	}
}

// openBackend resolves backend: auto to X11 when a display is reachable and
// to the configured static topology otherwise.
func openBackend(cfg *config.Config, logger *slog.Logger) (*session, error) {
	switch cfg.Backend {
	case config.BackendStatic:
		return &session{backend: cfg.StaticBackend()}, nil
	case config.BackendX11:
		linux, err := platform.NewLinuxBackendFromDisplay()
		if err != nil {
			return nil, err
		}
		return &session{backend: linux, x11: linux}, nil
	default:
		if os.Getenv("DISPLAY") == "" {
			logger.Debug("DISPLAY not set, using static displays")
			return &session{backend: cfg.StaticBackend()}, nil
		}
		linux, err := platform.NewLinuxBackendFromDisplay()
		if err != nil {
			logger.Warn("X11 unavailable, using static displays", "error", err)
			return &session{backend: cfg.StaticBackend()}, nil
		}
		return &session{backend: linux, x11: linux}, nil
	}
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	currentStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("10"))
)

func renderTable(headers []string, rows [][]string, highlight int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return headerStyle
			case row == highlight:
				return currentStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}

func displayRows(displays []display.Descriptor) [][]string {
	rows := make([][]string, 0, len(displays))
	for _, d := range displays {
		primary := ""
		if d.Primary {
			primary = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(d.Index),
			d.Name,
			fmt.Sprintf("%dx%d", d.Bounds.Width, d.Bounds.Height),
			fmt.Sprintf("%d,%d", d.Bounds.X, d.Bounds.Y),
			fmt.Sprintf("%.1f", d.HDPI),
			fmt.Sprintf("%.2f", d.DPIScale),
			fmt.Sprintf("%dHz", d.RefreshRate),
			primary,
		})
	}
	return rows
}

func runDisplays(args []string) int {
	fs := flag.NewFlagSet("displays", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", pathUsage)
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: aetherwave displays [--path PATH] [--verbose]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List attached displays with DPI and refresh rate.")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "displays takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := newLogger(res.Config.SlogLevel(), *verbose)

	sess, err := openBackend(res.Config, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer sess.Close()

	tracker := display.NewTracker(sess.backend, logger)
	displays := tracker.Scan()
	if len(displays) == 0 {
		fmt.Fprintln(os.Stderr, "no displays found")
		return 1
	}

	current := -1
	if id, err := sess.backend.ActiveWindow(); err == nil {
		if bounds, err := sess.backend.WindowBounds(id); err == nil {
			current, _ = tracker.Locate(bounds)
		}
	}

	headers := []string{"#", "Name", "Size", "Origin", "DPI", "Scale", "Refresh", "Primary"}
	fmt.Println(renderTable(headers, displayRows(displays), current))
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  aetherwave config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  aetherwave config print [--path PATH] [--effective|--defaults]")
		fmt.Fprintln(os.Stderr, "  aetherwave config explain [--path PATH] <yaml.path>")
		fmt.Fprintln(os.Stderr, "  aetherwave config init [--path PATH] [--force]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", pathUsage)
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		if _, err := loadConfig(*path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", pathUsage)
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		printEffective := fs.Bool("effective", false, "Print effective config (default)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		_ = printEffective // default
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			cfg = res.Config
		}
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	case "explain":
		fs := flag.NewFlagSet("explain", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", pathUsage)
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}
		if fs.NArg() < 1 {
			fmt.Fprintln(os.Stderr, "explain requires <yaml.path>")
			return 2
		}
		queryPath := fs.Arg(0)

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		value, src, err := config.Explain(res, queryPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		out, err := yaml.Marshal(value)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		fmt.Printf("path: %s\n", queryPath)
		fmt.Printf("source: %s\n", formatSource(src))
		fmt.Printf("value:\n%s", string(out))
		return 0

	case "init":
		fs := flag.NewFlagSet("init", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", pathUsage)
		force := fs.Bool("force", false, "Overwrite an existing file")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		target := *path
		if target == "" {
			var err error
			if target, err = config.DefaultConfigPath(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
		}
		if _, err := os.Stat(target); err == nil && !*force {
			fmt.Fprintf(os.Stderr, "%s already exists (use --force to overwrite)\n", target)
			return 1
		}
		if err := config.DefaultConfig().Save(target); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("wrote %s\n", target)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
