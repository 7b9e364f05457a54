// Command colwidth resolves column widths from the command line.
//
// Usage:
//
//	colwidth -table sfdc_customers -width 1200px
//	colwidth -width 100% -file columns.json
//	echo '[{"key":"a","width":"30%"},{"key":"b"}]' | colwidth -width 800px
//
// Input is either a JSON array of columns or an object with "parentWidth"
// and "columns". The -width flag overrides the parent width in the input.
// Diagnostics are logged to stderr; the resolved table goes to stdout.
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/JonMunkholm/vtable/internal/config"
	"github.com/JonMunkholm/vtable/internal/core"
	_ "github.com/JonMunkholm/vtable/internal/core/tables" // Register all table views
	"github.com/JonMunkholm/vtable/internal/layout"
	"github.com/JonMunkholm/vtable/internal/logging"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joho/godotenv"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2

	rulerWidth = 72
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4")).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	rulerColors = []lipgloss.Color{"#89b4fa", "#a6e3a1", "#fab387", "#f38ba8", "#cba6f7"}
)

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// input is the JSON accepted on stdin or from -file.
type input struct {
	ParentWidth string              `json:"parentWidth"`
	Columns     []layout.ColumnSpec `json:"columns"`
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("colwidth", flag.ContinueOnError)
	fs.SetOutput(stderr)
	width := fs.String("width", "", "parent width, e.g. 1200px or 100% (default from LAYOUT_DEFAULT_PARENT_WIDTH)")
	file := fs.String("file", "", "read columns from this JSON file instead of stdin")
	tableKey := fs.String("table", "", "resolve a registered table view instead of reading columns")
	list := fs.Bool("list", false, "list registered table views and exit")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "colwidth: %v\n", err)
		return exitUsage
	}
	logger := logging.New(stderr, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	if *list {
		printTables(stdout)
		return exitOK
	}

	in, err := readInput(*tableKey, *file, stdin)
	if err != nil {
		logger.Error("read columns", "error", err)
		return exitUsage
	}
	if *width != "" {
		in.ParentWidth = *width
	}
	if in.ParentWidth == "" {
		in.ParentWidth = cfg.Layout.DefaultParentWidth
	}

	family, parent, err := layout.ParentFamily(in.ParentWidth)
	if err != nil {
		logger.Error("invalid parent width", "error", err)
		return exitUsage
	}

	resolved, diags, err := layout.Resolve(in.Columns, in.ParentWidth,
		layout.WithPercentReserve(cfg.Layout.PercentReserve),
		layout.WithPixelReserve(cfg.Layout.PixelReserve),
		layout.WithLogger(logger),
	)
	if err != nil {
		logger.Error("resolve", "error", err)
		return exitFailure
	}

	fmt.Fprintln(stdout, dimStyle.Render(fmt.Sprintf("parent %s (%s)", in.ParentWidth, family)))
	fmt.Fprintln(stdout, renderTable(in.Columns, resolved))
	if family == layout.FamilyPixel {
		fmt.Fprintln(stdout, renderRuler(resolved, parent.Amount))
	}
	for _, d := range diags {
		fmt.Fprintln(stderr, d.String())
	}
	return exitOK
}

// readInput loads columns from a registered view, a file or stdin.
func readInput(tableKey, file string, stdin io.Reader) (input, error) {
	if tableKey != "" {
		view, ok := core.Get(tableKey)
		if !ok {
			return input{}, fmt.Errorf("%w: %s", core.ErrTableNotFound, tableKey)
		}
		return input{Columns: view.Columns}, nil
	}

	var (
		data []byte
		err  error
	)
	if file != "" {
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return input{}, err
	}
	return parseInput(data)
}

// parseInput accepts a bare column array or an object with columns.
func parseInput(data []byte) (input, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return input{}, errors.New("empty input")
	}

	var in input
	if data[0] == '[' {
		err := json.Unmarshal(data, &in.Columns)
		return in, err
	}
	err := json.Unmarshal(data, &in)
	return in, err
}

func renderTable(requested, resolved []layout.ColumnSpec) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(dimStyle).
		Headers("KEY", "TITLE", "REQUESTED", "RESOLVED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})

	for i, c := range resolved {
		req := requested[i].RawWidth()
		if req == "" {
			req = "auto"
		}
		key := c.Key
		if c.Type == layout.ColumnCheckbox {
			key += " [x]"
		}
		t.Row(key, c.Title, req, c.RawWidth())
	}
	return t.Render()
}

// renderRuler draws each pixel column as a colored bar scaled to rulerWidth.
func renderRuler(resolved []layout.ColumnSpec, parent float64) string {
	if parent <= 0 {
		return ""
	}

	var b strings.Builder
	used := 0
	for i, c := range resolved {
		w, err := c.Width.Parse()
		if err != nil {
			continue
		}
		cells := int(math.Round(w.Amount / parent * rulerWidth))
		if i == len(resolved)-1 {
			cells = rulerWidth - used
		}
		if cells <= 0 {
			continue
		}
		used += cells
		style := lipgloss.NewStyle().Foreground(rulerColors[i%len(rulerColors)])
		b.WriteString(style.Render(strings.Repeat("█", cells)))
	}
	return b.String()
}

func printTables(w io.Writer) {
	for _, group := range core.Groups() {
		fmt.Fprintln(w, headerStyle.Render(group))
		for _, v := range core.ByGroup(group) {
			fmt.Fprintf(w, "  %-24s %s\n", v.Info.Key, dimStyle.Render(v.Info.Label))
		}
	}
}
