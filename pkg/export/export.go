// Package export renders built graphs into files: the vis-network JSON
// dataset, a standalone HTML viewer and a Mermaid flowchart.
//
//	exporters, err := export.ForFormats([]string{"json", "html"}, export.Options{Title: "Orders"})
//	paths, err := export.WriteAll("./out", g, exporters, false)
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/firebird-suite/weaver/pkg/graph"
)

// ErrUnknownFormat is returned for format names no exporter handles.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names an output format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatHTML    Format = "html"
	FormatMermaid Format = "mermaid"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatHTML, FormatMermaid}

// ParseFormat resolves a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Options are shared by all exporters.
type Options struct {
	Title    string
	Theme    *graph.Theme
	DarkMode bool
	// LargeGraphThreshold hides the HTML graph behind a confirmation panel
	// when the node count exceeds it. Zero disables the guard.
	LargeGraphThreshold int
}

func (o Options) theme() *graph.Theme {
	if o.Theme == nil {
		return graph.DefaultTheme()
	}
	return o.Theme
}

func (o Options) title() string {
	if o.Title == "" {
		return "Data Clumps"
	}
	return o.Title
}

// Exporter writes a graph in one format.
type Exporter interface {
	Format() Format
	// Filename is the base name the output is written under.
	Filename() string
	Export(w io.Writer, g *graph.Graph) error
}

// New returns the exporter for format.
func New(format Format, opts Options) (Exporter, error) {
	switch format {
	case FormatJSON:
		return &JSONExporter{}, nil
	case FormatHTML:
		return &HTMLExporter{opts: opts}, nil
	case FormatMermaid:
		return &MermaidExporter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ForFormats parses names and builds one exporter per distinct format, in
// the order given.
func ForFormats(names []string, opts Options) ([]Exporter, error) {
	seen := make(map[Format]bool, len(names))
	exporters := make([]Exporter, 0, len(names))
	for _, name := range names {
		f, err := ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			continue
		}
		seen[f] = true

		e, err := New(f, opts)
		if err != nil {
			return nil, err
		}
		exporters = append(exporters, e)
	}
	return exporters, nil
}
