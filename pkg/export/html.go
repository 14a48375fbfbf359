package export

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/simonhull/firebird-suite/weaver/pkg/graph"
)

//go:embed templates/graph.html
var graphTemplate string

var pageTemplate = template.Must(template.New("graph").Parse(graphTemplate))

// HTMLExporter writes a self-contained vis-network page.
type HTMLExporter struct {
	opts Options
}

func (e *HTMLExporter) Format() Format   { return FormatHTML }
func (e *HTMLExporter) Filename() string { return "graph.html" }

// visOptions mirrors the vis-network options object.
type visOptions struct {
	Layout struct {
		Hierarchical bool `json:"hierarchical"`
	} `json:"layout"`
	Edges struct {
		Color string `json:"color"`
	} `json:"edges"`
	Nodes struct {
		Shape           string `json:"shape"`
		ShapeProperties struct {
			BorderRadius int `json:"borderRadius"`
		} `json:"shapeProperties"`
	} `json:"nodes"`
}

func newVisOptions(theme *graph.Theme, dark bool) visOptions {
	var o visOptions
	o.Edges.Color = theme.EdgeColor(dark)
	o.Nodes.Shape = theme.Shape
	o.Nodes.ShapeProperties.BorderRadius = theme.BorderRadius
	return o
}

type pageData struct {
	Title     string
	Version   string
	Dark      bool
	Large     bool
	NodeCount int
	EdgeCount int
	Dataset   template.JS
	Options   template.JS
}

func (e *HTMLExporter) Export(w io.Writer, g *graph.Graph) error {
	dataset, err := json.Marshal(struct {
		Nodes []*graph.Node `json:"nodes"`
		Edges []graph.Edge  `json:"edges"`
	}{g.Nodes, g.Edges})
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}

	options, err := json.Marshal(newVisOptions(e.opts.theme(), e.opts.DarkMode))
	if err != nil {
		return fmt.Errorf("encoding options: %w", err)
	}

	// json.Marshal escapes <, > and &, so the output is safe inside <script>.
	data := pageData{
		Title:     e.opts.title(),
		Version:   g.Version,
		Dark:      e.opts.DarkMode,
		Large:     g.Large(e.opts.LargeGraphThreshold),
		NodeCount: len(g.Nodes),
		EdgeCount: len(g.Edges),
		Dataset:   template.JS(dataset),
		Options:   template.JS(options),
	}

	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	return nil
}
