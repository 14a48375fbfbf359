package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/simonhull/firebird-suite/weaver/pkg/graph"
)

// JSONExporter writes the graph as an indented vis-network dataset.
type JSONExporter struct{}

func (e *JSONExporter) Format() Format   { return FormatJSON }
func (e *JSONExporter) Filename() string { return "graph.json" }

func (e *JSONExporter) Export(w io.Writer, g *graph.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	return nil
}
