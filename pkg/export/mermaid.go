package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/firebird-suite/weaver/pkg/graph"
)

// MermaidExporter writes a Mermaid flowchart. Containment edges render as
// arrows and relations as plain links.
type MermaidExporter struct {
	opts Options
}

func (e *MermaidExporter) Format() Format   { return FormatMermaid }
func (e *MermaidExporter) Filename() string { return "graph.mmd" }

func (e *MermaidExporter) Export(w io.Writer, g *graph.Graph) error {
	if _, err := io.WriteString(w, e.Render(g)); err != nil {
		return fmt.Errorf("writing mermaid: %w", err)
	}
	return nil
}

// Render returns the flowchart source for g.
func (e *MermaidExporter) Render(g *graph.Graph) string {
	theme := e.opts.theme()

	var b strings.Builder
	b.WriteString("flowchart LR\n")

	// Node ids are positional; the first node carrying an id wins edge
	// endpoints.
	ids := make(map[string]string, len(g.Nodes))
	byKind := make(map[graph.Kind][]string, len(graph.Kinds))
	for i, n := range g.Nodes {
		id := fmt.Sprintf("n%d", i)
		if _, ok := ids[n.ID]; !ok {
			ids[n.ID] = id
		}
		byKind[n.Kind] = append(byKind[n.Kind], id)
		fmt.Fprintf(&b, "  %s[\"%s\"]\n", id, mermaidLabel(n.Label))
	}

	if len(g.Edges) > 0 {
		b.WriteString("\n")
	}
	for _, edge := range g.Edges {
		from, okFrom := ids[edge.From]
		to, okTo := ids[edge.To]
		if !okFrom || !okTo {
			continue
		}
		link := "---"
		if edge.Directed() {
			link = "-->"
		}
		fmt.Fprintf(&b, "  %s %s %s\n", from, link, to)
	}

	b.WriteString("\n")
	for _, kind := range graph.Kinds {
		members := byKind[kind]
		if len(members) == 0 {
			continue
		}
		style := theme.StyleFor(kind)
		fmt.Fprintf(&b, "  classDef %sNode fill:%s,stroke:%s,color:%s;\n",
			kind, style.Color, theme.EdgeColor(e.opts.DarkMode), style.TextColor)
		fmt.Fprintf(&b, "  class %s %sNode;\n", strings.Join(members, ","), kind)
	}
	if len(g.Edges) > 0 {
		fmt.Fprintf(&b, "  linkStyle default stroke:%s;\n", theme.EdgeColor(e.opts.DarkMode))
	}

	return b.String()
}

var labelEscaper = strings.NewReplacer(
	`"`, "#quot;",
	"\n", " ",
	"\r", "",
)

func mermaidLabel(s string) string {
	return labelEscaper.Replace(s)
}
