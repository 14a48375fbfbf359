package graph

import (
	"github.com/simonhull/firebird-suite/weaver/pkg/dataclumps"
	"github.com/simonhull/firebird-suite/weaver/pkg/logger"
)

// Options tunes a Builder.
type Options struct {
	// DedupeRelations emits one relation edge per symmetric pair instead of
	// one per direction.
	DedupeRelations bool
	// ApplyToFilePath makes Filter.ToFilePath an exact-match condition.
	ApplyToFilePath bool
	// DarkMode only affects exporters and the version hash.
	DarkMode bool
}

// Graph is the assembled model handed to exporters.
type Graph struct {
	Version string  `json:"version"`
	Nodes   []*Node `json:"nodes"`
	Edges   []Edge  `json:"edges"`
	Stats   Stats   `json:"stats"`
}

// Large reports whether the graph has more nodes than threshold.
func (g *Graph) Large(threshold int) bool {
	return threshold > 0 && len(g.Nodes) > threshold
}

// Stats summarises a built graph.
type Stats struct {
	Nodes         int          `json:"nodes"`
	Edges         int          `json:"edges"`
	NodesByKind   map[Kind]int `json:"nodes_by_kind"`
	ContainsEdges int          `json:"contains_edges"`
	RelatedEdges  int          `json:"related_edges"`
	Walk          WalkStats    `json:"walk"`
}

// Builder converts reports into graphs. It is safe for concurrent use;
// every Build works on its own registry.
type Builder struct {
	theme  *Theme
	opts   Options
	logger logger.Logger
}

// NewBuilder creates a Builder. A nil theme falls back to DefaultTheme.
func NewBuilder(theme *Theme, opts Options) *Builder {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Builder{
		theme:  theme,
		opts:   opts,
		logger: logger.Default(),
	}
}

// WithLogger returns a new Builder with the specified logger
func (b *Builder) WithLogger(log logger.Logger) *Builder {
	return &Builder{
		theme:  b.theme,
		opts:   b.opts,
		logger: log,
	}
}

// Theme returns the theme nodes are styled with.
func (b *Builder) Theme() *Theme {
	return b.theme
}

// Options returns the builder's options.
func (b *Builder) Options() Options {
	return b.opts
}

// Build walks report and assembles a fresh graph. A nil report yields an
// empty graph.
func (b *Builder) Build(report *dataclumps.Report, filter Filter) (*Graph, error) {
	version, err := Version(report, filter, b.opts)
	if err != nil {
		return nil, err
	}

	w := &walker{
		reg:    NewRegistry(b.theme),
		filter: filter,
		opts:   b.opts,
		logger: b.logger,
	}
	w.walk(report)

	nodes, edges := assemble(w.reg, b.opts.DedupeRelations)

	g := &Graph{
		Version: version,
		Nodes:   nodes,
		Edges:   edges,
		Stats:   computeStats(nodes, edges, w.stats),
	}

	b.logger.Debug("Graph built",
		logger.F("version", g.Version[:12]),
		logger.F("nodes", g.Stats.Nodes),
		logger.F("edges", g.Stats.Edges),
		logger.F("occurrences", w.stats.Processed),
		logger.F("filtered", w.stats.Filtered),
		logger.F("unknown", w.stats.Unknown))

	return g, nil
}

func computeStats(nodes []*Node, edges []Edge, walk WalkStats) Stats {
	s := Stats{
		Nodes:       len(nodes),
		Edges:       len(edges),
		NodesByKind: make(map[Kind]int, len(Kinds)),
		Walk:        walk,
	}
	for _, k := range Kinds {
		s.NodesByKind[k] = 0
	}
	for _, n := range nodes {
		s.NodesByKind[n.Kind]++
	}
	for _, e := range edges {
		if e.Kind == EdgeContains {
			s.ContainsEdges++
		} else {
			s.RelatedEdges++
		}
	}
	return s
}
