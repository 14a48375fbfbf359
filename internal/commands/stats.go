package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/weaver/internal/output"
	"github.com/simonhull/firebird-suite/weaver/pkg/dataclumps"
	"github.com/simonhull/firebird-suite/weaver/pkg/graph"
)

// StatsCmd creates the 'stats' command.
func StatsCmd(a *app) *cobra.Command {
	var (
		filter  graph.Filter
		applyTo bool
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "stats <report.json>",
		Short: "Summarise the graph a report produces",
		Long: `Builds the graph without writing it and prints node and edge counts.

Example:
  weaver stats report.json
  weaver stats report.json --from-file src/Order.java --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.setup(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("apply-to-file") {
				cfg.Graph.ApplyToFilePath = applyTo
			}

			report, err := dataclumps.Load(args[0])
			if err != nil {
				return err
			}

			g, err := graph.NewBuilder(cfg.GraphTheme(), cfg.GraphOptions()).
				WithLogger(log).
				Build(report, filter)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(g.Stats)
			}

			printStats(args[0], g, cfg.Graph.LargeGraphThreshold)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.FromFilePath, "from-file", "", "Only include occurrences whose from_file_path matches exactly")
	cmd.Flags().StringVar(&filter.ToFilePath, "to-file", "", "Target file path (only applied with --apply-to-file)")
	cmd.Flags().BoolVar(&applyTo, "apply-to-file", false, "Also filter occurrences on to_file_path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the statistics as JSON")

	return cmd
}

var kindIcons = map[graph.Kind]string{
	graph.KindFile:      "📄",
	graph.KindClass:     "📦",
	graph.KindField:     "🔹",
	graph.KindMethod:    "🔧",
	graph.KindParameter: "🔸",
}

func printStats(path string, g *graph.Graph, threshold int) {
	s := g.Stats

	output.Plain(fmt.Sprintf("🕸️  Report: %s", path))
	output.Verbose(fmt.Sprintf("Version: %s", g.Version))
	output.Rule()
	output.Plain("Summary:")
	output.Plain(fmt.Sprintf("  📊 %d occurrences (%d processed, %d filtered, %d unknown)",
		s.Walk.Occurrences, s.Walk.Processed, s.Walk.Filtered, s.Walk.Unknown))
	output.Plain(fmt.Sprintf("  🧩 %d variable pairs", s.Walk.Pairs))
	output.Plain("")
	output.Plain(fmt.Sprintf("Nodes: %d", s.Nodes))
	for _, k := range graph.Kinds {
		output.Plain(fmt.Sprintf("  %s %s: %d", kindIcons[k], k, s.NodesByKind[k]))
	}
	output.Plain(fmt.Sprintf("Edges: %d", s.Edges))
	output.Plain(fmt.Sprintf("  • contains: %d", s.ContainsEdges))
	output.Plain(fmt.Sprintf("  • related: %d", s.RelatedEdges))
	output.Rule()

	if g.Large(threshold) {
		output.Warn(fmt.Sprintf("Graph is very large (more than %d nodes); consider --from-file", threshold))
	}
}
