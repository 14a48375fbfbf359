package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/weaver/internal/input"
	"github.com/simonhull/firebird-suite/weaver/internal/output"
	"github.com/simonhull/firebird-suite/weaver/internal/progress"
	"github.com/simonhull/firebird-suite/weaver/internal/watch"
	"github.com/simonhull/firebird-suite/weaver/pkg/config"
	"github.com/simonhull/firebird-suite/weaver/pkg/dataclumps"
	"github.com/simonhull/firebird-suite/weaver/pkg/export"
	"github.com/simonhull/firebird-suite/weaver/pkg/graph"
	"github.com/simonhull/firebird-suite/weaver/pkg/logger"
)

// GraphCmd creates the 'graph' command.
func GraphCmd(a *app) *cobra.Command {
	var (
		ef        exportFlags
		filter    graph.Filter
		applyTo   bool
		watchMode bool
	)

	cmd := &cobra.Command{
		Use:   "graph <report.json>",
		Short: "Build a graph from a data-clump report",
		Long: `Builds the graph for one report and writes it in every configured format.

Example:
  weaver graph report.json
  weaver graph report.json --from-file src/Order.java
  weaver graph report.json --format mermaid --out ./diagrams
  weaver graph report.json --watch`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.setup(cmd)
			if err != nil {
				return err
			}
			ef.apply(cmd, cfg)
			if cmd.Flags().Changed("apply-to-file") {
				cfg.Graph.ApplyToFilePath = applyTo
			}

			exporters, err := export.ForFormats(cfg.Output.Formats, exportOptions(cfg))
			if err != nil {
				return err
			}

			r := &graphRun{
				cmd:       cmd,
				cfg:       cfg,
				log:       log,
				report:    args[0],
				filter:    filter,
				builder:   graph.NewBuilder(cfg.GraphTheme(), cfg.GraphOptions()).WithLogger(log),
				exporters: exporters,
			}

			if !watchMode {
				return r.run(cmd.Context())
			}
			return r.watch(cmd.Context())
		},
	}

	ef.register(cmd)
	cmd.Flags().StringVar(&filter.FromFilePath, "from-file", "", "Only include occurrences whose from_file_path matches exactly")
	cmd.Flags().StringVar(&filter.ToFilePath, "to-file", "", "Target file path (only applied with --apply-to-file)")
	cmd.Flags().BoolVar(&applyTo, "apply-to-file", false, "Also filter occurrences on to_file_path")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Rebuild whenever the report changes")

	return cmd
}

// graphRun holds everything needed to rebuild one report.
type graphRun struct {
	cmd       *cobra.Command
	cfg       *config.Config
	log       logger.Logger
	report    string
	filter    graph.Filter
	builder   *graph.Builder
	exporters []export.Exporter
	rebuilds  int
}

func (r *graphRun) run(ctx context.Context) error {
	var g *graph.Graph
	err := progress.Run(ctx, r.cmd.ErrOrStderr(), "Building graph", func(ctx context.Context) error {
		report, err := dataclumps.Load(r.report)
		if err != nil {
			return err
		}
		g, err = r.builder.Build(report, r.filter)
		return err
	})
	if err != nil {
		return err
	}

	output.Verbose(fmt.Sprintf("Version: %s", g.Version))
	output.Verbose(fmt.Sprintf("Occurrences: %d processed, %d filtered, %d unknown",
		g.Stats.Walk.Processed, g.Stats.Walk.Filtered, g.Stats.Walk.Unknown))

	// Outputs from an earlier rebuild in watch mode belong to us.
	force := r.cfg.Output.Force || r.rebuilds > 0
	r.rebuilds++

	if !r.confirmLarge(g, force) {
		output.Warn("Export skipped")
		return nil
	}

	paths, err := export.WriteAll(r.cfg.Output.Path, g, r.exporters, force, r.log)
	if err != nil {
		return err
	}

	output.Success(fmt.Sprintf("Built graph: %d nodes, %d edges", g.Stats.Nodes, g.Stats.Edges))
	for _, p := range paths {
		output.Step(p)
	}
	return nil
}

// confirmLarge asks before writing an HTML page for an oversized graph.
// The page itself still hides the graph behind its own guard.
func (r *graphRun) confirmLarge(g *graph.Graph, force bool) bool {
	threshold := r.cfg.Graph.LargeGraphThreshold
	if force || !g.Large(threshold) || !hasFormat(r.exporters, export.FormatHTML) {
		return true
	}

	output.Warn(fmt.Sprintf("Graph is very large: %d nodes, %d edges (threshold %d)",
		len(g.Nodes), len(g.Edges), threshold))
	output.Info("Select a specific file with --from-file, or export anyway")
	return input.ConfirmFrom(r.cmd.InOrStdin(), r.cmd.OutOrStdout(), "Export anyway?", false)
}

// watch rebuilds on every debounced change until interrupted.
func (r *graphRun) watch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(watch.Config{Path: r.report, Debounce: r.cfg.Watch.Debounce})
	if err != nil {
		return err
	}
	defer w.Stop()

	events, err := w.WithLogger(r.log).Start(ctx)
	if err != nil {
		return err
	}

	// In watch mode a failed build is reported and the loop keeps going.
	if err := r.run(ctx); err != nil {
		output.Error(err.Error())
	}
	output.Info(fmt.Sprintf("Watching %s (Ctrl-C to stop)", w.Path()))

	for event := range events {
		output.Verbose(fmt.Sprintf("Change detected: %s", event.Op))
		if err := r.run(ctx); err != nil {
			output.Error(err.Error())
		}
	}

	output.Info("Stopped watching")
	return nil
}
