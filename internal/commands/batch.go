package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/weaver/internal/discover"
	"github.com/simonhull/firebird-suite/weaver/internal/output"
	"github.com/simonhull/firebird-suite/weaver/internal/progress"
	"github.com/simonhull/firebird-suite/weaver/pkg/dataclumps"
	"github.com/simonhull/firebird-suite/weaver/pkg/export"
	"github.com/simonhull/firebird-suite/weaver/pkg/graph"
	"github.com/simonhull/firebird-suite/weaver/pkg/logger"
)

// BatchCmd creates the 'batch' command.
func BatchCmd(a *app) *cobra.Command {
	var (
		ef      exportFlags
		include []string
		exclude []string
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Build graphs for every report below a directory",
		Long: `Walks a directory for data-clump reports and writes one output directory
per report, mirroring the report's relative path.

Example:
  weaver batch ./reports
  weaver batch ./reports --include '**.json' --exclude 'archive/**' --out ./graphs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.setup(cmd)
			if err != nil {
				return err
			}
			ef.apply(cmd, cfg)
			if cmd.Flags().Changed("include") {
				cfg.Batch.Include = include
			}
			if cmd.Flags().Changed("exclude") {
				cfg.Batch.Exclude = exclude
			}

			exporters, err := export.ForFormats(cfg.Output.Formats, exportOptions(cfg))
			if err != nil {
				return err
			}

			root := args[0]
			reports, err := discover.Reports(root, discover.Options{
				Include:   cfg.Batch.Include,
				Exclude:   cfg.Batch.Exclude,
				SkipPaths: []string{cfg.Output.Path},
			})
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				output.Warn(fmt.Sprintf("No reports found in %s", root))
				return nil
			}
			output.Info(fmt.Sprintf("Found %d reports", len(reports)))

			builder := graph.NewBuilder(cfg.GraphTheme(), cfg.GraphOptions()).WithLogger(log)

			var failed int
			for _, path := range reports {
				dir := reportDir(cfg.Output.Path, root, path)
				err := progress.Run(cmd.Context(), cmd.ErrOrStderr(), "Building "+path, func(ctx context.Context) error {
					return buildReport(builder, path, dir, exporters, cfg.Output.Force, cfg.Graph.LargeGraphThreshold, log)
				})
				if err != nil {
					failed++
					output.Error(fmt.Sprintf("%s: %v", path, err))
					continue
				}
				output.Step(fmt.Sprintf("%s -> %s", path, dir))
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d reports failed", failed, len(reports))
			}
			output.Success(fmt.Sprintf("Built %d graphs", len(reports)))
			return nil
		},
	}

	ef.register(cmd)
	cmd.Flags().StringSliceVar(&include, "include", nil, "Glob patterns selecting reports (default from config)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Glob patterns excluding reports")

	return cmd
}

func buildReport(builder *graph.Builder, path, dir string, exporters []export.Exporter, force bool, threshold int, log logger.Logger) error {
	report, err := dataclumps.Load(path)
	if err != nil {
		return err
	}

	g, err := builder.Build(report, graph.Filter{})
	if err != nil {
		return err
	}
	if g.Large(threshold) {
		log.Warn("Large graph exported",
			logger.F("report", path),
			logger.F("nodes", len(g.Nodes)),
			logger.F("edges", len(g.Edges)))
	}

	_, err = export.WriteAll(dir, g, exporters, force, log)
	return err
}
