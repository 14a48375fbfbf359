package commands

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/weaver/pkg/config"
	"github.com/simonhull/firebird-suite/weaver/pkg/export"
)

// exportFlags are shared by graph and batch.
type exportFlags struct {
	out     string
	formats []string
	force   bool
	dark    bool
	dedupe  bool
	title   string
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output directory (default from config)")
	cmd.Flags().StringSliceVarP(&f.formats, "format", "f", nil, "Export formats: json, html, mermaid (repeatable)")
	cmd.Flags().BoolVar(&f.force, "force", false, "Overwrite existing outputs and skip the large graph prompt")
	cmd.Flags().BoolVar(&f.dark, "dark", false, "Render for a dark background")
	cmd.Flags().BoolVar(&f.dedupe, "dedupe", false, "Emit one relation edge per symmetric pair")
	cmd.Flags().StringVar(&f.title, "title", "", "Page title for HTML output")
}

// apply lets explicitly set flags win over the loaded configuration.
func (f *exportFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Path = f.out
	}
	if flags.Changed("format") {
		cfg.Output.Formats = f.formats
	}
	if flags.Changed("force") {
		cfg.Output.Force = f.force
	}
	if flags.Changed("dark") {
		cfg.Graph.DarkMode = f.dark
	}
	if flags.Changed("dedupe") {
		cfg.Graph.DedupeRelations = f.dedupe
	}
	if flags.Changed("title") {
		cfg.Output.Title = f.title
	}
}

func exportOptions(cfg *config.Config) export.Options {
	return export.Options{
		Title:               cfg.Output.Title,
		Theme:               cfg.GraphTheme(),
		DarkMode:            cfg.Graph.DarkMode,
		LargeGraphThreshold: cfg.Graph.LargeGraphThreshold,
	}
}

func hasFormat(exporters []export.Exporter, f export.Format) bool {
	for _, e := range exporters {
		if e.Format() == f {
			return true
		}
	}
	return false
}

// reportDir maps a report below root to its own output directory:
// nested/orders.json becomes <out>/nested/orders.
func reportDir(out, root, report string) string {
	rel, err := filepath.Rel(root, report)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(report)
	}
	return filepath.Join(out, strings.TrimSuffix(rel, filepath.Ext(rel)))
}
