package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/weaver"
	"github.com/simonhull/firebird-suite/weaver/internal/output"
	"github.com/simonhull/firebird-suite/weaver/pkg/config"
	"github.com/simonhull/firebird-suite/weaver/pkg/logger"
)

// app carries the persistent flags into every subcommand.
type app struct {
	verbose    bool
	configPath string
}

// RootCmd creates the weaver command tree.
func RootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "weaver",
		Short: "Weaver - Data Clump Graph Builder",
		Long: `Weaver turns data-clump reports into navigable graphs.

Files, classes, methods, fields and parameters become nodes. Containment
and clump relations become edges. Graphs are exported as a vis-network
JSON dataset, a standalone HTML viewer or a Mermaid flowchart.

Example:
  weaver graph report.json
  weaver graph report.json --from-file src/Order.java --format html --dark
  weaver batch ./reports --out ./graphs`,
		Version:       weaver.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetOutput(cmd.OutOrStdout())
			output.SetVerbose(a.verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultFile, "Path to configuration file")

	cmd.AddCommand(GraphCmd(a))
	cmd.AddCommand(StatsCmd(a))
	cmd.AddCommand(BatchCmd(a))
	cmd.AddCommand(InitCmd(a))
	cmd.AddCommand(versionCmd())

	return cmd
}

// Execute runs the root command and reports a failure the way every
// Firebird Suite tool does.
func Execute() error {
	cmd := RootCmd()
	if err := cmd.Execute(); err != nil {
		output.Error(err.Error())
		return err
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Weaver v%s\n", weaver.Version)
		},
	}
}

// setup loads the configuration and builds the command's logger. Logs go
// to stderr; stdout is reserved for command output.
func (a *app) setup(cmd *cobra.Command) (*config.Config, logger.Logger, error) {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return nil, nil, err
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	if a.verbose {
		level = logger.LevelDebug
	}

	log := logger.NewLogger(level, cmd.ErrOrStderr())
	logger.SetDefault(log)

	output.Verbose(fmt.Sprintf("Configuration: %s", a.configPath))
	return cfg, log, nil
}
