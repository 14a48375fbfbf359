package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/firebird-suite/weaver/internal/output"
	"github.com/simonhull/firebird-suite/weaver/pkg/config"
)

// InitCmd creates the 'init' command.
func InitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default weaver.yaml",
		Long: `Writes the default configuration to the --config path so it can be edited.

Example:
  weaver init
  weaver init --config ./ci/weaver.yaml --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			if err := config.SaveConfig(path, config.DefaultConfig()); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			output.Success(fmt.Sprintf("Created %s", path))
			output.Info("Next steps:")
			output.Step(fmt.Sprintf("weaver graph <report.json> --config %s", path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}
