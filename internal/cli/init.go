package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/resippy/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the config file and an empty menu",
		Long: "Init writes config.yaml if it is missing, creates the data directory,\n" +
			"and sets up the menu and meal plan. An explicit --data-dir is saved in\n" +
			"config.yaml so later commands find the same menu.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.dataDir != "" {
				if err := rememberDataDir(a.resolvedConfigDir, a.config.DataDir); err != nil {
					return systemError(err)
				}
			}

			b, err := a.attach()
			if err != nil {
				return err
			}
			if err := b.Detach(); err != nil {
				return systemError(fmt.Errorf("closing the menu: %w", err))
			}
			printSuccess(cmd.OutOrStdout(), "resippy initialized in %s", a.config.DataDir)
			return nil
		},
	}
}

// rememberDataDir records dataDir in config.yaml.
func rememberDataDir(configDir, dataDir string) error {
	path := paths.ConfigFile(configDir)
	cfg, err := readConfig(path)
	if err != nil {
		return err
	}
	if cfg.DataDir == dataDir {
		return nil
	}
	cfg.DataDir = dataDir
	return writeConfig(path, cfg)
}
