package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmcdole/bitreel/internal/adapter"
)

// config: manage the configuration file
func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or locate the configuration file",
	}
	cmd.AddCommand(configInitCmd(), configPathCmd())
	return cmd
}

// config init: write the effective configuration to disk
func configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write the current settings to the config file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNewConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configTarget()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := adapter.SaveConfig(appCtx.cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// config path: print where the config file is read from
func configPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), configTarget())
			return nil
		},
	}
}

func configTarget() string {
	if cfgFile != "" {
		return cfgFile
	}
	return adapter.DefaultConfigFile()
}
