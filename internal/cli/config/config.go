// Package config implements the config command group.
package config

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/steviee/cfdl/internal/cli/clienv"
	appconfig "github.com/steviee/cfdl/internal/config"
)

// NewCommand creates the config command group
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `View and create the cfdl configuration file.

Configuration is stored in ~/.config/cfdl/config.yaml by default
($XDG_CONFIG_HOME is honoured). Every key can be overridden with an
environment variable prefixed with CFDL_, for example CFDL_API_BASE_URL
or CFDL_DEFAULTS_GAME_VERSION.`,
		Example: `  # Show the effective configuration
  cfdl config show

  # Write a default configuration file
  cfdl config init

  # Check a configuration file
  cfdl config validate

  # Show configuration file path
  cfdl config path`,
		Aliases: []string{"cfg"},
	}

	cmd.AddCommand(newPathCommand())
	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newInitCommand())
	cmd.AddCommand(newValidateCommand())

	return cmd
}

func configFile(env *clienv.Env) (string, error) {
	if env.ConfigFile != "" {
		return env.ConfigFile, nil
	}
	return appconfig.GetConfigPath()
}

func fsOf(env *clienv.Env) afero.Fs {
	if env.Fs != nil {
		return env.Fs
	}
	return afero.NewOsFs()
}

func newPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := clienv.FromContext(cmd.Context())

			path, err := configFile(env)
			if err != nil {
				return err
			}

			if env.JSON {
				return clienv.WriteJSON(cmd.OutOrStdout(), map[string]string{"path": path})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Print the configuration in effect after merging defaults, the
configuration file and CFDL_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := clienv.FromContext(cmd.Context())

			if env.JSON {
				return clienv.WriteJSON(cmd.OutOrStdout(), env.Config)
			}

			data, err := appconfig.Marshal(env.Config)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Write the default configuration to the configuration file path.

An existing file is left untouched unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := clienv.FromContext(cmd.Context())
			fs := fsOf(env)

			path, err := configFile(env)
			if err != nil {
				return err
			}

			exists, err := afero.Exists(fs, path)
			if err != nil {
				return fmt.Errorf("check config file: %w", err)
			}
			if exists && !force {
				return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
			}

			if err := appconfig.SaveConfig(fs, path, appconfig.DefaultConfig()); err != nil {
				return err
			}

			if env.JSON {
				return clienv.WriteJSON(cmd.OutOrStdout(), map[string]string{"path": path})
			}
			if !env.Quiet {
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")

	return cmd
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a configuration file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env := clienv.FromContext(cmd.Context())

			path, err := configFile(env)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				path = args[0]
			}

			if _, err := appconfig.LoadConfig(fsOf(env), path); err != nil {
				if env.JSON {
					return clienv.WriteJSONError(cmd.OutOrStdout(), err)
				}
				return err
			}

			if env.JSON {
				return clienv.WriteJSON(cmd.OutOrStdout(), map[string]interface{}{"path": path, "valid": true})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
			return err
		},
	}
}
