package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/steviee/cfdl/internal/cli/clienv"
	"github.com/steviee/cfdl/internal/cli/config"
	"github.com/steviee/cfdl/internal/cli/loaders"
	"github.com/steviee/cfdl/internal/cli/mods"
	"github.com/steviee/cfdl/internal/cli/ui"
	"github.com/steviee/cfdl/internal/cli/versions"
	appconfig "github.com/steviee/cfdl/internal/config"
)

var (
	// Global flags
	cfgFile string
	jsonOut bool
	quiet   bool
	verbose bool

	// Global logger
	logger *slog.Logger
)

// NewRootCommand creates and returns the root cobra command
func NewRootCommand(version, commit, date, builtBy string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cfdl",
		Short: "Download Minecraft mods from CurseForge",
		Long: `cfdl downloads Minecraft mod files from CurseForge through the
curse.tools API proxy.

It provides:
  - The list of Minecraft versions known to CurseForge
  - The list of supported mod loaders
  - Resolution of a CurseForge mod page URL to the file matching a
    Minecraft version, and its download
  - An interactive terminal form doing the same with dropdowns

No API key is needed.`,
		Example: `  # List Minecraft versions
  cfdl versions

  # Download a mod for a given version
  cfdl mods download https://www.curseforge.com/minecraft/mc-mods/jei -g 1.20.1

  # Open the interactive form
  cfdl ui`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Initialize config
			env, err := initConfig()
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}

			// Initialize logger based on flags and config
			if err := initLogger(env.Config.Logging.Level); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger.Debug("configuration loaded", "path", env.ConfigFile)

			cmd.SetContext(clienv.WithEnv(cmd.Context(), env))
			return nil
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/cfdl/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")

	// Mark json and quiet as mutually exclusive
	rootCmd.MarkFlagsMutuallyExclusive("json", "quiet")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.AddCommand(NewVersionCommand(version, commit, date, builtBy))

	rootCmd.AddCommand(versions.NewCommand())
	rootCmd.AddCommand(loaders.NewCommand())
	rootCmd.AddCommand(mods.NewCommand())
	rootCmd.AddCommand(mods.NewDownloadCommand())
	rootCmd.AddCommand(ui.NewCommand())
	rootCmd.AddCommand(config.NewCommand())

	return rootCmd
}

// initLogger initializes the global logger based on flags and the
// configured level
func initLogger(configured string) error {
	var level slog.Level

	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	default:
		if err := level.UnmarshalText([]byte(configured)); err != nil {
			return fmt.Errorf("parse log level %q: %w", configured, err)
		}
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if jsonOut {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)

	return nil
}

// initConfig merges defaults, the config file and CFDL_* environment
// variables into the shared command environment
func initConfig() (*clienv.Env, error) {
	path := cfgFile
	if path == "" {
		p, err := appconfig.GetConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	appconfig.SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Read in environment variables that match, e.g. CFDL_API_BASE_URL
	v.SetEnvPrefix(appconfig.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// It's okay if the default config file doesn't exist
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if !missing || cfgFile != "" {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg, err := appconfig.FromViper(v)
	if err != nil {
		return nil, err
	}

	return &clienv.Env{
		Config:     cfg,
		ConfigFile: path,
		JSON:       jsonOut,
		Quiet:      quiet,
		Verbose:    verbose,
		Fs:         afero.NewOsFs(),
	}, nil
}

// IsJSONOutput returns true if JSON output is enabled
func IsJSONOutput() bool {
	return jsonOut
}
