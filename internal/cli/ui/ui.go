// Package ui implements the command that opens the interactive download form.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/steviee/cfdl/internal/cli/clienv"
	"github.com/steviee/cfdl/internal/config"
	"github.com/steviee/cfdl/internal/tui"
)

// NewCommand creates the ui command
func NewCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive download form",
		Long: `Launch a terminal form with a mod URL input, a Minecraft version
dropdown, a loader dropdown and a Download button.

The version list is fetched once when the form opens. Downloads are written
to the configured download directory. While the form is open, log output
goes to the file set by logging.file instead of the terminal.

Keyboard shortcuts:
  Tab/Shift+Tab  Move between fields
  ↑/k ↓/j        Change the selected dropdown option
  Enter          Download
  Esc/Ctrl+C     Quit`,
		Example: `  # Open the form
  cfdl ui

  # Save downloads into a specific directory
  cfdl ui --output ~/.minecraft/mods`,
		Aliases: []string{"tui", "form"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Directory to write files to (default: downloads.directory)")

	return cmd
}

// runUI executes the ui command
func runUI(ctx context.Context, output string) error {
	env := clienv.FromContext(ctx)

	restore, err := redirectLogs(env)
	if err != nil {
		return err
	}
	defer restore()

	fetcher, err := env.Downloader(output, nil)
	if err != nil {
		return fmt.Errorf("failed to create downloader: %w", err)
	}

	model := tui.NewModel(ctx, tui.Options{
		Versions:       env.VersionSource(),
		Resolver:       env.Resolver(),
		Fetcher:        fetcher,
		DefaultVersion: env.Config.Defaults.GameVersion,
		DefaultLoader:  env.Config.Defaults.Loader,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run form: %w", err)
	}

	return nil
}

// redirectLogs points the default logger at the configured log file so log
// lines do not corrupt the terminal UI. The returned func restores the
// previous logger.
func redirectLogs(env *clienv.Env) (func(), error) {
	previous := slog.Default()
	restore := func() { slog.SetDefault(previous) }

	level := slog.LevelInfo
	if env.Verbose {
		level = slog.LevelDebug
	} else if err := level.UnmarshalText([]byte(env.Config.Logging.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if env.Config.Logging.File == "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, opts)))
		return restore, nil
	}

	path, err := config.ExpandHome(env.Config.Logging.File)
	if err != nil {
		return nil, err
	}

	if err := env.Fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := env.Fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, opts)))

	return func() {
		restore()
		_ = f.Close()
	}, nil
}
