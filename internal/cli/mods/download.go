package mods

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/docker/go-units"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/steviee/cfdl/internal/catalog"
	"github.com/steviee/cfdl/internal/cli/clienv"
	"github.com/steviee/cfdl/internal/download"
	"github.com/steviee/cfdl/internal/resolver"
)

type downloadOptions struct {
	gameVersion string
	loader      string
	output      string
	dryRun      bool
}

// DownloadResult is the JSON shape of a download.
type DownloadResult struct {
	Slug        string   `json:"slug"`
	ModID       string   `json:"mod_id"`
	FileName    string   `json:"file_name"`
	DownloadURL string   `json:"download_url"`
	Size        int64    `json:"size"`
	GameVersion string   `json:"game_version"`
	Loader      string   `json:"loader,omitempty"`
	Versions    []string `json:"game_versions"`
	Directory   string   `json:"directory"`
	Path        string   `json:"path,omitempty"`
	DryRun      bool     `json:"dry_run,omitempty"`
}

// NewDownloadCommand creates the mods download subcommand
func NewDownloadCommand() *cobra.Command {
	opts := &downloadOptions{}

	cmd := &cobra.Command{
		Use:   "download <curseforge-url>",
		Short: "Download the mod file matching a Minecraft version",
		Long: `Download the first file of a CurseForge mod that supports the given
Minecraft version.

Files are scanned in the order the API lists them and the first file whose
game versions contain the selected version exactly is used. If that file has
no download URL the command fails; later files are not considered.

The loader is recorded but does not filter files.`,
		Example: `  cfdl mods download https://www.curseforge.com/minecraft/mc-mods/jei --game-version 1.20.1
  cfdl mods download https://www.curseforge.com/minecraft/mc-mods/sodium -g 1.20.1 -l Fabric -o ./mods
  cfdl mods download https://www.curseforge.com/minecraft/mc-mods/jei -g 1.20.1 --json`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.gameVersion, "game-version", "g", "", "Minecraft version to match (default: defaults.game_version)")
	cmd.Flags().StringVarP(&opts.loader, "loader", "l", "", "Mod loader (Forge, NeoForge, Fabric, Quilt, Liteloader)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Directory to write the file to (default: downloads.directory)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Resolve the file without downloading it")

	return cmd
}

func runDownload(ctx context.Context, stdout, stderr io.Writer, rawURL string, opts *downloadOptions) error {
	env := clienv.FromContext(ctx)

	sel := resolver.Selection{
		GameVersion: opts.gameVersion,
		Loader:      opts.loader,
	}
	if sel.GameVersion == "" {
		sel.GameVersion = env.Config.Defaults.GameVersion
	}
	if sel.Loader == "" {
		sel.Loader = env.Config.Defaults.Loader
	}

	if sel.GameVersion == "" {
		return outputError(stdout, env.JSON, fmt.Errorf("no Minecraft version selected: use --game-version or set defaults.game_version"))
	}
	if sel.Loader != "" && !catalog.IsLoader(sel.Loader) {
		return outputError(stdout, env.JSON, fmt.Errorf("unknown loader %q: must be one of %v", sel.Loader, catalog.Loaders()))
	}

	res, err := env.Resolver().Resolve(ctx, rawURL, sel)
	if err != nil {
		return outputError(stdout, env.JSON, err)
	}

	result := DownloadResult{
		Slug:        res.Slug,
		ModID:       res.ModID.String(),
		FileName:    res.File.FileName,
		DownloadURL: res.File.DownloadURL,
		Size:        res.File.FileLength,
		GameVersion: sel.GameVersion,
		Loader:      sel.Loader,
		Versions:    res.File.GameVersions,
		DryRun:      opts.dryRun,
	}

	var progress download.ProgressFunc
	if !opts.dryRun && showProgress(env) {
		progress = progressBar(stderr)
	}

	dl, err := env.Downloader(opts.output, progress)
	if err != nil {
		return outputError(stdout, env.JSON, err)
	}
	result.Directory = dl.Dir()

	if !opts.dryRun {
		path, err := dl.Fetch(ctx, res.File.DownloadURL, res.File.FileName)
		if err != nil {
			slog.Error("download failed", "file", res.File.FileName, "url", res.File.DownloadURL, "error", err)
			return outputError(stdout, env.JSON, err)
		}
		result.Path = path
	}

	if env.JSON {
		return clienv.WriteJSON(stdout, result)
	}
	return printResult(stdout, result, env.Quiet)
}

func showProgress(env *clienv.Env) bool {
	return env.Config.Downloads.Progress && !env.Quiet && !env.JSON
}

// progressBar returns a ProgressFunc rendering a byte progress bar on w.
func progressBar(w io.Writer) download.ProgressFunc {
	return func(name string, size int64) io.Writer {
		return progressbar.NewOptions64(size,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(name),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionOnCompletion(func() {
				_, _ = fmt.Fprintln(w)
			}),
		)
	}
}

func printResult(w io.Writer, r DownloadResult, quiet bool) error {
	if quiet {
		if r.Path != "" {
			_, err := fmt.Fprintln(w, r.Path)
			return err
		}
		_, err := fmt.Fprintln(w, r.DownloadURL)
		return err
	}

	size := "unknown size"
	if r.Size > 0 {
		size = units.HumanSize(float64(r.Size))
	}

	if r.DryRun {
		_, err := fmt.Fprintf(w, "Would download %s (%s) for Minecraft %s from %s into %s\n",
			r.FileName, size, r.GameVersion, r.DownloadURL, r.Directory)
		return err
	}

	_, err := fmt.Fprintf(w, "Downloaded %s (%s) for Minecraft %s to %s\n",
		r.FileName, size, r.GameVersion, r.Path)
	return err
}

func outputError(stdout io.Writer, jsonMode bool, err error) error {
	if jsonMode {
		return clienv.WriteJSONError(stdout, err)
	}
	return err
}
