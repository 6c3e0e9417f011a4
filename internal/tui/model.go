// Package tui implements the interactive download form: a URL input, a
// Minecraft version dropdown, a loader dropdown and a download action.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/steviee/cfdl/internal/catalog"
	"github.com/steviee/cfdl/internal/picker"
	"github.com/steviee/cfdl/internal/resolver"
)

// errorDisplay is how long an error stays in the status line.
const errorDisplay = 5 * time.Second

// Resolver turns a mod page URL and a selection into a concrete file.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string, sel resolver.Selection) (*resolver.Resolution, error)
}

// Fetcher stores a remote file locally and returns its path.
type Fetcher interface {
	Fetch(ctx context.Context, url, fileName string) (string, error)
}

// Options configures a Model.
type Options struct {
	Versions       catalog.VersionSource
	Resolver       Resolver
	Fetcher        Fetcher
	DefaultVersion string
	DefaultLoader  string
}

type field int

const (
	fieldURL field = iota
	fieldVersion
	fieldLoader
	fieldDownload
	fieldCount
)

// Model is the bubbletea model for the download form
type Model struct {
	ctx      context.Context
	opts     Options
	url      textinput.Model
	versions *picker.Dropdown
	loaders  *picker.Dropdown
	focus    field

	busy       bool
	status     string
	err        error
	errorTime  time.Time
	downloaded int

	width    int
	height   int
	quitting bool
}

// NewModel creates a new form model. The loader dropdown is populated
// immediately; the version dropdown shows a loading entry until Init's
// request settles.
func NewModel(ctx context.Context, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "https://www.curseforge.com/minecraft/mc-mods/..."
	ti.Prompt = ""
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	loaders := picker.NewDropdown()
	catalog.PopulateLoaders(loaders)
	if opts.DefaultLoader != "" {
		if err := loaders.Select(opts.DefaultLoader); err != nil {
			slog.Warn("default loader not available", "loader", opts.DefaultLoader, "error", err)
		}
	}

	return &Model{
		ctx:      ctx,
		opts:     opts,
		url:      ti,
		versions: picker.NewDropdown(catalog.LoadingOption()),
		loaders:  loaders,
		focus:    fieldURL,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		loadVersionsCmd(m.ctx, m.opts.Versions),
	)
}

// Selection returns the current form state as a resolver selection.
func (m Model) Selection() resolver.Selection {
	return resolver.Selection{
		GameVersion: m.versions.Value(),
		Loader:      m.loaders.Value(),
	}
}

// loadVersionsCmd returns a command that fetches the version catalog once
func loadVersionsCmd(ctx context.Context, src catalog.VersionSource) tea.Cmd {
	return func() tea.Msg {
		records, err := src.MinecraftVersions(ctx)
		return versionsLoadedMsg{records: records, err: err}
	}
}

// downloadCmd returns a command that resolves rawURL and fetches the file
func downloadCmd(ctx context.Context, r Resolver, f Fetcher, rawURL string, sel resolver.Selection) tea.Cmd {
	return func() tea.Msg {
		res, err := r.Resolve(ctx, rawURL, sel)
		if err != nil {
			return downloadDoneMsg{err: err}
		}

		path, err := f.Fetch(ctx, res.File.DownloadURL, res.File.FileName)
		if err != nil {
			slog.Error("download failed", "file", res.File.FileName, "url", res.File.DownloadURL, "error", err)
			return downloadDoneMsg{resolution: res, err: fmt.Errorf("download %s: %w", res.File.FileName, err)}
		}

		return downloadDoneMsg{resolution: res, path: path}
	}
}

// clearErrorCmd returns a command that clears the error message after a delay
func clearErrorCmd() tea.Cmd {
	return tea.Tick(errorDisplay, func(t time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}
