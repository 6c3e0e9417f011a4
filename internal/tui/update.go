package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/docker/go-units"
	"github.com/steviee/cfdl/internal/catalog"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case versionsLoadedMsg:
		if err := catalog.ApplyVersions(m.versions, msg.records, msg.err); err != nil {
			return m.showError(fmt.Errorf("load versions: %w", err))
		}
		if m.opts.DefaultVersion != "" {
			if err := m.versions.Select(m.opts.DefaultVersion); err != nil {
				slog.Warn("default game version not available", "version", m.opts.DefaultVersion, "error", err)
			}
		}
		return m, nil

	case downloadDoneMsg:
		m.busy = false
		if msg.err != nil {
			return m.showError(msg.err)
		}

		m.downloaded++
		m.err = nil
		size := "unknown size"
		if msg.resolution.File.FileLength > 0 {
			size = units.HumanSize(float64(msg.resolution.File.FileLength))
		}
		m.status = fmt.Sprintf("Downloaded %s (%s) to %s", msg.resolution.File.FileName, size, msg.path)
		return m, nil

	case clearErrorMsg:
		if time.Since(m.errorTime) >= errorDisplay {
			m.err = nil
		}
		return m, nil
	}

	if m.focus == fieldURL {
		var cmd tea.Cmd
		m.url, cmd = m.url.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		return m.setFocus((m.focus + 1) % fieldCount)

	case "shift+tab":
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)

	case "enter":
		return m.startDownload()
	}

	switch m.focus {
	case fieldURL:
		var cmd tea.Cmd
		m.url, cmd = m.url.Update(msg)
		return m, cmd

	case fieldVersion, fieldLoader:
		dd := m.versions
		if m.focus == fieldLoader {
			dd = m.loaders
		}

		switch msg.String() {
		case "up", "k":
			dd.Move(-1)
		case "down", "j":
			dd.Move(1)
		}
		return m, nil

	case fieldDownload:
		if msg.String() == " " {
			return m.startDownload()
		}
	}

	return m, nil
}

func (m Model) setFocus(f field) (tea.Model, tea.Cmd) {
	m.focus = f
	if f == fieldURL {
		return m, m.url.Focus()
	}
	m.url.Blur()
	return m, nil
}

// startDownload reads the form and starts a resolve + fetch. Only one
// download runs at a time.
func (m Model) startDownload() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	rawURL := strings.TrimSpace(m.url.Value())
	sel := m.Selection()

	m.busy = true
	m.err = nil
	m.status = "Resolving " + rawURL + "..."

	slog.Debug("download requested", "url", rawURL, "game_version", sel.GameVersion, "loader", sel.Loader)

	return m, downloadCmd(m.ctx, m.opts.Resolver, m.opts.Fetcher, rawURL, sel)
}

func (m Model) showError(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.errorTime = time.Now()
	m.status = ""
	return m, clearErrorCmd()
}
