package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/steviee/cfdl/internal/cursetools"
	"github.com/steviee/cfdl/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const jeiURL = "https://www.curseforge.com/minecraft/mc-mods/jei"

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		m = updated.(Model)
	}
	return m
}

func TestHandleKeyPress_FocusCycle(t *testing.T) {
	m := newTestModel(Options{})

	m = press(m, "tab")
	assert.Equal(t, fieldVersion, m.focus)
	assert.False(t, m.url.Focused())

	m = press(m, "tab", "tab")
	assert.Equal(t, fieldDownload, m.focus)

	m = press(m, "tab")
	assert.Equal(t, fieldURL, m.focus)
	assert.True(t, m.url.Focused())

	m = press(m, "shift+tab")
	assert.Equal(t, fieldDownload, m.focus)
}

func TestHandleKeyPress_TypingURL(t *testing.T) {
	m := newTestModel(Options{})

	m = press(m, "jei")
	assert.Equal(t, "jei", m.url.Value())

	// Typing is ignored away from the URL field
	m = press(m, "tab", "x")
	assert.Equal(t, "jei", m.url.Value())
}

func TestHandleKeyPress_DropdownNavigation(t *testing.T) {
	m := loaded(t, newTestModel(Options{}), "1.21.1", "1.20.1")

	m = press(m, "tab", "down")
	assert.Equal(t, "1.21.1", m.versions.Value())

	m = press(m, "j")
	assert.Equal(t, "1.20.1", m.versions.Value())

	// Stops at the end
	m = press(m, "down")
	assert.Equal(t, "1.20.1", m.versions.Value())

	// Never lands on the disabled placeholder
	m = press(m, "up", "up", "k")
	assert.Equal(t, "1.21.1", m.versions.Value())

	m = press(m, "tab", "down", "down")
	assert.Equal(t, "Fabric", m.loaders.Value())
	assert.Equal(t, resolver.Selection{GameVersion: "1.21.1", Loader: "Fabric"}, m.Selection())
}

func TestHandleKeyPress_QuitKeys(t *testing.T) {
	for _, k := range []string{"esc", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			m := newTestModel(Options{})

			updated, cmd := m.Update(key(k))
			m = updated.(Model)

			assert.True(t, m.quitting)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
		})
	}
}

func TestHandleKeyPress_Download(t *testing.T) {
	res := &resolver.Resolution{
		Slug:  "jei",
		ModID: "238222",
		File: cursetools.ModFile{
			FileName:    "jei-1.20.1.jar",
			DownloadURL: "https://edge.forgecdn.net/files/jei-1.20.1.jar",
			FileLength:  2048,
		},
	}

	r := &mockResolver{}
	r.On("Resolve", mock.Anything, jeiURL, resolver.Selection{GameVersion: "1.20.1", Loader: "Forge"}).
		Return(res, nil).Once()

	f := &mockFetcher{}
	f.On("Fetch", mock.Anything, res.File.DownloadURL, "jei-1.20.1.jar").
		Return("/mods/jei-1.20.1.jar", nil).Once()

	m := loaded(t, newTestModel(Options{Resolver: r, Fetcher: f, DefaultVersion: "1.20.1"}), "1.21.1", "1.20.1")
	m = press(m, jeiURL)

	updated, cmd := m.Update(key("enter"))
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.busy)

	// A second request while busy is ignored
	_, again := m.Update(key("enter"))
	assert.Nil(t, again)

	msg := cmd()
	done, ok := msg.(downloadDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)
	assert.Equal(t, "/mods/jei-1.20.1.jar", done.path)

	updated, _ = m.Update(msg)
	m = updated.(Model)

	assert.False(t, m.busy)
	assert.NoError(t, m.err)
	assert.Contains(t, m.status, "jei-1.20.1.jar")
	assert.Contains(t, m.status, "/mods/jei-1.20.1.jar")
	assert.Equal(t, 1, m.downloaded)

	r.AssertExpectations(t)
	f.AssertExpectations(t)
}

func TestDownloadCmd_ResolveError(t *testing.T) {
	r := &mockResolver{}
	r.On("Resolve", mock.Anything, "bad", mock.Anything).
		Return(nil, resolver.ErrInvalidURL).Once()
	f := &mockFetcher{}

	m := newTestModel(Options{Resolver: r, Fetcher: f})
	msg := downloadCmd(m.ctx, r, f, "bad", resolver.Selection{})()

	done, ok := msg.(downloadDoneMsg)
	require.True(t, ok)
	assert.ErrorIs(t, done.err, resolver.ErrInvalidURL)
	f.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything, mock.Anything)
}

func TestDownloadCmd_FetchError(t *testing.T) {
	res := &resolver.Resolution{File: cursetools.ModFile{FileName: "a.jar", DownloadURL: "https://x/a.jar"}}
	fetchErr := errors.New("connection reset")

	r := &mockResolver{}
	r.On("Resolve", mock.Anything, jeiURL, mock.Anything).Return(res, nil).Once()
	f := &mockFetcher{}
	f.On("Fetch", mock.Anything, "https://x/a.jar", "a.jar").Return("", fetchErr).Once()

	m := newTestModel(Options{Resolver: r, Fetcher: f})
	msg := downloadCmd(m.ctx, r, f, jeiURL, resolver.Selection{})()

	done, ok := msg.(downloadDoneMsg)
	require.True(t, ok)
	assert.ErrorIs(t, done.err, fetchErr)
}

func TestModelUpdate_DownloadFailed(t *testing.T) {
	m := newTestModel(Options{})
	m.busy = true

	updated, cmd := m.Update(downloadDoneMsg{err: resolver.ErrNoMatchingFile})
	m = updated.(Model)

	assert.False(t, m.busy)
	assert.ErrorIs(t, m.err, resolver.ErrNoMatchingFile)
	assert.NotNil(t, cmd)
	assert.Equal(t, 0, m.downloaded)
}

func TestModelUpdate_ClearError(t *testing.T) {
	m := newTestModel(Options{})
	m.err = errors.New("old error")
	m.errorTime = time.Now().Add(-2 * errorDisplay)

	updated, _ := m.Update(clearErrorMsg{})
	assert.Nil(t, updated.(Model).err)
}

func TestModelUpdate_ClearError_Recent(t *testing.T) {
	m := newTestModel(Options{})
	m.err = errors.New("recent error")
	m.errorTime = time.Now()

	updated, _ := m.Update(clearErrorMsg{})
	assert.NotNil(t, updated.(Model).err)
}
