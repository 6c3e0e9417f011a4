package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/steviee/cfdl/internal/picker"
)

// maxVisibleOptions bounds the height of an open dropdown.
const maxVisibleOptions = 8

// View renders the TUI
func (m Model) View() string {
	if m.quitting {
		return "Bye.\n"
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderLabel("Mod URL", fieldURL))
	b.WriteString(m.url.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderDropdown("Version", fieldVersion, m.versions))
	b.WriteString("\n")
	b.WriteString(m.renderDropdown("Loader", fieldLoader, m.loaders))
	b.WriteString("\n")

	b.WriteString(m.renderButton())
	b.WriteString("\n\n")

	if status := m.renderStatus(); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title bar
func (m Model) renderHeader() string {
	title := "cfdl - CurseForge Mod Downloader"

	totalWidth := 72
	if m.width > 0 && m.width < totalWidth {
		totalWidth = m.width
	}

	padding := totalWidth - len(title) - 2
	if padding < 0 {
		padding = 0
	}

	return headerStyle.Render(title + strings.Repeat(" ", padding))
}

func (m Model) renderLabel(text string, f field) string {
	marker := "  "
	style := labelStyle
	if m.focus == f {
		marker = "> "
		style = focusedLabelStyle
	}
	return marker + style.Render(text)
}

// renderDropdown shows the selected option, or a window of options around
// the selection while the dropdown is focused.
func (m Model) renderDropdown(label string, f field, dd *picker.Dropdown) string {
	var b strings.Builder
	b.WriteString(m.renderLabel(label, f))

	opts := dd.Options()
	selected := dd.SelectedIndex()

	if m.focus != f {
		current := "-"
		if shown := dd.DisplayIndex(); shown >= 0 && shown < len(opts) {
			opt := opts[shown]
			current = getOptionStyle(opt.Disabled, false).Render(opt.Label)
		}
		b.WriteString(current + " ▾\n")
		return b.String()
	}

	b.WriteString("\n")

	start, end := visibleWindow(len(opts), selected, maxVisibleOptions)
	if start > 0 {
		b.WriteString(indent("  ↑ more\n"))
	}
	for i := start; i < end; i++ {
		opt := opts[i]
		line := getOptionStyle(opt.Disabled, i == selected).Render(" " + opt.Label + " ")
		b.WriteString(indent(line + "\n"))
	}
	if end < len(opts) {
		b.WriteString(indent("  ↓ more\n"))
	}

	return b.String()
}

// visibleWindow returns the [start, end) range of n options to show so
// that the selected index stays visible.
func visibleWindow(n, selected, size int) (int, int) {
	if n <= size {
		return 0, n
	}
	if selected < 0 {
		selected = 0
	}

	start := selected - size/2
	if start < 0 {
		start = 0
	}
	end := start + size
	if end > n {
		end = n
		start = n - size
	}
	return start, end
}

func indent(s string) string {
	return strings.Repeat(" ", 12) + s
}

func (m Model) renderButton() string {
	style := buttonStyle
	if m.focus == fieldDownload {
		style = focusedButtonStyle
	}
	return indent(style.Render("Download"))
}

// renderStatus renders the outcome of the last action
func (m Model) renderStatus() string {
	switch {
	case m.err != nil && time.Since(m.errorTime) < errorDisplay:
		return errorStyle.Render(fmt.Sprintf("Error: %s", m.err))
	case m.busy:
		return busyStyle.Render(m.status)
	case m.status != "":
		return statusStyle.Render(m.status)
	}
	return ""
}

// renderFooter renders the key bindings help
func (m Model) renderFooter() string {
	help := "tab/shift+tab: move  ↑/↓: choose  enter: download  esc: quit"
	if m.downloaded > 0 {
		help = fmt.Sprintf("%s  (%d downloaded)", help, m.downloaded)
	}
	return footerStyle.Render(help)
}
