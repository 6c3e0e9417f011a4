package tui

import (
	"github.com/steviee/cfdl/internal/cursetools"
	"github.com/steviee/cfdl/internal/resolver"
)

// versionsLoadedMsg is sent when the version catalog request settles
type versionsLoadedMsg struct {
	records []cursetools.VersionRecord
	err     error
}

// downloadDoneMsg is sent when a download attempt finishes
type downloadDoneMsg struct {
	resolution *resolver.Resolution
	path       string
	err        error
}

// clearErrorMsg is sent to clear the error message
type clearErrorMsg struct{}
