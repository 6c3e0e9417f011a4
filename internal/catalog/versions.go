// Package catalog fills the version and mod-loader dropdowns.
package catalog

import (
	"context"
	"log/slog"

	"github.com/steviee/cfdl/internal/cursetools"
	"github.com/steviee/cfdl/internal/picker"
)

const (
	// PlaceholderLabel is the label of the disabled first version option.
	PlaceholderLabel = "Choose a version"

	// LoadingLabel is shown while the catalog is being fetched.
	LoadingLabel = "Loading..."

	// NoVersionsLabel is shown when the catalog is empty.
	NoVersionsLabel = "No versions found"

	// FailedLabel is shown when the catalog could not be fetched.
	FailedLabel = "Failed to load versions"
)

// VersionSource provides the Minecraft version catalog.
type VersionSource interface {
	MinecraftVersions(ctx context.Context) ([]cursetools.VersionRecord, error)
}

// LoadingOption returns the option shown before the catalog arrives.
func LoadingOption() picker.Option {
	return picker.Option{Label: LoadingLabel, Disabled: true}
}

// LoadVersions fetches the catalog once and renders it into dd.
// The returned error is the fetch error, after dd has been set to its
// failure state.
func LoadVersions(ctx context.Context, src VersionSource, dd *picker.Dropdown) error {
	records, err := src.MinecraftVersions(ctx)
	return ApplyVersions(dd, records, err)
}

// ApplyVersions renders a fetch outcome into dd. dd always ends in one of
// three terminal states: placeholder plus one option per record, a single
// "no versions" option, or a single "failed" option.
func ApplyVersions(dd *picker.Dropdown, records []cursetools.VersionRecord, err error) error {
	if err != nil {
		slog.Error("failed to fetch Minecraft versions", "error", err)
		dd.Reset(picker.Option{Label: FailedLabel, Disabled: true})
		return err
	}

	if len(records) == 0 {
		slog.Warn("version catalog is empty")
		dd.Reset(picker.Option{Label: NoVersionsLabel, Disabled: true})
		return nil
	}

	opts := make([]picker.Option, 0, len(records)+1)
	opts = append(opts, picker.Option{
		Label:    PlaceholderLabel,
		Value:    "",
		Disabled: true,
		Selected: true,
	})
	for _, r := range records {
		opts = append(opts, picker.Option{Label: r.VersionString, Value: r.VersionString})
	}
	dd.Reset(opts...)

	slog.Debug("version dropdown populated", "count", len(records))

	return nil
}
