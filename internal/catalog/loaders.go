package catalog

import "github.com/steviee/cfdl/internal/picker"

// loaders is the fixed mod-loader list. CurseForge has no endpoint for it.
var loaders = []string{"Forge", "NeoForge", "Fabric", "Quilt", "Liteloader"}

// Loaders returns the supported mod-loader names in display order.
func Loaders() []string {
	out := make([]string, len(loaders))
	copy(out, loaders)
	return out
}

// PopulateLoaders replaces the content of dd with one option per loader.
func PopulateLoaders(dd *picker.Dropdown) {
	opts := make([]picker.Option, 0, len(loaders))
	for _, l := range loaders {
		opts = append(opts, picker.Option{Label: l, Value: l})
	}
	dd.Reset(opts...)
}

// IsLoader reports whether name is one of the supported loaders.
func IsLoader(name string) bool {
	for _, l := range loaders {
		if l == name {
			return true
		}
	}
	return false
}
