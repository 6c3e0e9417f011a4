package resolver

import (
	"fmt"

	"github.com/steviee/cfdl/internal/cursetools"
)

// SelectFile returns the first file, in the given order, whose game versions
// contain version. Matching is exact string equality and the first match is
// final: a match without a download URL yields ErrNoDownloadURL even when a
// later file would also match.
func SelectFile(files []cursetools.ModFile, version string) (*cursetools.ModFile, error) {
	for i := range files {
		if !files[i].SupportsVersion(version) {
			continue
		}
		if files[i].DownloadURL == "" {
			return nil, fmt.Errorf("%w: %s", ErrNoDownloadURL, files[i].FileName)
		}
		return &files[i], nil
	}
	return nil, fmt.Errorf("%w: %q", ErrNoMatchingFile, version)
}
