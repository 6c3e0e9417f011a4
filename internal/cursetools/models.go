package cursetools

import (
	"encoding/json"
	"fmt"
)

// envelope is the {"data": [...]} wrapper every endpoint responds with.
type envelope[T any] struct {
	Data []T `json:"data"`
}

// VersionRecord is one entry of the Minecraft version catalog.
type VersionRecord struct {
	VersionString string `json:"versionString"`
}

// ModID identifies a mod. The API may send it as a number or a string.
type ModID string

// UnmarshalJSON accepts both JSON numbers and JSON strings.
func (id *ModID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("mod id: %w", err)
		}
		*id = ModID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("mod id: %w", err)
	}
	*id = ModID(n.String())
	return nil
}

// String returns the identifier as a string.
func (id ModID) String() string {
	return string(id)
}

// ModSearchResult represents a mod in search results.
type ModSearchResult struct {
	ID      ModID  `json:"id"`
	GameID  int    `json:"gameId"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	Summary string `json:"summary"`
}

// ModFile represents a downloadable file of a mod.
type ModFile struct {
	ID           int64    `json:"id"`
	DisplayName  string   `json:"displayName"`
	FileName     string   `json:"fileName"`
	DownloadURL  string   `json:"downloadUrl"`
	FileLength   int64    `json:"fileLength"`
	FileDate     string   `json:"fileDate"`
	ReleaseType  int      `json:"releaseType"`
	GameVersions []string `json:"gameVersions"`
}

// SupportsVersion reports whether version is listed in the file's game versions.
func (f *ModFile) SupportsVersion(version string) bool {
	for _, v := range f.GameVersions {
		if v == version {
			return true
		}
	}
	return false
}
