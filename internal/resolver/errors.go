package resolver

import "errors"

// Sentinel errors for resolving a mod page URL to a downloadable file.
var (
	// ErrInvalidURL is returned when the input is not a CurseForge Minecraft project URL.
	ErrInvalidURL = errors.New("invalid CurseForge URL")

	// ErrModNotFound is returned when the slug search yields no mod.
	ErrModNotFound = errors.New("no mod found with this slug")

	// ErrNoMatchingFile is returned when no file supports the selected version.
	ErrNoMatchingFile = errors.New("no file found for that Minecraft version")

	// ErrNoDownloadURL is returned when the matching file has no download URL.
	ErrNoDownloadURL = errors.New("file doesn't have a download URL")
)
