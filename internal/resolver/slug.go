package resolver

import (
	"fmt"
	"regexp"
	"strings"
)

// slugRegex matches curseforge.com/minecraft/<category>/<slug>.
var slugRegex = regexp.MustCompile(`curseforge\.com/minecraft/[^/]+/([^/?#]+)`)

// ExtractSlug returns the project slug of a CurseForge Minecraft project URL.
//
//	ExtractSlug("https://www.curseforge.com/minecraft/mc-mods/jei") // "jei"
func ExtractSlug(raw string) (string, error) {
	m := slugRegex.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return m[1], nil
}
