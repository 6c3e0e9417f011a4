package cursetools

import (
	"context"
	"fmt"
	"log/slog"
)

// MinecraftVersions fetches the Minecraft version catalog in API order.
// An empty or absent data field yields an empty slice.
func (c *Client) MinecraftVersions(ctx context.Context) ([]VersionRecord, error) {
	slog.Debug("fetching Minecraft versions")

	versions, err := getData[VersionRecord](ctx, c, "/minecraft/version")
	if err != nil {
		return nil, fmt.Errorf("get minecraft versions: %w", err)
	}

	slog.Debug("minecraft versions retrieved", "count", len(versions))

	return versions, nil
}
