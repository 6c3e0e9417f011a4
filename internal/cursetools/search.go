package cursetools

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
)

// SearchModsBySlug searches Minecraft mods whose slug equals slug.
// Results are returned in API order.
func (c *Client) SearchModsBySlug(ctx context.Context, slug string) ([]ModSearchResult, error) {
	if slug == "" {
		return nil, ErrEmptySlug
	}

	params := url.Values{}
	params.Add("gameId", strconv.Itoa(MinecraftGameID))
	params.Add("slug", slug)

	slog.Debug("searching mods by slug", "slug", slug)

	results, err := getData[ModSearchResult](ctx, c, "/mods/search?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("search mods: %w", err)
	}

	slog.Debug("search completed", "slug", slug, "hits", len(results))

	return results, nil
}
