package cursetools

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// ModFiles lists the files of a mod in API order. Only the first page the
// API returns is read.
func (c *Client) ModFiles(ctx context.Context, modID ModID) ([]ModFile, error) {
	if modID == "" {
		return nil, ErrEmptyModID
	}

	slog.Debug("fetching mod files", "mod_id", modID)

	files, err := getData[ModFile](ctx, c, "/mods/"+url.PathEscape(modID.String())+"/files")
	if err != nil {
		return nil, fmt.Errorf("get mod files: %w", err)
	}

	slog.Debug("mod files retrieved", "mod_id", modID, "count", len(files))

	return files, nil
}
