// Package resolver turns a CurseForge mod page URL and a version selection
// into a concrete downloadable mod file.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/steviee/cfdl/internal/cursetools"
)

// API is the subset of the curse.tools client the resolver needs.
type API interface {
	SearchModsBySlug(ctx context.Context, slug string) ([]cursetools.ModSearchResult, error)
	ModFiles(ctx context.Context, modID cursetools.ModID) ([]cursetools.ModFile, error)
}

// Selection is the user's choice at the moment a download is requested.
// Loader is carried for logging only; files are matched on GameVersion.
type Selection struct {
	GameVersion string
	Loader      string
}

// Resolution is the outcome of a successful resolve.
type Resolution struct {
	Slug  string
	ModID cursetools.ModID
	File  cursetools.ModFile
}

// Resolver resolves mod page URLs through the API.
type Resolver struct {
	api   API
	slugs *ttlcache.Cache[string, cursetools.ModID]
}

// Options configures a Resolver.
type Options struct {
	// SlugTTL memoizes slug to mod ID lookups for this long. Zero disables
	// the memo so every resolve searches again.
	SlugTTL time.Duration

	// SlugCapacity bounds the memo. Defaults to 256.
	SlugCapacity uint64
}

// New creates a Resolver backed by api.
func New(api API, opts *Options) *Resolver {
	if opts == nil {
		opts = &Options{}
	}

	r := &Resolver{api: api}

	if opts.SlugTTL > 0 {
		capacity := opts.SlugCapacity
		if capacity == 0 {
			capacity = 256
		}
		r.slugs = ttlcache.New[string, cursetools.ModID](
			ttlcache.WithTTL[string, cursetools.ModID](opts.SlugTTL),
			ttlcache.WithCapacity[string, cursetools.ModID](capacity),
			ttlcache.WithDisableTouchOnHit[string, cursetools.ModID](),
		)
	}

	return r
}

// Resolve extracts the slug from rawURL, looks the mod up, lists its files
// and selects the first one supporting sel.GameVersion. Every failure is
// logged and returned; nothing is downloaded here.
func (r *Resolver) Resolve(ctx context.Context, rawURL string, sel Selection) (*Resolution, error) {
	res, err := r.resolve(ctx, rawURL, sel)
	if err != nil {
		slog.Error("resolve failed",
			"url", rawURL,
			"game_version", sel.GameVersion,
			"loader", sel.Loader,
			"error", err)
		return nil, err
	}

	slog.Info("resolved mod file",
		"slug", res.Slug,
		"mod_id", res.ModID,
		"file", res.File.FileName,
		"game_version", sel.GameVersion,
		"loader", sel.Loader)

	return res, nil
}

func (r *Resolver) resolve(ctx context.Context, rawURL string, sel Selection) (*Resolution, error) {
	slug, err := ExtractSlug(rawURL)
	if err != nil {
		return nil, err
	}

	modID, err := r.lookupModID(ctx, slug)
	if err != nil {
		return nil, err
	}

	files, err := r.api.ModFiles(ctx, modID)
	if err != nil {
		return nil, fmt.Errorf("list files of mod %s: %w", modID, err)
	}

	slog.Debug("scanning mod files",
		"mod_id", modID,
		"count", len(files),
		"game_version", sel.GameVersion)

	file, err := SelectFile(files, sel.GameVersion)
	if err != nil {
		return nil, err
	}

	return &Resolution{Slug: slug, ModID: modID, File: *file}, nil
}

// lookupModID returns the ID of the first search hit for slug.
func (r *Resolver) lookupModID(ctx context.Context, slug string) (cursetools.ModID, error) {
	if r.slugs != nil {
		if item := r.slugs.Get(slug); item != nil {
			slog.Debug("slug memo hit", "slug", slug, "mod_id", item.Value())
			return item.Value(), nil
		}
	}

	results, err := r.api.SearchModsBySlug(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("search slug %q: %w", slug, err)
	}

	if len(results) == 0 || results[0].ID == "" {
		return "", fmt.Errorf("%w: %q", ErrModNotFound, slug)
	}

	if len(results) > 1 {
		slog.Debug("multiple mods share slug, using first", "slug", slug, "count", len(results))
	}

	modID := results[0].ID
	if r.slugs != nil {
		r.slugs.Set(slug, modID, ttlcache.DefaultTTL)
	}

	return modID, nil
}
