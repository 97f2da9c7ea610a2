package git

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/cj3636/grit/internal/diff"
)

type cachedPatch struct {
	lines    []diff.PatchLine
	stats    diff.Stats
	noParent bool
}

// CachedSource memoizes the patches of another source. Commits are immutable,
// so entries only expire to bound memory.
type CachedSource struct {
	source diff.Source
	cache  *cache.Cache
	log    *slog.Logger
}

// NewCachedSource wraps source with a cache whose entries live for ttl.
func NewCachedSource(source diff.Source, ttl time.Duration, logger *slog.Logger) *CachedSource {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CachedSource{
		source: source,
		cache:  cache.New(ttl, 2*ttl),
		log:    logger,
	}
}

// Patch implements diff.Source.
func (c *CachedSource) Patch(ctx context.Context, id string) ([]diff.PatchLine, diff.Stats, error) {
	if v, ok := c.cache.Get(id); ok {
		entry := v.(cachedPatch)
		c.log.Debug("patch cache hit", "commit", id)
		if entry.noParent {
			return nil, diff.Stats{}, diff.ErrNoParent
		}
		return entry.lines, entry.stats, nil
	}

	lines, stats, err := c.source.Patch(ctx, id)
	switch {
	case errors.Is(err, diff.ErrNoParent):
		c.cache.SetDefault(id, cachedPatch{noParent: true})
	case err == nil:
		c.cache.SetDefault(id, cachedPatch{lines: lines, stats: stats})
	}
	return lines, stats, err
}

// Len returns the number of cached patches.
func (c *CachedSource) Len() int {
	return c.cache.ItemCount()
}
