package previewcard

import (
	"context"
	"sync"
)

// AssetCache is the process-lifetime in-memory store of variant assets,
// populated lazily from the durable asset store the first time a variant
// is requested. Entries are never evicted or refreshed.
type AssetCache struct {
	mu      sync.RWMutex
	entries map[string]VariantAssets
	store   AssetStore
}

// NewAssetCache creates an empty AssetCache backed by the given store.
func NewAssetCache(store AssetStore) *AssetCache {
	return &AssetCache{
		entries: make(map[string]VariantAssets),
		store:   store,
	}
}

// Resolve returns the font and background blobs for a variant, fetching
// them from the asset store on first use. Population is not guarded across
// goroutines: concurrent first-requests for a cold variant may each fetch
// and store the same blobs. The overwrite is idempotent and a fetch happens
// at most a handful of times per variant per process, so that duplicate
// work is bounded.
func (c *AssetCache) Resolve(ctx context.Context, name string, v Variant) (VariantAssets, error) {
	c.mu.RLock()
	assets, ok := c.entries[name]
	c.mu.RUnlock()
	if ok {
		return assets, nil
	}

	font, err := c.fetch(ctx, v.Font)
	if err != nil {
		return VariantAssets{}, err
	}
	background, err := c.fetch(ctx, v.Background)
	if err != nil {
		return VariantAssets{}, err
	}

	assets = VariantAssets{Font: font, Background: background}
	c.mu.Lock()
	c.entries[name] = assets
	c.mu.Unlock()
	return assets, nil
}

func (c *AssetCache) fetch(ctx context.Context, path string) ([]byte, error) {
	data, ok, err := c.store.Get(ctx, path)
	if err != nil {
		return nil, WrapError(ErrCodeAssetNotFound, err, "asset store read for %s", path)
	}
	if !ok {
		return nil, NewError(ErrCodeAssetNotFound, "asset %s not found", path)
	}
	return data, nil
}
