package previewcard

import "context"

// renderCachePrefix is the path namespace for rendered output blobs in the
// durable store.
const renderCachePrefix = "image-cache/"

// RenderCache is the durable, content-addressed store of fully rendered
// images. Keys are CacheKey digests; concurrency control is delegated to
// the underlying store.
type RenderCache struct {
	store BlobStore
}

// NewRenderCache creates a RenderCache backed by the given blob store.
func NewRenderCache(store BlobStore) *RenderCache {
	return &RenderCache{store: store}
}

// Get returns the cached image for key, or ok=false on a miss. A store
// failure is returned as an error: the durable store being unreachable is
// fatal to the request, not a silent miss.
func (c *RenderCache) Get(ctx context.Context, key string) ([]byte, string, bool, error) {
	data, contentType, ok, err := c.store.Get(ctx, renderCachePrefix+key)
	if err != nil {
		return nil, "", false, WrapError(ErrCodeCacheStoreUnavailable, err, "render cache read for key %s", key)
	}
	return data, contentType, ok, nil
}

// Put stores a freshly rendered image under key, overwriting any previous
// entry. Callers absorb the error: by the time Put runs the image already
// exists and must still reach the caller.
func (c *RenderCache) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return c.store.Put(ctx, renderCachePrefix+key, data, contentType)
}
