package previewcard

import (
	"context"
	"os"
	"path/filepath"
)

// AssetStore is the durable store of binary assets (fonts, backgrounds).
// Get returns ok=false when the path is absent.
type AssetStore interface {
	Get(ctx context.Context, path string) (data []byte, ok bool, err error)
}

// DirAssetStore serves assets from a directory on disk. Asset paths use
// forward slashes and are resolved relative to the root.
type DirAssetStore struct {
	root string
}

// NewDirAssetStore creates an AssetStore rooted at dir.
func NewDirAssetStore(dir string) *DirAssetStore {
	return &DirAssetStore{root: dir}
}

// Get reads the asset at path. A missing file is reported as absent, not
// as an error.
func (s *DirAssetStore) Get(ctx context.Context, path string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(path)))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
