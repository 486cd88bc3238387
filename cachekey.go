package previewcard

import (
	"crypto/sha256"
	"encoding/hex"
)

// CacheKey derives the render-cache key for a request: the SHA-256 digest
// of the full request URL as the client sent it, rendered as lowercase hex.
//
// The query string is deliberately not canonicalized. Two requests that
// differ only in parameter order or casing hash to distinct keys; any
// parameter change invalidates the entry. This is a URL fingerprint, not a
// semantic one.
func CacheKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}
