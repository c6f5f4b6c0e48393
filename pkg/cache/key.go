package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// keyPrefix namespaces catalog page entries in redis.
const keyPrefix = "catalog:page:"

// PageKey derives the redis key for a request URL. The URL is hashed so keys
// stay bounded regardless of query-parameter or cursor length.
func PageKey(requestURL string) string {
	sum := sha256.Sum256([]byte(requestURL))
	return keyPrefix + hex.EncodeToString(sum[:])
}
