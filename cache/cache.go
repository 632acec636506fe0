// Package cache memoizes transformation results by content
// fingerprint. A broken or missing cache must never break a
// transformation: implementations log failures and report a miss, and
// callers always recompute on a miss.
package cache

import (
	"crypto/md5" //nolint:gosec
	"fmt"
)

// Cache stores previously computed results. Implementations must be
// safe for concurrent use. Two concurrent requests for the same key
// may both miss and both recompute; last write wins.
type Cache interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Fingerprint derives the cache key for one transformation request
// from the raw input, the language identifier and the short mode code.
func Fingerprint(text, language, mode string) string {
	sum := md5.Sum([]byte(text)) //nolint:gosec
	return fmt.Sprintf("t:%x:%s:%s", sum, language, mode)
}

// Null is a Cache that stores nothing.
type Null struct{}

func (Null) Get(string) (string, bool) { return "", false }
func (Null) Set(string, string)        {}
