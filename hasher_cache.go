package hamt

import lru "github.com/hashicorp/golang-lru"

// CachedHasher memoizes the raw hashes of another Hasher in an ARC cache.
// It is worthwhile when hashing a key is expensive (large byte blobs,
// digest-based hashers) and the same keys are looked up repeatedly.  One
// cache can be shared by any number of maps built on the same Hasher.
type CachedHasher[K comparable] struct {
	inner Hasher[K]
	cache *lru.ARCCache
}

// NewCachedHasher wraps the given Hasher with an ARC cache of the given
// size.
func NewCachedHasher[K comparable](inner Hasher[K], size int) *CachedHasher[K] {
	cache, err := lru.NewARC(size)
	if err != nil {
		panic(err)
	}
	return &CachedHasher[K]{inner: inner, cache: cache}
}

func (h *CachedHasher[K]) Hash(k K) uint32 {
	if v, ok := h.cache.Get(k); ok {
		return v.(uint32)
	}
	raw := h.inner.Hash(k)
	h.cache.Add(k, raw)
	return raw
}

func (h *CachedHasher[K]) Equal(a, b K) bool { return h.inner.Equal(a, b) }
