package nodehash

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultBloomBitsPerEntry = 10
	defaultBloomK            = 4
)

// LRUTable is the default Table implementation: an LRU-bounded map from
// structural fingerprint to compiled handle, with a bloom-filter prefilter.
//
// Handles registered here remain valid for the table's lifetime even after
// their fingerprint entry is evicted from the LRU — eviction only means a
// future structurally-identical node will be recompiled and re-registered
// under a new entry rather than deduplicated, which is always safe.
type LRUTable[H any] struct {
	cache *lru.Cache[string, H]
	bloom *bloomFilter
}

// NewLRUTable constructs a Table bounded to at most maxEntries fingerprint
// entries. maxEntries <= 0 selects a cap of 1<<24 entries (eviction never
// happens in practice for small builds, matching urkle's own "never
// deallocated" compiled-store policy).
func NewLRUTable[H any](maxEntries int, expectedEntries uint64) (*LRUTable[H], error) {
	if maxEntries <= 0 {
		maxEntries = 1 << 24
	}
	cache, err := lru.New[string, H](maxEntries)
	if err != nil {
		return nil, err
	}
	if expectedEntries == 0 {
		expectedEntries = 1024
	}
	return &LRUTable[H]{
		cache: cache,
		bloom: newBloomFilter(expectedEntries*defaultBloomBitsPerEntry, defaultBloomK),
	}, nil
}

// Add implements Table.
func (t *LRUTable[H]) Add(fingerprint []byte, compile func() (H, error)) (H, bool, error) {
	if t.bloom.maybeContains(fingerprint) {
		if h, ok := t.cache.Get(string(fingerprint)); ok {
			return h, true, nil
		}
	}

	h, err := compile()
	if err != nil {
		var zero H
		return zero, false, err
	}

	t.bloom.insert(fingerprint)
	t.cache.Add(string(fingerprint), h)
	return h, false, nil
}

// Len reports the number of live fingerprint entries currently cached.
func (t *LRUTable[H]) Len() int { return t.cache.Len() }
