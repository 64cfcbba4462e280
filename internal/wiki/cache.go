package wiki

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry holds one cached dataset together with its expiry.
type cacheEntry struct {
	value   interface{}
	expires time.Time
}

// memoCache is a thread-safe TTL cache for upstream datasets. A
// singleflight.Group coalesces concurrent fetches of the same key so a
// cold cache never triggers duplicate upstream requests.
type memoCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
	clock   func() time.Time
}

func newMemoCache() *memoCache {
	return &memoCache{
		entries: make(map[string]cacheEntry),
		clock:   time.Now,
	}
}

// get returns the cached value if it exists and has not expired.
func (mc *memoCache) get(key string) (interface{}, bool) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	e, ok := mc.entries[key]
	if !ok || mc.clock().After(e.expires) {
		return nil, false
	}
	return e.value, true
}

// put stores a value with the given TTL.
func (mc *memoCache) put(key string, value interface{}, ttl time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.entries[key] = cacheEntry{value: value, expires: mc.clock().Add(ttl)}
}

// do returns the cached value for key, or runs fetch once (coalesced across
// goroutines) and caches the result for ttl.
func (mc *memoCache) do(key string, ttl time.Duration, fetch func() (interface{}, error)) (interface{}, error) {
	if v, ok := mc.get(key); ok {
		return v, nil
	}

	v, err, _ := mc.group.Do(key, func() (interface{}, error) {
		// Re-check under singleflight: a concurrent caller may have
		// populated the entry while we waited for the flight slot.
		if v, ok := mc.get(key); ok {
			return v, nil
		}
		v, err := fetch()
		if err != nil {
			return nil, err
		}
		mc.put(key, v, ttl)
		return v, nil
	})
	return v, err
}
