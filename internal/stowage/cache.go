package stowage

import (
	"fmt"
	"sync"

	"github.com/dgraph-io/ristretto"
)

// resultCache memoizes accessibility/visibility scores and blocker lists keyed
// by a monotonic generation counter bumped on every mutation, so repeated
// read-only queries (e.g. a dashboard polling accessibility) are cheap
// without ever returning a value computed against a stale grid. Modeled
// directly on the teacher's internal/database.QueryCache construction.
type resultCache struct {
	cache *ristretto.Cache
	mu    sync.Mutex
	hits  int64
	misses int64
}

func newResultCache(maxCost int64) (*resultCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost / 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, wrapErr(CodeInvalidArgument, "constructing stowage result cache", err)
	}
	return &resultCache{cache: c}, nil
}

func (r *resultCache) key(containerID, itemID string, generation uint64, kind string) string {
	return fmt.Sprintf("%s|%s|%d|%s", containerID, itemID, generation, kind)
}

func (r *resultCache) getFloat(key string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.cache.Get(key)
	if !ok {
		r.misses++
		return 0, false
	}
	r.hits++
	f, ok := v.(float64)
	return f, ok
}

func (r *resultCache) setFloat(key string, value float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(key, value, 1)
}

func (r *resultCache) getStrings(key string) ([]string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.cache.Get(key)
	if !ok {
		r.misses++
		return nil, false
	}
	r.hits++
	s, ok := v.([]string)
	return s, ok
}

func (r *resultCache) setStrings(key string, value []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Set(key, value, int64(len(value))+1)
}

// stats reports cache hit/miss counters, exposed mainly for tests.
func (r *resultCache) stats() (hits, misses int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits, r.misses
}
