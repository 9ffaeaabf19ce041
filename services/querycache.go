package services

import (
	"strings"
	"sync"
)

// QueryCache is the process-wide cache of list-query results, keyed by
// (entity, parent id). Mutations either invalidate a key (forcing the next
// list to re-fetch) or patch a single row in place; which one happens is
// documented on each mutation.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]any
}

func NewQueryCache() *QueryCache {
	return &QueryCache{entries: make(map[string]any)}
}

func cacheKey(entity, parent string) string {
	return entity + "/" + parent
}

func (qc *QueryCache) Get(entity, parent string) (any, bool) {
	qc.mu.RLock()
	defer qc.mu.RUnlock()
	v, ok := qc.entries[cacheKey(entity, parent)]
	return v, ok
}

func (qc *QueryCache) Set(entity, parent string, rows any) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.entries[cacheKey(entity, parent)] = rows
}

func (qc *QueryCache) Invalidate(entity, parent string) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	delete(qc.entries, cacheKey(entity, parent))
}

// InvalidateEntity drops every cached list for an entity, across parents.
func (qc *QueryCache) InvalidateEntity(entity string) {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	prefix := entity + "/"
	for k := range qc.entries {
		if strings.HasPrefix(k, prefix) {
			delete(qc.entries, k)
		}
	}
}

// Clear empties the whole cache. Called on signout.
func (qc *QueryCache) Clear() {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	qc.entries = make(map[string]any)
}
