// Package cache provides an LRU cache for prepared statements, keyed by
// finalized SQL text. The statement builders themselves cache nothing;
// caching lives behind the executor, on the driver side of the boundary.
package cache

import (
	"container/list"
	"database/sql"
	"sync"
	"sync/atomic"
)

// DefaultCapacity is the default maximum number of cached prepared statements.
const DefaultCapacity = 1000

// StmtCache stores prepared statements with LRU eviction.
type StmtCache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	lruList  *list.List

	// Metrics use atomics for lock-free reads.
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	key  string
	stmt *sql.Stmt
}

// New creates a statement cache with default capacity.
func New() *StmtCache {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity creates a statement cache with the given capacity.
func NewWithCapacity(capacity int) *StmtCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &StmtCache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		lruList:  list.New(),
	}
}

// Get retrieves a prepared statement by SQL text. A hit moves the entry
// to the front of the LRU list.
func (c *StmtCache) Get(key string) (*sql.Stmt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	c.lruList.MoveToFront(elem)
	c.hits.Add(1)
	return elem.Value.(*cacheEntry).stmt, true
}

// Set stores a prepared statement. At capacity, the least recently used
// statement is evicted and closed.
func (c *StmtCache) Set(key string, stmt *sql.Stmt) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.lruList.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		_ = entry.stmt.Close() // best effort
		entry.stmt = stmt
		return
	}

	if c.lruList.Len() >= c.capacity {
		c.evictOldest()
	}

	elem := c.lruList.PushFront(&cacheEntry{key: key, stmt: stmt})
	c.items[key] = elem
}

// evictOldest removes and closes the least recently used entry.
// Caller must hold the lock.
func (c *StmtCache) evictOldest() {
	elem := c.lruList.Back()
	if elem == nil {
		return
	}
	entry := elem.Value.(*cacheEntry)
	c.lruList.Remove(elem)
	delete(c.items, entry.key)
	_ = entry.stmt.Close() // best effort
	c.evictions.Add(1)
}

// Clear closes and removes every cached statement.
func (c *StmtCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, elem := range c.items {
		_ = elem.Value.(*cacheEntry).stmt.Close() // best effort
	}
	c.items = make(map[string]*list.Element, c.capacity)
	c.lruList.Init()
}

// Len returns the number of cached statements.
func (c *StmtCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lruList.Len()
}

// Stats reports cache hits, misses and evictions.
func (c *StmtCache) Stats() (hits, misses, evictions uint64) {
	return c.hits.Load(), c.misses.Load(), c.evictions.Load()
}
