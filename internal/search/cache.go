package search

import (
	"sync"

	"github.com/inference-directory/infdir/internal/models"
)

// Cache memoizes the Engine for the current snapshot. The index is rebuilt
// only when the snapshot id changes.
type Cache struct {
	mu      sync.Mutex
	id      string
	engine  *Engine
	aliases map[string][]string
	matcher Matcher
	builds  int
}

func NewCache(aliases map[string][]string, matcher Matcher) *Cache {
	return &Cache{aliases: aliases, matcher: matcher}
}

// Engine returns the engine for the snapshot identified by id, building its
// index on first use.
func (c *Cache) Engine(id string, records []models.Record) *Engine {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.engine != nil && c.id == id {
		return c.engine
	}
	c.engine = NewEngine(Build(records, c.aliases), c.matcher)
	c.id = id
	c.builds++
	return c.engine
}

// Builds reports how many indices the cache has built.
func (c *Cache) Builds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.builds
}
