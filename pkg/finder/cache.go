package finder

import (
	"github.com/tchap/go-patricia/v2/patricia"
	"golang.org/x/exp/slices"
)

// Cache maps canonical keys to every word reachable from that key.
// Entries are never evicted. Cache does no locking of its own; a Finder
// serializes all access to the Cache it owns.
type Cache struct {
	trie   *patricia.Trie
	keys   int
	hits   int
	misses int
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{
		trie: patricia.NewTrie(),
	}
}

// trie keys are never empty so the empty multiset gets a node of its own
func cacheKey(key string) patricia.Prefix {
	return patricia.Prefix("=" + key)
}

// get returns a copy of the words stored for key.
func (c *Cache) get(key string) ([]string, bool) {
	item := c.trie.Get(cacheKey(key))
	if item == nil {
		c.misses++
		return nil, false
	}
	c.hits++
	return slices.Clone(item.([]string)), true
}

// put stores a copy of words under key.
func (c *Cache) put(key string, words []string) {
	if c.trie.Insert(cacheKey(key), slices.Clone(words)) {
		c.keys++
	}
}

// Len returns the number of cached keys.
func (c *Cache) Len() int {
	return c.keys
}

// Stats returns cache counters.
func (c *Cache) Stats() map[string]int {
	return map[string]int{
		"cachedKeys":  c.keys,
		"cacheHits":   c.hits,
		"cacheMisses": c.misses,
	}
}
