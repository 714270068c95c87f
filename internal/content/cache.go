package content

import (
	"path/filepath"
	"slices"
)

// Cache maps item IDs to items for one content root.
//
// A Cache is not synchronized. One session owns it and serializes access.
type Cache struct {
	items       map[string]Item
	root        string
	diagnostics []Diagnostic
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string]Item)}
}

// Clear drops every item and forgets the root the cache was loaded from.
func (c *Cache) Clear() {
	c.items = make(map[string]Item)
	c.root = ""
	c.diagnostics = nil
}

// Len returns the number of cached items.
func (c *Cache) Len() int { return len(c.items) }

// Loaded reports whether the cache holds anything.
func (c *Cache) Loaded() bool { return len(c.items) > 0 }

// Root is the content root of the last scan, empty if the cache was never scanned.
func (c *Cache) Root() string { return c.root }

// Diagnostics returns the files skipped by the last scan.
func (c *Cache) Diagnostics() []Diagnostic { return slices.Clone(c.diagnostics) }

// Get returns a copy of the item with the given ID.
func (c *Cache) Get(id string) (Item, bool) {
	item, ok := c.items[id]
	if !ok {
		return Item{}, false
	}
	return item.Clone(), true
}

// Items returns deep copies of all cached items keyed by ID.
func (c *Cache) Items() map[string]Item {
	out := make(map[string]Item, len(c.items))
	for id, item := range c.items {
		out[id] = item.Clone()
	}
	return out
}

// List returns copies of all cached items, newest first.
func (c *Cache) List() []Item {
	out := make([]Item, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.Clone())
	}
	SortNewestFirst(out)
	return out
}

// Upsert inserts or replaces an item by ID.
func (c *Cache) Upsert(item Item) {
	if c.items == nil {
		c.items = make(map[string]Item)
	}
	c.items[item.ID] = item.Clone()
}

// servesRoot reports whether a fetch for root is answered from memory. Items
// upserted before any scan stay authoritative and the cache adopts root.
func (c *Cache) servesRoot(root string) bool {
	if !c.Loaded() {
		return false
	}
	if c.root == "" {
		c.root = root
		return true
	}
	return sameRoot(c.root, root)
}

func (c *Cache) replace(root string, items map[string]Item, diagnostics []Diagnostic) {
	c.items = items
	c.root = root
	c.diagnostics = diagnostics
}

func sameRoot(a, b string) bool {
	ca, cb := filepath.Clean(a), filepath.Clean(b)
	if absA, err := filepath.Abs(ca); err == nil {
		ca = absA
	}
	if absB, err := filepath.Abs(cb); err == nil {
		cb = absB
	}
	return ca == cb
}
