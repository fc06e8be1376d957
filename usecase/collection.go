package usecase

import "sync"

// Collection is the cached state of a resource store: the last fetched items,
// a total for paginated lists and the loading flag. Concurrent fetches are
// not deduplicated; the last writer wins.
type Collection[T any] struct {
	mu      sync.RWMutex
	items   []T
	total   int
	loading int
}

// Begin marks a request in flight and returns the function that ends it.
func (c *Collection[T]) Begin() func() {
	c.mu.Lock()
	c.loading++
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.loading--
		c.mu.Unlock()
	}
}

func (c *Collection[T]) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading > 0
}

// Items returns a copy of the cached items.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]T(nil), c.items...)
}

func (c *Collection[T]) Total() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.total
}

// Replace sets the cached items; total defaults to len(items) when negative.
func (c *Collection[T]) Replace(items []T, total int) {
	if total < 0 {
		total = len(items)
	}
	c.mu.Lock()
	c.items = append([]T(nil), items...)
	c.total = total
	c.mu.Unlock()
}

// Prepend inserts item at the front.
func (c *Collection[T]) Prepend(item T) {
	c.mu.Lock()
	c.items = append([]T{item}, c.items...)
	c.total++
	c.mu.Unlock()
}

// Append inserts item at the back.
func (c *Collection[T]) Append(item T) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.total++
	c.mu.Unlock()
}

// Update replaces the first item matching match. It reports whether one did.
func (c *Collection[T]) Update(match func(T) bool, item T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if match(c.items[i]) {
			c.items[i] = item
			return true
		}
	}
	return false
}

// Remove drops every item matching match.
func (c *Collection[T]) Remove(match func(T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	removed := 0
	for _, it := range c.items {
		if match(it) {
			removed++
			continue
		}
		kept = append(kept, it)
	}
	c.items = kept
	c.total -= removed
	if c.total < 0 {
		c.total = 0
	}
}

// Find returns the first item matching match.
func (c *Collection[T]) Find(match func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the items matching keep.
func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Reset clears the cache. The loading counter is left alone so in-flight
// requests still end cleanly.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	c.items = nil
	c.total = 0
	c.mu.Unlock()
}
