package client

import (
	"slices"
	"sync"

	"github.com/google/go-cmp/cmp"
)

// Collection is a normalized cache of one entity type: an ordered id list plus an
// id → entity map that always hold the same key set. Reads go through memoized
// selectors that return the same slice until the data changes.
type Collection[T any] struct {
	idOf    func(T) string
	compare func(a, b T) int

	mu       sync.RWMutex
	ids      []string
	entities map[string]T
	version  uint64

	memoAllVersion uint64
	memoAll        []T
	memoIDsVersion uint64
	memoIDs        []string
}

// NewCollection returns an empty collection. compare orders the entities; nil
// keeps the order in which they were set. Sorting is stable.
func NewCollection[T any](idOf func(T) string, compare func(a, b T) int) *Collection[T] {
	return &Collection[T]{
		idOf:     idOf,
		compare:  compare,
		entities: make(map[string]T),
		version:  1,
	}
}

// SetAll replaces the whole collection. Items with an id already seen in items
// are ignored. If the result equals the current content the version does not
// change and memoized selector results stay valid.
func (c *Collection[T]) SetAll(items []T) {
	ids := make([]string, 0, len(items))
	entities := make(map[string]T, len(items))
	ordered := make([]T, 0, len(items))
	for _, it := range items {
		id := c.idOf(it)
		if _, dup := entities[id]; dup {
			continue
		}
		entities[id] = it
		ordered = append(ordered, it)
	}
	if c.compare != nil {
		slices.SortStableFunc(ordered, c.compare)
	}
	for _, it := range ordered {
		ids = append(ids, c.idOf(it))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if slices.Equal(ids, c.ids) && cmp.Equal(entities, c.entities) {
		return
	}
	c.ids = ids
	c.entities = entities
	c.version++
}

// Version changes every time the normalized data changes.
func (c *Collection[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ids)
}

// SelectAll returns the entities in collection order. Callers must not modify
// the returned slice.
func (c *Collection[T]) SelectAll() []T {
	c.mu.RLock()
	if c.memoAllVersion == c.version {
		all := c.memoAll
		c.mu.RUnlock()
		return all
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.memoAllVersion != c.version {
		all := make([]T, len(c.ids))
		for i, id := range c.ids {
			all[i] = c.entities[id]
		}
		c.memoAll = all
		c.memoAllVersion = c.version
	}
	return c.memoAll
}

// SelectByID returns the entity with the given id.
func (c *Collection[T]) SelectByID(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entities[id]
	return v, ok
}

// SelectIDs returns the ids in collection order. Callers must not modify the
// returned slice.
func (c *Collection[T]) SelectIDs() []string {
	c.mu.RLock()
	if c.memoIDsVersion == c.version {
		ids := c.memoIDs
		c.mu.RUnlock()
		return ids
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.memoIDsVersion != c.version {
		c.memoIDs = slices.Clone(c.ids)
		if c.memoIDs == nil {
			c.memoIDs = []string{}
		}
		c.memoIDsVersion = c.version
	}
	return c.memoIDs
}
