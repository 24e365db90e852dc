// Package counter provides an insertion-ordered multiset with add-merge semantics.
package counter

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNegativeCount is returned when a count would be decremented.
var ErrNegativeCount = errors.New("counter: negative count")

// Entry is a single key and its count.
type Entry[K comparable] struct {
	Key   K
	Count int
}

// Counter maps keys to non-negative counts and remembers the order in which
// keys were first seen. That order is used to break ties in MostCommon.
type Counter[K comparable] struct {
	counts map[K]int
	order  []K
}

// New returns an empty counter.
func New[K comparable]() *Counter[K] {
	return &Counter[K]{counts: make(map[K]int)}
}

// Add increases the count for key by n. A key added with n == 0 is still
// recorded, mirroring a counter built from explicit zero entries.
func (c *Counter[K]) Add(key K, n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %v += %d", ErrNegativeCount, key, n)
	}
	if c.counts == nil {
		c.counts = make(map[K]int)
	}
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key] += n
	return nil
}

// Get returns the count for key, zero if absent.
func (c *Counter[K]) Get(key K) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter[K]) Len() int {
	return len(c.order)
}

// Total returns the sum of all counts.
func (c *Counter[K]) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// Keys returns the keys in insertion order.
func (c *Counter[K]) Keys() []K {
	keys := make([]K, len(c.order))
	copy(keys, c.order)
	return keys
}

// Entries returns all entries in insertion order.
func (c *Counter[K]) Entries() []Entry[K] {
	entries := make([]Entry[K], 0, len(c.order))
	for _, k := range c.order {
		entries = append(entries, Entry[K]{Key: k, Count: c.counts[k]})
	}
	return entries
}

// Merge adds every count of other into c. Keys new to c are appended in
// other's insertion order.
func (c *Counter[K]) Merge(other *Counter[K]) {
	if other == nil {
		return
	}
	for _, k := range other.order {
		// Counts in other are already non-negative.
		_ = c.Add(k, other.counts[k])
	}
}

// MostCommon returns the n entries with the highest counts, highest first.
// Equal counts keep insertion order. n <= 0 returns every entry.
func (c *Counter[K]) MostCommon(n int) []Entry[K] {
	entries := c.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Clone returns an independent copy of c.
func (c *Counter[K]) Clone() *Counter[K] {
	clone := New[K]()
	clone.Merge(c)
	return clone
}
