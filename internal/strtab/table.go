// Package strtab implements the content-keyed interning table behind the
// BINA string table.
//
// Entries are bucketed by the xxHash64 of their content and verified by full
// content comparison, so two different strings sharing a hash both survive.
// Iteration order is first-registration order.
package strtab

import (
	"github.com/arloliu/bina/internal/hash"
)

type entry[V any] struct {
	content string
	value   V
}

// Table maps string content to a canonical value of type V.
type Table[V any] struct {
	buckets    map[uint64][]int // hash -> indexes into entries
	entries    []entry[V]
	collisions int
}

// New creates an empty table.
func New[V any]() *Table[V] {
	return &Table[V]{
		buckets: make(map[uint64][]int),
		entries: make([]entry[V], 0),
	}
}

// Intern returns the canonical value registered for content.
// If content is not present yet, v becomes canonical and added is true.
func (t *Table[V]) Intern(content string, v V) (canonical V, added bool) {
	return t.intern(hash.ID(content), content, v)
}

// Lookup returns the canonical value for content.
func (t *Table[V]) Lookup(content string) (V, bool) {
	for _, idx := range t.buckets[hash.ID(content)] {
		if t.entries[idx].content == content {
			return t.entries[idx].value, true
		}
	}

	var zero V

	return zero, false
}

// Len returns the number of distinct strings.
func (t *Table[V]) Len() int {
	return len(t.entries)
}

// Values returns the canonical values in first-registration order.
func (t *Table[V]) Values() []V {
	values := make([]V, len(t.entries))
	for i, e := range t.entries {
		values[i] = e.value
	}

	return values
}

// Contents returns the distinct strings in first-registration order.
func (t *Table[V]) Contents() []string {
	contents := make([]string, len(t.entries))
	for i, e := range t.entries {
		contents[i] = e.content
	}

	return contents
}

// Collisions returns how many distinct strings landed in an occupied hash bucket.
func (t *Table[V]) Collisions() int {
	return t.collisions
}

// Reset clears the table but keeps its allocations.
func (t *Table[V]) Reset() {
	clear(t.buckets)
	clear(t.entries)
	t.entries = t.entries[:0]
	t.collisions = 0
}

func (t *Table[V]) intern(id uint64, content string, v V) (V, bool) {
	bucket := t.buckets[id]
	for _, idx := range bucket {
		if t.entries[idx].content == content {
			return t.entries[idx].value, false
		}
	}

	if len(bucket) > 0 {
		// Same hash, different content.
		t.collisions++
	}

	t.buckets[id] = append(bucket, len(t.entries))
	t.entries = append(t.entries, entry[V]{content: content, value: v})

	return v, true
}
