package hamt

import (
	"errors"
	"fmt"
)

// ErrEmptyMap is returned by operations that need at least one entry,
// like First, when invoked on an empty map.
var ErrEmptyMap = errors.New("empty map")

// Map is an immutable hash map from K to V.  The zero value is not
// usable; construct maps with New.  A Map value is cheap to copy and
// safe for concurrent use; operations that "modify" it return a new Map
// sharing unmodified subtrees with the receiver.
type Map[K, V any] struct {
	hasher Hasher[K]
	root   node[K, V]
}

// New returns an empty map whose keys are hashed and compared by h.
// Maps built with different hashers must not be mixed in Merge or Equal.
func New[K, V any](h Hasher[K]) Map[K, V] {
	return Map[K, V]{hasher: h}
}

// Size returns the number of entries.  It is O(1): every subtree carries
// its entry count.
func (m Map[K, V]) Size() int {
	if m.root == nil {
		return 0
	}
	return m.root.size()
}

// Get returns the value stored for the given key, and whether the key is
// present.
func (m Map[K, V]) Get(key K) (V, bool) {
	if m.root == nil {
		var zero V
		return zero, false
	}
	return m.root.get(key, mix(m.hasher.Hash(key)), 0, m.hasher)
}

// Contains reports whether the map has an entry for the given key.
func (m Map[K, V]) Contains(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Insert returns a map with the given key bound to the given value,
// replacing any existing binding.
func (m Map[K, V]) Insert(key K, value V) Map[K, V] {
	return m.InsertWith(key, value, nil)
}

// InsertWith is Insert with a conflict resolver: when the key is already
// bound, the resolver receives the existing entry and the new entry and
// returns the entry to keep.  A nil resolver replaces.
func (m Map[K, V]) InsertWith(key K, value V, r *Resolver[K, V]) Map[K, V] {
	hash := mix(m.hasher.Hash(key))
	if m.root == nil {
		m.root = &leafNode[K, V]{hash: hash, key: key, value: value}
		return m
	}
	m.root = m.root.insert(key, hash, value, 0, m.hasher, r)
	return m
}

// Remove returns a map without an entry for the given key.  Removing an
// absent key returns the receiver unchanged.
func (m Map[K, V]) Remove(key K) Map[K, V] {
	if m.root == nil {
		return m
	}
	m.root = m.root.remove(key, mix(m.hasher.Hash(key)), 0, m.hasher)
	return m
}

// Filter returns a map keeping only the entries the predicate accepts.
// If every entry survives the receiver is returned unchanged.
func (m Map[K, V]) Filter(p func(K, V) bool) Map[K, V] {
	return m.filterImpl(p, false)
}

// FilterNot returns a map without the entries the predicate accepts.
func (m Map[K, V]) FilterNot(p func(K, V) bool) Map[K, V] {
	return m.filterImpl(p, true)
}

func (m Map[K, V]) filterImpl(p func(K, V) bool, negate bool) Map[K, V] {
	if m.root == nil {
		return m
	}
	// one scratch buffer for the whole recursion; a 32-wide trie of
	// 32-bit hashes is at most 7 levels deep
	bufferSize := m.root.size() + 6
	if bufferSize > 32*7 {
		bufferSize = 32 * 7
	}
	buf := make([]node[K, V], bufferSize)
	m.root = m.root.filter(p, negate, 0, buf, 0)
	return m
}

// Merge returns the union of both maps.  Where both sides bind the same
// key the resolver decides, seeing m's entry as its left argument; a nil
// resolver keeps m's entry.  Subtrees the two maps already share are
// reused without being visited, so merging closely related maps is far
// cheaper than their size suggests.  Both maps must have been built with
// the same hasher.
func (m Map[K, V]) Merge(other Map[K, V], r *Resolver[K, V]) Map[K, V] {
	if m.hasher == nil {
		m.hasher = other.hasher
	}
	if r == nil {
		// the insert path reads nil as "replace"; merge's default keeps
		// the left entry, so pin it down before recursing
		r = &Resolver[K, V]{}
	}
	m.root = mergeNodes(m.root, other.root, 0, m.hasher, r)
	return m
}

// ForEach invokes the callback for every entry.  Iteration stops at the
// first error, which is returned wrapped.  The order is deterministic
// for a given trie shape (sibling slots ascend by hash slice, collision
// entries keep insertion order) but is not the natural key order;
// callers must not rely on more than "same structure, same order".
func (m Map[K, V]) ForEach(f func(key K, value V) error) error {
	if m.root == nil {
		return nil
	}
	if err := m.root.foreach(f); err != nil {
		return fmt.Errorf("callback: %w", err)
	}
	return nil
}

// Iterator returns a lazy iterator over the map's entries, in the same
// order ForEach uses.
func (m Map[K, V]) Iterator() *Iterator[K, V] {
	return newIterator(m.root)
}

// First returns some entry of the map, or ErrEmptyMap if it has none.
// Which entry is returned is deterministic for a given trie shape.
func (m Map[K, V]) First() (K, V, error) {
	n := m.root
	for {
		switch x := n.(type) {
		case nil:
			var zeroK K
			var zeroV V
			return zeroK, zeroV, fmt.Errorf("first: %w", ErrEmptyMap)
		case *leafNode[K, V]:
			return x.key, x.value, nil
		case *collisionNode[K, V]:
			return x.entries[0].Key, x.entries[0].Value, nil
		case *trieNode[K, V]:
			n = x.children[0]
		}
	}
}

// Split partitions the map into one or two maps whose union is the
// receiver, for handing to parallel consumers.  The partition point is
// implementation-defined but stable for a given trie shape.
func (m Map[K, V]) Split() []Map[K, V] {
	if m.root == nil {
		return []Map[K, V]{m}
	}
	parts := m.root.split()
	out := make([]Map[K, V], len(parts))
	for i, p := range parts {
		out[i] = Map[K, V]{hasher: m.hasher, root: p}
	}
	return out
}

// Equal reports whether both maps hold the same keys with values equal
// under valueEq.  Shared subtrees are recognized by identity and
// skipped.  Both maps must have been built with the same hasher.
func (m Map[K, V]) Equal(other Map[K, V], valueEq func(a, b V) bool) bool {
	return nodeEqual(m.root, other.root, m.hasher, valueEq)
}

func nodeEqual[K, V any](a, b node[K, V], h Hasher[K], valueEq func(a, b V) bool) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	switch x := a.(type) {
	case *leafNode[K, V]:
		y, ok := b.(*leafNode[K, V])
		return ok && x.hash == y.hash && h.Equal(x.key, y.key) && valueEq(x.value, y.value)
	case *collisionNode[K, V]:
		y, ok := b.(*collisionNode[K, V])
		if !ok || x.hash != y.hash || len(x.entries) != len(y.entries) {
			return false
		}
	scan:
		for _, xe := range x.entries {
			for _, ye := range y.entries {
				if h.Equal(xe.Key, ye.Key) {
					if !valueEq(xe.Value, ye.Value) {
						return false
					}
					continue scan
				}
			}
			return false
		}
		return true
	case *trieNode[K, V]:
		y, ok := b.(*trieNode[K, V])
		if !ok || x.bitmap != y.bitmap || x.count != y.count {
			return false
		}
		for i := range x.children {
			if !nodeEqual(x.children[i], y.children[i], h, valueEq) {
				return false
			}
		}
		return true
	}
	return false
}
