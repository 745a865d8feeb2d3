package hamt

import "math/bits"

// mergeNodes combines two subtrees rooted at the same level.  The
// resolver always sees the entry originating from a as its left
// argument; recursions that fold a's entries into b through b's insert
// path invert it to preserve that orientation, while folding b's entries
// into a passes it unchanged.
//
// Cost scales with the structural difference of the two sides: shared
// subtrees are detected by pointer equality and returned without
// descending whenever the resolver is the default or its inverse.
func mergeNodes[K, V any](a, b node[K, V], level uint, h Hasher[K], r *Resolver[K, V]) node[K, V] {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if r.prefersEither() && a == b {
		return a
	}
	switch x := a.(type) {
	case *leafNode[K, V]:
		// fold the left leaf into the right side; inverted so the
		// resolver still sees the left entry first
		return b.insert(x.key, x.hash, x.value, level, h, r.Invert())
	case *collisionNode[K, V]:
		// TODO: collision buckets are folded entry-by-entry; a
		// structural bucket merge would avoid re-scanning the target
		// bucket per entry when both sides collide at the same hash
		m := b
		inv := r.Invert()
		for _, e := range x.entries {
			m = m.insert(e.Key, x.hash, e.Value, level, h, inv)
		}
		return m
	case *trieNode[K, V]:
		switch y := b.(type) {
		case *leafNode[K, V]:
			return x.insert(y.key, y.hash, y.value, level, h, r)
		case *collisionNode[K, V]:
			var m node[K, V] = x
			for _, e := range y.entries {
				m = m.insert(e.Key, y.hash, e.Value, level, h, r)
			}
			return m
		case *trieNode[K, V]:
			return mergeTries(x, y, level, h, r)
		}
	}
	return a
}

// mergeTries walks the union of both bitmaps from the least significant
// set bit upward.  While the result is still a prefix of either input's
// child array no allocation happens; the merged array is materialized
// only at the first slot where the result can no longer be either side,
// and if that never happens the winning input is returned whole.
func mergeTries[K, V any](x, y *trieNode[K, V], level uint, h Hasher[K], r *Resolver[K, V]) node[K, V] {
	union := x.bitmap | y.bitmap
	n := bits.OnesCount32(union)
	var merged []node[K, V]
	canBeLeft, canBeRight := true, true
	xi, yi := 0, 0
	total := 0
	i := 0
	for bm := union; bm != 0; bm &= bm - 1 {
		lsb := bm & -bm
		inLeft := x.bitmap&lsb != 0
		inRight := y.bitmap&lsb != 0
		var child node[K, V]
		switch {
		case inLeft && inRight:
			xc, yc := x.children[xi], y.children[yi]
			if r.prefersEither() && xc == yc {
				child = xc
			} else {
				child = mergeNodes(xc, yc, level+5, h, r)
			}
			xi++
			yi++
		case inLeft:
			child = x.children[xi]
			xi++
		default:
			child = y.children[yi]
			yi++
		}
		total += child.size()
		if merged == nil {
			wasLeft := canBeLeft
			canBeLeft = canBeLeft && inLeft && child == x.children[xi-1]
			canBeRight = canBeRight && inRight && child == y.children[yi-1]
			if !canBeLeft && !canBeRight {
				merged = make([]node[K, V], n)
				if wasLeft {
					copy(merged, x.children[:i])
				} else {
					copy(merged, y.children[:i])
				}
				merged[i] = child
			}
		} else {
			merged[i] = child
		}
		i++
	}
	if canBeLeft {
		return x
	}
	if canBeRight {
		return y
	}
	return &trieNode[K, V]{union, merged, total}
}
