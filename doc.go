/*
Package hamt provides an immutable, persistent hash map implemented
as a Hash Array Mapped Trie (HAMT).  Every update returns a new map
value that shares as much structure as possible with the input; no
node is ever modified after it is published.  Maps can therefore be
handed between goroutines and versions can evolve independently at
the cost of copying only the path that actually changed.

Uses

- Cheap snapshots: keep old versions around while new ones evolve

- Copy-on-write alternative to the Go builtin map

- Merging independently-built maps with a conflict resolver, in time
proportional to their structural difference rather than their size


What are HAMTs

A HAMT indexes entries by fixed-width slices of a hashed key ("Ideal
Hash Trees", Phil Bagwell, 2001).  This implementation uses a 32-way
branching factor: each trie level consumes 5 bits of a 32-bit mixed
hash, so a map of a million entries is about four levels deep.
Internal nodes store only their occupied slots, compressed by a
32-bit bitmap and a popcount-indexed child array.  Keys whose mixed
hashes fully collide are kept in a small ordered bucket.

Hashing is delegated to a Hasher, which supplies the raw 32-bit hash
and the equality predicate for a key type.  Raw hashes are passed
through a fixed post-mixing function before indexing; two maps can
only interoperate (Merge, Equal) when built with the same Hasher.

Concurrency

A Map value is immutable and safe for concurrent readers without
synchronization.  "Mutating" operations return a new Map; the old
one is unaffected.  There are no locks anywhere in this package.

Inspiration

The immutable data types in Clojure, Scala and other functional
languages really do make it easier to "reason about" systems.  The
merge algorithm here follows the structural-sharing discipline those
collections pioneered: wherever the two sides of a merge are already
the same subtree, the result reuses it without descending.
*/
package hamt
