package hamt

import (
	"bytes"
	"encoding/binary"

	"github.com/minio/blake2b-simd"
)

// A Hasher supplies the raw 32-bit hash and the equality predicate for a
// key type.  Equal must be reflexive, symmetric and transitive, and keys
// that are Equal must produce the same Hash.  The raw hash is post-mixed
// by the trie before indexing, so Hash does not need good low-bit
// dispersion on its own.
type Hasher[K any] interface {
	Hash(k K) uint32
	Equal(a, b K) bool
}

// Int32Hasher hashes an int32 key to itself.
type Int32Hasher struct{}

func (Int32Hasher) Hash(k int32) uint32   { return uint32(k) }
func (Int32Hasher) Equal(a, b int32) bool { return a == b }

// Int64Hasher folds an int64 key to 32 bits: values that fit in an int32
// hash to themselves, wider values to the xor of their halves.  The fold
// means a wide key and the int64 holding its own hash collide, which the
// collision tests rely on.
type Int64Hasher struct{}

func (Int64Hasher) Hash(k int64) uint32 {
	if int64(int32(k)) == k {
		return uint32(int32(k))
	}
	return uint32(uint64(k) ^ (uint64(k) >> 32))
}

func (Int64Hasher) Equal(a, b int64) bool { return a == b }

// IntHasher hashes an int key with the same fold as Int64Hasher.
type IntHasher struct{}

func (IntHasher) Hash(k int) uint32   { return Int64Hasher{}.Hash(int64(k)) }
func (IntHasher) Equal(a, b int) bool { return a == b }

// StringHasher hashes a string key to the leading 32 bits of its
// BLAKE2b-256 digest.
type StringHasher struct{}

func (StringHasher) Hash(k string) uint32 {
	sum := blake2b.Sum256([]byte(k))
	return binary.BigEndian.Uint32(sum[:4])
}

func (StringHasher) Equal(a, b string) bool { return a == b }

// BytesHasher hashes a byte-slice key to the leading 32 bits of its
// BLAKE2b-256 digest.  The slice contents must not change while the key
// is stored in a map.
type BytesHasher struct{}

func (BytesHasher) Hash(k []byte) uint32 {
	sum := blake2b.Sum256(k)
	return binary.BigEndian.Uint32(sum[:4])
}

func (BytesHasher) Equal(a, b []byte) bool { return bytes.Equal(a, b) }
