package table

import (
	"github.com/cespare/xxhash/v2"
)

const (
	minCapacity = 16
	maxLoad     = 0.7
)

// Hasher hashes a key. Any fast non-cryptographic function will do.
type Hasher func([]byte) uint64

func XXHash(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// FNV1a is the 64-bit FNV-1a hash, inlined to avoid allocating a hash.Hash64
// per lookup.
func FNV1a(b []byte) uint64 {
	h := uint64(14695981039346656037)
	for _, c := range b {
		h ^= uint64(c)
		h *= 1099511628211
	}
	return h
}

type slot[V any] struct {
	hash uint64
	key  string
	used bool
	val  V
}

// Table maps byte-string keys to values using open addressing with linear
// probing. It is not safe for concurrent use.
type Table[V any] struct {
	hasher Hasher
	slots  []slot[V]
	mask   uint64
	size   int
}

func New[V any](capacity int, hasher Hasher) *Table[V] {
	if hasher == nil {
		hasher = XXHash
	}
	n := nextPowerOfTwo(max(capacity, minCapacity))
	return &Table[V]{
		hasher: hasher,
		slots:  make([]slot[V], n),
		mask:   uint64(n - 1),
	}
}

// Get returns a pointer to the value for key.
func (t *Table[V]) Get(key []byte) (*V, bool) {
	h := t.hasher(key)
	for i := h & t.mask; ; i = (i + 1) & t.mask {
		s := &t.slots[i]
		if !s.used {
			return nil, false
		}
		if s.hash == h && s.key == string(key) {
			return &s.val, true
		}
	}
}

// Upsert returns a pointer to the value for key, inserting a zero value when
// the key is new. The key bytes are copied on insert. The pointer is only
// valid until the next call to Upsert.
func (t *Table[V]) Upsert(key []byte) (*V, bool) {
	h := t.hasher(key)
	i := t.find(h, key)
	if t.slots[i].used {
		return &t.slots[i].val, false
	}

	if float64(t.size+1) > maxLoad*float64(len(t.slots)) {
		t.grow()
		i = t.find(h, key)
	}

	t.slots[i] = slot[V]{hash: h, key: string(key), used: true}
	t.size++
	return &t.slots[i].val, true
}

func (t *Table[V]) Len() int {
	return t.size
}

// Range calls f for every entry until f returns false. Order is
// unspecified.
func (t *Table[V]) Range(f func(key string, v *V) bool) {
	for i := range t.slots {
		s := &t.slots[i]
		if !s.used {
			continue
		}
		if !f(s.key, &s.val) {
			return
		}
	}
}

// find returns the slot holding key, or the empty slot where it belongs.
func (t *Table[V]) find(h uint64, key []byte) uint64 {
	i := h & t.mask
	for {
		s := &t.slots[i]
		if !s.used || (s.hash == h && s.key == string(key)) {
			return i
		}
		i = (i + 1) & t.mask
	}
}

func (t *Table[V]) grow() {
	old := t.slots
	t.slots = make([]slot[V], len(old)*2)
	t.mask = uint64(len(t.slots) - 1)

	for _, s := range old {
		if !s.used {
			continue
		}
		i := s.hash & t.mask
		for t.slots[i].used {
			i = (i + 1) & t.mask
		}
		t.slots[i] = s
	}
}

func nextPowerOfTwo(v int) int {
	n := 1
	for n < v {
		n <<= 1
	}
	return n
}
