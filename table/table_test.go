package table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func constHash([]byte) uint64 {
	return 7
}

func TestUpsertGet(t *testing.T) {
	tbl := New[int](0, nil)

	v, inserted := tbl.Upsert([]byte("Oslo"))
	assert.True(t, inserted)
	*v = 3

	v, inserted = tbl.Upsert([]byte("Oslo"))
	assert.False(t, inserted)
	assert.Equal(t, 3, *v)

	_, found := tbl.Get([]byte("Bergen"))
	assert.False(t, found)
	assert.Equal(t, 1, tbl.Len())
}

func TestKeyIsCopied(t *testing.T) {
	tbl := New[int](0, nil)
	key := []byte("Tromsø")
	v, _ := tbl.Upsert(key)
	*v = 1
	copy(key, "XXXXXX")

	v, found := tbl.Get([]byte("Tromsø"))
	require.True(t, found)
	assert.Equal(t, 1, *v)
}

func TestGrowWithCollisions(t *testing.T) {
	hashers := map[string]Hasher{
		"xxhash": XXHash,
		"fnv":    FNV1a,
		"const":  constHash,
	}

	for name, h := range hashers {
		t.Run(name, func(t *testing.T) {
			size := 2000
			if name == "const" {
				size = 300
			}
			tbl := New[int](4, h)
			for i := 0; i < size; i++ {
				v, inserted := tbl.Upsert([]byte(fmt.Sprintf("key_%d", i)))
				require.True(t, inserted)
				*v = i
			}
			assert.Equal(t, size, tbl.Len())

			for i := 0; i < size; i++ {
				v, found := tbl.Get([]byte(fmt.Sprintf("key_%d", i)))
				require.True(t, found)
				assert.Equal(t, i, *v)
			}
		})
	}
}

func TestRange(t *testing.T) {
	tbl := New[int](0, FNV1a)
	want := make(map[string]int)
	for range 500 {
		k := fmt.Sprintf("k%d", rand.Intn(200))
		v, _ := tbl.Upsert([]byte(k))
		*v++
		want[k]++
	}

	got := make(map[string]int)
	tbl.Range(func(key string, v *int) bool {
		got[key] = *v
		return true
	})
	assert.Equal(t, want, got)

	visited := 0
	tbl.Range(func(string, *int) bool {
		visited++
		return false
	})
	assert.Equal(t, 1, visited)
}

func TestFNV1a(t *testing.T) {
	// Reference values of 64-bit FNV-1a.
	assert.Equal(t, uint64(0xcbf29ce484222325), FNV1a(nil))
	assert.Equal(t, uint64(0xaf63dc4c8601ec8c), FNV1a([]byte("a")))
}

func BenchmarkUpsert(b *testing.B) {
	keys := make([][]byte, 10_000)
	for i := range keys {
		keys[i] = []byte(fmt.Sprintf("station_%d", i))
	}
	tbl := New[int64](len(keys), XXHash)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		v, _ := tbl.Upsert(keys[n%len(keys)])
		*v++
	}
}
