package matryoshka

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTreeInsertContainsDelete(t *testing.T) {
	tree := Create()

	ok, err := tree.Insert(42)
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, tree.Contains(42))
	require.Equal(t, 1, tree.Size())

	ok, err = tree.Insert(42)
	require.NoError(t, err)
	require.False(t, ok, "duplicate insert must report false")
	require.Equal(t, 1, tree.Size())

	require.NoError(t, tree.Delete(42))
	require.False(t, tree.Contains(42))
	require.Equal(t, 0, tree.Size())

	require.NoError(t, tree.Delete(42)) // delete of absent key is a no-op
	require.Equal(t, 0, tree.Size())
}

func TestTreeInsertBatchAndDeleteBatch(t *testing.T) {
	tree := Create()
	keys := make([]int32, 10000)
	for i := range keys {
		keys[i] = int32(i)
	}
	n, err := tree.InsertBatch(keys)
	require.NoError(t, err)
	require.Equal(t, len(keys), n)
	require.Equal(t, len(keys), tree.Size())

	for _, k := range keys {
		require.True(t, tree.Contains(k))
	}

	require.NoError(t, tree.DeleteBatch(keys[:5000]))
	require.Equal(t, 5000, tree.Size())
	for i := 0; i < 5000; i++ {
		require.False(t, tree.Contains(int32(i)))
	}
	for i := 5000; i < 10000; i++ {
		require.True(t, tree.Contains(int32(i)))
	}
}

func TestTreeRandomizedAgainstReferenceSet(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := Create()
	reference := map[int32]bool{}

	for i := 0; i < 20000; i++ {
		k := int32(rng.Intn(8000))
		if rng.Intn(3) == 0 && len(reference) > 0 {
			ok := reference[k]
			require.NoError(t, tree.Delete(k))
			if ok {
				delete(reference, k)
			}
		} else {
			wantInserted := !reference[k]
			ok, err := tree.Insert(k)
			require.NoError(t, err)
			require.Equal(t, wantInserted, ok)
			reference[k] = true
		}
	}

	require.Equal(t, len(reference), tree.Size())
	for k := int32(0); k < 8000; k++ {
		require.Equal(t, reference[k], tree.Contains(k), "key %d", k)
	}
}

func TestTreeBulkLoadThenIterate(t *testing.T) {
	keys := make([]int32, 5000)
	for i := range keys {
		keys[i] = int32(4999 - i) // descending, exercises sortDedup
	}
	keys = append(keys, keys[:100]...) // inject duplicates

	tree, err := BulkLoad(keys)
	require.NoError(t, err)
	require.Equal(t, 5000, tree.Size())

	it := tree.IterFrom(KeyMin)
	var got []int32
	for {
		k, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, k)
	}
	require.Len(t, got, 5000)
	for i := 1; i < len(got); i++ {
		require.Less(t, got[i-1], got[i])
	}
	require.Equal(t, int32(0), got[0])
	require.Equal(t, int32(4999), got[len(got)-1])
}

func TestTreeIterFromMidpoint(t *testing.T) {
	keys := make([]int32, 1000)
	for i := range keys {
		keys[i] = int32(i * 2) // even keys only
	}
	tree, err := BulkLoad(keys)
	require.NoError(t, err)

	it := tree.IterFrom(501) // odd, not present: should start at 502
	k, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, int32(502), k)
}

func TestTreePredecessor(t *testing.T) {
	tree := Create()
	for _, k := range []int32{10, 20, 30, 40} {
		_, err := tree.Insert(k)
		require.NoError(t, err)
	}
	pred, ok := tree.Predecessor(25)
	require.True(t, ok)
	require.Equal(t, int32(20), pred)

	_, ok = tree.Predecessor(5)
	require.False(t, ok)
}

func TestTreeWithSuperpageHierarchy(t *testing.T) {
	tree, err := CreateWith(SuperpageHierarchy())
	require.NoError(t, err)

	n := 50000
	for i := 0; i < n; i++ {
		ok, err := tree.Insert(int32(i))
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.Equal(t, n, tree.Size())
	for i := 0; i < n; i += 97 {
		require.True(t, tree.Contains(int32(i)))
	}

	require.NoError(t, tree.DeleteBatch([]int32{0, 1, 2, int32(n - 1), int32(n - 2)}))
	require.Equal(t, n-5, tree.Size())
	require.False(t, tree.Contains(0))
}

func TestTreeDestroy(t *testing.T) {
	tree := Create()
	tree.Insert(1)
	tree.Destroy()
	require.Equal(t, 0, tree.Size())
}
