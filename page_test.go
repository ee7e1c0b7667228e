package matryoshka

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustNewPage(t *testing.T) *page {
	t.Helper()
	p, err := newPage(heapAllocator{})
	require.NoError(t, err)
	return p
}

func TestPageInsertContainsDelete(t *testing.T) {
	p := mustNewPage(t)
	h := DefaultHierarchy()

	keys := []int32{50, 10, 90, 30, 70, 20, 80, 40, 60}
	for _, k := range keys {
		st, _, _, err := p.insertKey(k, &h)
		require.NoError(t, err)
		require.Equal(t, leOK, st)
	}
	require.Equal(t, len(keys), p.numKeys())
	for _, k := range keys {
		require.True(t, p.containsKey(k), "missing key %d", k)
	}
	require.False(t, p.containsKey(999))

	st, _, _, err := p.insertKey(50, &h)
	require.NoError(t, err)
	require.Equal(t, leDuplicate, st)

	// 8 keys remain, below the default MinPageKeys (855/4 = 213).
	require.Equal(t, leUnderflow, p.deleteKey(50, &h))
	require.False(t, p.containsKey(50))
	require.Equal(t, len(keys)-1, p.numKeys())
}

func TestPagePredecessor(t *testing.T) {
	p := mustNewPage(t)
	h := DefaultHierarchy()
	for _, k := range []int32{10, 20, 30, 40, 50} {
		p.insertKey(k, &h)
	}
	pred, ok := p.predecessorOf(35)
	require.True(t, ok)
	require.Equal(t, int32(30), pred)

	pred, ok = p.predecessorOf(10)
	require.True(t, ok)
	require.Equal(t, int32(10), pred)

	_, ok = p.predecessorOf(5)
	require.False(t, ok)
}

func TestPageSplitsUnderSustainedInsert(t *testing.T) {
	p := mustNewPage(t)
	h := DefaultHierarchy()

	var lastKeys []int32
	inserted := 0
	for i := int32(0); i < 2000; i++ {
		st, right, sep, err := p.insertKey(i, &h)
		require.NoError(t, err)
		inserted++
		if st == leFull {
			lastKeys = append(lastKeys, sep)
			require.NotNil(t, right)
			break
		}
	}
	require.NotEmpty(t, lastKeys, "expected a page split before 2000 sequential inserts")
}

func TestPageRebuildFromAndExtractSorted(t *testing.T) {
	p := mustNewPage(t)
	h := DefaultHierarchy()
	keys := make([]int32, 500)
	for i := range keys {
		keys[i] = int32(i)
	}
	require.NoError(t, p.rebuildFrom(keys, &h))
	require.Equal(t, keys, p.extractSorted())
	require.Equal(t, len(keys), p.numKeys())
}

func TestPageDeleteCausesUnderflow(t *testing.T) {
	p := mustNewPage(t)
	h := DefaultHierarchy()
	h.MinPageKeys = 100
	keys := make([]int32, 120)
	for i := range keys {
		keys[i] = int32(i)
	}
	require.NoError(t, p.rebuildFrom(keys, &h))

	var st leStatus
	for i := 0; i < 30; i++ {
		st = p.deleteKey(int32(i), &h)
	}
	require.Equal(t, leUnderflow, st)
}

func TestPageRandomizedInsertMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	p := mustNewPage(t)
	h := DefaultHierarchy()

	var right leafEquiv
	present := map[int32]bool{}
	for i := 0; i < 3000; i++ {
		k := int32(rng.Intn(5000))
		st, r, _, err := p.insertKey(k, &h)
		require.NoError(t, err)
		if st == leFull {
			right = r
			present[k] = true
			break
		}
		if st == leOK {
			present[k] = true
		}
	}
	for k := range present {
		found := p.containsKey(k) || (right != nil && right.containsKey(k))
		require.True(t, found, "key %d lost across page/split boundary", k)
	}
}
