package matryoshka

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCLLeafInsertAndDelete(t *testing.T) {
	n := &clNode{kind: clLeaf}
	require.Equal(t, clOK, n.leafInsert(10))
	require.Equal(t, clOK, n.leafInsert(5))
	require.Equal(t, clOK, n.leafInsert(20))
	require.Equal(t, clDuplicate, n.leafInsert(10))
	require.Equal(t, []int32{5, 10, 20}, n.leafKeys())

	require.Equal(t, clOK, n.leafDelete(10))
	require.Equal(t, clNotFound, n.leafDelete(10))
	require.Equal(t, []int32{5, 20}, n.leafKeys())
}

func TestCLLeafFullAtCapacity(t *testing.T) {
	n := &clNode{kind: clLeaf}
	for i := int32(0); i < CLKeyCap; i++ {
		require.Equal(t, clOK, n.leafInsert(i))
	}
	require.Equal(t, clFull, n.leafInsert(CLKeyCap))
}

func TestCLLeafSplit(t *testing.T) {
	left := &clNode{kind: clLeaf}
	for _, k := range []int32{1, 2, 3, 4, 5, 6} {
		left.leafInsert(k)
	}
	right := &clNode{}
	sep := left.leafSplit(right)
	require.Equal(t, []int32{1, 2, 3}, left.leafKeys())
	require.Equal(t, []int32{4, 5, 6}, right.leafKeys())
	require.Equal(t, int32(4), sep)
}

func TestCLInodeInsertAndSearch(t *testing.T) {
	n := &clNode{kind: clInternal}
	n.children[0] = 0
	n.inodeInsertAt(0, 10, 1)
	n.inodeInsertAt(1, 20, 2)
	require.Equal(t, []int32{10, 20}, n.sepKeys())
	require.Equal(t, uint8(0), n.children[0])
	require.Equal(t, uint8(1), n.children[1])
	require.Equal(t, uint8(2), n.children[2])

	require.Equal(t, 0, n.inodeSearch(5))
	require.Equal(t, 1, n.inodeSearch(15))
	require.Equal(t, 2, n.inodeSearch(25))
}

func TestCLInodeRemoveAt(t *testing.T) {
	n := &clNode{kind: clInternal}
	n.inodeInsertAt(0, 10, 1)
	n.inodeInsertAt(1, 20, 2)
	n.inodeInsertAt(2, 30, 3)
	n.inodeRemoveAt(1) // remove separator 20 and child slot 2
	require.Equal(t, []int32{10, 30}, n.sepKeys())
	require.Equal(t, uint8(0), n.children[0])
	require.Equal(t, uint8(1), n.children[1])
	require.Equal(t, uint8(3), n.children[2])
}

func TestCLInodeSplit(t *testing.T) {
	n := &clNode{kind: clInternal}
	for i := 0; i < CLSepCap; i++ {
		n.inodeInsertAt(i, int32((i+1)*10), uint8(i+1))
	}
	right := &clNode{}
	median := n.inodeSplit(right)
	require.Equal(t, n.count+right.count+1, CLSepCap)
	require.Less(t, n.keys[n.count-1], median)
	require.Greater(t, right.keys[0], median)
}
