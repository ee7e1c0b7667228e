package matryoshka

import "sort"

// Tree is the public handle to one nested B+ tree index (spec §6). All
// operations route through Hierarchy.Alloc; the zero value is not
// usable — construct one with Create, CreateWith, BulkLoad, or
// BulkLoadWith, mirroring the teacher's own NewBLTree/NewBufMgr
// constructor pair rather than exposing a bare struct literal.
type Tree struct {
	h    Hierarchy
	root *outerNode
	n    int
}

// Create returns an empty tree using the default page-leaf hierarchy.
func Create() *Tree {
	t, err := CreateWith(DefaultHierarchy())
	if err != nil {
		// heapAllocator, the default hierarchy's Allocator, never fails.
		panic(err)
	}
	return t
}

// CreateWith returns an empty tree using the given hierarchy, sanitized
// per Hierarchy.sanitize.
func CreateWith(h Hierarchy) (*Tree, error) {
	h.sanitize()
	leaf, err := h.newLeafEquiv()
	if err != nil {
		return nil, err
	}
	return &Tree{h: h, root: newOuterLeaf(leaf)}, nil
}

// BulkLoad constructs a tree from keys (which need not be sorted or
// duplicate-free) using the default hierarchy.
func BulkLoad(keys []int32) (*Tree, error) {
	return BulkLoadWith(keys, DefaultHierarchy())
}

// BulkLoadWith is BulkLoad with an explicit hierarchy (component G).
func BulkLoadWith(keys []int32, h Hierarchy) (*Tree, error) {
	h.sanitize()
	sorted := sortDedup(keys)
	root, err := buildBulk(sorted, &h)
	if err != nil {
		return nil, err
	}
	return &Tree{h: h, root: root, n: len(sorted)}, nil
}

func sortDedup(keys []int32) []int32 {
	cp := append([]int32(nil), keys...)
	sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
	out := cp[:0]
	for i, k := range cp {
		if i == 0 || k != out[len(out)-1] {
			out = append(out, k)
		}
	}
	return out
}

// Destroy releases this tree's root, leaving it empty. Go's GC reclaims
// the underlying pages once unreachable; Destroy exists so callers that
// mirror the teacher's explicit lifecycle (NewBLTree/bltree.CloseIndex)
// have an equivalent call to make at teardown.
func (t *Tree) Destroy() {
	t.root = nil
	t.n = 0
}

// Size returns the number of keys currently held.
func (t *Tree) Size() int { return t.n }

// Contains reports whether key is a member of the set.
func (t *Tree) Contains(key int32) bool {
	if t.root == nil {
		return false
	}
	return t.root.containsKey(key)
}

// Predecessor returns the largest held key <= q, and false if the set
// has no such key.
func (t *Tree) Predecessor(q int32) (int32, bool) {
	if t.root == nil {
		return 0, false
	}
	return t.root.predecessorOf(q)
}

// Insert adds key to the set, reporting false (with no change) if it
// was already present.
func (t *Tree) Insert(key int32) (bool, error) {
	promoted, split, inserted, err := t.root.insertKey(key, &t.h)
	if err != nil {
		return false, err
	}
	if !inserted {
		return false, nil
	}
	if split {
		sep, ok := promoted.leftmostKeyHint()
		if !ok {
			sep = mustRightmost(t.root)
		}
		t.root = newOuterInternal([]int32{sep}, []*outerNode{t.root, promoted})
	}
	t.n++
	return true, nil
}

// InsertBatch inserts every key in keys, stopping at the first
// allocator error. It returns the count actually inserted.
func (t *Tree) InsertBatch(keys []int32) (int, error) {
	n := 0
	for _, k := range keys {
		ok, err := t.Insert(k)
		if err != nil {
			return n, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

// Delete removes key from the set. Deleting an absent key is a no-op.
func (t *Tree) Delete(key int32) error {
	if t.root == nil {
		return nil
	}
	had := t.root.containsKey(key)
	if err := t.root.deleteKey(key, &t.h); err != nil {
		return err
	}
	if had {
		t.n--
	}
	t.collapseRoot()
	return nil
}

// DeleteBatch removes every key in keys.
func (t *Tree) DeleteBatch(keys []int32) error {
	for _, k := range keys {
		if err := t.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// collapseRoot unwraps an outer-internal root left with a single child
// after a merge, cascading until the root is either a leaf or an
// internal with more than one child (spec §4.E "Rebalance": "the root
// is the one node exempt from the minimum occupancy rule, but collapses
// when it has only one child").
func (t *Tree) collapseRoot() {
	for !t.root.isLeaf && len(t.root.children) == 1 {
		t.root = t.root.children[0]
	}
}
