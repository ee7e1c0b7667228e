package matryoshka

// leafEquiv is whichever granularity the outer tree (component E) treats
// as its own leaf: a *page when Hierarchy.UseSuperpages is false, a
// *superpage when it is true (GLOSSARY: "Leaf-equivalent"). The outer
// tree never type-switches on this; it drives every leaf-equivalent
// through this interface, which is the Go-native stand-in for the
// pointer-tagging trick spec §9 allows an implementation to drop in
// favor of "a tagged union, an interface value, or a type discriminant
// field" when the host language gives no cheap way to steal bits from a
// pointer.
//
// Cross-level sibling linkage (component F) is carried as prev/next
// fields on the concrete types and reached through setSiblings/
// siblings here, because the global doubly linked list threads through
// whichever granularity is the outer tree's actual leaf (spec §4.F) —
// pages nested inside a superpage do not participate in it.
type leafEquiv interface {
	// numKeys returns the number of keys currently held.
	numKeys() int

	// maxKeyOf returns the largest key held. Only valid when numKeys() > 0.
	maxKeyOf() int32

	// containsKey reports whether key is present.
	containsKey(key int32) bool

	// predecessorOf returns the largest held key <= q, and false if none.
	predecessorOf(q int32) (int32, bool)

	// insertKey inserts key. On leOK/leFull it reports the outcome for
	// this leaf alone. On leFull the leaf has already been split in
	// place: right is the new right sibling (already linked in) and
	// sep is a separator for it (every key in right is >= sep). The
	// outer tree does not use sep; it routes on maxKeyOf instead.
	insertKey(key int32, h *Hierarchy) (status leStatus, right leafEquiv, sep int32, err error)

	// deleteKey removes key, reporting leUnderflow if the leaf has
	// dropped below its configured minimum occupancy.
	deleteKey(key int32, h *Hierarchy) leStatus

	// extractSorted returns every key held, in ascending order.
	extractSorted() []int32

	// rebuildFrom replaces this leaf-equivalent's contents with keys
	// (already sorted, already sized to fit) via the same bottom-up
	// bulk construction bulkLoad uses, preserving existing sibling
	// pointers. Used by outer-level rebalancing (redistribute/merge).
	rebuildFrom(keys []int32, h *Hierarchy) error

	siblings() (prev, next leafEquiv)
	setSiblings(prev, next leafEquiv)
}

// insertSortedCopy returns a new []int32 with key inserted into the
// sorted slice in, which must not already contain key. Used by
// page.splitForOuterAndInsert to add the new key to the page's
// extracted contents before repacking them into two pages.
func insertSortedCopy(in []int32, key int32) []int32 {
	i := smallLowerBound(in, key)
	out := make([]int32, len(in)+1)
	copy(out, in[:i])
	out[i] = key
	copy(out[i+1:], in[i:])
	return out
}

// removeSortedCopy returns a new []int32 with key removed from the
// sorted slice in, which must contain key. Nothing in the package calls
// it.
func removeSortedCopy(in []int32, key int32) []int32 {
	i := smallLowerBound(in, key)
	out := make([]int32, len(in)-1)
	copy(out, in[:i])
	copy(out[i:], in[i+1:])
	return out
}
