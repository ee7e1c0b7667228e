package matryoshka

// smallLowerBound returns the smallest i with keys[i] >= q, or len(keys)
// if no such i exists (component A: lower_bound). It is sized for the
// CLKeyCap-entry CL arrays, but the scan is correct for any length and
// is also run over extracted page/superpage buffers (the iterator,
// insertSortedCopy). The contract does not mandate vector instructions;
// a linear scan over a CL array is the software analogue of a
// masked SIMD compare producing a bitmask of keys > q and locating its
// lowest set bit.
func smallLowerBound(keys []int32, q int32) int {
	for i, k := range keys {
		if k >= q {
			return i
		}
	}
	return len(keys)
}

// smallChildIndex returns the smallest i with keys[i] > q, or len(keys)
// (component A: child_index). Ties go right: a query equal to a
// separator follows the right child, per spec §9 "Separator semantics."
func smallChildIndex(keys []int32, q int32) int {
	for i, k := range keys {
		if k > q {
			return i
		}
	}
	return len(keys)
}

// smallPredecessorIdx returns the largest i with keys[i] <= q, or -1 if
// no such i exists (component A: predecessor). Ties go left: the
// immediate relation to child_index is predecessor(q) == child_index(q)-1.
func smallPredecessorIdx(keys []int32, q int32) int {
	return smallChildIndex(keys, q) - 1
}

// wideChildIndex is the same child_index contract as smallChildIndex,
// implemented as binary search for the larger separator arrays found at
// the outer tree and superpage routing levels, per spec §4.E: "for large
// counts the implementer SHOULD use SIMD-scanned binary search."
func wideChildIndex(keys []int32, q int32) int {
	lo, hi := 0, len(keys)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if keys[mid] > q {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
