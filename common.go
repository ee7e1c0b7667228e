// Package matryoshka implements an in-memory ordered set of 32-bit signed
// integers as a three-level nested B+ tree: an outer B+ tree of leaf
// pages (or superpages), each of which is itself a small B+ tree of
// cache-line-sized sub-nodes, mirroring successive levels of the memory
// hierarchy.
package matryoshka

import "math"

// KeyMax is the sentinel marking an unused key slot. It is never a valid
// member of the set.
const KeyMax = int32(math.MaxInt32)

// KeyMin is the smallest representable key, the natural starting point
// for a full ascending iteration.
const KeyMin = int32(math.MinInt32)

const (
	// CLKeyCap is the maximum number of keys held by a CL leaf.
	CLKeyCap = 15
	// CLSepCap is the maximum number of separators held by a CL internal.
	CLSepCap = 12
	// CLChildCap is the maximum number of child slot-indices held by a
	// CL internal (CLSepCap + 1).
	CLChildCap = CLSepCap + 1

	// minCLLeaf is the non-root occupancy floor for a CL leaf. 2*minCLLeaf
	// <= CLKeyCap (14 <= 15), so a leaf merge of two underfull siblings
	// always fits within one leaf's key array.
	minCLLeaf = 7
	// minCLInternal is the non-root occupancy floor for a CL internal,
	// set to ceil(CLSepCap/2) rather than mirroring minCLLeaf: a merge
	// combines an underflowing node (count < minCLInternal) with a
	// sibling that failed to lend (count <= minCLInternal), plus one
	// separator pulled down from the parent, so the safety identity is
	// 2*minCLInternal <= CLSepCap+1 (the children array's one slot of
	// insert-overflow slack is not available to absorb a merge). 6
	// keeps the worst case (5 + 6 + 1 = 12 separators, 13 children) under
	// the 14-slot children array with a full slot of margin.
	minCLInternal = 6
)

const (
	// PageSlots is the number of CL-sub-node slots available in a page.
	// The teacher's slotted Page reserves slot 0 for a byte-packed
	// header; this implementation keeps header fields (root, height,
	// nkeys) as ordinary struct fields instead, per the Go-native
	// adaptation in SPEC_FULL.md §3, so all 63 slots hold CL sub-nodes.
	PageSlots = 63
)

const (
	// OuterMaxKeys is the maximum number of separators in an outer
	// internal node.
	OuterMaxKeys = 339
	// OuterMaxChildren is the maximum fanout of an outer internal node.
	OuterMaxChildren = OuterMaxKeys + 1
	// outerMinKeys is the non-root occupancy floor for an outer internal.
	outerMinKeys = OuterMaxKeys / 2

	// maxPageLeafFanout bounds the number of page-leaf children a
	// superpage's single internal routing level may hold.
	maxPageLeafFanout = 510
)
