package matryoshka

// CLStrategy selects how a page's CL-internal root is searched. The
// fence-keys and Eytzinger strategies are pure optimisations over the
// default slot-indexed search (no observable semantics change — see
// DESIGN.md); this implementation accepts and validates all three but
// only executes the default strategy's code path.
type CLStrategy uint8

const (
	// StrategyDefault searches the CL-internal root by descending its
	// slot-indexed child array.
	StrategyDefault CLStrategy = iota
	// StrategyFenceKeys additionally resolves the first descent step
	// against separators cached in the page header.
	StrategyFenceKeys
	// StrategyEytzinger lays the CL-internal root out as a dense
	// BFS array for single-compare child addressing.
	StrategyEytzinger
)

const (
	minLeafAlloc = 4096
	minHier      = 4096 // smallest legal leaf_alloc, mirrors BtMinPage's role in the teacher
)

// Hierarchy is the configuration object for create_with(hierarchy): the
// recognized options of spec §6, exposed as a plain Go struct rather than
// a file- or flag-driven config (there is nothing external to load — the
// tree is in-memory only, per the Non-goals).
type Hierarchy struct {
	// LeafAlloc is the size in bytes of one leaf-equivalent: 4096 for
	// page-leaves, 1<<21 for superpage-leaves. Values below 4096 are
	// raised to 4096 and values >= 1<<21 select superpages; any other
	// value gives an ordinary page-leaf hierarchy. LeafAlloc does not
	// change leaf capacity, which is fixed at nominalPageMaxKeys or
	// nominalSuperpageMaxKeys.
	LeafAlloc int

	// MinPageKeys is the underflow threshold for page leaf-equivalents
	// in the outer tree. Zero selects the default (one quarter of
	// nominal page capacity).
	MinPageKeys int

	// MinSuperpageKeys is the analogous threshold for superpage
	// leaf-equivalents. Zero selects the default.
	MinSuperpageKeys int

	// CLStrategy selects the CL-internal search strategy (see above).
	Strategy CLStrategy

	// UseSuperpages selects whether outer-tree leaves are 2 MiB
	// superpages (true) or 4 KiB pages (false, the default).
	UseSuperpages bool

	// Alloc supplies page/superpage-sized backing memory. Nil selects
	// heapAllocator, a plain make([]byte, n) implementation.
	Alloc Allocator
}

// nominalPageMaxKeys is the maximum key count a fully packed, standard-
// layout page sub-tree can hold at sub-height 2 (63 usable CL slots):
// the page_max_keys value named in spec §6.
const nominalPageMaxKeys = 855

// nominalSuperpageMaxKeys is the analogous nominal capacity for a
// superpage sub-tree (sp_max_keys), matching spec §4.D's "~436K keys".
const nominalSuperpageMaxKeys = 436 * 1000

// DefaultHierarchy returns the default 4 KiB-page-leaf hierarchy.
func DefaultHierarchy() Hierarchy {
	h := Hierarchy{LeafAlloc: minLeafAlloc}
	h.sanitize()
	return h
}

// SuperpageHierarchy returns the default 2 MiB-superpage-leaf hierarchy.
func SuperpageHierarchy() Hierarchy {
	h := Hierarchy{LeafAlloc: 1 << 21, UseSuperpages: true}
	h.sanitize()
	return h
}

// sanitize clamps out-of-range configuration to the nearest legal value,
// mirroring the teacher's NewBufMgr bit-clamping ("determine sanity of
// page size... determine sanity of buffer pool") rather than rejecting
// the hierarchy outright.
func (h *Hierarchy) sanitize() {
	if h.LeafAlloc < minHier {
		h.LeafAlloc = minHier
	}
	if h.LeafAlloc >= 1<<21 {
		h.UseSuperpages = true
	}
	if h.Strategy > StrategyEytzinger {
		h.Strategy = StrategyDefault
	}
	if h.MinPageKeys <= 0 {
		h.MinPageKeys = nominalPageMaxKeys / 4
	}
	if h.MinSuperpageKeys <= 0 {
		h.MinSuperpageKeys = nominalSuperpageMaxKeys / 4
	}
	if h.Alloc == nil {
		h.Alloc = heapAllocator{}
	}
}

// leafCapacity is the nominal key capacity used to size bulk-load and
// split partitions for this hierarchy's leaf-equivalent kind.
func (h *Hierarchy) leafCapacity() int {
	if h.UseSuperpages {
		return nominalSuperpageMaxKeys
	}
	return nominalPageMaxKeys
}

// minLeafKeys is the underflow threshold for this hierarchy's
// leaf-equivalent kind.
func (h *Hierarchy) minLeafKeys() int {
	if h.UseSuperpages {
		return h.MinSuperpageKeys
	}
	return h.MinPageKeys
}

// newLeafEquiv allocates a fresh, empty leaf-equivalent of the kind this
// hierarchy selects.
func (h *Hierarchy) newLeafEquiv() (leafEquiv, error) {
	if h.UseSuperpages {
		return newSuperpage(h.Alloc)
	}
	return newPage(h.Alloc)
}
