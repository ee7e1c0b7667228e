package matryoshka

// Allocator is the page-aligned (optionally huge-page-backed) memory
// reservation collaborator that spec §1 treats as external to the core:
// the tree depends only on this contract, not on any particular arena
// implementation. newPage/newSuperpage call through it once per
// page/superpage allocation — never per CL sub-node, which instead comes
// from the owning page's own slot-bitmap (spec §3 Lifecycle) — and
// propagate a non-nil error as the allocation-failure condition of §7.
//
// This mirrors the role the teacher's BufMgr.idx file and mmap'd
// pageZero region play in bufmgr.go, generalized to an interface so a
// caller can supply a huge-page arena for superpages without the tree's
// structural code needing to know about mmap or HugeTLB.
type Allocator interface {
	// AllocPage reserves one page-sized (4 KiB) region.
	AllocPage() ([]byte, error)
	// AllocSuperpage reserves one superpage-sized (2 MiB) region.
	AllocSuperpage() ([]byte, error)
}

// heapAllocator is the default Allocator: plain heap-backed slices, no
// alignment or huge-page guarantees. It never fails.
type heapAllocator struct{}

const (
	pageByteSize      = 4096
	superpageByteSize = 1 << 21
)

func (heapAllocator) AllocPage() ([]byte, error) {
	return make([]byte, pageByteSize), nil
}

func (heapAllocator) AllocSuperpage() ([]byte, error) {
	return make([]byte, superpageByteSize), nil
}
