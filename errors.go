package matryoshka

import "github.com/pkg/errors"

// clStatus is the result of a cache-line sub-node operation (component B).
// These are never surfaced as Go errors: per the structural-operation
// contract, every recoverable condition is handled by the level that
// detects it.
type clStatus int

const (
	clOK clStatus = iota
	clDuplicate
	clFull
	clNotFound
)

// pageStatus is the result of a page sub-tree operation (component C).
type pageStatus int

const (
	pageOK pageStatus = iota
	pageFull
	pageUnderflow
)

// leStatus is the result of a leaf-equivalent (page or superpage)
// operation as seen by the outer tree (component E).
type leStatus int

const (
	leOK leStatus = iota
	leDuplicate
	leFull
	leUnderflow
)

// wrapAllocErr annotates a failure from the Allocator collaborator. It is
// the only condition in this package surfaced as a Go error: the public
// Tree API returns it alongside a false result or a nil handle (Insert,
// InsertBatch, CreateWith, BulkLoad), with no exception-style control
// flow.
func wrapAllocErr(err error, what string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, "matryoshka: allocator exhausted: "+what)
}
