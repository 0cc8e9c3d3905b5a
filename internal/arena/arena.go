// Package arena implements a bump-pointer allocator with chained blocks,
// used by the parser for scratch memory whose lifetime is bounded by a
// single top-level action (parse a file, or one REPL line). The runtime's GC-managed values live elsewhere (see
// package gc); an Arena never participates in collection.
package arena

import (
	"unsafe"

	"github.com/giorgioyu125/wisp/internal/wisperr"
)

// DefaultBlockSize is the capacity of the first block and the minimum
// capacity of every block allocated thereafter.
const DefaultBlockSize = 64 * 1024

const wordSize = unsafe.Sizeof(uintptr(0))

type block struct {
	data []byte
	bump int
	next *block
}

// Arena is a bump allocator. It is not safe for concurrent use; a single
// owner (in this codebase, the parser) holds an Arena at a time.
type Arena struct {
	current  *block
	first    *block
	capacity int // capacity of current (for the growth rule)
}

// New creates an Arena with one block of DefaultBlockSize capacity.
func New() *Arena {
	b := &block{data: make([]byte, DefaultBlockSize)}
	return &Arena{current: b, first: b, capacity: DefaultBlockSize}
}

// Checkpoint is an opaque bump-pointer save point within the current block,
// for rolling back scratch allocations without resetting the whole arena.
// The evaluator does not use an arena, so it takes no checkpoints.
type Checkpoint struct {
	block *block
	bump  int
}

// Save records the arena's current allocation position.
func (a *Arena) Save() Checkpoint {
	return Checkpoint{block: a.current, bump: a.current.bump}
}

// Restore rewinds the arena to a prior Checkpoint. It is only valid to
// restore to a checkpoint taken in the same block chain generation (i.e.
// no Reset has happened since); restoring past a block boundary simply
// leaves later blocks allocated but unused, which is safe and bounded.
func (a *Arena) Restore(cp Checkpoint) {
	a.current = cp.block
	a.current.bump = cp.bump
}

// Alloc returns size bytes aligned to at least the platform word size.
// When the request does not fit in the current block, a new block is
// created with capacity max(size, max(previous_capacity, DefaultBlockSize))
// and linked into the chain.
func (a *Arena) Alloc(size int) (unsafe.Pointer, error) {
	if size < 0 {
		return nil, wisperr.New(wisperr.KindInternalInvariant, "arena: negative allocation size")
	}
	aligned := align(size, int(wordSize))

	if a.current.bump+aligned > len(a.current.data) {
		newCap := aligned
		if a.capacity > newCap {
			newCap = a.capacity
		}
		if DefaultBlockSize > newCap {
			newCap = DefaultBlockSize
		}
		nb := &block{data: make([]byte, newCap)}
		a.current.next = nb
		a.current = nb
		a.capacity = newCap
	}

	// Memory rewound by Reset or Restore still holds old bytes; clear it so
	// every allocation starts zeroed.
	clear(a.current.data[a.current.bump : a.current.bump+aligned])
	p := unsafe.Pointer(&a.current.data[a.current.bump])
	a.current.bump += aligned
	return p, nil
}

// AllocT allocates a zero-valued T from the arena and returns a typed
// pointer backed by arena memory. Callers must not retain the pointer
// beyond a Reset or Destroy of the arena that produced it.
func AllocT[T any](a *Arena) (*T, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	p, err := a.Alloc(size)
	if err != nil {
		return nil, err
	}
	return (*T)(p), nil
}

// Reset invalidates every prior allocation and frees all blocks but the
// first, which is rewound to empty. This is a bulk-release: callers must
// not reference any arena-derived pointer after Reset.
func (a *Arena) Reset() {
	a.first.bump = 0
	a.first.next = nil
	a.current = a.first
	a.capacity = len(a.first.data)
}

// Destroy drops all blocks. After Destroy, the Arena must not be used.
func (a *Arena) Destroy() {
	a.current = nil
	a.first = nil
}

// Stats reports bump-allocator occupancy across the whole block chain, for
// the CLI's --gc-stats diagnostic.
type Stats struct {
	Blocks        int
	BytesUsed     int
	BytesCapacity int
}

func (a *Arena) Stats() Stats {
	var s Stats
	for b := a.first; b != nil; b = b.next {
		s.Blocks++
		s.BytesUsed += b.bump
		s.BytesCapacity += len(b.data)
	}
	return s
}

func align(size, alignment int) int {
	return (size + alignment - 1) &^ (alignment - 1)
}
