// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package mempool implements a chunked allocator for large numbers of
// same-sized records.
//
// A Fixed pool owns a single pre-sized chunk and never grows; New reports
// exhaustion instead. A Dynamic pool creates chunks on demand, reuses vacant
// directory slots and releases chunks that become entirely free.
//
// Records are addressed by Handle. Pools perform no synchronization.
package mempool

import "math"

// Mode selects the growth policy of a Pool.
type Mode int

const (
	// Dynamic pools grow and shrink on demand.
	Dynamic Mode = iota
	// Fixed pools own exactly one chunk and never grow.
	Fixed
)

func (m Mode) String() string {
	switch m {
	case Dynamic:
		return "Dynamic"
	case Fixed:
		return "Fixed"
	}
	return "Mode(?)"
}

// Handle identifies a record within a pool: chunk*perChunk + slot.
// For a Fixed pool it equals the record's index in Data().
type Handle int

// InvalidHandle is returned alongside a nil record when allocation fails.
const InvalidHandle Handle = -1

const (
	chunkDirDelta  = 10
	maxDynamicSize = math.MaxUint16
	invalid        = -1
)

type chunk[T any] struct {
	records []T
	free    []int32
	used    []bool
}

func newChunk[T any](n int) *chunk[T] {
	c := &chunk[T]{
		records: make([]T, n),
		free:    make([]int32, n),
		used:    make([]bool, n),
	}
	for i := range n {
		c.free[i] = int32(i)
	}
	return c
}

// Pool hands out records of type T grouped into chunks.
type Pool[T any] struct {
	mode      Mode
	perChunk  int
	chunks    []*chunk[T]
	numChunks int
	current   int
}

// New returns an empty pool whose chunks hold perChunk records each.
// Dynamic chunks are capped at 65535 records. It panics if perChunk is not
// positive.
func New[T any](perChunk int, mode Mode) *Pool[T] {
	if perChunk <= 0 {
		panic("mempool.New: perChunk must be positive")
	}
	if mode == Dynamic && perChunk > maxDynamicSize {
		perChunk = maxDynamicSize
	}
	return &Pool[T]{
		mode:     mode,
		perChunk: perChunk,
		chunks:   make([]*chunk[T], chunkDirDelta),
		current:  invalid,
	}
}

// Mode returns the growth policy of the pool.
func (p *Pool[T]) Mode() Mode {
	return p.mode
}

// ChunkSize returns the number of records per chunk.
func (p *Pool[T]) ChunkSize() int {
	return p.perChunk
}

// NumChunks returns the number of live chunks.
func (p *Pool[T]) NumChunks() int {
	return p.numChunks
}

// New pops a free record. The record is zeroed. A Fixed pool returns
// (nil, InvalidHandle) once its chunk is exhausted.
func (p *Pool[T]) New() (*T, Handle) {
	if p.current == invalid || p.chunks[p.current] == nil {
		if p.mode == Fixed && p.numChunks > 0 {
			return nil, InvalidHandle
		}
		p.current = p.chunkWithFreeSlots()
		if p.current == invalid {
			p.current = p.createChunk(p.vacantSlot())
		}
	}

	c := p.chunks[p.current]
	if len(c.free) == 0 {
		if p.mode == Fixed {
			return nil, InvalidHandle
		}
		p.current = p.chunkWithFreeSlots()
		if p.current == invalid {
			p.current = p.createChunk(p.vacantSlot())
		}
		c = p.chunks[p.current]
	}

	last := len(c.free) - 1
	slot := c.free[last]
	c.free = c.free[:last]
	c.used[slot] = true

	return &c.records[slot], Handle(p.current*p.perChunk + int(slot))
}

// At returns the record addressed by h, or nil if h is not owned by the pool.
func (p *Pool[T]) At(h Handle) *T {
	c, slot, ok := p.locate(h)
	if !ok {
		return nil
	}
	return &c.records[slot]
}

// Delete zeroes the record addressed by h and returns it to its chunk's free
// list. It returns false if h does not address a live record of this pool.
func (p *Pool[T]) Delete(h Handle) bool {
	c, slot, ok := p.locate(h)
	if !ok || !c.used[slot] {
		return false
	}

	var zero T
	c.records[slot] = zero
	c.used[slot] = false
	c.free = append(c.free, int32(slot))

	if p.mode == Dynamic {
		p.shrink()
	}
	return true
}

// FreeCount returns the number of free slots across all live chunks.
func (p *Pool[T]) FreeCount() int {
	n := 0
	for _, c := range p.chunks {
		if c != nil {
			n += len(c.free)
		}
	}
	return n
}

// Data returns the backing records of a Fixed pool's chunk, including free
// (zeroed) slots. It returns nil for Dynamic pools and for Fixed pools that
// have not allocated yet.
func (p *Pool[T]) Data() []T {
	if p.mode != Fixed || p.chunks[0] == nil {
		return nil
	}
	return p.chunks[0].records
}

func (p *Pool[T]) locate(h Handle) (*chunk[T], int, bool) {
	if h < 0 {
		return nil, 0, false
	}
	idx := int(h) / p.perChunk
	slot := int(h) % p.perChunk
	if idx >= len(p.chunks) || p.chunks[idx] == nil {
		return nil, 0, false
	}
	return p.chunks[idx], slot, true
}

// chunkWithFreeSlots prefers the fullest chunk that still has room.
func (p *Pool[T]) chunkWithFreeSlots() int {
	best, bestFree := invalid, math.MaxInt
	for i, c := range p.chunks {
		if c == nil || len(c.free) == 0 {
			continue
		}
		if len(c.free) < bestFree {
			best, bestFree = i, len(c.free)
		}
	}
	return best
}

func (p *Pool[T]) vacantSlot() int {
	for i, c := range p.chunks {
		if c == nil {
			return i
		}
	}
	return len(p.chunks)
}

func (p *Pool[T]) createChunk(pos int) int {
	if pos >= len(p.chunks) {
		p.chunks = append(p.chunks, make([]*chunk[T], chunkDirDelta)...)
	}
	p.chunks[pos] = newChunk[T](p.perChunk)
	p.numChunks++
	return pos
}

// shrink releases the first entirely free chunk, then trims trailing runs of
// vacant directory entries.
func (p *Pool[T]) shrink() {
	idx := invalid
	for i, c := range p.chunks {
		if c != nil && len(c.free) == p.perChunk {
			idx = i
			break
		}
	}
	if idx == invalid {
		return
	}

	p.chunks[idx] = nil
	p.numChunks--

	for len(p.chunks) > chunkDirDelta && allVacant(p.chunks[len(p.chunks)-chunkDirDelta:]) {
		p.chunks = p.chunks[:len(p.chunks)-chunkDirDelta]
	}
	p.current = p.chunkWithFreeSlots()
}

func allVacant[T any](cs []*chunk[T]) bool {
	for _, c := range cs {
		if c != nil {
			return false
		}
	}
	return true
}
