// Package memheap implements a fixed-capacity, first-fit memory allocator
// over a single byte arena, for code that must live inside a static memory
// pool. Blocks are addressed by uint32 offsets into the arena, never by
// raw pointers. Not safe for concurrent use.
package memheap

import (
	"encoding/binary"
	"math"
)

// NullRef is the absent block reference, the equivalent of a nil pointer.
const NullRef uint32 = math.MaxUint32

// HeaderSize is the per-block metadata overhead in bytes.
const HeaderSize uint32 = 12

// header field offsets
const (
	fieldSize = 0
	fieldFree = 4
	fieldNext = 8
)

// Config ...
type Config struct {
	// Capacity is the arena size in bytes, fixed for the heap's lifetime.
	Capacity uint32
	// SplitThreshold is the minimum leftover fragment size worth splitting
	// off an oversized free block. Must be larger than HeaderSize.
	SplitThreshold uint32
}

// Heap ...
type Heap struct {
	buf       []byte
	capacity  uint32
	threshold uint32

	// tail is the offset of the last header, NullRef while the arena is
	// still empty. Block creation order is address order: the chain only
	// grows forward from the tail.
	tail      uint32
	freeSpace uint32
}

func heapValidateConfig(conf Config) {
	if conf.Capacity <= HeaderSize {
		panic("Capacity must > HeaderSize")
	}
	if conf.SplitThreshold <= HeaderSize {
		panic("SplitThreshold must > HeaderSize")
	}
}

// New ...
func New(conf Config) *Heap {
	heapValidateConfig(conf)
	return &Heap{
		buf:       make([]byte, conf.Capacity),
		capacity:  conf.Capacity,
		threshold: conf.SplitThreshold,
		tail:      NullRef,
		freeSpace: conf.Capacity,
	}
}

// Headers sit at arbitrary unaligned offsets, so fields are encoded
// little-endian into the arena bytes instead of being cast in place.

func (h *Heap) blockSize(off uint32) uint32 {
	return binary.LittleEndian.Uint32(h.buf[off+fieldSize:])
}

func (h *Heap) setBlockSize(off uint32, size uint32) {
	binary.LittleEndian.PutUint32(h.buf[off+fieldSize:], size)
}

func (h *Heap) blockFree(off uint32) bool {
	return binary.LittleEndian.Uint32(h.buf[off+fieldFree:]) != 0
}

func (h *Heap) setBlockFree(off uint32, free bool) {
	var v uint32
	if free {
		v = 1
	}
	binary.LittleEndian.PutUint32(h.buf[off+fieldFree:], v)
}

func (h *Heap) blockNext(off uint32) uint32 {
	return binary.LittleEndian.Uint32(h.buf[off+fieldNext:])
}

func (h *Heap) setBlockNext(off uint32, next uint32) {
	binary.LittleEndian.PutUint32(h.buf[off+fieldNext:], next)
}

// FreeSpace returns the number of free bytes across all blocks, O(1).
func (h *Heap) FreeSpace() uint32 {
	return h.freeSpace
}

// Capacity ...
func (h *Heap) Capacity() uint32 {
	return h.capacity
}

// Bytes returns the payload of an allocated block as a slice into the
// arena. The reference must have come from Allocate or Resize of this heap.
func (h *Heap) Bytes(ref uint32) []byte {
	end := ref + h.blockSize(ref-HeaderSize)
	return h.buf[ref:end:end]
}
