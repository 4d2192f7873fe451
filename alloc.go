package memheap

// Allocate reserves size payload bytes and returns the payload reference.
// A zero size returns NullRef with no error.
func (h *Heap) Allocate(size uint32) (uint32, error) {
	if size == 0 {
		return NullRef, nil
	}

	if h.tail == NullRef {
		return h.placeFirst(size)
	}

	off := h.searchFreeSpace(size)
	if off == NullRef {
		return h.extendTail(size)
	}

	if uint64(h.blockSize(off)) >= uint64(size)+uint64(h.threshold) {
		h.freeSpace -= h.blockSize(off)
		h.split(off, size)
		h.freeSpace += h.blockSize(h.blockNext(off))
	} else {
		// the whole block leaves the free pool, slack included
		h.freeSpace -= h.blockSize(off)
	}
	h.setBlockFree(off, false)
	return off + HeaderSize, nil
}

// AllocateZeroed reserves count*size payload bytes and zeroes them,
// the calloc contract.
func (h *Heap) AllocateZeroed(count uint32, size uint32) (uint32, error) {
	total := uint64(count) * uint64(size)
	if total == 0 {
		return NullRef, nil
	}
	if total > uint64(h.capacity) {
		return NullRef, ErrNoSpace
	}

	ref, err := h.Allocate(uint32(total))
	if err != nil {
		return NullRef, err
	}

	// reused blocks carry stale bytes
	payload := h.Bytes(ref)
	for i := range payload {
		payload[i] = 0
	}
	return ref, nil
}

// placeFirst puts the very first header at the arena base, sized exactly.
func (h *Heap) placeFirst(size uint32) (uint32, error) {
	if uint64(HeaderSize)+uint64(size) > uint64(h.capacity) {
		return NullRef, ErrNoSpace
	}

	h.setBlockSize(0, size)
	h.setBlockNext(0, NullRef)
	h.setBlockFree(0, false)
	h.tail = 0
	h.freeSpace -= size + HeaderSize
	return HeaderSize, nil
}

// searchFreeSpace returns the first free block large enough, in chain
// order, or NullRef.
func (h *Heap) searchFreeSpace(size uint32) uint32 {
	for off := uint32(0); off != NullRef; off = h.blockNext(off) {
		if h.blockFree(off) && h.blockSize(off) >= size {
			return off
		}
	}
	return NullRef
}

// extendTail appends a new block right after the last block's payload.
func (h *Heap) extendTail(size uint32) (uint32, error) {
	off := h.tail + HeaderSize + h.blockSize(h.tail)
	if uint64(off)+uint64(HeaderSize)+uint64(size) > uint64(h.capacity) {
		return NullRef, ErrNoSpace
	}

	h.setBlockSize(off, size)
	h.setBlockNext(off, NullRef)
	h.setBlockFree(off, false)
	h.setBlockNext(h.tail, off)
	h.tail = off
	h.freeSpace -= size + HeaderSize
	return off + HeaderSize, nil
}

// split carves a free remainder out of block off, leaving it sized exactly.
// The free-space counter is adjusted by the callers.
func (h *Heap) split(off uint32, size uint32) {
	chunk := off + HeaderSize + size

	h.setBlockNext(chunk, h.blockNext(off))
	h.setBlockFree(chunk, true)
	h.setBlockSize(chunk, h.blockSize(off)-size-HeaderSize)

	h.setBlockNext(off, chunk)
	h.setBlockSize(off, size)

	if h.blockNext(chunk) == NullRef {
		h.tail = chunk
	}
}
