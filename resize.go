package memheap

// Resize grows or shrinks an allocated block, in place when adjacent free
// space allows, moving the payload otherwise. On success the returned
// reference replaces the old one; on error the old block is left intact.
func (h *Heap) Resize(ref uint32, newSize uint32) (uint32, error) {
	if ref == NullRef {
		return h.Allocate(newSize)
	}
	if newSize == 0 {
		if err := h.Deallocate(ref); err != nil {
			return NullRef, err
		}
		return NullRef, nil
	}

	off, _, err := h.verifyRef(ref)
	if err != nil {
		return NullRef, err
	}
	if h.blockFree(off) {
		return NullRef, ErrDoubleFree
	}

	size := h.blockSize(off)
	switch {
	case newSize > size:
		return h.grow(off, newSize)
	case newSize < size:
		return h.shrink(off, newSize)
	default:
		return ref, nil
	}
}

func (h *Heap) grow(off uint32, newSize uint32) (uint32, error) {
	// a tail block has no successor to absorb and always moves
	next := h.blockNext(off)
	if next == NullRef || !h.blockFree(next) ||
		uint64(h.blockSize(off))+uint64(HeaderSize)+uint64(h.blockSize(next)) < uint64(newSize) {
		return h.move(off, newSize)
	}

	h.freeSpace -= h.blockSize(next)
	if h.blockNext(next) == NullRef {
		h.tail = off
	}
	h.setBlockSize(off, h.blockSize(off)+HeaderSize+h.blockSize(next))
	h.setBlockNext(off, h.blockNext(next))

	if uint64(h.blockSize(off)) >= uint64(newSize)+uint64(h.threshold) {
		h.split(off, newSize)
		h.freeSpace += h.blockSize(h.blockNext(off))
	}
	return off + HeaderSize, nil
}

func (h *Heap) shrink(off uint32, newSize uint32) (uint32, error) {
	if uint64(h.blockSize(off)) >= uint64(newSize)+uint64(h.threshold) {
		h.split(off, newSize)
		h.freeSpace += h.blockSize(h.blockNext(off))
		return off + HeaderSize, nil
	}
	// the leftover is not worth a fragment, move instead
	return h.move(off, newSize)
}

// move allocates a fresh block, copies the payload over and frees the old
// block. The old block is untouched when the allocation fails.
func (h *Heap) move(off uint32, newSize uint32) (uint32, error) {
	copyLen := h.blockSize(off)
	if newSize < copyLen {
		copyLen = newSize
	}

	ref, err := h.Allocate(newSize)
	if err != nil {
		return NullRef, err
	}

	oldRef := off + HeaderSize
	copy(h.buf[ref:ref+copyLen], h.buf[oldRef:oldRef+copyLen])

	if err := h.Deallocate(oldRef); err != nil {
		return NullRef, err
	}
	return ref, nil
}
