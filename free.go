package memheap

// Deallocate returns a block to the free pool and coalesces it with its
// free neighbors. Passing NullRef is a no-op.
func (h *Heap) Deallocate(ref uint32) error {
	if ref == NullRef {
		return nil
	}
	defer h.Defragment()

	off, prev, err := h.verifyRef(ref)
	if err != nil {
		return err
	}
	if h.blockFree(off) {
		return ErrDoubleFree
	}

	h.setBlockFree(off, true)
	h.freeSpace += h.blockSize(off)

	h.fuse(off)
	// freeing a sandwiched block can leave two adjacent free runs
	if prev != NullRef && h.blockFree(prev) {
		h.fuse(prev)
	}
	return nil
}

// verifyRef maps a payload reference back to its header, checking bounds
// and chain membership. Returns the header offset and its chain predecessor.
func (h *Heap) verifyRef(ref uint32) (off uint32, prev uint32, err error) {
	if h.tail == NullRef || ref < HeaderSize || ref-HeaderSize > h.tail {
		return NullRef, NullRef, ErrBadRef
	}

	target := ref - HeaderSize
	prev = NullRef
	for cur := uint32(0); cur != NullRef; cur = h.blockNext(cur) {
		if cur == target {
			return target, prev, nil
		}
		prev = cur
	}
	return NullRef, NullRef, ErrBadRef
}

// fuse absorbs every directly following free block into block off.
func (h *Heap) fuse(off uint32) {
	next := h.blockNext(off)
	for next != NullRef && h.blockFree(next) {
		h.setBlockSize(off, h.blockSize(off)+HeaderSize+h.blockSize(next))
		next = h.blockNext(next)
		h.setBlockNext(off, next)
		// the absorbed payload was already counted free, only the
		// header overhead is reclaimed
		h.freeSpace += HeaderSize
	}
	if next == NullRef {
		h.tail = off
	}
}

// Defragment fuses every adjacent pair of free blocks arena-wide.
// Idempotent; it also runs after every deallocation attempt.
func (h *Heap) Defragment() {
	if h.tail == NullRef {
		return
	}
	for off := uint32(0); off != NullRef; off = h.blockNext(off) {
		next := h.blockNext(off)
		if next != NullRef && h.blockFree(off) && h.blockFree(next) {
			h.fuse(off)
		}
	}
}
