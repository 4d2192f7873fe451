package memheap

import (
	"fmt"
	"io"
)

// BlockInfo describes one block of the chain, for diagnostics.
type BlockInfo struct {
	Size uint32
	Free bool
}

// Dump returns every block in chain order. Diagnostic only, not part of
// the allocation contract.
func (h *Heap) Dump() []BlockInfo {
	if h.tail == NullRef {
		return nil
	}

	var result []BlockInfo
	for off := uint32(0); off != NullRef; off = h.blockNext(off) {
		result = append(result, BlockInfo{
			Size: h.blockSize(off),
			Free: h.blockFree(off),
		})
	}
	return result
}

// PrintTo writes a human-readable block listing followed by the free-space
// total.
func (h *Heap) PrintTo(w io.Writer) {
	for _, b := range h.Dump() {
		state := "used"
		if b.Free {
			state = "free"
		}
		fmt.Fprintf(w, "%d %s\n", b.Size, state)
	}
	fmt.Fprintf(w, "free space: %d B\n", h.FreeSpace())
}
