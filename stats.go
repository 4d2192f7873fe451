package memheap

// HeapStats is a point-in-time snapshot of arena usage.
type HeapStats struct {
	Capacity    uint32
	FreeBytes   uint32
	NumBlocks   int
	FreeBlocks  int
	LargestFree uint32
	Utilization float64
}

// Stats ...
func (h *Heap) Stats() HeapStats {
	stats := HeapStats{
		Capacity:  h.capacity,
		FreeBytes: h.freeSpace,
	}

	for _, b := range h.Dump() {
		stats.NumBlocks++
		if b.Free {
			stats.FreeBlocks++
			if b.Size > stats.LargestFree {
				stats.LargestFree = b.Size
			}
		}
	}

	stats.Utilization = float64(h.capacity-h.freeSpace) / float64(h.capacity)
	return stats
}
