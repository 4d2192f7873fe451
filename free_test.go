package memheap

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestDeallocateNullRef(t *testing.T) {
	h := New(Config{Capacity: 256, SplitThreshold: 16})
	assert.Nil(t, h.Deallocate(NullRef))
	assert.Equal(t, uint32(256), h.freeSpace)
}

func TestDeallocateBadRef(t *testing.T) {
	h := New(Config{Capacity: 256, SplitThreshold: 16})

	// empty arena
	assert.Equal(t, ErrBadRef, h.Deallocate(12))

	a, err := h.Allocate(10)
	assert.Nil(t, err)
	_, err = h.Allocate(10)
	assert.Nil(t, err)
	spaceBefore := h.FreeSpace()

	// before the first payload
	assert.Equal(t, ErrBadRef, h.Deallocate(3))
	// inside a block but not a chain member
	assert.Equal(t, ErrBadRef, h.Deallocate(a+1))
	// past the tail header
	assert.Equal(t, ErrBadRef, h.Deallocate(200))

	assert.Equal(t, spaceBefore, h.FreeSpace())
	assert.Equal(t, []BlockInfo{
		{Size: 10, Free: false},
		{Size: 10, Free: false},
	}, h.Dump())
}

func TestDeallocateDoubleFree(t *testing.T) {
	h := New(Config{Capacity: 256, SplitThreshold: 16})

	a, _ := h.Allocate(10)
	_, _ = h.Allocate(10)

	assert.Nil(t, h.Deallocate(a))
	spaceAfter := h.FreeSpace()

	assert.Equal(t, ErrDoubleFree, h.Deallocate(a))
	assert.Equal(t, spaceAfter, h.FreeSpace())
	checkConservation(t, h)
}

func TestDeallocateForwardFuse(t *testing.T) {
	h := New(Config{Capacity: 256, SplitThreshold: 16})

	_, _ = h.Allocate(10)
	b, _ := h.Allocate(10)
	c, _ := h.Allocate(10)
	assert.Equal(t, uint32(190), h.freeSpace)

	assert.Nil(t, h.Deallocate(c))
	assert.Equal(t, uint32(200), h.freeSpace)

	// freeing b merges it with the free tail block
	assert.Nil(t, h.Deallocate(b))
	assert.Equal(t, []BlockInfo{
		{Size: 10, Free: false},
		{Size: 10 + 10 + 12, Free: true},
	}, h.Dump())
	assert.Equal(t, uint32(22), h.tail)
	assert.Equal(t, uint32(222), h.freeSpace)
	checkNoAdjacentFree(t, h)
	checkConservation(t, h)
}

func TestDeallocateSandwich(t *testing.T) {
	h := New(Config{Capacity: 256, SplitThreshold: 16})

	a, _ := h.Allocate(10)
	b, _ := h.Allocate(10)
	_, _ = h.Allocate(10)

	assert.Nil(t, h.Deallocate(b))
	checkNoAdjacentFree(t, h)

	// freeing a creates two adjacent free runs, fused via the predecessor
	assert.Nil(t, h.Deallocate(a))
	assert.Equal(t, []BlockInfo{
		{Size: 10 + 10 + 12, Free: true},
		{Size: 10, Free: false},
	}, h.Dump())
	assert.Equal(t, uint32(44), h.tail)
	assert.Equal(t, uint32(222), h.freeSpace)
	checkNoAdjacentFree(t, h)
	checkConservation(t, h)
}

func TestDeallocateAll(t *testing.T) {
	h := New(Config{Capacity: 256, SplitThreshold: 16})

	a, _ := h.Allocate(10)
	b, _ := h.Allocate(10)
	c, _ := h.Allocate(10)

	assert.Nil(t, h.Deallocate(a))
	assert.Nil(t, h.Deallocate(c))
	assert.Nil(t, h.Deallocate(b))

	// one maximally coalesced free block remains
	assert.Equal(t, []BlockInfo{{Size: 30 + 2*12, Free: true}}, h.Dump())
	assert.Equal(t, uint32(0), h.tail)
	assert.Equal(t, uint32(256-12), h.freeSpace)
	checkConservation(t, h)
}

func TestNoAdjacentFreeAfterDeallocate(t *testing.T) {
	h := New(Config{Capacity: 1 << 10, SplitThreshold: 16})

	var refs []uint32
	for i := 0; i < 8; i++ {
		ref, err := h.Allocate(uint32(8 + i*4))
		assert.Nil(t, err)
		refs = append(refs, ref)
	}

	for _, i := range []int{1, 3, 2, 6, 5, 0, 7, 4} {
		assert.Nil(t, h.Deallocate(refs[i]))
		checkNoAdjacentFree(t, h)
		checkConservation(t, h)
	}
	assert.Equal(t, 1, len(h.Dump()))
}

func TestDefragment(t *testing.T) {
	h := New(Config{Capacity: 256, SplitThreshold: 16})

	a, _ := h.Allocate(50)
	b, _ := h.Allocate(10)
	_, _ = h.Allocate(10)
	assert.Nil(t, h.Deallocate(b))

	// shrinking in place leaves the remainder next to the free block
	ref, err := h.Resize(a, 10)
	assert.Nil(t, err)
	assert.Equal(t, a, ref)
	assert.Equal(t, []BlockInfo{
		{Size: 10, Free: false},
		{Size: 28, Free: true},
		{Size: 10, Free: true},
		{Size: 10, Free: false},
	}, h.Dump())

	h.Defragment()
	assert.Equal(t, []BlockInfo{
		{Size: 10, Free: false},
		{Size: 28 + 12 + 10, Free: true},
		{Size: 10, Free: false},
	}, h.Dump())
	assert.Equal(t, uint32(200), h.freeSpace)

	// idempotent
	h.Defragment()
	assert.Equal(t, 3, len(h.Dump()))
	assert.Equal(t, uint32(200), h.freeSpace)
	checkConservation(t, h)
}

func TestDefragmentEmpty(t *testing.T) {
	h := New(Config{Capacity: 256, SplitThreshold: 16})
	h.Defragment()
	assert.Nil(t, h.Dump())
}
