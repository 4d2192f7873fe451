package memheap

import "errors"

var (
	// ErrNoSpace indicates that no free block fits and the arena cannot be
	// extended without passing its end.
	ErrNoSpace = errors.New("memheap: not enough space in arena")

	// ErrBadRef indicates a block reference that is out of bounds or was
	// not obtained from this heap.
	ErrBadRef = errors.New("memheap: bad block reference")

	// ErrDoubleFree indicates an operation on a block that is already free.
	ErrDoubleFree = errors.New("memheap: block already free")
)
