package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through allocate, free, coalesce and resize",
		Long: `The demo command runs a small scripted workload and prints the block
chain after every step, showing first-fit reuse, splitting, coalescing
and in-place resizing.

Example:
  heapctl demo
  heapctl demo --capacity 512 --threshold 24`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

func runDemo() error {
	heap := newHeap()

	step := func(name string) {
		fmt.Printf("--- %s\n", name)
		heap.PrintTo(os.Stdout)
		fmt.Println()
	}

	a, err := heap.Allocate(64)
	if err != nil {
		return err
	}
	b, err := heap.Allocate(128)
	if err != nil {
		return err
	}
	c, err := heap.Allocate(32)
	if err != nil {
		return err
	}
	step("allocate 64, 128, 32")

	if err := heap.Deallocate(b); err != nil {
		return err
	}
	step("free the middle block")

	d, err := heap.Allocate(40)
	if err != nil {
		return err
	}
	step("allocate 40, splitting the free block")

	a, err = heap.Resize(a, 16)
	if err != nil {
		return err
	}
	step("shrink the first block to 16")

	heap.Defragment()
	step("defragment")

	for _, ref := range []uint32{a, c, d} {
		if err := heap.Deallocate(ref); err != nil {
			return err
		}
	}
	step("free everything")

	printStats(heap.Stats())
	return nil
}
