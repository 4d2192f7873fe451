package main

import (
	"fmt"
	"os"

	"github.com/QuangTung97/memheap"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	arenaCapacity  uint32
	splitThreshold uint32
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Exercise and inspect a fixed-capacity free-list heap",
	Long: `heapctl runs workloads against an in-memory memheap arena and prints
block dumps and usage statistics. The arena only lives for the duration
of one command; heapctl is a diagnostic and demonstration tool, not part
of the allocation contract.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().
		Uint32Var(&arenaCapacity, "capacity", 1<<16, "Arena capacity in bytes")
	rootCmd.PersistentFlags().
		Uint32Var(&splitThreshold, "threshold", 16, "Minimum leftover size worth splitting off")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newHeap() *memheap.Heap {
	return memheap.New(memheap.Config{
		Capacity:       arenaCapacity,
		SplitThreshold: splitThreshold,
	})
}

// printStats prints one usage snapshot
func printStats(s memheap.HeapStats) {
	fmt.Printf("capacity:     %d B\n", s.Capacity)
	fmt.Printf("free:         %d B\n", s.FreeBytes)
	fmt.Printf("blocks:       %d (%d free)\n", s.NumBlocks, s.FreeBlocks)
	fmt.Printf("largest free: %d B\n", s.LargestFree)
	fmt.Printf("utilization:  %.1f%%\n", s.Utilization*100)
}
