package main

import (
	"fmt"
	"math/rand"

	"github.com/QuangTung97/memheap"
	"github.com/spf13/cobra"
)

var (
	churnOps     int
	churnSeed    int64
	churnMaxSize int
)

func init() {
	cmd := newChurnCmd()
	cmd.Flags().IntVar(&churnOps, "ops", 1000, "Number of operations to run")
	cmd.Flags().Int64Var(&churnSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&churnMaxSize, "max-size", 256, "Largest single allocation in bytes")
	rootCmd.AddCommand(cmd)
}

func newChurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "churn",
		Short: "Run a randomized allocate/free/resize workload",
		Long: `The churn command hammers the heap with a reproducible random mix of
allocations, frees and resizes, then prints the final usage statistics.
Useful for eyeballing fragmentation behavior under different thresholds.

Example:
  heapctl churn --ops 10000 --seed 7
  heapctl churn --capacity 4096 --max-size 64`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChurn()
		},
	}
}

func runChurn() error {
	heap := newHeap()
	rng := rand.New(rand.NewSource(churnSeed))

	var live []uint32
	var allocs, frees, resizes, rejected int

	for i := 0; i < churnOps; i++ {
		op := rng.Intn(4)
		switch {
		case op <= 1 || len(live) == 0:
			ref, err := heap.Allocate(uint32(1 + rng.Intn(churnMaxSize)))
			if err == memheap.ErrNoSpace {
				rejected++
				continue
			}
			if err != nil {
				return err
			}
			live = append(live, ref)
			allocs++

		case op == 2:
			k := rng.Intn(len(live))
			if err := heap.Deallocate(live[k]); err != nil {
				return err
			}
			live = append(live[:k], live[k+1:]...)
			frees++

		default:
			k := rng.Intn(len(live))
			ref, err := heap.Resize(live[k], uint32(1+rng.Intn(churnMaxSize)))
			if err == memheap.ErrNoSpace {
				rejected++
				continue
			}
			if err != nil {
				return err
			}
			live[k] = ref
			resizes++
		}
	}

	fmt.Printf("ops: %d (alloc %d, free %d, resize %d, rejected %d)\n",
		churnOps, allocs, frees, resizes, rejected)
	printStats(heap.Stats())
	return nil
}
