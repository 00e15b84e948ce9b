package cuid2

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Next(t *testing.T) {
	var c Counter
	assert.Equal(t, uint64(1), c.Next())
	assert.Equal(t, uint64(2), c.Next())

	c.Reset(100)
	assert.Equal(t, uint64(101), c.Next())
}

func TestCounter_WrapsAtMax(t *testing.T) {
	var c Counter
	c.Reset(math.MaxUint64 - 1)

	assert.Equal(t, uint64(math.MaxUint64), c.Next())
	assert.Equal(t, uint64(0), c.Next())
	assert.Equal(t, uint64(1), c.Next())
}

func TestCounter_NoLostUpdates(t *testing.T) {
	var (
		c  Counter
		wg sync.WaitGroup
	)

	const (
		workers = 16
		perWork = 1000
	)

	results := make([][]uint64, workers)
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWork {
				results[w] = append(results[w], c.Next())
			}
		}()
	}
	wg.Wait()

	seen := make(map[uint64]struct{}, workers*perWork)
	for _, r := range results {
		for _, v := range r {
			seen[v] = struct{}{}
		}
	}

	assert.Len(t, seen, workers*perWork)
	assert.Equal(t, uint64(workers*perWork+1), c.Next())
}

func TestCounter_NextDoesNotAllocate(t *testing.T) {
	var c Counter
	allocs := testing.AllocsPerRun(100, func() { c.Next() })
	assert.Zero(t, allocs)
}
