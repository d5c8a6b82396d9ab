package metadata_test

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/framegraph/memutils"
	"github.com/vkngwrapper/framegraph/memutils/metadata"
)

func place(t *testing.T, block *metadata.IntervalBlockMetadata, size, alignment uint64, start, end int, strategy metadata.AllocationStrategy) metadata.Suballocation {
	block.Expire(start)

	req, err := block.CreateAllocationRequest(size, alignment, strategy)
	require.NoError(t, err)

	handle, err := block.Alloc(req, start, end, nil)
	require.NoError(t, err)

	alloc, err := block.Allocation(handle)
	require.NoError(t, err)

	return alloc
}

func TestIntervalBasicAlloc(t *testing.T) {
	block := metadata.NewIntervalBlockMetadata(false)

	var stats memutils.DetailedStatistics
	stats.Clear()
	block.AddDetailedStatistics(&stats)

	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount: 1,
		},
		AllocationSizeMin:  math.MaxUint64,
		UnusedRangeSizeMin: math.MaxUint64,
	}, stats)

	a := place(t, block, 100, 256, 0, 1, 0)
	require.Equal(t, uint64(0), a.Offset)
	require.False(t, a.Aliased)
	require.Equal(t, uint64(100), block.Size())

	b := place(t, block, 100, 256, 1, 2, 0)
	require.Equal(t, uint64(256), b.Offset)
	require.False(t, b.Aliased)
	require.Equal(t, uint64(356), block.Size())

	stats.Clear()
	block.AddDetailedStatistics(&stats)

	require.Equal(t, memutils.DetailedStatistics{
		Statistics: memutils.Statistics{
			BlockCount:      1,
			BlockBytes:      356,
			AllocationCount: 2,
			AllocationBytes: 200,
		},
		UnusedRangeCount:   1,
		AllocationSizeMin:  100,
		AllocationSizeMax:  100,
		UnusedRangeSizeMin: 156,
		UnusedRangeSizeMax: 156,
	}, stats)

	// a expires at position 2 and its bytes are reused
	c := place(t, block, 50, 256, 2, 2, 0)
	require.Equal(t, uint64(0), c.Offset)
	require.True(t, c.Aliased)
	require.Equal(t, 2, block.FreeRegionsCount())
	require.Equal(t, uint64(50+156), block.SumFreeSize())

	d := place(t, block, 40, 16, 3, 3, 0)
	require.Equal(t, uint64(0), d.Offset)
	require.True(t, d.Aliased)
	require.Equal(t, uint64(356), block.Size())
	require.Equal(t, 1, block.LiveAllocationCount())
	require.Equal(t, 4, block.AllocationCount())

	require.NoError(t, block.Validate())
}

func TestIntervalOverlappingLifetimesDoNotAlias(t *testing.T) {
	const size = 65536
	block := metadata.NewIntervalBlockMetadata(false)

	r := place(t, block, size, 65536, 0, 1, 0)
	q := place(t, block, size, 65536, 1, 2, 0)

	require.Equal(t, uint64(0), r.Offset)
	require.Equal(t, uint64(size), q.Offset)
	require.False(t, q.Aliased)
	require.Equal(t, uint64(2*size), block.Size())
	require.NoError(t, block.Validate())
}

func TestIntervalDisjointUnitLifetimes(t *testing.T) {
	const size = 65536
	block := metadata.NewIntervalBlockMetadata(false)

	for i := 0; i < 8; i++ {
		alloc := place(t, block, size, 65536, i, i, 0)
		require.Equal(t, uint64(0), alloc.Offset)
		require.Equal(t, i > 0, alloc.Aliased)
	}

	require.Equal(t, uint64(size), block.Size())
	require.NoError(t, block.Validate())

	var stats memutils.DetailedStatistics
	stats.Clear()
	block.AddDetailedStatistics(&stats)
	require.Equal(t, 7, stats.AliasedAllocationCount)
	require.Equal(t, uint64(7*size), stats.SavedBytes())
}

func TestIntervalDisableReuse(t *testing.T) {
	const size = 65536
	block := metadata.NewIntervalBlockMetadata(true)

	for i := 0; i < 8; i++ {
		alloc := place(t, block, size, 65536, i, i, 0)
		require.Equal(t, uint64(i*size), alloc.Offset)
		require.False(t, alloc.Aliased)
	}

	require.Equal(t, uint64(8*size), block.Size())
	require.NoError(t, block.Validate())
}

func TestIntervalStrategies(t *testing.T) {
	build := func() *metadata.IntervalBlockMetadata {
		block := metadata.NewIntervalBlockMetadata(false)
		place(t, block, 100, 1, 0, 0, 0)
		place(t, block, 10, 1, 0, 5, 0)
		place(t, block, 30, 1, 0, 0, 0)
		place(t, block, 10, 1, 0, 5, 0)
		return block
	}

	firstFit := build()
	alloc := place(t, firstFit, 20, 1, 1, 1, 0)
	require.Equal(t, uint64(0), alloc.Offset)
	require.True(t, alloc.Aliased)

	bestFit := build()
	alloc = place(t, bestFit, 20, 1, 1, 1, metadata.AllocationStrategyMinMemory)
	require.Equal(t, uint64(110), alloc.Offset)
	require.True(t, alloc.Aliased)

	require.NoError(t, firstFit.Validate())
	require.NoError(t, bestFit.Validate())
}

func TestIntervalFreshPaddingIsNotAliased(t *testing.T) {
	block := metadata.NewIntervalBlockMetadata(false)

	place(t, block, 10, 1, 0, 5, 0)
	// leaves [10, 64) as never-occupied padding
	place(t, block, 10, 64, 0, 5, 0)

	alloc := place(t, block, 32, 16, 1, 1, 0)
	require.Equal(t, uint64(16), alloc.Offset)
	require.False(t, alloc.Aliased)
	require.NoError(t, block.Validate())
}

func TestIntervalAllocErrors(t *testing.T) {
	block := metadata.NewIntervalBlockMetadata(false)

	_, err := block.CreateAllocationRequest(0, 16, 0)
	require.Error(t, err)

	_, err = block.CreateAllocationRequest(16, 12, 0)
	require.Error(t, err)

	req, err := block.CreateAllocationRequest(16, 16, 0)
	require.NoError(t, err)

	_, err = block.Alloc(req, 3, 2, nil)
	require.Error(t, err)

	block.Expire(5)
	_, err = block.Alloc(req, 4, 6, nil)
	require.Error(t, err)

	_, err = block.Allocation(metadata.NoAllocation)
	require.Error(t, err)
}

func TestIntervalRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	alignments := []uint64{256, 1024, 4096}

	for _, strategy := range []metadata.AllocationStrategy{0, metadata.AllocationStrategyMinMemory} {
		block := metadata.NewIntervalBlockMetadata(false)

		start := 0
		var allocs []metadata.Suballocation
		for i := 0; i < 300; i++ {
			start += rng.Intn(2)
			end := start + rng.Intn(6)
			size := uint64(1+rng.Intn(8)) * 1024
			alignment := alignments[rng.Intn(len(alignments))]

			alloc := place(t, block, size, alignment, start, end, strategy)
			require.Zero(t, alloc.Offset%alignment)
			allocs = append(allocs, alloc)
		}

		require.NoError(t, block.Validate())

		for i := range allocs {
			for j := i + 1; j < len(allocs); j++ {
				if allocs[i].Overlaps(allocs[j]) {
					require.False(t, allocs[i].LiveTogether(allocs[j]))
				}
			}
		}
	}
}

func TestIntervalJson(t *testing.T) {
	block := metadata.NewIntervalBlockMetadata(false)
	place(t, block, 100, 1, 0, 0, 0)
	place(t, block, 50, 1, 1, 1, 0)

	writer := jwriter.NewWriter()
	obj := writer.Object()
	block.BlockJsonData(&obj)
	obj.End()

	out := string(writer.Bytes())
	require.True(t, strings.HasPrefix(out, `{"TotalBytes":100,"UnusedBytes":50,"Allocations":2,"AliasedAllocations":1,"UnusedRanges":1,"Suballocations":[`), out)
	require.Contains(t, out, `{"Offset":50,"Size":50,"Type":"FREE"}`)
}

func TestIntervalVisitAllRegions(t *testing.T) {
	block := metadata.NewIntervalBlockMetadata(false)
	place(t, block, 100, 1, 0, 0, 0)
	place(t, block, 50, 1, 1, 1, 0)

	var allocated, free int
	err := block.VisitAllRegions(func(handle metadata.BlockAllocationHandle, offset uint64, size uint64, userData any, isFree bool) error {
		if isFree {
			free++
			require.Equal(t, metadata.NoAllocation, handle)
		} else {
			allocated++
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, allocated)
	require.Equal(t, 1, free)
}

func TestAllocationStrategyString(t *testing.T) {
	require.Equal(t, "FirstFit", metadata.AllocationStrategy(0).String())
	require.Equal(t, "MinMemory", metadata.AllocationStrategyMinMemory.String())
}
