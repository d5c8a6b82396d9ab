package memutils

import "math"

// Statistics sums up the heaps ("blocks") created for a frame graph and the resources
// ("allocations") placed in them. Because resources alias each other, AllocationBytes
// may be larger than BlockBytes.
type Statistics struct {
	BlockCount      int
	AllocationCount int
	BlockBytes      uint64
	AllocationBytes uint64
}

func (s *Statistics) Clear() {
	s.BlockCount = 0
	s.AllocationCount = 0
	s.BlockBytes = 0
	s.AllocationBytes = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.BlockCount += other.BlockCount
	s.AllocationCount += other.AllocationCount
	s.BlockBytes += other.BlockBytes
	s.AllocationBytes += other.AllocationBytes
}

// SavedBytes returns the number of bytes that aliasing saved compared to giving every
// allocation its own memory
func (s *Statistics) SavedBytes() uint64 {
	if s.AllocationBytes < s.BlockBytes {
		return 0
	}
	return s.AllocationBytes - s.BlockBytes
}

type DetailedStatistics struct {
	Statistics
	AliasedAllocationCount int
	UnusedRangeCount       int
	AllocationSizeMin      uint64
	AllocationSizeMax      uint64
	UnusedRangeSizeMin     uint64
	UnusedRangeSizeMax     uint64
}

func (s *DetailedStatistics) Clear() {
	s.Statistics.Clear()
	s.AliasedAllocationCount = 0
	s.UnusedRangeCount = 0
	s.AllocationSizeMin = math.MaxUint64
	s.AllocationSizeMax = 0
	s.UnusedRangeSizeMin = math.MaxUint64
	s.UnusedRangeSizeMax = 0
}

func (s *DetailedStatistics) AddUnusedRange(size uint64) {
	s.UnusedRangeCount++

	if size < s.UnusedRangeSizeMin {
		s.UnusedRangeSizeMin = size
	}

	if size > s.UnusedRangeSizeMax {
		s.UnusedRangeSizeMax = size
	}
}

// AddAllocation records a single placed allocation. aliased should be true when the
// allocation reuses memory that a different, expired allocation occupied before it.
func (s *DetailedStatistics) AddAllocation(size uint64, aliased bool) {
	s.AllocationCount++
	s.AllocationBytes += size

	if aliased {
		s.AliasedAllocationCount++
	}

	if size < s.AllocationSizeMin {
		s.AllocationSizeMin = size
	}

	if size > s.AllocationSizeMax {
		s.AllocationSizeMax = size
	}
}

func (s *DetailedStatistics) AddDetailedStatistics(other *DetailedStatistics) {
	s.Statistics.AddStatistics(&other.Statistics)
	s.AliasedAllocationCount += other.AliasedAllocationCount
	s.UnusedRangeCount += other.UnusedRangeCount

	if other.UnusedRangeSizeMin < s.UnusedRangeSizeMin {
		s.UnusedRangeSizeMin = other.UnusedRangeSizeMin
	}

	if other.UnusedRangeSizeMax > s.UnusedRangeSizeMax {
		s.UnusedRangeSizeMax = other.UnusedRangeSizeMax
	}

	if other.AllocationSizeMin < s.AllocationSizeMin {
		s.AllocationSizeMin = other.AllocationSizeMin
	}

	if other.AllocationSizeMax > s.AllocationSizeMax {
		s.AllocationSizeMax = other.AllocationSizeMax
	}
}
