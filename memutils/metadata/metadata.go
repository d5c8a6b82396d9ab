package metadata

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/framegraph/memutils"
)

// BlockMetadata represents a single heap of memory whose suballocations each live for a span of
// a timeline. It places suballocations within the block, reuses bytes whose occupants have expired,
// and allows the placements to be enumerated and queried.
type BlockMetadata interface {
	// Size retrieves the size in bytes of the block. Blocks grow as allocations are placed past their
	// high-water mark, so this value is only final once every allocation has been made.
	Size() uint64

	// Validate performs internal consistency checks on the metadata. These checks may be expensive, depending
	// on the implementation. When the implementation is functioning correctly, it should not be possible
	// for this method to return an error, but this may assist in diagnosing issues with the implementation.
	Validate() error
	// AllocationCount returns the number of suballocations that have been placed in the block, whether or
	// not they have expired since.
	AllocationCount() int
	// LiveAllocationCount returns the number of suballocations that have not yet expired
	LiveAllocationCount() int
	// FreeRegionsCount returns the number of unique regions of free memory in the block.
	FreeRegionsCount() int
	// SumFreeSize returns the number of free bytes of memory in the block.
	SumFreeSize() uint64

	// IsEmpty will return true if this block has no live suballocations
	IsEmpty() bool

	// VisitAllRegions will call the provided callback once for each allocation and free region in
	// the block. This should generally not be done except for diagnostic purposes.
	VisitAllRegions(handleBlock func(handle BlockAllocationHandle, offset uint64, size uint64, userData any, free bool) error) error

	// Allocation returns the full Suballocation record for the provided handle
	Allocation(allocHandle BlockAllocationHandle) (Suballocation, error)

	// AddDetailedStatistics sums this block's allocation statistics into the statistics currently present
	// in the provided memutils.DetailedStatistics object.
	AddDetailedStatistics(stats *memutils.DetailedStatistics)
	// AddStatistics sums this block's allocation statistics into the statistics currently present in the
	// provided memutils.Statistics object.
	AddStatistics(stats *memutils.Statistics)

	// BlockJsonData populates a json object with information about this block
	BlockJsonData(json *jwriter.ObjectState)

	// CreateAllocationRequest retrieves an AllocationRequest object indicating where and how the implementation
	// would prefer to place the requested memory. That object can be passed to Alloc to commit the
	// allocation.
	//
	// allocSize - the size in bytes of the requested allocation
	// allocAlignment - the alignment of the requested allocation, which must be a power of two
	// strategy - Whether to prioritize memory usage, memory offset, or allocation speed when choosing
	// a place for the requested allocation.
	CreateAllocationRequest(
		allocSize uint64, allocAlignment uint64,
		strategy AllocationStrategy,
	) (AllocationRequest, error)
	// Alloc commits an AllocationRequest object, creating the suballocation within the block based
	// on the data described in the AllocationRequest. start and end are the inclusive timeline positions
	// during which the allocation is live. The implementation must return an error if the request is
	// no longer valid.
	Alloc(request AllocationRequest, start, end int, userData any) (BlockAllocationHandle, error)

	// Expire returns the bytes of every live allocation whose end position is before the provided
	// position to the block's free regions, and returns the number of allocations that expired.
	Expire(position int) int
}

// BlockMetadataBase is a simple struct that provides a few shared utilities for BlockMetadata
// implementations in the memutils module.
type BlockMetadataBase struct {
	size uint64
}

// Size returns the size of the block in bytes
func (m *BlockMetadataBase) Size() uint64 { return m.size }

// BlockJsonData populates a json object with information about this block
func (m *BlockMetadataBase) BlockJsonData(json *jwriter.ObjectState, unusedBytes uint64, allocationCount, aliasedCount, unusedRangeCount int) {
	json.Name("TotalBytes").Int(int(m.Size()))
	json.Name("UnusedBytes").Int(int(unusedBytes))
	json.Name("Allocations").Int(allocationCount)
	json.Name("AliasedAllocations").Int(aliasedCount)
	json.Name("UnusedRanges").Int(unusedRangeCount)
}
