package metadata

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/framegraph/memutils"
	"golang.org/x/exp/slices"
)

type freeRange struct {
	offset uint64
	size   uint64
	// occupied is true when every byte of the range belonged to an allocation that has expired
	occupied bool
}

func (r freeRange) end() uint64 {
	return r.offset + r.size
}

// IntervalBlockMetadata is a BlockMetadata implementation for memory whose allocations each live for
// a known span of a timeline, such as the passes of a frame. Allocations must be made in order of their
// start position. Before each allocation, the consumer calls Expire with the allocation's start position
// so that the bytes of every allocation whose span has ended are returned to the free list. Free regions
// are chosen first-fit and the block grows at its high-water mark when none fit.
//
// Bytes returned by expired allocations are never coalesced with bytes that were never occupied, so
// every allocation knows exactly whether its bytes alias a previous occupant.
type IntervalBlockMetadata struct {
	BlockMetadataBase

	disableReuse  bool
	expiredBefore int

	free        []freeRange
	live        []BlockAllocationHandle
	allocations []Suballocation
}

var _ BlockMetadata = &IntervalBlockMetadata{}

// NewIntervalBlockMetadata creates an empty block. When disableReuse is true, free regions are never
// used and every allocation is placed at the high-water mark.
func NewIntervalBlockMetadata(disableReuse bool) *IntervalBlockMetadata {
	return &IntervalBlockMetadata{
		disableReuse:  disableReuse,
		expiredBefore: math.MinInt,
	}
}

func (m *IntervalBlockMetadata) getAllocation(handle BlockAllocationHandle) (*Suballocation, error) {
	if handle == NoAllocation || handle >= BlockAllocationHandle(len(m.allocations)) {
		return nil, errors.Newf("requested allocation %d could not be found", handle)
	}

	return &m.allocations[handle], nil
}

func (m *IntervalBlockMetadata) AllocationCount() int {
	return len(m.allocations)
}

func (m *IntervalBlockMetadata) LiveAllocationCount() int {
	return len(m.live)
}

func (m *IntervalBlockMetadata) FreeRegionsCount() int {
	return len(m.free)
}

func (m *IntervalBlockMetadata) SumFreeSize() uint64 {
	var sum uint64
	for _, r := range m.free {
		sum += r.size
	}
	return sum
}

func (m *IntervalBlockMetadata) IsEmpty() bool {
	return len(m.live) == 0
}

func (m *IntervalBlockMetadata) CreateAllocationRequest(allocSize uint64, allocAlignment uint64, strategy AllocationStrategy) (AllocationRequest, error) {
	if allocSize == 0 {
		return AllocationRequest{}, errors.New("allocation size must be greater than 0")
	}

	err := memutils.CheckPow2(allocAlignment, "allocAlignment")
	if err != nil {
		return AllocationRequest{}, err
	}

	if !m.disableReuse {
		bestIndex := -1
		for index, r := range m.free {
			offset := memutils.AlignUp(r.offset, allocAlignment)
			if offset+allocSize > r.end() {
				continue
			}

			if strategy&AllocationStrategyMinMemory == 0 {
				bestIndex = index
				break
			}

			if bestIndex < 0 || r.size < m.free[bestIndex].size {
				bestIndex = index
			}
		}

		if bestIndex >= 0 {
			r := m.free[bestIndex]
			return AllocationRequest{
				Offset:        memutils.AlignUp(r.offset, allocAlignment),
				Size:          allocSize,
				Aliased:       r.occupied,
				Type:          AllocationRequestFreeRange,
				AlgorithmData: uint64(bestIndex),
			}, nil
		}
	}

	return AllocationRequest{
		Offset: memutils.AlignUp(m.size, allocAlignment),
		Size:   allocSize,
		Type:   AllocationRequestEndOfBlock,
	}, nil
}

func (m *IntervalBlockMetadata) Alloc(request AllocationRequest, start, end int, userData any) (BlockAllocationHandle, error) {
	if start > end {
		return NoAllocation, errors.Newf("allocation span [%d, %d] ends before it starts", start, end)
	}

	if start < m.expiredBefore {
		return NoAllocation, errors.Newf("allocation starts at %d, but allocations ending before %d have already expired", start, m.expiredBefore)
	}

	switch request.Type {
	case AllocationRequestFreeRange:
		index := int(request.AlgorithmData)
		if index >= len(m.free) {
			return NoAllocation, errors.Newf("allocation request refers to free range %d, but there are only %d", index, len(m.free))
		}

		r := m.free[index]
		if request.Offset < r.offset || request.Offset+request.Size > r.end() {
			return NoAllocation, errors.Newf("allocation request [%d, %d) no longer fits in free range [%d, %d)",
				request.Offset, request.Offset+request.Size, r.offset, r.end())
		}

		if request.Aliased != r.occupied {
			return NoAllocation, errors.New("allocation request was made against a different free range")
		}

		var replacement []freeRange
		if request.Offset > r.offset {
			replacement = append(replacement, freeRange{offset: r.offset, size: request.Offset - r.offset, occupied: r.occupied})
		}
		if request.Offset+request.Size < r.end() {
			tailOffset := request.Offset + request.Size
			replacement = append(replacement, freeRange{offset: tailOffset, size: r.end() - tailOffset, occupied: r.occupied})
		}

		m.free = slices.Replace(m.free, index, index+1, replacement...)
	case AllocationRequestEndOfBlock:
		if request.Offset < m.size {
			return NoAllocation, errors.Newf("allocation request at offset %d is below the end of the block at %d", request.Offset, m.size)
		}

		if request.Offset > m.size {
			m.insertFree(freeRange{offset: m.size, size: request.Offset - m.size, occupied: false})
		}

		m.size = request.Offset + request.Size
	default:
		return NoAllocation, errors.Newf("allocation request type %s was received by an incompatible metadata", request.Type)
	}

	handle := BlockAllocationHandle(len(m.allocations))
	m.allocations = append(m.allocations, Suballocation{
		Offset:   request.Offset,
		Size:     request.Size,
		Start:    start,
		End:      end,
		UserData: userData,
		Aliased:  request.Aliased,
	})
	m.live = append(m.live, handle)

	return handle, nil
}

func (m *IntervalBlockMetadata) Expire(position int) int {
	if position > m.expiredBefore {
		m.expiredBefore = position
	}

	expired := 0
	remaining := m.live[:0]
	for _, handle := range m.live {
		alloc := m.allocations[handle]
		if alloc.End >= position {
			remaining = append(remaining, handle)
			continue
		}

		m.insertFree(freeRange{offset: alloc.Offset, size: alloc.Size, occupied: true})
		expired++
	}
	m.live = remaining

	return expired
}

func (m *IntervalBlockMetadata) insertFree(r freeRange) {
	index := slices.IndexFunc(m.free, func(other freeRange) bool {
		return other.offset > r.offset
	})
	if index < 0 {
		index = len(m.free)
	}

	if index < len(m.free) {
		next := m.free[index]
		if next.occupied == r.occupied && r.end() == next.offset {
			r.size += next.size
			m.free = slices.Delete(m.free, index, index+1)
		}
	}

	if index > 0 {
		prev := m.free[index-1]
		if prev.occupied == r.occupied && prev.end() == r.offset {
			m.free[index-1].size += r.size
			return
		}
	}

	m.free = slices.Insert(m.free, index, r)
}

// Validate checks the free list and then checks every pair of allocations: allocations that share
// bytes must never be live at the same time, and an allocation is aliased exactly when an earlier,
// expired allocation shared its bytes.
func (m *IntervalBlockMetadata) Validate() error {
	var prevEnd uint64
	for index, r := range m.free {
		if r.size == 0 {
			return errors.Errorf("free range %d is empty", index)
		}

		if index > 0 && r.offset < prevEnd {
			return errors.Errorf("free range at offset %d overlaps the previous free range", r.offset)
		}

		if r.end() > m.size {
			return errors.Errorf("free range at offset %d ends at %d, past the end of the block at %d", r.offset, r.end(), m.size)
		}

		prevEnd = r.end()
	}

	for handle, alloc := range m.allocations {
		if alloc.Offset+alloc.Size > m.size {
			return errors.Errorf("allocation %d ends at %d, past the end of the block at %d", handle, alloc.Offset+alloc.Size, m.size)
		}

		for _, r := range m.free {
			if m.isLive(BlockAllocationHandle(handle)) && memutils.RangesOverlap(alloc.Offset, alloc.Size, r.offset, r.size) {
				return errors.Errorf("live allocation %d overlaps the free range at offset %d", handle, r.offset)
			}
		}

		needsAlias := false
		for otherHandle, other := range m.allocations {
			if otherHandle == handle || !alloc.Overlaps(other) {
				continue
			}

			if alloc.LiveTogether(other) {
				return errors.Errorf("allocations %d [%d, %d] and %d [%d, %d] share memory while both are live",
					handle, alloc.Start, alloc.End, otherHandle, other.Start, other.End)
			}

			if other.End < alloc.Start {
				needsAlias = true
			}
		}

		if needsAlias != alloc.Aliased {
			return errors.Errorf("allocation %d has aliased flag %t, but previous occupants say it should be %t", handle, alloc.Aliased, needsAlias)
		}
	}

	return nil
}

func (m *IntervalBlockMetadata) isLive(handle BlockAllocationHandle) bool {
	return slices.Contains(m.live, handle)
}

func (m *IntervalBlockMetadata) AddDetailedStatistics(stats *memutils.DetailedStatistics) {
	stats.BlockCount++
	stats.BlockBytes += m.size

	for _, alloc := range m.allocations {
		stats.AddAllocation(alloc.Size, alloc.Aliased)
	}

	for _, r := range m.free {
		stats.AddUnusedRange(r.size)
	}
}

func (m *IntervalBlockMetadata) AddStatistics(stats *memutils.Statistics) {
	stats.BlockCount++
	stats.AllocationCount += len(m.allocations)
	stats.BlockBytes += m.size

	for _, alloc := range m.allocations {
		stats.AllocationBytes += alloc.Size
	}
}

func (m *IntervalBlockMetadata) VisitAllRegions(handleBlock func(handle BlockAllocationHandle, offset uint64, size uint64, userData any, free bool) error) error {
	for handle, alloc := range m.allocations {
		err := handleBlock(BlockAllocationHandle(handle), alloc.Offset, alloc.Size, alloc.UserData, false)
		if err != nil {
			return err
		}
	}

	for _, r := range m.free {
		err := handleBlock(NoAllocation, r.offset, r.size, nil, true)
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *IntervalBlockMetadata) BlockJsonData(json *jwriter.ObjectState) {
	var stats memutils.DetailedStatistics
	stats.Clear()
	m.AddDetailedStatistics(&stats)

	m.BlockMetadataBase.BlockJsonData(json, m.SumFreeSize(), stats.AllocationCount, stats.AliasedAllocationCount, stats.UnusedRangeCount)

	arrayState := json.Name("Suballocations").Array()
	defer arrayState.End()

	for _, alloc := range m.allocations {
		obj := arrayState.Object()
		obj.Name("Offset").Int(int(alloc.Offset))
		obj.Name("Size").Int(int(alloc.Size))
		obj.Name("Start").Int(alloc.Start)
		obj.Name("End").Int(alloc.End)
		obj.Name("Aliased").Bool(alloc.Aliased)

		if name, ok := alloc.UserData.(fmt.Stringer); ok {
			obj.Name("Name").String(name.String())
		}
		obj.End()
	}

	for _, r := range m.free {
		obj := arrayState.Object()
		obj.Name("Offset").Int(int(r.offset))
		obj.Name("Size").Int(int(r.size))
		obj.Name("Type").String("FREE")
		obj.End()
	}
}

func (m *IntervalBlockMetadata) Allocation(allocHandle BlockAllocationHandle) (Suballocation, error) {
	alloc, err := m.getAllocation(allocHandle)
	if err != nil {
		return Suballocation{}, err
	}

	return *alloc, nil
}
