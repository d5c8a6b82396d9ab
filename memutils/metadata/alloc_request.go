package metadata

// AllocationRequestType is an enum that indicates the type of allocation that is being made.
// It is returned in AllocationRequest from CreateAllocationRequest
type AllocationRequestType uint32

const (
	// AllocationRequestFreeRange indicates that the allocation will be carved out of one of
	// the block's free regions
	AllocationRequestFreeRange AllocationRequestType = iota
	// AllocationRequestEndOfBlock indicates that no free region could hold the allocation and
	// that it will be placed at the block's aligned high-water mark, growing the block
	AllocationRequestEndOfBlock
)

var allocationRequestMapping = map[AllocationRequestType]string{
	AllocationRequestFreeRange:  "FreeRange",
	AllocationRequestEndOfBlock: "EndOfBlock",
}

func (t AllocationRequestType) String() string {
	return allocationRequestMapping[t]
}

// AllocationRequest is a type returned from BlockMetadata.CreateAllocationRequest which indicates where and how
// the metadata intends to place new memory. It is committed to the metadata with BlockMetadata.Alloc
type AllocationRequest struct {
	// Offset is the aligned offset in bytes the allocation will be placed at
	Offset uint64
	// Size is the size in bytes of the allocation
	Size uint64
	// Aliased is true when the allocation's bytes were occupied by an allocation that has
	// since expired
	Aliased bool
	// Type identifies the sort of allocation this request represents
	Type AllocationRequestType

	// AlgorithmData is arbitrary data used by the BlockMetadata implementation for internal
	// purposes
	AlgorithmData uint64
}
