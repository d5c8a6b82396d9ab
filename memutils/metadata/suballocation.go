package metadata

import "math"

type BlockAllocationHandle uint64

const (
	NoAllocation BlockAllocationHandle = math.MaxUint64
)

// Suballocation is a placed allocation: a byte range of the block that is live for the inclusive
// timeline positions [Start, End]
type Suballocation struct {
	Offset   uint64
	Size     uint64
	Start    int
	End      int
	UserData any
	// Aliased is true when the bytes were occupied by a different, expired allocation before this one
	Aliased bool
}

// Overlaps returns true if both suballocations share at least one byte of the block
func (s Suballocation) Overlaps(other Suballocation) bool {
	return s.Offset < other.Offset+other.Size && other.Offset < s.Offset+s.Size
}

// LiveTogether returns true if the timeline spans of both suballocations share at least one position
func (s Suballocation) LiveTogether(other Suballocation) bool {
	return s.Start <= other.End && other.Start <= s.End
}
