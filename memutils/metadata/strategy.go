package metadata

// AllocationStrategy exposes several options for choosing the location of a new memory allocation.
// If none is chosen, the first free region large enough is used. Free regions are kept in offset
// order, so the first fit is also the lowest offset.
type AllocationStrategy uint32

const (
	// AllocationStrategyMinMemory selects the allocation strategy that chooses the smallest-possible
	// free range for the allocation to minimize memory usage and fragmentation, possibly at the expense of
	// allocation time
	AllocationStrategyMinMemory AllocationStrategy = 1 << iota
)

var strategyMapping = map[AllocationStrategy]string{
	AllocationStrategyMinMemory: "MinMemory",
}

func (s AllocationStrategy) String() string {
	if s == 0 {
		return "FirstFit"
	}
	return strategyMapping[s]
}
