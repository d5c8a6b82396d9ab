package storage

import "github.com/vkngwrapper/core/v2/common"

// CreateFlags indicate specific storage behaviors to activate or deactivate
type CreateFlags int32

var storageCreateFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	storageCreateFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return storageCreateFlagsMapping.FlagsToString(f)
}

const (
	// StorageCreateExternallySynchronized ensures that this storage and the pass contexts created from
	// it will not be synchronized internally. The consumer must guarantee they are used from only one
	// thread at a time or are synchronized by some other mechanism.
	StorageCreateExternallySynchronized CreateFlags = 1 << iota
	// StorageCreateUniversalHeaps places every resource in a single heap aliasing group. Use this on
	// devices whose heaps can hold render targets, other textures, and buffers together.
	StorageCreateUniversalHeaps
	// StorageCreateMergeReadStates assigns each run of consecutive read-only usages of a resource the
	// union of their read states, so no transitions are emitted inside the run
	StorageCreateMergeReadStates
	// StorageCreateDisableAliasing gives every resource its own bytes of its group's heap. This wastes
	// memory and is only useful to rule out aliasing while debugging corruption.
	StorageCreateDisableAliasing
)

func init() {
	StorageCreateExternallySynchronized.Register("StorageCreateExternallySynchronized")
	StorageCreateUniversalHeaps.Register("StorageCreateUniversalHeaps")
	StorageCreateMergeReadStates.Register("StorageCreateMergeReadStates")
	StorageCreateDisableAliasing.Register("StorageCreateDisableAliasing")
}
