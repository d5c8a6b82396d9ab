package storage

import (
	"github.com/vkngwrapper/framegraph/memutils/metadata"
)

// CreateOptions contains optional settings when creating a storage
type CreateOptions struct {
	// Flags indicates specific storage behaviors to activate or deactivate
	Flags CreateFlags

	// AllocationStrategy chooses between the free heap ranges a resource fits in. The default is the
	// first range that fits; metadata.AllocationStrategyMinMemory picks the smallest.
	AllocationStrategy metadata.AllocationStrategy
	// HeapAlignment is the alignment of every placement within a heap. It must be a power of two.
	// 0 uses resource.PlacementAlignment.
	HeapAlignment uint64

	// PassDebugBufferSize, when not 0, creates a buffer of this many bytes for every pass. The
	// resource factory must implement DebugBufferFactory.
	PassDebugBufferSize uint64

	// HeapCallbacks is an optional set of callbacks that will be executed when heaps are created
	// and destroyed
	HeapCallbacks *HeapCallbackOptions
}
