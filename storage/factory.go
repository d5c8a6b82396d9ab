package storage

import (
	"github.com/vkngwrapper/framegraph/resource"
)

//go:generate mockgen -source factory.go -destination ./mocks/factory.go -package mocks

// Heap is a single block of device memory that resources of one heap aliasing group are placed in
type Heap interface {
	Size() uint64
	Group() resource.HeapAliasingGroup
	Destroy() error
}

// Resource is a physical texture or buffer bound to a heap
type Resource interface {
	SetDebugName(name string)
	Destroy() error
}

// DescriptorKind identifies the kind of view a Descriptor is
type DescriptorKind uint8

const (
	DescriptorKindRenderTarget DescriptorKind = iota
	DescriptorKindDepthStencil
)

var descriptorKindMapping = map[DescriptorKind]string{
	DescriptorKindRenderTarget: "RenderTarget",
	DescriptorKindDepthStencil: "DepthStencil",
}

func (k DescriptorKind) String() string {
	return descriptorKindMapping[k]
}

// Descriptor is a view of a texture that a pass binds as an attachment
type Descriptor interface {
	Kind() DescriptorKind
}

type Texture interface {
	Resource
	// RenderTargetDescriptor returns the texture's render target view, if it was created with one
	RenderTargetDescriptor() (Descriptor, bool)
	// DepthStencilDescriptor returns the texture's depth/stencil view, if it was created with one
	DepthStencilDescriptor() (Descriptor, bool)
}

type Buffer interface {
	Resource
}

type HeapCreateInfo struct {
	Name  string
	Group resource.HeapAliasingGroup
	Size  uint64
	// Alignment is the alignment of every offset resources will be placed at
	Alignment uint64
}

// HeapFactory creates the heaps resources are placed in
type HeapFactory interface {
	NewHeap(createInfo HeapCreateInfo) (Heap, error)
}

type TextureCreateInfo struct {
	Format         resource.Format
	InitialState   resource.ResourceState
	ExpectedStates resource.ResourceState
	// ClearValue is nil unless the texture is expected to be used as a render target or written depth
	ClearValue *resource.ClearValue

	Heap       Heap
	HeapOffset uint64
	// SlotSize is the number of bytes reserved for the texture at HeapOffset. The texture must not
	// need more.
	SlotSize uint64

	RenderTargetView bool
	DepthStencilView bool
}

type BufferCreateInfo struct {
	Format         resource.Format
	InitialState   resource.ResourceState
	ExpectedStates resource.ResourceState

	Heap       Heap
	HeapOffset uint64
	// SlotSize is the number of bytes reserved for the buffer at HeapOffset. The buffer must not
	// need more.
	SlotSize uint64
}

// ResourceFactory creates physical resources at an offset within a heap
type ResourceFactory interface {
	NewTexture(createInfo TextureCreateInfo) (Texture, error)
	NewBuffer(createInfo BufferCreateInfo) (Buffer, error)
}

// AllocationInfo is the heap space one resource needs on a device
type AllocationInfo struct {
	Size      uint64
	Alignment uint64
}

// AllocationInfoQuerier is implemented by resource factories that can report how much memory a
// resource really needs before it is placed. Resources created by factories that do not implement
// it are sized by resource.Format.ResourceSizeInBytes.
type AllocationInfoQuerier interface {
	AllocationInfo(format resource.Format, expectedStates resource.ResourceState) (AllocationInfo, error)
}

// DebugBufferFactory is implemented by resource factories that can create a readback buffer
// for each pass. It is required when CreateOptions.PassDebugBufferSize is not 0.
type DebugBufferFactory interface {
	NewDebugBuffer(passName string, size uint64) (Buffer, error)
}
