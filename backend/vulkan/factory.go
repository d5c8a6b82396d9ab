// Package vulkan creates the heaps and placed resources of a storage on a Vulkan device, and
// translates resource states and tracked barriers into Vulkan synchronization scopes.
package vulkan

import (
	"log/slog"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/framegraph/memutils"
	"github.com/vkngwrapper/framegraph/resource"
	"github.com/vkngwrapper/framegraph/storage"
)

const defaultPriority float32 = 0.5

type Heap struct {
	name      string
	group     resource.HeapAliasingGroup
	size      uint64
	memory    DeviceMemory
	destroyed bool
}

func (h *Heap) Name() string                      { return h.name }
func (h *Heap) Size() uint64                      { return h.size }
func (h *Heap) Group() resource.HeapAliasingGroup { return h.group }
func (h *Heap) Memory() DeviceMemory              { return h.memory }

func (h *Heap) Destroy() error {
	if h.destroyed {
		return errors.Newf("heap %q was already destroyed", h.name)
	}
	h.destroyed = true
	h.memory.Free()
	return nil
}

type Descriptor struct {
	kind storage.DescriptorKind
	view DeviceImageView
}

func (d *Descriptor) Kind() storage.DescriptorKind {
	return d.kind
}

func (d *Descriptor) View() DeviceImageView {
	return d.view
}

type Texture struct {
	name         string
	image        DeviceImage
	heap         *Heap
	heapOffset   uint64
	initialState resource.ResourceState
	subresources core1_0.ImageSubresourceRange

	rt *Descriptor
	ds *Descriptor

	destroyed bool
}

func (t *Texture) SetDebugName(name string) { t.name = name }
func (t *Texture) Name() string             { return t.name }
func (t *Texture) Image() DeviceImage       { return t.image }
func (t *Texture) Heap() *Heap              { return t.heap }
func (t *Texture) HeapOffset() uint64       { return t.heapOffset }

func (t *Texture) RenderTargetDescriptor() (storage.Descriptor, bool) {
	if t.rt == nil {
		return nil, false
	}
	return t.rt, true
}

func (t *Texture) DepthStencilDescriptor() (storage.Descriptor, bool) {
	if t.ds == nil {
		return nil, false
	}
	return t.ds, true
}

// InitialTransition is the barrier that moves the freshly created image out of the undefined layout
// into the state it was created for. TranslateBarriers returns it for the texture's initial barrier.
func (t *Texture) InitialTransition() BarrierInfo {
	return BarrierInfo{
		Texture: true,
		Src:     Scope{Stages: core1_0.PipelineStageTopOfPipe, Layout: core1_0.ImageLayoutUndefined},
		Dst:     ScopeForState(t.initialState, true),
	}
}

// ImageMemoryBarrier builds the image barrier for a translated barrier on this texture. The barrier
// does not transfer queue family ownership.
func (t *Texture) ImageMemoryBarrier(info BarrierInfo, queueFamilyIndex int) core1_0.ImageMemoryBarrier {
	return core1_0.ImageMemoryBarrier{
		SrcAccessMask:       info.Src.Access,
		DstAccessMask:       info.Dst.Access,
		OldLayout:           info.Src.Layout,
		NewLayout:           info.Dst.Layout,
		SrcQueueFamilyIndex: queueFamilyIndex,
		DstQueueFamilyIndex: queueFamilyIndex,
		Image:               t.image.VulkanImage(),
		SubresourceRange:    t.subresources,
	}
}

func (t *Texture) Destroy() error {
	if t.destroyed {
		return errors.Newf("texture %q was already destroyed", t.name)
	}
	t.destroyed = true

	if t.rt != nil {
		t.rt.view.Destroy()
	}
	if t.ds != nil {
		t.ds.view.Destroy()
	}
	t.image.Destroy()
	return nil
}

type Buffer struct {
	name       string
	buffer     DeviceBuffer
	heap       *Heap
	heapOffset uint64
	size       uint64
	destroyed  bool
}

func (b *Buffer) SetDebugName(name string) { b.name = name }
func (b *Buffer) Name() string             { return b.name }
func (b *Buffer) Buffer() DeviceBuffer     { return b.buffer }
func (b *Buffer) Heap() *Heap              { return b.heap }
func (b *Buffer) HeapOffset() uint64       { return b.heapOffset }

// BufferMemoryBarrier builds the buffer barrier for a translated barrier on this buffer. The barrier
// does not transfer queue family ownership.
func (b *Buffer) BufferMemoryBarrier(info BarrierInfo, queueFamilyIndex int) core1_0.BufferMemoryBarrier {
	return core1_0.BufferMemoryBarrier{
		SrcAccessMask:       info.Src.Access,
		DstAccessMask:       info.Dst.Access,
		SrcQueueFamilyIndex: queueFamilyIndex,
		DstQueueFamilyIndex: queueFamilyIndex,
		Buffer:              b.buffer.VulkanBuffer(),
		Offset:              0,
		Size:                int(b.size),
	}
}

func (b *Buffer) Destroy() error {
	if b.destroyed {
		return errors.Newf("buffer %q was already destroyed", b.name)
	}
	b.destroyed = true
	b.buffer.Destroy()
	return nil
}

// FactoryOptions contains the settings of a Factory
type FactoryOptions struct {
	// MemoryTypeIndex is the memory type every heap is allocated from. DeviceLocalMemoryType finds a
	// suitable one.
	MemoryTypeIndex int
	// Priority is the VK_EXT_memory_priority priority of every heap, between 0 and 1. 0 uses 0.5.
	// It is ignored when the extension is not active.
	Priority float32
}

// Factory implements storage.HeapFactory and storage.ResourceFactory on a Vulkan device. Every heap
// is a single device memory allocation and every resource is bound at its heap offset.
type Factory struct {
	logger  *slog.Logger
	device  Device
	options FactoryOptions

	allocationInfos *swiss.Map[allocationKey, storage.AllocationInfo]
}

type allocationKey struct {
	format         resource.Format
	expectedStates resource.ResourceState
}

var _ storage.HeapFactory = &Factory{}
var _ storage.ResourceFactory = &Factory{}
var _ storage.AllocationInfoQuerier = &Factory{}

func NewFactory(logger *slog.Logger, device Device, options FactoryOptions) (*Factory, error) {
	if device == nil {
		return nil, errors.New("attempted to create a factory with a nil device")
	}
	if options.MemoryTypeIndex < 0 {
		return nil, errors.Newf("invalid memory type index %d", options.MemoryTypeIndex)
	}
	if options.Priority < 0 || options.Priority > 1 {
		return nil, errors.Newf("memory priority %f is outside of [0, 1]", options.Priority)
	}
	if options.Priority == 0 {
		options.Priority = defaultPriority
	}

	return &Factory{
		logger:  logger,
		device:  device,
		options: options,

		allocationInfos: swiss.NewMap[allocationKey, storage.AllocationInfo](42),
	}, nil
}

// AllocationInfo reports the memory a resource of the provided format and usage needs on the device.
// Vulkan only reports memory requirements for created resources, so an unbound image or buffer is
// created and destroyed. Results are cached per format and usage.
func (f *Factory) AllocationInfo(format resource.Format, expectedStates resource.ResourceState) (storage.AllocationInfo, error) {
	key := allocationKey{format: format, expectedStates: expectedStates}
	if info, ok := f.allocationInfos.Get(key); ok {
		return info, nil
	}

	requirements, err := f.memoryRequirements(format, expectedStates)
	if err != nil {
		return storage.AllocationInfo{}, err
	}

	if requirements.Size <= 0 {
		return storage.AllocationInfo{}, errors.Newf("the device reported that %s needs %d bytes", format, requirements.Size)
	}
	if requirements.MemoryTypeBits&(1<<uint(f.options.MemoryTypeIndex)) == 0 {
		return storage.AllocationInfo{}, errors.Newf("%s cannot be placed in memory type %d", format, f.options.MemoryTypeIndex)
	}

	info := storage.AllocationInfo{
		Size:      uint64(requirements.Size),
		Alignment: uint64(requirements.Alignment),
	}
	f.allocationInfos.Put(key, info)

	f.logger.Debug("queried memory requirements",
		slog.String("format", format.String()),
		slog.String("expectedStates", expectedStates.String()),
		slog.Uint64("size", info.Size),
		slog.Uint64("alignment", info.Alignment),
	)
	return info, nil
}

func (f *Factory) memoryRequirements(format resource.Format, expectedStates resource.ResourceState) (*core1_0.MemoryRequirements, error) {
	if format.IsBuffer() {
		buffer, err := f.device.CreateBuffer(bufferCreateInfo(format, expectedStates))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create buffer")
		}
		defer buffer.Destroy()

		return buffer.MemoryRequirements(), nil
	}

	vkFormat, err := Format(format.PixelFormat())
	if err != nil {
		return nil, err
	}

	imageInfo, _ := imageCreateInfo(format, vkFormat, ImageUsage(expectedStates))
	image, err := f.device.CreateImage(imageInfo)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create image")
	}
	defer image.Destroy()

	return image.MemoryRequirements(), nil
}

func (f *Factory) NewHeap(createInfo storage.HeapCreateInfo) (storage.Heap, error) {
	if createInfo.Size == 0 {
		return nil, errors.Newf("heap %q cannot be empty", createInfo.Name)
	}
	if createInfo.Size > math.MaxInt {
		return nil, errors.Newf("heap %q of %d bytes is too large", createInfo.Name, createInfo.Size)
	}

	memory, err := f.device.AllocateMemory(int(createInfo.Size), f.options.MemoryTypeIndex, f.options.Priority)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to allocate memory for heap %q", createInfo.Name)
	}

	f.logger.Debug("allocated heap",
		slog.String("name", createInfo.Name),
		slog.Uint64("size", createInfo.Size),
		slog.Int("memoryType", f.options.MemoryTypeIndex),
	)

	return &Heap{
		name:   createInfo.Name,
		group:  createInfo.Group,
		size:   createInfo.Size,
		memory: memory,
	}, nil
}

func (f *Factory) checkPlacement(heap storage.Heap, offset, slotSize uint64, requirements *core1_0.MemoryRequirements) (*Heap, error) {
	vkHeap, ok := heap.(*Heap)
	if !ok {
		return nil, errors.New("the heap was not created by a vulkan factory")
	}
	if vkHeap.destroyed {
		return nil, errors.Newf("heap %q has been destroyed", vkHeap.name)
	}

	if requirements.MemoryTypeBits&(1<<uint(f.options.MemoryTypeIndex)) == 0 {
		return nil, errors.Newf("the resource cannot be placed in memory type %d", f.options.MemoryTypeIndex)
	}

	alignment := uint64(requirements.Alignment)
	if alignment > 1 {
		if err := memutils.CheckPow2(alignment, "memory requirement alignment"); err != nil {
			return nil, err
		}
		if offset&(alignment-1) != 0 {
			return nil, errors.Newf("offset %d is not aligned to the required %d bytes", offset, alignment)
		}
	}

	if slotSize > 0 && uint64(requirements.Size) > slotSize {
		return nil, errors.Newf("a resource of %d bytes does not fit in the %d bytes reserved for it at offset %d of heap %q",
			requirements.Size, slotSize, offset, vkHeap.name)
	}

	if offset+uint64(requirements.Size) > vkHeap.size {
		return nil, errors.Newf("a resource of %d bytes at offset %d does not fit in heap %q of %d bytes",
			requirements.Size, offset, vkHeap.name, vkHeap.size)
	}

	return vkHeap, nil
}

func imageCreateInfo(format resource.Format, vkFormat core1_0.Format, usage core1_0.ImageUsageFlags) (core1_0.ImageCreateInfo, core1_0.ImageViewType) {
	dimensions := format.Dimensions()
	createInfo := core1_0.ImageCreateInfo{
		Format: vkFormat,
		Extent: core1_0.Extent3D{
			Width:  int(dimensions.Width),
			Height: 1,
			Depth:  1,
		},
		MipLevels:     int(format.MipCount()),
		ArrayLayers:   int(dimensions.Depth),
		Samples:       core1_0.Samples1,
		Tiling:        core1_0.ImageTilingOptimal,
		Usage:         usage,
		SharingMode:   core1_0.SharingModeExclusive,
		InitialLayout: core1_0.ImageLayoutUndefined,
	}

	var viewType core1_0.ImageViewType
	switch format.Kind() {
	case resource.KindTexture1D:
		createInfo.ImageType = core1_0.ImageType1D
		viewType = core1_0.ImageViewType1D
		if dimensions.Depth > 1 {
			viewType = core1_0.ImageViewType1DArray
		}
	case resource.KindTexture2D:
		createInfo.ImageType = core1_0.ImageType2D
		createInfo.Extent.Height = int(dimensions.Height)
		viewType = core1_0.ImageViewType2D
		if dimensions.Depth > 1 {
			viewType = core1_0.ImageViewType2DArray
		}
	default:
		createInfo.ImageType = core1_0.ImageType3D
		createInfo.Extent.Height = int(dimensions.Height)
		createInfo.Extent.Depth = int(dimensions.Depth)
		createInfo.ArrayLayers = 1
		viewType = core1_0.ImageViewType3D
	}

	return createInfo, viewType
}

func (f *Factory) NewTexture(createInfo storage.TextureCreateInfo) (storage.Texture, error) {
	if !createInfo.Format.IsTexture() {
		return nil, errors.Newf("format %s is not a texture format", createInfo.Format)
	}

	vkFormat, err := Format(createInfo.Format.PixelFormat())
	if err != nil {
		return nil, err
	}

	imageInfo, viewType := imageCreateInfo(createInfo.Format, vkFormat, ImageUsage(createInfo.ExpectedStates))
	image, err := f.device.CreateImage(imageInfo)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create image")
	}

	texture := &Texture{
		image:        image,
		heapOffset:   createInfo.HeapOffset,
		initialState: createInfo.InitialState,
		subresources: core1_0.ImageSubresourceRange{
			AspectMask:     AspectFor(createInfo.Format.PixelFormat()),
			BaseMipLevel:   0,
			LevelCount:     imageInfo.MipLevels,
			BaseArrayLayer: 0,
			LayerCount:     imageInfo.ArrayLayers,
		},
	}

	err = f.placeTexture(texture, createInfo, vkFormat, viewType)
	if err != nil {
		_ = texture.Destroy()
		return nil, err
	}

	return texture, nil
}

func (f *Factory) placeTexture(texture *Texture, createInfo storage.TextureCreateInfo, vkFormat core1_0.Format, viewType core1_0.ImageViewType) error {
	heap, err := f.checkPlacement(createInfo.Heap, createInfo.HeapOffset, createInfo.SlotSize, texture.image.MemoryRequirements())
	if err != nil {
		return err
	}
	texture.heap = heap

	err = texture.image.BindMemory(heap.memory, int(createInfo.HeapOffset))
	if err != nil {
		return errors.Wrap(err, "failed to bind image memory")
	}

	attachmentRange := texture.subresources
	attachmentRange.LevelCount = 1

	if createInfo.RenderTargetView {
		view, err := texture.image.CreateView(core1_0.ImageViewCreateInfo{
			ViewType:         viewType,
			Format:           vkFormat,
			SubresourceRange: attachmentRange,
		})
		if err != nil {
			return errors.Wrap(err, "failed to create render target view")
		}
		texture.rt = &Descriptor{kind: storage.DescriptorKindRenderTarget, view: view}
	}

	if createInfo.DepthStencilView {
		view, err := texture.image.CreateView(core1_0.ImageViewCreateInfo{
			ViewType:         viewType,
			Format:           vkFormat,
			SubresourceRange: attachmentRange,
		})
		if err != nil {
			return errors.Wrap(err, "failed to create depth stencil view")
		}
		texture.ds = &Descriptor{kind: storage.DescriptorKindDepthStencil, view: view}
	}

	return nil
}

func bufferCreateInfo(format resource.Format, expectedStates resource.ResourceState) core1_0.BufferCreateInfo {
	return core1_0.BufferCreateInfo{
		Size:        int(format.Stride() * format.ElementCount()),
		Usage:       BufferUsage(expectedStates),
		SharingMode: core1_0.SharingModeExclusive,
	}
}

func (f *Factory) NewBuffer(createInfo storage.BufferCreateInfo) (storage.Buffer, error) {
	if !createInfo.Format.IsBuffer() {
		return nil, errors.Newf("format %s is not a buffer format", createInfo.Format)
	}

	bufferInfo := bufferCreateInfo(createInfo.Format, createInfo.ExpectedStates)
	vkBuffer, err := f.device.CreateBuffer(bufferInfo)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create buffer")
	}

	buffer := &Buffer{
		buffer:     vkBuffer,
		heapOffset: createInfo.HeapOffset,
		size:       uint64(bufferInfo.Size),
	}

	heap, err := f.checkPlacement(createInfo.Heap, createInfo.HeapOffset, createInfo.SlotSize, vkBuffer.MemoryRequirements())
	if err == nil {
		buffer.heap = heap
		err = vkBuffer.BindMemory(heap.memory, int(createInfo.HeapOffset))
		if err != nil {
			err = errors.Wrap(err, "failed to bind buffer memory")
		}
	}
	if err != nil {
		_ = buffer.Destroy()
		return nil, err
	}

	return buffer, nil
}
