package vulkan_test

import (
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/framegraph/backend/vulkan"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type fakeMemory struct {
	size            int
	memoryTypeIndex int
	priority        float32
	freed           bool
}

func (m *fakeMemory) VulkanDeviceMemory() core1_0.DeviceMemory { return nil }
func (m *fakeMemory) Free()                                    { m.freed = true }

type fakeView struct {
	createInfo core1_0.ImageViewCreateInfo
	destroyed  bool
}

func (v *fakeView) VulkanImageView() core1_0.ImageView { return nil }
func (v *fakeView) Destroy()                           { v.destroyed = true }

type binding struct {
	memory *fakeMemory
	offset int
}

type fakeImage struct {
	createInfo   core1_0.ImageCreateInfo
	requirements core1_0.MemoryRequirements
	bound        *binding
	views        []*fakeView
	destroyed    bool
}

func (i *fakeImage) VulkanImage() core1_0.Image { return nil }

func (i *fakeImage) MemoryRequirements() *core1_0.MemoryRequirements {
	requirements := i.requirements
	return &requirements
}

func (i *fakeImage) BindMemory(memory vulkan.DeviceMemory, offset int) error {
	i.bound = &binding{memory: memory.(*fakeMemory), offset: offset}
	return nil
}

func (i *fakeImage) CreateView(createInfo core1_0.ImageViewCreateInfo) (vulkan.DeviceImageView, error) {
	view := &fakeView{createInfo: createInfo}
	i.views = append(i.views, view)
	return view, nil
}

func (i *fakeImage) Destroy() { i.destroyed = true }

type fakeBuffer struct {
	createInfo   core1_0.BufferCreateInfo
	requirements core1_0.MemoryRequirements
	bound        *binding
	destroyed    bool
}

func (b *fakeBuffer) VulkanBuffer() core1_0.Buffer { return nil }

func (b *fakeBuffer) MemoryRequirements() *core1_0.MemoryRequirements {
	requirements := b.requirements
	return &requirements
}

func (b *fakeBuffer) BindMemory(memory vulkan.DeviceMemory, offset int) error {
	b.bound = &binding{memory: memory.(*fakeMemory), offset: offset}
	return nil
}

func (b *fakeBuffer) Destroy() { b.destroyed = true }

// fakeDevice hands out resources whose memory requirements follow their texel size, with
// placement alignment and every memory type allowed unless the test changes them. Padding is added
// to every image and buffer requirement, the way drivers pad for tiling and row pitch.
type fakeDevice struct {
	alignment      int
	memoryTypeBits uint32
	padding        int
	allocateErr    error

	memories []*fakeMemory
	images   []*fakeImage
	buffers  []*fakeBuffer
}

// packed depth/stencil formats are stored in 8 bytes per texel
var fakeTexelBytes = map[core1_0.Format]int{
	core1_0.FormatR8G8B8A8UnsignedNormalized:         4,
	core1_0.FormatR16G16B16A16SignedFloat:            8,
	core1_0.FormatR32G32B32A32SignedFloat:            16,
	core1_0.FormatD32SignedFloat:                     4,
	core1_0.FormatD24UnsignedNormalizedS8UnsignedInt: 8,
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		alignment:      65536,
		memoryTypeBits: 0xFFFFFFFF,
	}
}

func (d *fakeDevice) AllocateMemory(size int, memoryTypeIndex int, priority float32) (vulkan.DeviceMemory, error) {
	if d.allocateErr != nil {
		return nil, d.allocateErr
	}

	memory := &fakeMemory{size: size, memoryTypeIndex: memoryTypeIndex, priority: priority}
	d.memories = append(d.memories, memory)
	return memory, nil
}

func (d *fakeDevice) CreateImage(createInfo core1_0.ImageCreateInfo) (vulkan.DeviceImage, error) {
	if createInfo.Extent.Width == 0 {
		return nil, errors.New("empty image")
	}

	texelBytes, ok := fakeTexelBytes[createInfo.Format]
	if !ok {
		texelBytes = 4
	}

	size := 0
	for mip := 0; mip < max(1, createInfo.MipLevels); mip++ {
		width := max(1, createInfo.Extent.Width>>mip)
		height := max(1, createInfo.Extent.Height>>mip)
		depth := max(1, createInfo.Extent.Depth>>mip)
		size += width * height * depth * createInfo.ArrayLayers * texelBytes
	}

	image := &fakeImage{
		createInfo: createInfo,
		requirements: core1_0.MemoryRequirements{
			Size:           size + d.padding,
			Alignment:      d.alignment,
			MemoryTypeBits: d.memoryTypeBits,
		},
	}
	d.images = append(d.images, image)
	return image, nil
}

func (d *fakeDevice) CreateBuffer(createInfo core1_0.BufferCreateInfo) (vulkan.DeviceBuffer, error) {
	buffer := &fakeBuffer{
		createInfo: createInfo,
		requirements: core1_0.MemoryRequirements{
			Size:           createInfo.Size + d.padding,
			Alignment:      d.alignment,
			MemoryTypeBits: d.memoryTypeBits,
		},
	}
	d.buffers = append(d.buffers, buffer)
	return buffer, nil
}

// boundImages returns the images bound to memory, leaving out the ones created to query requirements
func (d *fakeDevice) boundImages() []*fakeImage {
	var bound []*fakeImage
	for _, image := range d.images {
		if image.bound != nil {
			bound = append(bound, image)
		}
	}
	return bound
}
