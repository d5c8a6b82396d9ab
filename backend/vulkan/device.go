package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/core/v2/driver"
	"github.com/vkngwrapper/extensions/v2/ext_memory_priority"
)

// DeviceMemory is a single device memory allocation backing a heap
type DeviceMemory interface {
	VulkanDeviceMemory() core1_0.DeviceMemory
	Free()
}

type DeviceImageView interface {
	VulkanImageView() core1_0.ImageView
	Destroy()
}

type DeviceImage interface {
	VulkanImage() core1_0.Image
	MemoryRequirements() *core1_0.MemoryRequirements
	BindMemory(memory DeviceMemory, offset int) error
	// CreateView creates a view of the image. createInfo.Image is ignored.
	CreateView(createInfo core1_0.ImageViewCreateInfo) (DeviceImageView, error)
	Destroy()
}

type DeviceBuffer interface {
	VulkanBuffer() core1_0.Buffer
	MemoryRequirements() *core1_0.MemoryRequirements
	BindMemory(memory DeviceMemory, offset int) error
	Destroy()
}

// Device is the part of a Vulkan device the Factory uses
type Device interface {
	AllocateMemory(size int, memoryTypeIndex int, priority float32) (DeviceMemory, error)
	CreateImage(createInfo core1_0.ImageCreateInfo) (DeviceImage, error)
	CreateBuffer(createInfo core1_0.BufferCreateInfo) (DeviceBuffer, error)
}

type coreDevice struct {
	device      core1_0.Device
	callbacks   *driver.AllocationCallbacks
	usePriority bool
}

// NewDevice adapts a vkngwrapper device for use by a Factory. Heap priorities are passed to the driver
// when VK_EXT_memory_priority is active on the device.
func NewDevice(device core1_0.Device, callbacks *driver.AllocationCallbacks) Device {
	return &coreDevice{
		device:      device,
		callbacks:   callbacks,
		usePriority: device.IsDeviceExtensionActive(ext_memory_priority.ExtensionName),
	}
}

func (d *coreDevice) AllocateMemory(size int, memoryTypeIndex int, priority float32) (DeviceMemory, error) {
	allocateInfo := core1_0.MemoryAllocateInfo{
		AllocationSize:  size,
		MemoryTypeIndex: memoryTypeIndex,
	}
	if d.usePriority {
		allocateInfo.Next = ext_memory_priority.MemoryPriorityAllocateInfo{
			Priority: priority,
		}
	}

	memory, _, err := d.device.AllocateMemory(d.callbacks, allocateInfo)
	if err != nil {
		return nil, err
	}

	return &coreMemory{memory: memory, callbacks: d.callbacks}, nil
}

func (d *coreDevice) CreateImage(createInfo core1_0.ImageCreateInfo) (DeviceImage, error) {
	image, _, err := d.device.CreateImage(d.callbacks, createInfo)
	if err != nil {
		return nil, err
	}

	return &coreImage{device: d, image: image}, nil
}

func (d *coreDevice) CreateBuffer(createInfo core1_0.BufferCreateInfo) (DeviceBuffer, error) {
	buffer, _, err := d.device.CreateBuffer(d.callbacks, createInfo)
	if err != nil {
		return nil, err
	}

	return &coreBuffer{callbacks: d.callbacks, buffer: buffer}, nil
}

type coreMemory struct {
	memory    core1_0.DeviceMemory
	callbacks *driver.AllocationCallbacks
}

func (m *coreMemory) VulkanDeviceMemory() core1_0.DeviceMemory {
	return m.memory
}

func (m *coreMemory) Free() {
	m.memory.Free(m.callbacks)
}

func unwrapMemory(memory DeviceMemory) (core1_0.DeviceMemory, error) {
	if memory == nil || memory.VulkanDeviceMemory() == nil {
		return nil, errors.New("attempted to bind to memory with no vulkan allocation")
	}
	return memory.VulkanDeviceMemory(), nil
}

type coreImage struct {
	device *coreDevice
	image  core1_0.Image
}

func (i *coreImage) VulkanImage() core1_0.Image {
	return i.image
}

func (i *coreImage) MemoryRequirements() *core1_0.MemoryRequirements {
	return i.image.MemoryRequirements()
}

func (i *coreImage) BindMemory(memory DeviceMemory, offset int) error {
	vkMemory, err := unwrapMemory(memory)
	if err != nil {
		return err
	}

	_, err = i.image.BindImageMemory(vkMemory, offset)
	return err
}

func (i *coreImage) CreateView(createInfo core1_0.ImageViewCreateInfo) (DeviceImageView, error) {
	createInfo.Image = i.image
	view, _, err := i.device.device.CreateImageView(i.device.callbacks, createInfo)
	if err != nil {
		return nil, err
	}

	return &coreImageView{callbacks: i.device.callbacks, view: view}, nil
}

func (i *coreImage) Destroy() {
	i.image.Destroy(i.device.callbacks)
}

type coreImageView struct {
	callbacks *driver.AllocationCallbacks
	view      core1_0.ImageView
}

func (v *coreImageView) VulkanImageView() core1_0.ImageView {
	return v.view
}

func (v *coreImageView) Destroy() {
	v.view.Destroy(v.callbacks)
}

type coreBuffer struct {
	callbacks *driver.AllocationCallbacks
	buffer    core1_0.Buffer
}

func (b *coreBuffer) VulkanBuffer() core1_0.Buffer {
	return b.buffer
}

func (b *coreBuffer) MemoryRequirements() *core1_0.MemoryRequirements {
	return b.buffer.MemoryRequirements()
}

func (b *coreBuffer) BindMemory(memory DeviceMemory, offset int) error {
	vkMemory, err := unwrapMemory(memory)
	if err != nil {
		return err
	}

	_, err = b.buffer.BindBufferMemory(vkMemory, offset)
	return err
}

func (b *coreBuffer) Destroy() {
	b.buffer.Destroy(b.callbacks)
}

// DeviceLocalMemoryType returns the index of the first memory type that is device local, which is
// usually the best choice for FactoryOptions.MemoryTypeIndex
func DeviceLocalMemoryType(properties *core1_0.PhysicalDeviceMemoryProperties) (int, error) {
	for index, memoryType := range properties.MemoryTypes {
		if memoryType.PropertyFlags&core1_0.MemoryPropertyDeviceLocal != 0 {
			return index, nil
		}
	}

	return -1, errors.New("the physical device has no device local memory type")
}
