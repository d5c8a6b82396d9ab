// Package null is a storage backend that creates no device objects. It checks that every resource
// fits inside its heap and records what was created, which is enough to plan a frame graph's heap
// layout offline or to test code that drives a storage.
package null

import (
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/framegraph/resource"
	"github.com/vkngwrapper/framegraph/storage"
)

type Heap struct {
	factory   *Factory
	name      string
	group     resource.HeapAliasingGroup
	size      uint64
	destroyed bool
}

func (h *Heap) Name() string                      { return h.name }
func (h *Heap) Size() uint64                      { return h.size }
func (h *Heap) Group() resource.HeapAliasingGroup { return h.group }
func (h *Heap) Destroyed() bool                   { return h.destroyed }

func (h *Heap) Destroy() error {
	if h.destroyed {
		return errors.Newf("heap %q was already destroyed", h.name)
	}
	h.destroyed = true
	return nil
}

type Descriptor struct {
	kind    storage.DescriptorKind
	texture *Texture
}

func (d *Descriptor) Kind() storage.DescriptorKind {
	return d.kind
}

func (d *Descriptor) Texture() *Texture {
	return d.texture
}

// resourceBase holds what textures and buffers have in common
type resourceBase struct {
	name       string
	heap       *Heap
	heapOffset uint64
	size       uint64
	destroyed  bool
}

func (r *resourceBase) SetDebugName(name string) { r.name = name }
func (r *resourceBase) Name() string             { return r.name }
func (r *resourceBase) Heap() *Heap              { return r.heap }
func (r *resourceBase) HeapOffset() uint64       { return r.heapOffset }
func (r *resourceBase) Size() uint64             { return r.size }
func (r *resourceBase) Destroyed() bool          { return r.destroyed }

func (r *resourceBase) Destroy() error {
	if r.destroyed {
		return errors.Newf("resource %q was already destroyed", r.name)
	}
	r.destroyed = true
	return nil
}

type Texture struct {
	resourceBase
	createInfo storage.TextureCreateInfo
	rt         *Descriptor
	ds         *Descriptor
}

func (t *Texture) CreateInfo() storage.TextureCreateInfo {
	return t.createInfo
}

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

type Buffer struct {
	resourceBase
	createInfo storage.BufferCreateInfo
}

func (b *Buffer) CreateInfo() storage.BufferCreateInfo {
	return b.createInfo
}

// Factory implements storage.HeapFactory, storage.ResourceFactory, and storage.DebugBufferFactory
// without a device
type Factory struct {
	logger *slog.Logger

	heaps        []*Heap
	textures     []*Texture
	buffers      []*Buffer
	debugBuffers []*Buffer
}

func NewFactory(logger *slog.Logger) *Factory {
	return &Factory{logger: logger}
}

func (f *Factory) Heaps() []*Heap          { return f.heaps }
func (f *Factory) Textures() []*Texture    { return f.textures }
func (f *Factory) Buffers() []*Buffer      { return f.buffers }
func (f *Factory) DebugBuffers() []*Buffer { return f.debugBuffers }

func (f *Factory) NewHeap(createInfo storage.HeapCreateInfo) (storage.Heap, error) {
	if createInfo.Size == 0 {
		return nil, errors.Newf("heap %q cannot be empty", createInfo.Name)
	}

	heap := &Heap{
		factory: f,
		name:    createInfo.Name,
		group:   createInfo.Group,
		size:    createInfo.Size,
	}
	f.heaps = append(f.heaps, heap)

	f.logger.Debug("created null heap",
		slog.String("name", createInfo.Name),
		slog.Uint64("size", createInfo.Size),
	)
	return heap, nil
}

func (f *Factory) place(heap storage.Heap, offset, size uint64) (resourceBase, error) {
	nullHeap, ok := heap.(*Heap)
	if !ok || nullHeap.factory != f {
		return resourceBase{}, errors.New("the heap was not created by this factory")
	}

	if nullHeap.destroyed {
		return resourceBase{}, errors.Newf("heap %q has been destroyed", nullHeap.name)
	}

	if offset+size > nullHeap.size {
		return resourceBase{}, errors.Newf("a resource of %d bytes at offset %d does not fit in heap %q of %d bytes", size, offset, nullHeap.name, nullHeap.size)
	}

	return resourceBase{
		heap:       nullHeap,
		heapOffset: offset,
		size:       size,
	}, nil
}

func (f *Factory) NewTexture(createInfo storage.TextureCreateInfo) (storage.Texture, error) {
	if !createInfo.Format.IsTexture() {
		return nil, errors.Newf("format %s is not a texture format", createInfo.Format)
	}

	base, err := f.place(createInfo.Heap, createInfo.HeapOffset, createInfo.Format.ResourceSizeInBytes())
	if err != nil {
		return nil, err
	}

	texture := &Texture{
		resourceBase: base,
		createInfo:   createInfo,
	}
	if createInfo.RenderTargetView {
		texture.rt = &Descriptor{kind: storage.DescriptorKindRenderTarget, texture: texture}
	}
	if createInfo.DepthStencilView {
		texture.ds = &Descriptor{kind: storage.DescriptorKindDepthStencil, texture: texture}
	}

	f.textures = append(f.textures, texture)
	return texture, nil
}

func (f *Factory) NewBuffer(createInfo storage.BufferCreateInfo) (storage.Buffer, error) {
	if !createInfo.Format.IsBuffer() {
		return nil, errors.Newf("format %s is not a buffer format", createInfo.Format)
	}

	base, err := f.place(createInfo.Heap, createInfo.HeapOffset, createInfo.Format.ResourceSizeInBytes())
	if err != nil {
		return nil, err
	}

	buffer := &Buffer{
		resourceBase: base,
		createInfo:   createInfo,
	}
	f.buffers = append(f.buffers, buffer)
	return buffer, nil
}

// NewDebugBuffer creates a buffer outside of any heap
func (f *Factory) NewDebugBuffer(passName string, size uint64) (storage.Buffer, error) {
	if size == 0 {
		return nil, errors.Newf("the debug buffer for pass %q cannot be empty", passName)
	}

	buffer := &Buffer{
		resourceBase: resourceBase{
			name: passName,
			size: size,
		},
	}
	f.debugBuffers = append(f.debugBuffers, buffer)
	return buffer, nil
}
