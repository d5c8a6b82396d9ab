package null_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/framegraph/backend/null"
	"github.com/vkngwrapper/framegraph/resource"
	"github.com/vkngwrapper/framegraph/storage"
)

func TestNullFactoryPlacement(t *testing.T) {
	factory := null.NewFactory(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	heap, err := factory.NewHeap(storage.HeapCreateInfo{
		Name:  "RTDSTextures heap",
		Group: resource.HeapAliasingGroupRTDSTextures,
		Size:  2 * resource.PlacementAlignment,
	})
	require.NoError(t, err)
	require.Equal(t, resource.HeapAliasingGroupRTDSTextures, heap.Group())

	format, err := resource.NewTextureFormat(resource.KindTexture2D, gputypes.TextureFormatRGBA8Unorm,
		resource.Dimensions{Width: 128, Height: 128}, 1)
	require.NoError(t, err)

	texture, err := factory.NewTexture(storage.TextureCreateInfo{
		Format:           format,
		Heap:             heap,
		HeapOffset:       resource.PlacementAlignment,
		RenderTargetView: true,
	})
	require.NoError(t, err)

	descriptor, ok := texture.RenderTargetDescriptor()
	require.True(t, ok)
	require.Equal(t, storage.DescriptorKindRenderTarget, descriptor.Kind())

	_, ok = texture.DepthStencilDescriptor()
	require.False(t, ok)

	texture.SetDebugName("albedo")
	require.Equal(t, "albedo", factory.Textures()[0].Name())
	require.Equal(t, resource.PlacementAlignment, factory.Textures()[0].HeapOffset())

	_, err = factory.NewTexture(storage.TextureCreateInfo{
		Format:     format,
		Heap:       heap,
		HeapOffset: 2 * resource.PlacementAlignment,
	})
	require.Error(t, err)

	buffer, err := resource.NewBufferFormat(4, 16)
	require.NoError(t, err)
	_, err = factory.NewTexture(storage.TextureCreateInfo{Format: buffer, Heap: heap})
	require.Error(t, err)

	require.NoError(t, texture.Destroy())
	require.Error(t, texture.Destroy())
	require.NoError(t, heap.Destroy())
	require.Error(t, heap.Destroy())
}

func TestNullFactoryForeignHeap(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	first := null.NewFactory(logger)
	second := null.NewFactory(logger)

	heap, err := first.NewHeap(storage.HeapCreateInfo{Name: "Buffers heap", Size: resource.PlacementAlignment})
	require.NoError(t, err)

	format, err := resource.NewBufferFormat(4, 16)
	require.NoError(t, err)

	_, err = second.NewBuffer(storage.BufferCreateInfo{Format: format, Heap: heap})
	require.Error(t, err)

	_, err = first.NewBuffer(storage.BufferCreateInfo{Format: format, Heap: heap})
	require.NoError(t, err)
	require.Len(t, first.Buffers(), 1)

	_, err = first.NewHeap(storage.HeapCreateInfo{Name: "empty"})
	require.Error(t, err)

	debug, err := first.NewDebugBuffer("lighting", 256)
	require.NoError(t, err)
	require.NoError(t, debug.Destroy())
	require.Len(t, first.DebugBuffers(), 1)
}
