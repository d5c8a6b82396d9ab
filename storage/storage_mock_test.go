package storage_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/framegraph/resource"
	"github.com/vkngwrapper/framegraph/storage"
	"github.com/vkngwrapper/framegraph/storage/mocks"
	"go.uber.org/mock/gomock"
)

func TestStorageHeapFactoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	heapFactory := mocks.NewMockHeapFactory(ctrl)
	resourceFactory := mocks.NewMockResourceFactory(ctrl)

	outOfMemory := errors.New("out of device memory")
	heapFactory.EXPECT().NewHeap(storage.HeapCreateInfo{
		Name:      "Buffers heap",
		Group:     resource.HeapAliasingGroupBuffers,
		Size:      resource.PlacementAlignment,
		Alignment: resource.PlacementAlignment,
	}).Return(nil, outOfMemory)

	s, err := storage.New(testLogger(), newGraph(t, "P1"), heapFactory, resourceFactory, storage.CreateOptions{})
	require.NoError(t, err)
	require.NoError(t, declare(t, s, "P1").NewBuffer("B", unitBuffer(t), 1))

	err = s.AllocateScheduledResources()
	require.True(t, errors.Is(err, outOfMemory))
	require.Contains(t, err.Error(), "Buffers heap")

	err = s.AllocateScheduledResources()
	require.Error(t, err)
	require.False(t, errors.Is(err, storage.ErrAlreadyAllocated))

	_, err = s.Pass("P1")
	require.True(t, errors.Is(err, storage.ErrNotAllocated))

	require.NoError(t, s.Destroy())
}

func TestStorageResourceFactoryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	heapFactory := mocks.NewMockHeapFactory(ctrl)
	resourceFactory := mocks.NewMockResourceFactory(ctrl)
	heap := mocks.NewMockHeap(ctrl)
	first := mocks.NewMockBuffer(ctrl)

	format := unitBuffer(t)
	heapFactory.EXPECT().NewHeap(gomock.Any()).Return(heap, nil)

	invalidFormat := errors.New("invalid format")
	gomock.InOrder(
		resourceFactory.EXPECT().NewBuffer(storage.BufferCreateInfo{
			Format:         format,
			InitialState:   resource.ResourceStateUnorderedAccess,
			ExpectedStates: resource.ResourceStateUnorderedAccess,
			Heap:           heap,
			HeapOffset:     0,
			SlotSize:       resource.PlacementAlignment,
		}).Return(first, nil),
		first.EXPECT().SetDebugName("A"),
		resourceFactory.EXPECT().NewBuffer(storage.BufferCreateInfo{
			Format:         format,
			InitialState:   resource.ResourceStateUnorderedAccess,
			ExpectedStates: resource.ResourceStateUnorderedAccess,
			Heap:           heap,
			HeapOffset:     resource.PlacementAlignment,
			SlotSize:       resource.PlacementAlignment,
		}).Return(nil, invalidFormat),
	)

	first.EXPECT().Destroy().Return(nil)
	heap.EXPECT().Destroy().Return(nil)

	s, err := storage.New(testLogger(), newGraph(t, "P1"), heapFactory, resourceFactory, storage.CreateOptions{})
	require.NoError(t, err)
	require.NoError(t, declare(t, s, "P1").NewBuffer("A", format, 1))
	require.NoError(t, declare(t, s, "P1").NewBuffer("B", format, 1))

	err = s.AllocateScheduledResources()
	require.True(t, errors.Is(err, invalidFormat))
	require.Contains(t, err.Error(), `"B"`)

	require.NoError(t, s.Destroy())
}

func TestStorageDestroyCombinesErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	heapFactory := mocks.NewMockHeapFactory(ctrl)
	resourceFactory := mocks.NewMockResourceFactory(ctrl)
	heap := mocks.NewMockHeap(ctrl)
	texture := mocks.NewMockTexture(ctrl)

	heapFactory.EXPECT().NewHeap(gomock.Any()).Return(heap, nil)
	resourceFactory.EXPECT().NewTexture(gomock.Any()).DoAndReturn(func(createInfo storage.TextureCreateInfo) (storage.Texture, error) {
		require.Equal(t, resource.ResourceStateUnorderedAccess, createInfo.InitialState)
		require.Nil(t, createInfo.ClearValue)
		require.False(t, createInfo.RenderTargetView)
		return texture, nil
	})
	texture.EXPECT().SetDebugName("T")

	textureLost := errors.New("texture lost")
	heapLost := errors.New("heap lost")
	texture.EXPECT().Destroy().Return(textureLost)
	heap.EXPECT().Destroy().Return(heapLost)

	s, err := storage.New(testLogger(), newGraph(t, "P1"), heapFactory, resourceFactory, storage.CreateOptions{})
	require.NoError(t, err)
	require.NoError(t, declare(t, s, "P1").NewTexture("T", unitTexture(t)))
	require.NoError(t, s.AllocateScheduledResources())

	err = s.Destroy()
	require.True(t, errors.Is(err, textureLost))
	require.True(t, errors.Is(err, heapLost))
}

func TestStorageDebugBuffersRequireFactory(t *testing.T) {
	ctrl := gomock.NewController(t)
	heapFactory := mocks.NewMockHeapFactory(ctrl)
	resourceFactory := mocks.NewMockResourceFactory(ctrl)

	_, err := storage.New(testLogger(), newGraph(t, "P1"), heapFactory, resourceFactory, storage.CreateOptions{
		PassDebugBufferSize: 256,
	})
	require.Error(t, err)
}

func TestStorageDebugBufferFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	heapFactory := mocks.NewMockHeapFactory(ctrl)
	resourceFactory := struct {
		*mocks.MockResourceFactory
		*mocks.MockDebugBufferFactory
	}{
		mocks.NewMockResourceFactory(ctrl),
		mocks.NewMockDebugBufferFactory(ctrl),
	}

	debug := mocks.NewMockBuffer(ctrl)
	gomock.InOrder(
		resourceFactory.MockDebugBufferFactory.EXPECT().NewDebugBuffer("P1", uint64(256)).Return(debug, nil),
		debug.EXPECT().SetDebugName("P1 debug buffer"),
		resourceFactory.MockDebugBufferFactory.EXPECT().NewDebugBuffer("P2", uint64(256)).Return(nil, errors.New("no memory")),
	)
	debug.EXPECT().Destroy().Return(nil)

	s, err := storage.New(testLogger(), newGraph(t, "P1", "P2"), heapFactory, resourceFactory, storage.CreateOptions{
		PassDebugBufferSize: 256,
	})
	require.NoError(t, err)

	err = s.AllocateScheduledResources()
	require.Error(t, err)
	require.Contains(t, err.Error(), `"P2"`)

	require.NoError(t, s.Destroy())
}

type sizingFactory struct {
	*mocks.MockResourceFactory
	*mocks.MockAllocationInfoQuerier
}

func newSizingFactory(ctrl *gomock.Controller) sizingFactory {
	return sizingFactory{
		mocks.NewMockResourceFactory(ctrl),
		mocks.NewMockAllocationInfoQuerier(ctrl),
	}
}

// A device that needs more than the format's estimate gets placements sized by what it reported, so
// live resources never overlap
func TestStorageAllocationInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	heapFactory := mocks.NewMockHeapFactory(ctrl)
	resourceFactory := newSizingFactory(ctrl)
	heap := mocks.NewMockHeap(ctrl)

	format := unitBuffer(t)
	padded := resource.PlacementAlignment + 4096

	resourceFactory.MockAllocationInfoQuerier.EXPECT().
		AllocationInfo(format, resource.ResourceStateUnorderedAccess).
		Return(storage.AllocationInfo{Size: padded - 100, Alignment: 256}, nil).
		Times(2)

	heapFactory.EXPECT().NewHeap(storage.HeapCreateInfo{
		Name:      "Buffers heap",
		Group:     resource.HeapAliasingGroupBuffers,
		Size:      2*resource.PlacementAlignment + padded,
		Alignment: resource.PlacementAlignment,
	}).Return(heap, nil)

	var placed []storage.BufferCreateInfo
	resourceFactory.MockResourceFactory.EXPECT().NewBuffer(gomock.Any()).DoAndReturn(func(createInfo storage.BufferCreateInfo) (storage.Buffer, error) {
		placed = append(placed, createInfo)
		buffer := mocks.NewMockBuffer(ctrl)
		buffer.EXPECT().SetDebugName(gomock.Any())
		buffer.EXPECT().Destroy().Return(nil)
		return buffer, nil
	}).Times(2)
	heap.EXPECT().Destroy().Return(nil)

	s, err := storage.New(testLogger(), newGraph(t, "P1"), heapFactory, resourceFactory, storage.CreateOptions{})
	require.NoError(t, err)
	require.NoError(t, declare(t, s, "P1").NewBuffer("A", format, 1))
	require.NoError(t, declare(t, s, "P1").NewBuffer("B", format, 1))
	require.NoError(t, s.AllocateScheduledResources())

	require.Len(t, placed, 2)
	require.Equal(t, uint64(0), placed[0].HeapOffset)
	require.Equal(t, 2*resource.PlacementAlignment, placed[1].HeapOffset)
	for _, createInfo := range placed {
		require.Equal(t, padded, createInfo.SlotSize)
	}
	require.GreaterOrEqual(t, placed[1].HeapOffset, placed[0].HeapOffset+placed[0].SlotSize)

	require.NoError(t, s.Destroy())
}

func TestStorageAllocationInfoFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	heapFactory := mocks.NewMockHeapFactory(ctrl)
	resourceFactory := newSizingFactory(ctrl)

	unsupported := errors.New("unsupported format")
	resourceFactory.MockAllocationInfoQuerier.EXPECT().AllocationInfo(gomock.Any(), gomock.Any()).Return(storage.AllocationInfo{}, unsupported)

	s, err := storage.New(testLogger(), newGraph(t, "P1"), heapFactory, resourceFactory, storage.CreateOptions{})
	require.NoError(t, err)
	require.NoError(t, declare(t, s, "P1").NewTexture("T", unitTexture(t)))

	err = s.AllocateScheduledResources()
	require.True(t, errors.Is(err, unsupported))
	require.Contains(t, err.Error(), `"T"`)

	require.NoError(t, s.Destroy())
}
