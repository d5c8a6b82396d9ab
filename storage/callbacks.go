package storage

import "github.com/vkngwrapper/framegraph/resource"

type CreateHeapCallback func(
	storage *Storage,
	group resource.HeapAliasingGroup,
	heap Heap,
	size uint64,
	userData interface{},
)

type DestroyHeapCallback func(
	storage *Storage,
	group resource.HeapAliasingGroup,
	heap Heap,
	size uint64,
	userData interface{},
)

// HeapCallbackOptions is an optional set of callbacks that will be executed when the storage
// creates and destroys heaps
type HeapCallbackOptions struct {
	Create   CreateHeapCallback
	Destroy  DestroyHeapCallback
	UserData interface{}
}

type heapCallbacks struct {
	Callbacks *HeapCallbackOptions
	Storage   *Storage
}

func (c *heapCallbacks) Create(
	group resource.HeapAliasingGroup,
	heap Heap,
	size uint64,
) {
	if c.Callbacks != nil && c.Callbacks.Create != nil {
		c.Callbacks.Create(c.Storage, group, heap, size, c.Callbacks.UserData)
	}
}

func (c *heapCallbacks) Destroy(
	group resource.HeapAliasingGroup,
	heap Heap,
	size uint64,
) {
	if c.Callbacks != nil && c.Callbacks.Destroy != nil {
		c.Callbacks.Destroy(c.Storage, group, heap, size, c.Callbacks.UserData)
	}
}
