package storage

import (
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/framegraph/graph"
	"github.com/vkngwrapper/framegraph/internal/utils"
	"github.com/vkngwrapper/framegraph/memutils"
	"github.com/vkngwrapper/framegraph/resource"
	"github.com/vkngwrapper/framegraph/schedule"
)

type allocatedResource struct {
	record   *schedule.Record
	request  schedule.AllocationRequest
	textures []Texture
	buffers  []Buffer
}

func (r *allocatedResource) element(index uint32) Resource {
	if r.request.Format.IsTexture() {
		return r.textures[index]
	}
	return r.buffers[index]
}

type groupHeap struct {
	aliaser *schedule.MemoryAliaser
	heap    Heap
	size    uint64
}

type passData struct {
	id               graph.PassID
	scheduled        []graph.ResourceID
	aliasingBarriers []AliasingBarrier
	uavBarriers      []UnorderedAccessBarrier
	transitions      []TransitionRequest
	debugBuffer      Buffer
}

// Storage turns the resource declarations of every pass in a graph into heaps, physical
// resources, and the barriers each pass needs
type Storage struct {
	logger *slog.Logger
	mutex  utils.OptionalRWMutex

	createFlags     CreateFlags
	options         CreateOptions
	graph           *graph.Graph
	scheduler       *schedule.Scheduler
	heapFactory     HeapFactory
	resourceFactory ResourceFactory
	callbacks       *heapCallbacks

	allocated bool
	failure   error

	groups    [resource.HeapAliasingGroupUniversal + 1]groupHeap
	resources *swiss.Map[graph.ResourceID, *allocatedResource]
	passes    []passData
}

// New creates a storage for the passes of g. Passes must all be added to g before any resource
// is declared.
func New(logger *slog.Logger, g *graph.Graph, heapFactory HeapFactory, resourceFactory ResourceFactory, options CreateOptions) (*Storage, error) {
	if g == nil {
		return nil, errors.New("storage.New requires a graph")
	}
	if heapFactory == nil || resourceFactory == nil {
		return nil, errors.New("storage.New requires a heap factory and a resource factory")
	}

	if options.HeapAlignment == 0 {
		options.HeapAlignment = resource.PlacementAlignment
	}
	err := memutils.CheckPow2(options.HeapAlignment, "storage.CreateOptions.HeapAlignment")
	if err != nil {
		return nil, err
	}

	if options.PassDebugBufferSize > 0 {
		if _, ok := resourceFactory.(DebugBufferFactory); !ok {
			return nil, errors.New("storage.CreateOptions.PassDebugBufferSize was provided, but the resource factory cannot create debug buffers")
		}
	}

	storage := &Storage{
		logger: logger,
		mutex:  utils.NewOptionalRWMutex(options.Flags&StorageCreateExternallySynchronized != 0),

		createFlags:     options.Flags,
		options:         options,
		graph:           g,
		scheduler:       schedule.NewScheduler(logger, g),
		heapFactory:     heapFactory,
		resourceFactory: resourceFactory,

		resources: swiss.NewMap[graph.ResourceID, *allocatedResource](42),
	}
	storage.callbacks = &heapCallbacks{
		Callbacks: options.HeapCallbacks,
		Storage:   storage,
	}

	return storage, nil
}

func (s *Storage) Graph() *graph.Graph {
	return s.graph
}

// Scheduler is used by every pass to declare the resources it creates, reads, and writes. It must
// not be used after AllocateScheduledResources.
func (s *Storage) Scheduler() *schedule.Scheduler {
	return s.scheduler
}

// IsResourceAllocationScheduled returns true if any pass has declared the named resource
func (s *Storage) IsResourceAllocationScheduled(name string) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	id, ok := s.graph.Resource(name)
	if !ok {
		return false
	}

	_, ok = s.scheduler.Records().Get(id)
	return ok
}

// AllocateScheduledResources finalizes every declared resource, decides the state of each resource
// in each pass, places the resources of each heap aliasing group in a single heap, and creates the
// heaps, resources, and per-pass barrier lists. It may only be called once. If it fails, the storage
// can only be destroyed.
func (s *Storage) AllocateScheduledResources() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.allocated {
		return ErrAlreadyAllocated
	}
	if s.failure != nil {
		return errors.Wrap(s.failure, "a previous allocation failed")
	}

	err := s.allocateScheduledResources()
	if err != nil {
		s.failure = err
		return err
	}

	s.allocated = true
	return nil
}

func (s *Storage) allocateScheduledResources() error {
	s.scheduler.Seal()

	optimizer := schedule.NewStateOptimizer(s.logger, s.createFlags&StorageCreateMergeReadStates != 0)
	for _, group := range resource.HeapAliasingGroups {
		aliaser, err := schedule.NewMemoryAliaser(s.logger, schedule.AliaserCreateInfo{
			Group:           group,
			Alignment:       s.options.HeapAlignment,
			Strategy:        s.options.AllocationStrategy,
			DisableAliasing: s.createFlags&StorageCreateDisableAliasing != 0,
		})
		if err != nil {
			return err
		}
		s.groups[group].aliaser = aliaser
	}

	records := s.scheduler.Records().All()
	for _, record := range records {
		err := record.Finalize(s.createFlags&StorageCreateUniversalHeaps != 0)
		if err != nil {
			return err
		}

		err = s.queryAllocationInfo(record)
		if err != nil {
			return err
		}

		err = optimizer.AddRecord(record)
		if err != nil {
			return err
		}

		err = s.groups[record.Group()].aliaser.AddRecord(record)
		if err != nil {
			return err
		}
	}

	err := optimizer.Optimize()
	if err != nil {
		return err
	}

	for _, group := range resource.HeapAliasingGroups {
		err = s.createHeap(group)
		if err != nil {
			return err
		}
	}

	for _, record := range records {
		err = s.createResources(record)
		if err != nil {
			return err
		}
	}

	s.buildPasses(records)

	if s.options.PassDebugBufferSize > 0 {
		err = s.createDebugBuffers()
		if err != nil {
			return err
		}
	}

	s.logger.Info("allocated scheduled resources",
		slog.Int("passes", len(s.passes)),
		slog.Int("resources", len(records)),
	)
	return nil
}

func (s *Storage) queryAllocationInfo(record *schedule.Record) error {
	querier, ok := s.resourceFactory.(AllocationInfoQuerier)
	if !ok {
		return nil
	}

	info, err := querier.AllocationInfo(record.Format(), record.ExpectedStates())
	if err != nil {
		return errors.Wrapf(err, "failed to query the allocation info of resource %q", record.Name())
	}

	err = record.SetAllocationInfo(info.Size, info.Alignment)
	if err != nil {
		return err
	}

	s.logger.Debug("queried allocation info",
		slog.String("resource", record.Name()),
		slog.Uint64("size", info.Size),
		slog.Uint64("alignment", info.Alignment),
		slog.Uint64("estimate", record.Format().ResourceSizeInBytes()),
	)
	return nil
}

func (s *Storage) createHeap(group resource.HeapAliasingGroup) error {
	groupData := &s.groups[group]
	if groupData.aliaser.IsEmpty() {
		return nil
	}

	size, err := groupData.aliaser.Alias()
	if err != nil {
		return err
	}

	heap, err := s.heapFactory.NewHeap(HeapCreateInfo{
		Name:      fmt.Sprintf("%s heap", group),
		Group:     group,
		Size:      size,
		Alignment: s.options.HeapAlignment,
	})
	if err != nil {
		return errors.Wrapf(err, "failed to create the %s heap of %d bytes", group, size)
	}

	groupData.heap = heap
	groupData.size = size
	s.callbacks.Create(group, heap, size)

	s.logger.Info("created heap",
		slog.String("group", group.String()),
		slog.Uint64("size", size),
	)
	return nil
}

func debugName(name string, index uint32, count uint32) string {
	if count > 1 {
		return fmt.Sprintf("%s[%d]", name, index)
	}
	return name
}

func (s *Storage) createResources(record *schedule.Record) error {
	request, err := record.TakeAllocationRequest()
	if err != nil {
		return err
	}

	heap := s.groups[request.Group].heap
	if heap == nil {
		return errors.AssertionFailedf("resource %q was placed in the %s group, which has no heap", request.Name, request.Group)
	}

	allocated := &allocatedResource{
		record:  record,
		request: request,
	}
	// Registered before creation so that Destroy sees partially created resources
	s.resources.Put(request.Resource, allocated)

	for i := uint32(0); i < request.Count; i++ {
		offset := request.HeapOffset + uint64(i)*request.ElementSize
		name := debugName(request.Name, i, request.Count)

		var created Resource
		if request.Format.IsTexture() {
			texture, err := s.resourceFactory.NewTexture(TextureCreateInfo{
				Format:           request.Format,
				InitialState:     request.InitialState,
				ExpectedStates:   request.ExpectedStates,
				ClearValue:       request.ClearValue,
				Heap:             heap,
				HeapOffset:       offset,
				SlotSize:         request.ElementSize,
				RenderTargetView: request.CreateRTView,
				DepthStencilView: request.CreateDSView,
			})
			if err != nil {
				return errors.Wrapf(err, "failed to create texture %q", name)
			}
			allocated.textures = append(allocated.textures, texture)
			created = texture
		} else {
			buffer, err := s.resourceFactory.NewBuffer(BufferCreateInfo{
				Format:         request.Format,
				InitialState:   request.InitialState,
				ExpectedStates: request.ExpectedStates,
				Heap:           heap,
				HeapOffset:     offset,
				SlotSize:       request.ElementSize,
			})
			if err != nil {
				return errors.Wrapf(err, "failed to create buffer %q", name)
			}
			allocated.buffers = append(allocated.buffers, buffer)
			created = buffer
		}

		created.SetDebugName(name)
	}

	s.logger.Debug("created resource",
		slog.String("resource", request.Name),
		slog.String("group", request.Group.String()),
		slog.Uint64("offset", request.HeapOffset),
		slog.Int("count", int(request.Count)),
		slog.String("initialState", request.InitialState.String()),
	)
	return nil
}

func (s *Storage) buildPasses(records []*schedule.Record) {
	s.passes = make([]passData, s.graph.PassCount())
	for index := range s.passes {
		s.passes[index].id = graph.PassID(index)
	}

	for _, record := range records {
		allocated, _ := s.resources.Get(record.ID())
		info, _ := record.AliasingInfo()

		for _, usage := range record.Usages() {
			pass := &s.passes[usage.Pass]
			pass.scheduled = append(pass.scheduled, record.ID())

			for i := uint32(0); i < record.ResourceCount(); i++ {
				target := allocated.element(i)

				if usage.Pass == record.FirstPass() && info.NeedsAliasingBarrier {
					pass.aliasingBarriers = append(pass.aliasingBarriers, AliasingBarrier{
						Resource: record.ID(),
						Name:     record.Name(),
						Index:    i,
						Target:   target,
					})
				}

				pass.transitions = append(pass.transitions, TransitionRequest{
					Resource: record.ID(),
					Name:     record.Name(),
					Index:    i,
					Target:   target,
					State:    usage.OptimizedState,
				})

				if usage.NeedsUAVBarrier {
					pass.uavBarriers = append(pass.uavBarriers, UnorderedAccessBarrier{
						Resource: record.ID(),
						Name:     record.Name(),
						Index:    i,
						Target:   target,
					})
				}
			}
		}
	}
}

func (s *Storage) createDebugBuffers() error {
	factory := s.resourceFactory.(DebugBufferFactory)

	for index := range s.passes {
		name := s.graph.PassName(s.passes[index].id)

		buffer, err := factory.NewDebugBuffer(name, s.options.PassDebugBufferSize)
		if err != nil {
			return errors.Wrapf(err, "failed to create the debug buffer for pass %q", name)
		}

		buffer.SetDebugName(fmt.Sprintf("%s debug buffer", name))
		s.passes[index].debugBuffer = buffer
	}

	return nil
}

// Pass returns the context a pass uses to find its resources and barriers while it executes
func (s *Storage) Pass(name string) (*PassContext, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	id, ok := s.graph.Pass(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPass, "pass %q", name)
	}

	return s.passContext(id)
}

// PassByID returns the context a pass uses to find its resources and barriers while it executes
func (s *Storage) PassByID(id graph.PassID) (*PassContext, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if id < 0 || int(id) >= s.graph.PassCount() {
		return nil, errors.Wrapf(ErrUnknownPass, "pass %d", id)
	}

	return s.passContext(id)
}

func (s *Storage) passContext(id graph.PassID) (*PassContext, error) {
	if !s.allocated {
		return nil, errors.Wrapf(ErrNotAllocated, "pass %q", s.graph.PassName(id))
	}

	return &PassContext{
		storage: s,
		pass:    &s.passes[id],
	}, nil
}

// Destroy destroys every resource, debug buffer, and heap the storage created. It may be called
// after AllocateScheduledResources fails.
func (s *Storage) Destroy() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	var err error
	s.resources.Iter(func(id graph.ResourceID, allocated *allocatedResource) bool {
		for _, texture := range allocated.textures {
			err = errors.CombineErrors(err, texture.Destroy())
		}
		for _, buffer := range allocated.buffers {
			err = errors.CombineErrors(err, buffer.Destroy())
		}
		return false
	})
	s.resources = swiss.NewMap[graph.ResourceID, *allocatedResource](42)

	for index := range s.passes {
		if s.passes[index].debugBuffer != nil {
			err = errors.CombineErrors(err, s.passes[index].debugBuffer.Destroy())
		}
	}
	s.passes = nil

	for _, group := range resource.HeapAliasingGroups {
		groupData := &s.groups[group]
		if groupData.heap == nil {
			continue
		}

		s.callbacks.Destroy(group, groupData.heap, groupData.size)
		err = errors.CombineErrors(err, groupData.heap.Destroy())
		groupData.heap = nil
	}

	s.allocated = false
	if s.failure == nil {
		s.failure = errors.New("the storage has been destroyed")
	}

	if err != nil {
		s.logger.Error("failed to destroy storage resources", slog.Any("error", err))
	}
	return err
}
