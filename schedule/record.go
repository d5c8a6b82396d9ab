package schedule

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/framegraph/graph"
	"github.com/vkngwrapper/framegraph/memutils"
	"github.com/vkngwrapper/framegraph/resource"
	"golang.org/x/exp/slices"
)

// Phase is the lifecycle position of a Record. Records move from PhaseDeclared to PhaseFinalized to
// PhaseAllocated, and never move backward or skip a phase.
type Phase uint8

const (
	// PhaseDeclared records are still accepting pass usages
	PhaseDeclared Phase = iota
	// PhaseFinalized records have fixed expected states and are being optimized and aliased
	PhaseFinalized
	// PhaseAllocated records have handed out their allocation request
	PhaseAllocated
)

var phaseMapping = map[Phase]string{
	PhaseDeclared:  "Declared",
	PhaseFinalized: "Finalized",
	PhaseAllocated: "Allocated",
}

func (p Phase) String() string {
	return phaseMapping[p]
}

// PassUsage is how a single pass uses a resource
type PassUsage struct {
	Pass           graph.PassID
	RequestedState resource.ResourceState
	// OptimizedState is the state the resource is actually transitioned to for the pass
	OptimizedState resource.ResourceState
	// NeedsUAVBarrier is set when the previous usage was also unordered access, so the pass must
	// wait on earlier unordered access writes without transitioning
	NeedsUAVBarrier           bool
	CreateTextureRTDescriptor bool
	CreateTextureDSDescriptor bool
}

// AliasingInfo is where a resource was placed in its group's heap
type AliasingInfo struct {
	HeapOffset uint64
	// NeedsAliasingBarrier is set when a different, expired resource occupied any of the resource's bytes
	NeedsAliasingBarrier bool
}

// AllocationRequest is everything needed to create the physical resources for a record once its
// heap offset is known. Element i of the record lives at HeapOffset + i*ElementSize.
type AllocationRequest struct {
	Resource       graph.ResourceID
	Name           string
	Format         resource.Format
	Count          uint32
	ElementSize    uint64
	Group          resource.HeapAliasingGroup
	HeapOffset     uint64
	InitialState   resource.ResourceState
	ExpectedStates resource.ResourceState
	ClearValue     *resource.ClearValue
	CreateRTView   bool
	CreateDSView   bool
}

// Record tracks how every pass uses one logical resource
type Record struct {
	id         graph.ResourceID
	name       string
	format     resource.Format
	count      uint32
	clearValue resource.ClearValue

	usages    []PassUsage
	firstPass graph.PassID
	lastPass  graph.PassID

	phase          Phase
	expectedStates resource.ResourceState
	group          resource.HeapAliasingGroup
	pending        *AllocationRequest

	elementSize      uint64
	elementAlignment uint64

	aliasingInfo    AliasingInfo
	aliasingWritten bool
}

// NewRecord creates a record in PhaseDeclared. A count of 0 is treated as 1.
func NewRecord(id graph.ResourceID, name string, format resource.Format, count uint32, clearValue resource.ClearValue) *Record {
	if count == 0 {
		count = 1
	}

	return &Record{
		id:         id,
		name:       name,
		format:     format,
		count:      count,
		clearValue: clearValue,
		firstPass:  graph.NoPass,
		lastPass:   graph.NoPass,
	}
}

func (r *Record) ID() graph.ResourceID                   { return r.id }
func (r *Record) Name() string                           { return r.name }
func (r *Record) String() string                         { return r.name }
func (r *Record) Format() resource.Format                { return r.format }
func (r *Record) ResourceCount() uint32                  { return r.count }
func (r *Record) ClearValue() resource.ClearValue        { return r.clearValue }
func (r *Record) Phase() Phase                           { return r.phase }
func (r *Record) FirstPass() graph.PassID                { return r.firstPass }
func (r *Record) LastPass() graph.PassID                 { return r.lastPass }
func (r *Record) Group() resource.HeapAliasingGroup      { return r.group }
func (r *Record) ExpectedStates() resource.ResourceState { return r.expectedStates }

// AliasingInfo returns the record's heap placement and a boolean indicating whether it has been placed
func (r *Record) AliasingInfo() (AliasingInfo, bool) {
	return r.aliasingInfo, r.aliasingWritten
}

// SizeInBytes is the heap space needed for every element of the record
func (r *Record) SizeInBytes() uint64 {
	return uint64(r.count) * r.ElementSize()
}

// ElementSize is the heap space reserved for each element of the record. Until SetAllocationInfo is
// called it is the format's device-independent estimate.
func (r *Record) ElementSize() uint64 {
	if r.elementSize == 0 {
		return r.format.ResourceSizeInBytes()
	}
	return r.elementSize
}

// Alignment is the offset alignment a device reported for the record, or 0 if none was reported
func (r *Record) Alignment() uint64 {
	return r.elementAlignment
}

// Usages returns the record's pass usages in execution order. The slice must not be modified.
func (r *Record) Usages() []PassUsage {
	return r.usages
}

func (r *Record) usageIndex(pass graph.PassID) (int, bool) {
	index := slices.IndexFunc(r.usages, func(usage PassUsage) bool {
		return usage.Pass >= pass
	})
	if index < 0 {
		return len(r.usages), false
	}

	return index, r.usages[index].Pass == pass
}

// Usage returns how the provided pass uses the resource, if it does
func (r *Record) Usage(pass graph.PassID) (PassUsage, bool) {
	index, ok := r.usageIndex(pass)
	if !ok {
		return PassUsage{}, false
	}
	return r.usages[index], true
}

// AddUsage registers a pass's use of the resource. Each pass may use a resource once.
func (r *Record) AddUsage(pass graph.PassID, state resource.ResourceState) error {
	if r.phase != PhaseDeclared {
		return errors.Wrapf(ErrInvalidDeclaration, "usages cannot be added to a resource in phase %s", r.phase)
	}

	if pass < 0 {
		return errors.Wrapf(ErrInvalidDeclaration, "pass %d is not a valid pass", pass)
	}

	err := state.Validate()
	if err != nil {
		return errors.Mark(err, ErrInvalidDeclaration)
	}

	index, exists := r.usageIndex(pass)
	if exists {
		return errors.Wrapf(ErrInvalidDeclaration, "the resource was already declared by this pass with state %s", r.usages[index].RequestedState)
	}

	isTexture := r.format.IsTexture()
	r.usages = slices.Insert(r.usages, index, PassUsage{
		Pass:                      pass,
		RequestedState:            state,
		OptimizedState:            state,
		CreateTextureRTDescriptor: isTexture && state&resource.ResourceStateRenderTarget != 0,
		CreateTextureDSDescriptor: isTexture && state&(resource.ResourceStateDepthWrite|resource.ResourceStateDepthRead) != 0,
	})

	if r.firstPass == graph.NoPass || pass < r.firstPass {
		r.firstPass = pass
	}
	if pass > r.lastPass {
		r.lastPass = pass
	}

	return nil
}

// Finalize fixes the record's expected states and heap aliasing group and prepares its
// allocation request
func (r *Record) Finalize(universalHeaps bool) error {
	if r.phase != PhaseDeclared {
		return errors.AssertionFailedf("resource %q cannot be finalized in phase %s", r.name, r.phase)
	}

	if len(r.usages) == 0 {
		return errors.Wrapf(ErrInvalidDeclaration, "resource %q is not used by any pass", r.name)
	}

	expected := resource.ResourceStateCommon
	var createRT, createDS bool
	for _, usage := range r.usages {
		expected |= usage.RequestedState
		createRT = createRT || usage.CreateTextureRTDescriptor
		createDS = createDS || usage.CreateTextureDSDescriptor
	}

	r.expectedStates = expected
	r.group = resource.AliasingGroupFor(r.format, expected, universalHeaps)

	var clearValue *resource.ClearValue
	if r.format.IsTexture() && resource.IsClearable(expected) {
		value := r.clearValue
		clearValue = &value
	}

	r.pending = &AllocationRequest{
		Resource:       r.id,
		Name:           r.name,
		Format:         r.format,
		Count:          r.count,
		ElementSize:    r.ElementSize(),
		Group:          r.group,
		ExpectedStates: expected,
		ClearValue:     clearValue,
		CreateRTView:   createRT,
		CreateDSView:   createDS,
	}
	r.phase = PhaseFinalized

	return nil
}

// SetAllocationInfo replaces the format's size estimate with the size and alignment a device needs
// for one element. Elements of an array stay aligned, so the element size is rounded up to the
// alignment. It may only be called after Finalize and before the record is placed.
func (r *Record) SetAllocationInfo(size, alignment uint64) error {
	if r.phase != PhaseFinalized || r.aliasingWritten {
		return errors.AssertionFailedf("resource %q cannot be resized in phase %s", r.name, r.phase)
	}

	if size == 0 {
		return errors.Wrapf(ErrInvalidDeclaration, "resource %q was reported to need no memory", r.name)
	}

	if alignment > 1 {
		err := memutils.CheckPow2(alignment, "alignment")
		if err != nil {
			return errors.Wrapf(err, "resource %q", r.name)
		}
		if size > math.MaxUint64-alignment {
			return errors.Wrapf(ErrInvalidDeclaration, "resource %q of %d bytes is too large", r.name, size)
		}
		size = memutils.AlignUp(size, alignment)
	}

	if r.count > 1 && size > math.MaxUint64/uint64(r.count) {
		return errors.Wrapf(ErrInvalidDeclaration, "resource %q of %d elements of %d bytes is too large", r.name, r.count, size)
	}

	r.elementSize = size
	r.elementAlignment = alignment
	r.pending.ElementSize = size
	return nil
}

// InitialState is the state the resource is created in: the optimized state of its first usage
func (r *Record) InitialState() resource.ResourceState {
	if len(r.usages) == 0 {
		return resource.ResourceStateCommon
	}
	return r.usages[0].OptimizedState
}

// SetAliasingInfo records the resource's heap placement. It may only be called once.
func (r *Record) SetAliasingInfo(info AliasingInfo) error {
	if r.phase != PhaseFinalized {
		return errors.AssertionFailedf("resource %q cannot be placed in phase %s", r.name, r.phase)
	}

	if r.aliasingWritten {
		return errors.AssertionFailedf("resource %q was already placed at offset %d", r.name, r.aliasingInfo.HeapOffset)
	}

	r.aliasingInfo = info
	r.aliasingWritten = true
	return nil
}

// TakeAllocationRequest consumes the record's pending allocation request, completing it with the
// record's heap offset and initial state. It may only be called once, after the record was placed.
func (r *Record) TakeAllocationRequest() (AllocationRequest, error) {
	if r.phase != PhaseFinalized || r.pending == nil {
		return AllocationRequest{}, errors.AssertionFailedf("resource %q has no pending allocation in phase %s", r.name, r.phase)
	}

	if !r.aliasingWritten {
		return AllocationRequest{}, errors.AssertionFailedf("resource %q must be placed in a heap before it is allocated", r.name)
	}

	request := *r.pending
	request.HeapOffset = r.aliasingInfo.HeapOffset
	request.InitialState = r.InitialState()

	r.pending = nil
	r.phase = PhaseAllocated

	return request, nil
}
