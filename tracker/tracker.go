// Package tracker turns the per-pass barrier requests of a storage into concrete barriers by
// remembering the state each physical resource was left in.
package tracker

import (
	"log/slog"

	"github.com/dolthub/swiss"
	"github.com/vkngwrapper/framegraph/graph"
	"github.com/vkngwrapper/framegraph/resource"
	"github.com/vkngwrapper/framegraph/storage"
)

type BarrierKind uint8

const (
	// BarrierKindAliasing discards a resource's contents and places it in its After state
	BarrierKindAliasing BarrierKind = iota
	BarrierKindTransition
	// BarrierKindUnorderedAccess waits on earlier unordered access without changing state
	BarrierKindUnorderedAccess
	// BarrierKindInitial moves a resource the tracker has never seen from the contents it was created
	// with into its first requested state
	BarrierKindInitial
)

var barrierKindMapping = map[BarrierKind]string{
	BarrierKindAliasing:        "Aliasing",
	BarrierKindTransition:      "Transition",
	BarrierKindUnorderedAccess: "UnorderedAccess",
	BarrierKindInitial:         "Initial",
}

func (k BarrierKind) String() string {
	return barrierKindMapping[k]
}

// Barrier is a single barrier a pass must record before it executes
type Barrier struct {
	Kind     BarrierKind
	Resource graph.ResourceID
	Name     string
	Index    uint32
	Target   storage.Resource
	Before   resource.ResourceState
	After    resource.ResourceState
}

type physicalKey struct {
	resource graph.ResourceID
	index    uint32
}

// CreateOptions contains optional settings for a StateTracker
type CreateOptions struct {
	// InitialBarriers emits a BarrierKindInitial barrier the first time a resource is requested
	// outside of an aliasing barrier. Backends that cannot create a resource directly in the state of
	// its first use need them, such as Vulkan, whose images start in the undefined layout.
	InitialBarriers bool
}

// StateTracker implements storage.BarrierSink. A pass submits its barriers to the tracker and then
// calls Flush to receive the barriers it must actually record. The tracker remembers states across
// passes and frames, so it must see every pass of every frame in order.
type StateTracker struct {
	logger          *slog.Logger
	initialBarriers bool
	states          *swiss.Map[physicalKey, resource.ResourceState]

	aliasing    []storage.AliasingBarrier
	transitions []storage.TransitionRequest
	uav         []storage.UnorderedAccessBarrier
}

var _ storage.BarrierSink = &StateTracker{}

func NewStateTracker(logger *slog.Logger, options CreateOptions) *StateTracker {
	return &StateTracker{
		logger:          logger,
		initialBarriers: options.InitialBarriers,
		states:          swiss.NewMap[physicalKey, resource.ResourceState](42),
	}
}

func (t *StateTracker) AliasingBarrier(barrier storage.AliasingBarrier) {
	t.aliasing = append(t.aliasing, barrier)
}

func (t *StateTracker) RequestTransition(request storage.TransitionRequest) {
	t.transitions = append(t.transitions, request)
}

func (t *StateTracker) UnorderedAccessBarrier(barrier storage.UnorderedAccessBarrier) {
	t.uav = append(t.uav, barrier)
}

// State returns the state a physical resource was last left in, if the tracker has seen it
func (t *StateTracker) State(id graph.ResourceID, index uint32) (resource.ResourceState, bool) {
	return t.states.Get(physicalKey{resource: id, index: index})
}

// Reset forgets every resource state. It must be called when the storage the tracker follows is
// destroyed.
func (t *StateTracker) Reset() {
	t.states = swiss.NewMap[physicalKey, resource.ResourceState](42)
	t.aliasing = nil
	t.transitions = nil
	t.uav = nil
}

// Flush returns the barriers for everything submitted since the last Flush, in recording order:
// aliasing barriers, then transitions, then unordered access barriers. A resource's first requested
// state is adopted without a transition, since resources are created in the state of their first
// use. With CreateOptions.InitialBarriers, that first request is a BarrierKindInitial barrier instead.
// A resource behind an aliasing barrier moves straight to its requested state.
func (t *StateTracker) Flush() []Barrier {
	requested := swiss.NewMap[physicalKey, resource.ResourceState](uint32(len(t.transitions)))
	for _, request := range t.transitions {
		requested.Put(physicalKey{resource: request.Resource, index: request.Index}, request.State)
	}

	var barriers []Barrier
	aliased := swiss.NewMap[physicalKey, struct{}](uint32(len(t.aliasing)))
	for _, barrier := range t.aliasing {
		key := physicalKey{resource: barrier.Resource, index: barrier.Index}
		aliased.Put(key, struct{}{})

		after, ok := requested.Get(key)
		if !ok {
			after, ok = t.states.Get(key)
		}
		if !ok {
			after = resource.ResourceStateCommon
		}

		barriers = append(barriers, Barrier{
			Kind:     BarrierKindAliasing,
			Resource: barrier.Resource,
			Name:     barrier.Name,
			Index:    barrier.Index,
			Target:   barrier.Target,
			Before:   resource.ResourceStateCommon,
			After:    after,
		})
		t.states.Put(key, after)
	}

	for _, request := range t.transitions {
		key := physicalKey{resource: request.Resource, index: request.Index}
		if aliased.Has(key) {
			continue
		}

		current, seen := t.states.Get(key)
		t.states.Put(key, request.State)

		if !seen {
			if t.initialBarriers {
				barriers = append(barriers, Barrier{
					Kind:     BarrierKindInitial,
					Resource: request.Resource,
					Name:     request.Name,
					Index:    request.Index,
					Target:   request.Target,
					Before:   resource.ResourceStateCommon,
					After:    request.State,
				})
			}
			continue
		}

		if current == request.State {
			continue
		}

		t.logger.Debug("resource transition",
			slog.String("resource", request.Name),
			slog.Int("index", int(request.Index)),
			slog.String("before", current.String()),
			slog.String("after", request.State.String()),
		)
		barriers = append(barriers, Barrier{
			Kind:     BarrierKindTransition,
			Resource: request.Resource,
			Name:     request.Name,
			Index:    request.Index,
			Target:   request.Target,
			Before:   current,
			After:    request.State,
		})
	}

	for _, barrier := range t.uav {
		barriers = append(barriers, Barrier{
			Kind:     BarrierKindUnorderedAccess,
			Resource: barrier.Resource,
			Name:     barrier.Name,
			Index:    barrier.Index,
			Target:   barrier.Target,
			Before:   resource.ResourceStateUnorderedAccess,
			After:    resource.ResourceStateUnorderedAccess,
		})
	}

	t.aliasing = t.aliasing[:0]
	t.transitions = t.transitions[:0]
	t.uav = t.uav[:0]

	return barriers
}
