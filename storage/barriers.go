package storage

import (
	"github.com/vkngwrapper/framegraph/graph"
	"github.com/vkngwrapper/framegraph/resource"
)

// AliasingBarrier must be issued before a pass first uses a resource whose memory another resource
// occupied earlier in the frame
type AliasingBarrier struct {
	Resource graph.ResourceID
	Name     string
	Index    uint32
	Target   Resource
}

// UnorderedAccessBarrier must be issued before a pass uses a resource with unordered access right after
// another pass did the same
type UnorderedAccessBarrier struct {
	Resource graph.ResourceID
	Name     string
	Index    uint32
	Target   Resource
}

// TransitionRequest asks for a resource to be in State while a pass executes
type TransitionRequest struct {
	Resource graph.ResourceID
	Name     string
	Index    uint32
	Target   Resource
	State    resource.ResourceState
}

// TransitionSink receives the state every resource must be in for a pass
type TransitionSink interface {
	RequestTransition(request TransitionRequest)
}

// BarrierSink receives every barrier a pass needs, in the order they must be recorded: aliasing
// barriers, then transitions, then unordered access barriers
type BarrierSink interface {
	TransitionSink
	AliasingBarrier(barrier AliasingBarrier)
	UnorderedAccessBarrier(barrier UnorderedAccessBarrier)
}
