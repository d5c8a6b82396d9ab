package graph

import (
	"github.com/cockroachdb/errors"
)

// PassID identifies a pass. Passes are added to a Graph in execution order, so a PassID is also
// the pass's position in that order.
type PassID int32

// ResourceID identifies a logical resource across the whole frame graph
type ResourceID int32

// NoPass is the PassID of a resource that no pass uses
const NoPass PassID = -1

// NoResource is returned when a resource name is unknown
const NoResource ResourceID = -1

// Graph is the fixed, ordered list of passes in a frame along with the names of every resource
// they declare
type Graph struct {
	passes    *Registry[PassID]
	resources *Registry[ResourceID]
}

func New() *Graph {
	return &Graph{
		passes:    NewRegistry[PassID](),
		resources: NewRegistry[ResourceID](),
	}
}

// AddPass appends a pass to the end of the execution order
func (g *Graph) AddPass(name string) (PassID, error) {
	if name == "" {
		return NoPass, errors.New("pass name cannot be empty")
	}

	id, added := g.passes.Intern(name)
	if !added {
		return NoPass, errors.Newf("pass %q was already added to the graph", name)
	}

	return id, nil
}

// Pass returns the id of the named pass
func (g *Graph) Pass(name string) (PassID, bool) {
	return g.passes.Lookup(name)
}

func (g *Graph) PassName(id PassID) string {
	return g.passes.Name(id)
}

func (g *Graph) PassCount() int {
	return g.passes.Len()
}

// Passes returns every pass id in execution order
func (g *Graph) Passes() []PassID {
	ids := make([]PassID, g.passes.Len())
	for i := range ids {
		ids[i] = PassID(i)
	}
	return ids
}

// InternResource returns the id of the named resource, creating one if the name is new. The
// boolean return value is true if the resource was newly created.
func (g *Graph) InternResource(name string) (ResourceID, bool) {
	return g.resources.Intern(name)
}

// Resource returns the id of the named resource
func (g *Graph) Resource(name string) (ResourceID, bool) {
	id, ok := g.resources.Lookup(name)
	if !ok {
		return NoResource, false
	}
	return id, true
}

func (g *Graph) ResourceName(id ResourceID) string {
	return g.resources.Name(id)
}

func (g *Graph) ResourceCount() int {
	return g.resources.Len()
}
