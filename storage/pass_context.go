package storage

import (
	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/framegraph/graph"
	"github.com/vkngwrapper/framegraph/schedule"
)

// PassContext is how a single pass finds its resources and barriers while it executes. It is only
// valid until the storage is destroyed.
type PassContext struct {
	storage *Storage
	pass    *passData
}

func (c *PassContext) ID() graph.PassID {
	return c.pass.id
}

func (c *PassContext) Name() string {
	return c.storage.graph.PassName(c.pass.id)
}

func (c *PassContext) lookup(name string, index uint32) (*allocatedResource, schedule.PassUsage, error) {
	id, ok := c.storage.graph.Resource(name)
	if !ok {
		return nil, schedule.PassUsage{}, errors.Wrapf(ErrUndeclaredResource, "pass %q, resource %q", c.Name(), name)
	}

	allocated, ok := c.storage.resources.Get(id)
	if !ok {
		return nil, schedule.PassUsage{}, errors.Wrapf(ErrUndeclaredResource, "pass %q, resource %q", c.Name(), name)
	}

	usage, ok := allocated.record.Usage(c.pass.id)
	if !ok {
		return nil, schedule.PassUsage{}, errors.Wrapf(ErrNotScheduled, "pass %q, resource %q", c.Name(), name)
	}

	if index >= allocated.request.Count {
		return nil, schedule.PassUsage{}, errors.Newf("pass %q, resource %q: index %d is out of range, the resource has %d elements", c.Name(), name, index, allocated.request.Count)
	}

	return allocated, usage, nil
}

// RenderTargetDescriptor returns the render target view of element index of the named texture. The
// pass must have declared the texture in the render target state.
func (c *PassContext) RenderTargetDescriptor(name string, index uint32) (Descriptor, error) {
	c.storage.mutex.RLock()
	defer c.storage.mutex.RUnlock()

	allocated, usage, err := c.lookup(name, index)
	if err != nil {
		return nil, err
	}

	if !usage.CreateTextureRTDescriptor {
		return nil, errors.Wrapf(ErrNotScheduled, "pass %q did not declare resource %q as a render target", c.Name(), name)
	}

	descriptor, ok := allocated.textures[index].RenderTargetDescriptor()
	if !ok {
		return nil, errors.AssertionFailedf("texture %q was created without a render target view", name)
	}
	return descriptor, nil
}

// DepthStencilDescriptor returns the depth/stencil view of element index of the named texture. The
// pass must have declared the texture in a depth state.
func (c *PassContext) DepthStencilDescriptor(name string, index uint32) (Descriptor, error) {
	c.storage.mutex.RLock()
	defer c.storage.mutex.RUnlock()

	allocated, usage, err := c.lookup(name, index)
	if err != nil {
		return nil, err
	}

	if !usage.CreateTextureDSDescriptor {
		return nil, errors.Wrapf(ErrNotScheduled, "pass %q did not declare resource %q as a depth/stencil target", c.Name(), name)
	}

	descriptor, ok := allocated.textures[index].DepthStencilDescriptor()
	if !ok {
		return nil, errors.AssertionFailedf("texture %q was created without a depth/stencil view", name)
	}
	return descriptor, nil
}

func (c *PassContext) Texture(name string, index uint32) (Texture, error) {
	c.storage.mutex.RLock()
	defer c.storage.mutex.RUnlock()

	allocated, _, err := c.lookup(name, index)
	if err != nil {
		return nil, err
	}

	if !allocated.request.Format.IsTexture() {
		return nil, errors.Newf("pass %q, resource %q: resource is a %s, not a texture", c.Name(), name, allocated.request.Format.Kind())
	}
	return allocated.textures[index], nil
}

func (c *PassContext) Buffer(name string, index uint32) (Buffer, error) {
	c.storage.mutex.RLock()
	defer c.storage.mutex.RUnlock()

	allocated, _, err := c.lookup(name, index)
	if err != nil {
		return nil, err
	}

	if !allocated.request.Format.IsBuffer() {
		return nil, errors.Newf("pass %q, resource %q: resource is a %s, not a buffer", c.Name(), name, allocated.request.Format.Kind())
	}
	return allocated.buffers[index], nil
}

// ScheduledResourceNames returns the name of every resource the pass declared, in resource id order
func (c *PassContext) ScheduledResourceNames() []string {
	names := make([]string, 0, len(c.pass.scheduled))
	for _, id := range c.pass.scheduled {
		names = append(names, c.storage.graph.ResourceName(id))
	}
	return names
}

// AliasingBarriers returns the aliasing barriers the pass must record before it uses any resource.
// The slice must not be modified.
func (c *PassContext) AliasingBarriers() []AliasingBarrier {
	return c.pass.aliasingBarriers
}

// UnorderedAccessBarriers returns the unordered access barriers the pass must record. The slice must
// not be modified.
func (c *PassContext) UnorderedAccessBarriers() []UnorderedAccessBarrier {
	return c.pass.uavBarriers
}

// ResourceTransitions returns the state every physical resource the pass uses must be in. The
// slice must not be modified.
func (c *PassContext) ResourceTransitions() []TransitionRequest {
	return c.pass.transitions
}

// RequestResourceTransitions sends the state of every physical resource the pass uses to sink
func (c *PassContext) RequestResourceTransitions(sink TransitionSink) {
	for _, transition := range c.pass.transitions {
		sink.RequestTransition(transition)
	}
}

// Submit sends every barrier the pass needs to sink in recording order: aliasing barriers, then
// transitions, then unordered access barriers
func (c *PassContext) Submit(sink BarrierSink) {
	for _, barrier := range c.pass.aliasingBarriers {
		sink.AliasingBarrier(barrier)
	}

	c.RequestResourceTransitions(sink)

	for _, barrier := range c.pass.uavBarriers {
		sink.UnorderedAccessBarrier(barrier)
	}
}

// DebugBuffer returns the pass's debug buffer, if CreateOptions.PassDebugBufferSize was set
func (c *PassContext) DebugBuffer() (Buffer, bool) {
	return c.pass.debugBuffer, c.pass.debugBuffer != nil
}
