package resource

import "github.com/gogpu/gputypes"

// ClearValue is the value a render target or depth/stencil texture is optimized to be cleared to
type ClearValue struct {
	Color   gputypes.Color
	Depth   float32
	Stencil uint32
}

func ColorClearValue(color gputypes.Color) ClearValue {
	return ClearValue{Color: color}
}

func DepthStencilClearValue(depth float32, stencil uint32) ClearValue {
	return ClearValue{Depth: depth, Stencil: stencil}
}

// IsClearable returns true if a resource expected to be used in the provided states will be
// cleared and so needs its ClearValue at creation time
func IsClearable(expectedStates ResourceState) bool {
	return expectedStates&(ResourceStateRenderTarget|ResourceStateDepthWrite) != 0
}
