package resource

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v2/common"
)

// ResourceState is a bitmask of the ways a pass can access a resource. A pass requests either any
// combination of read states, or exactly one write state.
type ResourceState int32

var resourceStateMapping = common.NewFlagStringMapping[ResourceState]()

func (s ResourceState) Register(str string) {
	resourceStateMapping.Register(s, str)
}

func (s ResourceState) String() string {
	if s == ResourceStateCommon {
		return "Common"
	}
	return resourceStateMapping.FlagsToString(s)
}

// ResourceStateCommon is the state every resource is able to decay to. It is part of every
// resource's expected states but is never a valid requested state.
const ResourceStateCommon ResourceState = 0

const (
	ResourceStateVertexAndConstantBuffer ResourceState = 1 << iota
	ResourceStateIndexBuffer
	// ResourceStateRenderTarget is used when a texture is bound as a color attachment
	ResourceStateRenderTarget
	// ResourceStateUnorderedAccess is used when a shader both reads and writes a resource. Two consecutive
	// unordered access usages need an unordered access barrier rather than a transition.
	ResourceStateUnorderedAccess
	ResourceStateDepthWrite
	ResourceStateDepthRead
	ResourceStateNonPixelShaderAccess
	ResourceStatePixelShaderAccess
	ResourceStateIndirectArgument
	ResourceStateCopyDest
	ResourceStateCopySource

	// ResourceStateReadStates are the states that can be combined with each other in a single request
	ResourceStateReadStates = ResourceStateVertexAndConstantBuffer | ResourceStateIndexBuffer |
		ResourceStateDepthRead | ResourceStateNonPixelShaderAccess | ResourceStatePixelShaderAccess |
		ResourceStateIndirectArgument | ResourceStateCopySource
	// ResourceStateWriteStates are the states that must be requested alone
	ResourceStateWriteStates = ResourceStateRenderTarget | ResourceStateUnorderedAccess |
		ResourceStateDepthWrite | ResourceStateCopyDest
	// ResourceStatePixelAndNonPixelShaderAccess is a convenience combination for resources read by every shader stage
	ResourceStatePixelAndNonPixelShaderAccess = ResourceStatePixelShaderAccess | ResourceStateNonPixelShaderAccess
)

func init() {
	ResourceStateVertexAndConstantBuffer.Register("VertexAndConstantBuffer")
	ResourceStateIndexBuffer.Register("IndexBuffer")
	ResourceStateRenderTarget.Register("RenderTarget")
	ResourceStateUnorderedAccess.Register("UnorderedAccess")
	ResourceStateDepthWrite.Register("DepthWrite")
	ResourceStateDepthRead.Register("DepthRead")
	ResourceStateNonPixelShaderAccess.Register("NonPixelShaderAccess")
	ResourceStatePixelShaderAccess.Register("PixelShaderAccess")
	ResourceStateIndirectArgument.Register("IndirectArgument")
	ResourceStateCopyDest.Register("CopyDest")
	ResourceStateCopySource.Register("CopySource")
}

var resourceStatesByName = map[string]ResourceState{
	"Common":                  ResourceStateCommon,
	"VertexAndConstantBuffer": ResourceStateVertexAndConstantBuffer,
	"IndexBuffer":             ResourceStateIndexBuffer,
	"RenderTarget":            ResourceStateRenderTarget,
	"UnorderedAccess":         ResourceStateUnorderedAccess,
	"DepthWrite":              ResourceStateDepthWrite,
	"DepthRead":               ResourceStateDepthRead,
	"NonPixelShaderAccess":    ResourceStateNonPixelShaderAccess,
	"PixelShaderAccess":       ResourceStatePixelShaderAccess,
	"IndirectArgument":        ResourceStateIndirectArgument,
	"CopyDest":                ResourceStateCopyDest,
	"CopySource":              ResourceStateCopySource,
}

// ParseResourceState parses a |-separated list of state names, such as "PixelShaderAccess|CopySource"
func ParseResourceState(str string) (ResourceState, error) {
	var state ResourceState
	for _, name := range strings.Split(str, "|") {
		flag, ok := resourceStatesByName[strings.TrimSpace(name)]
		if !ok {
			return 0, errors.Newf("unknown resource state %q", name)
		}
		state |= flag
	}

	return state, nil
}

// IsReadOnly returns true if the state is non-empty and made entirely of read states
func (s ResourceState) IsReadOnly() bool {
	return s != ResourceStateCommon && s&^ResourceStateReadStates == 0
}

// IsSingleWrite returns true if the state is exactly one write state
func (s ResourceState) IsSingleWrite() bool {
	return s&^ResourceStateWriteStates == 0 && s != 0 && s&(s-1) == 0
}

// Validate returns an error unless the state is a valid request: either pure read or a single write
func (s ResourceState) Validate() error {
	if s == ResourceStateCommon {
		return errors.New("Common cannot be requested by a pass")
	}

	if s.IsReadOnly() || s.IsSingleWrite() {
		return nil
	}

	if s&ResourceStateWriteStates == 0 {
		return errors.Newf("state %s contains unknown bits", s)
	}

	return errors.Newf("state %s combines a write state with other states", s)
}
