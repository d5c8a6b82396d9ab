package vulkan

import (
	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/vkngwrapper/core/v2/core1_0"
	"github.com/vkngwrapper/framegraph/resource"
)

// Scope is the pipeline stages, memory access, and image layout a resource state corresponds to
type Scope struct {
	Stages core1_0.PipelineStageFlags
	Access core1_0.AccessFlags
	// Layout is only meaningful for textures. It is ImageLayoutUndefined for buffers.
	Layout core1_0.ImageLayout
}

type stateScope struct {
	state  resource.ResourceState
	stages core1_0.PipelineStageFlags
	access core1_0.AccessFlags
	layout core1_0.ImageLayout
}

const allShaderStages = core1_0.PipelineStageVertexShader | core1_0.PipelineStageFragmentShader |
	core1_0.PipelineStageComputeShader

var stateScopes = []stateScope{
	{
		state:  resource.ResourceStateVertexAndConstantBuffer,
		stages: core1_0.PipelineStageVertexInput | allShaderStages,
		access: core1_0.AccessVertexAttributeRead | core1_0.AccessUniformRead,
		layout: core1_0.ImageLayoutGeneral,
	},
	{
		state:  resource.ResourceStateIndexBuffer,
		stages: core1_0.PipelineStageVertexInput,
		access: core1_0.AccessIndexRead,
		layout: core1_0.ImageLayoutGeneral,
	},
	{
		state:  resource.ResourceStateRenderTarget,
		stages: core1_0.PipelineStageColorAttachmentOutput,
		access: core1_0.AccessColorAttachmentRead | core1_0.AccessColorAttachmentWrite,
		layout: core1_0.ImageLayoutColorAttachmentOptimal,
	},
	{
		state:  resource.ResourceStateUnorderedAccess,
		stages: allShaderStages,
		access: core1_0.AccessShaderRead | core1_0.AccessShaderWrite,
		layout: core1_0.ImageLayoutGeneral,
	},
	{
		state:  resource.ResourceStateDepthWrite,
		stages: core1_0.PipelineStageEarlyFragmentTests | core1_0.PipelineStageLateFragmentTests,
		access: core1_0.AccessDepthStencilAttachmentRead | core1_0.AccessDepthStencilAttachmentWrite,
		layout: core1_0.ImageLayoutDepthStencilAttachmentOptimal,
	},
	{
		state:  resource.ResourceStateDepthRead,
		stages: core1_0.PipelineStageEarlyFragmentTests | core1_0.PipelineStageLateFragmentTests,
		access: core1_0.AccessDepthStencilAttachmentRead,
		layout: core1_0.ImageLayoutDepthStencilReadOnlyOptimal,
	},
	{
		state:  resource.ResourceStateNonPixelShaderAccess,
		stages: core1_0.PipelineStageVertexShader | core1_0.PipelineStageComputeShader,
		access: core1_0.AccessShaderRead,
		layout: core1_0.ImageLayoutShaderReadOnlyOptimal,
	},
	{
		state:  resource.ResourceStatePixelShaderAccess,
		stages: core1_0.PipelineStageFragmentShader,
		access: core1_0.AccessShaderRead,
		layout: core1_0.ImageLayoutShaderReadOnlyOptimal,
	},
	{
		state:  resource.ResourceStateIndirectArgument,
		stages: core1_0.PipelineStageDrawIndirect,
		access: core1_0.AccessIndirectCommandRead,
		layout: core1_0.ImageLayoutGeneral,
	},
	{
		state:  resource.ResourceStateCopyDest,
		stages: core1_0.PipelineStageTransfer,
		access: core1_0.AccessTransferWrite,
		layout: core1_0.ImageLayoutTransferDstOptimal,
	},
	{
		state:  resource.ResourceStateCopySource,
		stages: core1_0.PipelineStageTransfer,
		access: core1_0.AccessTransferRead,
		layout: core1_0.ImageLayoutTransferSrcOptimal,
	},
}

// ScopeForState returns the synchronization scope of a resource in the provided state. Combined read
// states union their stages and access. A texture whose read states want different layouts is placed
// in ImageLayoutGeneral, except that depth reads and shader reads share the read-only depth layout.
func ScopeForState(state resource.ResourceState, texture bool) Scope {
	if state == resource.ResourceStateCommon {
		scope := Scope{Stages: core1_0.PipelineStageTopOfPipe}
		if texture {
			scope.Layout = core1_0.ImageLayoutGeneral
		}
		return scope
	}

	var scope Scope
	layoutSet := false
	for _, entry := range stateScopes {
		if state&entry.state == 0 {
			continue
		}

		scope.Stages |= entry.stages
		scope.Access |= entry.access

		if !texture {
			continue
		}

		switch {
		case !layoutSet:
			scope.Layout = entry.layout
			layoutSet = true
		case scope.Layout == entry.layout:
		case isDepthReadShaderPair(scope.Layout, entry.layout):
			scope.Layout = core1_0.ImageLayoutDepthStencilReadOnlyOptimal
		default:
			scope.Layout = core1_0.ImageLayoutGeneral
		}
	}

	return scope
}

func isDepthReadShaderPair(left, right core1_0.ImageLayout) bool {
	return (left == core1_0.ImageLayoutDepthStencilReadOnlyOptimal && right == core1_0.ImageLayoutShaderReadOnlyOptimal) ||
		(left == core1_0.ImageLayoutShaderReadOnlyOptimal && right == core1_0.ImageLayoutDepthStencilReadOnlyOptimal)
}

// ImageUsage returns the usage flags an image needs to be used in every one of the provided states
func ImageUsage(expectedStates resource.ResourceState) core1_0.ImageUsageFlags {
	var usage core1_0.ImageUsageFlags

	if expectedStates&resource.ResourceStateRenderTarget != 0 {
		usage |= core1_0.ImageUsageColorAttachment
	}
	if expectedStates&(resource.ResourceStateDepthWrite|resource.ResourceStateDepthRead) != 0 {
		usage |= core1_0.ImageUsageDepthStencilAttachment
	}
	if expectedStates&resource.ResourceStatePixelAndNonPixelShaderAccess != 0 {
		usage |= core1_0.ImageUsageSampled
	}
	if expectedStates&resource.ResourceStateUnorderedAccess != 0 {
		usage |= core1_0.ImageUsageStorage
	}
	if expectedStates&resource.ResourceStateCopySource != 0 {
		usage |= core1_0.ImageUsageTransferSrc
	}
	if expectedStates&resource.ResourceStateCopyDest != 0 {
		usage |= core1_0.ImageUsageTransferDst
	}

	return usage
}

// BufferUsage returns the usage flags a buffer needs to be used in every one of the provided states
func BufferUsage(expectedStates resource.ResourceState) core1_0.BufferUsageFlags {
	var usage core1_0.BufferUsageFlags

	if expectedStates&resource.ResourceStateVertexAndConstantBuffer != 0 {
		usage |= core1_0.BufferUsageVertexBuffer | core1_0.BufferUsageUniformBuffer
	}
	if expectedStates&resource.ResourceStateIndexBuffer != 0 {
		usage |= core1_0.BufferUsageIndexBuffer
	}
	if expectedStates&(resource.ResourceStateUnorderedAccess|resource.ResourceStatePixelAndNonPixelShaderAccess) != 0 {
		usage |= core1_0.BufferUsageStorageBuffer
	}
	if expectedStates&resource.ResourceStateIndirectArgument != 0 {
		usage |= core1_0.BufferUsageIndirectBuffer
	}
	if expectedStates&resource.ResourceStateCopySource != 0 {
		usage |= core1_0.BufferUsageTransferSrc
	}
	if expectedStates&resource.ResourceStateCopyDest != 0 {
		usage |= core1_0.BufferUsageTransferDst
	}

	return usage
}

var formats = map[gputypes.TextureFormat]core1_0.Format{
	gputypes.TextureFormatR8Unorm:             core1_0.FormatR8UnsignedNormalized,
	gputypes.TextureFormatRGBA8Unorm:          core1_0.FormatR8G8B8A8UnsignedNormalized,
	gputypes.TextureFormatRGBA8Snorm:          core1_0.FormatR8G8B8A8SignedNormalized,
	gputypes.TextureFormatBGRA8Unorm:          core1_0.FormatB8G8R8A8UnsignedNormalized,
	gputypes.TextureFormatR16Float:            core1_0.FormatR16SignedFloat,
	gputypes.TextureFormatRG16Float:           core1_0.FormatR16G16SignedFloat,
	gputypes.TextureFormatRGBA16Float:         core1_0.FormatR16G16B16A16SignedFloat,
	gputypes.TextureFormatR32Float:            core1_0.FormatR32SignedFloat,
	gputypes.TextureFormatR32Uint:             core1_0.FormatR32UnsignedInt,
	gputypes.TextureFormatRG32Float:           core1_0.FormatR32G32SignedFloat,
	gputypes.TextureFormatRGBA32Float:         core1_0.FormatR32G32B32A32SignedFloat,
	gputypes.TextureFormatDepth32Float:        core1_0.FormatD32SignedFloat,
	gputypes.TextureFormatDepth24PlusStencil8: core1_0.FormatD24UnsignedNormalizedS8UnsignedInt,
}

// Format returns the Vulkan format of a texture pixel format
func Format(format gputypes.TextureFormat) (core1_0.Format, error) {
	vkFormat, ok := formats[format]
	if !ok {
		return core1_0.FormatUndefined, errors.Newf("pixel format %s has no vulkan equivalent", resource.PixelFormatName(format))
	}
	return vkFormat, nil
}

// AspectFor returns the image aspects views of a texture with the provided pixel format cover
func AspectFor(format gputypes.TextureFormat) core1_0.ImageAspectFlags {
	switch format {
	case gputypes.TextureFormatDepth24PlusStencil8:
		return core1_0.ImageAspectDepth | core1_0.ImageAspectStencil
	case gputypes.TextureFormatDepth32Float:
		return core1_0.ImageAspectDepth
	default:
		return core1_0.ImageAspectColor
	}
}
