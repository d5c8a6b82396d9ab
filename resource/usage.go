package resource

import "github.com/gogpu/gputypes"

// TextureUsage returns the WebGPU usage flags a texture needs to be used in every one of the
// provided states
func TextureUsage(expectedStates ResourceState) gputypes.TextureUsage {
	var usage gputypes.TextureUsage

	if expectedStates&(ResourceStateRenderTarget|ResourceStateDepthWrite|ResourceStateDepthRead) != 0 {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	if expectedStates&ResourceStatePixelAndNonPixelShaderAccess != 0 {
		usage |= gputypes.TextureUsageTextureBinding
	}
	if expectedStates&ResourceStateUnorderedAccess != 0 {
		usage |= gputypes.TextureUsageStorageBinding
	}
	if expectedStates&ResourceStateCopySource != 0 {
		usage |= gputypes.TextureUsageCopySrc
	}
	if expectedStates&ResourceStateCopyDest != 0 {
		usage |= gputypes.TextureUsageCopyDst
	}

	return usage
}

// BufferUsage returns the WebGPU usage flags a buffer needs to be used in every one of the
// provided states
func BufferUsage(expectedStates ResourceState) gputypes.BufferUsage {
	var usage gputypes.BufferUsage

	if expectedStates&ResourceStateVertexAndConstantBuffer != 0 {
		usage |= gputypes.BufferUsageVertex | gputypes.BufferUsageUniform
	}
	if expectedStates&ResourceStateIndexBuffer != 0 {
		usage |= gputypes.BufferUsageIndex
	}
	if expectedStates&(ResourceStateUnorderedAccess|ResourceStatePixelAndNonPixelShaderAccess) != 0 {
		usage |= gputypes.BufferUsageStorage
	}
	if expectedStates&ResourceStateIndirectArgument != 0 {
		usage |= gputypes.BufferUsageIndirect
	}
	if expectedStates&ResourceStateCopySource != 0 {
		usage |= gputypes.BufferUsageCopySrc
	}
	if expectedStates&ResourceStateCopyDest != 0 {
		usage |= gputypes.BufferUsageCopyDst
	}

	return usage
}
