package resource_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/framegraph/resource"
)

func TestResourceStateValidate(t *testing.T) {
	require.NoError(t, resource.ResourceStateRenderTarget.Validate())
	require.NoError(t, resource.ResourceStateUnorderedAccess.Validate())
	require.NoError(t, resource.ResourceStatePixelShaderAccess.Validate())
	require.NoError(t, (resource.ResourceStatePixelShaderAccess | resource.ResourceStateCopySource | resource.ResourceStateDepthRead).Validate())

	require.Error(t, resource.ResourceStateCommon.Validate())
	require.Error(t, (resource.ResourceStateRenderTarget | resource.ResourceStatePixelShaderAccess).Validate())
	require.Error(t, (resource.ResourceStateRenderTarget | resource.ResourceStateDepthWrite).Validate())
	require.Error(t, resource.ResourceState(1<<20).Validate())
}

func TestResourceStateReadWrite(t *testing.T) {
	require.True(t, resource.ResourceStateCopySource.IsReadOnly())
	require.False(t, resource.ResourceStateCopyDest.IsReadOnly())
	require.False(t, resource.ResourceStateCommon.IsReadOnly())

	require.True(t, resource.ResourceStateDepthWrite.IsSingleWrite())
	require.False(t, resource.ResourceStateDepthRead.IsSingleWrite())
	require.False(t, (resource.ResourceStateDepthWrite | resource.ResourceStateCopyDest).IsSingleWrite())

	require.Zero(t, resource.ResourceStateReadStates&resource.ResourceStateWriteStates)
}

func TestParseResourceState(t *testing.T) {
	state, err := resource.ParseResourceState("PixelShaderAccess|NonPixelShaderAccess")
	require.NoError(t, err)
	require.Equal(t, resource.ResourceStatePixelAndNonPixelShaderAccess, state)

	state, err = resource.ParseResourceState("UnorderedAccess")
	require.NoError(t, err)
	require.Equal(t, resource.ResourceStateUnorderedAccess, state)

	_, err = resource.ParseResourceState("ShaderResource")
	require.Error(t, err)
}

func TestResourceStateString(t *testing.T) {
	require.Equal(t, "Common", resource.ResourceStateCommon.String())
	require.Equal(t, "RenderTarget", resource.ResourceStateRenderTarget.String())
	require.Equal(t, "UnorderedAccess", resource.ResourceStateUnorderedAccess.String())
}
