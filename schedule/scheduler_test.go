package schedule_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/framegraph/graph"
	"github.com/vkngwrapper/framegraph/resource"
	"github.com/vkngwrapper/framegraph/schedule"
)

func TestSchedulerDeclarations(t *testing.T) {
	g := newGraph(t, "GBuffer", "Lighting", "ToneMapping")
	scheduler := schedule.NewScheduler(testLogger(), g)

	gbuffer := passScheduler(t, scheduler, "GBuffer")
	require.NoError(t, gbuffer.NewRenderTarget("Albedo", unitTexture(t), resource.ColorClearValue(gputypes.Color{})))
	require.NoError(t, gbuffer.NewDepthStencil("Depth", unitTexture(t), resource.DepthStencilClearValue(1, 0)))

	lighting := passScheduler(t, scheduler, "Lighting")
	require.NoError(t, lighting.ReadTexture("Albedo"))
	require.NoError(t, lighting.ReadDepthStencil("Depth"))
	require.NoError(t, lighting.NewTexture("HDR", unitTexture(t)))

	toneMapping := passScheduler(t, scheduler, "ToneMapping")
	require.NoError(t, toneMapping.ReadTexture("HDR"))
	require.NoError(t, toneMapping.NewBuffer("Luminance", unitBuffer(t), 2))

	require.Equal(t, 4, scheduler.Records().Len())

	id, ok := g.Resource("Depth")
	require.True(t, ok)
	record, ok := scheduler.Records().Get(id)
	require.True(t, ok)
	require.Equal(t, graph.PassID(0), record.FirstPass())
	require.Equal(t, graph.PassID(1), record.LastPass())

	id, ok = g.Resource("Luminance")
	require.True(t, ok)
	record, ok = scheduler.Records().Get(id)
	require.True(t, ok)
	require.Equal(t, uint32(2), record.ResourceCount())
}

func TestSchedulerRecreateIsWrite(t *testing.T) {
	g := newGraph(t, "Clear", "Draw")
	scheduler := schedule.NewScheduler(testLogger(), g)

	require.NoError(t, passScheduler(t, scheduler, "Clear").NewRenderTarget("Target", unitTexture(t), resource.ClearValue{}))
	require.NoError(t, passScheduler(t, scheduler, "Draw").NewRenderTarget("Target", unitTexture(t), resource.ClearValue{}))
	require.Equal(t, 1, scheduler.Records().Len())

	record := scheduler.Records().All()[0]
	require.Len(t, record.Usages(), 2)

	g = newGraph(t, "Clear", "Draw")
	scheduler = schedule.NewScheduler(testLogger(), g)
	require.NoError(t, passScheduler(t, scheduler, "Clear").NewRenderTarget("Target", unitTexture(t), resource.ClearValue{}))

	bigger, err := resource.NewTextureFormat(resource.KindTexture2D, gputypes.TextureFormatRGBA8Unorm, resource.Dimensions{Width: 512, Height: 512}, 1)
	require.NoError(t, err)
	err = passScheduler(t, scheduler, "Draw").NewRenderTarget("Target", bigger, resource.ClearValue{})
	require.Error(t, err)
	require.True(t, errors.Is(err, schedule.ErrInvalidDeclaration))
}

func TestSchedulerContractViolations(t *testing.T) {
	g := newGraph(t, "First", "Second")
	scheduler := schedule.NewScheduler(testLogger(), g)
	first := passScheduler(t, scheduler, "First")
	second := passScheduler(t, scheduler, "Second")

	err := second.ReadTexture("Missing")
	require.Error(t, err)
	require.True(t, errors.Is(err, schedule.ErrUnknownResource))
	require.True(t, errors.Is(err, schedule.ErrInvalidDeclaration))
	require.Contains(t, err.Error(), `"Second"`)
	require.Contains(t, err.Error(), `"Missing"`)

	err = first.Create("Target", schedule.ResourceCreateInfo{Format: unitTexture(t)}, resource.ResourceStatePixelShaderAccess)
	require.True(t, errors.Is(err, schedule.ErrInvalidDeclaration))

	require.NoError(t, first.NewRenderTarget("Target", unitTexture(t), resource.ClearValue{}))

	err = first.ReadTexture("Target")
	require.True(t, errors.Is(err, schedule.ErrInvalidDeclaration))

	err = second.Read("Target", resource.ResourceStateCopyDest)
	require.True(t, errors.Is(err, schedule.ErrInvalidDeclaration))

	err = second.Write("Target", resource.ResourceStateCopySource)
	require.True(t, errors.Is(err, schedule.ErrInvalidDeclaration))

	err = first.Create("Empty", schedule.ResourceCreateInfo{}, resource.ResourceStateCopyDest)
	require.True(t, errors.Is(err, schedule.ErrInvalidDeclaration))

	huge, err := resource.NewBufferFormat(1<<32, 1<<24)
	require.NoError(t, err)
	err = first.Create("Huge", schedule.ResourceCreateInfo{Format: huge, Count: 1 << 10}, resource.ResourceStateCopyDest)
	require.True(t, errors.Is(err, schedule.ErrInvalidDeclaration))

	_, err = scheduler.Pass("Third")
	require.True(t, errors.Is(err, schedule.ErrInvalidDeclaration))
	_, err = scheduler.PassByID(2)
	require.True(t, errors.Is(err, schedule.ErrInvalidDeclaration))

	scheduler.Seal()
	err = second.ReadTexture("Target")
	require.True(t, errors.Is(err, schedule.ErrInvalidDeclaration))
}
