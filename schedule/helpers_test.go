package schedule_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/framegraph/graph"
	"github.com/vkngwrapper/framegraph/resource"
	"github.com/vkngwrapper/framegraph/schedule"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newGraph(t *testing.T, passes ...string) *graph.Graph {
	g := graph.New()
	for _, pass := range passes {
		_, err := g.AddPass(pass)
		require.NoError(t, err)
	}
	return g
}

// 128x128 RGBA8 is exactly one placement alignment
func unitTexture(t *testing.T) resource.Format {
	format, err := resource.NewTextureFormat(resource.KindTexture2D, gputypes.TextureFormatRGBA8Unorm,
		resource.Dimensions{Width: 128, Height: 128}, 1)
	require.NoError(t, err)
	require.Equal(t, resource.PlacementAlignment, format.ResourceSizeInBytes())
	return format
}

func unitBuffer(t *testing.T) resource.Format {
	format, err := resource.NewBufferFormat(16, 4096)
	require.NoError(t, err)
	require.Equal(t, resource.PlacementAlignment, format.ResourceSizeInBytes())
	return format
}

func passScheduler(t *testing.T, scheduler *schedule.Scheduler, name string) *schedule.PassScheduler {
	pass, err := scheduler.Pass(name)
	require.NoError(t, err)
	return pass
}

func finalizeAll(t *testing.T, scheduler *schedule.Scheduler, universal bool) []*schedule.Record {
	scheduler.Seal()
	records := scheduler.Records().All()
	for _, record := range records {
		require.NoError(t, record.Finalize(universal))
	}
	return records
}

var gputypesBlack = gputypes.Color{R: 0, G: 0, B: 0, A: 1}
