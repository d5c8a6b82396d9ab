package storage_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/framegraph/backend/null"
	"github.com/vkngwrapper/framegraph/graph"
	"github.com/vkngwrapper/framegraph/resource"
	"github.com/vkngwrapper/framegraph/schedule"
	"github.com/vkngwrapper/framegraph/storage"
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

func newNullStorage(t *testing.T, options storage.CreateOptions, passes ...string) (*storage.Storage, *null.Factory) {
	factory := null.NewFactory(testLogger())
	s, err := storage.New(testLogger(), newGraph(t, passes...), factory, factory, options)
	require.NoError(t, err)
	return s, factory
}

func declare(t *testing.T, s *storage.Storage, pass string) *schedule.PassScheduler {
	scheduler, err := s.Scheduler().Pass(pass)
	require.NoError(t, err)
	return scheduler
}

func passContext(t *testing.T, s *storage.Storage, pass string) *storage.PassContext {
	ctx, err := s.Pass(pass)
	require.NoError(t, err)
	return ctx
}

// 128x128 RGBA8 is exactly one placement alignment
func unitTexture(t *testing.T) resource.Format {
	format, err := resource.NewTextureFormat(resource.KindTexture2D, gputypes.TextureFormatRGBA8Unorm,
		resource.Dimensions{Width: 128, Height: 128}, 1)
	require.NoError(t, err)
	return format
}

func unitBuffer(t *testing.T) resource.Format {
	format, err := resource.NewBufferFormat(16, 4096)
	require.NoError(t, err)
	return format
}

type recordedBarrier struct {
	kind  string
	name  string
	index uint32
	state resource.ResourceState
}

type recordingSink struct {
	barriers []recordedBarrier
}

func (s *recordingSink) RequestTransition(request storage.TransitionRequest) {
	s.barriers = append(s.barriers, recordedBarrier{kind: "transition", name: request.Name, index: request.Index, state: request.State})
}

func (s *recordingSink) AliasingBarrier(barrier storage.AliasingBarrier) {
	s.barriers = append(s.barriers, recordedBarrier{kind: "aliasing", name: barrier.Name, index: barrier.Index})
}

func (s *recordingSink) UnorderedAccessBarrier(barrier storage.UnorderedAccessBarrier) {
	s.barriers = append(s.barriers, recordedBarrier{kind: "uav", name: barrier.Name, index: barrier.Index})
}
