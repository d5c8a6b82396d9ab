package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/framegraph/graph"
)

func TestGraphPassOrder(t *testing.T) {
	g := graph.New()

	gbuffer, err := g.AddPass("GBuffer")
	require.NoError(t, err)
	lighting, err := g.AddPass("Lighting")
	require.NoError(t, err)
	toneMapping, err := g.AddPass("ToneMapping")
	require.NoError(t, err)

	require.Equal(t, graph.PassID(0), gbuffer)
	require.Equal(t, graph.PassID(1), lighting)
	require.Equal(t, graph.PassID(2), toneMapping)
	require.Equal(t, []graph.PassID{0, 1, 2}, g.Passes())
	require.Equal(t, 3, g.PassCount())
	require.Equal(t, "Lighting", g.PassName(lighting))

	id, ok := g.Pass("ToneMapping")
	require.True(t, ok)
	require.Equal(t, toneMapping, id)

	_, ok = g.Pass("Bloom")
	require.False(t, ok)

	_, err = g.AddPass("Lighting")
	require.Error(t, err)
	_, err = g.AddPass("")
	require.Error(t, err)
}

func TestGraphResources(t *testing.T) {
	g := graph.New()

	albedo, added := g.InternResource("Albedo")
	require.True(t, added)
	normals, added := g.InternResource("Normals")
	require.True(t, added)
	again, added := g.InternResource("Albedo")
	require.False(t, added)

	require.Equal(t, albedo, again)
	require.NotEqual(t, albedo, normals)
	require.Equal(t, 2, g.ResourceCount())
	require.Equal(t, "Normals", g.ResourceName(normals))
	require.Equal(t, "", g.ResourceName(graph.ResourceID(7)))

	_, ok := g.Resource("Depth")
	require.False(t, ok)
}

func TestRegistryManyNames(t *testing.T) {
	registry := graph.NewRegistry[graph.ResourceID]()
	for i := 0; i < 1000; i++ {
		id, added := registry.Intern(string(rune('a'+i%26)) + string(rune('A'+i/26)))
		require.True(t, added)
		require.Equal(t, graph.ResourceID(i), id)
	}

	require.Equal(t, 1000, registry.Len())
	id, ok := registry.Lookup("bA")
	require.True(t, ok)
	require.Equal(t, "bA", registry.Name(id))
}
