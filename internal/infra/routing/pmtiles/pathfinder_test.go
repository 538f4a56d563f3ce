package pmtiles

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFootpathGraph_AddSegment(t *testing.T) {
	graph := NewFootpathGraph()
	graph.AddSegment(&FootpathSegment{Points: []orb.Point{
		{79.0845, 12.1930},
		{79.0840, 12.1933},
		{79.0832, 12.1929},
	}})

	assert.Len(t, graph.Nodes, 3)
	for id := range graph.Nodes {
		assert.NotEmpty(t, graph.Edges[id], "every node is connected both ways")
	}

	var total int
	for _, edges := range graph.Edges {
		total += len(edges)
	}
	assert.Equal(t, 4, total)
}

func TestFootpathGraph_AddSegment_TooFewPoints(t *testing.T) {
	graph := NewFootpathGraph()
	graph.AddSegment(&FootpathSegment{Points: []orb.Point{{79.08, 12.19}}})

	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.Edges)
}

func TestFootpathGraph_NodeDeduplication(t *testing.T) {
	graph := NewFootpathGraph()
	graph.AddSegment(&FootpathSegment{Points: []orb.Point{{79.0845, 12.1930}, {79.0840, 12.1933}}})
	// shares the first vertex within rounding precision
	graph.AddSegment(&FootpathSegment{Points: []orb.Point{{79.084500001, 12.193000001}, {79.0832, 12.1929}}})

	assert.Len(t, graph.Nodes, 3)
}

func TestFootpathGraph_FindNearestNode(t *testing.T) {
	graph := NewFootpathGraph()
	_, _, found := graph.FindNearestNode(orb.Point{79.08, 12.19})
	assert.False(t, found)

	graph.AddSegment(&FootpathSegment{Points: []orb.Point{{79.0845, 12.1930}, {79.0832, 12.1929}}})

	id, dist, found := graph.FindNearestNode(orb.Point{79.0833, 12.1929})
	require.True(t, found)
	assert.Equal(t, orb.Point{79.0832, 12.1929}, graph.Nodes[id])
	assert.InDelta(t, geo.Distance(orb.Point{79.0833, 12.1929}, orb.Point{79.0832, 12.1929}), dist, 1e-6)
}

func TestPointKey(t *testing.T) {
	assert.Equal(t, "12.19300,79.08450", pointKey(orb.Point{79.084500001, 12.193000004}))
	assert.NotEqual(t, pointKey(orb.Point{79.0845, 12.1930}), pointKey(orb.Point{79.0846, 12.1930}))
}

func TestPathfinder_ShortestPathReturnsNodes(t *testing.T) {
	a := orb.Point{79.0800, 12.1900}
	b := orb.Point{79.0810, 12.1900}
	c := orb.Point{79.0820, 12.1900}
	detour := orb.Point{79.0810, 12.1950}

	graph := NewFootpathGraph()
	graph.AddSegment(&FootpathSegment{Points: []orb.Point{a, b, c}})
	graph.AddSegment(&FootpathSegment{Points: []orb.Point{a, detour, c}})

	source, _, _ := graph.FindNearestNode(a)
	target, _, _ := graph.FindNearestNode(c)

	result := NewPathfinder(graph).ShortestPath(source, target)
	require.True(t, result.IsReachable)
	assert.Equal(t, []orb.Point{a, b, c}, graph.Points(result))
	assert.InDelta(t, geo.Distance(a, b)+geo.Distance(b, c), result.Distance, 1e-6)
}

func TestPathfinder_ShortestPath_SameNode(t *testing.T) {
	graph := NewFootpathGraph()
	graph.AddSegment(&FootpathSegment{Points: []orb.Point{{79.08, 12.19}, {79.09, 12.19}}})
	id, _, _ := graph.FindNearestNode(orb.Point{79.08, 12.19})

	result := NewPathfinder(graph).ShortestPath(id, id)
	require.True(t, result.IsReachable)
	assert.Zero(t, result.Distance)
	assert.Equal(t, []NodeID{id}, result.Nodes)
}

func TestPathfinder_ShortestPath_Unreachable(t *testing.T) {
	graph := NewFootpathGraph()
	graph.AddSegment(&FootpathSegment{Points: []orb.Point{{79.080, 12.19}, {79.081, 12.19}}})
	graph.AddSegment(&FootpathSegment{Points: []orb.Point{{79.090, 12.19}, {79.091, 12.19}}})

	source, _, _ := graph.FindNearestNode(orb.Point{79.080, 12.19})
	target, _, _ := graph.FindNearestNode(orb.Point{79.091, 12.19})

	result := NewPathfinder(graph).ShortestPath(source, target)
	assert.False(t, result.IsReachable)
	assert.Empty(t, result.Nodes)
}

func TestPathfinder_ShortestPath_UnknownNodes(t *testing.T) {
	graph := NewFootpathGraph()
	graph.AddSegment(&FootpathSegment{Points: []orb.Point{{79.080, 12.19}, {79.081, 12.19}}})

	assert.False(t, NewPathfinder(graph).ShortestPath(999, 1).IsReachable)
	assert.False(t, NewPathfinder(graph).ShortestPath(1, 999).IsReachable)
}
