package pmtiles

import (
	"container/heap"
	"math"
	"slices"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// NodeID represents a unique node identifier in the footpath graph
type NodeID int64

// Edge represents a walkable connection in the footpath graph
type Edge struct {
	To       NodeID
	Distance float64 // Distance in meters
}

// FootpathGraph is the undirected walking network built from MVT data
type FootpathGraph struct {
	Nodes    map[NodeID]orb.Point
	Edges    map[NodeID][]Edge
	nodeIdx  int64
	pointMap map[string]NodeID // Maps "lat,lng" to NodeID for deduplication
}

// NewFootpathGraph creates a new empty graph
func NewFootpathGraph() *FootpathGraph {
	return &FootpathGraph{
		Nodes:    make(map[NodeID]orb.Point),
		Edges:    make(map[NodeID][]Edge),
		pointMap: make(map[string]NodeID),
	}
}

// AddSegment adds a footpath segment to the graph. Pedestrians ignore one-way
// restrictions, so every edge is added in both directions.
func (g *FootpathGraph) AddSegment(segment *FootpathSegment) {
	if len(segment.Points) < 2 {
		return
	}

	prevNodeID := g.getOrCreateNode(segment.Points[0])

	for i := 1; i < len(segment.Points); i++ {
		currNodeID := g.getOrCreateNode(segment.Points[i])
		if currNodeID == prevNodeID {
			continue
		}

		dist := geo.Distance(segment.Points[i-1], segment.Points[i])
		g.Edges[prevNodeID] = append(g.Edges[prevNodeID], Edge{To: currNodeID, Distance: dist})
		g.Edges[currNodeID] = append(g.Edges[currNodeID], Edge{To: prevNodeID, Distance: dist})

		prevNodeID = currNodeID
	}
}

// getOrCreateNode gets an existing node or creates a new one
func (g *FootpathGraph) getOrCreateNode(point orb.Point) NodeID {
	key := pointKey(point)

	if id, exists := g.pointMap[key]; exists {
		return id
	}

	g.nodeIdx++
	id := NodeID(g.nodeIdx)
	g.Nodes[id] = point
	g.pointMap[key] = id

	return id
}

// pointKey creates a string key for a point (rounded to ~1m precision)
func pointKey(p orb.Point) string {
	lat := math.Round(p[1]*100000) / 100000
	lng := math.Round(p[0]*100000) / 100000

	return strconv.FormatFloat(lat, 'f', 5, 64) + "," + strconv.FormatFloat(lng, 'f', 5, 64)
}

// FindNearestNode finds the nearest node to a given point.
// Ties go to the lowest node ID so repeated queries agree.
func (g *FootpathGraph) FindNearestNode(point orb.Point) (NodeID, float64, bool) {
	if len(g.Nodes) == 0 {
		return 0, 0, false
	}

	var nearestID NodeID
	nearestDist := math.MaxFloat64

	for id, nodePoint := range g.Nodes {
		dist := geo.Distance(point, nodePoint)
		if dist < nearestDist || (dist == nearestDist && id < nearestID) {
			nearestDist = dist
			nearestID = id
		}
	}

	return nearestID, nearestDist, true
}

// PathResult represents the result of a path search
type PathResult struct {
	Distance    float64  // Total distance in meters
	Nodes       []NodeID // Visited nodes from source to target inclusive
	IsReachable bool
}

// Points resolves the path nodes to coordinates
func (g *FootpathGraph) Points(result PathResult) []orb.Point {
	points := make([]orb.Point, 0, len(result.Nodes))
	for _, id := range result.Nodes {
		points = append(points, g.Nodes[id])
	}

	return points
}

// Pathfinder implements shortest path search on the footpath graph
type Pathfinder struct {
	graph *FootpathGraph
}

// NewPathfinder creates a new pathfinder for the given graph
func NewPathfinder(graph *FootpathGraph) *Pathfinder {
	return &Pathfinder{graph: graph}
}

// dijkstraNode represents a node in the priority queue
type dijkstraNode struct {
	id       NodeID
	distance float64
	index    int // Index in the heap
}

// priorityQueue implements heap.Interface for Dijkstra's algorithm
type priorityQueue []*dijkstraNode

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].distance < pq[j].distance
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	n := len(*pq)
	node := x.(*dijkstraNode)
	node.index = n
	*pq = append(*pq, node)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*pq = old[0 : n-1]

	return node
}

// ShortestPath finds the shortest walking path from source to target using Dijkstra's algorithm
func (pf *Pathfinder) ShortestPath(sourceID, targetID NodeID) PathResult {
	if _, exists := pf.graph.Nodes[sourceID]; !exists {
		return PathResult{IsReachable: false}
	}
	if _, exists := pf.graph.Nodes[targetID]; !exists {
		return PathResult{IsReachable: false}
	}

	distances := make(map[NodeID]float64, len(pf.graph.Nodes))
	previous := make(map[NodeID]NodeID, len(pf.graph.Nodes))
	visited := make(map[NodeID]bool, len(pf.graph.Nodes))
	distances[sourceID] = 0

	queue := make(priorityQueue, 0)
	heap.Init(&queue)
	heap.Push(&queue, &dijkstraNode{id: sourceID})

	for queue.Len() > 0 {
		current := heap.Pop(&queue).(*dijkstraNode)

		if visited[current.id] {
			continue
		}
		visited[current.id] = true

		if current.id == targetID {
			return PathResult{
				Distance:    current.distance,
				Nodes:       reconstruct(previous, sourceID, targetID),
				IsReachable: true,
			}
		}

		for _, edge := range pf.graph.Edges[current.id] {
			if visited[edge.To] {
				continue
			}

			newDist := current.distance + edge.Distance
			if known, ok := distances[edge.To]; !ok || newDist < known {
				distances[edge.To] = newDist
				previous[edge.To] = current.id
				heap.Push(&queue, &dijkstraNode{id: edge.To, distance: newDist})
			}
		}
	}

	return PathResult{IsReachable: false}
}

func reconstruct(previous map[NodeID]NodeID, sourceID, targetID NodeID) []NodeID {
	path := []NodeID{targetID}
	for id := targetID; id != sourceID; {
		id = previous[id]
		path = append(path, id)
	}
	slices.Reverse(path)

	return path
}
