package engine

import (
	"container/heap"

	"github.com/samber/oops"

	"avoid/core"
)

// vertexNode represents a state in the polyline A* search over the
// visibility graph.
type vertexNode struct {
	vertex int
	gCost  float64
	fCost  float64
	parent *vertexNode
	index  int // index in the heap
}

// vertexQueue is a priority queue for visibility-graph nodes.
type vertexQueue []*vertexNode

func (q vertexQueue) Len() int { return len(q) }

func (q vertexQueue) Less(i, j int) bool {
	if q[i].fCost != q[j].fCost {
		return q[i].fCost < q[j].fCost
	}
	return q[i].vertex < q[j].vertex
}

func (q vertexQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *vertexQueue) Push(x interface{}) {
	n := x.(*vertexNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *vertexQueue) Pop() interface{} {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*q = old[0 : n-1]
	return node
}

// routePolyline finds a straight-segment route from start to end around the
// given obstacles.
//
// The search runs on the visibility graph whose vertices are the endpoints
// and the corners of every obstacle inflated by the margin. Two vertices are
// connected when the segment between them does not cross any obstacle's open
// interior; edges are weighted by Euclidean length.
func routePolyline(start, end core.Point, obstacles []core.Rect, config Config) (core.Route, error) {
	// Most connectors have a clear line of sight; skip graph construction.
	if !segmentBlocked(start, end, obstacles) {
		return core.Route{Points: []core.Point{start, end}}, nil
	}

	verts := visibilityVertices(start, end, obstacles, config.ObstacleMargin)
	const startIdx, endIdx = 0, 1

	openSet := &vertexQueue{}
	heap.Init(openSet)
	closedSet := make([]bool, len(verts))
	nodeMap := make([]*vertexNode, len(verts))

	startNode := &vertexNode{vertex: startIdx, fCost: start.Distance(end)}
	heap.Push(openSet, startNode)
	nodeMap[startIdx] = startNode

	for openSet.Len() > 0 {
		current := heap.Pop(openSet).(*vertexNode)
		if current.vertex == endIdx {
			return reconstructVertexRoute(current, verts), nil
		}
		closedSet[current.vertex] = true

		from := verts[current.vertex]
		for v, to := range verts {
			if v == current.vertex || closedSet[v] {
				continue
			}
			if segmentBlocked(from, to, obstacles) {
				continue
			}

			tentative := current.gCost + from.Distance(to)
			existing := nodeMap[v]
			if existing == nil {
				node := &vertexNode{
					vertex: v,
					gCost:  tentative,
					fCost:  tentative + to.Distance(end),
					parent: current,
				}
				heap.Push(openSet, node)
				nodeMap[v] = node
			} else if tentative < existing.gCost {
				existing.fCost += tentative - existing.gCost
				existing.gCost = tentative
				existing.parent = current
				heap.Fix(openSet, existing.index)
			}
		}
	}

	return core.Route{}, oops.Errorf("no polyline route from (%g,%g) to (%g,%g)",
		start.X, start.Y, end.X, end.Y)
}

// visibilityVertices returns the visibility-graph vertices for a scene: the
// start and end points (at indices 0 and 1) followed by the inflated corners
// of every obstacle. Corners inside another obstacle's interior are useless
// and dropped.
func visibilityVertices(start, end core.Point, obstacles []core.Rect, margin float64) []core.Point {
	verts := []core.Point{start, end}
	for _, r := range obstacles {
		for _, corner := range r.Inflate(margin).Corners() {
			blocked := false
			for _, other := range obstacles {
				if other.ContainsInterior(corner) {
					blocked = true
					break
				}
			}
			if !blocked {
				verts = append(verts, corner)
			}
		}
	}
	return verts
}

// reconstructVertexRoute walks parent links back to the start and returns
// the route in start-to-end order.
func reconstructVertexRoute(goal *vertexNode, verts []core.Point) core.Route {
	var points []core.Point
	for n := goal; n != nil; n = n.parent {
		points = append(points, verts[n.vertex])
	}
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return core.Route{Points: simplifyRoute(points)}
}
