package engine

import (
	"container/heap"
	"sort"

	"github.com/samber/oops"

	"avoid/core"
)

// maxGridNodes is a safety limit on A* exploration.
const maxGridNodes = 50000

// gridDir identifies the axis direction a grid node was entered from.
type gridDir int

const (
	dirNone gridDir = iota
	dirNorth
	dirEast
	dirSouth
	dirWest
)

// gridNode represents a state in the orthogonal A* search.
type gridNode struct {
	xi, yi int
	gCost  float64
	fCost  float64
	dir    gridDir
	parent *gridNode
	index  int // index in the heap
}

type gridKey struct {
	xi, yi int
}

// gridQueue is a priority queue for A* grid nodes.
type gridQueue []*gridNode

func (q gridQueue) Len() int { return len(q) }

func (q gridQueue) Less(i, j int) bool {
	if q[i].fCost != q[j].fCost {
		return q[i].fCost < q[j].fCost
	}
	// Tie-breaker: deterministic position ordering.
	if q[i].xi != q[j].xi {
		return q[i].xi < q[j].xi
	}
	return q[i].yi < q[j].yi
}

func (q gridQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *gridQueue) Push(x interface{}) {
	n := x.(*gridNode)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *gridQueue) Pop() interface{} {
	old := *q
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*q = old[0 : n-1]
	return node
}

// routeOrthogonal finds an axis-aligned route from start to end around the
// given obstacles.
//
// The search runs on the reduced grid formed by the X and Y coordinates of
// both endpoints and of every obstacle edge offset by the configured margin
// (the routing lines of the scene). A step between adjacent grid coordinates
// is legal when its segment does not cross any obstacle's open interior;
// direction changes are charged the segment penalty.
func routeOrthogonal(start, end core.Point, obstacles []core.Rect, config Config) (core.Route, error) {
	xs, ys := routingCoords(start, end, obstacles, config.ObstacleMargin)

	startKey := gridKey{xi: coordIndex(xs, start.X), yi: coordIndex(ys, start.Y)}
	endKey := gridKey{xi: coordIndex(xs, end.X), yi: coordIndex(ys, end.Y)}

	openSet := &gridQueue{}
	heap.Init(openSet)
	closedSet := make(map[gridKey]bool)
	nodeMap := make(map[gridKey]*gridNode)

	startNode := &gridNode{
		xi:    startKey.xi,
		yi:    startKey.yi,
		dir:   dirNone,
		fCost: start.ManhattanDistance(end),
	}
	heap.Push(openSet, startNode)
	nodeMap[startKey] = startNode

	explored := 0
	for openSet.Len() > 0 {
		explored++
		if explored > maxGridNodes {
			return core.Route{}, oops.Errorf("orthogonal routing exceeded node limit (%d)", maxGridNodes)
		}

		current := heap.Pop(openSet).(*gridNode)
		currentKey := gridKey{current.xi, current.yi}
		if currentKey == endKey {
			return reconstructGridRoute(current, xs, ys), nil
		}
		closedSet[currentKey] = true

		currentPoint := core.Point{X: xs[current.xi], Y: ys[current.yi]}
		for _, step := range gridSteps(current.xi, current.yi, len(xs), len(ys)) {
			key := gridKey{step.xi, step.yi}
			if closedSet[key] {
				continue
			}
			next := core.Point{X: xs[step.xi], Y: ys[step.yi]}
			if segmentBlocked(currentPoint, next, obstacles) {
				continue
			}

			cost := currentPoint.ManhattanDistance(next)
			if current.dir != dirNone && current.dir != step.dir {
				cost += config.SegmentPenalty
			}
			tentative := current.gCost + cost

			existing, seen := nodeMap[key]
			if !seen {
				node := &gridNode{
					xi:     step.xi,
					yi:     step.yi,
					gCost:  tentative,
					fCost:  tentative + next.ManhattanDistance(end),
					dir:    step.dir,
					parent: current,
				}
				heap.Push(openSet, node)
				nodeMap[key] = node
			} else if tentative < existing.gCost {
				existing.fCost += tentative - existing.gCost
				existing.gCost = tentative
				existing.dir = step.dir
				existing.parent = current
				heap.Fix(openSet, existing.index)
			}
		}
	}

	return core.Route{}, oops.Errorf("no orthogonal route from (%g,%g) to (%g,%g)",
		start.X, start.Y, end.X, end.Y)
}

// gridStep is a candidate move to an adjacent grid coordinate.
type gridStep struct {
	xi, yi int
	dir    gridDir
}

func gridSteps(xi, yi, nx, ny int) []gridStep {
	steps := make([]gridStep, 0, 4)
	if xi+1 < nx {
		steps = append(steps, gridStep{xi + 1, yi, dirEast})
	}
	if xi-1 >= 0 {
		steps = append(steps, gridStep{xi - 1, yi, dirWest})
	}
	if yi+1 < ny {
		steps = append(steps, gridStep{xi, yi + 1, dirSouth})
	}
	if yi-1 >= 0 {
		steps = append(steps, gridStep{xi, yi - 1, dirNorth})
	}
	return steps
}

// routingCoords collects the sorted, deduplicated X and Y routing lines of
// the scene: the endpoint coordinates plus every obstacle edge offset
// outward by the margin.
func routingCoords(start, end core.Point, obstacles []core.Rect, margin float64) (xs, ys []float64) {
	xs = []float64{start.X, end.X}
	ys = []float64{start.Y, end.Y}
	for _, r := range obstacles {
		xs = append(xs, r.MinX-margin, r.MaxX+margin)
		ys = append(ys, r.MinY-margin, r.MaxY+margin)
	}
	return dedupeSorted(xs), dedupeSorted(ys)
}

func dedupeSorted(vals []float64) []float64 {
	sort.Float64s(vals)
	out := vals[:1]
	for _, v := range vals[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// coordIndex returns the index of v in the sorted slice vals. v is always
// present because endpoint coordinates are inserted into the routing lines.
func coordIndex(vals []float64, v float64) int {
	return sort.SearchFloat64s(vals, v)
}

// reconstructGridRoute walks parent links back to the start and returns the
// simplified route.
func reconstructGridRoute(goal *gridNode, xs, ys []float64) core.Route {
	var points []core.Point
	for n := goal; n != nil; n = n.parent {
		points = append(points, core.Point{X: xs[n.xi], Y: ys[n.yi]})
	}
	// Reverse into start-to-end order.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return core.Route{Points: simplifyRoute(points)}
}
