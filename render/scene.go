package render

import (
	"math"

	"avoid/core"
)

// Scene is a snapshot of a routed scene: the obstacle rectangles and the
// computed connector routes, in world coordinates.
type Scene struct {
	Rects  []core.Rect
	Routes []core.Route
}

// scenePadding is the margin, in world units, left around the scene bounds.
const scenePadding = 2

// Render draws the scene to a string, mapping world coordinates to character
// cells at the given scale (cells per world unit). Returns "" for an empty
// scene or non-positive scale.
func (s Scene) Render(scale float64) string {
	if scale <= 0 {
		return ""
	}
	minX, minY, maxX, maxY, ok := s.bounds()
	if !ok {
		return ""
	}
	minX -= scenePadding
	minY -= scenePadding
	maxX += scenePadding
	maxY += scenePadding

	toCell := func(p core.Point) Cell {
		return Cell{
			X: int(math.Round((p.X - minX) * scale)),
			Y: int(math.Round((p.Y - minY) * scale)),
		}
	}

	width := int(math.Round((maxX-minX)*scale)) + 1
	height := int(math.Round((maxY-minY)*scale)) + 1
	canvas := NewCanvas(width, height)
	if canvas == nil {
		return ""
	}

	for _, r := range s.Rects {
		tl := toCell(core.Point{X: r.MinX, Y: r.MinY})
		br := toCell(core.Point{X: r.MaxX, Y: r.MaxY})
		canvas.DrawBox(tl.X, tl.Y, br.X-tl.X+1, br.Y-tl.Y+1)
	}

	for _, route := range s.Routes {
		if route.IsEmpty() {
			continue
		}
		cells := make([]Cell, route.Length())
		for i, p := range route.Points {
			cells[i] = toCell(p)
		}
		canvas.DrawPath(cells)
		start := cells[0]
		end := cells[len(cells)-1]
		canvas.Set(start.X, start.Y, '●')
		canvas.Set(end.X, end.Y, '►')
	}

	return canvas.String()
}

// bounds returns the world-coordinate extent of the scene.
func (s Scene) bounds() (minX, minY, maxX, maxY float64, ok bool) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)

	grow := func(p core.Point) {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	for _, r := range s.Rects {
		grow(core.Point{X: r.MinX, Y: r.MinY})
		grow(core.Point{X: r.MaxX, Y: r.MaxY})
	}
	for _, route := range s.Routes {
		for _, p := range route.Points {
			grow(p)
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 0, 0, false
	}
	return minX, minY, maxX, maxY, true
}
