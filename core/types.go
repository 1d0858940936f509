// Package core contains the fundamental geometry types shared by the routing
// engine and the handle registry.
package core

import "math"

// Point represents a 2D coordinate in routing space.
type Point struct {
	X, Y float64
}

// ManhattanDistance returns the Manhattan distance to another point.
func (p Point) ManhattanDistance(o Point) float64 {
	return math.Abs(o.X-p.X) + math.Abs(o.Y-p.Y)
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// Rect represents an axis-aligned rectangle. Callers are expected to supply
// MinX <= MaxX and MinY <= MaxY; the routing layer forwards rectangles as-is
// without validation.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRect builds a rectangle from two corner coordinates.
func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.MaxY - r.MinY
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{
		X: (r.MinX + r.MaxX) / 2,
		Y: (r.MinY + r.MaxY) / 2,
	}
}

// ContainsInterior reports whether a point lies strictly inside the
// rectangle. Points on the boundary are not contained, so routes may run
// along obstacle edges.
func (r Rect) ContainsInterior(p Point) bool {
	return p.X > r.MinX && p.X < r.MaxX &&
		p.Y > r.MinY && p.Y < r.MaxY
}

// Inflate returns the rectangle grown by the given margin on every side.
func (r Rect) Inflate(margin float64) Rect {
	return Rect{
		MinX: r.MinX - margin,
		MinY: r.MinY - margin,
		MaxX: r.MaxX + margin,
		MaxY: r.MaxY + margin,
	}
}

// Corners returns the four corner points of the rectangle.
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{r.MinX, r.MinY},
		{r.MaxX, r.MinY},
		{r.MaxX, r.MaxY},
		{r.MinX, r.MaxY},
	}
}

// Route represents the polyline a connector takes, from start to end in
// traversal order.
type Route struct {
	Points []Point
}

// Length returns the number of points in the route.
func (r Route) Length() int {
	return len(r.Points)
}

// IsEmpty returns true if the route has no points.
func (r Route) IsEmpty() bool {
	return len(r.Points) == 0
}

// Start returns the first point of the route. Only meaningful when the route
// is non-empty.
func (r Route) Start() Point {
	return r.Points[0]
}

// End returns the last point of the route. Only meaningful when the route is
// non-empty.
func (r Route) End() Point {
	return r.Points[len(r.Points)-1]
}

// Cost returns the total Euclidean length of the route.
func (r Route) Cost() float64 {
	var total float64
	for i := 1; i < len(r.Points); i++ {
		total += r.Points[i-1].Distance(r.Points[i])
	}
	return total
}
