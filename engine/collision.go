package engine

import "avoid/core"

// segmentCrossesRect reports whether the segment a-b passes through the open
// interior of r. Segments that only touch the boundary, run along an edge, or
// graze a corner do not cross, so routes may hug obstacle edges.
func segmentCrossesRect(a, b core.Point, r core.Rect) bool {
	if r.MinX >= r.MaxX || r.MinY >= r.MaxY {
		// Degenerate rectangle: no interior.
		return false
	}

	// Liang-Barsky clip of the segment against the closed rectangle.
	dx := b.X - a.X
	dy := b.Y - a.Y
	t0, t1 := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}

	if !clip(-dx, a.X-r.MinX) || !clip(dx, r.MaxX-a.X) ||
		!clip(-dy, a.Y-r.MinY) || !clip(dy, r.MaxY-a.Y) {
		return false
	}

	// The clipped sub-segment overlaps the closed rectangle. It crosses the
	// open interior exactly when its midpoint is strictly inside, which
	// excludes boundary-running and corner-grazing segments.
	mid := core.Point{
		X: a.X + dx*(t0+t1)/2,
		Y: a.Y + dy*(t0+t1)/2,
	}
	return r.ContainsInterior(mid)
}

// segmentBlocked reports whether the segment a-b crosses any obstacle's open
// interior.
func segmentBlocked(a, b core.Point, obstacles []core.Rect) bool {
	for _, r := range obstacles {
		if segmentCrossesRect(a, b, r) {
			return true
		}
	}
	return false
}

// simplifyRoute removes collinear interior points from a route so only the
// endpoints and actual corners remain.
func simplifyRoute(points []core.Point) []core.Point {
	if len(points) <= 2 {
		return points
	}
	out := make([]core.Point, 1, len(points))
	out[0] = points[0]
	for i := 1; i < len(points)-1; i++ {
		prev := out[len(out)-1]
		cur := points[i]
		next := points[i+1]
		if collinear(prev, cur, next) {
			continue
		}
		out = append(out, cur)
	}
	return append(out, points[len(points)-1])
}

// collinear reports whether b lies on the straight line through a and c.
func collinear(a, b, c core.Point) bool {
	return (b.X-a.X)*(c.Y-a.Y) == (b.Y-a.Y)*(c.X-a.X)
}
