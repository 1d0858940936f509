// Package render draws routed scenes as text, for demos and debugging.
package render

import "strings"

// Canvas is a rune matrix with drawing primitives for boxes and routed
// polylines.
//
// Coordinates are character cells: origin top-left, X rightward, Y downward.
// Canvas is not safe for concurrent writes.
type Canvas struct {
	cells  [][]rune
	width  int
	height int
}

// NewCanvas creates a canvas of the given size, filled with spaces. Returns
// nil for non-positive dimensions.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		return nil
	}
	cells := make([][]rune, height)
	for y := range cells {
		cells[y] = make([]rune, width)
		for x := range cells[y] {
			cells[y][x] = ' '
		}
	}
	return &Canvas{cells: cells, width: width, height: height}
}

// Size returns the width and height of the canvas.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Get returns the rune at the given cell, or ' ' out of bounds.
func (c *Canvas) Get(x, y int) rune {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return ' '
	}
	return c.cells[y][x]
}

// Set places a rune at the given cell, merging line characters at
// intersections. Out-of-bounds cells are clipped silently.
func (c *Canvas) Set(x, y int, r rune) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.cells[y][x] = mergeRunes(c.cells[y][x], r)
}

// String returns the canvas contents with rows joined by newlines.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			sb.WriteRune(c.cells[y][x])
		}
		if y < c.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// DrawBox draws a rectangle outline with box-drawing characters. Boxes that
// extend past the canvas are clipped.
func (c *Canvas) DrawBox(x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	right := x + width - 1
	bottom := y + height - 1

	c.Set(x, y, '┌')
	c.Set(right, y, '┐')
	c.Set(x, bottom, '└')
	c.Set(right, bottom, '┘')
	for i := x + 1; i < right; i++ {
		c.Set(i, y, '─')
		c.Set(i, bottom, '─')
	}
	for j := y + 1; j < bottom; j++ {
		c.Set(x, j, '│')
		c.Set(right, j, '│')
	}
}

// Cell is a canvas coordinate.
type Cell struct {
	X, Y int
}

// DrawPath draws a polyline through the given cells. Axis-aligned segments
// use line characters with corner selection at bends; diagonal segments fall
// back to '*' runs.
func (c *Canvas) DrawPath(cells []Cell) {
	if len(cells) < 2 {
		return
	}
	for i := 0; i < len(cells)-1; i++ {
		p1, p2 := cells[i], cells[i+1]
		switch {
		case p1.Y == p2.Y:
			c.drawHorizontal(p1.X, p2.X, p1.Y)
		case p1.X == p2.X:
			c.drawVertical(p1.Y, p2.Y, p1.X)
		default:
			c.drawDiagonal(p1, p2)
		}
		if i > 0 {
			c.Set(p1.X, p1.Y, selectCorner(cells[i-1], p1, p2))
		}
	}
}

func (c *Canvas) drawHorizontal(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		c.Set(x, y, '─')
	}
}

func (c *Canvas) drawVertical(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		c.Set(x, y, '│')
	}
}

// drawDiagonal draws an arbitrary segment with Bresenham's algorithm.
func (c *Canvas) drawDiagonal(p1, p2 Cell) {
	dx := abs(p2.X - p1.X)
	dy := abs(p2.Y - p1.Y)
	xInc, yInc := 1, 1
	if p1.X > p2.X {
		xInc = -1
	}
	if p1.Y > p2.Y {
		yInc = -1
	}

	x, y := p1.X, p1.Y
	if dx > dy {
		err := dx / 2
		for x != p2.X {
			c.Set(x, y, '*')
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
			x += xInc
		}
	} else {
		err := dy / 2
		for y != p2.Y {
			c.Set(x, y, '*')
			err -= dx
			if err < 0 {
				x += xInc
				err += dy
			}
			y += yInc
		}
	}
	c.Set(p2.X, p2.Y, '*')
}

// selectCorner picks the corner rune for the bend at curr.
func selectCorner(prev, curr, next Cell) rune {
	from := direction(prev, curr)
	to := direction(curr, next)

	switch {
	case from == 'E' && to == 'S', from == 'N' && to == 'W':
		return '╮'
	case from == 'E' && to == 'N', from == 'S' && to == 'W':
		return '╯'
	case from == 'W' && to == 'S', from == 'N' && to == 'E':
		return '╭'
	case from == 'W' && to == 'N', from == 'S' && to == 'E':
		return '╰'
	case from == to && (from == 'E' || from == 'W'):
		return '─'
	case from == to:
		return '│'
	default:
		return '┼'
	}
}

// direction returns the cardinal direction of travel from p1 to p2.
func direction(p1, p2 Cell) rune {
	switch {
	case p2.X > p1.X:
		return 'E'
	case p2.X < p1.X:
		return 'W'
	case p2.Y > p1.Y:
		return 'S'
	default:
		return 'N'
	}
}

// mergeRunes resolves what happens when a new line rune lands on an occupied
// cell. Crossing lines become junctions; anything else is overwritten.
func mergeRunes(existing, incoming rune) rune {
	if existing == ' ' {
		return incoming
	}
	switch {
	case existing == '─' && incoming == '│',
		existing == '│' && incoming == '─':
		return '┼'
	case existing == '┼' && (incoming == '─' || incoming == '│'):
		return '┼'
	}
	return incoming
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
