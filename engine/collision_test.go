package engine

import (
	"testing"

	"avoid/core"
)

func TestSegmentCrossesRect(t *testing.T) {
	r := core.NewRect(0, 0, 10, 10)

	tests := []struct {
		name string
		a, b core.Point
		want bool
	}{
		{"through the middle", core.Point{X: -5, Y: 5}, core.Point{X: 15, Y: 5}, true},
		{"fully outside above", core.Point{X: -5, Y: -5}, core.Point{X: 15, Y: -5}, false},
		{"along top edge", core.Point{X: -5, Y: 0}, core.Point{X: 15, Y: 0}, false},
		{"along right edge", core.Point{X: 10, Y: -5}, core.Point{X: 10, Y: 15}, false},
		{"vertical through", core.Point{X: 5, Y: -5}, core.Point{X: 5, Y: 15}, true},
		{"diagonal through", core.Point{X: -5, Y: -5}, core.Point{X: 15, Y: 15}, true},
		{"diagonal corner graze", core.Point{X: -10, Y: 10}, core.Point{X: 10, Y: -10}, false},
		{"fully inside", core.Point{X: 2, Y: 2}, core.Point{X: 8, Y: 8}, true},
		{"starts inside", core.Point{X: 5, Y: 5}, core.Point{X: 15, Y: 5}, true},
		{"ends on boundary from outside", core.Point{X: -5, Y: 5}, core.Point{X: 0, Y: 5}, false},
		{"short of the rectangle", core.Point{X: -5, Y: 5}, core.Point{X: -1, Y: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := segmentCrossesRect(tt.a, tt.b, r); got != tt.want {
				t.Errorf("segmentCrossesRect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSegmentCrossesRect_DegenerateRect(t *testing.T) {
	// A rectangle with no area has no interior and blocks nothing.
	line := core.NewRect(5, 0, 5, 10)
	if segmentCrossesRect(core.Point{X: 0, Y: 5}, core.Point{X: 10, Y: 5}, line) {
		t.Error("degenerate rectangle should not block")
	}

	inverted := core.NewRect(10, 10, 0, 0)
	if segmentCrossesRect(core.Point{X: 0, Y: 5}, core.Point{X: 10, Y: 5}, inverted) {
		t.Error("inverted rectangle should not block")
	}
}

func TestSimplifyRoute(t *testing.T) {
	tests := []struct {
		name string
		in   []core.Point
		want int
	}{
		{"two points", []core.Point{{X: 0, Y: 0}, {X: 5, Y: 0}}, 2},
		{"collinear horizontal run", []core.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}, {X: 6, Y: 0}}, 2},
		{"one corner kept", []core.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}}, 3},
		{"diagonal collinear", []core.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := simplifyRoute(tt.in)
			if len(got) != tt.want {
				t.Errorf("simplifyRoute = %v, want %d points", got, tt.want)
			}
			if got[0] != tt.in[0] || got[len(got)-1] != tt.in[len(tt.in)-1] {
				t.Errorf("simplifyRoute changed endpoints: %v", got)
			}
		})
	}
}
