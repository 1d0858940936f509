package engine

import (
	"testing"

	"avoid/core"
)

// assertRouteClear fails the test if any segment of the route crosses an
// obstacle's open interior.
func assertRouteClear(t *testing.T, route core.Route, obstacles []core.Rect) {
	t.Helper()
	for i := 1; i < route.Length(); i++ {
		a, b := route.Points[i-1], route.Points[i]
		if segmentBlocked(a, b, obstacles) {
			t.Errorf("route segment %v -> %v crosses an obstacle", a, b)
		}
	}
}

// assertEndpoints fails the test if the route does not run from start to end.
func assertEndpoints(t *testing.T, route core.Route, start, end core.Point) {
	t.Helper()
	if route.IsEmpty() {
		t.Fatal("route is empty")
	}
	if route.Start() != start {
		t.Errorf("route starts at %v, want %v", route.Start(), start)
	}
	if route.End() != end {
		t.Errorf("route ends at %v, want %v", route.End(), end)
	}
}

func TestRouteEmptyBeforeTransaction(t *testing.T) {
	e := New(PolyLineRouting)
	c := e.AddConn(core.Point{X: 0, Y: 0}, core.Point{X: 10, Y: 0})

	if !c.Route().IsEmpty() {
		t.Error("route should be empty before ProcessTransaction")
	}

	e.ProcessTransaction()
	assertEndpoints(t, c.Route(), core.Point{X: 0, Y: 0}, core.Point{X: 10, Y: 0})
}

func TestDegenerateConnectorHasNoRoute(t *testing.T) {
	e := New(PolyLineRouting)
	c := e.AddConn(core.Point{X: 5, Y: 5}, core.Point{X: 5, Y: 5})
	e.ProcessTransaction()

	if !c.Route().IsEmpty() {
		t.Errorf("degenerate connector should have an empty route, got %v", c.Route().Points)
	}
}

func TestEndpointChangeInvalidatesRoute(t *testing.T) {
	e := New(PolyLineRouting)
	c := e.AddConn(core.Point{X: 0, Y: 0}, core.Point{X: 10, Y: 0})
	e.ProcessTransaction()

	e.SetEndpoints(c, core.Point{X: 0, Y: 0}, core.Point{X: 0, Y: 20})
	if !c.Route().IsEmpty() {
		t.Error("route should be stale-empty after endpoint change")
	}

	e.ProcessTransaction()
	assertEndpoints(t, c.Route(), core.Point{X: 0, Y: 0}, core.Point{X: 0, Y: 20})
}

func TestShapeChangeReroutesAllConnectors(t *testing.T) {
	e := New(PolyLineRouting)
	c1 := e.AddConn(core.Point{X: -5, Y: 5}, core.Point{X: 15, Y: 5})
	c2 := e.AddConn(core.Point{X: -5, Y: 30}, core.Point{X: 15, Y: 30})
	e.ProcessTransaction()

	if c1.Route().Length() != 2 || c2.Route().Length() != 2 {
		t.Fatal("expected direct routes in an empty scene")
	}

	// The new obstacle blocks c1 but not c2; both are rerouted, only c1
	// detours.
	rect := core.NewRect(0, 0, 10, 10)
	e.AddShape(rect)
	e.ProcessTransaction()

	if c1.Route().Length() <= 2 {
		t.Errorf("blocked connector should detour, got %v", c1.Route().Points)
	}
	assertRouteClear(t, c1.Route(), []core.Rect{rect})
	if c2.Route().Length() != 2 {
		t.Errorf("unblocked connector should stay direct, got %v", c2.Route().Points)
	}
}

func TestRemoveShapeRestoresDirectRoute(t *testing.T) {
	e := New(PolyLineRouting)
	s := e.AddShape(core.NewRect(0, 0, 10, 10))
	c := e.AddConn(core.Point{X: -5, Y: 5}, core.Point{X: 15, Y: 5})
	e.ProcessTransaction()

	if c.Route().Length() <= 2 {
		t.Fatalf("expected detour around obstacle, got %v", c.Route().Points)
	}

	e.RemoveShape(s)
	e.ProcessTransaction()

	if c.Route().Length() != 2 {
		t.Errorf("route should be direct after obstacle removal, got %v", c.Route().Points)
	}
}

func TestMoveShape(t *testing.T) {
	e := New(PolyLineRouting)
	s := e.AddShape(core.NewRect(100, 100, 110, 110))
	c := e.AddConn(core.Point{X: -5, Y: 5}, core.Point{X: 15, Y: 5})
	e.ProcessTransaction()

	if c.Route().Length() != 2 {
		t.Fatalf("distant obstacle should not affect route, got %v", c.Route().Points)
	}

	moved := core.NewRect(0, 0, 10, 10)
	e.MoveShape(s, moved)
	e.ProcessTransaction()

	if c.Route().Length() <= 2 {
		t.Errorf("moved obstacle should force a detour, got %v", c.Route().Points)
	}
	assertRouteClear(t, c.Route(), []core.Rect{moved})
}

func TestFallbackRouteWhenSealed(t *testing.T) {
	// A start point strictly inside an obstacle cannot be routed; the engine
	// falls back to a direct route rather than returning nothing.
	e := New(PolyLineRouting)
	e.AddShape(core.NewRect(0, 0, 10, 10))
	c := e.AddConn(core.Point{X: 5, Y: 5}, core.Point{X: 20, Y: 5})
	e.ProcessTransaction()

	assertEndpoints(t, c.Route(), core.Point{X: 5, Y: 5}, core.Point{X: 20, Y: 5})
	if c.Route().Length() != 2 {
		t.Errorf("fallback route should be direct, got %v", c.Route().Points)
	}
}

func TestFallbackRouteOrthogonal(t *testing.T) {
	e := New(OrthogonalRouting)
	e.AddShape(core.NewRect(0, 0, 10, 10))
	c := e.AddConn(core.Point{X: 5, Y: 5}, core.Point{X: 20, Y: 8})
	e.ProcessTransaction()

	assertEndpoints(t, c.Route(), core.Point{X: 5, Y: 5}, core.Point{X: 20, Y: 8})
	if c.Route().Length() != 3 {
		t.Errorf("orthogonal fallback should be L-shaped, got %v", c.Route().Points)
	}
}

func TestRemoveConn(t *testing.T) {
	e := New(PolyLineRouting)
	c1 := e.AddConn(core.Point{X: 0, Y: 0}, core.Point{X: 10, Y: 0})
	c2 := e.AddConn(core.Point{X: 0, Y: 5}, core.Point{X: 10, Y: 5})

	if e.ConnCount() != 2 {
		t.Fatalf("ConnCount = %d, want 2", e.ConnCount())
	}
	e.RemoveConn(c1)
	if e.ConnCount() != 1 {
		t.Errorf("ConnCount = %d, want 1", e.ConnCount())
	}

	// Removing twice, or removing an object from another engine, is a no-op.
	e.RemoveConn(c1)
	other := New(PolyLineRouting)
	other.RemoveConn(c2)
	if e.ConnCount() != 1 {
		t.Errorf("ConnCount = %d after no-op removals, want 1", e.ConnCount())
	}
}

func TestShapeCounts(t *testing.T) {
	e := New(PolyLineRouting)
	s := e.AddShape(core.NewRect(0, 0, 1, 1))
	e.AddShape(core.NewRect(2, 2, 3, 3))

	if e.ShapeCount() != 2 {
		t.Fatalf("ShapeCount = %d, want 2", e.ShapeCount())
	}
	e.RemoveShape(s)
	e.RemoveShape(s)
	if e.ShapeCount() != 1 {
		t.Errorf("ShapeCount = %d, want 1", e.ShapeCount())
	}
}

func TestFlagsAccessor(t *testing.T) {
	e := New(OrthogonalRouting)
	if e.Flags() != OrthogonalRouting {
		t.Errorf("Flags = %d, want %d", e.Flags(), OrthogonalRouting)
	}
}
