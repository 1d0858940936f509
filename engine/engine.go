// Package engine implements an obstacle-avoiding connector routing engine.
//
// An Engine owns a scene of rectangular shapes and point-to-point connectors.
// Topology changes (adding, moving or removing shapes and connectors) are
// batched: nothing is routed until ProcessTransaction is called, at which
// point every connector whose route could have been invalidated is recomputed
// in one pass.
package engine

import (
	"github.com/sirupsen/logrus"

	"avoid/core"
)

var log = logrus.WithField("component", "engine")

// Routing flags. OrthogonalRouting restricts routes to axis-aligned
// segments; PolyLineRouting (the default) produces straight-line polylines
// around obstacle corners.
const (
	PolyLineRouting   uint32 = 1
	OrthogonalRouting uint32 = 2
)

// Config controls routing behavior.
type Config struct {
	// SegmentPenalty is the extra cost charged for each direction change in
	// orthogonal routing. Higher values produce routes with fewer bends.
	SegmentPenalty float64

	// ObstacleMargin is the clearance kept between routes and obstacle
	// edges when choosing routing lines and corner points.
	ObstacleMargin float64
}

// DefaultConfig returns the default routing configuration.
func DefaultConfig() Config {
	return Config{
		SegmentPenalty: 50,
		ObstacleMargin: 10,
	}
}

// Shape is a rectangular obstacle registered with an Engine. Shapes hold a
// back-reference to their engine and must not outlive it.
type Shape struct {
	engine *Engine
	rect   core.Rect
}

// Rect returns the shape's current bounding rectangle.
func (s *Shape) Rect() core.Rect {
	return s.rect
}

// Conn is a point-to-point connector registered with an Engine. Its route is
// only valid after the engine has processed a transaction since the connector
// was added or last changed.
type Conn struct {
	engine     *Engine
	start, end core.Point
	route      core.Route
	dirty      bool
}

// Endpoints returns the connector's fixed start and end points.
func (c *Conn) Endpoints() (start, end core.Point) {
	return c.start, c.end
}

// Route returns the connector's last computed route. The returned route is
// empty until the first ProcessTransaction call after the connector was added
// or changed, and stays empty for a degenerate start==end connector.
func (c *Conn) Route() core.Route {
	return c.route
}

// Engine routes connectors around rectangular obstacles.
//
// Engines are not safe for concurrent use; callers must serialize access.
type Engine struct {
	flags  uint32
	config Config
	shapes []*Shape
	conns  []*Conn

	// sceneDirty is set whenever shapes change, which can invalidate every
	// connector's route.
	sceneDirty bool
}

// New creates an engine with the given routing flags and the default
// configuration.
func New(flags uint32) *Engine {
	return NewWithConfig(flags, DefaultConfig())
}

// NewWithConfig creates an engine with the given routing flags and
// configuration.
func NewWithConfig(flags uint32, config Config) *Engine {
	return &Engine{
		flags:  flags,
		config: config,
	}
}

// Flags returns the routing flags the engine was created with.
func (e *Engine) Flags() uint32 {
	return e.flags
}

// AddShape registers a rectangular obstacle and returns it. The rectangle is
// not validated; a degenerate rectangle simply has no interior and blocks
// nothing.
func (e *Engine) AddShape(rect core.Rect) *Shape {
	s := &Shape{engine: e, rect: rect}
	e.shapes = append(e.shapes, s)
	e.sceneDirty = true
	return s
}

// MoveShape changes a shape's rectangle. The change takes effect at the next
// ProcessTransaction.
func (e *Engine) MoveShape(s *Shape, rect core.Rect) {
	if s == nil || s.engine != e {
		return
	}
	s.rect = rect
	e.sceneDirty = true
}

// RemoveShape unregisters a shape from the scene.
func (e *Engine) RemoveShape(s *Shape) {
	if s == nil || s.engine != e {
		return
	}
	for i, cur := range e.shapes {
		if cur == s {
			e.shapes = append(e.shapes[:i], e.shapes[i+1:]...)
			s.engine = nil
			e.sceneDirty = true
			return
		}
	}
}

// AddConn registers a connector between two fixed points and returns it. The
// connector has no route until the next ProcessTransaction.
func (e *Engine) AddConn(start, end core.Point) *Conn {
	c := &Conn{engine: e, start: start, end: end, dirty: true}
	e.conns = append(e.conns, c)
	return c
}

// SetEndpoints changes a connector's endpoints. The connector's route becomes
// stale until the next ProcessTransaction.
func (e *Engine) SetEndpoints(c *Conn, start, end core.Point) {
	if c == nil || c.engine != e {
		return
	}
	c.start = start
	c.end = end
	c.route = core.Route{}
	c.dirty = true
}

// RemoveConn unregisters a connector from the scene.
func (e *Engine) RemoveConn(c *Conn) {
	if c == nil || c.engine != e {
		return
	}
	for i, cur := range e.conns {
		if cur == c {
			e.conns = append(e.conns[:i], e.conns[i+1:]...)
			c.engine = nil
			return
		}
	}
}

// ShapeCount returns the number of shapes in the scene.
func (e *Engine) ShapeCount() int {
	return len(e.shapes)
}

// ConnCount returns the number of connectors in the scene.
func (e *Engine) ConnCount() int {
	return len(e.conns)
}

// ProcessTransaction applies all pending topology changes and recomputes the
// route of every connector they invalidated. Shape changes invalidate every
// connector; an endpoint change invalidates only its own connector.
func (e *Engine) ProcessTransaction() {
	rerouted := 0
	for _, c := range e.conns {
		if !e.sceneDirty && !c.dirty {
			continue
		}
		c.route = e.route(c.start, c.end)
		c.dirty = false
		rerouted++
	}
	e.sceneDirty = false

	log.WithFields(logrus.Fields{
		"shapes":     len(e.shapes),
		"connectors": len(e.conns),
		"rerouted":   rerouted,
	}).Debug("processed transaction")
}

// route computes a single connector route with the engine's configured
// algorithm, falling back to a direct route when no path exists.
func (e *Engine) route(start, end core.Point) core.Route {
	if start == end {
		// Degenerate connector: no route.
		return core.Route{}
	}

	obstacles := make([]core.Rect, len(e.shapes))
	for i, s := range e.shapes {
		obstacles[i] = s.rect
	}

	var (
		route core.Route
		err   error
	)
	if e.flags&OrthogonalRouting != 0 {
		route, err = routeOrthogonal(start, end, obstacles, e.config)
	} else {
		route, err = routePolyline(start, end, obstacles, e.config)
	}
	if err != nil {
		log.WithFields(logrus.Fields{
			"start": start,
			"end":   end,
		}).WithError(err).Warn("routing failed, using fallback route")
		return fallbackRoute(start, end, e.flags)
	}
	return route
}

// fallbackRoute produces the route used when pathfinding fails: an L-shaped
// route in orthogonal mode, a straight segment otherwise.
func fallbackRoute(start, end core.Point, flags uint32) core.Route {
	if flags&OrthogonalRouting != 0 && start.X != end.X && start.Y != end.Y {
		return core.Route{Points: []core.Point{
			start,
			{X: start.X, Y: end.Y},
			end,
		}}
	}
	return core.Route{Points: []core.Point{start, end}}
}
