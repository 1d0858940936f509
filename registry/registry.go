// Package registry exposes the routing engine through opaque handles, for
// callers that cannot hold engine objects directly.
//
// A Registry maps externally visible handles to internally owned engine
// objects. Every entry point re-validates the full handle hierarchy before
// touching anything, so an invalid, stale or mismatched handle degrades to a
// safe no-op (or a sentinel return) instead of a crash. Handles are issued
// monotonically per kind and are never reused within a Registry, so a handle
// that has been destroyed can never silently resolve to a newer object.
package registry

import (
	"sync"

	"github.com/sirupsen/logrus"

	"avoid/core"
	"avoid/engine"
)

var log = logrus.WithField("component", "registry")

// RouterHandle identifies a router owned by a Registry. The zero value is
// invalid.
type RouterHandle uint64

// ObstacleHandle identifies an obstacle within its owning router. The zero
// value is invalid.
type ObstacleHandle uint32

// ConnectorHandle identifies a connector within its owning router. The zero
// value is invalid.
type ConnectorHandle uint32

// routerEntry holds one router's engine instance and the sub-registries for
// the obstacles and connectors issued under it.
type routerEntry struct {
	engine     *engine.Engine
	obstacles  map[ObstacleHandle]*engine.Shape
	connectors map[ConnectorHandle]*engine.Conn
}

// Registry owns routing engines and the objects registered under them.
//
// A Registry performs no internal locking: calls must be serialized by the
// caller. At most one call may be in flight at a time, enforced externally
// (wrap the whole Registry in a single mutex if multi-threaded use is
// required).
type Registry struct {
	routers map[RouterHandle]*routerEntry

	// Handle counters are monotonic and never reset, even across router
	// destruction, so stale handles can never alias a live object.
	nextRouter    RouterHandle
	nextObstacle  ObstacleHandle
	nextConnector ConnectorHandle

	routeBufs sync.Pool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		routers: make(map[RouterHandle]*routerEntry),
		routeBufs: sync.Pool{
			New: func() interface{} {
				return make([]core.Point, 0, 16)
			},
		},
	}
}

// CreateRouter allocates a new routing engine configured with the given
// flags and returns its handle. The flag bits are interpreted by the engine,
// not by this layer.
func (r *Registry) CreateRouter(flags uint32) RouterHandle {
	r.nextRouter++
	h := r.nextRouter
	r.routers[h] = &routerEntry{
		engine:     engine.New(flags),
		obstacles:  make(map[ObstacleHandle]*engine.Shape),
		connectors: make(map[ConnectorHandle]*engine.Conn),
	}
	return h
}

// DestroyRouter releases the router and everything registered under it.
// Every handle issued under the router stops resolving, permanently. No-op
// on an invalid or unknown handle.
func (r *Registry) DestroyRouter(h RouterHandle) {
	entry, ok := r.routers[h]
	if !ok {
		r.debugMiss("DestroyRouter", h)
		return
	}

	// Connectors and obstacles hold back-references into the engine, so they
	// are released before the engine instance itself. The top-level mapping
	// goes last: no lookup may observe a partially torn-down router.
	for id, conn := range entry.connectors {
		entry.engine.RemoveConn(conn)
		delete(entry.connectors, id)
	}
	for id, shape := range entry.obstacles {
		entry.engine.RemoveShape(shape)
		delete(entry.obstacles, id)
	}
	entry.engine = nil
	delete(r.routers, h)
}

// AddObstacle registers a rectangular obstacle under the router and returns
// its handle. The rectangle is forwarded to the engine uninterpreted; no
// degenerate-geometry validation is performed here. Returns the zero handle
// if the router is unknown.
func (r *Registry) AddObstacle(h RouterHandle, rect core.Rect) ObstacleHandle {
	entry, ok := r.routers[h]
	if !ok {
		r.debugMiss("AddObstacle", h)
		return 0
	}
	r.nextObstacle++
	id := r.nextObstacle
	entry.obstacles[id] = entry.engine.AddShape(rect)
	return id
}

// MoveObstacle replaces an obstacle's rectangle. The change takes effect at
// the next ComputeRoutes. No-op if either handle is unknown or the obstacle
// does not belong to the router.
func (r *Registry) MoveObstacle(h RouterHandle, o ObstacleHandle, rect core.Rect) {
	entry, ok := r.routers[h]
	if !ok {
		r.debugMiss("MoveObstacle", h)
		return
	}
	shape, ok := entry.obstacles[o]
	if !ok {
		return
	}
	entry.engine.MoveShape(shape, rect)
}

// DeleteObstacle releases an obstacle and removes its mapping. Safe to call
// repeatedly; the second and later calls are no-ops.
func (r *Registry) DeleteObstacle(h RouterHandle, o ObstacleHandle) {
	entry, ok := r.routers[h]
	if !ok {
		r.debugMiss("DeleteObstacle", h)
		return
	}
	shape, ok := entry.obstacles[o]
	if !ok {
		return
	}
	entry.engine.RemoveShape(shape)
	delete(entry.obstacles, o)
}

// AddConnector registers a point-to-point connector under the router and
// returns its handle. The connector has no route until ComputeRoutes runs.
// Returns the zero handle if the router is unknown.
func (r *Registry) AddConnector(h RouterHandle, start, end core.Point) ConnectorHandle {
	entry, ok := r.routers[h]
	if !ok {
		r.debugMiss("AddConnector", h)
		return 0
	}
	r.nextConnector++
	id := r.nextConnector
	entry.connectors[id] = entry.engine.AddConn(start, end)
	return id
}

// SetConnectorEndpoints changes a connector's endpoints. Its route becomes
// stale until the next ComputeRoutes. No-op if either handle is unknown or
// mismatched.
func (r *Registry) SetConnectorEndpoints(h RouterHandle, c ConnectorHandle, start, end core.Point) {
	entry, ok := r.routers[h]
	if !ok {
		r.debugMiss("SetConnectorEndpoints", h)
		return
	}
	conn, ok := entry.connectors[c]
	if !ok {
		return
	}
	entry.engine.SetEndpoints(conn, start, end)
}

// DeleteConnector releases a connector and removes its mapping. Safe to call
// repeatedly; the second and later calls are no-ops.
func (r *Registry) DeleteConnector(h RouterHandle, c ConnectorHandle) {
	entry, ok := r.routers[h]
	if !ok {
		r.debugMiss("DeleteConnector", h)
		return
	}
	conn, ok := entry.connectors[c]
	if !ok {
		return
	}
	entry.engine.RemoveConn(conn)
	delete(entry.connectors, c)
}

// ComputeRoutes applies all outstanding topology changes on the router and
// recomputes every invalidated connector route in one batch. No-op on an
// unknown handle.
func (r *Registry) ComputeRoutes(h RouterHandle) {
	entry, ok := r.routers[h]
	if !ok {
		r.debugMiss("ComputeRoutes", h)
		return
	}
	entry.engine.ProcessTransaction()
}

// GetRoute returns a freshly allocated copy of the connector's current
// route, in traversal order from start to end. Ownership of the returned
// slice transfers to the caller, who releases it with FreeRoute. Returns nil
// when either handle is unknown, or when the connector has no route (never
// computed, or degenerate).
func (r *Registry) GetRoute(h RouterHandle, c ConnectorHandle) []core.Point {
	entry, ok := r.routers[h]
	if !ok {
		r.debugMiss("GetRoute", h)
		return nil
	}
	conn, ok := entry.connectors[c]
	if !ok {
		return nil
	}
	route := conn.Route()
	if route.IsEmpty() {
		return nil
	}
	buf := r.routeBufs.Get().([]core.Point)
	return append(buf[:0], route.Points...)
}

// FreeRoute releases a slice previously returned by GetRoute, recycling its
// backing buffer. No-op on nil. Passing the same slice twice, or a slice not
// obtained from GetRoute, is undefined: no provenance tracking is performed
// on returned buffers.
func (r *Registry) FreeRoute(points []core.Point) {
	if points == nil {
		return
	}
	r.routeBufs.Put(points[:0])
}

// ObstacleCount returns the number of live obstacles under the router, or 0
// if the handle is unknown.
func (r *Registry) ObstacleCount(h RouterHandle) int {
	if entry, ok := r.routers[h]; ok {
		return len(entry.obstacles)
	}
	return 0
}

// ConnectorCount returns the number of live connectors under the router, or
// 0 if the handle is unknown.
func (r *Registry) ConnectorCount(h RouterHandle) int {
	if entry, ok := r.routers[h]; ok {
		return len(entry.connectors)
	}
	return 0
}

// RouterCount returns the number of live routers.
func (r *Registry) RouterCount() int {
	return len(r.routers)
}

// Close destroys every router still registered. The registry remains usable
// afterwards, but no previously issued handle resolves.
func (r *Registry) Close() {
	for h := range r.routers {
		r.DestroyRouter(h)
	}
}

func (r *Registry) debugMiss(op string, h RouterHandle) {
	log.WithFields(logrus.Fields{
		"op":     op,
		"router": h,
	}).Debug("unknown router handle, ignoring")
}
