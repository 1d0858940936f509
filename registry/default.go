package registry

import "avoid/core"

// defaultRegistry backs the package-level entry points. Handles issued
// through it are process-wide.
var defaultRegistry = NewRegistry()

// CreateRouter allocates a router in the default registry.
func CreateRouter(flags uint32) RouterHandle {
	return defaultRegistry.CreateRouter(flags)
}

// DestroyRouter destroys a router in the default registry.
func DestroyRouter(h RouterHandle) {
	defaultRegistry.DestroyRouter(h)
}

// AddObstacle adds an obstacle in the default registry.
func AddObstacle(h RouterHandle, rect core.Rect) ObstacleHandle {
	return defaultRegistry.AddObstacle(h, rect)
}

// MoveObstacle moves an obstacle in the default registry.
func MoveObstacle(h RouterHandle, o ObstacleHandle, rect core.Rect) {
	defaultRegistry.MoveObstacle(h, o, rect)
}

// DeleteObstacle deletes an obstacle in the default registry.
func DeleteObstacle(h RouterHandle, o ObstacleHandle) {
	defaultRegistry.DeleteObstacle(h, o)
}

// AddConnector adds a connector in the default registry.
func AddConnector(h RouterHandle, start, end core.Point) ConnectorHandle {
	return defaultRegistry.AddConnector(h, start, end)
}

// SetConnectorEndpoints changes a connector's endpoints in the default
// registry.
func SetConnectorEndpoints(h RouterHandle, c ConnectorHandle, start, end core.Point) {
	defaultRegistry.SetConnectorEndpoints(h, c, start, end)
}

// DeleteConnector deletes a connector in the default registry.
func DeleteConnector(h RouterHandle, c ConnectorHandle) {
	defaultRegistry.DeleteConnector(h, c)
}

// ComputeRoutes processes pending changes on a router in the default
// registry.
func ComputeRoutes(h RouterHandle) {
	defaultRegistry.ComputeRoutes(h)
}

// GetRoute retrieves a connector's route from the default registry.
func GetRoute(h RouterHandle, c ConnectorHandle) []core.Point {
	return defaultRegistry.GetRoute(h, c)
}

// FreeRoute releases a route obtained from the default registry's GetRoute.
func FreeRoute(points []core.Point) {
	defaultRegistry.FreeRoute(points)
}
