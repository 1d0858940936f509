// Command routeview renders a sample routed scene, either once to stdout or
// interactively in the terminal where connector endpoints can be dragged
// around the obstacles.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"avoid/core"
	"avoid/engine"
	"avoid/registry"
	"avoid/render"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive mode: drag connector endpoints with arrow keys")
		ortho       = flag.Bool("ortho", false, "Use orthogonal routing instead of polyline")
		scale       = flag.Float64("scale", 1.0, "Cells per world unit when rendering")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Routes connectors around obstacles and renders the result.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nInteractive keys:\n")
		fmt.Fprintf(os.Stderr, "  arrows     move the active connector's end point\n")
		fmt.Fprintf(os.Stderr, "  tab        cycle through connectors\n")
		fmt.Fprintf(os.Stderr, "  q / esc    quit\n")
	}
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var flags uint32 = engine.PolyLineRouting
	if *ortho {
		flags = engine.OrthogonalRouting
	}

	view := newSceneView(flags)
	defer view.close()

	if *interactive {
		if err := view.runInteractive(*scale); err != nil {
			fmt.Fprintf(os.Stderr, "routeview: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(view.render(*scale))
}

// connector tracks one connector's handle and endpoints, since the registry
// only hands back opaque handles.
type connector struct {
	handle     registry.ConnectorHandle
	start, end core.Point
}

// sceneView owns a router populated with a sample scene and knows how to
// render and mutate it.
type sceneView struct {
	reg        *registry.Registry
	router     registry.RouterHandle
	rects      []core.Rect
	connectors []connector
	active     int
}

func newSceneView(flags uint32) *sceneView {
	v := &sceneView{reg: registry.NewRegistry()}
	v.router = v.reg.CreateRouter(flags)

	rects := []core.Rect{
		core.NewRect(10, 4, 26, 12),
		core.NewRect(34, 10, 50, 18),
		core.NewRect(16, 18, 30, 24),
	}
	for _, r := range rects {
		v.reg.AddObstacle(v.router, r)
		v.rects = append(v.rects, r)
	}

	conns := [][2]core.Point{
		{{X: 2, Y: 8}, {X: 56, Y: 14}},
		{{X: 4, Y: 22}, {X: 42, Y: 4}},
		{{X: 30, Y: 26}, {X: 12, Y: 2}},
	}
	for _, c := range conns {
		h := v.reg.AddConnector(v.router, c[0], c[1])
		v.connectors = append(v.connectors, connector{handle: h, start: c[0], end: c[1]})
	}

	v.reg.ComputeRoutes(v.router)
	return v
}

func (v *sceneView) close() {
	v.reg.Close()
}

// render computes the current scene snapshot and draws it.
func (v *sceneView) render(scale float64) string {
	scene := renderScene(v.reg, v.router, v.rects, v.connectors)
	return scene.Render(scale)
}

// moveActiveEnd shifts the active connector's end point and re-routes.
func (v *sceneView) moveActiveEnd(dx, dy float64) {
	c := &v.connectors[v.active]
	c.end.X += dx
	c.end.Y += dy
	v.reg.SetConnectorEndpoints(v.router, c.handle, c.start, c.end)
	v.reg.ComputeRoutes(v.router)
}

func (v *sceneView) runInteractive(scale float64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	for {
		drawString(screen, v.render(scale), fmt.Sprintf(
			"connector %d/%d  arrows: move end  tab: next  q: quit",
			v.active+1, len(v.connectors)))

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEscape, tcell.KeyCtrlC:
				return nil
			case tcell.KeyUp:
				v.moveActiveEnd(0, -1)
			case tcell.KeyDown:
				v.moveActiveEnd(0, 1)
			case tcell.KeyLeft:
				v.moveActiveEnd(-1, 0)
			case tcell.KeyRight:
				v.moveActiveEnd(1, 0)
			case tcell.KeyTab:
				v.active = (v.active + 1) % len(v.connectors)
			case tcell.KeyRune:
				if ev.Rune() == 'q' {
					return nil
				}
			}
		}
	}
}

// renderScene snapshots the router's current routes into a renderable scene.
func renderScene(reg *registry.Registry, router registry.RouterHandle, rects []core.Rect, conns []connector) render.Scene {
	scene := render.Scene{Rects: rects}
	for _, c := range conns {
		pts := reg.GetRoute(router, c.handle)
		if pts == nil {
			continue
		}
		route := core.Route{Points: append([]core.Point(nil), pts...)}
		reg.FreeRoute(pts)
		scene.Routes = append(scene.Routes, route)
	}
	return scene
}

// drawString paints a rendered scene plus a status line onto the screen.
func drawString(screen tcell.Screen, s, status string) {
	screen.Clear()
	x, y := 0, 0
	for _, r := range s {
		if r == '\n' {
			x = 0
			y++
			continue
		}
		screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
	statusStyle := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		screen.SetContent(i, y+2, r, nil, statusStyle)
	}
	screen.Show()
}
