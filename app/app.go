// Package app runs the interactive globe on top of a hal host.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"geoglobe/globe/geo"
	"geoglobe/globe/graticule"
	"geoglobe/globe/labels"
	"geoglobe/globe/markers"
	"geoglobe/globe/overlay"
	"geoglobe/globe/picking"
	"geoglobe/globe/view"
	"geoglobe/globe/viewport"
	"geoglobe/hal"
	"geoglobe/internal/config"
	"geoglobe/quarkgl"
)

// keyRotateStep is the orbit applied per arrow key press, in drag pixels.
const keyRotateStep = 20

// orbitPose is the camera orbit restored by Tab.
type orbitPose struct {
	azimuth, polar, distance float64
}

// Globe is the application state driven one Step per host tick.
type Globe struct {
	h   hal.HAL
	cfg *config.Config
	log *slog.Logger

	globe   geo.Globe
	grid    *graticule.Graticule
	overlay *overlay.Memory
	reg     *markers.Registry

	scene    *quarkgl.Scene
	camera   *quarkgl.Camera
	renderer *quarkgl.Renderer
	orbit    *quarkgl.OrbitController
	content  *sceneContent
	display  *fbDisplay

	state   view.State
	picker  picking.Engine
	sync    labels.Synchronizer
	resizer viewport.Handler

	pointer     view.Pointer
	havePointer bool
	dragging    bool
	dragX       int
	dragY       int

	home        orbitPose
	regGen      uint64
	showHUD     bool
	showAll     bool
	fps         fpsCounter
	lastShown   int
	alwaysNames map[string]bool
}

// New builds the globe, its markers from recs and the scene. It does not render.
func New(h hal.HAL, cfg *config.Config, recs []markers.Record, log *slog.Logger) (*Globe, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = slog.Default()
	}
	g := &Globe{
		h:       h,
		cfg:     cfg,
		log:     log.With("component", "app"),
		globe:   geo.Globe{Radius: cfg.Globe.Radius, Segments: cfg.Globe.Segments},
		overlay: overlay.NewMemory(),
		picker: picking.Engine{
			HitRadius:      cfg.Markers.HitRadius,
			OccludeByGlobe: cfg.Markers.OccludeByGlobe,
		},
		sync:        labels.Synchronizer{OffsetY: cfg.Markers.LabelOffset},
		showHUD:     true,
		alwaysNames: map[string]bool{},
	}
	if err := g.globe.Validate(); err != nil {
		return nil, fmt.Errorf("globe: %w", err)
	}

	grid, err := graticule.Build(g.globe.Radius, cfg.Globe.GraticuleStep)
	if err != nil {
		return nil, fmt.Errorf("graticule: %w", err)
	}
	g.grid = grid

	g.reg = markers.NewRegistry(g.overlay)
	if err := g.reg.AddRecords(recs, g.globe.Radius); err != nil {
		return nil, fmt.Errorf("markers: %w", err)
	}
	for _, name := range cfg.Markers.AlwaysVisible {
		if err := g.reg.SetAlwaysVisible(name, true); err != nil {
			g.log.Warn("always-visible marker not loaded", "name", name)
			continue
		}
		g.alwaysNames[name] = true
	}
	g.regGen = g.reg.Generation()

	fb := h.Display().Framebuffer()
	g.display = newFBDisplay(fb)

	aspect := 1.0
	if fb.Height() > 0 {
		aspect = float64(fb.Width()) / float64(fb.Height())
	}
	g.camera = quarkgl.NewPerspectiveCamera(cfg.Camera.FOV, aspect, cfg.Camera.Near, cfg.Camera.Far)
	if p := cfg.Camera.Position; len(p) == 3 {
		g.camera.Position = quarkgl.V3(p[0], p[1], p[2])
	}
	g.camera.UpdateViewMatrix()

	g.orbit = quarkgl.NewOrbitControllerFromCamera(g.camera, quarkgl.V3(0, 0, 0))
	g.orbit.MinDistance = cfg.Orbit.MinDistance
	g.orbit.MaxDistance = cfg.Orbit.MaxDistance
	g.orbit.Damping = cfg.Orbit.Damping
	g.orbit.RotateSpeed = cfg.Orbit.RotateSpeed
	g.orbit.ZoomSpeed = cfg.Orbit.ZoomSpeed
	g.orbit.Update(g.camera)
	g.home = orbitPose{g.orbit.Azimuth, g.orbit.Polar, g.orbit.Distance}

	g.scene = quarkgl.CreateScene()
	g.scene.Camera = g.camera
	g.renderer = quarkgl.NewRenderer(fb.Width(), fb.Height(), true)
	g.renderer.ClearColor = colorBackground
	g.content = newSceneContent(g.scene)
	g.content.axes = cfg.Globe.Axes
	g.content.rebuild(g.globe.Radius, g.globe.Segments, g.grid, g.reg.All(), cfg.Markers.Size, cfg.Markers.Bars)

	g.resizer = viewport.Handler{Surface: g.renderer}
	g.state = view.State{Camera: g.camera}

	g.log.Info("globe ready",
		"radius", g.globe.Radius,
		"markers", g.reg.Len(),
		"graticule_step", g.grid.Step(),
		"lines", len(g.grid.Lines()))
	return g, nil
}

// Step runs one tick: resize, input, camera, picking, label sync, render.
func (g *Globe) Step() error {
	g.applyResize()
	if err := g.handleKeys(); err != nil {
		return err
	}
	g.handlePointer()
	g.orbit.Update(g.camera)

	if gen := g.reg.Generation(); gen != g.regGen {
		g.regGen = gen
		g.setHover(view.NoHover())
	}
	g.pick()
	g.lastShown = len(g.sync.Sync(&g.state, g.reg))
	return g.render()
}

// applyResize drains resize events and applies the newest valid one.
func (g *Globe) applyResize() {
	var last *hal.ResizeEvent
	for {
		select {
		case ev := <-g.h.Input().Resize():
			last = &ev
			continue
		default:
		}
		break
	}
	if last == nil {
		return
	}
	if err := g.resizer.Resize(&g.state, last.Width, last.Height); err != nil {
		g.log.Warn("resize rejected", "width", last.Width, "height", last.Height, "error", err)
		return
	}
	g.log.Info("viewport resized", "width", last.Width, "height", last.Height)
}

func (g *Globe) handleKeys() error {
	for {
		select {
		case ev := <-g.h.Input().Keys():
			if !ev.Press {
				continue
			}
			switch ev.Code {
			case hal.KeyEscape:
				return hal.ErrQuit
			case hal.KeyLeft:
				g.orbit.Rotate(-keyRotateStep, 0)
			case hal.KeyRight:
				g.orbit.Rotate(keyRotateStep, 0)
			case hal.KeyUp:
				g.orbit.Rotate(0, -keyRotateStep)
			case hal.KeyDown:
				g.orbit.Rotate(0, keyRotateStep)
			case hal.KeyTab:
				g.orbit.SetPose(g.home.azimuth, g.home.polar, g.home.distance)
			case hal.KeyH:
				g.showHUD = !g.showHUD
			case hal.KeyL:
				g.toggleAllLabels()
			}
			continue
		default:
		}
		return nil
	}
}

// handlePointer drains pointer events: drags orbit the camera, the wheel zooms and the
// last position is kept for picking.
func (g *Globe) handlePointer() {
	for {
		select {
		case ev := <-g.h.Input().Pointer():
			if ev.Pressed && g.dragging {
				dx, dy := ev.X-g.dragX, ev.Y-g.dragY
				g.orbit.Rotate(-float64(dx), -float64(dy))
			}
			g.dragging = ev.Pressed
			g.dragX, g.dragY = ev.X, ev.Y
			if ev.WheelY != 0 {
				g.orbit.Zoom(-ev.WheelY)
			}
			g.pointer = view.Pointer{X: ev.X, Y: ev.Y}
			g.havePointer = true
			continue
		default:
		}
		return
	}
}

// pick refreshes the hover for the current pointer. It runs every tick so the hover
// follows camera motion as well as pointer motion.
func (g *Globe) pick() {
	if !g.havePointer {
		return
	}
	g.setHover(g.picker.Pick(g.pointer, &g.state, g.globe, g.reg))
}

func (g *Globe) setHover(h view.Hover) {
	h = h.Resolve(g.reg)
	prev := g.state.Hover
	g.state.Hover = h
	if prev.Kind == h.Kind && prev.MarkerID == h.MarkerID {
		return
	}
	if h.Kind == view.HoverMarker {
		g.content.setHovered(h.MarkerID)
	} else {
		g.content.setHovered("")
	}
	g.log.Debug("hover changed", "from", prev.String(), "to", h.String())
}

func (g *Globe) toggleAllLabels() {
	g.showAll = !g.showAll
	for _, m := range g.reg.All() {
		on := g.showAll || g.alwaysNames[m.ID]
		if err := g.reg.SetAlwaysVisible(m.ID, on); err != nil {
			g.log.Warn("label toggle failed", "marker", m.ID, "error", err)
		}
	}
}

func (g *Globe) render() error {
	fb := g.h.Display().Framebuffer()
	if fb.Width() <= 0 || fb.Height() <= 0 {
		return nil
	}
	g.renderer.Render(g.display.target(), g.scene)
	drawLabels(g.display, g.overlay.Visible())

	g.fps.frame(g.h.Time().Now())
	if g.showHUD {
		drawHUD(g.display, hudLines(g.state.Hover, nearestLine(g.reg, g.state.Hover), readCamera(g.camera), g.fps.value(), g.reg.Len()))
	}
	return g.display.Display()
}

// SetRadius changes the globe radius at runtime. Graticule, marker positions and scene
// are rebuilt and the hover is cleared.
func (g *Globe) SetRadius(r float64) error {
	if err := geo.ValidateRadius(r); err != nil {
		return err
	}
	grid, err := graticule.Build(r, g.cfg.Globe.GraticuleStep)
	if err != nil {
		return err
	}
	if err := g.reg.RebuildPositions(r); err != nil {
		return err
	}
	g.globe.Radius = r
	g.grid = grid
	g.content.rebuild(r, g.globe.Segments, grid, g.reg.All(), g.cfg.Markers.Size, g.cfg.Markers.Bars)
	g.regGen = g.reg.Generation()
	g.state.ResetHover()
	g.log.Info("globe radius changed", "radius", r)
	return nil
}

// RemoveMarker deletes a marker and its label. A hover on it is dropped next tick.
func (g *Globe) RemoveMarker(id string) error {
	if err := g.reg.Remove(id); err != nil {
		return err
	}
	delete(g.alwaysNames, id)
	g.content.rebuild(g.globe.Radius, g.globe.Segments, g.grid, g.reg.All(), g.cfg.Markers.Size, g.cfg.Markers.Bars)
	return nil
}

// Hover returns the current hover state.
func (g *Globe) Hover() view.Hover { return g.state.Hover }

// Viewport returns the viewport last applied by a resize.
func (g *Globe) Viewport() view.Viewport { return g.state.Viewport }

func (g *Globe) Camera() *quarkgl.Camera { return g.camera }

func (g *Globe) Markers() *markers.Registry { return g.reg }

func (g *Globe) Overlay() *overlay.Memory { return g.overlay }

// ShownLabels reports how many labels the last Step displayed.
func (g *Globe) ShownLabels() int { return g.lastShown }

// NewStep adapts New to the hal host callback.
func NewStep(cfg *config.Config, recs []markers.Record, log *slog.Logger) func(hal.HAL) (func() error, error) {
	return func(h hal.HAL) (func() error, error) {
		g, err := New(h, cfg, recs, log)
		if err != nil {
			return nil, err
		}
		return g.Step, nil
	}
}

// IsQuit reports whether err is the clean shutdown signal.
func IsQuit(err error) bool { return errors.Is(err, hal.ErrQuit) }
