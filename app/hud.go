package app

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"geoglobe/globe/markers"
	"geoglobe/globe/overlay"
	"geoglobe/globe/view"
	"geoglobe/quarkgl"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	hudFont = &proggy.TinySZ8pt7b

	colorHUDText  = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
	colorHUDDim   = color.RGBA{R: 0x88, G: 0x99, B: 0xaa, A: 0xff}
	colorHUDPanel = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0x99}
	colorLabel    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorLabelBG  = color.RGBA{R: 0x10, G: 0x10, B: 0x20, A: 0xb0}
)

const hudLineHeight = 12

// fpsCounter reports frames per second, refreshed once per second.
type fpsCounter struct {
	windowStart time.Duration
	frames      int
	fps         float64
	started     bool
}

func (f *fpsCounter) frame(now time.Duration) {
	if !f.started {
		f.windowStart, f.started = now, true
		return
	}
	f.frames++
	if elapsed := now - f.windowStart; elapsed >= time.Second {
		f.fps = float64(f.frames) / elapsed.Seconds()
		f.frames = 0
		f.windowStart = now
	}
}

func (f *fpsCounter) value() float64 { return f.fps }

// cameraReadout describes the camera relative to the globe center.
type cameraReadout struct {
	Distance float64
	Azimuth  float64 // degrees, 0..360
	Polar    float64 // degrees from +Y
}

func readCamera(cam *quarkgl.Camera) cameraReadout {
	p := cam.Position
	d := p.Norm()
	r := cameraReadout{Distance: d}
	r.Azimuth = quarkgl.RadToDeg(math.Atan2(p.X, p.Z)) + 180
	if d > 0 {
		r.Polar = quarkgl.RadToDeg(math.Acos(clampF(p.Y/d, -1, 1)))
	}
	return r
}

// nearestLine describes the marker closest to a surface hover, or "" otherwise.
func nearestLine(reg *markers.Registry, h view.Hover) string {
	if h.Kind != view.HoverSurface || reg == nil {
		return ""
	}
	m, deg, ok := reg.Nearest(h.Coordinate)
	if !ok {
		return ""
	}
	return fmt.Sprintf("nearest %s %.1f deg", m.Payload.Name, deg)
}

// hudLines formats the read-out panel. nearest is appended below a surface hover when
// non-empty.
func hudLines(h view.Hover, nearest string, cam cameraReadout, fps float64, markerCount int) []string {
	lines := make([]string, 0, 6)
	switch h.Kind {
	case view.HoverSurface:
		lines = append(lines,
			fmt.Sprintf("lat %7.2f  lon %8.2f", h.Coordinate.Lat, h.Coordinate.Lon),
			fmt.Sprintf("x %7.1f y %7.1f z %7.1f", h.Point.X, h.Point.Y, h.Point.Z))
		if nearest != "" {
			lines = append(lines, nearest)
		}
	case view.HoverMarker:
		lines = append(lines, "marker "+h.MarkerID, "")
	default:
		lines = append(lines, "lat    --    lon    --", "")
	}
	lines = append(lines,
		fmt.Sprintf("dist %6.1f az %6.1f pol %5.1f", cam.Distance, cam.Azimuth, cam.Polar),
		fmt.Sprintf("markers %d  fps %5.1f", markerCount, fps),
	)
	return lines
}

func drawHUD(d *fbDisplay, lines []string) {
	if len(lines) == 0 {
		return
	}
	width := int16(0)
	for _, s := range lines {
		if w, _ := tinyfont.LineWidth(hudFont, s); int16(w) > width {
			width = int16(w)
		}
	}
	_ = d.FillRectangle(4, 4, width+8, int16(len(lines))*hudLineHeight+6, colorHUDPanel)
	for i, s := range lines {
		c := colorHUDText
		if i >= 2 {
			c = colorHUDDim
		}
		tinyfont.WriteLine(d, hudFont, 8, int16(4+hudLineHeight*(i+1)), s, c)
	}
}

// drawLabels renders every visible overlay label centered on its position.
func drawLabels(d *fbDisplay, labels []overlay.Snapshot) {
	for _, l := range labels {
		if l.Text == "" {
			continue
		}
		w, _ := tinyfont.LineWidth(hudFont, l.Text)
		x := int16(math.Round(l.X)) - int16(w)/2
		y := int16(math.Round(l.Y))
		_ = d.FillRectangle(x-3, y-hudLineHeight+1, int16(w)+6, hudLineHeight+2, colorLabelBG)
		tinyfont.WriteLine(d, hudFont, x, y, l.Text, colorLabel)
	}
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
