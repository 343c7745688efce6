//go:build cgo

package hal

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunWindow opens a resizable desktop window that displays the framebuffer and
// forwards pointer, wheel, key and resize input. It blocks until the window closes or
// the app step returns ErrQuit.
func RunWindow(cfg WindowConfig, newApp func(HAL) (func() error, error)) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errors.New("window size must be positive")
	}
	h := newHost(cfg.Width, cfg.Height)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step, layoutW: cfg.Width, layoutH: cfg.Height}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	err = ebiten.RunGame(g)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

type hostGame struct {
	h       *hostHAL
	fbImg   *ebiten.Image
	scratch []byte
	step    func() error

	layoutW, layoutH int
}

func (g *hostGame) Update() error {
	if g.h.in.sizeChanged(g.layoutW, g.layoutH) {
		g.h.fb.Resize(g.layoutW, g.layoutH)
	}
	g.poll()
	if g.step != nil {
		return g.step()
	}
	return nil
}

func (g *hostGame) poll() {
	in := g.h.in
	x, y := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	_, wy := ebiten.Wheel()
	in.pointerChanged(x, y, pressed, wy)

	for key, code := range keyMap {
		if inpututil.IsKeyJustPressed(key) {
			in.pushKey(KeyEvent{Code: code, Press: true})
		}
		if inpututil.IsKeyJustReleased(key) {
			in.pushKey(KeyEvent{Code: code, Press: false})
		}
	}
}

var keyMap = map[ebiten.Key]KeyCode{
	ebiten.KeyArrowUp:    KeyUp,
	ebiten.KeyArrowDown:  KeyDown,
	ebiten.KeyArrowLeft:  KeyLeft,
	ebiten.KeyArrowRight: KeyRight,
	ebiten.KeyEscape:     KeyEscape,
	ebiten.KeyTab:        KeyTab,
	ebiten.KeyL:          KeyL,
	ebiten.KeyH:          KeyH,
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	w, h := fb.Width(), fb.Height()
	if w <= 0 || h <= 0 {
		return
	}
	if g.fbImg == nil || g.fbImg.Bounds().Dx() != w || g.fbImg.Bounds().Dy() != h {
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}
	g.scratch = fb.snapshot(g.scratch)
	if len(g.scratch) != 4*w*h {
		return
	}
	g.fbImg.WritePixels(g.scratch)
	screen.DrawImage(g.fbImg, nil)
}

// Layout tracks the window size so the framebuffer always matches it one to one.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.layoutW, g.layoutH = outsideWidth, outsideHeight
	}
	return g.layoutW, g.layoutH
}
