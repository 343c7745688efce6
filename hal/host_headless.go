package hal

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrQuit is returned by an app step to stop the host loop cleanly.
var ErrQuit = errors.New("quit")

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz     int
	Ticks  uint64
	Width  int
	Height int
	// Sweep moves a synthetic pointer across the surface, one event per tick.
	Sweep bool
}

// RunHeadless runs the app without opening a window.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, newApp func(HAL) (func() error, error)) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid headless size: %dx%d", cfg.Width, cfg.Height)
	}

	h := newHost(cfg.Width, cfg.Height)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if cfg.Sweep {
				x, y := SweepPoint(tick, cfg.Width, cfg.Height)
				h.in.pointerChanged(x, y, false, 0)
			}
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

// SweepPoint returns the synthetic cursor position for a tick: a Lissajous curve that
// covers the surface without leaving it.
func SweepPoint(tick uint64, width, height int) (x, y int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	t := float64(tick)
	fx := 0.5 + 0.5*math.Sin(t*0.05)
	fy := 0.5 + 0.5*math.Sin(t*0.031+math.Pi/3)
	x = int(fx * float64(width-1))
	y = int(fy * float64(height-1))
	return x, y
}
