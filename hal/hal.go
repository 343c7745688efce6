// Package hal is the boundary between the globe application and the host: a pixel
// surface, pointer/keyboard/resize input and a clock.
package hal

import (
	"errors"
	"time"
)

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGBA8888 is 32bpp in R, G, B, A byte order.
	PixelFormatRGBA8888 PixelFormat = iota + 1
)

// Framebuffer is a resizable pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
	// Resize reallocates the buffer. Contents are undefined afterwards.
	Resize(width, height int)
}

// PointerEvent reports the cursor relative to the render surface, in device pixels.
type PointerEvent struct {
	X, Y int
	// Pressed is true while the primary button is held.
	Pressed bool
	// WheelY is the vertical scroll since the previous event.
	WheelY float64
}

// ResizeEvent carries the new render surface size.
type ResizeEvent struct {
	Width  int
	Height int
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
	KeyTab
	KeyL
	KeyH
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Input delivers host events. Channels are buffered and drop events when full.
type Input interface {
	Pointer() <-chan PointerEvent
	Resize() <-chan ResizeEvent
	Keys() <-chan KeyEvent
}

// Display provides access to the framebuffer.
type Display interface {
	Framebuffer() Framebuffer
}

// Time reports the time elapsed since the host started.
type Time interface {
	Now() time.Duration
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Width  int
	Height int
	Title  string
	TPS    int
}

// HAL provides the only contact point between the app and the outside world.
type HAL interface {
	Display() Display
	Input() Input
	Time() Time
}
