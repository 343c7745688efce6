package hal

import "time"

const eventBuffer = 256

type hostHAL struct {
	fb *hostFramebuffer
	in *hostInput
	t  *hostTime
}

// New returns a host HAL with a framebuffer of the given size. It queues an initial
// resize event so the app learns the surface size on its first tick.
func New(width, height int) HAL {
	return newHost(width, height)
}

func newHost(width, height int) *hostHAL {
	h := &hostHAL{
		fb: newHostFramebuffer(width, height),
		in: newHostInput(),
		t:  newHostTime(),
	}
	h.in.pushResize(ResizeEvent{Width: width, Height: height})
	return h
}

func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return h.in }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	pointer chan PointerEvent
	resize  chan ResizeEvent
	keys    chan KeyEvent

	// Last state seen by poll.
	lastX, lastY int
	lastPressed  bool
	lastW, lastH int
}

func newHostInput() *hostInput {
	return &hostInput{
		pointer: make(chan PointerEvent, eventBuffer),
		resize:  make(chan ResizeEvent, eventBuffer),
		keys:    make(chan KeyEvent, eventBuffer),
		lastX:   -1,
		lastY:   -1,
	}
}

func (in *hostInput) Pointer() <-chan PointerEvent { return in.pointer }
func (in *hostInput) Resize() <-chan ResizeEvent   { return in.resize }
func (in *hostInput) Keys() <-chan KeyEvent        { return in.keys }

func (in *hostInput) pushPointer(ev PointerEvent) {
	select {
	case in.pointer <- ev:
	default:
	}
}

func (in *hostInput) pushResize(ev ResizeEvent) {
	in.lastW, in.lastH = ev.Width, ev.Height
	select {
	case in.resize <- ev:
	default:
	}
}

func (in *hostInput) pushKey(ev KeyEvent) {
	select {
	case in.keys <- ev:
	default:
	}
}

// pointerChanged queues a pointer event when anything differs from the last one.
func (in *hostInput) pointerChanged(x, y int, pressed bool, wheel float64) {
	if x == in.lastX && y == in.lastY && pressed == in.lastPressed && wheel == 0 {
		return
	}
	in.lastX, in.lastY, in.lastPressed = x, y, pressed
	in.pushPointer(PointerEvent{X: x, Y: y, Pressed: pressed, WheelY: wheel})
}

// sizeChanged queues a resize event when the surface size differs from the last one.
func (in *hostInput) sizeChanged(w, h int) bool {
	if w == in.lastW && h == in.lastH {
		return false
	}
	in.pushResize(ResizeEvent{Width: w, Height: h})
	return true
}

type hostTime struct {
	start time.Time
}

func newHostTime() *hostTime { return &hostTime{start: time.Now()} }

func (t *hostTime) Now() time.Duration { return time.Since(t.start) }
