// Package input turns GLFW keyboard and mouse state into camera input frames.
package input

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/YuShigurey/learn-bevy/pkg/camera"
)

// Common GLFW actions
const (
	Press   = glfw.Press
	Release = glfw.Release
)

// Poller reads held keys and buttons. *glfw.Window satisfies it.
type Poller interface {
	GetKey(key glfw.Key) glfw.Action
	GetMouseButton(button glfw.MouseButton) glfw.Action
}

// Keymap binds physical keys and mouse buttons to camera keys
type Keymap struct {
	Keys    map[glfw.Key]camera.Key
	Buttons map[glfw.MouseButton]camera.Key
}

// DefaultKeymap is WASD with Space/LeftShift for vertical movement and the
// middle mouse button for orbit panning.
func DefaultKeymap() Keymap {
	return Keymap{
		Keys: map[glfw.Key]camera.Key{
			glfw.KeyW:         camera.KeyForward,
			glfw.KeyS:         camera.KeyBack,
			glfw.KeyD:         camera.KeyRight,
			glfw.KeyA:         camera.KeyLeft,
			glfw.KeySpace:     camera.KeyUp,
			glfw.KeyLeftShift: camera.KeyDown,
		},
		Buttons: map[glfw.MouseButton]camera.Key{
			glfw.MouseButtonMiddle: camera.KeyPan,
		},
	}
}

// Held returns the camera keys whose bindings are pressed
func (m Keymap) Held(p Poller) camera.KeySet {
	var held camera.KeySet
	for k, ck := range m.Keys {
		if p.GetKey(k) == Press {
			held = held.With(ck)
		}
	}
	for b, ck := range m.Buttons {
		if p.GetMouseButton(b) == Press {
			held = held.With(ck)
		}
	}
	return held
}

// Collector buffers mouse events between ticks
type Collector struct {
	keymap Keymap

	motion []mgl32.Vec2
	scroll float32

	lastX, lastY float64
	firstMouse   bool
}

// NewCollector creates an empty collector reading held keys through keymap.
// The first cursor sample only records the position.
func NewCollector(keymap Keymap) *Collector {
	return &Collector{keymap: keymap, firstMouse: true}
}

// OnCursorPos records the delta from the previous cursor sample in screen
// coordinates (+Y is down).
func (c *Collector) OnCursorPos(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX = xpos
		c.lastY = ypos
		c.firstMouse = false
		return
	}

	delta := mgl32.Vec2{float32(xpos - c.lastX), float32(ypos - c.lastY)}
	c.lastX = xpos
	c.lastY = ypos
	if delta.X() == 0 && delta.Y() == 0 {
		return
	}
	c.motion = append(c.motion, delta)
}

// OnScroll accumulates vertical wheel movement
func (c *Collector) OnScroll(_, yoff float64) {
	c.scroll += float32(yoff)
}

// ResetCursor makes the next cursor sample a reference point instead of a
// delta. Call it whenever the cursor is locked so the jump to the window
// center is not read as motion.
func (c *Collector) ResetCursor() {
	c.firstMouse = true
}

// Pending reports how many motion events are buffered
func (c *Collector) Pending() int {
	return len(c.motion)
}

// Drain builds the frame for one tick and clears the buffered events.
// Events buffered while the gate is closed are discarded, and so is motion
// while either viewport dimension is not positive.
func (c *Collector) Drain(p Poller, viewport mgl32.Vec2, enabled bool) camera.InputFrame {
	in := camera.InputFrame{
		Enabled:  enabled,
		Viewport: viewport,
	}
	if enabled {
		in.Keys = c.keymap.Held(p)
		in.Scroll = c.scroll
		// a minimized window reports 0x0 and motion is measured against it
		if viewport.X() > 0 && viewport.Y() > 0 {
			in.Motion = c.motion
		}
	}
	c.motion = nil
	c.scroll = 0
	return in
}
