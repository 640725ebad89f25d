package camera

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Key is a logical camera control, independent of the physical device
type Key uint8

const (
	KeyForward Key = iota
	KeyBack
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	// KeyPan turns orbit motion into panning of the focus point
	KeyPan

	numKeys
)

var keyNames = [numKeys]string{
	KeyForward: "forward",
	KeyBack:    "back",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyUp:      "up",
	KeyDown:    "down",
	KeyPan:     "pan",
}

func (k Key) String() string {
	if k < numKeys {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", uint8(k))
}

// ParseKey maps a key name such as "forward" back to its Key
func ParseKey(name string) (Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k, s := range keyNames {
		if s == n {
			return Key(k), nil
		}
	}
	return 0, fmt.Errorf("unknown camera key %q", name)
}

// KeySet is the set of keys held during a tick
type KeySet uint16

// NewKeySet returns a set holding keys
func NewKeySet(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

// With returns the set with k added
func (s KeySet) With(k Key) KeySet {
	return s | 1<<k
}

// Has reports whether k is held
func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

// Keys lists the held keys in declaration order
func (s KeySet) Keys() []Key {
	var keys []Key
	for k := Key(0); k < numKeys; k++ {
		if s.Has(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

// InputFrame is everything a rig sees during one tick
type InputFrame struct {
	// Enabled is true only while the cursor is locked to the window
	Enabled bool

	Keys KeySet

	// Motion holds the raw mouse deltas (pixels) in arrival order
	Motion []mgl32.Vec2

	// Scroll is the summed wheel movement; positive zooms in
	Scroll float32

	// Viewport is the window size in pixels. Both components must be > 0
	// whenever Motion is non-empty.
	Viewport mgl32.Vec2
}

// TotalMotion sums every motion event of the frame
func (f InputFrame) TotalMotion() mgl32.Vec2 {
	var sum mgl32.Vec2
	for _, m := range f.Motion {
		sum = sum.Add(m)
	}
	return sum
}
