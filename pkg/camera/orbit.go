package camera

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidConfig is wrapped by every config validation failure
	ErrInvalidConfig = errors.New("invalid camera config")
	// ErrDegenerateOrbit means the camera sits on its own focus point
	ErrDegenerateOrbit = errors.New("orbit radius must be greater than zero")
)

// OrbitConfig tunes the orbit rig
type OrbitConfig struct {
	// Radians of yaw for motion across the full viewport width
	YawPerViewport float32
	// Radians of pitch for motion across the full viewport height
	PitchPerViewport float32

	// Fraction of the radius removed per unit of scroll
	ZoomRate float32
	// Vertical field of view used to scale pan motion (radians)
	PanFactor float32
	// Zoom never brings the camera closer to the focus than this
	MinRadius float32
}

// DefaultOrbitConfig returns the tuning used by the editor demo
func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{
		YawPerViewport:   DefaultYawPerViewport,
		PitchPerViewport: DefaultPitchPerViewport,
		ZoomRate:         DefaultZoomRate,
		PanFactor:        DefaultPanFactor,
		MinRadius:        DefaultMinRadius,
	}
}

// Validate checks that the config cannot collapse the orbit
func (c OrbitConfig) Validate() error {
	if c.MinRadius <= 0 {
		return fmt.Errorf("%w: min radius %v must be positive", ErrInvalidConfig, c.MinRadius)
	}
	if c.ZoomRate < 0 || c.ZoomRate >= 1 {
		return fmt.Errorf("%w: zoom rate %v must be in [0, 1)", ErrInvalidConfig, c.ZoomRate)
	}
	if c.PanFactor < 0 {
		return fmt.Errorf("%w: pan factor %v must not be negative", ErrInvalidConfig, c.PanFactor)
	}
	return nil
}

// OrbitState is the exclusively owned state of one orbit camera
type OrbitState struct {
	Focus  mgl32.Vec3
	Radius float32

	Orientation mgl32.Quat
	Position    mgl32.Vec3

	upsideDown bool
}

// NewOrbitState places a camera at focus+offset looking at focus
func NewOrbitState(focus, offset mgl32.Vec3) (OrbitState, error) {
	radius := offset.Len()
	if radius <= 0 {
		return OrbitState{}, ErrDegenerateOrbit
	}

	orientation := LookRotation(offset.Mul(-1), WorldUp)
	s := OrbitState{
		Focus:       focus,
		Radius:      radius,
		Orientation: orientation,
		Position:    focus.Add(offset),
	}
	s.upsideDown = isUpsideDown(orientation)
	return s, nil
}

// UpsideDown reports whether the camera's local up pointed at or below the
// horizon when the state was last updated
func (s OrbitState) UpsideDown() bool {
	return s.upsideDown
}

// Pose returns the camera transform of the state
func (s OrbitState) Pose() Pose {
	return Pose{Position: s.Position, Orientation: s.Orientation}
}

func isUpsideDown(q mgl32.Quat) bool {
	return LocalUp(q).Y() <= 0
}

// UpdateOrbit advances an orbit camera by one tick.
//
// All motion events of the frame are summed and applied once. With KeyPan
// held the motion moves the focus instead of turning the arm. Scroll zooms
// toward the focus. When nothing moved the state comes back untouched.
//
// in.Viewport must have positive dimensions whenever in.Motion is non-empty.
func UpdateOrbit(cfg OrbitConfig, s OrbitState, in InputFrame) OrbitState {
	if !in.Enabled {
		return s
	}

	motion := in.TotalMotion()
	moved := false

	if motion.LenSqr() > 0 {
		moved = true
		// Sampled before this tick's rotation so a flip takes effect next tick
		s.upsideDown = isUpsideDown(s.Orientation)

		if in.Keys.Has(KeyPan) {
			s.Focus = s.Focus.Add(panOffset(cfg, s, motion, in.Viewport))
		} else {
			dx := motion.X() / in.Viewport.X() * cfg.YawPerViewport
			if s.upsideDown {
				dx = -dx
			}
			dy := motion.Y() / in.Viewport.Y() * cfg.PitchPerViewport
			s.Orientation = ApplyYawPitch(s.Orientation, -dx, -dy)
		}
	}

	if in.Scroll != 0 {
		moved = true
		s.Radius -= in.Scroll * s.Radius * cfg.ZoomRate
		if s.Radius < cfg.MinRadius {
			s.Radius = cfg.MinRadius
		}
	}

	if moved {
		// Parent (yaw/pitch) with a child at a fixed z offset, without a hierarchy
		s.Position = s.Focus.Add(s.Orientation.Rotate(mgl32.Vec3{0, 0, s.Radius}))
	}
	return s
}

// panOffset converts screen motion into a focus translation in the camera plane
func panOffset(cfg OrbitConfig, s OrbitState, motion, viewport mgl32.Vec2) mgl32.Vec3 {
	aspect := viewport.X() / viewport.Y()
	pan := mgl32.Vec2{
		motion.X() * cfg.PanFactor * aspect / viewport.X(),
		motion.Y() * cfg.PanFactor / viewport.Y(),
	}
	right := LocalRight(s.Orientation).Mul(-pan.X())
	up := LocalUp(s.Orientation).Mul(pan.Y())
	return right.Add(up).Mul(s.Radius)
}
