package camera

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LookAngle is a yaw/pitch pair in radians
type LookAngle struct {
	Yaw   float32
	Pitch float32
}

// Direction returns the unit forward vector for the angle
func (a LookAngle) Direction() mgl32.Vec3 {
	return NormalizeDirection(a.Yaw, a.Pitch)
}

// FreeFlyConfig tunes the free-fly rig
type FreeFlyConfig struct {
	// World units moved per tick while a movement key is held
	MoveSpeed float32
	// Radians of look per pixel of mouse motion
	LookSensitivity float32
	// Distance kept between pitch and the poles
	PitchEpsilon float32
	// Motion events consumed per tick; later events in the same tick are dropped
	MaxLookEvents int
	// Zero snaps the current look to the desired look every tick. A positive
	// rate eases toward it by rate*dt of the remaining difference.
	SmoothingRate float32
}

// DefaultFreeFlyConfig returns the tuning used by the shooter demo
func DefaultFreeFlyConfig() FreeFlyConfig {
	return FreeFlyConfig{
		MoveSpeed:       DefaultMoveSpeed,
		LookSensitivity: DefaultLookSensitivity,
		PitchEpsilon:    DefaultPitchEpsilon,
		MaxLookEvents:   DefaultMaxLookEvents,
		SmoothingRate:   DefaultSmoothingRate,
	}
}

// Validate rejects settings that would let pitch reach a pole
func (c FreeFlyConfig) Validate() error {
	if c.PitchEpsilon <= 0 || c.PitchEpsilon >= math.Pi/2 {
		return fmt.Errorf("%w: pitch epsilon %v must be in (0, π/2)", ErrInvalidConfig, c.PitchEpsilon)
	}
	if c.MoveSpeed < 0 {
		return fmt.Errorf("%w: move speed %v must not be negative", ErrInvalidConfig, c.MoveSpeed)
	}
	if c.MaxLookEvents < 0 {
		return fmt.Errorf("%w: max look events %d must not be negative", ErrInvalidConfig, c.MaxLookEvents)
	}
	if c.SmoothingRate < 0 {
		return fmt.Errorf("%w: smoothing rate %v must not be negative", ErrInvalidConfig, c.SmoothingRate)
	}
	return nil
}

// FreeFlyState is the exclusively owned state of one free-fly camera
type FreeFlyState struct {
	Position mgl32.Vec3
	Desired  LookAngle
	Current  LookAngle
}

// NewFreeFlyState spawns a camera at position looking along look
func NewFreeFlyState(position mgl32.Vec3, look LookAngle) FreeFlyState {
	look.Pitch = ClampPitch(look.Pitch, DefaultPitchEpsilon)
	return FreeFlyState{
		Position: position,
		Desired:  look,
		Current:  look,
	}
}

// LookAt turns the camera toward target immediately
func (s FreeFlyState) LookAt(target mgl32.Vec3, eps float32) FreeFlyState {
	dir := target.Sub(s.Position)
	if dir.Len() < parallelEpsilon {
		return s
	}
	s.Desired = LookAngleFromDirection(dir, eps)
	s.Current = s.Desired
	return s
}

// Pose returns the camera transform, looking from Position along Current
func (s FreeFlyState) Pose() Pose {
	return Pose{
		Position:    s.Position,
		Orientation: LookRotation(s.Current.Direction(), WorldUp),
	}
}

// movePriority is the order in which held movement keys are tested. Only the
// first held key moves the camera; simultaneous keys do not combine.
var movePriority = [...]Key{KeyForward, KeyBack, KeyRight, KeyLeft, KeyUp, KeyDown}

// moveDirection returns the displacement direction for key. Forward and back
// follow the pitch; strafing and vertical motion never do.
func moveDirection(key Key, look LookAngle) mgl32.Vec3 {
	sin, cos := math.Sincos(float64(look.Yaw))
	switch key {
	case KeyForward:
		return look.Direction()
	case KeyBack:
		return look.Direction().Mul(-1)
	case KeyRight:
		return mgl32.Vec3{float32(-sin), 0, float32(cos)}
	case KeyLeft:
		return mgl32.Vec3{float32(sin), 0, float32(-cos)}
	case KeyUp:
		return mgl32.Vec3{0, 1, 0}
	case KeyDown:
		return mgl32.Vec3{0, -1, 0}
	}
	return mgl32.Vec3{}
}

// UpdateFreeFly advances a free-fly camera by one tick. It does nothing while
// the input gate is closed.
func UpdateFreeFly(cfg FreeFlyConfig, s FreeFlyState, in InputFrame, dt float32) FreeFlyState {
	if !in.Enabled {
		return s
	}

	for i, m := range in.Motion {
		if i >= cfg.MaxLookEvents {
			break
		}
		s.Desired.Yaw += m.X() * cfg.LookSensitivity
		s.Desired.Pitch = ClampPitch(s.Desired.Pitch-m.Y()*cfg.LookSensitivity, cfg.PitchEpsilon)
	}

	s.Current = easeLook(s.Current, s.Desired, cfg.SmoothingRate, dt)
	s.Current.Pitch = ClampPitch(s.Current.Pitch, cfg.PitchEpsilon)

	for _, key := range movePriority {
		if in.Keys.Has(key) {
			s.Position = s.Position.Add(moveDirection(key, s.Current).Mul(cfg.MoveSpeed))
			break
		}
	}
	return s
}

func easeLook(current, desired LookAngle, rate, dt float32) LookAngle {
	t := rate * dt
	if rate <= 0 || t >= 1 {
		return desired
	}
	if t <= 0 {
		return current
	}
	current.Yaw += (desired.Yaw - current.Yaw) * t
	current.Pitch += (desired.Pitch - current.Pitch) * t
	return current
}
