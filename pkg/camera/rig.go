package camera

import "github.com/go-gl/mathgl/mgl32"

// Rig pairs a controller configuration with the state it owns. The host calls
// Step exactly once per scheduler tick.
type Rig interface {
	Step(in InputFrame, dt float32) Pose
	Pose() Pose
}

var (
	_ Rig = (*OrbitRig)(nil)
	_ Rig = (*FreeFlyRig)(nil)
)

// OrbitRig drives an OrbitState
type OrbitRig struct {
	config OrbitConfig
	state  OrbitState
}

// NewOrbitRig validates cfg and spawns a camera at focus+offset
func NewOrbitRig(cfg OrbitConfig, focus, offset mgl32.Vec3) (*OrbitRig, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	state, err := NewOrbitState(focus, offset)
	if err != nil {
		return nil, err
	}
	return &OrbitRig{config: cfg, state: state}, nil
}

// Step applies one tick of input
func (r *OrbitRig) Step(in InputFrame, _ float32) Pose {
	r.state = UpdateOrbit(r.config, r.state, in)
	return r.state.Pose()
}

// Pose returns the current camera transform
func (r *OrbitRig) Pose() Pose {
	return r.state.Pose()
}

// State returns a copy of the owned state
func (r *OrbitRig) State() OrbitState {
	return r.state
}

// SetConfig swaps the tuning; the state is kept
func (r *OrbitRig) SetConfig(cfg OrbitConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.config = cfg
	if r.state.Radius < cfg.MinRadius {
		r.state.Radius = cfg.MinRadius
		r.state.Position = r.state.Focus.Add(r.state.Orientation.Rotate(mgl32.Vec3{0, 0, r.state.Radius}))
	}
	return nil
}

// FreeFlyRig drives a FreeFlyState
type FreeFlyRig struct {
	config FreeFlyConfig
	state  FreeFlyState
}

// NewFreeFlyRig validates cfg and spawns a camera at position
func NewFreeFlyRig(cfg FreeFlyConfig, position mgl32.Vec3, look LookAngle) (*FreeFlyRig, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	state := NewFreeFlyState(position, look)
	state.Desired.Pitch = ClampPitch(state.Desired.Pitch, cfg.PitchEpsilon)
	state.Current = state.Desired
	return &FreeFlyRig{config: cfg, state: state}, nil
}

// Step applies one tick of input
func (r *FreeFlyRig) Step(in InputFrame, dt float32) Pose {
	r.state = UpdateFreeFly(r.config, r.state, in, dt)
	return r.state.Pose()
}

// Pose returns the current camera transform
func (r *FreeFlyRig) Pose() Pose {
	return r.state.Pose()
}

// State returns a copy of the owned state
func (r *FreeFlyRig) State() FreeFlyState {
	return r.state
}

// LookAt turns the camera toward target
func (r *FreeFlyRig) LookAt(target mgl32.Vec3) {
	r.state = r.state.LookAt(target, r.config.PitchEpsilon)
}

// SetConfig swaps the tuning. Pitch is re-clamped in case the epsilon grew.
func (r *FreeFlyRig) SetConfig(cfg FreeFlyConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.config = cfg
	r.state.Desired.Pitch = ClampPitch(r.state.Desired.Pitch, cfg.PitchEpsilon)
	r.state.Current.Pitch = ClampPitch(r.state.Current.Pitch, cfg.PitchEpsilon)
	return nil
}
