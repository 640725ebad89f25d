package viewer

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/YuShigurey/learn-bevy/internal/config"
	"github.com/YuShigurey/learn-bevy/pkg/camera"
	"github.com/YuShigurey/learn-bevy/pkg/scene"
)

// Mode selects which demo to run
type Mode string

const (
	// ModeShooter flies a free-fly camera through the closed room
	ModeShooter Mode = "shooter"
	// ModeEditor orbits the see-through room
	ModeEditor Mode = "editor"
)

// Scene returns the static layout for the mode
func (m Mode) Scene() (*scene.Scene, error) {
	switch m {
	case ModeShooter:
		return scene.Shooter(), nil
	case ModeEditor:
		return scene.Editor(), nil
	}
	return nil, fmt.Errorf("unknown mode %q", m)
}

// NewRig builds the rig for mode from cfg
func NewRig(m Mode, cfg *config.Config) (camera.Rig, error) {
	switch m {
	case ModeShooter:
		start, err := cfg.FreeFlyStart()
		if err != nil {
			return nil, err
		}
		return camera.NewFreeFlyRig(cfg.CameraFreeFly(), start, cfg.FreeFlyLook())
	case ModeEditor:
		focus, offset, err := cfg.OrbitPlacement()
		if err != nil {
			return nil, err
		}
		return camera.NewOrbitRig(cfg.CameraOrbit(), focus, offset)
	}
	return nil, fmt.Errorf("unknown mode %q", m)
}

// Simulation steps a rig once per tick and reports notable state changes.
// It has no GL dependencies.
type Simulation struct {
	rig    camera.Rig
	logger zerolog.Logger

	ticks      uint64
	upsideDown bool
}

// NewSimulation wraps rig
func NewSimulation(rig camera.Rig, logger zerolog.Logger) *Simulation {
	s := &Simulation{rig: rig, logger: logger}
	if orbit, ok := rig.(*camera.OrbitRig); ok {
		s.upsideDown = orbit.State().UpsideDown()
	}
	return s
}

// Tick applies one frame of input
func (s *Simulation) Tick(in camera.InputFrame, dt float32) camera.Pose {
	pose := s.rig.Step(in, dt)
	s.ticks++

	if orbit, ok := s.rig.(*camera.OrbitRig); ok {
		if flipped := orbit.State().UpsideDown(); flipped != s.upsideDown {
			s.upsideDown = flipped
			s.logger.Debug().
				Uint64("tick", s.ticks).
				Bool("upside_down", flipped).
				Msg("Orbit camera crossed a pole")
		}
	}
	return pose
}

// Apply swaps the rig tuning for the values in cfg. Placement settings only
// take effect on restart.
func (s *Simulation) Apply(cfg *config.Config) error {
	switch rig := s.rig.(type) {
	case *camera.FreeFlyRig:
		return rig.SetConfig(cfg.CameraFreeFly())
	case *camera.OrbitRig:
		return rig.SetConfig(cfg.CameraOrbit())
	}
	return fmt.Errorf("rig %T does not support reconfiguration", s.rig)
}

// Pose returns the latest camera pose
func (s *Simulation) Pose() camera.Pose {
	return s.rig.Pose()
}

// Ticks returns the number of ticks run so far
func (s *Simulation) Ticks() uint64 {
	return s.ticks
}
