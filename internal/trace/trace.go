// Package trace reads recorded input sessions and replays them through a rig
// without a window.
package trace

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/YuShigurey/learn-bevy/pkg/camera"
)

// Controller names which rig a trace drives
type Controller string

const (
	ControllerOrbit   Controller = "orbit"
	ControllerFreeFly Controller = "freefly"
)

// MaxRepeat bounds how many ticks a single frame may expand to
const MaxRepeat = 100_000

// Trace is a recorded input session
type Trace struct {
	Controller Controller `yaml:"controller"`
	Viewport   [2]float32 `yaml:"viewport"`
	Frames     []Frame    `yaml:"frames"`
}

// Frame is one tick of recorded input, optionally repeated
type Frame struct {
	Keys    []string     `yaml:"keys,omitempty"`
	Motion  [][2]float32 `yaml:"motion,omitempty"`
	Scroll  float32      `yaml:"scroll,omitempty"`
	Enabled *bool        `yaml:"enabled,omitempty"` // defaults to true
	Repeat  int          `yaml:"repeat,omitempty"`  // defaults to 1
}

// Decode parses and validates a YAML trace
func Decode(r io.Reader) (*Trace, error) {
	var t Trace
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("trace is empty")
		}
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks the controller, the viewport and every key name
func (t *Trace) Validate() error {
	switch t.Controller {
	case ControllerOrbit, ControllerFreeFly:
	default:
		return fmt.Errorf("unknown controller %q", t.Controller)
	}
	if t.Viewport[0] <= 0 || t.Viewport[1] <= 0 {
		return fmt.Errorf("viewport %vx%v must be positive", t.Viewport[0], t.Viewport[1])
	}
	for i, f := range t.Frames {
		if f.Repeat < 0 || f.Repeat > MaxRepeat {
			return fmt.Errorf("frame %d: repeat %d must be in [0, %d]", i, f.Repeat, MaxRepeat)
		}
		for _, name := range f.Keys {
			if _, err := camera.ParseKey(name); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}
	}
	return nil
}

// Expand validates the trace and expands it into one InputFrame per tick
func (t *Trace) Expand() ([]camera.InputFrame, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	viewport := mgl32.Vec2{t.Viewport[0], t.Viewport[1]}

	var frames []camera.InputFrame
	for _, f := range t.Frames {
		in := camera.InputFrame{
			Enabled:  f.Enabled == nil || *f.Enabled,
			Scroll:   f.Scroll,
			Viewport: viewport,
		}
		for _, name := range f.Keys {
			k, err := camera.ParseKey(name)
			if err != nil {
				return nil, err
			}
			in.Keys = in.Keys.With(k)
		}
		for _, m := range f.Motion {
			in.Motion = append(in.Motion, mgl32.Vec2{m[0], m[1]})
		}

		repeat := f.Repeat
		if repeat == 0 {
			repeat = 1
		}
		for n := 0; n < repeat; n++ {
			frames = append(frames, in)
		}
	}
	return frames, nil
}

// Replay steps rig once per frame and returns the pose after each tick
func Replay(rig camera.Rig, frames []camera.InputFrame, dt float32) []camera.Pose {
	poses := make([]camera.Pose, 0, len(frames))
	for _, in := range frames {
		poses = append(poses, rig.Step(in, dt))
	}
	return poses
}
