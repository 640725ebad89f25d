package trace

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuShigurey/learn-bevy/pkg/camera"
)

const shooterTrace = `
controller: freefly
viewport: [800, 600]
frames:
  - keys: [forward]
    repeat: 3
  - keys: [left, up]
  - keys: [forward]
    enabled: false
  - motion: [[10, 0], [5, 0], [100, 0]]
`

func TestDecodeAndExpand(t *testing.T) {
	tr, err := Decode(strings.NewReader(shooterTrace))
	require.NoError(t, err)
	assert.Equal(t, ControllerFreeFly, tr.Controller)

	frames, err := tr.Expand()
	require.NoError(t, err)
	require.Len(t, frames, 6)

	for _, f := range frames[:3] {
		assert.True(t, f.Enabled)
		assert.True(t, f.Keys.Has(camera.KeyForward))
		assert.Equal(t, mgl32.Vec2{800, 600}, f.Viewport)
	}
	assert.Equal(t, camera.NewKeySet(camera.KeyLeft, camera.KeyUp), frames[3].Keys)
	assert.False(t, frames[4].Enabled)
	assert.Equal(t, []mgl32.Vec2{{10, 0}, {5, 0}, {100, 0}}, frames[5].Motion)
}

func TestReplayFreeFly(t *testing.T) {
	tr, err := Decode(strings.NewReader(shooterTrace))
	require.NoError(t, err)

	rig, err := camera.NewFreeFlyRig(camera.DefaultFreeFlyConfig(), camera.DefaultFreeFlyStart, camera.LookAngle{Yaw: camera.DefaultYaw})
	require.NoError(t, err)

	frames, err := tr.Expand()
	require.NoError(t, err)
	poses := Replay(rig, frames, camera.TimeStep)
	require.Len(t, poses, 6)

	assert.InDelta(t, -0.3, poses[2].Position.X(), 1e-5)
	// left wins over up
	assert.InDelta(t, 1, poses[3].Position.Y(), 1e-5)
	assert.InDelta(t, 0.1, poses[3].Position.Z(), 1e-5)
	// gate closed
	assert.Equal(t, poses[3], poses[4])
	// only the first two motion events count
	assert.InDelta(t, camera.DefaultYaw+15*camera.DefaultLookSensitivity, rig.State().Current.Yaw, 1e-5)
}

func TestReplayOrbitFullTurn(t *testing.T) {
	tr, err := Decode(strings.NewReader(`
controller: orbit
viewport: [800, 600]
frames:
  - motion: [[100, 0]]
    repeat: 8
`))
	require.NoError(t, err)

	rig, err := camera.NewOrbitRig(camera.DefaultOrbitConfig(), mgl32.Vec3{}, camera.DefaultOrbitOffset)
	require.NoError(t, err)
	start := rig.Pose()

	frames, err := tr.Expand()
	require.NoError(t, err)
	poses := Replay(rig, frames, camera.TimeStep)
	require.Len(t, poses, 8)
	assert.False(t, start.ApproxEqual(poses[3], 1e-3))
	assert.True(t, start.ApproxEqual(poses[7], 1e-3))
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"empty":       "",
		"controller":  "controller: drone\nviewport: [1, 1]\n",
		"viewport":    "controller: orbit\nviewport: [0, 600]\n",
		"key":         "controller: orbit\nviewport: [1, 1]\nframes:\n  - keys: [jump]\n",
		"repeat":      "controller: orbit\nviewport: [1, 1]\nframes:\n  - repeat: -2\n",
		"huge repeat": "controller: orbit\nviewport: [1, 1]\nframes:\n  - repeat: 100000001\n",
		"field":       "controller: orbit\nviewport: [1, 1]\nzoom: 3\n",
		"array":       "controller: orbit\nviewport: [1, 1, 1]\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(body))
			assert.Error(t, err)
		})
	}
}

func TestExpandRejectsUnknownKey(t *testing.T) {
	tr := &Trace{
		Controller: ControllerFreeFly,
		Viewport:   [2]float32{800, 600},
		Frames:     []Frame{{Keys: []string{"jump"}}},
	}
	frames, err := tr.Expand()
	assert.Error(t, err)
	assert.Nil(t, frames)
}

func TestExpandRejectsOversizedRepeat(t *testing.T) {
	tr := &Trace{
		Controller: ControllerOrbit,
		Viewport:   [2]float32{800, 600},
		Frames:     []Frame{{Repeat: MaxRepeat + 1}},
	}
	_, err := tr.Expand()
	assert.Error(t, err)

	tr.Frames[0].Repeat = 2
	frames, err := tr.Expand()
	require.NoError(t, err)
	assert.Len(t, frames, 2)
}
