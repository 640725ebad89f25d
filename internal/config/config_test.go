package config

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuShigurey/learn-bevy/pkg/camera"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "crafthouse.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultConfigMatchesCamera(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, camera.DefaultFreeFlyConfig(), cfg.CameraFreeFly())
	assert.Equal(t, camera.DefaultOrbitConfig(), cfg.CameraOrbit())

	start, err := cfg.FreeFlyStart()
	require.NoError(t, err)
	assert.Equal(t, camera.DefaultFreeFlyStart, start)
	assert.Equal(t, camera.LookAngle{Yaw: camera.DefaultYaw}, cfg.FreeFlyLook())

	focus, offset, err := cfg.OrbitPlacement()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{}, focus)
	assert.Equal(t, camera.DefaultOrbitOffset, offset)

	assert.Equal(t, time.Second/60, cfg.TickInterval())
}

func TestDefaultConfigDoesNotAliasCameraDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FreeFly.Start[0] = 99
	cfg.Orbit.Offset[0] = 99
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, camera.DefaultFreeFlyStart)
	assert.Equal(t, mgl32.Vec3{-2, 2.5, 5}, camera.DefaultOrbitOffset)
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
  height: 600
freefly:
  move_speed: 0.25
  smoothing_rate: 12
  start: [1, 2, 3]
orbit:
  focus: [0, 1, 0]
  zoom_rate: 0.5
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "crafthouse", cfg.Window.Title)
	assert.Equal(t, float32(0.25), cfg.FreeFly.MoveSpeed)
	assert.Equal(t, float32(12), cfg.FreeFly.SmoothingRate)
	assert.Equal(t, float32(camera.DefaultLookSensitivity), cfg.FreeFly.LookSensitivity)
	assert.Equal(t, "debug", cfg.Log.Level)

	start, err := cfg.FreeFlyStart()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, start)

	focus, offset, err := cfg.OrbitPlacement()
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, focus)
	assert.Equal(t, camera.DefaultOrbitOffset, offset)
	assert.Equal(t, float32(0.5), cfg.CameraOrbit().ZoomRate)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CRAFTHOUSE_FREEFLY_MOVE_SPEED", "0.5")
	t.Setenv("CRAFTHOUSE_TICK_RATE", "120")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), cfg.FreeFly.MoveSpeed)
	assert.Equal(t, 120, cfg.Tick.Rate)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"short vector":   "freefly:\n  start: [1, 2]\n",
		"zero offset":    "orbit:\n  offset: [0, 0, 0]\n",
		"pitch epsilon":  "freefly:\n  pitch_epsilon: 0\n",
		"min radius":     "orbit:\n  min_radius: 0\n",
		"tick rate":      "tick:\n  rate: 0\n",
		"window":         "window:\n  width: -1\n",
		"unknown level":  "log:\n  level: chatty\n",
		"fov":            "window:\n  fov: 180\n",
		"max look count": "freefly:\n  max_look_events: -1\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestOrbitPlacementDegenerate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Orbit.Offset = []float32{0, 0, 0}
	_, _, err := cfg.OrbitPlacement()
	assert.ErrorIs(t, err, camera.ErrDegenerateOrbit)
}

func TestWatchDeliversValidChanges(t *testing.T) {
	path := writeConfig(t, "freefly:\n  move_speed: 0.1\n")
	v, err := New(path)
	require.NoError(t, err)

	var speed atomic.Value
	Watch(v, func(cfg *Config) {
		speed.Store(cfg.FreeFly.MoveSpeed)
	}, nil)

	require.NoError(t, os.WriteFile(path, []byte("freefly:\n  move_speed: 0.3\n"), 0644))
	assert.Eventually(t, func() bool {
		got, ok := speed.Load().(float32)
		return ok && got == 0.3
	}, 5*time.Second, 20*time.Millisecond)
}
