// Package config provides configuration management for the crafthouse demos
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/viper"

	"github.com/YuShigurey/learn-bevy/internal/logging"
	"github.com/YuShigurey/learn-bevy/pkg/camera"
)

// EnvPrefix is prepended to environment overrides, e.g. CRAFTHOUSE_FREEFLY_MOVE_SPEED
const EnvPrefix = "CRAFTHOUSE"

// Config holds all application configuration
type Config struct {
	Window  WindowConfig   `mapstructure:"window"`
	Tick    TickConfig     `mapstructure:"tick"`
	FreeFly FreeFlyConfig  `mapstructure:"freefly"`
	Orbit   OrbitConfig    `mapstructure:"orbit"`
	Log     logging.Config `mapstructure:"log"`
}

// WindowConfig configures the demo window
type WindowConfig struct {
	Title  string  `mapstructure:"title"`
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	VSync  bool    `mapstructure:"vsync"`
	FOV    float32 `mapstructure:"fov"` // vertical, degrees
}

// TickConfig configures the fixed-timestep scheduler
type TickConfig struct {
	Rate     int `mapstructure:"rate"`      // ticks per second
	MaxSteps int `mapstructure:"max_steps"` // ticks run per frame before backlog is dropped
}

// FreeFlyConfig configures the shooter camera
type FreeFlyConfig struct {
	MoveSpeed       float32   `mapstructure:"move_speed"`
	LookSensitivity float32   `mapstructure:"look_sensitivity"`
	PitchEpsilon    float32   `mapstructure:"pitch_epsilon"`
	MaxLookEvents   int       `mapstructure:"max_look_events"`
	SmoothingRate   float32   `mapstructure:"smoothing_rate"`
	Start           []float32 `mapstructure:"start"`
	Yaw             float32   `mapstructure:"yaw"`
	Pitch           float32   `mapstructure:"pitch"`
}

// OrbitConfig configures the editor camera
type OrbitConfig struct {
	Focus            []float32 `mapstructure:"focus"`
	Offset           []float32 `mapstructure:"offset"`
	YawPerViewport   float32   `mapstructure:"yaw_per_viewport"`
	PitchPerViewport float32   `mapstructure:"pitch_per_viewport"`
	ZoomRate         float32   `mapstructure:"zoom_rate"`
	PanFactor        float32   `mapstructure:"pan_factor"`
	MinRadius        float32   `mapstructure:"min_radius"`
}

// DefaultConfig returns the configuration matching the original demos
func DefaultConfig() *Config {
	ff := camera.DefaultFreeFlyConfig()
	orbit := camera.DefaultOrbitConfig()
	return &Config{
		Window: WindowConfig{
			Title:  "crafthouse",
			Width:  1280,
			Height: 720,
			VSync:  true,
			FOV:    45,
		},
		Tick: TickConfig{
			Rate:     60,
			MaxSteps: 5,
		},
		FreeFly: FreeFlyConfig{
			MoveSpeed:       ff.MoveSpeed,
			LookSensitivity: ff.LookSensitivity,
			PitchEpsilon:    ff.PitchEpsilon,
			MaxLookEvents:   ff.MaxLookEvents,
			SmoothingRate:   ff.SmoothingRate,
			Start:           components(camera.DefaultFreeFlyStart),
			Yaw:             camera.DefaultYaw,
			Pitch:           camera.DefaultPitch,
		},
		Orbit: OrbitConfig{
			Focus:            []float32{0, 0, 0},
			Offset:           components(camera.DefaultOrbitOffset),
			YawPerViewport:   orbit.YawPerViewport,
			PitchPerViewport: orbit.PitchPerViewport,
			ZoomRate:         orbit.ZoomRate,
			PanFactor:        orbit.PanFactor,
			MinRadius:        orbit.MinRadius,
		},
		Log: logging.DefaultConfig(),
	}
}

// setDefaults registers every default key so env overrides and Unmarshal see them
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("window.title", cfg.Window.Title)
	v.SetDefault("window.width", cfg.Window.Width)
	v.SetDefault("window.height", cfg.Window.Height)
	v.SetDefault("window.vsync", cfg.Window.VSync)
	v.SetDefault("window.fov", cfg.Window.FOV)

	v.SetDefault("tick.rate", cfg.Tick.Rate)
	v.SetDefault("tick.max_steps", cfg.Tick.MaxSteps)

	v.SetDefault("freefly.move_speed", cfg.FreeFly.MoveSpeed)
	v.SetDefault("freefly.look_sensitivity", cfg.FreeFly.LookSensitivity)
	v.SetDefault("freefly.pitch_epsilon", cfg.FreeFly.PitchEpsilon)
	v.SetDefault("freefly.max_look_events", cfg.FreeFly.MaxLookEvents)
	v.SetDefault("freefly.smoothing_rate", cfg.FreeFly.SmoothingRate)
	v.SetDefault("freefly.start", cfg.FreeFly.Start)
	v.SetDefault("freefly.yaw", cfg.FreeFly.Yaw)
	v.SetDefault("freefly.pitch", cfg.FreeFly.Pitch)

	v.SetDefault("orbit.focus", cfg.Orbit.Focus)
	v.SetDefault("orbit.offset", cfg.Orbit.Offset)
	v.SetDefault("orbit.yaw_per_viewport", cfg.Orbit.YawPerViewport)
	v.SetDefault("orbit.pitch_per_viewport", cfg.Orbit.PitchPerViewport)
	v.SetDefault("orbit.zoom_rate", cfg.Orbit.ZoomRate)
	v.SetDefault("orbit.pan_factor", cfg.Orbit.PanFactor)
	v.SetDefault("orbit.min_radius", cfg.Orbit.MinRadius)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.console", cfg.Log.Console)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.no_color", cfg.Log.NoColor)
}

// New returns a viper instance with defaults, env overrides and, when path
// is not empty, the YAML file at path.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		return v, nil
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return v, nil
}

// Decode unmarshals and validates the current state of v
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load reads configuration from path (optional) and the environment
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// Watch re-decodes the config file whenever it changes on disk and hands
// valid results to onChange. Invalid edits are reported to onError and the
// previous config stays in effect. Callbacks run on the watcher goroutine.
func Watch(v *viper.Viper, onChange func(*Config), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := Decode(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("ignoring config change in %s: %w", e.Name, err))
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}

// Validate checks every section
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.Window.FOV <= 0 || c.Window.FOV >= 180 {
		errs = append(errs, fmt.Errorf("window fov %v must be in (0, 180)", c.Window.FOV))
	}
	if c.Tick.Rate <= 0 {
		errs = append(errs, fmt.Errorf("tick rate %d must be positive", c.Tick.Rate))
	}
	if c.Tick.MaxSteps <= 0 {
		errs = append(errs, fmt.Errorf("tick max_steps %d must be positive", c.Tick.MaxSteps))
	}
	if _, err := c.FreeFlyStart(); err != nil {
		errs = append(errs, err)
	}
	if _, _, err := c.OrbitPlacement(); err != nil {
		errs = append(errs, err)
	}
	if err := c.CameraFreeFly().Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.CameraOrbit().Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// TickInterval returns the duration of one scheduler tick
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.Tick.Rate)
}

// CameraFreeFly converts the freefly section into rig tuning
func (c *Config) CameraFreeFly() camera.FreeFlyConfig {
	return camera.FreeFlyConfig{
		MoveSpeed:       c.FreeFly.MoveSpeed,
		LookSensitivity: c.FreeFly.LookSensitivity,
		PitchEpsilon:    c.FreeFly.PitchEpsilon,
		MaxLookEvents:   c.FreeFly.MaxLookEvents,
		SmoothingRate:   c.FreeFly.SmoothingRate,
	}
}

// CameraOrbit converts the orbit section into rig tuning
func (c *Config) CameraOrbit() camera.OrbitConfig {
	return camera.OrbitConfig{
		YawPerViewport:   c.Orbit.YawPerViewport,
		PitchPerViewport: c.Orbit.PitchPerViewport,
		ZoomRate:         c.Orbit.ZoomRate,
		PanFactor:        c.Orbit.PanFactor,
		MinRadius:        c.Orbit.MinRadius,
	}
}

// FreeFlyStart returns the spawn position
func (c *Config) FreeFlyStart() (mgl32.Vec3, error) {
	return vec3("freefly.start", c.FreeFly.Start)
}

// FreeFlyLook returns the spawn look angle
func (c *Config) FreeFlyLook() camera.LookAngle {
	return camera.LookAngle{Yaw: c.FreeFly.Yaw, Pitch: c.FreeFly.Pitch}
}

// OrbitPlacement returns the orbit focus and camera offset
func (c *Config) OrbitPlacement() (focus, offset mgl32.Vec3, err error) {
	if focus, err = vec3("orbit.focus", c.Orbit.Focus); err != nil {
		return
	}
	if offset, err = vec3("orbit.offset", c.Orbit.Offset); err != nil {
		return
	}
	if offset.Len() == 0 {
		err = fmt.Errorf("orbit.offset: %w", camera.ErrDegenerateOrbit)
	}
	return
}

func components(v mgl32.Vec3) []float32 {
	return []float32{v[0], v[1], v[2]}
}

func vec3(key string, v []float32) (mgl32.Vec3, error) {
	if len(v) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%s must have 3 components, got %d", key, len(v))
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}
