package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TimeStep is the fixed simulation step the rigs are tuned for (60 Hz)
const TimeStep float32 = 1.0 / 60.0

// Free-fly defaults
const (
	// Movement speed in world units per tick
	DefaultMoveSpeed = 0.1
	// Look sensitivity in radians per pixel of mouse motion
	DefaultLookSensitivity = 0.02
	// Motion events consumed per tick, the rest are dropped
	DefaultMaxLookEvents = 2
	// Instantaneous snap from desired to current look
	DefaultSmoothingRate = 0.0

	// Start looking down -X
	DefaultYaw   = math.Pi
	DefaultPitch = 0.0
)

// Constraints
const (
	// Keeps pitch strictly inside the poles where tan(pitch) diverges
	DefaultPitchEpsilon = 0.01

	MaxPitch = math.Pi/2 - DefaultPitchEpsilon
	MinPitch = -MaxPitch
)

// Orbit defaults
const (
	// Full viewport width of motion turns the arm a full circle
	DefaultYawPerViewport = 2 * math.Pi
	// Full viewport height of motion tilts the arm half a circle
	DefaultPitchPerViewport = math.Pi

	DefaultZoomRate  = 0.2
	DefaultPanFactor = math.Pi / 4
	DefaultMinRadius = 0.05
)

var (
	// WorldUp is the Y-up reference axis shared by both rigs
	WorldUp = mgl32.Vec3{0, 1, 0}

	// DefaultFreeFlyStart is where the free-fly camera spawns
	DefaultFreeFlyStart = mgl32.Vec3{0, 1, 0}

	// DefaultOrbitOffset places the orbit camera relative to its focus
	DefaultOrbitOffset = mgl32.Vec3{-2, 2.5, 5}
)
