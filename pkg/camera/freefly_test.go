package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shooterStart() FreeFlyState {
	return NewFreeFlyState(DefaultFreeFlyStart, LookAngle{Yaw: DefaultYaw, Pitch: DefaultPitch})
}

func keyFrame(keys ...Key) InputFrame {
	return InputFrame{Enabled: true, Keys: NewKeySet(keys...), Viewport: testViewport}
}

func TestUpdateFreeFlyForwardScenario(t *testing.T) {
	s := UpdateFreeFly(DefaultFreeFlyConfig(), shooterStart(), keyFrame(KeyForward), TimeStep)
	assertVec3InDelta(t, mgl32.Vec3{-0.1, 1, 0}, s.Position)
}

func TestUpdateFreeFlyDirections(t *testing.T) {
	tests := []struct {
		key  Key
		want mgl32.Vec3
	}{
		{KeyForward, mgl32.Vec3{-0.1, 1, 0}},
		{KeyBack, mgl32.Vec3{0.1, 1, 0}},
		{KeyRight, mgl32.Vec3{0, 1, -0.1}},
		{KeyLeft, mgl32.Vec3{0, 1, 0.1}},
		{KeyUp, mgl32.Vec3{0, 1.1, 0}},
		{KeyDown, mgl32.Vec3{0, 0.9, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			s := UpdateFreeFly(DefaultFreeFlyConfig(), shooterStart(), keyFrame(tt.key), TimeStep)
			assertVec3InDelta(t, tt.want, s.Position)
		})
	}
}

func TestUpdateFreeFlyRightMatchesCameraRight(t *testing.T) {
	s := shooterStart()
	s.Desired = LookAngle{Yaw: 0.8, Pitch: 0.3}
	s.Current = s.Desired

	next := UpdateFreeFly(DefaultFreeFlyConfig(), s, keyFrame(KeyRight), TimeStep)
	moved := next.Position.Sub(s.Position).Normalize()

	right := LocalRight(s.Pose().Orientation)
	assertVec3InDelta(t, right, moved)
}

func TestUpdateFreeFlyPitchOnlyAffectsForwardAndBack(t *testing.T) {
	s := shooterStart()
	s.Desired = LookAngle{Yaw: DefaultYaw, Pitch: 1.2}
	s.Current = s.Desired
	cfg := DefaultFreeFlyConfig()

	for _, key := range []Key{KeyLeft, KeyRight} {
		next := UpdateFreeFly(cfg, s, keyFrame(key), TimeStep)
		assert.Equal(t, s.Position.Y(), next.Position.Y(), "%s stays level", key)
	}
	fwd := UpdateFreeFly(cfg, s, keyFrame(KeyForward), TimeStep)
	assert.Greater(t, fwd.Position.Y(), s.Position.Y())
	assert.InDelta(t, cfg.MoveSpeed, fwd.Position.Sub(s.Position).Len(), tolerance)
}

func TestUpdateFreeFlyFirstKeyWins(t *testing.T) {
	cfg := DefaultFreeFlyConfig()
	tests := []struct {
		name string
		held []Key
		wins Key
	}{
		{"forward beats right", []Key{KeyForward, KeyRight}, KeyForward},
		{"forward beats back", []Key{KeyBack, KeyForward}, KeyForward},
		{"back beats strafe", []Key{KeyLeft, KeyBack, KeyRight}, KeyBack},
		{"right beats left", []Key{KeyLeft, KeyRight}, KeyRight},
		{"left beats vertical", []Key{KeyUp, KeyDown, KeyLeft}, KeyLeft},
		{"up beats down", []Key{KeyDown, KeyUp}, KeyUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combined := UpdateFreeFly(cfg, shooterStart(), keyFrame(tt.held...), TimeStep)
			single := UpdateFreeFly(cfg, shooterStart(), keyFrame(tt.wins), TimeStep)
			assert.Equal(t, single.Position, combined.Position)
		})
	}
}

func TestUpdateFreeFlyLookUsesFirstTwoEvents(t *testing.T) {
	cfg := DefaultFreeFlyConfig()
	in := motionFrame(mgl32.Vec2{10, 0}, mgl32.Vec2{5, 0}, mgl32.Vec2{1000, 1000}, mgl32.Vec2{-7, 3})

	s := UpdateFreeFly(cfg, shooterStart(), in, TimeStep)
	assert.InDelta(t, DefaultYaw+15*cfg.LookSensitivity, s.Desired.Yaw, tolerance)
	assert.InDelta(t, 0, s.Desired.Pitch, tolerance)
	assert.Equal(t, s.Desired, s.Current, "no smoothing by default")
}

func TestUpdateFreeFlyMouseUpLooksUp(t *testing.T) {
	s := UpdateFreeFly(DefaultFreeFlyConfig(), shooterStart(), motionFrame(mgl32.Vec2{0, -10}), TimeStep)
	assert.Greater(t, s.Current.Pitch, float32(0))
	assert.Greater(t, s.Pose().Forward().Y(), float32(0))
}

func TestUpdateFreeFlyPitchStaysClamped(t *testing.T) {
	cfg := DefaultFreeFlyConfig()
	limit := float32(math.Pi/2) - cfg.PitchEpsilon
	rng := rand.New(rand.NewSource(7))

	for _, smoothing := range []float32{0, 4} {
		cfg.SmoothingRate = smoothing
		s := shooterStart()
		for i := 0; i < 2000; i++ {
			var events []mgl32.Vec2
			for n := rng.Intn(4); n > 0; n-- {
				events = append(events, mgl32.Vec2{rng.Float32()*400 - 200, rng.Float32()*400 - 200})
			}
			in := motionFrame(events...)
			in.Keys = NewKeySet(Key(rng.Intn(int(numKeys))))
			s = UpdateFreeFly(cfg, s, in, TimeStep)

			require.LessOrEqual(t, s.Current.Pitch, limit)
			require.GreaterOrEqual(t, s.Current.Pitch, -limit)
			require.LessOrEqual(t, s.Desired.Pitch, limit)
			require.GreaterOrEqual(t, s.Desired.Pitch, -limit)

			pose := s.Pose()
			for _, c := range pose.Position {
				require.False(t, math.IsNaN(float64(c)))
			}
			require.InDelta(t, 1, pose.Orientation.Len(), tolerance)
		}
	}
}

func TestUpdateFreeFlyDisabledGate(t *testing.T) {
	s := shooterStart()
	in := motionFrame(mgl32.Vec2{50, 50})
	in.Keys = NewKeySet(KeyForward)
	in.Enabled = false
	assert.Equal(t, s, UpdateFreeFly(DefaultFreeFlyConfig(), s, in, TimeStep))
}

func TestUpdateFreeFlySmoothing(t *testing.T) {
	cfg := DefaultFreeFlyConfig()
	cfg.SmoothingRate = 6

	s := UpdateFreeFly(cfg, shooterStart(), motionFrame(mgl32.Vec2{50, 0}), TimeStep)
	target := s.Desired.Yaw
	assert.Greater(t, s.Current.Yaw, float32(DefaultYaw))
	assert.Less(t, s.Current.Yaw, target)

	// Converges once input stops
	for i := 0; i < 600; i++ {
		s = UpdateFreeFly(cfg, s, motionFrame(), TimeStep)
	}
	assert.InDelta(t, target, s.Current.Yaw, tolerance)

	// A large step clamps the blend factor instead of overshooting
	s = UpdateFreeFly(cfg, shooterStart(), motionFrame(mgl32.Vec2{50, 0}), 10)
	assert.Equal(t, s.Desired, s.Current)
}

func TestFreeFlyPoseLooksAlongCurrent(t *testing.T) {
	s := shooterStart()
	pose := s.Pose()
	assert.Equal(t, DefaultFreeFlyStart, pose.Position)
	assertVec3InDelta(t, mgl32.Vec3{-1, 0, 0}, pose.Forward())
	assertVec3InDelta(t, mgl32.Vec3{0, 1, 0}, pose.Up())
}

func TestFreeFlyLookAt(t *testing.T) {
	s := shooterStart().LookAt(mgl32.Vec3{0, 1, 5}, DefaultPitchEpsilon)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 1}, s.Pose().Forward())

	// Straight up is clamped short of the pole
	s = s.LookAt(mgl32.Vec3{0, 10, 0}, DefaultPitchEpsilon)
	assert.InDelta(t, MaxPitch, s.Current.Pitch, tolerance)
}

func TestFreeFlyConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultFreeFlyConfig().Validate())

	bad := []func(*FreeFlyConfig){
		func(c *FreeFlyConfig) { c.PitchEpsilon = 0 },
		func(c *FreeFlyConfig) { c.PitchEpsilon = 2 },
		func(c *FreeFlyConfig) { c.MoveSpeed = -1 },
		func(c *FreeFlyConfig) { c.MaxLookEvents = -1 },
		func(c *FreeFlyConfig) { c.SmoothingRate = -1 },
	}
	for i, mutate := range bad {
		cfg := DefaultFreeFlyConfig()
		mutate(&cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, "case %d", i)
	}
}
