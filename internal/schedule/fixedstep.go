// Package schedule runs simulation ticks at a fixed rate independent of the
// render frame rate.
package schedule

import (
	"time"

	"github.com/rs/zerolog"
)

// FixedStep accumulates wall-clock time and releases it in whole ticks.
type FixedStep struct {
	Step     time.Duration
	MaxSteps int

	acc    time.Duration
	logger zerolog.Logger
}

// NewFixedStep creates a scheduler running ticks of length step, at most
// maxSteps per Advance call.
func NewFixedStep(step time.Duration, maxSteps int, logger zerolog.Logger) *FixedStep {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &FixedStep{
		Step:     step,
		MaxSteps: maxSteps,
		logger:   logger,
	}
}

// Advance adds elapsed to the accumulator and calls tick once per whole step.
// Time beyond MaxSteps ticks is dropped so a stalled frame cannot trigger a
// spiral of catch-up ticks. Returns the number of ticks run.
func (f *FixedStep) Advance(elapsed time.Duration, tick func(dt float32)) int {
	if f.Step <= 0 || elapsed < 0 {
		return 0
	}
	f.acc += elapsed

	dt := float32(f.Step.Seconds())
	n := 0
	for f.acc >= f.Step && n < f.MaxSteps {
		tick(dt)
		f.acc -= f.Step
		n++
	}

	if f.acc >= f.Step {
		dropped := f.acc / f.Step
		f.logger.Warn().
			Int64("dropped_ticks", int64(dropped)).
			Dur("backlog", f.acc).
			Msg("Simulation falling behind, dropping backlog")
		f.acc %= f.Step
	}
	return n
}

// Alpha is the fraction of a step left in the accumulator, in [0, 1).
func (f *FixedStep) Alpha() float32 {
	if f.Step <= 0 {
		return 0
	}
	return float32(f.acc) / float32(f.Step)
}

// Reset discards accumulated time.
func (f *FixedStep) Reset() {
	f.acc = 0
}
