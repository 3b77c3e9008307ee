package core

import "time"

// FixedStep paces simulation steps at a steady rate independent of the frame
// rate, catching up on at most MaxCatchUp steps per frame.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time

	MaxCatchUp int
}

// NewFixedStep constructs a FixedStep controller targeting the given steps
// per second.
func NewFixedStep(sps int) *FixedStep {
	fs := &FixedStep{now: time.Now, MaxCatchUp: 4}
	fs.SetRate(sps)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the step rate. Non-positive rates fall back to 50 steps per
// second.
func (f *FixedStep) SetRate(sps int) {
	if sps <= 0 {
		sps = 50
	}
	f.step = time.Second / time.Duration(sps)
}

// Period returns the duration of one step.
func (f *FixedStep) Period() time.Duration { return f.step }

// Due reports how many steps should run now.
func (f *FixedStep) Due() int {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now

	n := 0
	for f.accumulator >= f.step {
		f.accumulator -= f.step
		n++
		if f.MaxCatchUp > 0 && n >= f.MaxCatchUp {
			f.accumulator = 0
			break
		}
	}
	return n
}
