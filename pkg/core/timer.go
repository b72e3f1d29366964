package core

import "time"

// FixedStep helps replay generated frames at a steady frames-per-second
// rate regardless of the caller's loop cadence.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given FPS.
func NewFixedStep(fps int) *FixedStep {
	if fps <= 0 {
		fps = 12
	}
	fs := &FixedStep{}
	fs.SetFPS(fps)
	fs.accumulator = fs.step
	return fs
}

// SetFPS changes the replay rate. It is safe to call from the main loop.
func (f *FixedStep) SetFPS(fps int) {
	if fps <= 0 {
		fps = 12
	}
	f.step = time.Second / time.Duration(fps)
}

// ShouldStep reports whether the replay should advance by one frame.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
