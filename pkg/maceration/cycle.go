package maceration

import "time"

// MixCycle is the mixer duty cycle: On of mixing at the start of every On+Off window.
type MixCycle struct {
	On  time.Duration
	Off time.Duration
}

func (c MixCycle) Period() time.Duration {
	return c.On + c.Off
}

// Mixing reports whether the mixer runs elapsed after the start of the maceration.
func (c MixCycle) Mixing(elapsed time.Duration) bool {
	return c.position(elapsed) < c.On
}

// UntilToggle is the time left before Mixing changes value. It is always positive.
func (c MixCycle) UntilToggle(elapsed time.Duration) time.Duration {
	pos := c.position(elapsed)
	if pos < c.On {
		return c.On - pos
	}
	return c.Period() - pos
}

func (c MixCycle) position(elapsed time.Duration) time.Duration {
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed % c.Period()
}
