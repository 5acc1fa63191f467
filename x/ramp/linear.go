package ramp

import (
	"time"

	"lp50xx-go/x/mathx"
)

// Step sets the next 8-bit level. A non-nil error stops the ramp.
type Step func(level uint8) error

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(d time.Duration) bool

// Linear runs a synchronous (caller-driven) integer ramp from cur to to.
// steps==0 or d<=0 snaps to 'to'. It returns the first Step error; a
// cancelled ramp returns nil without reaching 'to'.
func Linear(cur, to uint8, d time.Duration, steps uint16, tick Tick, set Step) error {
	if steps == 0 || d <= 0 {
		return set(to)
	}
	delta := int32(to) - int32(cur)
	st := int32(steps)
	acc := int32(0)
	cur32 := int32(cur)
	stepDur := d / time.Duration(steps)
	if stepDur <= 0 {
		stepDur = time.Millisecond
	}

	for i := uint16(1); i < steps; i++ {
		if !tick(stepDur) {
			return nil
		}
		acc += delta
		inc := acc / st
		if inc != 0 {
			acc -= inc * st
			cur32 = mathx.Clamp(cur32+inc, 0, 255)
			if err := set(uint8(cur32)); err != nil {
				return err
			}
		}
	}
	if !tick(stepDur) {
		return nil
	}
	return set(to)
}

// Sleep is a Tick backed by time.Sleep that never cancels.
func Sleep(d time.Duration) bool {
	time.Sleep(d)
	return true
}
