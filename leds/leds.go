// Package leds renders inference output the way the board's demo loop
// does: as a bar on eight LEDs, driven by a phase that sweeps 0..2π.
package leds

import (
	"iter"
	"strings"

	"github.com/ezrec/sinefw/inference"
)

const (
	LED_COUNT    = 8                // LEDs on the bar.
	DEFAULT_STEP = float32(0.1)     // Phase advance per demo iteration.
	CYCLE        = 2 * inference.PI // Phase at which the sweep wraps.
)

// Bar lights the low lit LEDs, lit being pattern scaled to 0..8 and rounded.
func Bar(pattern uint8) (bits uint8, lit int) {
	lit = int((float32(pattern)/255.0)*LED_COUNT + 0.5)
	if lit < 0 {
		lit = 0
	}
	if lit > LED_COUNT {
		lit = LED_COUNT
	}

	for n := range lit {
		bits |= 1 << n
	}

	return
}

// Render draws bits LSB first, '#' for lit and '.' for dark.
func Render(bits uint8) string {
	var sb strings.Builder
	for n := range LED_COUNT {
		if bits&(1<<n) != 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// Sweep is a phase accumulator.
type Sweep struct {
	Step  float32
	Phase float32
}

// NewSweep starts a sweep at phase 0. A non-positive step uses DEFAULT_STEP.
func NewSweep(step float32) *Sweep {
	if !(step > 0) {
		step = DEFAULT_STEP
	}
	return &Sweep{Step: step}
}

// Next returns the current phase and advances the sweep. wrapped is set
// when the advance completed a cycle and the phase restarted at 0.
func (sw *Sweep) Next() (x float32, wrapped bool) {
	x = sw.Phase
	sw.Phase += sw.Step
	if sw.Phase >= CYCLE {
		sw.Phase = 0
		wrapped = true
	}
	return
}

// Phases is one cycle of a sweep with step, starting at 0.
func Phases(step float32) iter.Seq[float32] {
	return func(yield func(float32) bool) {
		sw := NewSweep(step)
		for {
			x, wrapped := sw.Next()
			if !yield(x) || wrapped {
				return
			}
		}
	}
}
