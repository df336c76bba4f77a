package main

import (
	"io"

	"github.com/ezrec/sinefw/inference"
	"github.com/ezrec/sinefw/leds"
	"github.com/ezrec/sinefw/model"
	"github.com/ezrec/sinefw/translate"
)

var printf = translate.Fprintf

// report prints the engine state and the resolution of each region.
func report(w io.Writer, eng *inference.Engine) {
	printf(w, "model: %v\n", eng.State())
	for _, spec := range model.DefaultLayout() {
		status := "unresolved"
		if eng.View(spec.Region).Resolved() {
			status = "resolved"
		}
		printf(w, "  %-4v offset=0x%03x size=%3d %v\n", spec.Region, spec.Offset, spec.Size, status)
	}
}

// evaluate prints the output for a single phase.
func evaluate(w io.Writer, eng *inference.Engine, x float32) {
	y := eng.Run(x)
	pattern := inference.ToPattern(y)
	bits, lit := leds.Bar(pattern)
	printf(w, "x=%.3f y=%.3f led=%3d bits=0x%02X (%d/%d) %v\n",
		x, y, pattern, bits, lit, leds.LED_COUNT, leds.Render(bits))
}

// demo sweeps the phase for count iterations, or forever if count is 0.
func demo(w io.Writer, eng *inference.Engine, step float32, count int) {
	sw := leds.NewSweep(step)
	for iter := 0; count == 0 || iter < count; iter++ {
		x, wrapped := sw.Next()
		y := eng.Run(x)
		pattern := inference.ToPattern(y)
		bits, lit := leds.Bar(pattern)

		if iter%10 == 0 {
			printf(w, "It %4d | x=%.3f | y=%.3f | led=%3d | bits=0x%02X (%d/%d) %v\n",
				iter, x, y, pattern, bits, lit, leds.LED_COUNT, leds.Render(bits))
		}

		if wrapped {
			printf(w, "\n--- Cycle complete (0..2PI) ---\n\n")
		}
	}
}
