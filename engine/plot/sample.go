// Package plot samples formulas over an interval and builds the 2D curve
// geometry drawn in the plot view.
package plot

import (
	"log"
	"math"

	"github.com/1siamBot/solids/engine/formula"
)

// Sample is one evaluation of a formula. OK is false when the evaluator
// failed at X; Y is then meaningless and Value reports the sentinel 0.
type Sample struct {
	X, Y float64
	OK   bool
}

// Value returns Y, or 0 when evaluation failed.
func (s Sample) Value() float64 {
	if !s.OK {
		return 0
	}
	return s.Y
}

// Finite reports whether the sample evaluated to a finite number.
func (s Sample) Finite() bool {
	return s.OK && !math.IsNaN(s.Y) && !math.IsInf(s.Y, 0)
}

// SampleFormula evaluates f at segments+1 evenly spaced points
// x_i = A + i*(B-A)/segments, i = 0..segments. A blank formula or a
// non-positive segment count yields no samples. A formula that fails to
// compile yields samples that are all !OK.
func SampleFormula(f string, iv Interval, segments int) []Sample {
	if formula.IsBlank(f) || segments < 1 {
		return nil
	}
	prog, err := formula.Compile(f)
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	step := iv.Width() / float64(segments)
	out := make([]Sample, 0, segments+1)
	for i := 0; i <= segments; i++ {
		s := Sample{X: iv.A + float64(i)*step}
		if prog != nil {
			y, err := prog.Eval(s.X)
			if err != nil {
				log.Printf("Warning: %v", err)
			} else {
				s.Y, s.OK = y, true
			}
		}
		out = append(out, s)
	}
	return out
}

// Finite returns the samples whose Y is a finite number.
func Finite(samples []Sample) []Sample {
	out := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if s.Finite() {
			out = append(out, s)
		}
	}
	return out
}
