package plot

import (
	"math"
	"strconv"
	"strings"
)

// Interval is a closed sampling range with A <= B.
type Interval struct {
	A, B float64
}

// DefaultInterval is used for any bound that cannot be parsed.
var DefaultInterval = Interval{A: -1, B: 3}

// Normalize returns the interval with its bounds in ascending order.
func Normalize(a, b float64) Interval {
	if a > b {
		a, b = b, a
	}
	return Interval{A: a, B: b}
}

// Width is B - A.
func (iv Interval) Width() float64 { return iv.B - iv.A }

// Degenerate reports whether the interval has collapsed to a point.
func (iv Interval) Degenerate() bool { return iv.A == iv.B }

// ParseNumber parses a decimal typed with either ',' or '.' as separator.
// Only the first comma is converted. Like a browser's parseFloat it reads
// the longest leading number and ignores the rest, so "2abc" is 2 and
// "1.5.3" is 1.5. Text that does not start with a number, and non-finite
// values, are rejected.
func ParseNumber(s string) (float64, bool) {
	s = numericPrefix(strings.Replace(strings.TrimSpace(s), ",", ".", 1))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// numericPrefix returns the longest leading part of s of the form
// [sign] digits [. digits] [e [sign] digits], with at least one digit in
// the mantissa. The exponent is only taken when digits follow it.
func numericPrefix(s string) string {
	digit := func(i int) bool { return i < len(s) && s[i] >= '0' && s[i] <= '9' }

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	n := 0
	for ; digit(i); i++ {
		n++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; digit(i); i++ {
			n++
		}
	}
	if n == 0 {
		return ""
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for ; digit(k); k++ {
		}
		if k > j {
			end = k
		}
	}
	return s[:end]
}

// ParseInterval parses the two bound fields, falling back to def for each
// bound that does not parse, and normalises the result.
func ParseInterval(aText, bText string, def Interval) Interval {
	a, ok := ParseNumber(aText)
	if !ok {
		a = def.A
	}
	b, ok := ParseNumber(bText)
	if !ok {
		b = def.B
	}
	return Normalize(a, b)
}
