// Package formula evaluates user-typed single-variable formulas such as
// "x^2 - 1" or "sin(x) * 2" for a given value of x.
//
// Multiplication must be written out: "2*x" and "3*sin(x)", not "2x" or
// "3sin(x)", which fail to compile. The % operator is a floating-point
// remainder with the sign of the dividend, so "x % 2" works for any x.
package formula

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Variable is the name of the independent variable.
const Variable = "x"

var (
	ErrEmptyFormula = errors.New("formula: empty formula")
	ErrNotNumeric   = errors.New("formula: result is not a number")
)

// Normalize trims f and replaces every decimal comma with a period.
func Normalize(f string) string {
	return strings.ReplaceAll(strings.TrimSpace(f), ",", ".")
}

// IsBlank reports whether f is empty or whitespace. Blank formulas are
// absent, never evaluated.
func IsBlank(f string) bool {
	return strings.TrimSpace(f) == ""
}

// Program is a compiled formula. It reuses one environment between calls and
// is not safe for concurrent use.
type Program struct {
	Source string
	prog   *vm.Program
	env    map[string]any
}

// Compile parses f with x bound as a float64 variable.
func Compile(f string) (*Program, error) {
	src := Normalize(f)
	if src == "" {
		return nil, ErrEmptyFormula
	}
	env := newEnv()
	prog, err := expr.Compile(src,
		expr.Env(env),
		modFunc,
		expr.Operator("%", "mod"),
	)
	if err != nil {
		return nil, fmt.Errorf("formula %q: %w", src, err)
	}
	return &Program{Source: src, prog: prog, env: env}, nil
}

// Eval evaluates the program at x.
func (p *Program) Eval(x float64) (float64, error) {
	p.env[Variable] = x
	out, err := expr.Run(p.prog, p.env)
	if err != nil {
		return 0, fmt.Errorf("formula %q at x=%g: %w", p.Source, x, err)
	}
	v, err := toFloat(out)
	if err != nil {
		return 0, fmt.Errorf("formula %q at x=%g: %w", p.Source, x, err)
	}
	return v, nil
}

// Evaluate parses and evaluates f at x in one step.
func Evaluate(f string, x float64) (float64, error) {
	p, err := Compile(f)
	if err != nil {
		return 0, err
	}
	return p.Eval(x)
}

// Lenient evaluates f at x and substitutes 0 on failure, logging a warning.
func Lenient(f string, x float64) float64 {
	v, err := Evaluate(f, x)
	if err != nil {
		log.Printf("Warning: %v; using 0", err)
		return 0
	}
	return v
}

// modFunc backs the % operator with math.Mod for any mix of int and float
// operands.
var modFunc = expr.Function("mod",
	func(params ...any) (any, error) {
		a, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		b, err := toFloat(params[1])
		if err != nil {
			return nil, err
		}
		return math.Mod(a, b), nil
	},
	new(func(float64, float64) float64),
	new(func(float64, int) float64),
	new(func(int, float64) float64),
	new(func(int, int) float64),
)

func newEnv() map[string]any {
	return map[string]any{
		Variable: 0.0,
		"pi":     math.Pi,
		"e":      math.E,
		"sin":    math.Sin,
		"cos":    math.Cos,
		"tan":    math.Tan,
		"asin":   math.Asin,
		"acos":   math.Acos,
		"atan":   math.Atan,
		"sinh":   math.Sinh,
		"cosh":   math.Cosh,
		"tanh":   math.Tanh,
		"sqrt":   math.Sqrt,
		"cbrt":   math.Cbrt,
		"exp":    math.Exp,
		"log":    math.Log,
		"ln":     math.Log,
		"log10":  math.Log10,
		"log2":   math.Log2,
		"pow":    math.Pow,
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%w: got %T", ErrNotNumeric, v)
}
