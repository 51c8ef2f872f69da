package signal

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrLength is returned when a Func produces a different number of values
// than it was given.
var ErrLength = errors.New("signal: output length mismatch")

// Func maps a sample sequence to an output sequence of the same length.
type Func interface {
	Eval(xs []float64) ([]float64, error)
}

// Pointwise adapts a scalar function to Func.
type Pointwise func(x float64) float64

func (p Pointwise) Eval(xs []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = p(x)
	}
	return out, nil
}

// Eval runs fn over xs and checks the output length.
func Eval(fn Func, xs []float64) ([]float64, error) {
	if fn == nil {
		return nil, errors.New("signal: nil function")
	}
	ys, err := fn.Eval(xs)
	if err != nil {
		return nil, err
	}
	if len(ys) != len(xs) {
		return nil, fmt.Errorf("%w: got %d values for %d samples", ErrLength, len(ys), len(xs))
	}
	return ys, nil
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Box is 1 on (-0.5, 0.5) and 0 elsewhere.
func Box(x float64) float64 {
	return indicator(x > -0.5 && x < 0.5)
}

// Step is the unit step, 0 at x = 0.
func Step(x float64) float64 {
	return indicator(x > 0)
}

func Exponential(x float64) float64 {
	return math.Exp(x)
}

// Triangle peaks at 1 for x = 0 and vanishes outside (-1, 1).
func Triangle(x float64) float64 {
	return ((x + 1) - 2*x*Step(x)) * Box(x/2)
}

func ExponentialDecay(x float64) float64 {
	return Exponential(-x)
}

// QuadraticBox is x² on (-1, 1).
func QuadraticBox(x float64) float64 {
	return x * x * Box(x/2)
}

func Gaussian(x float64) float64 {
	return math.Exp(-x * x / 2)
}

// Sinc is the normalized sinc, sin(πx)/(πx).
func Sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// Ramp is x for x > 0.
func Ramp(x float64) float64 {
	return x * Step(x)
}

var builtins = map[string]Pointwise{
	"box":               Box,
	"step":              Step,
	"exponential":       Exponential,
	"triangle":          Triangle,
	"exponential_decay": ExponentialDecay,
	"quadratic_box":     QuadraticBox,
	"gaussian":          Gaussian,
	"sinc":              Sinc,
	"ramp":              Ramp,
}

// Builtin looks up a builtin function by name.
func Builtin(name string) (Pointwise, bool) {
	fn, ok := builtins[name]
	return fn, ok
}

// BuiltinNames lists the builtin function names in sorted order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
