// Package signal holds the sampled axis, the Func capability and the
// discrete convolution the animator sweeps through.
//
// The convolution is evaluated against a lag table: g is sampled once on
// {kΔ : k = -(N-1) .. N-1} so that g(t_i - t_j) = lag[i-j] for every pair of
// samples. Each animation frame then reads the reflected, shifted g straight
// out of the table instead of re-evaluating the user function.
package signal

import (
	"errors"
	"fmt"
)

// Convolution is f*g sampled on an axis together with the pieces needed to
// draw any single frame of the sweep.
type Convolution struct {
	Axis Axis
	F    []float64
	G    []float64
	Conv []float64

	lag []float64
}

// Convolve evaluates f and g on axis and computes
// conv[i] = Σ_k f[k]·g((i-k)Δ)·Δ.
func Convolve(axis Axis, f, g Func) (*Convolution, error) {
	n := axis.Len()
	if n < 2 {
		return nil, errors.New("signal: axis needs at least two samples")
	}

	xs := axis.Samples()
	fv, err := Eval(f, xs)
	if err != nil {
		return nil, fmt.Errorf("signal: eval f: %w", err)
	}
	gv, err := Eval(g, xs)
	if err != nil {
		return nil, fmt.Errorf("signal: eval g: %w", err)
	}

	dt := axis.Step()
	lags := make([]float64, 2*n-1)
	for k := range lags {
		lags[k] = float64(k-(n-1)) * dt
	}
	lag, err := Eval(g, lags)
	if err != nil {
		return nil, fmt.Errorf("signal: eval g lags: %w", err)
	}

	c := &Convolution{Axis: axis, F: fv, G: gv, lag: lag}
	c.Conv = make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for k := 0; k < n; k++ {
			sum += fv[k] * lag[i-k+n-1]
		}
		c.Conv[i] = sum * dt
	}
	return c, nil
}

// Len returns the number of samples.
func (c *Convolution) Len() int {
	return len(c.Conv)
}

// Shifted returns g(t_i - t) over the axis: g reflected and moved to t_i.
func (c *Convolution) Shifted(i int) []float64 {
	n := c.Len()
	out := make([]float64, n)
	for j := range out {
		out[j] = c.lag[i-j+n-1]
	}
	return out
}

// Product returns f(t)·g(t_i - t), the integrand at frame i.
func (c *Convolution) Product(i int) []float64 {
	n := c.Len()
	out := make([]float64, n)
	for j := range out {
		out[j] = c.F[j] * c.lag[i-j+n-1]
	}
	return out
}

// Upto returns the running convolution curve up to and including sample i.
func (c *Convolution) Upto(i int) (xs, ys []float64) {
	return c.Axis.samples[:i+1], c.Conv[:i+1]
}

// ValueAt returns (f*g)(t_i).
func (c *Convolution) ValueAt(i int) float64 {
	return c.Conv[i]
}
