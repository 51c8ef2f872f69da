package signal

import "github.com/milk9111/convolve/schedule"

// Axis is an evenly spaced, immutable sample axis over [Min, Max].
type Axis struct {
	samples []float64
}

// NewAxis samples [lo, hi] at n evenly spaced points, endpoints included.
func NewAxis(lo, hi float64, n int) Axis {
	if n < 1 {
		return Axis{}
	}
	s := make([]float64, n)
	if n == 1 {
		s[0] = lo
		return Axis{samples: s}
	}
	step := (hi - lo) / float64(n-1)
	for i := range s {
		s[i] = lo + float64(i)*step
	}
	s[n-1] = hi
	return Axis{samples: s}
}

// Len returns the number of samples.
func (a Axis) Len() int {
	return len(a.samples)
}

// At returns sample i.
func (a Axis) At(i int) float64 {
	return a.samples[i]
}

// Min returns the first sample.
func (a Axis) Min() float64 {
	if len(a.samples) == 0 {
		return 0
	}
	return a.samples[0]
}

// Max returns the last sample.
func (a Axis) Max() float64 {
	if len(a.samples) == 0 {
		return 0
	}
	return a.samples[len(a.samples)-1]
}

// Step returns the sample spacing.
func (a Axis) Step() float64 {
	if len(a.samples) < 2 {
		return 0
	}
	return (a.Max() - a.Min()) / float64(len(a.samples)-1)
}

// Samples returns a copy of the samples.
func (a Axis) Samples() []float64 {
	return append([]float64(nil), a.samples...)
}

// Nearest returns the index of the sample closest to v, lower index on ties.
func (a Axis) Nearest(v float64) int {
	return schedule.Nearest(a.samples, v)
}

// Frames builds the frame schedule for this axis.
func (a Axis) Frames(stride int, pauses []float64) schedule.Frames {
	return schedule.Build(a.samples, stride, pauses)
}
