// Package schedule picks which samples of an axis become animation frames.
//
// A dense axis is thinned to every stride-th sample, then the samples nearest
// each requested pause value (and the sample just before each of them) are
// put back so the pause is always rendered and visibly approached.
package schedule

import (
	"math"
	"slices"
	"sort"
)

// Frames is an ascending, duplicate-free list of axis indices to render.
type Frames struct {
	Indices []int
	// Pauses holds the resolved pause indices, ascending and unique.
	Pauses []int
}

// Base returns 0, stride, 2*stride, ... up to n-1.
func Base(n, stride int) []int {
	if n <= 0 {
		return nil
	}
	if stride < 1 {
		stride = 1
	}
	out := make([]int, 0, (n-1)/stride+1)
	for i := 0; i < n; i += stride {
		out = append(out, i)
	}
	return out
}

// Nearest returns the index of the sample closest to v. Exact ties go to the
// lower index and values outside the axis clamp to its ends.
func Nearest(axis []float64, v float64) int {
	best := 0
	bestDist := math.Inf(1)
	for i, s := range axis {
		d := math.Abs(s - v)
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Build returns the frame set for axis thinned by stride with every pause
// value guaranteed to be present together with its predecessor.
func Build(axis []float64, stride int, pauses []float64) Frames {
	f := Frames{Indices: Base(len(axis), stride)}
	if len(axis) == 0 {
		return f
	}

	for _, v := range pauses {
		p := Nearest(axis, v)
		f.Indices = insert(f.Indices, p)
		if p-1 >= 0 {
			f.Indices = insert(f.Indices, p-1)
		}
		f.Pauses = insert(f.Pauses, p)
	}
	return f
}

func insert(s []int, v int) []int {
	i := sort.SearchInts(s, v)
	if i < len(s) && s[i] == v {
		return s
	}
	return slices.Insert(s, i, v)
}

// Len returns the number of frames.
func (f Frames) Len() int {
	return len(f.Indices)
}

// IsPause reports whether axis index i is a pause point.
func (f Frames) IsPause(i int) bool {
	j := sort.SearchInts(f.Pauses, i)
	return j < len(f.Pauses) && f.Pauses[j] == i
}

// Position returns where axis index i sits in Indices, or -1.
func (f Frames) Position(i int) int {
	j := sort.SearchInts(f.Indices, i)
	if j < len(f.Indices) && f.Indices[j] == i {
		return j
	}
	return -1
}
