package plot

import (
	"math"
	"strconv"
)

// Ticks returns round tick positions covering [lo, hi], roughly target of
// them, using steps of 1, 2 or 5 times a power of ten.
func Ticks(lo, hi float64, target int) []float64 {
	if !(hi > lo) || target < 1 {
		return nil
	}
	step := niceStep((hi - lo) / float64(target))
	start := math.Ceil(lo/step) * step

	var out []float64
	for v := start; v <= hi+step*1e-9; v += step {
		// snap accumulated error so labels read 0.3 and not 0.30000000000000004
		out = append(out, math.Round(v/step)*step)
	}
	return out
}

func niceStep(raw float64) float64 {
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / exp; {
	case f <= 1:
		return exp
	case f <= 2:
		return 2 * exp
	case f <= 5:
		return 5 * exp
	default:
		return 10 * exp
	}
}

// FormatTick prints v in the shortest form that round-trips.
func FormatTick(v float64) string {
	if math.Abs(v) < 1e-12 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
