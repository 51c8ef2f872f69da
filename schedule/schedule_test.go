package schedule

import (
	"slices"
	"testing"
)

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

func TestBase(t *testing.T) {
	cases := []struct {
		name   string
		n      int
		stride int
		want   []int
	}{
		{"stride_two_odd", 5, 2, []int{0, 2, 4}},
		{"stride_two_even", 6, 2, []int{0, 2, 4}},
		{"stride_one", 3, 1, []int{0, 1, 2}},
		{"stride_past_end", 4, 10, []int{0}},
		{"stride_zero_clamps", 3, 0, []int{0, 1, 2}},
		{"empty", 0, 3, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Base(c.n, c.stride)
			if !slices.Equal(got, c.want) {
				t.Fatalf("Base(%d, %d) = %v, want %v", c.n, c.stride, got, c.want)
			}
		})
	}
}

func TestNearest(t *testing.T) {
	axis := []float64{-2, -1, 0, 1, 2}
	cases := []struct {
		name string
		v    float64
		want int
	}{
		{"exact_first", -2, 0},
		{"exact_middle", 0, 2},
		{"exact_last", 2, 4},
		{"between_closer_low", 0.4, 2},
		{"between_closer_high", 0.6, 3},
		{"tie_goes_low", 0.5, 2},
		{"tie_goes_low_negative", -1.5, 0},
		{"below_clamps", -100, 0},
		{"above_clamps", 100, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Nearest(axis, c.v); got != c.want {
				t.Fatalf("Nearest(%v) = %d, want %d", c.v, got, c.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	axis := []float64{-2, -1, 0, 1, 2}
	cases := []struct {
		name       string
		stride     int
		pauses     []float64
		wantFrames []int
		wantPauses []int
	}{
		{"no_pauses", 2, nil, []int{0, 2, 4}, nil},
		{"present_pause_inserts_predecessor", 2, []float64{0.4}, []int{0, 1, 2, 4}, []int{2}},
		{"missing_pause_and_predecessor", 2, []float64{1}, []int{0, 2, 3, 4}, []int{3}},
		{"first_sample_has_no_predecessor", 2, []float64{-3}, []int{0, 2, 4}, []int{0}},
		{"overlapping_pauses", 2, []float64{0.9, 1.1, 0.2, 0}, []int{0, 1, 2, 3, 4}, []int{2, 3}},
		{"same_pause_twice", 4, []float64{1, 1}, []int{0, 2, 3, 4}, []int{3}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Build(axis, c.stride, c.pauses)
			if !slices.Equal(got.Indices, c.wantFrames) {
				t.Fatalf("frames = %v, want %v", got.Indices, c.wantFrames)
			}
			if !slices.Equal(got.Pauses, c.wantPauses) {
				t.Fatalf("pauses = %v, want %v", got.Pauses, c.wantPauses)
			}
			for _, p := range c.wantPauses {
				if !got.IsPause(p) {
					t.Fatalf("IsPause(%d) = false", p)
				}
			}
		})
	}
}

func TestBuildInvariants(t *testing.T) {
	axis := linspace(-5, 5, 2001)
	pauses := []float64{0.5, 0.5001, -4.9999, 5, 7, -7, 0.0025, 0.003}

	for _, stride := range []int{1, 3, 8, 17, 5000} {
		f := Build(axis, stride, pauses)

		for i := 1; i < len(f.Indices); i++ {
			if f.Indices[i] <= f.Indices[i-1] {
				t.Fatalf("stride %d: not strictly ascending at %d: %v", stride, i, f.Indices[i-1:i+1])
			}
		}
		for _, v := range pauses {
			p := Nearest(axis, v)
			if f.Position(p) < 0 {
				t.Fatalf("stride %d: pause index %d missing", stride, p)
			}
			if p > 0 && f.Position(p-1) < 0 {
				t.Fatalf("stride %d: predecessor %d missing", stride, p-1)
			}
		}
		for _, b := range Base(len(axis), stride) {
			if f.Position(b) < 0 {
				t.Fatalf("stride %d: base index %d dropped", stride, b)
			}
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	axis := linspace(-1, 1, 101)
	pauses := []float64{0.33, -0.5, 0.9}

	a := Build(axis, 7, pauses)
	b := Build(axis, 7, pauses)
	if !slices.Equal(a.Indices, b.Indices) || !slices.Equal(a.Pauses, b.Pauses) {
		t.Fatalf("Build not deterministic: %v vs %v", a, b)
	}
	if !slices.Equal(pauses, []float64{0.33, -0.5, 0.9}) {
		t.Fatalf("Build mutated its input: %v", pauses)
	}
}

func TestBuildEmptyAxis(t *testing.T) {
	f := Build(nil, 2, []float64{1})
	if f.Len() != 0 || len(f.Pauses) != 0 {
		t.Fatalf("expected empty frames, got %+v", f)
	}
}
