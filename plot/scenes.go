package plot

import (
	"fmt"
	"image"
	"math"

	"github.com/milk9111/convolve/signal"
)

const lineWidth = 2

// Renderer draws the three chart kinds for one convolution. Every method
// returns the same backing image, overwritten by the next call.
type Renderer struct {
	chart   *Chart
	conv    *signal.Convolution
	bounds  Bounds
	palette Palette

	// frameBase is set once the static part of the animation (axes, f and
	// the legend) has been drawn and saved.
	frameBase bool
}

// NewRenderer prepares a w×h renderer. bounds is the window used by the
// function and animation charts; the preview fits its own y range.
func NewRenderer(w, h int, bounds Bounds, p Palette, conv *signal.Convolution) *Renderer {
	return &Renderer{
		chart:   NewChart(w, h, bounds, p),
		conv:    conv,
		bounds:  bounds,
		palette: p,
	}
}

// Functions draws f(t) and g(t).
func (r *Renderer) Functions() *image.RGBA {
	c := r.use(r.bounds)
	xs := r.conv.Axis.Samples()

	c.Clear()
	c.Line(xs, r.conv.F, r.palette.F, lineWidth)
	c.Line(xs, r.conv.G, r.palette.G, lineWidth)
	c.AxisLabels("Time", "Amplitude")
	c.Title("f(t) and g(t)")
	c.Legend([]LegendEntry{
		{Label: "f(t)", Color: r.palette.F},
		{Label: "g(t)", Color: r.palette.G},
	})
	return c.Image()
}

// Preview draws the whole convolution f(t)*g(t), scaled to fit.
func (r *Renderer) Preview() *image.RGBA {
	c := r.use(PreviewBounds(r.bounds, r.conv.Conv))
	xs := r.conv.Axis.Samples()

	c.Clear()
	c.Line(xs, r.conv.Conv, r.palette.Conv, lineWidth)
	c.AxisLabels("Time", "Amplitude")
	c.Title("f(t)*g(t)")
	c.Legend([]LegendEntry{{Label: "f(t)*g(t)", Color: r.palette.Conv}})
	return c.Image()
}

// Frame draws animation frame i: f, g reflected and shifted to t_i, the
// shaded product and the convolution up to t_i.
func (r *Renderer) Frame(i int) *image.RGBA {
	if i < 0 || i >= r.conv.Len() {
		i = max(0, min(i, r.conv.Len()-1))
	}
	c := r.chart
	if !r.frameBase || c.Bounds() != r.bounds || !c.Restore() {
		r.drawFrameBase()
	}

	xs := r.conv.Axis.Samples()
	t := r.conv.Axis.At(i)
	c.Area(xs, r.conv.Product(i), r.palette.Area)
	c.Line(xs, r.conv.Shifted(i), r.palette.G, lineWidth)
	cx, cy := r.conv.Upto(i)
	c.Line(cx, cy, r.palette.Conv, lineWidth)
	c.Marker(t, r.palette.Fade(r.palette.Axis, 0.5))
	c.Title(fmt.Sprintf("t = %.3f    (f*g)(t) = %.4f", t, r.conv.ValueAt(i)))
	return c.Image()
}

func (r *Renderer) drawFrameBase() {
	c := r.use(r.bounds)
	xs := r.conv.Axis.Samples()

	c.Clear()
	c.Line(xs, r.conv.F, r.palette.F, lineWidth)
	c.AxisLabels("Time", "Amplitude")
	c.Legend([]LegendEntry{
		{Label: "f(t)", Color: r.palette.F},
		{Label: "g(t)", Color: r.palette.G},
		{Label: "f(t)*g(t)", Color: r.palette.Conv},
		{Label: "area of f(t)g(t)", Color: r.palette.Area, Filled: true},
	})
	c.Save()
	r.frameBase = true
}

// use switches the chart to b, dropping the saved frame base.
func (r *Renderer) use(b Bounds) *Chart {
	r.frameBase = false
	r.chart.SetBounds(b)
	return r.chart
}

// PreviewBounds keeps the x window of b and fits y to the finite values in
// ys with a little headroom, always including zero.
func PreviewBounds(b Bounds, ys []float64) Bounds {
	lo, hi := 0.0, 0.0
	for _, y := range ys {
		if !finite(y) {
			continue
		}
		lo = math.Min(lo, y)
		hi = math.Max(hi, y)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.1
	return Bounds{XMin: b.XMin, XMax: b.XMax, YMin: lo - pad*boolf(lo < 0), YMax: hi + pad}
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
