// Package plot rasterizes the animator's charts onto an *image.RGBA.
//
// The same images are uploaded to the ebiten window every frame and encoded
// to PNG for snapshots, so nothing here depends on a graphics context.
package plot

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/milk9111/convolve/common"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	marginLeft   = 64
	marginRight  = 24
	marginTop    = 40
	marginBottom = 44
)

// Bounds is the visible data window.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Chart is a single set of axes drawn onto an RGBA image.
type Chart struct {
	img     *image.RGBA
	area    image.Rectangle
	bounds  Bounds
	palette Palette
	face    font.Face
	raster  *vector.Rasterizer
	saved   []byte
}

// NewChart allocates a w×h chart.
func NewChart(w, h int, b Bounds, p Palette) *Chart {
	w = max(w, marginLeft+marginRight+1)
	h = max(h, marginTop+marginBottom+1)
	c := &Chart{
		img:     image.NewRGBA(image.Rect(0, 0, w, h)),
		palette: p,
		face:    basicfont.Face7x13,
	}
	c.area = image.Rect(marginLeft, marginTop, w-marginRight, h-marginBottom)
	c.raster = vector.NewRasterizer(c.area.Dx(), c.area.Dy())
	c.SetBounds(b)
	return c
}

// Image returns the chart's backing image. It is reused between draws.
func (c *Chart) Image() *image.RGBA {
	return c.img
}

func (c *Chart) Bounds() Bounds {
	return c.bounds
}

// SetBounds changes the data window. Degenerate ranges are widened.
func (c *Chart) SetBounds(b Bounds) {
	if !(b.XMax > b.XMin) {
		b.XMax = b.XMin + 1
	}
	if !(b.YMax > b.YMin) {
		b.YMax = b.YMin + 1
	}
	c.bounds = b
}

// ToPixel maps a data point to image coordinates.
func (c *Chart) ToPixel(x, y float64) (float32, float32) {
	fx := (x - c.bounds.XMin) / (c.bounds.XMax - c.bounds.XMin)
	fy := (y - c.bounds.YMin) / (c.bounds.YMax - c.bounds.YMin)
	px := common.Lerp(float32(c.area.Min.X), float32(c.area.Max.X), float32(fx))
	py := common.Lerp(float32(c.area.Max.Y), float32(c.area.Min.Y), float32(fy))
	return px, py
}

// local maps a data point into the rasterizer's plot-area coordinates,
// clamped to a band around it so huge values stay finite.
func (c *Chart) local(x, y float64) (float32, float32) {
	px, py := c.ToPixel(x, y)
	w, h := float32(c.area.Dx()), float32(c.area.Dy())
	lx := common.Clamp(px-float32(c.area.Min.X), -w, 2*w)
	ly := common.Clamp(py-float32(c.area.Min.Y), -h, 2*h)
	return lx, ly
}

// Clear paints the background, grid, axes and tick labels.
func (c *Chart) Clear() {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(c.palette.Background), image.Point{}, draw.Src)

	xs := Ticks(c.bounds.XMin, c.bounds.XMax, 10)
	ys := Ticks(c.bounds.YMin, c.bounds.YMax, 6)
	for _, x := range xs {
		px, _ := c.ToPixel(x, 0)
		c.fillRect(int(px), c.area.Min.Y, 1, c.area.Dy(), c.palette.Grid)
		c.text(int(px)-c.textWidth(FormatTick(x))/2, c.area.Max.Y+16, FormatTick(x), c.palette.Axis)
	}
	for _, y := range ys {
		_, py := c.ToPixel(0, y)
		c.fillRect(c.area.Min.X, int(py), c.area.Dx(), 1, c.palette.Grid)
		label := FormatTick(y)
		c.text(c.area.Min.X-8-c.textWidth(label), int(py)+4, label, c.palette.Axis)
	}

	if c.bounds.YMin <= 0 && c.bounds.YMax >= 0 {
		_, py := c.ToPixel(0, 0)
		c.fillRect(c.area.Min.X, int(py), c.area.Dx(), 1, c.palette.Axis)
	}
	c.strokeRect(c.area, c.palette.Axis)
}

// AxisLabels writes the x label under the axis and the y label top left.
func (c *Chart) AxisLabels(xlabel, ylabel string) {
	c.text(c.area.Min.X+(c.area.Dx()-c.textWidth(xlabel))/2, c.area.Max.Y+34, xlabel, c.palette.Axis)
	c.text(4, c.area.Min.Y-10, ylabel, c.palette.Axis)
}

// Title writes s centred above the plot area.
func (c *Chart) Title(s string) {
	c.text(c.area.Min.X+(c.area.Dx()-c.textWidth(s))/2, c.area.Min.Y-14, s, c.palette.Axis)
}

// Line strokes the polyline through (xs[i], ys[i]). Non-finite points break
// the line.
func (c *Chart) Line(xs, ys []float64, col color.Color, width float32) {
	n := min(len(xs), len(ys))
	if n < 2 {
		return
	}
	half := width / 2

	c.raster.Reset(c.area.Dx(), c.area.Dy())
	for i := 1; i < n; i++ {
		if !finite(ys[i-1]) || !finite(ys[i]) {
			continue
		}
		ax, ay := c.local(xs[i-1], ys[i-1])
		bx, by := c.local(xs[i], ys[i])
		dx, dy := bx-ax, by-ay
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		ex, ey := dx/l*half, dy/l*half

		c.raster.MoveTo(ax+nx-ex, ay+ny-ey)
		c.raster.LineTo(bx+nx+ex, by+ny+ey)
		c.raster.LineTo(bx-nx+ex, by-ny+ey)
		c.raster.LineTo(ax-nx-ex, ay-ny-ey)
		c.raster.ClosePath()
	}
	c.flush(col)
}

// Area fills the region between the curve and y = 0.
func (c *Chart) Area(xs, ys []float64, col color.Color) {
	n := min(len(xs), len(ys))
	if n < 2 {
		return
	}

	c.raster.Reset(c.area.Dx(), c.area.Dy())
	bx, by := c.local(xs[0], 0)
	c.raster.MoveTo(bx, by)
	for i := 0; i < n; i++ {
		y := ys[i]
		if !finite(y) {
			y = 0
		}
		px, py := c.local(xs[i], y)
		c.raster.LineTo(px, py)
	}
	ex, ey := c.local(xs[n-1], 0)
	c.raster.LineTo(ex, ey)
	c.raster.ClosePath()
	c.flush(col)
}

// Marker draws a vertical line at x across the plot area.
func (c *Chart) Marker(x float64, col color.Color) {
	px, _ := c.ToPixel(x, 0)
	if int(px) < c.area.Min.X || int(px) >= c.area.Max.X {
		return
	}
	c.fillRect(int(px), c.area.Min.Y, 1, c.area.Dy(), col)
}

// LegendEntry is one row of the legend. Filled entries draw a swatch
// instead of a line sample.
type LegendEntry struct {
	Label  string
	Color  color.Color
	Filled bool
}

// Legend draws entries in a box in the upper right corner.
func (c *Chart) Legend(entries []LegendEntry) {
	if len(entries) == 0 {
		return
	}
	wide := 0
	for _, e := range entries {
		wide = max(wide, c.textWidth(e.Label))
	}
	const row = 18
	w := wide + 48
	h := len(entries)*row + 8
	x := c.area.Max.X - w - 8
	y := c.area.Min.Y + 8

	box := image.Rect(x, y, x+w, y+h)
	draw.Draw(c.img, box, image.NewUniform(c.palette.Background), image.Point{}, draw.Src)
	c.strokeRect(box, c.palette.Grid)

	for i, e := range entries {
		cy := y + 4 + i*row + row/2
		if e.Filled {
			c.fillRect(x+8, cy-5, 24, 10, e.Color)
		} else {
			c.fillRect(x+8, cy-1, 24, 2, e.Color)
		}
		c.text(x+40, cy+4, e.Label, c.palette.Axis)
	}
}

// Save copies the current image so Restore can return to it.
func (c *Chart) Save() {
	c.saved = append(c.saved[:0], c.img.Pix...)
}

// Restore returns to the last Save. It reports false when nothing was saved.
func (c *Chart) Restore() bool {
	if len(c.saved) != len(c.img.Pix) {
		return false
	}
	copy(c.img.Pix, c.saved)
	return true
}

func (c *Chart) flush(col color.Color) {
	c.raster.DrawOp = draw.Over
	c.raster.Draw(c.img, c.area, image.NewUniform(col), image.Point{})
}

func (c *Chart) fillRect(x, y, w, h int, col color.Color) {
	r := image.Rect(x, y, x+w, y+h)
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *Chart) strokeRect(r image.Rectangle, col color.Color) {
	c.fillRect(r.Min.X, r.Min.Y, r.Dx(), 1, col)
	c.fillRect(r.Min.X, r.Max.Y-1, r.Dx(), 1, col)
	c.fillRect(r.Min.X, r.Min.Y, 1, r.Dy(), col)
	c.fillRect(r.Max.X-1, r.Min.Y, 1, r.Dy(), col)
}

func (c *Chart) text(x, y int, s string, col color.Color) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func (c *Chart) textWidth(s string) int {
	return font.MeasureString(c.face, s).Ceil()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
