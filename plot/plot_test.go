package plot

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/milk9111/convolve/signal"
)

func testRenderer(t *testing.T, f, g signal.Pointwise) *Renderer {
	t.Helper()
	axis := signal.NewAxis(-2, 2, 401)
	conv, err := signal.Convolve(axis, f, g)
	if err != nil {
		t.Fatalf("Convolve: %v", err)
	}
	return NewRenderer(400, 300, Bounds{XMin: -2, XMax: 2, YMin: 0, YMax: 1.5}, DefaultPalette(), conv)
}

func pixelAt(img *image.RGBA, c *Chart, x, y float64) (r, g, b uint8) {
	px, py := c.ToPixel(x, y)
	o := img.PixOffset(int(px), int(py))
	return img.Pix[o], img.Pix[o+1], img.Pix[o+2]
}

func TestTicks(t *testing.T) {
	cases := []struct {
		name   string
		lo, hi float64
		target int
		want   []float64
	}{
		{"unit_steps", -5, 5, 10, []float64{-5, -4, -3, -2, -1, 0, 1, 2, 3, 4, 5}},
		{"half_steps", 0, 1.5, 6, []float64{0, 0.5, 1, 1.5}},
		{"offset_start", 0.3, 1.1, 4, []float64{0.4, 0.6, 0.8, 1}},
		{"empty_range", 1, 1, 5, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Ticks(c.lo, c.hi, c.target)
			if len(got) != len(c.want) {
				t.Fatalf("Ticks = %v, want %v", got, c.want)
			}
			for i := range got {
				if math.Abs(got[i]-c.want[i]) > 1e-9 {
					t.Fatalf("Ticks = %v, want %v", got, c.want)
				}
			}
		})
	}

	if FormatTick(0.30000000000000004) != "0.3" || FormatTick(-1e-15) != "0" {
		t.Fatalf("FormatTick rounding")
	}
}

func TestToPixel(t *testing.T) {
	c := NewChart(400, 300, Bounds{XMin: 0, XMax: 10, YMin: 0, YMax: 1}, DefaultPalette())
	x0, y0 := c.ToPixel(0, 0)
	x1, y1 := c.ToPixel(10, 1)
	if int(x0) != c.area.Min.X || int(y0) != c.area.Max.Y {
		t.Fatalf("origin at (%v, %v), area %v", x0, y0, c.area)
	}
	if int(x1) != c.area.Max.X || int(y1) != c.area.Min.Y {
		t.Fatalf("corner at (%v, %v), area %v", x1, y1, c.area)
	}

	c.SetBounds(Bounds{XMin: 1, XMax: 1, YMin: 2, YMax: 0})
	if b := c.Bounds(); b.XMax <= b.XMin || b.YMax <= b.YMin {
		t.Fatalf("degenerate bounds kept: %+v", b)
	}
}

func TestFunctionsChart(t *testing.T) {
	r := testRenderer(t, signal.Box, signal.Triangle)
	img := r.Functions()

	red, green, blue := pixelAt(img, r.chart, 0.3, 1)
	if red < 200 || green > 80 || blue > 80 {
		t.Fatalf("expected f line at (0.3, 1), got rgb(%d,%d,%d)", red, green, blue)
	}
	red, green, blue = pixelAt(img, r.chart, 0.3, 0.7)
	if blue < 200 || red > 80 {
		t.Fatalf("expected g line at (0.3, 0.7), got rgb(%d,%d,%d)", red, green, blue)
	}
	red, green, blue = pixelAt(img, r.chart, -1.3, 1.2)
	if red != 255 || green != 255 || blue != 255 {
		t.Fatalf("expected background at (-1.3, 1.2), got rgb(%d,%d,%d)", red, green, blue)
	}
}

func TestFrameChart(t *testing.T) {
	r := testRenderer(t, signal.Box, signal.Box)
	mid := r.conv.Axis.Nearest(0)

	img := r.Frame(mid)
	red, green, blue := pixelAt(img, r.chart, 0.2, 0.6)
	if red < 120 || blue < 120 || green > red-40 {
		t.Fatalf("expected shaded product at (0.2, 0.6), got rgb(%d,%d,%d)", red, green, blue)
	}

	// a later frame restores the saved base instead of accumulating shading
	img = r.Frame(r.conv.Axis.Nearest(-1.5))
	red, green, blue = pixelAt(img, r.chart, 0.2, 0.6)
	if red != 255 || green != 255 || blue != 255 {
		t.Fatalf("stale shading at (0.2, 0.6): rgb(%d,%d,%d)", red, green, blue)
	}

	// switching charts invalidates the frame base
	r.Preview()
	img = r.Frame(mid)
	red, _, blue = pixelAt(img, r.chart, 0.2, 0.6)
	if red < 120 || blue < 120 {
		t.Fatalf("frame after preview lost its shading: rgb(%d,_,%d)", red, blue)
	}
}

func TestSaveRestore(t *testing.T) {
	c := NewChart(200, 150, Bounds{XMin: 0, XMax: 1, YMin: 0, YMax: 1}, DefaultPalette())
	if c.Restore() {
		t.Fatalf("Restore without Save should fail")
	}
	c.Clear()
	c.Save()
	before := slices.Clone(c.Image().Pix)
	c.Area([]float64{0, 1}, []float64{1, 1}, DefaultPalette().Area)
	if slices.Equal(before, c.Image().Pix) {
		t.Fatalf("Area drew nothing")
	}
	if !c.Restore() || !slices.Equal(before, c.Image().Pix) {
		t.Fatalf("Restore did not return to the saved image")
	}
}

func TestLineSurvivesExtremeValues(t *testing.T) {
	c := NewChart(120, 90, Bounds{XMin: 0, XMax: 1, YMin: 0, YMax: 1}, DefaultPalette())
	c.Clear()
	c.Line([]float64{0, 0.25, 0.5, 0.75, 1}, []float64{0, 1e300, math.Inf(1), math.NaN(), 0.5}, DefaultPalette().F, 2)
	c.Area([]float64{0, 0.5, 1}, []float64{-1e308, math.NaN(), 1}, DefaultPalette().Area)
}

func TestPreviewBounds(t *testing.T) {
	b := Bounds{XMin: -1, XMax: 1, YMin: 0, YMax: 1}
	cases := []struct {
		name   string
		ys     []float64
		lo, hi float64
	}{
		{"positive", []float64{0, 2, 1}, 0, 2.2},
		{"signed", []float64{-1, 1}, -1.2, 1.2},
		{"flat", []float64{0, 0}, 0, 1.1},
		{"ignores_inf", []float64{1, math.Inf(1)}, 0, 1.1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := PreviewBounds(b, c.ys)
			if math.Abs(got.YMin-c.lo) > 1e-9 || math.Abs(got.YMax-c.hi) > 1e-9 {
				t.Fatalf("y range [%v, %v], want [%v, %v]", got.YMin, got.YMax, c.lo, c.hi)
			}
			if got.XMin != b.XMin || got.XMax != b.XMax {
				t.Fatalf("x range changed: %+v", got)
			}
		})
	}
}

func TestWriteSnapshots(t *testing.T) {
	r := testRenderer(t, signal.Box, signal.Triangle)
	pauses := []int{r.conv.Axis.Nearest(-0.5), r.conv.Axis.Nearest(0.5)}

	run, err := WriteSnapshots(t.TempDir(), r, pauses)
	if err != nil {
		t.Fatalf("WriteSnapshots: %v", err)
	}

	entries, err := os.ReadDir(run)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2+len(pauses) {
		t.Fatalf("wrote %d files, want %d", len(entries), 2+len(pauses))
	}

	f, err := os.Open(filepath.Join(run, SnapshotName(1, 0.5)))
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 300 {
		t.Fatalf("snapshot size %v", img.Bounds())
	}
}
