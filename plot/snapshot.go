package plot

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SavePNG encodes img to path, creating parent directories.
func SavePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("plot: save %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("plot: save %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("plot: encode %s: %w", path, err)
	}
	return f.Close()
}

// SnapshotName is the file name of the snapshot for the n-th pause (from
// zero) at time t.
func SnapshotName(n int, t float64) string {
	return fmt.Sprintf("pause_%02d_t%+.3f.png", n+1, t)
}

// WriteSnapshots writes the static charts and one frame chart per pause
// index into a fresh run directory under dir. It returns the run directory.
func WriteSnapshots(dir string, r *Renderer, pauses []int) (string, error) {
	run := filepath.Join(dir, uuid.NewString())

	if err := SavePNG(filepath.Join(run, "functions.png"), r.Functions()); err != nil {
		return "", err
	}
	if err := SavePNG(filepath.Join(run, "preview.png"), r.Preview()); err != nil {
		return "", err
	}
	for n, i := range pauses {
		t := r.conv.Axis.At(i)
		if err := SavePNG(filepath.Join(run, SnapshotName(n, t)), r.Frame(i)); err != nil {
			return "", err
		}
	}
	return run, nil
}

// WriteFrames writes one PNG per axis index into dir, named by position in
// the sequence so they sort in playback order.
func WriteFrames(dir string, r *Renderer, indices []int) error {
	for n, i := range indices {
		if err := SavePNG(filepath.Join(dir, fmt.Sprintf("frame_%05d.png", n)), r.Frame(i)); err != nil {
			return err
		}
	}
	return nil
}
