// Command playback replays the frame_*.png files written by
// `convolve -headless -frames` in a window.
package main

import (
	"bytes"
	"flag"
	"image"
	"image/color"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type playbackGame struct {
	frames      []*ebiten.Image
	current     int
	tick        int
	ticksPerFrm int
	paused      bool
	loop        bool
}

func (g *playbackGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) && g.current < len(g.frames)-1 {
		g.current++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) && g.current > 0 {
		g.current--
	}
	if g.paused || len(g.frames) <= 1 {
		return nil
	}

	g.tick++
	if g.tick >= g.ticksPerFrm {
		g.tick = 0
		g.current++
		if g.current >= len(g.frames) {
			if g.loop {
				g.current = 0
			} else {
				g.current = len(g.frames) - 1
				g.paused = true
			}
		}
	}
	return nil
}

func (g *playbackGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0xff, 0xff, 0xff, 0xff})
	if len(g.frames) == 0 {
		return
	}
	screen.DrawImage(g.frames[g.current], nil)
}

func (g *playbackGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	if len(g.frames) == 0 {
		return 640, 480
	}
	b := g.frames[0].Bounds()
	return b.Dx(), b.Dy()
}

func loadFrames(dir string) ([]*ebiten.Image, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "frame_*.png"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	frames := make([]*ebiten.Image, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			log.Printf("failed to decode %s: %v", p, err)
			continue
		}
		frames = append(frames, ebiten.NewImageFromImage(img))
	}
	return frames, nil
}

func main() {
	fps := flag.Int("fps", 30, "frames per second")
	loop := flag.Bool("loop", false, "start over after the last frame")
	flag.Parse()

	dir := flag.Arg(0)
	if dir == "" {
		log.Fatal("usage: playback [-fps n] [-loop] <snapshot run dir>/frames")
	}
	frames, err := loadFrames(dir)
	if err != nil {
		log.Fatal(err)
	}
	if len(frames) == 0 {
		log.Fatalf("no frame_*.png in %s", dir)
	}

	ticks := 1
	if *fps > 0 {
		ticks = max(60 / *fps, 1)
	}
	g := &playbackGame{frames: frames, ticksPerFrm: ticks, loop: *loop}

	b := frames[0].Bounds()
	ebiten.SetWindowSize(b.Dx(), b.Dy())
	ebiten.SetWindowTitle("convolve playback")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
