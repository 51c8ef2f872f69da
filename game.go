package main

import (
	"fmt"
	"image"
	"log"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/convolve/anim"
	"github.com/milk9111/convolve/config"
	"github.com/milk9111/convolve/session"
)

type stage int

const (
	stageFunctions stage = iota
	stagePreview
	stageAnimation
)

func (s stage) String() string {
	switch s {
	case stageFunctions:
		return "functions"
	case stagePreview:
		return "preview"
	default:
		return "animation"
	}
}

type Game struct {
	configPath   string
	snapshotDir  string
	writeFrames  bool
	run          *session.Session
	stage        stage
	canvas       *ebiten.Image
	dirty        bool
	last         time.Time
	snapshotDone bool

	watcher     *config.Watcher
	pauseUI     *ebitenui.UI
	pauseUIText func(string)
	clip        *Clipboard
	status      string
}

func NewGame(configPath, snapshotDir string, writeFrames bool, run *session.Session, watcher *config.Watcher, clip *Clipboard) *Game {
	g := &Game{
		configPath:  configPath,
		snapshotDir: snapshotDir,
		writeFrames: writeFrames,
		run:         run,
		watcher:     watcher,
		clip:        clip,
		dirty:       true,
	}
	g.pauseUI, g.pauseUIText = NewPauseUI(g)
	return g
}

func (g *Game) Update() error {
	g.pollWatcher()

	now := time.Now()
	dt := time.Duration(0)
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.next()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyReadout()
	}

	if g.stage != stageAnimation {
		return nil
	}

	player := g.run.Player()
	if player.State() == anim.Holding {
		g.pauseUIText(fmt.Sprintf("Paused at %s", g.run.Readout(player.Current())))
		g.pauseUI.Update()
		return nil
	}
	if player.Advance(dt) {
		g.dirty = true
	}
	if player.State() == anim.Done && !g.snapshotDone {
		g.snapshotDone = true
		g.writeSnapshots()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.dirty {
		g.render()
		g.dirty = false
	}
	screen.DrawImage(g.canvas, nil)

	help := "[space] next  [r] restart  [c] copy  [esc] quit"
	if g.stage == stageAnimation {
		player := g.run.Player()
		switch player.State() {
		case anim.Paused:
			help = fmt.Sprintf("paused %.1fs", player.Remaining().Seconds())
		case anim.Holding:
			g.pauseUI.Draw(screen)
		case anim.Done:
			help = "done  [r] replay  [esc] quit"
		}
	}
	ebitenutil.DebugPrint(screen, help)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 0, screen.Bounds().Dy()-16)
	}
}

func (g *Game) render() {
	var rgba *image.RGBA
	switch g.stage {
	case stageFunctions:
		rgba = g.run.Renderer().Functions()
	case stagePreview:
		rgba = g.run.Renderer().Preview()
	default:
		rgba = g.run.Renderer().Frame(g.run.Player().Current())
	}

	b := rgba.Bounds()
	if g.canvas == nil || g.canvas.Bounds().Dx() != b.Dx() || g.canvas.Bounds().Dy() != b.Dy() {
		g.canvas = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.canvas.WritePixels(rgba.Pix)
}

func (g *Game) next() {
	if g.stage < stageAnimation {
		g.stage++
		g.status = g.stage.String()
		g.dirty = true
		g.last = time.Time{}
		return
	}
	if g.run.Player().Resume() {
		g.dirty = true
	}
}

func (g *Game) restart() {
	g.stage = stageAnimation
	g.run.Player().Restart()
	g.snapshotDone = false
	g.last = time.Time{}
	g.dirty = true
}

func (g *Game) resume() {
	g.run.Player().Resume()
	g.last = time.Time{}
}

func (g *Game) copyReadout() {
	var text string
	if g.stage == stageAnimation {
		text = g.run.Readout(g.run.Player().Current())
	} else {
		text = fmt.Sprintf("f = %s, g = %s", g.run.Config().F, g.run.Config().G)
	}
	if err := g.clip.Copy(text); err != nil {
		g.status = err.Error()
		return
	}
	g.status = "copied: " + text
}

func (g *Game) writeSnapshots() {
	if g.snapshotDir == "" {
		return
	}
	dir, err := g.run.WriteSnapshots(g.snapshotDir, g.writeFrames)
	if err != nil {
		log.Printf("snapshots: %v", err)
		g.status = err.Error()
		return
	}
	log.Printf("snapshots: wrote %s", dir)
	g.status = "snapshots: " + dir
	// the renderer's image now holds the last snapshot
	g.dirty = true
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			return
		}
	}
}

// reload rebuilds the run after a config or function change. A failing
// reload keeps the current run on screen.
func (g *Game) reload(changed string) {
	log.Printf("watch: %s changed, reloading", filepath.Base(changed))
	cfg, err := config.Load(g.configPath)
	if err != nil {
		log.Printf("watch: %v", err)
		g.status = err.Error()
		return
	}
	run, err := session.New(cfg)
	if err != nil {
		log.Printf("watch: %v", err)
		g.status = err.Error()
		return
	}
	g.run = run
	g.snapshotDone = false
	g.last = time.Time{}
	g.dirty = true
	g.status = "reloaded " + filepath.Base(changed)
	if g.stage == stageAnimation {
		g.run.Player().Restart()
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.run.Config().Width), float64(g.run.Config().Height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
