// Package session turns a configuration into something playable: the
// evaluated convolution, its frame schedule, a renderer and a clock.
package session

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/milk9111/convolve/anim"
	"github.com/milk9111/convolve/config"
	"github.com/milk9111/convolve/plot"
	"github.com/milk9111/convolve/schedule"
	"github.com/milk9111/convolve/script"
	"github.com/milk9111/convolve/signal"
)

// Session is everything derived from one configuration.
type Session struct {
	cfg      *config.Config
	conv     *signal.Convolution
	frames   schedule.Frames
	renderer *plot.Renderer
	player   *anim.Player
}

// New evaluates cfg. User function errors are returned as is.
func New(cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	src := script.Source{Dir: cfg.FunctionsDir}
	f, err := src.Resolve(cfg.F)
	if err != nil {
		return nil, fmt.Errorf("resolve f: %w", err)
	}
	g, err := src.Resolve(cfg.G)
	if err != nil {
		return nil, fmt.Errorf("resolve g: %w", err)
	}

	axis := cfg.Axis()
	conv, err := signal.Convolve(axis, f, g)
	if err != nil {
		return nil, err
	}
	frames := axis.Frames(cfg.FramesSkipped, cfg.PauseTargets())

	bounds := plot.Bounds{XMin: cfg.TMin, XMax: cfg.TMax, YMin: cfg.YMin, YMax: cfg.YMax}
	s := &Session{
		cfg:      cfg,
		conv:     conv,
		frames:   frames,
		renderer: plot.NewRenderer(cfg.Width, cfg.Height, bounds, Palette(cfg), conv),
		player:   anim.NewPlayer(frames, cfg.Delay(), cfg.PauseFor(), cfg.Hold),
	}

	pauses := make([]float64, len(frames.Pauses))
	for i, p := range frames.Pauses {
		pauses[i] = axis.At(p)
	}
	log.Printf("session: %s * %s over [%g, %g], %d samples, %d frames, pauses at %v",
		cfg.F, cfg.G, cfg.TMin, cfg.TMax, axis.Len(), frames.Len(), pauses)
	return s, nil
}

// Palette applies the configured colours over the defaults.
func Palette(cfg *config.Config) plot.Palette {
	p := plot.DefaultPalette()
	c := cfg.Colors
	p.F = c.F.NRGBA(p.F)
	p.G = c.G.NRGBA(p.G)
	p.Conv = c.Conv.NRGBA(p.Conv)
	p.Area = c.Area.NRGBA(p.Area)
	p.Background = c.Background.NRGBA(p.Background)
	p.Axis = c.Axis.NRGBA(p.Axis)
	p.Grid = c.Grid.NRGBA(p.Grid)
	return p
}

func (s *Session) Config() *config.Config {
	return s.cfg
}

func (s *Session) Renderer() *plot.Renderer {
	return s.renderer
}

func (s *Session) Player() *anim.Player {
	return s.player
}

func (s *Session) Frames() schedule.Frames {
	return s.frames
}

func (s *Session) Convolution() *signal.Convolution {
	return s.conv
}

// Readout describes the frame at axis index i.
func (s *Session) Readout(i int) string {
	if i < 0 {
		return ""
	}
	return fmt.Sprintf("t = %.4f  (f*g)(t) = %.6f", s.conv.Axis.At(i), s.conv.ValueAt(i))
}

// WriteSnapshots writes the static charts and one chart per pause point
// under dir and returns the run directory. With frames set, every
// scheduled frame is written too.
func (s *Session) WriteSnapshots(dir string, frames bool) (string, error) {
	run, err := plot.WriteSnapshots(dir, s.renderer, s.frames.Pauses)
	if err != nil {
		return "", err
	}
	if frames {
		if err := plot.WriteFrames(filepath.Join(run, "frames"), s.renderer, s.frames.Indices); err != nil {
			return "", err
		}
	}
	return run, nil
}
