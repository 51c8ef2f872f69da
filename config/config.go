// Package config holds the animator's configuration object and loads it
// from YAML: the embedded defaults first, then an optional file on disk.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/milk9111/convolve/signal"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid marks configuration values the animator cannot run with.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	F            string `yaml:"f"`
	G            string `yaml:"g"`
	FunctionsDir string `yaml:"functions_dir"`

	TMin float64 `yaml:"t_min"`
	TMax float64 `yaml:"t_max"`
	YMin float64 `yaml:"y_min"`
	YMax float64 `yaml:"y_max"`

	Steps              int     `yaml:"steps"`
	FramesSkipped      int     `yaml:"frames_skipped"`
	DelayBetweenFrames float64 `yaml:"delay_between_frames"`
	Pause              bool    `yaml:"pause"`
	PauseAt            Targets `yaml:"pause_at_t"`
	PauseDuration      float64 `yaml:"pause_duration"`
	Hold               bool    `yaml:"hold"`

	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	SnapshotDir string `yaml:"snapshot_dir"`

	Colors Colors `yaml:"colors"`
}

type Colors struct {
	F          *Color `yaml:"f"`
	G          *Color `yaml:"g"`
	Conv       *Color `yaml:"conv"`
	Area       *Color `yaml:"area"`
	Background *Color `yaml:"background"`
	Axis       *Color `yaml:"axis"`
	Grid       *Color `yaml:"grid"`
}

func (c Colors) clone() Colors {
	dup := func(p *Color) *Color {
		if p == nil {
			return nil
		}
		v := *p
		return &v
	}
	return Colors{
		F:          dup(c.F),
		G:          dup(c.G),
		Conv:       dup(c.Conv),
		Area:       dup(c.Area),
		Background: dup(c.Background),
		Axis:       dup(c.Axis),
		Grid:       dup(c.Grid),
	}
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Decode(defaultYAML, nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded default.yaml: %v", err))
	}
	return cfg
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	base := Default()
	if path == "" {
		return base, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Decode(data, base)
	if err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals data over a copy of base. Keys missing from data keep
// base's values.
func Decode(data []byte, base *Config) (*Config, error) {
	var cfg Config
	if base != nil {
		cfg = *base
		cfg.PauseAt = append(Targets(nil), base.PauseAt...)
		cfg.Colors = base.Colors.clone()
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports values that would make the animation meaningless.
func (c *Config) Validate() error {
	var errs []error
	if c.Steps < 2 {
		errs = append(errs, fmt.Errorf("%w: steps must be at least 2, got %d", ErrInvalid, c.Steps))
	}
	if c.FramesSkipped < 1 {
		errs = append(errs, fmt.Errorf("%w: frames_skipped must be at least 1, got %d", ErrInvalid, c.FramesSkipped))
	}
	if c.TMax <= c.TMin {
		errs = append(errs, fmt.Errorf("%w: t_max (%g) must be greater than t_min (%g)", ErrInvalid, c.TMax, c.TMin))
	}
	if c.YMax <= c.YMin {
		errs = append(errs, fmt.Errorf("%w: y_max (%g) must be greater than y_min (%g)", ErrInvalid, c.YMax, c.YMin))
	}
	if c.DelayBetweenFrames < 0 || c.PauseDuration < 0 {
		errs = append(errs, fmt.Errorf("%w: delays must not be negative", ErrInvalid))
	}
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: width and height must be positive", ErrInvalid))
	}
	return errors.Join(errs...)
}

// Axis builds the sampled time axis.
func (c *Config) Axis() signal.Axis {
	return signal.NewAxis(c.TMin, c.TMax, c.Steps)
}

// PauseTargets returns the pause times, or nil when pausing is off.
func (c *Config) PauseTargets() []float64 {
	if !c.Pause {
		return nil
	}
	return append([]float64(nil), c.PauseAt...)
}

// Delay is the time between two rendered frames.
func (c *Config) Delay() time.Duration {
	return time.Duration(c.DelayBetweenFrames * float64(time.Millisecond))
}

// PauseFor is how long a pause frame is held.
func (c *Config) PauseFor() time.Duration {
	return time.Duration(c.PauseDuration * float64(time.Second))
}

// Targets accepts either a single number or a list of numbers.
type Targets []float64

func (t *Targets) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*t = nil
			return nil
		}
		var v float64
		if err := value.Decode(&v); err != nil {
			return fmt.Errorf("pause_at_t: %w", err)
		}
		*t = Targets{v}
	case yaml.SequenceNode:
		var vs []float64
		if err := value.Decode(&vs); err != nil {
			return fmt.Errorf("pause_at_t: %w", err)
		}
		*t = vs
	default:
		return fmt.Errorf("pause_at_t must be a number or a list of numbers")
	}
	return nil
}
