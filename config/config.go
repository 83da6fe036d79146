// Package config loads the YAML configuration for the particle field.
//
// A file only needs the keys it changes: Load overlays it on Default, so a
// missing key keeps its default value.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/particle-field/field"
	"github.com/lixenwraith/particle-field/parameter"
	"github.com/lixenwraith/particle-field/render"
)

// Config holds all particle-field configuration
type Config struct {
	// Seed drives placement and jitter, 0 picks a time-based seed
	Seed uint64 `yaml:"seed"`

	// FrameRate is the target refresh rate in Hz
	FrameRate int `yaml:"frame_rate"`

	Field    FieldConfig    `yaml:"field"`
	Terminal TerminalConfig `yaml:"terminal"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
	Log      LogConfig      `yaml:"log"`
}

// Range is an inclusive [min, max] pair
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// FieldConfig configures the simulator
type FieldConfig struct {
	Count              int     `yaml:"count"`
	InitialSpeed       float64 `yaml:"initial_speed"`
	Size               Range   `yaml:"size"`
	Opacity            Range   `yaml:"opacity"`
	RepulsionDistance  float64 `yaml:"repulsion_distance"`
	RepulsionForce     float64 `yaml:"repulsion_force"`
	RepulsionScale     float64 `yaml:"repulsion_scale"`
	Damping            float64 `yaml:"damping"`
	Restitution        float64 `yaml:"restitution"`
	Jitter             float64 `yaml:"jitter"`
	ConnectionDistance float64 `yaml:"connection_distance"`
	ConnectionAlpha    float64 `yaml:"connection_alpha"`
	LineWidth          float64 `yaml:"line_width"`
	Color              string  `yaml:"color"`
}

// TerminalConfig configures the interactive terminal surface
type TerminalConfig struct {
	UnitsPerDot float64 `yaml:"units_per_dot"`
	Gain        float64 `yaml:"gain"`
	Background  string  `yaml:"background"`
	Status      bool    `yaml:"status"`
}

// SnapshotConfig configures headless rendering
type SnapshotConfig struct {
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Frames      int    `yaml:"frames"`
	Supersample int    `yaml:"supersample"`
	Format      string `yaml:"format"`
}

// LogConfig configures the debug log file
type LogConfig struct {
	Debug bool   `yaml:"debug"`
	Dir   string `yaml:"dir"`
	File  string `yaml:"file"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		FrameRate: parameter.FrameRate,
		Field: FieldConfig{
			Count:              parameter.ParticleCount,
			InitialSpeed:       parameter.ParticleInitialSpeed,
			Size:               Range{parameter.ParticleMinSize, parameter.ParticleMaxSize},
			Opacity:            Range{parameter.ParticleMinOpacity, parameter.ParticleMaxOpacity},
			RepulsionDistance:  parameter.RepulsionDistance,
			RepulsionForce:     parameter.RepulsionForce,
			RepulsionScale:     parameter.RepulsionScale,
			Damping:            parameter.Damping,
			Restitution:        parameter.Restitution,
			Jitter:             parameter.Jitter,
			ConnectionDistance: parameter.ConnectionDistance,
			ConnectionAlpha:    parameter.ConnectionAlpha,
			LineWidth:          parameter.ConnectionLineWidth,
			Color:              parameter.AccentColor,
		},
		Terminal: TerminalConfig{
			UnitsPerDot: parameter.UnitsPerDot,
			Gain:        parameter.TerminalGain,
			Background:  parameter.TerminalBackground,
		},
		Snapshot: SnapshotConfig{
			Width:       parameter.SnapshotWidth,
			Height:      parameter.SnapshotHeight,
			Frames:      parameter.SnapshotFrames,
			Supersample: parameter.SnapshotSupersample,
			Format:      parameter.SnapshotFormat,
		},
		Log: LogConfig{
			Dir:  parameter.LogDir,
			File: parameter.LogFileName,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result
// Unknown keys are rejected so typos do not silently fall back to defaults
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges that the components cannot recover from
func (c Config) Validate() error {
	var errs []error
	if c.FrameRate < parameter.MinFrameRate || c.FrameRate > parameter.MaxFrameRate {
		errs = append(errs, fmt.Errorf("frame_rate %d outside [%d, %d]",
			c.FrameRate, parameter.MinFrameRate, parameter.MaxFrameRate))
	}
	if _, err := c.Tuning(); err != nil {
		errs = append(errs, err)
	}
	if !positiveFinite(c.Terminal.UnitsPerDot) {
		errs = append(errs, fmt.Errorf("terminal.units_per_dot %v must be finite and > 0", c.Terminal.UnitsPerDot))
	}
	if !positiveFinite(c.Terminal.Gain) {
		errs = append(errs, fmt.Errorf("terminal.gain %v must be finite and > 0", c.Terminal.Gain))
	}
	if _, err := render.ParseHex(c.Terminal.Background); err != nil {
		errs = append(errs, fmt.Errorf("terminal.background: %w", err))
	}
	if c.Snapshot.Width < 0 || c.Snapshot.Height < 0 || c.Snapshot.Frames < 0 {
		errs = append(errs, fmt.Errorf("snapshot size %dx%d frames %d must not be negative",
			c.Snapshot.Width, c.Snapshot.Height, c.Snapshot.Frames))
	}
	if c.Snapshot.Supersample < 1 {
		errs = append(errs, fmt.Errorf("snapshot.supersample %d must be >= 1", c.Snapshot.Supersample))
	}
	switch strings.ToLower(c.Snapshot.Format) {
	case "webp", "png":
	default:
		errs = append(errs, fmt.Errorf("snapshot.format %q must be webp or png", c.Snapshot.Format))
	}
	return errors.Join(errs...)
}

// positiveFinite is false for NaN, which fails every ordered comparison
func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Tuning converts the field section into simulator parameters
func (c Config) Tuning() (field.Tuning, error) {
	color, err := render.ParseHex(c.Field.Color)
	if err != nil {
		return field.Tuning{}, fmt.Errorf("field.color: %w", err)
	}
	f := c.Field
	t := field.Tuning{
		Count:              f.Count,
		InitialSpeed:       f.InitialSpeed,
		MinSize:            f.Size.Min,
		MaxSize:            f.Size.Max,
		MinOpacity:         f.Opacity.Min,
		MaxOpacity:         f.Opacity.Max,
		RepulsionDistance:  f.RepulsionDistance,
		RepulsionForce:     f.RepulsionForce,
		RepulsionScale:     f.RepulsionScale,
		Damping:            f.Damping,
		Restitution:        f.Restitution,
		Jitter:             f.Jitter,
		ConnectionDistance: f.ConnectionDistance,
		ConnectionAlpha:    f.ConnectionAlpha,
		LineWidth:          f.LineWidth,
		Color:              color,
	}
	if err := t.Validate(); err != nil {
		return field.Tuning{}, fmt.Errorf("field: %w", err)
	}
	return t, nil
}

// Marshal encodes the configuration as YAML
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
