package gopointer

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration written as a Go duration string ("50ms") in
// tuning files.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrapf(err, "invalid duration %q", text)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Tuning overrides filter settings from a file. Unset fields keep the
// values of the config they are applied to.
type Tuning struct {
	Wheel     WheelTuning `yaml:"wheel" toml:"wheel"`
	Move      MoveTuning  `yaml:"move" toml:"move"`
	QueueSize int         `yaml:"queue_size" toml:"queue_size"`
}

// WheelTuning overrides input.WheelConfig.
type WheelTuning struct {
	Threshold  float64  `yaml:"threshold" toml:"threshold"`
	Timeout    Duration `yaml:"timeout" toml:"timeout"`
	LineHeight float64  `yaml:"line_height" toml:"line_height"`
	PageHeight float64  `yaml:"page_height" toml:"page_height"`
	// MaxStepsPerEvent is a pointer since zero is meaningful (no cap).
	MaxStepsPerEvent *int `yaml:"max_steps_per_event" toml:"max_steps_per_event"`
}

// MoveTuning overrides input.ThrottleConfig.
type MoveTuning struct {
	Interval Duration `yaml:"interval" toml:"interval"`
}

// LoadTuning reads a tuning file. The format is picked by extension:
// .yaml/.yml or .toml.
func LoadTuning(path string) (Tuning, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, errors.Wrap(err, "error reading tuning file")
	}
	return ParseTuning(data, filepath.Ext(path))
}

// ParseTuning decodes tuning data in the format named by ext.
func ParseTuning(data []byte, ext string) (Tuning, error) {
	var tuning Tuning
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &tuning); err != nil {
			return Tuning{}, errors.Wrap(err, "error decoding yaml tuning")
		}
	case "toml":
		if err := toml.Unmarshal(data, &tuning); err != nil {
			return Tuning{}, errors.Wrap(err, "error decoding toml tuning")
		}
	default:
		return Tuning{}, errors.Errorf("unsupported tuning format %q", ext)
	}
	if err := tuning.validate(); err != nil {
		return Tuning{}, err
	}
	return tuning, nil
}

func (t Tuning) validate() error {
	switch {
	case t.Wheel.Threshold < 0:
		return errors.New("wheel threshold must not be negative")
	case t.Wheel.Timeout < 0:
		return errors.New("wheel timeout must not be negative")
	case t.Wheel.MaxStepsPerEvent != nil && *t.Wheel.MaxStepsPerEvent < 0:
		return errors.New("wheel max steps per event must not be negative")
	case t.Move.Interval < 0:
		return errors.New("move interval must not be negative")
	case t.QueueSize < 0:
		return errors.New("queue size must not be negative")
	}
	return nil
}

// Apply returns config with every set tuning field applied.
func (t Tuning) Apply(config SessionConfig) SessionConfig {
	if t.Wheel.Threshold != 0 {
		config.Wheel.Threshold = t.Wheel.Threshold
	}
	if t.Wheel.Timeout != 0 {
		config.Wheel.Timeout = time.Duration(t.Wheel.Timeout)
	}
	if t.Wheel.LineHeight != 0 {
		config.Wheel.LineHeight = t.Wheel.LineHeight
	}
	if t.Wheel.PageHeight != 0 {
		config.Wheel.PageHeight = t.Wheel.PageHeight
	}
	if t.Wheel.MaxStepsPerEvent != nil {
		config.Wheel.MaxStepsPerEvent = *t.Wheel.MaxStepsPerEvent
	}
	if t.Move.Interval != 0 {
		config.Move.Interval = time.Duration(t.Move.Interval)
	}
	if t.QueueSize != 0 {
		config.QueueSize = t.QueueSize
	}
	return config
}
