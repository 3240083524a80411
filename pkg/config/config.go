// Package config provides configuration loading and management for voreencurves.
// It handles loading configuration from YAML or TOML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"voreencurves/internal/models"
	"voreencurves/pkg/spline"
	"voreencurves/pkg/transfunc"
)

// ErrInvalidConfig is returned by Validate for inconsistent settings
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the application configuration
type Config struct {
	// Curve describes the spline to build
	Curve struct {
		// Kind is one of bspline, natural-cubic, catmull-rom, arc-length
		Kind string `yaml:"kind" toml:"kind"`

		// Degree is the B-spline degree
		Degree int `yaml:"degree" toml:"degree"`

		// StepCount is the B-spline tessellation resolution
		StepCount int `yaml:"stepCount" toml:"stepCount"`

		// Points are the control or interpolation points, two or three
		// components each
		Points [][]float64 `yaml:"points" toml:"points"`

		// Knots optionally replaces the uniform B-spline knot vector
		Knots []float64 `yaml:"knots,omitempty" toml:"knots,omitempty"`
	} `yaml:"curve" toml:"curve"`

	// Sampling parameters
	Sampling struct {
		// Samples is the number of evaluated parameters
		Samples int `yaml:"samples" toml:"samples"`

		// Workers specifies how many goroutines evaluate the curve
		Workers int `yaml:"workers" toml:"workers"`

		// TMin and TMax bound the parameter range
		TMin float64 `yaml:"tMin" toml:"tMin"`
		TMax float64 `yaml:"tMax" toml:"tMax"`
	} `yaml:"sampling" toml:"sampling"`

	// TransferFunction describes the mapping keys exported as a lookup table
	TransferFunction transfunc.Document `yaml:"transferFunction" toml:"transferFunction"`

	// Output parameters
	Output struct {
		// CSV is the path samples are written to; empty disables it
		CSV string `yaml:"csv" toml:"csv"`

		// Plot is the image path for the rendered curve; empty disables it
		Plot string `yaml:"plot" toml:"plot"`

		// LookupTable is the image path for the transfer function strip
		LookupTable string `yaml:"lookupTable" toml:"lookupTable"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose" toml:"verbose"`
	} `yaml:"output" toml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// A cubic B-spline through a small zig-zag
	cfg.Curve.Kind = models.BSpline.String()
	cfg.Curve.Degree = spline.DefaultDegree
	cfg.Curve.StepCount = spline.DefaultStepCount
	cfg.Curve.Points = [][]float64{{0, 0}, {1, 2}, {2, -1}, {3, 1}, {4, 0}}

	cfg.Sampling.Samples = 256
	cfg.Sampling.Workers = runtime.NumCPU() // Use all available cores by default
	cfg.Sampling.TMin = 0
	cfg.Sampling.TMax = 1

	cfg.TransferFunction = transfunc.DefaultDocument()

	cfg.Output.CSV = "samples.csv"
	cfg.Output.Verbose = true

	return cfg
}

// isTOML reports whether the path selects the TOML format
func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// LoadConfig loads configuration from a YAML or TOML file, chosen by extension.
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if isTOML(configPath) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML or TOML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	var data []byte
	var err error
	if isTOML(configPath) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}

// Validate checks the settings that cannot be caught while parsing.
// Curve construction errors surface later from BuildCurve.
func (c *Config) Validate() error {
	kind, err := models.ParseCurveKind(c.Curve.Kind)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(c.Curve.Points) == 0 {
		return fmt.Errorf("%w: curve has no points", ErrInvalidConfig)
	}

	dim := len(c.Curve.Points[0])
	for i, p := range c.Curve.Points {
		if len(p) != dim {
			return fmt.Errorf("%w: point %d has %d components, point 0 has %d", ErrInvalidConfig, i, len(p), dim)
		}
	}
	switch {
	case dim < 2 || dim > 3:
		return fmt.Errorf("%w: points need 2 or 3 components, got %d", ErrInvalidConfig, dim)
	case dim == 3 && (kind == models.NaturalCubic || kind == models.CatmullRom):
		return fmt.Errorf("%w: %s curves take 2D points", ErrInvalidConfig, kind)
	case len(c.Curve.Knots) > 0 && kind != models.BSpline:
		return fmt.Errorf("%w: knots only apply to bspline curves", ErrInvalidConfig)
	}

	if c.Sampling.Samples < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidConfig, c.Sampling.Samples)
	}
	if c.Sampling.TMax <= c.Sampling.TMin {
		return fmt.Errorf("%w: empty parameter range [%g, %g]", ErrInvalidConfig, c.Sampling.TMin, c.Sampling.TMax)
	}
	if c.TransferFunction.Width < 0 {
		return fmt.Errorf("%w: negative lookup table width", ErrInvalidConfig)
	}

	if _, err := transfunc.FromDocument(c.TransferFunction); err != nil {
		return fmt.Errorf("%w: transfer function: %v", ErrInvalidConfig, err)
	}
	return nil
}
