package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arvid-k/charsweep/internal/storage"
	"github.com/arvid-k/charsweep/internal/sweep"
)

const (
	DefaultLibDir      = "lib"
	DefaultModelBase   = "90nm_bulk"
	DefaultModelURL    = "http://ptm.asu.edu/modelcard/2006/90nm_bulk.pm"
	DefaultDevice      = "nmos"
	DefaultFormat      = "csv"
	DefaultPoolSize    = 6
	DefaultTemperature = 27.0
	DefaultVSS         = 0.0
	DefaultVDD         = 1.2
	DefaultDCStep      = 0.01
)

// Config is the single immutable configuration of a characterization
// run, constructed once at startup and passed explicitly to the
// planner, pool and serializer.
type Config struct {
	LibDir     string `yaml:"lib_dir"`
	ModelFile  string `yaml:"model_file"`
	ModelURL   string `yaml:"model_url"`
	Device     string `yaml:"device"`
	Format     string `yaml:"output_format"`
	OutputPath string `yaml:"output_path"`

	PoolSize    int           `yaml:"pool_size"`
	JobTimeout  time.Duration `yaml:"job_timeout"`
	Temperature float64       `yaml:"temperature"`

	VSS    float64 `yaml:"vss"`
	VDD    float64 `yaml:"vdd"`
	DCStep float64 `yaml:"dc_step"`

	Bulk   sweep.StepRange `yaml:"bulk"`
	Length sweep.LinRange  `yaml:"length"`
	Width  sweep.LinRange  `yaml:"width"`
}

func DefaultConfig() *Config {
	return &Config{
		LibDir:      DefaultLibDir,
		ModelFile:   DefaultModelBase + ".lib",
		ModelURL:    DefaultModelURL,
		Device:      DefaultDevice,
		Format:      DefaultFormat,
		OutputPath:  DefaultModelBase + ".csv",
		PoolSize:    DefaultPoolSize,
		Temperature: DefaultTemperature,
		VSS:         DefaultVSS,
		VDD:         DefaultVDD,
		DCStep:      DefaultDCStep,
		Bulk:        sweep.StepRange{Start: 0.0, Stop: -1.0, Step: -0.1},
		Length:      sweep.LinRange{Min: 150e-9, Max: 10e-6, Count: 10},
		Width:       sweep.LinRange{Min: 1e-6, Max: 75e-6, Count: 10},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything that must hold before the first job is
// dispatched. All failures here are configuration errors.
func (c *Config) Validate() error {
	if c.Device != "nmos" && c.Device != "pmos" {
		return fmt.Errorf("device %q: %w", c.Device, ErrBadPolarity)
	}
	if !storage.SupportedFormat(c.Format) {
		return fmt.Errorf("output format %q: %w", c.Format, storage.ErrUnsupportedFormat)
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("pool size must be positive, got %d", c.PoolSize)
	}
	if c.DCStep <= 0 {
		return fmt.Errorf("dc step must be positive, got %g", c.DCStep)
	}
	if c.VDD <= c.VSS {
		return fmt.Errorf("vdd %g must exceed vss %g", c.VDD, c.VSS)
	}
	if c.JobTimeout < 0 {
		return fmt.Errorf("job timeout must not be negative, got %s", c.JobTimeout)
	}
	// fail on empty sweep axes now rather than after pool start
	if _, err := sweep.Plan(c.Bulk, c.Length, c.Width); err != nil {
		return err
	}
	return nil
}
