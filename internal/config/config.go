package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/itaetune/internal/tuning"
)

const (
	DefaultInput      = "Disturbance"
	DefaultController = "PI"
	DefaultK          = 1.0
	DefaultTheta      = 1.0
	DefaultTau        = 5.0
	DefaultFormat     = "panel"
	DefaultPrecision  = 5
	DefaultAddr       = ":8080"
)

var (
	ErrUnknownFormat = errors.New("config: unknown output format")
	ErrPrecision     = errors.New("config: precision must be between 0 and 15")
)

// Formats lists the accepted output formats. "panel" is the styled single
// result box; the rest are rendered by the report package.
var Formats = []string{"panel", "table", "json", "csv", "yaml"}

type Config struct {
	Input      string         `yaml:"input"`
	Controller string         `yaml:"controller"`
	Process    tuning.Process `yaml:"process"`
	Output     OutputConfig   `yaml:"output"`
	Server     ServerConfig   `yaml:"server"`
}

type OutputConfig struct {
	Format    string `yaml:"format"`
	Precision int    `yaml:"precision"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

func DefaultConfig() *Config {
	return &Config{
		Input:      DefaultInput,
		Controller: DefaultController,
		Process: tuning.Process{
			K:     DefaultK,
			Theta: DefaultTheta,
			Tau:   DefaultTau,
		},
		Output: OutputConfig{
			Format:    DefaultFormat,
			Precision: DefaultPrecision,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
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

// Types resolves the input and controller names, accepting the same
// spellings as the command line.
func (c *Config) Types() (tuning.InputType, tuning.ControllerType, error) {
	in, err := tuning.ParseInputType(c.Input)
	if err != nil {
		return 0, 0, err
	}
	ctrl, err := tuning.ParseControllerType(c.Controller)
	if err != nil {
		return 0, 0, err
	}
	return in, ctrl, nil
}

func (c *Config) Validate() error {
	if _, _, err := c.Types(); err != nil {
		return err
	}
	if err := c.Process.Validate(); err != nil {
		return err
	}
	return c.ValidateOutput()
}

// ValidateOutput checks only the rendering settings, for commands that take
// their processes from elsewhere.
func (c *Config) ValidateOutput() error {
	if !validFormat(c.Output.Format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, c.Output.Format)
	}
	if c.Output.Precision < 0 || c.Output.Precision > 15 {
		return fmt.Errorf("%w: %d", ErrPrecision, c.Output.Precision)
	}
	return nil
}

func validFormat(f string) bool {
	for _, v := range Formats {
		if v == f {
			return true
		}
	}
	return false
}
