// Package config holds the run configuration of the bvhkin tool: joint weights for the distance
// metric, how many goroutines batch evaluation may use, and the log level.
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"

	"github.com/a8m/envsubst"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/wghou/BeeVeeH/logging"
)

// Config is the contents of a bvhkin YAML file. The zero value is a valid configuration.
type Config struct {
	// Weights maps joint names to the weight they carry in frame distances. Joints not listed keep
	// weight 1.
	Weights map[string]float64 `yaml:"weights" json:"weights,omitempty" jsonschema:"description=per joint distance weights"`
	// Parallelism bounds the goroutines used for batch distances. Zero means one per available core.
	Parallelism int           `yaml:"parallelism" json:"parallelism,omitempty" jsonschema:"minimum=0"`
	LogLevel    logging.Level `yaml:"log_level" json:"log_level,omitempty" jsonschema:"type=string,enum=debug,enum=info,enum=warn,enum=error"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Weights: map[string]float64{}, LogLevel: logging.INFO}
}

// Read reads a config from the given file. Environment variables in the file are expanded first.
func Read(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config %q", filePath)
	}
	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a config from r. originalPath is only used in error messages.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, "cannot decode config %q", originalPath)
	}
	if cfg.Weights == nil {
		cfg.Weights = map[string]float64{}
	}
	if err := cfg.Validate(originalPath); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every problem with the config at once.
func (c *Config) Validate(path string) error {
	var errs error
	if c.Parallelism < 0 {
		errs = multierr.Append(errs, newValidationError(path, errors.Errorf("parallelism must not be negative, got %d", c.Parallelism)))
	}
	if c.LogLevel < logging.DEBUG || c.LogLevel > logging.ERROR {
		errs = multierr.Append(errs, newValidationError(path, errors.Errorf("unknown log level %d", c.LogLevel)))
	}

	names := lo.Keys(c.Weights)
	sort.Strings(names)
	for _, name := range names {
		if weight := c.Weights[name]; weight <= 0 {
			errs = multierr.Append(errs, newValidationError(path, errors.Errorf("weight for %q must be positive, got %g", name, weight)))
		}
	}
	return errs
}

func newValidationError(path string, err error) error {
	return errors.Wrapf(err, "error validating %q", path)
}

// Schema returns the JSON schema of Config, for editors and linters of config files.
func Schema() ([]byte, error) {
	return json.MarshalIndent(jsonschema.Reflect(&Config{}), "", "  ")
}
