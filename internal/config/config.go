package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"stacksort/internal/compress"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate error.
var ErrInvalid = errors.New("invalid config")

// DefaultSeed is the generator seed used when none is configured.
const DefaultSeed uint32 = 2043930778

// Config holds all stacksort configuration.
type Config struct {
	Compress CompressConfig `yaml:"compress"`
	Generate GenerateConfig `yaml:"generate"`
	Bench    BenchConfig    `yaml:"bench"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CompressConfig configures the log compressor.
type CompressConfig struct {
	Enabled  bool `yaml:"enabled"`
	MaxDepth int  `yaml:"max_depth"` // replacements up to MaxDepth+1 ops
	MaxLen   int  `yaml:"max_len"`   // look-ahead window
	Passes   int  `yaml:"passes"`
}

// GenerateConfig configures random input generation.
type GenerateConfig struct {
	Seed uint32 `yaml:"seed"`
	Size int    `yaml:"size"`
}

// BenchConfig configures the bench command.
type BenchConfig struct {
	Runs    int `yaml:"runs"`
	Workers int `yaml:"workers"`
	Size    int `yaml:"size"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	opts := compress.DefaultOptions()
	return &Config{
		Compress: CompressConfig{
			Enabled:  true,
			MaxDepth: opts.MaxDepth,
			MaxLen:   opts.MaxLen,
			Passes:   opts.Passes,
		},
		Generate: GenerateConfig{
			Seed: DefaultSeed,
			Size: 100,
		},
		Bench: BenchConfig{
			Runs:    20,
			Workers: 4,
			Size:    100,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides. Values that do
// not parse are ignored.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("STACKSORT_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 32); err == nil {
			c.Generate.Seed = uint32(seed)
		}
	}
	if v := os.Getenv("STACKSORT_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Compress.MaxDepth = n
		}
	}
	if v := os.Getenv("STACKSORT_MAX_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Compress.MaxLen = n
		}
	}
	if v := os.Getenv("STACKSORT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// CompressOptions returns the compressor bounds described by c.
func (c *Config) CompressOptions() compress.Options {
	return compress.Options{
		MaxDepth: c.Compress.MaxDepth,
		MaxLen:   c.Compress.MaxLen,
		Passes:   c.Compress.Passes,
	}
}

// ValidLevels lists the accepted logging levels.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// ValidFormats lists the accepted logging encodings.
var ValidFormats = []string{"json", "console"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Compress.MaxDepth < 0 {
		return fmt.Errorf("%w: compress.max_depth must be >= 0, got %d", ErrInvalid, c.Compress.MaxDepth)
	}
	if c.Compress.MaxLen < 1 {
		return fmt.Errorf("%w: compress.max_len must be >= 1, got %d", ErrInvalid, c.Compress.MaxLen)
	}
	if c.Compress.Passes < 1 {
		return fmt.Errorf("%w: compress.passes must be >= 1, got %d", ErrInvalid, c.Compress.Passes)
	}
	if c.Generate.Seed == 0 {
		return fmt.Errorf("%w: generate.seed must be non-zero", ErrInvalid)
	}
	if c.Generate.Size < 0 {
		return fmt.Errorf("%w: generate.size must be >= 0, got %d", ErrInvalid, c.Generate.Size)
	}
	if c.Bench.Runs < 1 || c.Bench.Workers < 1 || c.Bench.Size < 0 {
		return fmt.Errorf("%w: bench needs runs >= 1, workers >= 1, size >= 0 (got %d, %d, %d)",
			ErrInvalid, c.Bench.Runs, c.Bench.Workers, c.Bench.Size)
	}
	if !contains(ValidLevels, c.Logging.Level) {
		return fmt.Errorf("%w: logging.level %q (valid: %v)", ErrInvalid, c.Logging.Level, ValidLevels)
	}
	if !contains(ValidFormats, c.Logging.Format) {
		return fmt.Errorf("%w: logging.format %q (valid: %v)", ErrInvalid, c.Logging.Format, ValidFormats)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
