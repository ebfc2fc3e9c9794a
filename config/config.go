package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v2"

	"github.com/revelaction/hmmtag/corpus"
	"github.com/revelaction/hmmtag/hmm"
)

// Config holds the settings shared by all hmmtag commands.
type Config struct {
	// SmoothingFloor is substituted for unseen transitions and emissions.
	SmoothingFloor float64 `yaml:"smoothing_floor"`

	// StartMode is "unigram" or "initial".
	StartMode string `yaml:"start_mode"`

	Separator     string `yaml:"separator"`
	BoundaryLabel string `yaml:"boundary_label"`

	Workers  int    `yaml:"workers"`
	LogLevel string `yaml:"log_level"`

	ModelPath  string `yaml:"model_path"`
	ModelName  string `yaml:"model_name"`
	CorpusPath string `yaml:"corpus_path"`

	Listen string `yaml:"listen"`
}

func Default() *Config {
	return &Config{
		SmoothingFloor: hmm.DefaultFloor,
		StartMode:      hmm.StartUnigram.String(),
		Separator:      corpus.DefaultSeparator,
		Workers:        runtime.NumCPU(),
		LogLevel:       "info",
		ModelName:      "default",
		Listen:         ":8080",
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SmoothingFloor <= 0 || c.SmoothingFloor >= 1 {
		return fmt.Errorf("smoothing_floor must be in (0, 1), got %g", c.SmoothingFloor)
	}

	if _, ok := hmm.ParseStartMode(c.StartMode); !ok {
		return fmt.Errorf("start_mode must be unigram or initial, got %q", c.StartMode)
	}

	if c.Separator == "" {
		return fmt.Errorf("separator must not be empty")
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}

	return nil
}

// Mode returns the parsed start mode.
func (c *Config) Mode() hmm.StartMode {
	mode, _ := hmm.ParseStartMode(c.StartMode)
	return mode
}

// CorpusOptions returns the corpus reader options of the config.
func (c *Config) CorpusOptions() corpus.Options {
	return corpus.Options{
		Separator: c.Separator,
		Boundary:  c.BoundaryLabel,
	}
}
