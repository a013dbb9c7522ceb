package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Pipeline holds the numeric tunables of the validation pipeline. The
// defaults reproduce the reference behavior; a YAML tuning file can
// override individual values for experimentation.
type Pipeline struct {
	MaxDimension        int     `yaml:"maxDimension"`
	CannyLow            int     `yaml:"cannyLow"`
	CannyHigh           int     `yaml:"cannyHigh"`
	VoteThreshold       int     `yaml:"voteThreshold"`
	MinLineLength       int     `yaml:"minLineLength"`
	MaxLineGap          int     `yaml:"maxLineGap"`
	FetchTimeoutSeconds int     `yaml:"fetchTimeoutSeconds"`
	DefaultSensitivity  float64 `yaml:"defaultSensitivity"`
}

// Config is the process configuration, resolved once at startup.
type Config struct {
	Port     int
	LogLevel string
	Pipeline Pipeline
}

// DefaultPipeline returns the reference pipeline tuning.
func DefaultPipeline() Pipeline {
	return Pipeline{
		MaxDimension:        1920,
		CannyLow:            60,
		CannyHigh:           150,
		VoteThreshold:       60,
		MinLineLength:       80,
		MaxLineGap:          10,
		FetchTimeoutSeconds: 30,
		DefaultSensitivity:  5.0,
	}
}

// Load resolves configuration from the environment.
//
// A .env file is loaded first when present (missing files are ignored).
// Recognized variables:
//
//	PORT              listening port (default 8000)
//	LOG_LEVEL         zerolog level name (default "info")
//	VALIDATOR_CONFIG  path to a YAML pipeline tuning file
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     8000,
		LogLevel: "info",
		Pipeline: DefaultPipeline(),
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Port = p
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	if path := os.Getenv("VALIDATOR_CONFIG"); path != "" {
		if err := loadPipelineFile(path, &cfg.Pipeline); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// loadPipelineFile overlays tuning values from a YAML file onto p. Fields
// absent from the file keep their current values.
func loadPipelineFile(path string, p *Pipeline) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading pipeline config: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return fmt.Errorf("parsing pipeline config %s: %w", path, err)
	}
	return nil
}
