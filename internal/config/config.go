package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Generator holds all configuration for ec2bgen.
type Generator struct {
	// Constant tables dumped from the client
	TablesPath string `yaml:"tables_path"`

	// Output
	OutputDir string `yaml:"output_dir"`
	SeedFile  string `yaml:"seed_file"`
	KeyFile   string `yaml:"key_file"`

	// Batch generation
	Count   int `yaml:"count"`
	Workers int `yaml:"workers"`

	// Seed makes runs reproducible (hex). Empty means crypto/rand.
	Seed string `yaml:"seed"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// DefaultGenerator returns Generator config with sensible defaults.
func DefaultGenerator() Generator {
	return Generator{
		TablesPath: "data/ec2b_tables.bin",
		OutputDir:  ".",
		SeedFile:   "Ec2bSeed.bin",
		KeyFile:    "Ec2bKey.bin",
		Count:      1,
		Workers:    runtime.NumCPU(),
		LogLevel:   "info",
	}
}

// LoadGenerator loads generator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadGenerator(path string) (Generator, error) {
	cfg := DefaultGenerator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports the first invalid setting.
func (g Generator) Validate() error {
	if g.TablesPath == "" {
		return errors.New("tables_path is required")
	}
	if g.SeedFile == "" || g.KeyFile == "" {
		return errors.New("seed_file and key_file are required")
	}
	if g.SeedFile == g.KeyFile {
		return fmt.Errorf("seed_file and key_file are both %q", g.SeedFile)
	}
	if g.Count < 1 {
		return fmt.Errorf("count %d: must be at least 1", g.Count)
	}
	if g.Workers < 1 {
		return fmt.Errorf("workers %d: must be at least 1", g.Workers)
	}
	if _, err := g.SeedBytes(); err != nil {
		return err
	}
	if _, err := g.Level(); err != nil {
		return err
	}
	return nil
}

// SeedBytes decodes Seed. It returns nil when no seed is configured.
func (g Generator) SeedBytes() ([]byte, error) {
	if g.Seed == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(g.Seed)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return b, nil
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (g Generator) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(g.LogLevel)); err != nil {
		return l, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
