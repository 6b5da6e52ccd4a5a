// Package config defines the parsed value that bounds the core's external
// configuration interface (spec §6): a YAML document is loaded and
// validated here. The pipeline driver does not take a *Config; a caller
// copies the scanner selection and per-analyzer settings it needs into
// pipeline.Options.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Project describes the scanned project's identity (spec §6 schema).
type Project struct {
	Name        string `yaml:"name" validate:"required"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// Repository is one source root to scan.
type Repository struct {
	Name string `yaml:"name" validate:"required"`
	Path string `yaml:"path" validate:"required"`
}

// Scanners configures analyzer selection (spec §6: mode/groups/enabled/config).
type Scanners struct {
	Mode    string                            `yaml:"mode" validate:"omitempty,oneof=AUTO GROUPS EXPLICIT"`
	Groups  []string                          `yaml:"groups"`
	Enabled []string                          `yaml:"enabled"`
	Config  map[string]map[string]interface{} `yaml:"config"`
}

// Generators is accepted and round-tripped for forward compatibility with
// the external renderer stage; the core does not interpret it (spec §6:
// "not core").
type Generators struct {
	Default string   `yaml:"default"`
	Enabled []string `yaml:"enabled"`
}

// Output is accepted and round-tripped; not consumed by the core.
type Output struct {
	Directory     string `yaml:"directory"`
	GenerateIndex bool   `yaml:"generateIndex"`
}

// Config is the top-level parsed configuration value (spec §6 schema).
type Config struct {
	Project      Project      `yaml:"project" validate:"required"`
	Repositories []Repository `yaml:"repositories" validate:"dive"`
	Scanners     Scanners     `yaml:"scanners"`
	Generators   Generators   `yaml:"generators"`
	Output       Output       `yaml:"output"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file at path, applying the
// default scanner mode (AUTO, spec §6) and validating required fields and
// repository name uniqueness.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse parses YAML content already in memory into a Config, applying
// defaults and validation the same way Load does.
func Parse(content []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if cfg.Scanners.Mode == "" {
		cfg.Scanners.Mode = "AUTO"
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	if err := checkUniqueRepositoryNames(cfg.Repositories); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func checkUniqueRepositoryNames(repos []Repository) error {
	seen := make(map[string]bool, len(repos))
	for _, r := range repos {
		if seen[r.Name] {
			return fmt.Errorf("config: duplicate repository name %q", r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}
