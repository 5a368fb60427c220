// Package config reads jobdash.yaml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/jobdash/internal/dashboard"
	"github.com/roach88/jobdash/internal/skills"
)

// DefaultFile is the config file looked up when --config is not given.
const DefaultFile = "jobdash.yaml"

// Default HTTP timeout in seconds.
const DefaultTimeoutSeconds = 30

// SkillsFile locates one skills table file.
type SkillsFile struct {
	Path      string `yaml:"path"`
	KeyColumn string `yaml:"key_column"`
	SkillType string `yaml:"skill_type"`
}

// Config is the decoded jobdash.yaml.
type Config struct {
	Source   string       `yaml:"source"`   // path, URL or sqlite:<path>
	Taxonomy string       `yaml:"taxonomy"` // empty uses the built-in tables
	Skills   []SkillsFile `yaml:"skills"`

	TopN struct {
		Titles    int `yaml:"titles"`
		Platforms int `yaml:"platforms"`
	} `yaml:"top_n"`

	Histogram struct {
		BinWidth float64 `yaml:"bin_width"`
	} `yaml:"histogram"`

	HTTP struct {
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"http"`
}

// Default returns a config with every default applied and no source.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// Load reads path. A missing file is an error; use LoadOptional for the
// default lookup.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional is Load, except a missing file yields Default().
func LoadOptional(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes YAML, rejecting unknown keys, then applies defaults and
// validates. An empty document is the default config.
func Parse(data []byte) (Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TopN.Titles == 0 {
		c.TopN.Titles = dashboard.DefaultTopTitles
	}
	if c.TopN.Platforms == 0 {
		c.TopN.Platforms = dashboard.DefaultTopPlatforms
	}
	if c.Histogram.BinWidth == 0 {
		c.Histogram.BinWidth = dashboard.DefaultBinWidth
	}
	if c.HTTP.TimeoutSeconds == 0 {
		c.HTTP.TimeoutSeconds = DefaultTimeoutSeconds
	}
	for i := range c.Skills {
		if c.Skills[i].SkillType == "" {
			c.Skills[i].SkillType = "Skills"
		}
	}
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []string
	if c.TopN.Titles < 0 {
		errs = append(errs, fmt.Sprintf("top_n.titles must be positive, got %d", c.TopN.Titles))
	}
	if c.TopN.Platforms < 0 {
		errs = append(errs, fmt.Sprintf("top_n.platforms must be positive, got %d", c.TopN.Platforms))
	}
	if c.Histogram.BinWidth < 0 {
		errs = append(errs, fmt.Sprintf("histogram.bin_width must be positive, got %v", c.Histogram.BinWidth))
	}
	if c.HTTP.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Sprintf("http.timeout_seconds must be positive, got %d", c.HTTP.TimeoutSeconds))
	}
	for i, s := range c.Skills {
		if strings.TrimSpace(s.Path) == "" {
			errs = append(errs, fmt.Sprintf("skills[%d].path is required", i))
		}
		if strings.TrimSpace(s.KeyColumn) == "" {
			errs = append(errs, fmt.Sprintf("skills[%d].key_column is required", i))
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Timeout returns the HTTP timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}

// Settings returns the dashboard panel sizes.
func (c Config) Settings() dashboard.Settings {
	return dashboard.Settings{
		TopTitles:    c.TopN.Titles,
		TopPlatforms: c.TopN.Platforms,
		BinWidth:     c.Histogram.BinWidth,
	}
}

// SkillSpecs returns the skills files in load order.
func (c Config) SkillSpecs() []skills.Spec {
	out := make([]skills.Spec, len(c.Skills))
	for i, s := range c.Skills {
		out[i] = skills.Spec{Path: s.Path, KeyColumn: s.KeyColumn, SkillType: s.SkillType}
	}
	return out
}
