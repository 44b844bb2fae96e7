// Package config provides YAML-based configuration loading for a generation run.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config is the top-level run configuration, loaded from starindex.yaml.
type Config struct {
	DumpDir          string        `yaml:"dump_dir"`
	TextMapDir       string        `yaml:"textmap_dir"`
	OutputDir        string        `yaml:"output_dir"`
	AssetRoot        string        `yaml:"asset_root"`
	Languages        []string      `yaml:"languages"`
	DisabledContacts []int         `yaml:"disabled_contacts"`
	StripRichText    bool          `yaml:"strip_rich_text"`
	Catalog          CatalogConfig `yaml:"catalog"`
	Schedule         string        `yaml:"schedule"`
	Log              LogConfig     `yaml:"log"`
}

// CatalogConfig holds connection settings for the optional relational catalog.
// An empty Driver disables publishing.
type CatalogConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Database string `yaml:"database"`
}

// Enabled reports whether a catalog driver is configured.
func (c CatalogConfig) Enabled() bool {
	return c.Driver != ""
}

// LogConfig selects logger verbosity and encoding.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ScheduleParser accepts standard 5-field cron expressions (minute, hour, dom, month, dow).
var ScheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Disabled returns the block-list as a set.
func (c *Config) Disabled() map[int]bool {
	set := make(map[int]bool, len(c.DisabledContacts))
	for _, id := range c.DisabledContacts {
		set[id] = true
	}
	return set
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.DumpDir == "" {
		c.DumpDir = "exceloutput"
	}
	if c.TextMapDir == "" {
		c.TextMapDir = "textmaps"
	}
	if c.OutputDir == "" {
		c.OutputDir = "index"
	}
	if c.AssetRoot == "" {
		c.AssetRoot = "."
	}
	for i, lang := range c.Languages {
		c.Languages[i] = strings.ToLower(strings.TrimSpace(lang))
	}
	c.Catalog.Driver = strings.ToLower(c.Catalog.Driver)
	if c.Catalog.Driver == "mysql" {
		if c.Catalog.Host == "" {
			c.Catalog.Host = "127.0.0.1"
		}
		if c.Catalog.Port == 0 {
			c.Catalog.Port = 3306
		}
		if c.Catalog.User == "" {
			c.Catalog.User = "root"
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	for i, lang := range c.Languages {
		if lang == "" {
			errs = append(errs, fmt.Sprintf("languages[%d] is empty", i))
		}
	}
	for i, id := range c.DisabledContacts {
		if id < 0 {
			errs = append(errs, fmt.Sprintf("disabled_contacts[%d] is negative", i))
		}
	}
	switch c.Catalog.Driver {
	case "":
	case "sqlite":
		if c.Catalog.Path == "" {
			errs = append(errs, "catalog.path is required for sqlite")
		}
	case "mysql":
		if c.Catalog.Database == "" {
			errs = append(errs, "catalog.database is required for mysql")
		}
	default:
		errs = append(errs, fmt.Sprintf("catalog.driver %q is not supported", c.Catalog.Driver))
	}
	if c.Schedule != "" {
		if _, err := ScheduleParser.Parse(c.Schedule); err != nil {
			errs = append(errs, fmt.Sprintf("schedule %q: %v", c.Schedule, err))
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level %q is not supported", c.Log.Level))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format %q is not supported", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
