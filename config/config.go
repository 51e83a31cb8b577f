package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rotaplan/rotaplan/core/metrics"
	"github.com/rotaplan/rotaplan/core/roster"
	"github.com/rotaplan/rotaplan/infra/mqtt"
)

// Config is the root configuration of the rotaplan service.
type Config struct {
	Roster  RosterConfig   `json:"roster"`
	Solver  roster.Config  `json:"solver"`
	Metrics metrics.Config `json:"metrics"`
	Notify  NotifyConfig   `json:"notify"`
	Export  ExportConfig   `json:"export"`
}

// RosterConfig locates the roster input file.
type RosterConfig struct {
	// Path is the CSV month-grid file holding availabilities.
	Path string `json:"path"`
}

// Validate checks mandatory fields.
func (c RosterConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("roster path is required")
	}
	return nil
}

// NotifyConfig enables publishing committed assignments over MQTT.
type NotifyConfig struct {
	Enabled bool        `json:"enabled"`
	MQTT    mqtt.Config `json:"mqtt"`
}

// ExportConfig selects the calendar output format and destination.
type ExportConfig struct {
	// Format is one of "table", "csv" or "json".
	Format string `json:"format"`
	// Output is the destination file; empty or "-" means stdout.
	Output string `json:"output"`
}

// SetDefaults applies sane defaults.
func (c *ExportConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "table"
	}
}

// Validate checks that the format is supported.
func (c ExportConfig) Validate() error {
	switch c.Format {
	case "table", "csv", "json":
		return nil
	default:
		return fmt.Errorf("unknown export format %s", c.Format)
	}
}

// Load reads the configuration from a JSON or YAML file, applying
// ROTA_-prefixed environment overrides on top.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("ROTA_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "rota_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Solver.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Export.SetDefaults()
	if err := cfg.Roster.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Export.Validate(); err != nil {
		return nil, err
	}
	if cfg.Notify.Enabled {
		cfg.Notify.MQTT.SetDefaults()
		if err := cfg.Notify.MQTT.Validate(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}
