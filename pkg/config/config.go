// Package config provides configuration file support for helpdesk.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jvs-project/helpdesk/pkg/errclass"
	"github.com/jvs-project/helpdesk/pkg/logging"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = "helpdesk.yaml"

// DefaultTicketsFile is the ticket file used when nothing else is configured.
const DefaultTicketsFile = "tickets.csv"

// Config represents the helpdesk configuration.
type Config struct {
	TicketsFile string        `yaml:"tickets_file" json:"tickets_file"`
	HistoryFile string        `yaml:"history_file" json:"history_file"`
	Color       *bool         `yaml:"color,omitempty" json:"color,omitempty"`
	Logging     LoggingConfig `yaml:"logging" json:"logging"`
}

// LoggingConfig configures logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"` // empty means stderr
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		TicketsFile: DefaultTicketsFile,
		HistoryFile: filepath.Join(".helpdesk", "history.jsonl"),
		Logging: LoggingConfig{
			Level: string(logging.LevelWarn),
		},
	}
}

// Load reads configuration from path.
// Returns default config if the file doesn't exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.TicketsFile == "" {
		return errclass.ErrConfigInvalid.WithMessage("tickets_file must not be empty")
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return errclass.ErrConfigInvalid.WithMessage(err.Error())
	}
	return nil
}

// ColorEnabled reports whether colored output is wanted. Unset means yes.
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// Keys lists the settable keys in file order.
func Keys() []string {
	return []string{"tickets_file", "history_file", "color", "logging.level", "logging.file"}
}

// Set assigns value to key and validates the result. On error c is left
// unchanged.
func (c *Config) Set(key, value string) error {
	next := *c
	switch key {
	case "tickets_file":
		next.TicketsFile = value
	case "history_file":
		next.HistoryFile = value
	case "color":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return errclass.ErrConfigInvalid.WithMessagef("color must be true or false: %s", value)
		}
		next.Color = &on
	case "logging.level":
		next.Logging.Level = value
	case "logging.file":
		next.Logging.File = value
	default:
		return errclass.ErrConfigInvalid.WithMessagef("unknown key %q", key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

// Get returns the value of key as text.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "tickets_file":
		return c.TicketsFile, nil
	case "history_file":
		return c.HistoryFile, nil
	case "color":
		return strconv.FormatBool(c.ColorEnabled()), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.file":
		return c.Logging.File, nil
	}
	return "", errclass.ErrConfigInvalid.WithMessagef("unknown key %q", key)
}
