package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fileutils/pkg/fileutils"
)

// DefaultPath is where the CLI looks for a configuration file.
const DefaultPath = "/etc/fileutils/config.yaml"

type DefaultsCfg struct {
	Verbose bool   `yaml:"verbose" json:"verbose"`
	Noop    bool   `yaml:"noop" json:"noop"`
	Mode    string `yaml:"mode" json:"mode"` // Octal directory mode for mkdir, e.g. "0750"
}

type LoggingCfg struct {
	Dir          string `yaml:"dir" json:"dir"`                     // Empty disables the log file
	RotationDays int    `yaml:"rotation_days" json:"rotation_days"` // Days to keep logs before rotation
}

type MetricsCfg struct {
	TextfilePath string `yaml:"textfile_path" json:"textfile_path"` // node_exporter textfile output, empty disables
}

type JournalCfg struct {
	DatabasePath string `yaml:"database_path" json:"database_path"` // SQLite operation history, empty disables
}

type SafetyCfg struct {
	Enabled        *bool    `yaml:"enabled" json:"enabled"` // Defaults to true
	AllowedRoots   []string `yaml:"allowed_roots" json:"allowed_roots"`
	ProtectedPaths []string `yaml:"protected_paths" json:"protected_paths"`
}

type Config struct {
	Defaults DefaultsCfg `yaml:"defaults" json:"defaults"`
	Logging  LoggingCfg  `yaml:"logging" json:"logging"`
	Metrics  MetricsCfg  `yaml:"metrics" json:"metrics"`
	Journal  JournalCfg  `yaml:"journal" json:"journal"`
	Safety   SafetyCfg   `yaml:"safety" json:"safety"`

	mode *os.FileMode
}

var (
	errInvalidMode = errors.New("defaults.mode must be an octal permission such as 0755")
	errInvalidPath = errors.New("path must be absolute")
	errNegativeAge = errors.New("rotation_days cannot be negative")
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.validateAndDefault(); err != nil {
		panic(err)
	}
	return cfg
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := decode(f)
	if err != nil {
		return nil, err
	}
	if err := cfg.validateAndDefault(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load, except that a missing file yields Default
// unless required is set.
func LoadOrDefault(path string, required bool) (*Config, error) {
	cfg, err := Load(path)
	if err != nil && !required && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

func (c *Config) validateAndDefault() error {
	if c.Defaults.Mode != "" {
		mode, err := fileutils.ParseMode(c.Defaults.Mode)
		if err != nil {
			return fmt.Errorf("%w: %q", errInvalidMode, c.Defaults.Mode)
		}
		c.mode = &mode
	}

	if c.Logging.RotationDays < 0 {
		return errNegativeAge
	}
	if c.Logging.RotationDays == 0 {
		c.Logging.RotationDays = 30 // Default: keep logs for 30 days
	}
	if c.Logging.Dir != "" {
		d, err := cleanAbsolute(c.Logging.Dir)
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = d
	}

	if c.Safety.Enabled == nil {
		enabled := true
		c.Safety.Enabled = &enabled
	}

	cleaned := make([]string, 0, len(c.Safety.AllowedRoots))
	for _, p := range c.Safety.AllowedRoots {
		cp, err := cleanAbsolute(p)
		if err != nil {
			return fmt.Errorf("safety.allowed_roots: %w", err)
		}
		cleaned = append(cleaned, cp)
	}
	c.Safety.AllowedRoots = cleaned

	return nil
}

func cleanAbsolute(p string) (string, error) {
	if p == "" {
		return "", errInvalidPath
	}
	cp := filepath.Clean(p)
	if !filepath.IsAbs(cp) {
		return "", fmt.Errorf("%w: %s", errInvalidPath, p)
	}
	return cp, nil
}

// SafetyEnabled reports whether removals go through the safety validator.
func (c *Config) SafetyEnabled() bool {
	return c.Safety.Enabled == nil || *c.Safety.Enabled
}

// Options converts the configured defaults into operation options.
func (c *Config) Options() []fileutils.Option {
	var opts []fileutils.Option
	if c.Defaults.Verbose {
		opts = append(opts, fileutils.WithVerbose())
	}
	if c.Defaults.Noop {
		opts = append(opts, fileutils.WithNoop())
	}
	if c.mode != nil {
		opts = append(opts, fileutils.WithMode(*c.mode))
	}
	return opts
}
