package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	// ContentDir is the base directory of the content store. Empty means
	// a "pensvm" directory under the platform user config dir.
	ContentDir string `yaml:"content_dir" env:"PENSVM_CONTENT_DIR"`
	// ExportDir receives generated EPUB files.
	ExportDir string `yaml:"export_dir" env:"PENSVM_EXPORT_DIR"`
	// MarginRatio is the fraction of a page image's width cropped off as
	// the margin strip.
	MarginRatio float64 `yaml:"margin_ratio" env:"PENSVM_MARGIN_RATIO" env-default:"0.25"`
	LogMode     string  `yaml:"log_mode" env:"PENSVM_LOG_MODE" env-default:"dev"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file path comes from PENSVM_CONFIG
// (fallback "./pensvm.yaml"); a missing fallback file is not an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("PENSVM_CONFIG")
	explicitPath := path != ""
	if !explicitPath {
		path = "./pensvm.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.ContentDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("config: resolve user config dir: %w", err)
		}
		c.ContentDir = filepath.Join(base, "pensvm")
	}
	if c.ExportDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("config: resolve home dir: %w", err)
		}
		c.ExportDir = filepath.Join(home, "Downloads")
	}
	if c.MarginRatio <= 0 || c.MarginRatio >= 1 {
		c.MarginRatio = 0.25
	}
	return nil
}
