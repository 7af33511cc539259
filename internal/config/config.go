// Package config loads the tool configuration (viper), the persisted state file and build
// definition files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "ARTIFACT_SCORER"

type AppConfig struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Paths  PathsConfig  `mapstructure:"paths"`
	Enka   EnkaConfig   `mapstructure:"enka"`
}

type LoggerConfig struct {
	// Level is one of debug, info, warn, warning, error.
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// PathsConfig holds file locations; relative paths are resolved against the app root.
type PathsConfig struct {
	Catalog string `mapstructure:"catalog"`
	State   string `mapstructure:"state"`
	Builds  string `mapstructure:"builds"`
	Good    string `mapstructure:"good"`
	Rules   string `mapstructure:"rules"`
	OutDir  string `mapstructure:"out_dir"`
}

type EnkaConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

func (c *AppConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}
	if err := c.Paths.Validate(); err != nil {
		return err
	}
	if err := c.Enka.Validate(); err != nil {
		return err
	}
	return nil
}

func (l *LoggerConfig) Validate() error {
	valid := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !valid[strings.ToLower(l.Level)] {
		return fmt.Errorf("logger.level: unsupported level '%s'", l.Level)
	}
	if l.MaxSizeMB < 0 || l.MaxBackups < 0 {
		return errors.New("logger: max_size_mb and max_backups must not be negative")
	}
	return nil
}

func (p *PathsConfig) Validate() error {
	if strings.TrimSpace(p.Catalog) == "" {
		return errors.New("paths.catalog: must be specified")
	}
	if strings.TrimSpace(p.State) == "" {
		return errors.New("paths.state: must be specified")
	}
	if strings.TrimSpace(p.OutDir) == "" {
		return errors.New("paths.out_dir: must be specified")
	}
	return nil
}

func (e *EnkaConfig) Validate() error {
	if !strings.HasPrefix(e.BaseURL, "http://") && !strings.HasPrefix(e.BaseURL, "https://") {
		return fmt.Errorf("enka.base_url: must be an http(s) url, got %q", e.BaseURL)
	}
	if e.Timeout <= 0 {
		return errors.New("enka.timeout: must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size_mb", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("paths.catalog", "input/artifact_scorer/catalog.yaml")
	v.SetDefault("paths.state", "input/artifact_scorer/state.yaml")
	v.SetDefault("paths.builds", "input/artifact_scorer/builds.yaml")
	v.SetDefault("paths.good", "input/artifact_scorer/good.json")
	v.SetDefault("paths.rules", "")
	v.SetDefault("paths.out_dir", "output/artifact_scorer")
	v.SetDefault("enka.base_url", "https://enka.network")
	v.SetDefault("enka.user_agent", "gcsim-rostering artifact_scorer")
	v.SetDefault("enka.timeout", 25*time.Second)
}

// LoadConfig reads the yaml config at configPath. A missing file yields the defaults.
// Environment variables ARTIFACT_SCORER_<SECTION>_<KEY> override both.
func LoadConfig(configPath string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config file: %w", err)
		}
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}
