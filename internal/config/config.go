// Package config holds the typed cfdl configuration and its on-disk form.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/steviee/cfdl/internal/cursetools"
	"github.com/steviee/cfdl/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Config represents the user configuration for cfdl.
type Config struct {
	API       APIConfig       `yaml:"api" mapstructure:"api"`
	Downloads DownloadsConfig `yaml:"downloads" mapstructure:"downloads"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Defaults  DefaultsConfig  `yaml:"defaults" mapstructure:"defaults"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// APIConfig holds curse.tools client settings.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url" mapstructure:"base_url" validate:"required,url"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=1s"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent" validate:"required"`
	RequestsPerMinute int           `yaml:"requests_per_minute" mapstructure:"requests_per_minute" validate:"gte=1,lte=6000"`
}

// DownloadsConfig holds where and how mod files are stored.
type DownloadsConfig struct {
	Directory string `yaml:"directory" mapstructure:"directory" validate:"required"`
	Progress  bool   `yaml:"progress" mapstructure:"progress"`
}

// CacheConfig holds in-process memo settings. A zero TTL disables the memo.
type CacheConfig struct {
	SlugTTL time.Duration `yaml:"slug_ttl" mapstructure:"slug_ttl" validate:"gte=0s"`
}

// DefaultsConfig holds values preselected in the dropdowns and CLI flags.
type DefaultsConfig struct {
	GameVersion string `yaml:"game_version" mapstructure:"game_version"`
	Loader      string `yaml:"loader" mapstructure:"loader" validate:"omitempty,oneof=Forge NeoForge Fabric Quilt Liteloader"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	File  string `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           cursetools.DefaultBaseURL,
			Timeout:           cursetools.DefaultTimeout,
			UserAgent:         cursetools.UserAgent,
			RequestsPerMinute: cursetools.DefaultRequestsPerMinute,
		},
		Downloads: DownloadsConfig{
			Directory: ".",
			Progress:  true,
		},
		Cache: CacheConfig{
			SlugTTL: 0,
		},
		Defaults: DefaultsConfig{
			GameVersion: "",
			Loader:      "",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  DefaultLogPath(),
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate validates the configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// LoadConfig reads and validates the YAML file at path. Keys missing from the
// file keep their default values.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig validates cfg and writes it to path atomically.
func SaveConfig(fs afero.Fs, path string, cfg *Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := fsutil.AtomicWriteBytes(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// SetDefaults registers every default value with v so that environment
// variables can override keys absent from the config file.
func SetDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.timeout", def.API.Timeout)
	v.SetDefault("api.user_agent", def.API.UserAgent)
	v.SetDefault("api.requests_per_minute", def.API.RequestsPerMinute)
	v.SetDefault("downloads.directory", def.Downloads.Directory)
	v.SetDefault("downloads.progress", def.Downloads.Progress)
	v.SetDefault("cache.slug_ttl", def.Cache.SlugTTL)
	v.SetDefault("defaults.game_version", def.Defaults.GameVersion)
	v.SetDefault("defaults.loader", def.Defaults.Loader)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.file", def.Logging.File)
}

// FromViper decodes the effective configuration held by v and validates it.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}

	return home + strings.TrimPrefix(path, "~"), nil
}
