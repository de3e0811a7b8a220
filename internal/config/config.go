// Package config provides configuration management for the chart
// application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"astrochart/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Chart     ChartDefaults   `mapstructure:"chart"`
	Ephemeris EphemerisConfig `mapstructure:"ephemeris"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ChartDefaults holds the default astrological conventions applied when
// a request does not override them.
type ChartDefaults struct {
	HouseSystem      string `mapstructure:"house_system"` // placidus, whole-sign, campanus
	Zodiac           string `mapstructure:"zodiac"`       // tropical, lahiri-vedic
	Rulership        string `mapstructure:"rulership"`    // modern, traditional
	AllowDefaultTime bool   `mapstructure:"allow_default_time"`
	MinorAspects     bool   `mapstructure:"minor_aspects"`
}

// EphemerisConfig holds ephemeris data source configuration.
type EphemerisConfig struct {
	DBPath  string `mapstructure:"db_path"`
	Version string `mapstructure:"version"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/astrochart"
	}
	return filepath.Join(home, ".config", "astrochart")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if terr := createTemplateConfig(configDir); terr != nil {
				return terr
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("chart.house_system", string(models.Placidus))
	v.SetDefault("chart.zodiac", string(models.Tropical))
	v.SetDefault("chart.rulership", string(models.Modern))
	v.SetDefault("chart.allow_default_time", true)
	v.SetDefault("chart.minor_aspects", false)
	v.SetDefault("ephemeris.db_path", filepath.Join(DefaultConfigDir(), "ephemeris.db"))
	v.SetDefault("ephemeris.version", "snapshot-1")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ASTROCHART_EPHEMERIS_DB"); v != "" {
		cfg.Ephemeris.DBPath = v
	}
	if v := os.Getenv("ASTROCHART_EPHEMERIS_VERSION"); v != "" {
		cfg.Ephemeris.Version = v
	}
	if v := os.Getenv("ASTROCHART_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch models.HouseSystem(c.Chart.HouseSystem) {
	case models.Placidus, models.WholeSign, models.Campanus:
	default:
		return fmt.Errorf("invalid house_system: %s (must be 'placidus', 'whole-sign' or 'campanus')", c.Chart.HouseSystem)
	}

	switch models.ZodiacSystem(c.Chart.Zodiac) {
	case models.Tropical, models.LahiriVedic:
	default:
		return fmt.Errorf("invalid zodiac: %s (must be 'tropical' or 'lahiri-vedic')", c.Chart.Zodiac)
	}

	switch models.RulershipScheme(c.Chart.Rulership) {
	case models.Traditional, models.Modern:
	default:
		return fmt.Errorf("invalid rulership: %s (must be 'traditional' or 'modern')", c.Chart.Rulership)
	}

	if c.Ephemeris.Version == "" {
		return fmt.Errorf("ephemeris.version must not be empty")
	}

	return nil
}

// ChartConfig converts the configured defaults into an engine config.
func (c *Config) ChartConfig() models.ChartConfig {
	return models.ChartConfig{
		HouseSystem:      models.HouseSystem(c.Chart.HouseSystem),
		Zodiac:           models.ZodiacSystem(c.Chart.Zodiac),
		Rulership:        models.RulershipScheme(c.Chart.Rulership),
		AllowDefaultTime: c.Chart.AllowDefaultTime,
	}
}
