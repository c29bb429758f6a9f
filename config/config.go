package config

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	KeyOutputPath   = "paths.output_path"
	KeyNewFilesPath = "paths.new_files_path"
	KeyOldFilesPath = "paths.old_files_path"
	KeyStatsPath    = "paths.stats_path"
	KeyLogLevel     = "logging.level"
)

type Config struct {
	Paths   PathsConfig   `mapstructure:"paths" validate:"required"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type PathsConfig struct {
	OutputPath   string `mapstructure:"output_path" validate:"required"`
	NewFilesPath string `mapstructure:"new_files_path" validate:"required"`
	OldFilesPath string `mapstructure:"old_files_path" validate:"required"`
	StatsPath    string `mapstructure:"stats_path" validate:"required"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# prodedup configuration
paths:
  # Directory where filtered output files are written.
  output_path: "./output"
  # Directory holding newly received export files.
  new_files_path: "./input/new"
  # Directory holding previously processed export files.
  old_files_path: "./input/old"
  # Run summary file (.csv or .xlsx).
  stats_path: "./stats/stats.csv"

logging:
  level: "info"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateLogLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyStatsPath, "./stats/stats.csv")
	v.SetDefault(KeyLogLevel, "info")
}

func validateLogLevel(level string) error {
	if _, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level))); err != nil {
		return fmt.Errorf("validation failed: logging.level %q is not a valid level", level)
	}
	return nil
}
