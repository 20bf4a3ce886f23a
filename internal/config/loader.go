package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	projectDir string
	configFile string
}

// NewLoader creates a configuration loader for the given project directory.
func NewLoader(projectDir string) Loader {
	return &loader{
		projectDir: projectDir,
	}
}

// NewFileLoader creates a loader that reads an explicit config file instead
// of searching the project directory. A missing explicit file is an error.
func NewFileLoader(projectDir, configFile string) Loader {
	return &loader{
		projectDir: projectDir,
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (CSIMPLE_*)
// 2. Config file (csimple.yaml in the project directory)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("csimple")
		v.SetConfigType("yaml")
		v.AddConfigPath(l.projectDir)
	}

	v.SetEnvPrefix("CSIMPLE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("output_dir")
	v.BindEnv("output_resource_dir")
	v.BindEnv("resource_dir")
	v.BindEnv("include_java")
	v.BindEnv("include_xml")
	v.BindEnv("include_test")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// a missing config file is fine, defaults + env vars apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("sources", defaults.Sources)
	v.SetDefault("test_sources", defaults.TestSources)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("output_resource_dir", defaults.OutputResourceDir)
	v.SetDefault("resource_dir", defaults.ResourceDir)
	v.SetDefault("include_java", defaults.IncludeJava)
	v.SetDefault("include_xml", defaults.IncludeXML)
	v.SetDefault("include_test", defaults.IncludeTests)
	v.SetDefault("includes", defaults.Includes)
	v.SetDefault("excludes", defaults.Excludes)
}

// LoadFromDir loads configuration for a specific project directory.
func LoadFromDir(projectDir string) (*Config, error) {
	return NewLoader(projectDir).Load()
}

// LoadFromFile loads configuration from an explicit config file.
func LoadFromFile(projectDir, configFile string) (*Config, error) {
	return NewFileLoader(projectDir, configFile).Load()
}
