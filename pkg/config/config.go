package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for sfdelta
type Config struct {
	Generate GenerateConfig `mapstructure:"generate"`
}

// GenerateConfig holds manifest generation options
type GenerateConfig struct {
	APIVersion  string `mapstructure:"api_version"`
	SourceDir   string `mapstructure:"source_dir"`
	OutputDir   string `mapstructure:"output_dir"`
	IgnoreFile  string `mapstructure:"ignore_file"`
	TypesFile   string `mapstructure:"types_file"`
	CopyWorkers int    `mapstructure:"copy_workers"`
}

var defaultConfig = Config{
	Generate: GenerateConfig{
		APIVersion:  "58.0",
		SourceDir:   "src",
		OutputDir:   "deploy",
		IgnoreFile:  ".forceignore",
		TypesFile:   "",
		CopyWorkers: 4,
	},
}

// LoadConfig loads configuration from various sources
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("generate.api_version", defaultConfig.Generate.APIVersion)
	v.SetDefault("generate.source_dir", defaultConfig.Generate.SourceDir)
	v.SetDefault("generate.output_dir", defaultConfig.Generate.OutputDir)
	v.SetDefault("generate.ignore_file", defaultConfig.Generate.IgnoreFile)
	v.SetDefault("generate.types_file", defaultConfig.Generate.TypesFile)
	v.SetDefault("generate.copy_workers", defaultConfig.Generate.CopyWorkers)

	// Configuration file search paths
	v.SetConfigName("sfdelta")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")

	// Environment variables
	v.SetEnvPrefix("SFDELTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; defaults apply when absent
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %v", err)
	}

	return &config, nil
}

// LoadProjectConfig loads configuration, then merges repo-local overrides
// from a dotted project file when one exists.
func LoadProjectConfig() (*Config, error) {
	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	projectConfigs := []string{
		".sfdelta.yaml",
		".sfdelta.yml",
		"sfdelta.yaml",
		"sfdelta.yml",
	}

	for _, configFile := range projectConfigs {
		if _, err := os.Stat(configFile); err == nil {
			v := viper.New()
			v.SetConfigFile(configFile)
			if err := v.ReadInConfig(); err != nil {
				continue
			}
			if err := v.Unmarshal(config); err != nil {
				continue
			}
			break
		}
	}

	return config, nil
}
