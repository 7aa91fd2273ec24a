package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"` // "postgres" or "memory"
		URL    string `yaml:"url"`
	} `yaml:"database"`
	Extractor struct {
		Provider          string `yaml:"provider"` // "mock" or "openai"
		APIKey            string `yaml:"api_key"`
		BaseURL           string `yaml:"base_url"`
		Model             string `yaml:"model"`
		TimeoutSeconds    int64  `yaml:"timeout_seconds"`
		DefaultConfidence int    `yaml:"default_confidence"`
	} `yaml:"extractor"`
	Seed struct {
		DemoData bool `yaml:"demo_data"`
	} `yaml:"seed"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Set defaults
	if config.Server.Port == "" {
		config.Server.Port = ":8080"
	}

	if config.Database.Driver == "" {
		config.Database.Driver = "postgres"
	}

	if config.Extractor.Provider == "" {
		config.Extractor.Provider = "mock"
	}

	if config.Extractor.Model == "" {
		config.Extractor.Model = "gpt-4o-mini"
	}

	if config.Extractor.TimeoutSeconds == 0 {
		config.Extractor.TimeoutSeconds = 20
	}

	if config.Extractor.DefaultConfidence == 0 {
		config.Extractor.DefaultConfidence = 90
	}

	// Expand environment variables in secrets
	config.Database.URL = os.ExpandEnv(config.Database.URL)
	config.Extractor.APIKey = os.ExpandEnv(config.Extractor.APIKey)

	return config, nil
}
