package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port string `toml:"port"`
	Mode string `toml:"mode"` // "debug" or "release"
}

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type EngineConfig struct {
	DefaultHorizonSteps int `toml:"default_horizon_steps"`
	DefaultMaxDepth     int `toml:"default_max_depth"`
}

type ExtractionConfig struct {
	Prompt string `toml:"prompt"`
}

type ConcurrencyConfig struct {
	BulkSimulate int `toml:"bulk_simulate"`
}

type Config struct {
	Server      ServerConfig      `toml:"server"`
	LLM         LLMConfig         `toml:"llm"`
	Memgraph    MemgraphConfig    `toml:"memgraph"`
	Engine      EngineConfig      `toml:"engine"`
	Extraction  ExtractionConfig  `toml:"extraction"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return &cfg, nil
}
