package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvAPIKey is the environment variable holding the OpenAI credential.
// The key never goes into the config file.
const EnvAPIKey = "OPENAI_API_KEY"

// Config holds application configuration.
type Config struct {
	Database struct {
		ConnectionString string `yaml:"connection_string"`
	} `yaml:"database"`
	OpenAI struct {
		BaseURL        string `yaml:"base_url"`
		EmbeddingModel string `yaml:"embedding_model"`
		ChatModel      string `yaml:"chat_model"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"openai"`
	Processing struct {
		ChunkSize      int     `yaml:"chunk_size"`
		ChunkOverlap   int     `yaml:"chunk_overlap"`
		EmbedBatchSize int     `yaml:"embed_batch_size"`
		MatchThreshold float64 `yaml:"match_threshold"`
		MatchCount     int     `yaml:"match_count"`
	} `yaml:"processing"`
}

// Load loads configuration from ~/.docquery/config.yaml, falling back to
// defaults when the file does not exist. A .env file in the working
// directory is loaded first so OPENAI_API_KEY can live there.
func Load() (*Config, error) {
	// Missing .env is fine; the key may already be in the environment.
	_ = godotenv.Load()

	cfg := Default()

	configPath := filepath.Join(os.Getenv("HOME"), ".docquery", "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to ~/.docquery/config.yaml.
func (c *Config) Save() error {
	configDir := filepath.Join(os.Getenv("HOME"), ".docquery")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(configDir, "config.yaml"), data, 0o644)
}

// APIKey returns the OpenAI credential from the environment.
func (c *Config) APIKey() string {
	return os.Getenv(EnvAPIKey)
}

// Default returns default configuration.
func Default() *Config {
	cfg := &Config{}

	cfg.Database.ConnectionString = "postgres://postgres@localhost/docquery?sslmode=disable"
	cfg.OpenAI.BaseURL = "https://api.openai.com/v1"
	cfg.OpenAI.EmbeddingModel = "text-embedding-3-small"
	cfg.OpenAI.ChatModel = "gpt-4o-mini"
	cfg.OpenAI.TimeoutSeconds = 30
	cfg.Processing.ChunkSize = 1000
	cfg.Processing.ChunkOverlap = 200
	cfg.Processing.EmbedBatchSize = 20
	cfg.Processing.MatchThreshold = 0.3
	cfg.Processing.MatchCount = 5

	return cfg
}
