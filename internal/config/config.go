package config

import (
	"fmt"
	"os"

	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"github.com/spf13/viper"
)

const (
	ProviderGenAI = "genai"
	ProviderFaker = "faker"

	DefaultModel     = "gemini-2.0-flash"
	DefaultAPIKeyEnv = "GOOGLE_API_KEY"
)

var SupportedProviders = []string{ProviderGenAI, ProviderFaker}

type Config struct {
	Database  types.DialectConfig `json:"database" mapstructure:"database"`
	Generator GeneratorConfig     `json:"generator" mapstructure:"generator"`
	Seed      SeedConfig          `json:"seed" mapstructure:"seed"`
	Log       LogConfig           `json:"log" mapstructure:"log"`
}

type GeneratorConfig struct {
	Provider  string `json:"provider" mapstructure:"provider"`
	Model     string `json:"model" mapstructure:"model"`
	APIKeyEnv string `json:"api_key_env" mapstructure:"api_key_env"`
	Cache     bool   `json:"cache" mapstructure:"cache"`
	// Seed fixes the faker provider's randomness; 0 picks a random seed.
	Seed int64 `json:"seed,omitempty" mapstructure:"seed"`
}

type SeedConfig struct {
	Concurrency int `json:"concurrency" mapstructure:"concurrency"`
	// Timeout in seconds for a whole command; 0 disables it.
	Timeout int `json:"timeout" mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

func Load() (*Config, error) {
	var cfg Config

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Set defaults
	if cfg.Generator.Provider == "" {
		cfg.Generator.Provider = ProviderGenAI
	}
	if cfg.Generator.Model == "" {
		cfg.Generator.Model = DefaultModel
	}
	if cfg.Generator.APIKeyEnv == "" {
		cfg.Generator.APIKeyEnv = DefaultAPIKeyEnv
	}
	if !viper.IsSet("generator.cache") {
		cfg.Generator.Cache = true
	}
	if cfg.Seed.Concurrency <= 0 {
		cfg.Seed.Concurrency = 1
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}

	return &cfg, nil
}

func (c *Config) GetAPIKey() (string, error) {
	key := os.Getenv(c.Generator.APIKeyEnv)
	if key == "" {
		return "", fmt.Errorf("generation API key not found in environment variable %s", c.Generator.APIKeyEnv)
	}
	return key, nil
}

func (c *Config) Validate() error {
	supported := false
	for _, provider := range SupportedProviders {
		if c.Generator.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported generator provider: %s. Supported providers: %v", c.Generator.Provider, SupportedProviders)
	}

	if c.Database.Type == "" {
		return fmt.Errorf("database type is required. Supported dialects: %v", types.SupportedDialects)
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}

	if c.Seed.Timeout < 0 {
		return fmt.Errorf("seed timeout cannot be negative")
	}

	return nil
}
