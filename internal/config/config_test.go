package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Generator.Provider != ProviderGenAI {
		t.Errorf("Expected provider to be '%s', got '%s'", ProviderGenAI, cfg.Generator.Provider)
	}
	if cfg.Generator.Model != DefaultModel {
		t.Errorf("Expected model to be '%s', got '%s'", DefaultModel, cfg.Generator.Model)
	}
	if cfg.Generator.APIKeyEnv != DefaultAPIKeyEnv {
		t.Errorf("Expected api_key_env to be '%s', got '%s'", DefaultAPIKeyEnv, cfg.Generator.APIKeyEnv)
	}
	if !cfg.Generator.Cache {
		t.Error("Expected cache to default to true")
	}
	if cfg.Seed.Concurrency != 1 {
		t.Errorf("Expected concurrency to be 1, got %d", cfg.Seed.Concurrency)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected log level to be 'info', got '%s'", cfg.Log.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "seedly.config.json")
	content := `{
		"database": {"type": "mongodb", "uri": "mongodb://localhost:27017", "database": "shop", "model_path": "./models"},
		"generator": {"provider": "faker", "cache": false, "seed": 42},
		"seed": {"concurrency": 4}
	}`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Type != "mongodb" || cfg.Database.ModelPath != "./models" {
		t.Errorf("Unexpected database config: %+v", cfg.Database)
	}
	if cfg.Generator.Provider != ProviderFaker {
		t.Errorf("Expected provider to be 'faker', got '%s'", cfg.Generator.Provider)
	}
	if cfg.Generator.Cache {
		t.Error("Expected cache to stay disabled")
	}
	if cfg.Generator.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.Generator.Seed)
	}
	if cfg.Seed.Concurrency != 4 {
		t.Errorf("Expected concurrency 4, got %d", cfg.Seed.Concurrency)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected config to be valid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{Generator: GeneratorConfig{Provider: ProviderGenAI}}
	valid.Database.Type = "sqlite"
	valid.Database.File = "dev.db"
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	badProvider := valid
	badProvider.Generator.Provider = "openai"
	if err := badProvider.Validate(); err == nil {
		t.Error("Expected unsupported provider to fail validation")
	}

	noDatabase := valid
	noDatabase.Database.Type = ""
	if err := noDatabase.Validate(); err == nil {
		t.Error("Expected missing database type to fail validation")
	}
}

func TestGetAPIKey(t *testing.T) {
	cfg := Config{Generator: GeneratorConfig{APIKeyEnv: "SEEDLY_TEST_API_KEY"}}

	t.Setenv("SEEDLY_TEST_API_KEY", "")
	if _, err := cfg.GetAPIKey(); err == nil {
		t.Error("Expected error when key is unset")
	}

	t.Setenv("SEEDLY_TEST_API_KEY", "k-123")
	key, err := cfg.GetAPIKey()
	if err != nil || key != "k-123" {
		t.Errorf("Expected key 'k-123', got '%s' (%v)", key, err)
	}
}
