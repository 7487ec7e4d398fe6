package generator

import (
	"context"
	"fmt"

	"github.com/Lumos-Labs-HQ/seedly/internal/config"
	"go.uber.org/zap"
)

// NewFromConfig builds the configured value provider.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ValueGenerator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Generator.Provider {
	case config.ProviderFaker:
		return NewFakerGenerator(cfg.Generator.Seed), nil
	case config.ProviderGenAI, "":
		apiKey, err := cfg.GetAPIKey()
		if err != nil {
			return nil, err
		}
		completer, err := NewGenAICompleter(ctx, apiKey, cfg.Generator.Model)
		if err != nil {
			return nil, err
		}
		opts := []Option{WithLogger(logger)}
		if !cfg.Generator.Cache {
			opts = append(opts, WithCache(nil))
		}
		return New(completer, opts...), nil
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", cfg.Generator.Provider)
	}
}
