package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/seedly/internal/config"
	"github.com/Lumos-Labs-HQ/seedly/internal/database"
	"github.com/Lumos-Labs-HQ/seedly/internal/generator"
	"github.com/Lumos-Labs-HQ/seedly/internal/logger"
	"github.com/Lumos-Labs-HQ/seedly/internal/seeder"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session holds everything a command needs to talk to one database.
type session struct {
	cfg    *config.Config
	log    *zap.Logger
	seeder *seeder.Seeder
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *session) Close() {
	if err := s.seeder.Close(); err != nil {
		s.log.Warn("failed to close database", zap.Error(err))
	}
	s.cancel()
	s.log.Sync()
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if raw, _ := cmd.Flags().GetString("dialect-json"); raw != "" {
		dc, err := types.ParseDialectConfig(raw)
		if err != nil {
			return nil, err
		}
		cfg.Database = dc
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession connects to the configured database. withGenerator is false
// for commands that never generate values, so they need no API key.
func openSession(cmd *cobra.Command, withGenerator bool, opts ...seeder.Option) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if cfg.Seed.Timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, time.Duration(cfg.Seed.Timeout)*time.Second)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}

	dialect, err := database.NewDialect(ctx, cfg.Database, log)
	if err != nil {
		cancel()
		return nil, err
	}

	var gen generator.ValueGenerator = generator.NewFakerGenerator(cfg.Generator.Seed)
	if withGenerator {
		gen, err = generator.NewFromConfig(ctx, cfg, log)
		if err != nil {
			dialect.Close()
			cancel()
			return nil, err
		}
	}

	opts = append([]seeder.Option{
		seeder.WithLogger(log),
		seeder.WithConcurrency(cfg.Seed.Concurrency),
	}, opts...)

	return &session{
		cfg:    cfg,
		log:    log,
		seeder: seeder.New(dialect, gen, opts...),
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// printResult writes a result to stdout, or returns it as an error so the
// process exits non-zero.
func printResult(res *seeder.Result) error {
	if res.IsError {
		return fmt.Errorf("%s", res.Text())
	}
	fmt.Println(res.Text())
	return nil
}

func printSuccess(res *seeder.Result) error {
	if res.IsError {
		return fmt.Errorf("%s", res.Text())
	}
	color.Green("✅ %s", res.Text())
	return nil
}
