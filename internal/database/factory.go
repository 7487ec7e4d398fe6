package database

import (
	"context"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"github.com/Lumos-Labs-HQ/seedly/internal/database/mongodb"
	"github.com/Lumos-Labs-HQ/seedly/internal/database/mysql"
	"github.com/Lumos-Labs-HQ/seedly/internal/database/postgres"
	"github.com/Lumos-Labs-HQ/seedly/internal/database/sqlite"
	"github.com/Lumos-Labs-HQ/seedly/internal/modeldef"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"go.uber.org/zap"
)

var (
	_ Dialect = (*sqlite.Adapter)(nil)
	_ Dialect = (*postgres.Adapter)(nil)
	_ Dialect = (*mysql.Adapter)(nil)
	_ Dialect = (*mongodb.Adapter)(nil)
)

// NewDialect builds the dialect selected by cfg.Type.
func NewDialect(ctx context.Context, cfg types.DialectConfig, logger *zap.Logger) (Dialect, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case types.DialectSQLite:
		return wrap(sqlite.New(cfg.File))
	case types.DialectPostgres:
		return wrap(postgres.New(ctx, cfg))
	case types.DialectMySQL:
		return wrap(mysql.New(cfg))
	case types.DialectMongoDB:
		return mongodb.New(cfg,
			mongodb.WithLogger(logger.Named("mongodb")),
			mongodb.WithLoader(modeldef.NewLoader(nil)),
		), nil
	default:
		return nil, &common.UnsupportedDialectError{Type: cfg.Type}
	}
}

// wrap keeps a failed constructor from returning a typed nil Dialect.
func wrap[T Dialect](d T, err error) (Dialect, error) {
	if err != nil {
		return nil, err
	}
	return d, nil
}
