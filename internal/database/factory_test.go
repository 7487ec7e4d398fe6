package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDialectUnsupported(t *testing.T) {
	_, err := NewDialect(context.Background(), types.DialectConfig{Type: "oracle"}, nil)

	var unsupported *common.UnsupportedDialectError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "oracle", unsupported.Type)
}

func TestNewDialectInvalidConfig(t *testing.T) {
	_, err := NewDialect(context.Background(), types.DialectConfig{Type: types.DialectSQLite}, nil)
	assert.Error(t, err)
}

func TestNewDialectSelectsDriver(t *testing.T) {
	ctx := context.Background()
	configs := []types.DialectConfig{
		{Type: types.DialectSQLite, File: filepath.Join(t.TempDir(), "f.db")},
		{Type: types.DialectPostgres, Host: "127.0.0.1", Port: 5432, User: "u", Database: "d"},
		{Type: types.DialectMySQL, Host: "127.0.0.1", Port: 3306, User: "u", Database: "d"},
		{Type: types.DialectMongoDB, URI: "mongodb://127.0.0.1:27017", Database: "d"},
	}
	domains := map[string]types.Domain{
		types.DialectSQLite:   types.DomainSQL,
		types.DialectPostgres: types.DomainSQL,
		types.DialectMySQL:    types.DomainSQL,
		types.DialectMongoDB:  types.DomainNoSQL,
	}

	for _, cfg := range configs {
		t.Run(cfg.Type, func(t *testing.T) {
			d, err := NewDialect(ctx, cfg, nil)
			require.NoError(t, err)
			assert.Equal(t, cfg.Type, d.Name())
			assert.Equal(t, domains[cfg.Type], d.Domain())
			assert.NoError(t, d.Close())
		})
	}
}
