package database

import (
	"context"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
)

// Dialect is the contract every storage engine implements. A dialect is
// usable from construction until Close; operations after Close return
// common.ErrClosed.
type Dialect interface {
	Name() string
	Domain() types.Domain

	// Schema operations
	ListTables(ctx context.Context) ([]string, error)
	GetSchema(ctx context.Context) (string, error)
	GetColumns(ctx context.Context, table string) ([]types.Column, error)

	// Data operations
	RunQuery(ctx context.Context, query string) (*common.QueryResult, error)
	InsertRows(ctx context.Context, table string, columns []string, rows [][]types.Value) error

	Close() error
}
