package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
)

const columnsQuery = `
	SELECT c.relname,
		a.attname,
		format_type(a.atttypid, a.atttypmod),
		EXISTS (
			SELECT 1 FROM pg_constraint con
			WHERE con.conrelid = c.oid AND con.contype = 'p' AND a.attnum = ANY(con.conkey)
		),
		COALESCE(
			(SELECT array_agg(e.enumlabel::text ORDER BY e.enumsortorder) FROM pg_enum e WHERE e.enumtypid = a.atttypid),
			'{}'::text[]
		)
	FROM pg_attribute a
	JOIN pg_class c ON c.oid = a.attrelid
	JOIN pg_namespace n ON n.oid = c.relnamespace
	WHERE n.nspname = 'public' AND c.relkind = 'r' AND a.attnum > 0 AND NOT a.attisdropped`

func (p *Adapter) ListTables(ctx context.Context) ([]string, error) {
	pool, err := p.handle()
	if err != nil {
		return nil, err
	}

	rows, err := pool.Query(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return nil, err
		}
		tables = append(tables, tableName)
	}
	return tables, rows.Err()
}

func (p *Adapter) GetSchema(ctx context.Context) (string, error) {
	tables, order, err := p.columns(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to read schema: %w", err)
	}

	blocks := make([]string, len(order))
	for i, name := range order {
		blocks[i] = common.RenderTable(name, tables[name])
	}
	return strings.Join(blocks, "\n\n"), nil
}

func (p *Adapter) GetColumns(ctx context.Context, tableName string) ([]types.Column, error) {
	if !common.IsValidIdentifier(tableName) {
		return nil, fmt.Errorf("invalid table name: %s", tableName)
	}
	tables, _, err := p.columns(ctx, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", tableName, err)
	}
	return tables[tableName], nil
}

// columns reads catalog columns for one table, or every public table when
// tableName is empty.
func (p *Adapter) columns(ctx context.Context, tableName string) (map[string][]types.Column, []string, error) {
	pool, err := p.handle()
	if err != nil {
		return nil, nil, err
	}

	query := columnsQuery
	var args []interface{}
	if tableName != "" {
		query += " AND c.relname = $1"
		args = append(args, tableName)
	}
	query += " ORDER BY c.relname, a.attnum"

	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var order []string
	tables := make(map[string][]types.Column)
	for rows.Next() {
		var (
			relName string
			col     types.Column
			labels  []string
		)
		if err := rows.Scan(&relName, &col.Name, &col.Type, &col.PK, &labels); err != nil {
			return nil, nil, err
		}
		if len(labels) > 0 {
			col.EnumValues = labels
		}
		if _, ok := tables[relName]; !ok {
			order = append(order, relName)
		}
		tables[relName] = append(tables[relName], col)
	}
	return tables, order, rows.Err()
}
