package mysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
)

func (m *Adapter) ListTables(ctx context.Context) ([]string, error) {
	db, err := m.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = DATABASE() AND table_type = 'BASE TABLE'
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

func (m *Adapter) GetSchema(ctx context.Context) (string, error) {
	db, err := m.handle()
	if err != nil {
		return "", err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT c.table_name, c.column_name, c.column_type, c.column_key
		FROM information_schema.columns c
		JOIN information_schema.tables t
			ON t.table_schema = c.table_schema AND t.table_name = c.table_name
		WHERE c.table_schema = DATABASE() AND t.table_type = 'BASE TABLE'
		ORDER BY c.table_name, c.ordinal_position
	`)
	if err != nil {
		return "", fmt.Errorf("failed to read schema: %w", err)
	}
	defer rows.Close()

	var order []string
	tables := make(map[string][]types.Column)
	for rows.Next() {
		var tableName, name, columnType, key string
		if err := rows.Scan(&tableName, &name, &columnType, &key); err != nil {
			return "", err
		}
		if _, ok := tables[tableName]; !ok {
			order = append(order, tableName)
		}
		tables[tableName] = append(tables[tableName], newColumn(name, columnType, key))
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	blocks := make([]string, len(order))
	for i, name := range order {
		blocks[i] = common.RenderTable(name, tables[name])
	}
	return strings.Join(blocks, "\n\n"), nil
}

func (m *Adapter) GetColumns(ctx context.Context, tableName string) ([]types.Column, error) {
	if !common.IsValidIdentifier(tableName) {
		return nil, fmt.Errorf("invalid table name: %s", tableName)
	}
	db, err := m.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT column_name, column_type, column_key
		FROM information_schema.columns
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY ordinal_position
	`, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", tableName, err)
	}
	defer rows.Close()

	var columns []types.Column
	for rows.Next() {
		var name, columnType, key string
		if err := rows.Scan(&name, &columnType, &key); err != nil {
			return nil, err
		}
		columns = append(columns, newColumn(name, columnType, key))
	}
	return columns, rows.Err()
}

func newColumn(name, columnType, key string) types.Column {
	return types.Column{
		Name:       name,
		Type:       columnType,
		PK:         key == "PRI",
		EnumValues: extractEnumValues(columnType),
	}
}

func extractEnumValues(columnType string) []string {
	if !strings.HasPrefix(strings.ToLower(columnType), "enum(") {
		return nil
	}
	return common.ParseQuotedList(columnType)
}
