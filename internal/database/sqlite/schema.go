package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
)

// checkInList matches CHECK (col IN ('a', 'b')) constraints, with or without
// quoted column names.
var checkInList = regexp.MustCompile("(?is)CHECK\\s*\\(\\s*[\"`\\[]?(\\w+)[\"`\\]]?\\s+IN\\s*\\(([^)]*)\\)\\s*\\)")

func (s *Adapter) ListTables(ctx context.Context) ([]string, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
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

// GetSchema returns the stored CREATE TABLE statements.
func (s *Adapter) GetSchema(ctx context.Context) (string, error) {
	db, err := s.handle()
	if err != nil {
		return "", err
	}

	rows, err := db.QueryContext(ctx,
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' AND sql IS NOT NULL ORDER BY name")
	if err != nil {
		return "", fmt.Errorf("failed to read schema: %w", err)
	}
	defer rows.Close()

	var stmts []string
	for rows.Next() {
		var stmt string
		if err := rows.Scan(&stmt); err != nil {
			return "", err
		}
		stmts = append(stmts, stmt+";")
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	return strings.Join(stmts, "\n\n"), nil
}

func (s *Adapter) GetColumns(ctx context.Context, tableName string) ([]types.Column, error) {
	if !common.IsValidIdentifier(tableName) {
		return nil, fmt.Errorf("invalid table name: %s", tableName)
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoteIdent(tableName)))
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", tableName, err)
	}
	defer rows.Close()

	var columns []types.Column
	for rows.Next() {
		var (
			cid          int
			column       types.Column
			notNull      int
			defaultValue sql.NullString
			pk           int
		)
		if err := rows.Scan(&cid, &column.Name, &column.Type, &notNull, &defaultValue, &pk); err != nil {
			return nil, err
		}
		column.PK = pk > 0
		columns = append(columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return columns, nil
	}

	enums, err := s.checkEnums(ctx, db, tableName)
	if err != nil {
		return nil, err
	}
	for i := range columns {
		if values, ok := enums[strings.ToLower(columns[i].Name)]; ok {
			columns[i].EnumValues = values
		}
	}
	return columns, nil
}

// checkEnums reads IN-list CHECK constraints from the table definition.
func (s *Adapter) checkEnums(ctx context.Context, db *sql.DB, tableName string) (map[string][]string, error) {
	var createSQL sql.NullString
	err := db.QueryRowContext(ctx,
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", tableName).Scan(&createSQL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read definition of %s: %w", tableName, err)
	}
	return parseCheckEnums(createSQL.String), nil
}

func parseCheckEnums(createSQL string) map[string][]string {
	enums := make(map[string][]string)
	for _, m := range checkInList.FindAllStringSubmatch(createSQL, -1) {
		if values := common.ParseQuotedList(m[2]); len(values) > 0 {
			enums[strings.ToLower(m[1])] = values
		}
	}
	return enums
}
