package common

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"github.com/Masterminds/squirrel"
)

var (
	rowStatement = regexp.MustCompile(`(?i)^(select|with|pragma|show|explain|describe|desc|values|table)\b`)
	returning    = regexp.MustCompile(`(?i)\breturning\b`)
)

// stripLeadingComments drops whitespace, "--" line comments and "/* */"
// block comments in front of the first keyword.
func stripLeadingComments(query string) string {
	q := strings.TrimSpace(query)
	for {
		switch {
		case strings.HasPrefix(q, "--"):
			end := strings.IndexByte(q, '\n')
			if end < 0 {
				return ""
			}
			q = strings.TrimSpace(q[end+1:])
		case strings.HasPrefix(q, "/*"):
			end := strings.Index(q, "*/")
			if end < 0 {
				return ""
			}
			q = strings.TrimSpace(q[end+2:])
		default:
			return q
		}
	}
}

// ReturnsRows guesses whether a raw statement produces a result set.
func ReturnsRows(query string) bool {
	q := stripLeadingComments(query)
	if rowStatement.MatchString(q) {
		return true
	}
	return returning.MatchString(q)
}

// RunSQL executes a raw statement on a database/sql handle.
func RunSQL(ctx context.Context, db *sql.DB, query string) (*QueryResult, error) {
	if !ReturnsRows(query) {
		res, err := db.ExecContext(ctx, query)
		if err != nil {
			return nil, err
		}
		affected, _ := res.RowsAffected()
		return &QueryResult{Rows: []map[string]interface{}{}, Affected: affected}, nil
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return ScanRows(rows)
}

func ScanRows(rows *sql.Rows) (*QueryResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := &QueryResult{Columns: columns, Rows: []map[string]interface{}{}}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		ptrs := make([]interface{}, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			row[col] = NormalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}

// InsertTx writes rows in one transaction, one parameterized INSERT per row.
// quote is applied to the table and every column name.
func InsertTx(ctx context.Context, db *sql.DB, qb squirrel.StatementBuilderType, quote func(string) string,
	table string, columns []string, rows [][]types.Value) error {
	if len(rows) == 0 {
		return nil
	}
	if err := ValidateIdentifiers(table, columns); err != nil {
		return err
	}
	if err := CheckRows(columns, rows); err != nil {
		return err
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = quote(c)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		args := make([]interface{}, len(row))
		for i, v := range row {
			args[i] = v.SQLArg()
		}

		query, qargs, err := qb.Insert(quote(table)).Columns(quoted...).Values(args...).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, qargs...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
