package common

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/seedly/internal/types"
)

// validIdentifier validates SQL identifiers (table/column names) to prevent SQL injection
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// quotedList matches the body of enum('a','b') and IN ('a', 'b') lists.
var quotedList = regexp.MustCompile(`'((?:[^']|'')*)'`)

var ErrClosed = errors.New("dialect is closed")

type QueryResult struct {
	Columns []string                 `json:"columns,omitempty"`
	Rows    []map[string]interface{} `json:"rows"`
	// Affected is set for statements and actions that do not return rows.
	Affected int64 `json:"affected,omitempty"`
}

func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

func ValidateIdentifiers(table string, columns []string) error {
	if !IsValidIdentifier(table) {
		return fmt.Errorf("invalid table name: %s", table)
	}
	for _, c := range columns {
		if !IsValidIdentifier(c) {
			return fmt.Errorf("invalid column name in table %s: %s", table, c)
		}
	}
	return nil
}

// CheckRows verifies every row lines up with the column list before any write.
func CheckRows(columns []string, rows [][]types.Value) error {
	for i, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(columns))
		}
	}
	return nil
}

// ParseQuotedList extracts the single-quoted literals of an enum or IN list.
func ParseQuotedList(s string) []string {
	var values []string
	for _, m := range quotedList.FindAllStringSubmatch(s, -1) {
		values = append(values, strings.ReplaceAll(m[1], "''", "'"))
	}
	return values
}

// NormalizeValue makes scanned driver values printable as JSON.
func NormalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return val
	}
}

func SortedUnion(lists ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range lists {
		for _, s := range l {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}

// RenderTable formats catalog columns as a CREATE TABLE block.
func RenderTable(name string, cols []types.Column) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "CREATE TABLE %s (\n", name)
	for i, c := range cols {
		fmt.Fprintf(&sb, "  %s %s", c.Name, c.Type)
		if c.PK {
			sb.WriteString(" PRIMARY KEY")
		}
		if i < len(cols)-1 {
			sb.WriteString(",")
		}
		if c.IsEnum() {
			fmt.Fprintf(&sb, " -- enum: %s", strings.Join(c.EnumValues, ", "))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(");")
	return sb.String()
}
