package types

import "strings"

// Domain frames the generation prompt for relational columns or document fields.
type Domain string

const (
	DomainSQL   Domain = "sql"
	DomainNoSQL Domain = "nosql"
)

type Column struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	PK         bool     `json:"pk"`
	EnumValues []string `json:"enumValues,omitempty"`
}

func (c Column) IsEnum() bool {
	return len(c.EnumValues) > 0
}

// Insertable reports whether values for the column should be generated.
// Primary keys and anything that looks like an identifier are left to the
// database.
func (c Column) Insertable() bool {
	if c.PK {
		return false
	}
	return !strings.Contains(strings.ToLower(c.Name), "id")
}

func InsertableColumns(cols []Column) []Column {
	out := make([]Column, 0, len(cols))
	for _, c := range cols {
		if c.Insertable() {
			out = append(out, c)
		}
	}
	return out
}

func ColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// Transpose turns a column-major matrix into count rows. Every column must
// hold at least count values; extras are ignored.
func Transpose(matrix [][]Value, count int) [][]Value {
	rows := make([][]Value, count)
	for i := 0; i < count; i++ {
		row := make([]Value, len(matrix))
		for j, col := range matrix {
			row[j] = col[i]
		}
		rows[i] = row
	}
	return rows
}
