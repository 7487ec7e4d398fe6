package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertableColumns(t *testing.T) {
	cols := []Column{
		{Name: "id", Type: "INTEGER", PK: true},
		{Name: "name", Type: "TEXT"},
		{Name: "userId", Type: "INTEGER"},
		{Name: "GUID", Type: "TEXT"},
		{Name: "code", Type: "TEXT", PK: true},
		{Name: "email", Type: "TEXT"},
	}

	got := InsertableColumns(cols)
	assert.Equal(t, []string{"name", "email"}, ColumnNames(got))
}

func TestTranspose(t *testing.T) {
	matrix := [][]Value{
		{String("Ann"), String("Bob"), String("extra")},
		{String("a@x.io"), String("b@x.io")},
	}

	rows := Transpose(matrix, 2)
	require.Len(t, rows, 2)
	assert.Equal(t, []Value{String("Ann"), String("a@x.io")}, rows[0])
	assert.Equal(t, []Value{String("Bob"), String("b@x.io")}, rows[1])
}

func TestDialectConfigRoundTrip(t *testing.T) {
	configs := []DialectConfig{
		{Type: DialectSQLite, File: "./dev.db"},
		{Type: DialectPostgres, Host: "localhost", Port: 5432, User: "app", Password: "secret", Database: "shop"},
		{Type: DialectMySQL, Host: "127.0.0.1", Port: 3306, User: "root", Database: "shop"},
		{Type: DialectMongoDB, URI: "mongodb://localhost:27017", Database: "shop", ModelPath: "./models"},
	}

	for _, cfg := range configs {
		t.Run(cfg.Type, func(t *testing.T) {
			require.NoError(t, cfg.Validate())

			data, err := cfg.ToJSON()
			require.NoError(t, err)

			parsed, err := ParseDialectConfig(data)
			require.NoError(t, err)
			assert.Equal(t, cfg, parsed)
		})
	}
}

func TestDialectConfigJSONFieldNames(t *testing.T) {
	cfg, err := ParseDialectConfig(`{"type":"mongodb","uri":"mongodb://db","database":"app","singleSchemaPath":"schema.yaml"}`)
	require.NoError(t, err)
	assert.Equal(t, "schema.yaml", cfg.SingleSchemaPath)
	assert.NoError(t, cfg.Validate())
}

func TestDialectConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  DialectConfig
	}{
		{"sqlite without file", DialectConfig{Type: DialectSQLite}},
		{"sqlite with host", DialectConfig{Type: DialectSQLite, File: "a.db", Host: "localhost"}},
		{"postgres without port", DialectConfig{Type: DialectPostgres, Host: "localhost", User: "u", Database: "d"}},
		{"mysql with uri", DialectConfig{Type: DialectMySQL, Host: "localhost", Port: 3306, User: "u", Database: "d", URI: "mongodb://x"}},
		{"mongodb without database", DialectConfig{Type: DialectMongoDB, URI: "mongodb://x"}},
		{"missing type", DialectConfig{File: "a.db"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}

func TestValueFromJSON(t *testing.T) {
	var raw []any
	dec := json.NewDecoder(strings.NewReader(`["a", 3, 2.5, true, null, {"k": 1}, [1, 2]]`))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&raw))

	kinds := make([]Kind, len(raw))
	for i, r := range raw {
		kinds[i] = ValueFromJSON(r).Kind
	}
	assert.Equal(t, []Kind{KindString, KindInt, KindFloat, KindBool, KindNull, KindDocument, KindDocument}, kinds)
}

func TestValueCoerce(t *testing.T) {
	v := String("2024-03-01").Coerce("TIMESTAMP")
	require.Equal(t, KindDate, v.Kind)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), v.Time)

	assert.Equal(t, String("tomorrow"), String("tomorrow").Coerce("date"))
	assert.Equal(t, String("2024-03-01"), String("2024-03-01").Coerce("TEXT"))
}

func TestValueMarshalJSON(t *testing.T) {
	row := []Value{String("x"), Int(4), Null(), Bool(false), Document(map[string]any{"a": "b"})}
	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `["x", 4, null, false, {"a": "b"}]`, string(b))

	assert.Equal(t, `{"a":"b"}`, Document(map[string]any{"a": "b"}).SQLArg())
}

func TestDialectConfigAcceptsServiceHostNames(t *testing.T) {
	for _, host := range []string{"postgres_db", "db", "10.0.0.12", "mysql.internal.example.com"} {
		cfg := DialectConfig{Type: DialectPostgres, Host: host, Port: 5432, User: "u", Database: "d"}
		assert.NoError(t, cfg.Validate(), host)
	}

	cfg := DialectConfig{Type: DialectMySQL, Host: "", Port: 3306, User: "u", Database: "d"}
	assert.EqualError(t, cfg.Validate(), "invalid dialect config: mysql requires host")
}
