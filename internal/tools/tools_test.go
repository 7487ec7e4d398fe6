package tools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/sqlite"
	"github.com/Lumos-Labs-HQ/seedly/internal/generator"
	"github.com/Lumos-Labs-HQ/seedly/internal/seeder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	d, err := sqlite.New(filepath.Join(t.TempDir(), "tools.db"))
	require.NoError(t, err)
	_, err = d.RunQuery(context.Background(), "CREATE TABLE products (id INTEGER PRIMARY KEY, title TEXT, price REAL)")
	require.NoError(t, err)

	s := seeder.New(d, generator.NewFakerGenerator(3))
	t.Cleanup(func() { s.Close() })
	return NewRegistry(s)
}

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	assert.Equal(t, []string{ToolSchema, ToolListTables, ToolQuery, ToolSeedTable}, names)

	b, err := json.Marshal(defs[3])
	require.NoError(t, err)
	assert.Contains(t, string(b), `"maximum":100`)
	assert.Contains(t, string(b), `"required":["tableName","count"]`)
}

func TestCallSeedTable(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	res := r.Call(ctx, ToolSeedTable, map[string]interface{}{"tableName": "products", "count": 4.0})
	require.False(t, res.IsError, res.Text())

	res = r.Call(ctx, ToolQuery, map[string]interface{}{"query": "SELECT COUNT(*) AS n FROM products"})
	require.False(t, res.IsError, res.Text())
	assert.JSONEq(t, `[{"n": 4}]`, res.Text())
}

func TestCallSeedTableValidation(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	for _, args := range []map[string]interface{}{
		{"tableName": "products", "count": 0},
		{"tableName": "products", "count": 101},
		{"count": 5},
		{"tableName": "products", "count": "five"},
	} {
		res := r.Call(ctx, ToolSeedTable, args)
		assert.True(t, res.IsError, args)
	}
}

func TestCallSchemaAndTables(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	assert.Contains(t, r.Call(ctx, ToolSchema, nil).Text(), "CREATE TABLE products")
	assert.Equal(t, "products", r.Call(ctx, ToolListTables, nil).Text())
}

func TestCallUnknownTool(t *testing.T) {
	r := newRegistry(t)

	res := r.Call(context.Background(), "drop-everything", nil)
	assert.True(t, res.IsError)
	assert.Equal(t, "Error: unknown tool: drop-everything", res.Text())
}
