package common

import (
	"testing"
	"time"

	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestValidateIdentifiers(t *testing.T) {
	assert.NoError(t, ValidateIdentifiers("users", []string{"name", "_email2"}))
	assert.Error(t, ValidateIdentifiers("users; DROP TABLE x", nil))
	assert.Error(t, ValidateIdentifiers("users", []string{"2fast"}))
}

func TestCheckRows(t *testing.T) {
	cols := []string{"a", "b"}
	assert.NoError(t, CheckRows(cols, [][]types.Value{{types.Int(1), types.Null()}}))
	assert.EqualError(t, CheckRows(cols, [][]types.Value{{types.Int(1)}}), "row 0 has 1 values, expected 2")
}

func TestParseQuotedList(t *testing.T) {
	assert.Equal(t, []string{"pending", "paid", "it's"}, ParseQuotedList(`enum('pending','paid','it''s')`))
	assert.Nil(t, ParseQuotedList("varchar(20)"))
}

func TestNormalizeValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "abc", NormalizeValue([]byte("abc")))
	assert.Equal(t, "2024-03-01T12:00:00Z", NormalizeValue(ts))
	assert.Equal(t, int64(4), NormalizeValue(int64(4)))
}

func TestSortedUnion(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedUnion([]string{"c", "a"}, []string{"b", "a"}))
	assert.Nil(t, SortedUnion())
}

func TestRenderTable(t *testing.T) {
	out := RenderTable("orders", []types.Column{
		{Name: "id", Type: "integer", PK: true},
		{Name: "status", Type: "text", EnumValues: []string{"new", "done"}},
	})
	assert.Equal(t, "CREATE TABLE orders (\n"+
		"  id integer PRIMARY KEY,\n"+
		"  status text -- enum: new, done\n"+
		");", out)
}
