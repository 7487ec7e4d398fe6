package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rowsJSON = `[
  {"id": 1, "name": "Ann", "tags": ["a", "b"]},
  {"id": 2, "name": null, "email": "bob@x.io"}
]`

func TestParseRowsKeepsColumnOrder(t *testing.T) {
	headers, rows, err := ParseRows(rowsJSON)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "tags", "email"}, headers)
	assert.Len(t, rows, 2)

	headers, _, err = ParseRows(`[{"zeta": 1, "alpha": 2}]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha"}, headers)
}

func TestParseRowsRejectsNonRows(t *testing.T) {
	for _, text := range []string{`{"id": 1}`, `[1, 2]`, `[{"id": 1}`} {
		_, _, err := ParseRows(text)
		assert.Error(t, err, text)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, rowsJSON))

	assert.Equal(t, "id,name,tags,email\n"+
		"1,Ann,\"[\"\"a\"\",\"\"b\"\"]\",\n"+
		"2,,,bob@x.io\n", buf.String())
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, `[{"id": 7, "name": "Cy"}]`))

	assert.Equal(t, "┌────┬──────┐\n"+
		"│ id │ name │\n"+
		"├────┼──────┤\n"+
		"│ 7  │ Cy   │\n"+
		"└────┴──────┘\n", buf.String())
}

func TestWritePassesThroughPlainText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatTable, "3 rows affected"))
	assert.Equal(t, "3 rows affected\n", buf.String())
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "xml", rowsJSON))
}
