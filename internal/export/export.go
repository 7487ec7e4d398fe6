// Package export renders query results as JSON, CSV or a text table.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatTable = "table"
)

var Formats = []string{FormatJSON, FormatCSV, FormatTable}

// ParseRows decodes a JSON array of row objects. Headers are the union of
// all row keys in the order they first appear.
func ParseRows(text string) ([]string, []map[string]interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, nil, err
	}

	seen := make(map[string]struct{})
	var headers []string
	rows := []map[string]interface{}{}
	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, nil, err
		}
		row := make(map[string]interface{})
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to decode rows: %w", err)
			}
			key, ok := tok.(string)
			if !ok {
				return nil, nil, fmt.Errorf("failed to decode rows: unexpected %v", tok)
			}
			var v interface{}
			if err := dec.Decode(&v); err != nil {
				return nil, nil, fmt.Errorf("failed to decode rows: %w", err)
			}
			row[key] = v
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				headers = append(headers, key)
			}
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, nil, err
	}
	return headers, rows, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode rows: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("failed to decode rows: expected %q, got %v", want, tok)
	}
	return nil
}

// Write renders text in format. Text that is not a JSON row array, such as
// "3 rows affected", is written unchanged.
func Write(w io.Writer, format, text string) error {
	trimmed := strings.TrimSpace(text)
	if format == FormatJSON || format == "" || !strings.HasPrefix(trimmed, "[") {
		_, err := fmt.Fprintln(w, text)
		return err
	}

	headers, rows, err := ParseRows(trimmed)
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		return writeCSV(w, headers, rows)
	case FormatTable:
		return writeTable(w, headers, rows)
	default:
		return fmt.Errorf("unsupported format: %s. Supported formats: %v", format, Formats)
	}
}

func writeCSV(w io.Writer, headers []string, rows []map[string]interface{}) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(headers); err != nil {
		return err
	}
	for _, row := range rows {
		values := make([]string, len(headers))
		for i, header := range headers {
			if v, ok := row[header]; ok && v != nil {
				values[i] = formatValue(v)
			}
		}
		if err := writer.Write(values); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeTable(w io.Writer, headers []string, rows []map[string]interface{}) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "📊 No rows returned")
		return err
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, h := range headers {
			if n := len(formatValue(row[h])); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var buf bytes.Buffer
	border := func(left, mid, right string) {
		buf.WriteString(left)
		for i, width := range widths {
			buf.WriteString(strings.Repeat("─", width+2))
			if i < len(widths)-1 {
				buf.WriteString(mid)
			}
		}
		buf.WriteString(right + "\n")
	}
	line := func(cell func(i int) string) {
		buf.WriteString("│")
		for i, width := range widths {
			fmt.Fprintf(&buf, " %-*s │", width, cell(i))
		}
		buf.WriteString("\n")
	}

	border("┌", "┬", "┐")
	line(func(i int) string { return headers[i] })
	border("├", "┼", "┤")
	for _, row := range rows {
		line(func(i int) string { return formatValue(row[headers[i]]) })
	}
	border("└", "┴", "┘")

	_, err := w.Write(buf.Bytes())
	return err
}

func formatValue(val interface{}) string {
	switch v := val.(type) {
	case nil:
		return "NULL"
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", v)
	}
}
