package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindDate
	KindDocument
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	case KindDocument:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a single generated scalar. Document holds nested objects or
// arrays and is only meaningful for document stores.
type Value struct {
	Kind Kind
	Str  string
	Int  int64
	Flt  float64
	Bool bool
	Time time.Time
	Doc  any
}

func Null() Value                { return Value{Kind: KindNull} }
func String(s string) Value      { return Value{Kind: KindString, Str: s} }
func Int(i int64) Value          { return Value{Kind: KindInt, Int: i} }
func Float(f float64) Value      { return Value{Kind: KindFloat, Flt: f} }
func Bool(b bool) Value          { return Value{Kind: KindBool, Bool: b} }
func Date(t time.Time) Value     { return Value{Kind: KindDate, Time: t} }
func Document(doc any) Value     { return Value{Kind: KindDocument, Doc: doc} }
func (v Value) IsNull() bool     { return v.Kind == KindNull }
func (v Value) IsString() bool   { return v.Kind == KindString }
func (v Value) IsDocument() bool { return v.Kind == KindDocument }

// ValueFromJSON converts a value produced by encoding/json (with or without
// UseNumber) into a Value.
func ValueFromJSON(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Null()
	case string:
		return String(x)
	case bool:
		return Bool(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return Int(i)
		}
		f, _ := x.Float64()
		return Float(f)
	case float64:
		if x == float64(int64(x)) {
			return Int(int64(x))
		}
		return Float(x)
	case int:
		return Int(int64(x))
	case int64:
		return Int(x)
	case map[string]any, []any:
		return Document(x)
	default:
		return String(fmt.Sprint(x))
	}
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

func isDateType(columnType string) bool {
	t := strings.ToLower(columnType)
	return strings.Contains(t, "date") || strings.Contains(t, "time")
}

// Coerce turns string values into dates when the column type names a date
// or time and the string parses. Everything else is returned unchanged.
func (v Value) Coerce(columnType string) Value {
	if v.Kind != KindString || !isDateType(columnType) {
		return v
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v.Str); err == nil {
			return Date(t)
		}
	}
	return v
}

// Native returns the value in the form database drivers accept as a bind
// argument.
func (v Value) Native() any {
	switch v.Kind {
	case KindString:
		return v.Str
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Flt
	case KindBool:
		return v.Bool
	case KindDate:
		return v.Time
	case KindDocument:
		return v.Doc
	default:
		return nil
	}
}

// SQLArg is Native for relational drivers: documents are stored as JSON text.
func (v Value) SQLArg() any {
	if v.Kind == KindDocument {
		b, err := json.Marshal(v.Doc)
		if err != nil {
			return fmt.Sprint(v.Doc)
		}
		return string(b)
	}
	return v.Native()
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Native())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = ValueFromJSON(raw)
	return nil
}

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindDate:
		return v.Time.Format(time.RFC3339)
	default:
		b, _ := v.MarshalJSON()
		return string(b)
	}
}
