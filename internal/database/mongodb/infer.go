package mongodb

import (
	"math"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const sampleSize = 5

// inferKind names the type of a single decoded BSON value.
func inferKind(value interface{}) string {
	switch v := value.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return "null"
	case bson.A, []interface{}:
		return "array"
	case string, primitive.Symbol:
		return "string"
	case int, int32, int64:
		return "int"
	case float32:
		return numberKind(float64(v))
	case float64:
		return numberKind(v)
	case primitive.Decimal128:
		return "float"
	case bool:
		return "boolean"
	case primitive.DateTime, primitive.Timestamp, time.Time:
		return "date"
	case primitive.ObjectID:
		return "objectId"
	default:
		return "object"
	}
}

func numberKind(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return "int"
	}
	return "float"
}

// InferColumns derives column metadata from sampled documents. Fields are
// listed in first-seen order; a field holding several kinds gets them joined
// with "|" in first-seen order.
func InferColumns(docs []bson.D) []types.Column {
	var order []string
	kinds := make(map[string][]string)

	for _, doc := range docs {
		for _, elem := range doc {
			kind := inferKind(elem.Value)
			seen, ok := kinds[elem.Key]
			if !ok {
				order = append(order, elem.Key)
			}
			if !containsKind(seen, kind) {
				kinds[elem.Key] = append(seen, kind)
			}
		}
	}

	cols := make([]types.Column, len(order))
	for i, name := range order {
		cols[i] = types.Column{
			Name: name,
			Type: strings.Join(kinds[name], "|"),
			PK:   name == "_id",
		}
	}
	return cols
}

func containsKind(kinds []string, kind string) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
