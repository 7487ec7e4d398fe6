package generator

import (
	"context"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"github.com/brianvoe/gofakeit/v6"
)

// FakerGenerator produces values locally with gofakeit. It needs no network
// access and honors enum values.
type FakerGenerator struct {
	faker *gofakeit.Faker
}

// NewFakerGenerator seeds the faker; a seed of 0 picks a random one.
func NewFakerGenerator(seed int64) *FakerGenerator {
	return &FakerGenerator{faker: gofakeit.New(seed)}
}

func (g *FakerGenerator) Generate(_ context.Context, col types.Column, count int, domain types.Domain) ([]types.Value, error) {
	values := make([]types.Value, count)
	for i := range values {
		values[i] = g.value(col, domain)
	}
	return values, nil
}

func (g *FakerGenerator) value(col types.Column, domain types.Domain) types.Value {
	if col.IsEnum() {
		return types.String(col.EnumValues[g.faker.IntRange(0, len(col.EnumValues)-1)])
	}
	if v, ok := g.byName(strings.ToLower(col.Name)); ok {
		return v
	}
	return g.byType(strings.ToLower(col.Type), domain)
}

// byName checks the column name first for context-aware generation.
func (g *FakerGenerator) byName(name string) (types.Value, bool) {
	switch {
	case strings.Contains(name, "email"):
		return types.String(g.faker.Email()), true
	case strings.Contains(name, "first") && strings.Contains(name, "name"):
		return types.String(g.faker.FirstName()), true
	case strings.Contains(name, "last") && strings.Contains(name, "name"):
		return types.String(g.faker.LastName()), true
	case strings.Contains(name, "username") || name == "login":
		return types.String(g.faker.Username()), true
	case strings.Contains(name, "name") && !strings.Contains(name, "file"):
		return types.String(g.faker.Name()), true
	case strings.Contains(name, "title"):
		return types.String(g.faker.Sentence(4)), true
	case strings.Contains(name, "description") || strings.Contains(name, "content") || strings.Contains(name, "bio"):
		return types.String(g.faker.Paragraph(1, 3, 12, " ")), true
	case strings.Contains(name, "url") || strings.Contains(name, "link") || strings.Contains(name, "website"):
		return types.String(g.faker.URL()), true
	case strings.Contains(name, "phone"):
		return types.String(g.faker.Phone()), true
	case strings.Contains(name, "address") || strings.Contains(name, "street"):
		return types.String(g.faker.Street()), true
	case strings.Contains(name, "city"):
		return types.String(g.faker.City()), true
	case strings.Contains(name, "country"):
		return types.String(g.faker.Country()), true
	case strings.Contains(name, "zip") || strings.Contains(name, "postal"):
		return types.String(g.faker.Zip()), true
	case strings.Contains(name, "company"):
		return types.String(g.faker.Company()), true
	case strings.Contains(name, "price") || strings.Contains(name, "amount") || strings.Contains(name, "total"):
		return types.Float(g.faker.Price(1, 1000)), true
	}
	return types.Value{}, false
}

// byType falls back to the declared or inferred type. Document-store types
// may list several kinds joined by "|"; the first non-null one wins.
func (g *FakerGenerator) byType(typ string, domain types.Domain) types.Value {
	if domain == types.DomainNoSQL && strings.Contains(typ, "|") {
		for _, kind := range strings.Split(typ, "|") {
			if kind != "null" {
				typ = kind
				break
			}
		}
	}
	if idx := strings.Index(typ, "("); idx > 0 {
		typ = typ[:idx]
	}

	switch {
	case strings.Contains(typ, "bool"):
		return types.Bool(g.faker.Bool())
	case strings.Contains(typ, "int") || strings.Contains(typ, "serial"):
		return types.Int(int64(g.faker.IntRange(1, 1000000)))
	case strings.Contains(typ, "decimal") || strings.Contains(typ, "numeric") || strings.Contains(typ, "float") ||
		strings.Contains(typ, "double") || strings.Contains(typ, "real") || typ == "number":
		return types.Float(g.faker.Float64Range(0, 10000))
	case strings.Contains(typ, "time") || strings.Contains(typ, "date"):
		return types.Date(g.faker.DateRange(time.Now().AddDate(-1, 0, 0), time.Now()).UTC().Truncate(time.Second))
	case strings.Contains(typ, "uuid"):
		return types.String(g.faker.UUID())
	case strings.Contains(typ, "json") || typ == "object" || typ == "mixed":
		return types.Document(map[string]interface{}{"label": g.faker.Word(), "score": g.faker.IntRange(0, 100)})
	case typ == "array":
		return types.Document([]interface{}{g.faker.Word(), g.faker.Word()})
	case typ == "objectid" || typ == "null":
		return types.Null()
	default:
		return types.String(g.faker.Word())
	}
}
