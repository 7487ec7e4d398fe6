package generator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Lumos-Labs-HQ/seedly/internal/config"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	mu       sync.Mutex
	response string
	err      error
	prompts  []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeCompleter) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func TestBuildPrompt(t *testing.T) {
	col := types.Column{Name: "email", Type: "TEXT"}

	sql := BuildPrompt(col, 3, types.DomainSQL)
	assert.Contains(t, sql, "Generate 3 fake values for a SQL column")
	assert.Contains(t, sql, `"email"`)
	assert.Contains(t, sql, "JSON array")

	nosql := BuildPrompt(col, 3, types.DomainNoSQL)
	assert.Contains(t, nosql, "NoSQL document field")

	enum := BuildPrompt(types.Column{Name: "status", Type: "TEXT", EnumValues: []string{"open", "closed"}}, 2, types.DomainSQL)
	assert.Contains(t, enum, "['open', 'closed']")
	assert.Contains(t, enum, "Do not invent any other value")
}

func TestStripFences(t *testing.T) {
	tests := map[string]string{
		"```json\n[1, 2]\n```": "[1, 2]",
		"```\n[\"a\"]\n```":    `["a"]`,
		"```json [true]```":    "[true]",
		"  [null]  ":           "[null]",
	}
	for in, want := range tests {
		assert.Equal(t, want, StripFences(in), in)
	}
}

func TestGenerateParsesFencedArray(t *testing.T) {
	completer := &fakeCompleter{response: "```json\n[\"Ann\", \"Bob\", 3, null]\n```"}
	g := New(completer)

	values, err := g.Generate(context.Background(), types.Column{Name: "name", Type: "TEXT"}, 4, types.DomainSQL)
	require.NoError(t, err)
	assert.Equal(t, []types.Value{types.String("Ann"), types.String("Bob"), types.Int(3), types.Null()}, values)
}

func TestGenerateInvalidResponse(t *testing.T) {
	for _, resp := range []string{"Sure! Here are some names: Ann, Bob", `{"values": ["a"]}`} {
		g := New(&fakeCompleter{response: resp})

		_, err := g.Generate(context.Background(), types.Column{Name: "name", Type: "TEXT"}, 2, types.DomainSQL)
		var invalid *InvalidGenerationResponseError
		require.True(t, errors.As(err, &invalid), resp)
		assert.Equal(t, "name", invalid.Column)
	}
}

func TestGenerateDoesNotCheckLength(t *testing.T) {
	g := New(&fakeCompleter{response: `["only one"]`})

	values, err := g.Generate(context.Background(), types.Column{Name: "name", Type: "TEXT"}, 5, types.DomainSQL)
	require.NoError(t, err)
	assert.Len(t, values, 1)
}

func TestGenerateCompleterError(t *testing.T) {
	g := New(&fakeCompleter{err: assert.AnError})

	_, err := g.Generate(context.Background(), types.Column{Name: "name", Type: "TEXT"}, 1, types.DomainSQL)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGenerateCachesByFullInput(t *testing.T) {
	completer := &fakeCompleter{response: `["a", "b"]`}
	g := New(completer)
	ctx := context.Background()
	col := types.Column{Name: "code", Type: "TEXT"}

	first, err := g.Generate(ctx, col, 2, types.DomainSQL)
	require.NoError(t, err)
	second, err := g.Generate(ctx, col, 2, types.DomainSQL)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, completer.calls())

	// same name, different inputs
	_, _ = g.Generate(ctx, types.Column{Name: "code", Type: "INTEGER"}, 2, types.DomainSQL)
	_, _ = g.Generate(ctx, col, 3, types.DomainSQL)
	_, _ = g.Generate(ctx, col, 2, types.DomainNoSQL)
	_, _ = g.Generate(ctx, types.Column{Name: "code", Type: "TEXT", EnumValues: []string{"a", "b"}}, 2, types.DomainSQL)
	assert.Equal(t, 5, completer.calls())
}

func TestGenerateWithoutCache(t *testing.T) {
	completer := &fakeCompleter{response: `["a"]`}
	g := New(completer, WithCache(nil))
	col := types.Column{Name: "code", Type: "TEXT"}

	_, _ = g.Generate(context.Background(), col, 1, types.DomainSQL)
	_, _ = g.Generate(context.Background(), col, 1, types.DomainSQL)
	assert.Equal(t, 2, completer.calls())
}

func TestCacheReturnsCopies(t *testing.T) {
	c := NewCache()
	c.Put("k", []types.Value{types.String("a")})

	got, ok := c.Get("k")
	require.True(t, ok)
	got[0] = types.String("mutated")

	again, _ := c.Get("k")
	assert.Equal(t, types.String("a"), again[0])
	assert.Equal(t, 1, c.Len())
}

func TestParseResponseCoercesDates(t *testing.T) {
	values, err := ParseResponse(types.Column{Name: "born", Type: "DATE"}, `["1990-05-01", "not a date"]`)
	require.NoError(t, err)
	assert.Equal(t, types.KindDate, values[0].Kind)
	assert.Equal(t, types.KindString, values[1].Kind)
}

func TestFakerGenerator(t *testing.T) {
	g := NewFakerGenerator(7)
	ctx := context.Background()

	emails, err := g.Generate(ctx, types.Column{Name: "email", Type: "TEXT"}, 10, types.DomainSQL)
	require.NoError(t, err)
	require.Len(t, emails, 10)
	for _, v := range emails {
		assert.True(t, strings.Contains(v.Str, "@"), v.Str)
	}

	allowed := []string{"admin", "member"}
	roles, err := g.Generate(ctx, types.Column{Name: "role", Type: "TEXT", EnumValues: allowed}, 20, types.DomainSQL)
	require.NoError(t, err)
	for _, v := range roles {
		assert.Contains(t, allowed, v.Str)
	}

	ages, err := g.Generate(ctx, types.Column{Name: "age", Type: "INTEGER"}, 3, types.DomainSQL)
	require.NoError(t, err)
	for _, v := range ages {
		assert.Equal(t, types.KindInt, v.Kind)
	}

	mixed, err := g.Generate(ctx, types.Column{Name: "flag", Type: "null|boolean"}, 3, types.DomainNoSQL)
	require.NoError(t, err)
	for _, v := range mixed {
		assert.Equal(t, types.KindBool, v.Kind)
	}
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{Generator: config.GeneratorConfig{Provider: config.ProviderFaker}}
	g, err := NewFromConfig(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &FakerGenerator{}, g)

	t.Setenv("SEEDLY_MISSING_KEY", "")
	cfg = &config.Config{Generator: config.GeneratorConfig{Provider: config.ProviderGenAI, APIKeyEnv: "SEEDLY_MISSING_KEY"}}
	_, err = NewFromConfig(context.Background(), cfg, nil)
	assert.Error(t, err)

	cfg = &config.Config{Generator: config.GeneratorConfig{Provider: "openai"}}
	_, err = NewFromConfig(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestGenerateRejectsTrailingText(t *testing.T) {
	g := New(&fakeCompleter{response: `["Ann","Bob"] Here are your names!`})

	_, err := g.Generate(context.Background(), types.Column{Name: "name", Type: "TEXT"}, 2, types.DomainSQL)
	var invalid *InvalidGenerationResponseError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "name", invalid.Column)
}

func TestGenerateEnumValuesStayInSet(t *testing.T) {
	col := types.Column{Name: "status", Type: "enum('active','inactive')", EnumValues: []string{"active", "inactive"}}

	completer := &fakeCompleter{response: `["active","deleted","inactive"]`}
	g := New(completer)
	_, err := g.Generate(context.Background(), col, 3, types.DomainSQL)
	var invalid *InvalidGenerationResponseError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "status", invalid.Column)
	assert.Contains(t, err.Error(), `"deleted"`)

	// rejected answers are not cached
	completer.response = `["inactive","active","active"]`
	values, err := g.Generate(context.Background(), col, 3, types.DomainSQL)
	require.NoError(t, err)
	assert.Equal(t, []types.Value{types.String("inactive"), types.String("active"), types.String("active")}, values)
	assert.Equal(t, 2, completer.calls())
}

func TestParseResponseEnumNumbers(t *testing.T) {
	col := types.Column{Name: "rating", Type: "TEXT", EnumValues: []string{"1", "2", "3"}}

	values, err := ParseResponse(col, `[1, "2", 3]`)
	require.NoError(t, err)
	assert.Equal(t, []types.Value{types.String("1"), types.String("2"), types.String("3")}, values)

	_, err = ParseResponse(col, `[1, null]`)
	assert.Error(t, err)
}
