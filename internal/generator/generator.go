package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"go.uber.org/zap"
)

// ValueGenerator produces count values for one column. It does not check
// how many values came back; callers decide what a short answer means.
type ValueGenerator interface {
	Generate(ctx context.Context, col types.Column, count int, domain types.Domain) ([]types.Value, error)
}

// Completer sends a single text prompt to a language model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type InvalidGenerationResponseError struct {
	Column string
	Err    error
}

func (e *InvalidGenerationResponseError) Error() string {
	return fmt.Sprintf("invalid generation response for column %q: %v", e.Column, e.Err)
}

func (e *InvalidGenerationResponseError) Unwrap() error {
	return e.Err
}

// Generator asks a Completer for values and memoizes the answers.
type Generator struct {
	completer Completer
	cache     *Cache
	logger    *zap.Logger
}

type Option func(*Generator)

func WithCache(cache *Cache) Option {
	return func(g *Generator) { g.cache = cache }
}

func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func New(completer Completer, opts ...Option) *Generator {
	g := &Generator{
		completer: completer,
		cache:     NewCache(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Generate(ctx context.Context, col types.Column, count int, domain types.Domain) ([]types.Value, error) {
	var key string
	if g.cache != nil {
		key = CacheKey(col, count, domain)
		if values, ok := g.cache.Get(key); ok {
			g.logger.Debug("generation cache hit", zap.String("column", col.Name))
			return values, nil
		}
	}

	resp, err := g.completer.Complete(ctx, BuildPrompt(col, count, domain))
	if err != nil {
		return nil, fmt.Errorf("generation request for column %q failed: %w", col.Name, err)
	}

	values, err := ParseResponse(col, resp)
	if err != nil {
		g.logger.Warn("unparseable generation response", zap.String("column", col.Name), zap.Error(err))
		return nil, err
	}

	if g.cache != nil {
		g.cache.Put(key, values)
	}
	g.logger.Debug("generated values", zap.String("column", col.Name), zap.Int("count", len(values)))
	return values, nil
}

// ParseResponse decodes a JSON array response, tolerating markdown fences.
// Trailing text after the array is rejected. For enum columns every value
// must be one of the allowed labels.
func ParseResponse(col types.Column, resp string) ([]types.Value, error) {
	dec := json.NewDecoder(strings.NewReader(StripFences(resp)))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, &InvalidGenerationResponseError{Column: col.Name, Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &InvalidGenerationResponseError{Column: col.Name, Err: fmt.Errorf("unexpected data after JSON array")}
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, &InvalidGenerationResponseError{Column: col.Name, Err: fmt.Errorf("expected a JSON array, got %T", raw)}
	}

	values := make([]types.Value, len(items))
	for i, item := range items {
		v := types.ValueFromJSON(item)
		if col.IsEnum() {
			label, err := enumLabel(col, v)
			if err != nil {
				return nil, &InvalidGenerationResponseError{Column: col.Name, Err: err}
			}
			values[i] = types.String(label)
			continue
		}
		values[i] = v.Coerce(col.Type)
	}
	return values, nil
}

func enumLabel(col types.Column, v types.Value) (string, error) {
	var label string
	switch v.Kind {
	case types.KindString:
		label = v.Str
	case types.KindInt, types.KindFloat, types.KindBool:
		label = v.String()
	default:
		return "", fmt.Errorf("value %s is not one of %v", v.String(), col.EnumValues)
	}
	for _, allowed := range col.EnumValues {
		if label == allowed {
			return label, nil
		}
	}
	return "", fmt.Errorf("value %q is not one of %v", label, col.EnumValues)
}
