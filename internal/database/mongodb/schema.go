package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"github.com/Lumos-Labs-HQ/seedly/internal/modeldef"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"go.uber.org/zap"
)

// errNotApplicable means a resolver has nothing to say about a collection.
var errNotApplicable = errors.New("resolver not applicable")

type resolver struct {
	name    string
	resolve func(ctx context.Context, collection string) ([]types.Column, error)
}

func (a *Adapter) resolvers() []resolver {
	return []resolver{
		{name: "model directory", resolve: a.fromModelDir},
		{name: "schema file", resolve: a.fromSchemaFile},
		{name: "sampling", resolve: a.fromSamples},
	}
}

// GetColumns walks the resolver chain. A failing resolver is logged and the
// next one is tried; the error of the last resolver is returned.
func (a *Adapter) GetColumns(ctx context.Context, collection string) ([]types.Column, error) {
	var lastErr error
	for _, r := range a.resolvers() {
		cols, err := r.resolve(ctx, collection)
		if err == nil {
			a.logger.Debug("resolved collection fields",
				zap.String("collection", collection), zap.String("source", r.name), zap.Int("fields", len(cols)))
			return cols, nil
		}
		if errors.Is(err, errNotApplicable) {
			continue
		}
		a.logger.Warn("field resolution failed",
			zap.String("collection", collection), zap.String("source", r.name), zap.Error(err))
		lastErr = err
	}
	return nil, lastErr
}

func (a *Adapter) fromModelDir(_ context.Context, collection string) ([]types.Column, error) {
	if a.cfg.ModelPath == "" {
		return nil, errNotApplicable
	}
	m, err := a.loader.LoadDir(a.cfg.ModelPath, collection)
	if errors.Is(err, modeldef.ErrNotFound) {
		return nil, errNotApplicable
	}
	if err != nil {
		return nil, err
	}
	return m.Columns(), nil
}

func (a *Adapter) fromSchemaFile(_ context.Context, collection string) ([]types.Column, error) {
	if a.cfg.SingleSchemaPath == "" {
		return nil, errNotApplicable
	}
	m, err := a.loader.LoadFile(a.cfg.SingleSchemaPath)
	if err != nil {
		return nil, err
	}
	if !m.Matches(collection) {
		return nil, errNotApplicable
	}
	return m.Columns(), nil
}

func (a *Adapter) fromSamples(ctx context.Context, collection string) ([]types.Column, error) {
	docs, err := a.sample(ctx, collection)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, &common.EmptyCollectionError{Collection: collection}
	}
	return InferColumns(docs), nil
}

// GetSchema renders every live or defined collection. Collections whose
// fields cannot be resolved are skipped.
func (a *Adapter) GetSchema(ctx context.Context) (string, error) {
	live, err := a.ListTables(ctx)
	if err != nil {
		return "", err
	}
	return a.renderSchema(ctx, live)
}

func (a *Adapter) renderSchema(ctx context.Context, live []string) (string, error) {
	var defined []string
	if a.cfg.ModelPath != "" {
		names, err := a.loader.ListCollections(a.cfg.ModelPath)
		if err != nil {
			a.logger.Warn("cannot list model definitions", zap.String("dir", a.cfg.ModelPath), zap.Error(err))
		}
		defined = names
	}

	var parts []string
	for _, name := range common.SortedUnion(live, defined) {
		cols, err := a.GetColumns(ctx, name)
		if err != nil {
			a.logger.Warn("skipping collection in schema", zap.String("collection", name), zap.Error(err))
			continue
		}
		parts = append(parts, renderCollection(name, cols))
	}
	return strings.Join(parts, "\n\n"), nil
}

func renderCollection(name string, cols []types.Column) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Collection %s {\n", name)
	for _, c := range cols {
		fmt.Fprintf(&sb, "  %s: %s", c.Name, c.Type)
		if c.IsEnum() {
			fmt.Fprintf(&sb, " (enum: %s)", strings.Join(c.EnumValues, ", "))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")
	return sb.String()
}
