package seeder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/Lumos-Labs-HQ/seedly/internal/database"
	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"github.com/Lumos-Labs-HQ/seedly/internal/generator"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const MaxCount = 100

// ProgressFunc is called after each column has been generated.
type ProgressFunc func(column string, done, total int)

// Seeder drives one dialect: it reads column metadata, asks the generator
// for values column by column and inserts the rows in one call.
type Seeder struct {
	dialect     database.Dialect
	generator   generator.ValueGenerator
	logger      *zap.Logger
	concurrency int
	progress    ProgressFunc

	closeOnce sync.Once
	closeErr  error
}

type Option func(*Seeder)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Seeder) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithConcurrency generates up to n columns at once. Column order in the
// inserted rows is unaffected.
func WithConcurrency(n int) Option {
	return func(s *Seeder) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(s *Seeder) { s.progress = fn }
}

func New(dialect database.Dialect, gen generator.ValueGenerator, opts ...Option) *Seeder {
	s := &Seeder{
		dialect:     dialect,
		generator:   gen,
		logger:      zap.NewNop(),
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close releases the dialect. Only the first call has an effect.
func (s *Seeder) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.dialect.Close()
	})
	return s.closeErr
}

// Seed generates count rows for table and inserts them.
func (s *Seeder) Seed(ctx context.Context, table string, count int) *Result {
	return s.run("seed", func() (string, error) {
		inserted, err := s.seed(ctx, table, count)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Successfully inserted %d fake rows into %q", inserted, table), nil
	})
}

func (s *Seeder) Query(ctx context.Context, query string) *Result {
	return s.run("query", func() (string, error) {
		res, err := s.dialect.RunQuery(ctx, query)
		if err != nil {
			return "", err
		}
		if len(res.Rows) == 0 && res.Affected > 0 {
			return fmt.Sprintf("%d rows affected", res.Affected), nil
		}
		b, err := encodeRows(res)
		if err != nil {
			return "", fmt.Errorf("failed to encode query result: %w", err)
		}
		return string(b), nil
	})
}

// encodeRows renders rows as an indented JSON array whose object keys
// follow the result's column order. Without columns, keys are sorted.
func encodeRows(res *common.QueryResult) ([]byte, error) {
	if len(res.Columns) == 0 {
		return json.MarshalIndent(res.Rows, "", "  ")
	}

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, row := range res.Rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('{')
		for j, col := range res.Columns {
			if j > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(col)
			if err != nil {
				return nil, err
			}
			val, err := json.Marshal(row[col])
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(val)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (s *Seeder) Schema(ctx context.Context) *Result {
	return s.run("schema", func() (string, error) {
		schema, err := s.dialect.GetSchema(ctx)
		if err != nil {
			return "", err
		}
		if schema == "" {
			return "No tables found", nil
		}
		return schema, nil
	})
}

func (s *Seeder) Tables(ctx context.Context) *Result {
	return s.run("tables", func() (string, error) {
		tables, err := s.dialect.ListTables(ctx)
		if err != nil {
			return "", err
		}
		if len(tables) == 0 {
			return "No tables found", nil
		}
		return strings.Join(tables, "\n"), nil
	})
}

// run converts errors and panics into error results.
func (s *Seeder) run(op string, fn func() (string, error)) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("operation panicked", zap.String("op", op), zap.Any("panic", r))
			res = ErrorResult(fmt.Errorf("%s failed: %v", op, r))
		}
	}()

	text, err := fn()
	if err != nil {
		s.logger.Warn("operation failed", zap.String("op", op), zap.Error(err))
		return ErrorResult(err)
	}
	return TextResult(text)
}

func (s *Seeder) seed(ctx context.Context, table string, count int) (int, error) {
	if count < 1 || count > MaxCount {
		return 0, &InvalidCountError{Count: count}
	}

	log := s.logger.With(zap.String("run", uuid.NewString()), zap.String("table", table))

	columns, err := s.dialect.GetColumns(ctx, table)
	if err != nil {
		return 0, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	if len(columns) == 0 {
		return 0, &UnknownContainerError{Table: table}
	}

	insertable := types.InsertableColumns(columns)
	if len(insertable) == 0 {
		return 0, &NoInsertableColumnsError{Table: table}
	}
	log.Info("generating values", zap.Int("columns", len(insertable)), zap.Int("count", count))

	matrix, err := s.generate(ctx, insertable, count)
	if err != nil {
		return 0, err
	}

	rows := types.Transpose(matrix, count)
	if err := s.dialect.InsertRows(ctx, table, types.ColumnNames(insertable), rows); err != nil {
		return 0, fmt.Errorf("failed to insert rows into %s: %w", table, err)
	}

	log.Info("rows inserted", zap.Int("rows", len(rows)))
	return len(rows), nil
}

// generate builds the column-major value matrix. Any column with fewer than
// count values aborts the whole seed.
func (s *Seeder) generate(ctx context.Context, columns []types.Column, count int) ([][]types.Value, error) {
	domain := s.dialect.Domain()
	matrix := make([][]types.Value, len(columns))

	var (
		mu   sync.Mutex
		done int
	)
	generateColumn := func(ctx context.Context, i int) error {
		col := columns[i]
		values, err := s.generator.Generate(ctx, col, count, domain)
		if err != nil {
			return err
		}
		if len(values) < count {
			return &InsufficientGenerationError{Column: col.Name, Want: count, Got: len(values)}
		}
		matrix[i] = values

		if s.progress != nil {
			mu.Lock()
			done++
			s.progress(col.Name, done, len(columns))
			mu.Unlock()
		}
		return nil
	}

	if s.concurrency <= 1 {
		for i := range columns {
			if err := generateColumn(ctx, i); err != nil {
				return nil, err
			}
		}
		return matrix, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range columns {
		i := i
		g.Go(func() error { return generateColumn(gctx, i) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return matrix, nil
}
