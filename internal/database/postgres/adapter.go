package postgres

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type Adapter struct {
	mu     sync.Mutex
	pool   *pgxpool.Pool
	qb     squirrel.StatementBuilderType
	closed bool
}

// New builds the connection pool. pgxpool dials lazily, so an unreachable
// server surfaces on the first operation.
func New(ctx context.Context, cfg types.DialectConfig) (*Adapter, error) {
	config, err := pgxpool.ParseConfig(ConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection URL: %w", err)
	}

	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	config.MaxConns = 2
	config.MinConns = 0
	config.MaxConnLifetime = 15 * time.Minute
	config.MaxConnIdleTime = 3 * time.Minute
	config.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	return &Adapter{
		pool: pool,
		qb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

func ConnString(cfg types.DialectConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Database,
	}
	if cfg.Password == "" {
		u.User = url.User(cfg.User)
	}
	return u.String()
}

func (p *Adapter) Name() string { return types.DialectPostgres }

func (p *Adapter) Domain() types.Domain { return types.DomainSQL }

func (p *Adapter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return common.ErrClosed
	}
	p.closed = true
	p.pool.Close()
	return nil
}

func (p *Adapter) handle() (*pgxpool.Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, common.ErrClosed
	}
	return p.pool, nil
}

func (p *Adapter) RunQuery(ctx context.Context, query string) (*common.QueryResult, error) {
	pool, err := p.handle()
	if err != nil {
		return nil, err
	}

	if !common.ReturnsRows(query) {
		tag, err := pool.Exec(ctx, query)
		if err != nil {
			return nil, err
		}
		return &common.QueryResult{Rows: []map[string]interface{}{}, Affected: tag.RowsAffected()}, nil
	}

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	result := &common.QueryResult{Columns: make([]string, len(fields)), Rows: []map[string]interface{}{}}
	for i, f := range fields {
		result.Columns[i] = f.Name
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(values))
		for i, v := range values {
			row[result.Columns[i]] = common.NormalizeValue(v)
		}
		result.Rows = append(result.Rows, row)
	}
	return result, rows.Err()
}

func (p *Adapter) InsertRows(ctx context.Context, table string, columns []string, rows [][]types.Value) error {
	if len(rows) == 0 {
		return nil
	}
	if err := common.ValidateIdentifiers(table, columns); err != nil {
		return err
	}
	if err := common.CheckRows(columns, rows); err != nil {
		return err
	}
	pool, err := p.handle()
	if err != nil {
		return err
	}

	queries, err := p.buildInserts(table, columns, rows)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, q := range queries {
		if _, err := tx.Exec(ctx, q.sql, q.args...); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type statement struct {
	sql  string
	args []interface{}
}

func (p *Adapter) buildInserts(table string, columns []string, rows [][]types.Value) ([]statement, error) {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pq.QuoteIdentifier(c)
	}

	stmts := make([]statement, 0, len(rows))
	for _, row := range rows {
		args := make([]interface{}, len(row))
		for i, v := range row {
			args[i] = v.SQLArg()
		}
		sql, qargs, err := p.qb.Insert(pq.QuoteIdentifier(table)).Columns(quoted...).Values(args...).ToSql()
		if err != nil {
			return nil, fmt.Errorf("failed to build insert: %w", err)
		}
		stmts = append(stmts, statement{sql: sql, args: qargs})
	}
	return stmts, nil
}
