package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

type Adapter struct {
	mu     sync.Mutex
	db     *sql.DB
	qb     squirrel.StatementBuilderType
	path   string
	closed bool
}

// New opens a handle on the database file. No connection is made until the
// first operation.
func New(file string) (*Adapter, error) {
	path := strings.TrimPrefix(file, "sqlite://")
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &Adapter{
		db:   db,
		qb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
		path: path,
	}, nil
}

func (s *Adapter) Name() string { return types.DialectSQLite }

func (s *Adapter) Domain() types.Domain { return types.DomainSQL }

func (s *Adapter) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return common.ErrClosed
	}
	s.closed = true
	return s.db.Close()
}

func (s *Adapter) handle() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, common.ErrClosed
	}
	return s.db, nil
}

func (s *Adapter) RunQuery(ctx context.Context, query string) (*common.QueryResult, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	return common.RunSQL(ctx, db, query)
}

func (s *Adapter) InsertRows(ctx context.Context, table string, columns []string, rows [][]types.Value) error {
	db, err := s.handle()
	if err != nil {
		return err
	}
	return common.InsertTx(ctx, db, s.qb, quoteIdent, table, columns, rows)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
