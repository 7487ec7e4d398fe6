package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"github.com/Masterminds/squirrel"
	driver "github.com/go-sql-driver/mysql"
)

type Adapter struct {
	mu     sync.Mutex
	db     *sql.DB
	qb     squirrel.StatementBuilderType
	closed bool
}

func New(cfg types.DialectConfig) (*Adapter, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(3 * time.Minute)

	return NewWithDB(db), nil
}

// NewWithDB wraps an already opened handle.
func NewWithDB(db *sql.DB) *Adapter {
	return &Adapter{
		db: db,
		qb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

func DSN(cfg types.DialectConfig) string {
	c := driver.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.Database
	c.ParseTime = true
	return c.FormatDSN()
}

func (m *Adapter) Name() string { return types.DialectMySQL }

func (m *Adapter) Domain() types.Domain { return types.DomainSQL }

func (m *Adapter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return common.ErrClosed
	}
	m.closed = true
	return m.db.Close()
}

func (m *Adapter) handle() (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, common.ErrClosed
	}
	return m.db, nil
}

func (m *Adapter) RunQuery(ctx context.Context, query string) (*common.QueryResult, error) {
	db, err := m.handle()
	if err != nil {
		return nil, err
	}
	return common.RunSQL(ctx, db, query)
}

func (m *Adapter) InsertRows(ctx context.Context, table string, columns []string, rows [][]types.Value) error {
	db, err := m.handle()
	if err != nil {
		return err
	}
	return common.InsertTx(ctx, db, m.qb, quoteIdent, table, columns, rows)
}

func quoteIdent(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
