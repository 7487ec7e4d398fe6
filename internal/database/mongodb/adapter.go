package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"github.com/Lumos-Labs-HQ/seedly/internal/modeldef"
	"github.com/Lumos-Labs-HQ/seedly/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Adapter connects on first use. Column metadata is resolved from a model
// definition directory, then a single definition file, then by sampling
// documents.
type Adapter struct {
	cfg    types.DialectConfig
	logger *zap.Logger
	loader *modeldef.Loader

	mu       sync.Mutex
	client   *mongo.Client
	database *mongo.Database
	closed   bool

	// sample fetches documents for inference; replaced in tests.
	sample func(ctx context.Context, collection string) ([]bson.D, error)
}

type Option func(*Adapter)

func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func WithLoader(loader *modeldef.Loader) Option {
	return func(a *Adapter) {
		if loader != nil {
			a.loader = loader
		}
	}
}

func New(cfg types.DialectConfig, opts ...Option) *Adapter {
	a := &Adapter{
		cfg:    cfg,
		logger: zap.NewNop(),
		loader: modeldef.NewLoader(nil),
	}
	a.sample = a.sampleDocuments
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Name() string { return types.DialectMongoDB }

func (a *Adapter) Domain() types.Domain { return types.DomainNoSQL }

func (a *Adapter) ensureConnected(ctx context.Context) (*mongo.Database, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, common.ErrClosed
	}
	if a.database != nil {
		return a.database, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	a.client = client
	a.database = client.Database(a.cfg.Database)
	a.logger.Info("connected to MongoDB", zap.String("database", a.cfg.Database))
	return a.database, nil
}

func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return common.ErrClosed
	}
	a.closed = true
	if a.client == nil {
		return nil
	}
	if err := a.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	a.logger.Info("MongoDB connection closed")
	return nil
}

func (a *Adapter) ListTables(ctx context.Context) ([]string, error) {
	db, err := a.ensureConnected(ctx)
	if err != nil {
		return nil, err
	}
	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

func (a *Adapter) RunQuery(ctx context.Context, query string) (*common.QueryResult, error) {
	req, err := parseQuery(query)
	if err != nil {
		return nil, err
	}
	db, err := a.ensureConnected(ctx)
	if err != nil {
		return nil, err
	}
	return execute(ctx, db, req)
}

func (a *Adapter) InsertRows(ctx context.Context, collection string, columns []string, rows [][]types.Value) error {
	if len(rows) == 0 {
		return nil
	}
	if collection == "" {
		return errors.New("collection name is required")
	}
	if err := common.CheckRows(columns, rows); err != nil {
		return err
	}

	docs := make([]interface{}, len(rows))
	for i, row := range rows {
		doc := make(bson.D, len(columns))
		for j, col := range columns {
			doc[j] = bson.E{Key: col, Value: row[j].Native()}
		}
		docs[i] = doc
	}

	db, err := a.ensureConnected(ctx)
	if err != nil {
		return err
	}
	if _, err := db.Collection(collection).InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	a.logger.Info("inserted documents", zap.String("collection", collection), zap.Int("count", len(docs)))
	return nil
}

func (a *Adapter) sampleDocuments(ctx context.Context, collection string) ([]bson.D, error) {
	db, err := a.ensureConnected(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := db.Collection(collection).Find(ctx, bson.D{}, options.Find().SetLimit(sampleSize))
	if err != nil {
		return nil, fmt.Errorf("failed to sample %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var docs []bson.D
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode samples from %s: %w", collection, err)
	}
	return docs, nil
}
