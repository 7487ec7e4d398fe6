package mongodb

import (
	"context"
	"strings"

	"github.com/Lumos-Labs-HQ/seedly/internal/database/common"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	actionFind      = "find"
	actionInsertOne = "insertOne"
	actionUpdateOne = "updateOne"
	actionDeleteOne = "deleteOne"
)

// queryRequest is the JSON command accepted by RunQuery, e.g.
//
//	{"collection": "users", "action": "find", "filter": {"role": "admin"}, "options": {"limit": 10}}
//
// Extended JSON is accepted, so {"$oid": "..."} works in filters.
type queryRequest struct {
	Collection string       `bson:"collection"`
	Action     string       `bson:"action"`
	Filter     bson.D       `bson:"filter,omitempty"`
	Update     bson.D       `bson:"update,omitempty"`
	Document   bson.D       `bson:"document,omitempty"`
	Options    queryOptions `bson:"options,omitempty"`
}

type queryOptions struct {
	Limit      int64  `bson:"limit,omitempty"`
	Skip       int64  `bson:"skip,omitempty"`
	Sort       bson.D `bson:"sort,omitempty"`
	Projection bson.D `bson:"projection,omitempty"`
}

func parseQuery(query string) (*queryRequest, error) {
	var req queryRequest
	if err := bson.UnmarshalExtJSON([]byte(strings.TrimSpace(query)), false, &req); err != nil {
		return nil, &common.InvalidQueryError{Reason: "expected a JSON object", Err: err}
	}
	if req.Collection == "" {
		return nil, &common.InvalidQueryError{Reason: `missing "collection"`}
	}

	switch req.Action {
	case actionFind, actionInsertOne, actionUpdateOne, actionDeleteOne:
	default:
		return nil, &common.UnsupportedActionError{Action: req.Action}
	}

	if req.Filter == nil {
		req.Filter = bson.D{}
	}
	return &req, nil
}

func (r *queryRequest) findOptions() *options.FindOptions {
	opts := options.Find()
	if r.Options.Limit > 0 {
		opts.SetLimit(r.Options.Limit)
	}
	if r.Options.Skip > 0 {
		opts.SetSkip(r.Options.Skip)
	}
	if len(r.Options.Sort) > 0 {
		opts.SetSort(r.Options.Sort)
	}
	if len(r.Options.Projection) > 0 {
		opts.SetProjection(r.Options.Projection)
	}
	return opts
}

// insertDocument is the document to insert. A bare filter is accepted as the
// document for compatibility with older callers.
func (r *queryRequest) insertDocument() bson.D {
	if r.Document != nil {
		return r.Document
	}
	return r.Filter
}

func execute(ctx context.Context, db *mongo.Database, req *queryRequest) (*common.QueryResult, error) {
	coll := db.Collection(req.Collection)

	switch req.Action {
	case actionFind:
		cursor, err := coll.Find(ctx, req.Filter, req.findOptions())
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var docs []bson.M
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		result := &common.QueryResult{Rows: make([]map[string]interface{}, len(docs))}
		for i, doc := range docs {
			result.Rows[i] = convertDocument(doc)
		}
		return result, nil

	case actionInsertOne:
		res, err := coll.InsertOne(ctx, req.insertDocument())
		if err != nil {
			return nil, err
		}
		return &common.QueryResult{
			Rows:     []map[string]interface{}{{"insertedId": convertBSONValue(res.InsertedID)}},
			Affected: 1,
		}, nil

	case actionUpdateOne:
		res, err := coll.UpdateOne(ctx, req.Filter, req.Update)
		if err != nil {
			return nil, err
		}
		return &common.QueryResult{
			Rows:     []map[string]interface{}{{"matchedCount": res.MatchedCount, "modifiedCount": res.ModifiedCount}},
			Affected: res.ModifiedCount,
		}, nil

	case actionDeleteOne:
		res, err := coll.DeleteOne(ctx, req.Filter)
		if err != nil {
			return nil, err
		}
		return &common.QueryResult{
			Rows:     []map[string]interface{}{{"deletedCount": res.DeletedCount}},
			Affected: res.DeletedCount,
		}, nil
	}

	return nil, &common.UnsupportedActionError{Action: req.Action}
}
