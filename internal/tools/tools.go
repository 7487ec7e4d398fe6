// Package tools exposes the orchestrator as named operations with JSON
// input schemas, so an agent runtime can list and call them.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Lumos-Labs-HQ/seedly/internal/seeder"
	"github.com/go-playground/validator/v10"
)

const (
	ToolSchema     = "schema"
	ToolQuery      = "query"
	ToolSeedTable  = "seed-table"
	ToolListTables = "list-tables"
)

type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema interface{} `json:"inputSchema"`
}

type QueryArgs struct {
	Query string `json:"query" validate:"required"`
}

type SeedTableArgs struct {
	TableName string `json:"tableName" validate:"required"`
	Count     int    `json:"count" validate:"required,min=1,max=100"`
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{"type": "object", "properties": map[string]interface{}{}}
}

func Definitions() []Tool {
	return []Tool{
		{
			Name:        ToolSchema,
			Description: "Get the schema of the connected database",
			InputSchema: emptySchema(),
		},
		{
			Name:        ToolListTables,
			Description: "List the tables or collections of the connected database",
			InputSchema: emptySchema(),
		},
		{
			Name:        ToolQuery,
			Description: "Run a query against the connected database. SQL for relational databases, a JSON command for MongoDB",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query": map[string]interface{}{"type": "string", "description": "The query to run"},
				},
				"required": []string{"query"},
			},
		},
		{
			Name:        ToolSeedTable,
			Description: "Fill a table with generated fake rows",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"tableName": map[string]interface{}{"type": "string", "description": "Table or collection to seed"},
					"count": map[string]interface{}{
						"type": "integer", "minimum": 1, "maximum": seeder.MaxCount,
						"description": "Number of rows to insert",
					},
				},
				"required": []string{"tableName", "count"},
			},
		},
	}
}

// Registry dispatches tool calls to a Seeder.
type Registry struct {
	seeder   *seeder.Seeder
	validate *validator.Validate
}

func NewRegistry(s *seeder.Seeder) *Registry {
	return &Registry{seeder: s, validate: validator.New()}
}

// Call runs the named tool. args is the decoded JSON argument object.
func (r *Registry) Call(ctx context.Context, name string, args map[string]interface{}) *seeder.Result {
	switch name {
	case ToolSchema:
		return r.seeder.Schema(ctx)
	case ToolListTables:
		return r.seeder.Tables(ctx)
	case ToolQuery:
		var in QueryArgs
		if err := r.decode(args, &in); err != nil {
			return seeder.ErrorResult(err)
		}
		return r.seeder.Query(ctx, in.Query)
	case ToolSeedTable:
		var in SeedTableArgs
		if err := r.decode(args, &in); err != nil {
			return seeder.ErrorResult(err)
		}
		return r.seeder.Seed(ctx, in.TableName, in.Count)
	default:
		return seeder.ErrorResult(fmt.Errorf("unknown tool: %s", name))
	}
}

func (r *Registry) decode(args map[string]interface{}, out interface{}) error {
	b, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if err := r.validate.Struct(out); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
