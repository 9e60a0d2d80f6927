package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/session"
)

// DatabaseTools exposes schema introspection and the restricted raw SQL
// escape hatch.
type DatabaseTools struct {
	base
}

func NewDatabaseTools(h *session.Handle) *DatabaseTools {
	return &DatabaseTools{base{Handle: h}}
}

type ExecuteSQLInput struct {
	SQL    string `json:"sql" jsonschema:"A single SELECT, INSERT, UPDATE or DELETE statement with ? placeholders"`
	Params []any  `json:"params,omitempty" jsonschema:"Values bound to the placeholders"`
	Fetch  *bool  `json:"fetch_results,omitempty" jsonschema:"Return rows for SELECT statements (default true)"`
}

type GetTableSchemaInput struct {
	Table string `json:"table,omitempty" jsonschema:"Table name; omit for every table"`
}

func (t *DatabaseTools) ExecuteSQL(ctx context.Context, _ *mcp.CallToolRequest, input ExecuteSQLInput) (*mcp.CallToolResult, any, error) {
	s, errResult := t.requireStore(ctx)
	if errResult != nil {
		return errResult, nil, nil
	}
	fetch := true
	if input.Fetch != nil {
		fetch = *input.Fetch
	}
	res, err := s.ExecuteSQL(ctx, input.SQL, input.Params, fetch)
	if err != nil {
		return toolError("Failed to execute SQL: %v", err), nil, nil
	}
	return toolJSON(res)
}

func (t *DatabaseTools) GetTableSchema(ctx context.Context, _ *mcp.CallToolRequest, input GetTableSchemaInput) (*mcp.CallToolResult, any, error) {
	s, errResult := t.requireStore(ctx)
	if errResult != nil {
		return errResult, nil, nil
	}
	if input.Table == "" {
		all, err := s.AllTableSchemas(ctx)
		if err != nil {
			return toolError("Failed to read table schemas: %v", err), nil, nil
		}
		return toolJSON(all)
	}
	ts, err := s.TableSchema(ctx, input.Table)
	if err != nil {
		return toolError("Failed to read schema of %q: %v", input.Table, err), nil, nil
	}
	return toolJSON(ts)
}
