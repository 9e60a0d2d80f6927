package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/catalog"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/query"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/session"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/storage"
)

// ContentTable describes how one content table is exposed as tools.
type ContentTable struct {
	Table       string
	Plural      string
	DefaultSort string
	Required    []string
}

// ContentTables lists the content tables in the order their tools are
// registered.
var ContentTables = []ContentTable{
	{Table: "memory", Plural: "memories", Required: []string{"content", "memory_type", "importance"}},
	{Table: "viewpoint", Plural: "viewpoints", Required: []string{"content"}},
	{Table: "insight", Plural: "insights", Required: []string{"content"}},
	{Table: "goal", Plural: "goals", DefaultSort: "deadline", Required: []string{"content", "type"}},
	{Table: "preference", Plural: "preferences", Required: []string{"content"}},
	{Table: "methodology", Plural: "methodologies", Required: []string{"content"}},
	{Table: "focus", Plural: "focuses", DefaultSort: "priority", Required: []string{"content", "priority"}},
	{Table: "prediction", Plural: "predictions", Required: []string{"content", "timeframe"}},
}

func (c ContentTable) QueryToolName() string  { return "query_" + c.Plural }
func (c ContentTable) SaveToolName() string   { return "save_" + c.Table }
func (c ContentTable) DeleteToolName() string { return "delete_" + c.Table }

func (c ContentTable) description() string {
	d, err := catalog.Describe(c.Table)
	if err != nil {
		return c.Table
	}
	return strings.ToLower(d)
}

func (c ContentTable) QueryDescription() string {
	return fmt.Sprintf("Query %s. Filter keys use suffixes: <field>_contains, _in, _is, _gte, _lte, _from, _to, plus ids, keywords_contain_any and keywords_contain_all", c.description())
}

func (c ContentTable) SaveDescription() string {
	return fmt.Sprintf("Create a %s record, or update it when id is given. Required on create: %s", c.Table, strings.Join(c.Required, ", "))
}

func (c ContentTable) DeleteDescription() string {
	return fmt.Sprintf("Delete a %s record by id", c.Table)
}

type QueryInput struct {
	Filter    map[string]any `json:"filter,omitempty" jsonschema:"Filter conditions keyed by field and suffix, e.g. {\"importance_gte\": 7}"`
	SortBy    string         `json:"sort_by,omitempty" jsonschema:"Column to sort by"`
	SortOrder string         `json:"sort_order,omitempty" jsonschema:"asc or desc (default desc)"`
	Limit     *int           `json:"limit,omitempty" jsonschema:"Page size (default 20, at most 1000)"`
	Offset    int            `json:"offset,omitempty" jsonschema:"Rows to skip"`
	Strict    bool           `json:"strict,omitempty" jsonschema:"Reject unknown filter keys instead of ignoring them"`
}

type SaveInput struct {
	ID     int64          `json:"id,omitempty" jsonschema:"Existing record id; omit to create"`
	Fields map[string]any `json:"fields" jsonschema:"Column values to write"`
}

type DeleteInput struct {
	ID               int64 `json:"id" jsonschema:"Record id"`
	CascadeRelations bool  `json:"cascade_relations,omitempty" jsonschema:"Also delete relations pointing at the record"`
}

// ContentTools serves query, save and delete for the content tables.
type ContentTools struct {
	base
}

func NewContentTools(h *session.Handle) *ContentTools {
	return &ContentTools{base{Handle: h}}
}

func (t *ContentTools) Query(c ContentTable) Handler[QueryInput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, any, error) {
		s, errResult := t.requireStore(ctx)
		if errResult != nil {
			return errResult, nil, nil
		}
		sortBy := input.SortBy
		if sortBy == "" {
			sortBy = c.DefaultSort
		}
		res, err := s.Query(ctx, c.Table, query.Params{
			Filters:   input.Filter,
			SortBy:    sortBy,
			SortOrder: input.SortOrder,
			Limit:     query.Limit(pageLimit(input.Limit)),
			Offset:    input.Offset,
			Strict:    input.Strict,
		})
		if err != nil {
			return toolError("Failed to query %s: %v", c.Plural, err), nil, nil
		}
		return toolJSON(res)
	}
}

func (t *ContentTools) Save(c ContentTable) Handler[SaveInput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SaveInput) (*mcp.CallToolResult, any, error) {
		s, errResult := t.requireStore(ctx)
		if errResult != nil {
			return errResult, nil, nil
		}

		id := input.ID
		if id != 0 {
			ok, err := s.Update(ctx, c.Table, id, input.Fields)
			if err != nil {
				return toolError("Failed to update %s %d: %v", c.Table, id, err), nil, nil
			}
			if !ok {
				return toolError("%s %d not found", c.Table, id), nil, nil
			}
		} else {
			if missing := missingFields(input.Fields, c.Required); len(missing) > 0 {
				return toolError("Missing required fields for %s: %s", c.Table, strings.Join(missing, ", ")), nil, nil
			}
			var err error
			id, err = s.Insert(ctx, c.Table, input.Fields)
			if err != nil {
				return toolError("Failed to create %s: %v", c.Table, err), nil, nil
			}
		}
		return readBack(ctx, s, c.Table, id)
	}
}

func (t *ContentTools) Delete(c ContentTable) Handler[DeleteInput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DeleteInput) (*mcp.CallToolResult, any, error) {
		s, errResult := t.requireStore(ctx)
		if errResult != nil {
			return errResult, nil, nil
		}
		if input.ID <= 0 {
			return toolError("A positive id is required"), nil, nil
		}
		ok, err := s.DeleteWithOptions(ctx, c.Table, input.ID, storage.DeleteOptions{CascadeRelations: input.CascadeRelations})
		if err != nil {
			return toolError("Failed to delete %s %d: %v", c.Table, input.ID, err), nil, nil
		}
		if !ok {
			return toolError("%s %d not found", c.Table, input.ID), nil, nil
		}
		return toolText(fmt.Sprintf("Deleted %s %d.", c.Table, input.ID)), nil, nil
	}
}

// Page sizes for the query tools. The engine itself takes any limit.
const (
	DefaultQueryLimit = query.DefaultLimit
	MaxQueryLimit     = 1000
)

// pageLimit resolves the limit a query tool asks the engine for. Negative
// values pass through so the engine rejects them.
func pageLimit(requested *int) int {
	if requested == nil {
		return DefaultQueryLimit
	}
	return min(*requested, MaxQueryLimit)
}

func readBack(ctx context.Context, s *storage.Store, table string, id int64) (*mcp.CallToolResult, any, error) {
	rec, err := s.GetByID(ctx, table, id)
	if err != nil {
		return toolError("Saved %s %d but could not read it back: %v", table, id, err), nil, nil
	}
	if rec == nil {
		return toolError("%s %d not found", table, id), nil, nil
	}
	return toolJSON(rec)
}

func missingFields(fields map[string]any, required []string) []string {
	var missing []string
	for _, name := range required {
		v, ok := fields[name]
		if !ok || v == nil {
			missing = append(missing, name)
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
