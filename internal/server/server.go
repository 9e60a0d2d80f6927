package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/logger"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/session"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/tools"
)

const (
	Name    = "profile-mcp"
	Version = "0.1.0"
)

// New creates a fully configured MCP server with all tools registered.
func New(handle *session.Handle, log *logger.Logger) *mcp.Server {
	pt := tools.NewPersonaTools(handle)
	ct := tools.NewContentTools(handle)
	rt := tools.NewProfileTools(handle)
	dt := tools.NewDatabaseTools(handle)

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    Name,
		Version: Version,
	}, nil)

	// Persona
	add(srv, log, &mcp.Tool{
		Name:        "get_persona",
		Description: "Get the personal profile",
	}, pt.GetPersona)

	add(srv, log, &mcp.Tool{
		Name:        "save_persona",
		Description: "Update fields of the personal profile",
	}, pt.SavePersona)

	// Content tables
	for _, c := range tools.ContentTables {
		add(srv, log, &mcp.Tool{
			Name:        c.QueryToolName(),
			Description: c.QueryDescription(),
		}, ct.Query(c))

		add(srv, log, &mcp.Tool{
			Name:        c.SaveToolName(),
			Description: c.SaveDescription(),
		}, ct.Save(c))

		add(srv, log, &mcp.Tool{
			Name:        c.DeleteToolName(),
			Description: c.DeleteDescription(),
		}, ct.Delete(c))
	}

	// Categories and relations
	add(srv, log, &mcp.Tool{
		Name:        "get_categories",
		Description: "List active categories, optionally under one first level",
	}, rt.GetCategories)

	add(srv, log, &mcp.Tool{
		Name:        "add_relation",
		Description: "Link two records with a typed relation",
	}, rt.AddRelation)

	add(srv, log, &mcp.Tool{
		Name:        "get_relations",
		Description: "List relations touching a record in either direction",
	}, rt.GetRelations)

	// Database
	add(srv, log, &mcp.Tool{
		Name:        "execute_custom_sql",
		Description: "Run a single SELECT, INSERT, UPDATE or DELETE statement; structural statements are rejected",
	}, dt.ExecuteSQL)

	add(srv, log, &mcp.Tool{
		Name:        "get_table_schema",
		Description: "Describe the columns of one table or of every table",
	}, dt.GetTableSchema)

	return srv
}

func add[In any](srv *mcp.Server, log *logger.Logger, tool *mcp.Tool, h tools.Handler[In]) {
	mcp.AddTool(srv, tool, tools.Logged(log, tool.Name, h))
}
