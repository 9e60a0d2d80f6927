package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/models"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/session"
)

// ProfileTools serves categories and the relation graph.
type ProfileTools struct {
	base
}

func NewProfileTools(h *session.Handle) *ProfileTools {
	return &ProfileTools{base{Handle: h}}
}

type GetCategoriesInput struct {
	FirstLevel string `json:"first_level,omitempty" jsonschema:"Only categories under this first level, e.g. Technology"`
}

type AddRelationInput struct {
	SourceTable  string `json:"source_table" jsonschema:"Table of the source record"`
	SourceID     int64  `json:"source_id" jsonschema:"Id of the source record"`
	TargetTable  string `json:"target_table" jsonschema:"Table of the target record"`
	TargetID     int64  `json:"target_id" jsonschema:"Id of the target record"`
	RelationType string `json:"relation_type" jsonschema:"Relation type, e.g. supports, derived_from"`
	Strength     string `json:"strength,omitempty" jsonschema:"strong, medium (default) or weak"`
	Note         string `json:"note,omitempty" jsonschema:"Free-form note"`
}

type GetRelationsInput struct {
	Table        string `json:"table" jsonschema:"Table of the record"`
	ID           int64  `json:"id" jsonschema:"Id of the record"`
	RelationType string `json:"relation_type,omitempty" jsonschema:"Only relations of this type"`
}

func (t *ProfileTools) GetCategories(ctx context.Context, _ *mcp.CallToolRequest, input GetCategoriesInput) (*mcp.CallToolResult, any, error) {
	s, errResult := t.requireStore(ctx)
	if errResult != nil {
		return errResult, nil, nil
	}
	cats, err := s.Categories(ctx, input.FirstLevel)
	if err != nil {
		return toolError("Failed to list categories: %v", err), nil, nil
	}
	return toolJSON(cats)
}

func (t *ProfileTools) AddRelation(ctx context.Context, _ *mcp.CallToolRequest, input AddRelationInput) (*mcp.CallToolResult, any, error) {
	s, errResult := t.requireStore(ctx)
	if errResult != nil {
		return errResult, nil, nil
	}
	id, err := s.AddRelation(ctx, models.RelationInput{
		SourceTable:  input.SourceTable,
		SourceID:     input.SourceID,
		TargetTable:  input.TargetTable,
		TargetID:     input.TargetID,
		RelationType: input.RelationType,
		Strength:     input.Strength,
		Note:         input.Note,
	})
	if err != nil {
		return toolError("Failed to add relation: %v", err), nil, nil
	}
	return readBack(ctx, s, "relations", id)
}

func (t *ProfileTools) GetRelations(ctx context.Context, _ *mcp.CallToolRequest, input GetRelationsInput) (*mcp.CallToolResult, any, error) {
	s, errResult := t.requireStore(ctx)
	if errResult != nil {
		return errResult, nil, nil
	}
	rels, err := s.Relations(ctx, input.Table, input.ID, input.RelationType)
	if err != nil {
		return toolError("Failed to get relations: %v", err), nil, nil
	}
	return toolJSON(rels)
}
