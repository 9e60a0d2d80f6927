package storage

import (
	"context"
	"reflect"
	"testing"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/models"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/profileerr"
)

func TestCheckStatement(t *testing.T) {
	tests := []struct {
		stmt    string
		allowed bool
	}{
		{"SELECT * FROM memory", true},
		{"  select content from memory where id = ?", true},
		{"SELECT created_time, updated_time FROM goal", true},
		{"SELECT * FROM memory WHERE content = 'please drop it; alter nothing'", true},
		{"UPDATE focus SET status = 'paused' WHERE id = 1;", true},
		{"DELETE FROM memory WHERE id = 3", true},
		{"DROP TABLE memory", false},
		{"CREATE TABLE x (id INTEGER)", false},
		{"PRAGMA table_info(memory)", false},
		{"SELECT 1; DROP TABLE memory", false},
		{"INSERT INTO memory (content) VALUES ('x'); DELETE FROM memory", false},
		{"SELECT * FROM memory WHERE 1 = 1 /* ATTACH */", false},
		{"DELETE FROM memory WHERE id IN (SELECT id FROM memory); VACUUM", false},
		{"WITH x AS (SELECT 1) SELECT * FROM x", false},
		{"", false},
	}
	for _, tt := range tests {
		err := CheckStatement(tt.stmt)
		if tt.allowed && err != nil {
			t.Errorf("CheckStatement(%q) = %v, want allowed", tt.stmt, err)
		}
		if !tt.allowed && !profileerr.IsForbiddenStatement(err) {
			t.Errorf("CheckStatement(%q) = %v, want forbidden_statement", tt.stmt, err)
		}
	}
}

func TestExecuteSQL(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	res, err := s.ExecuteSQL(ctx,
		"INSERT INTO memory (content, keywords, created_time, updated_time) VALUES (?, ?, ?, ?)",
		[]any{"raw insert", `["raw"]`, fixedStamp, fixedStamp}, true)
	if err != nil {
		t.Fatalf("ExecuteSQL insert: %v", err)
	}
	if res.RowsAffected != 1 || res.LastInsertID != 1 {
		t.Errorf("insert result = %+v", res)
	}

	res, err = s.ExecuteSQL(ctx, "SELECT id, content, keywords FROM memory WHERE content = ?", []any{"raw insert"}, true)
	if err != nil {
		t.Fatalf("ExecuteSQL select: %v", err)
	}
	if res.Count != 1 {
		t.Fatalf("Count = %d, want 1", res.Count)
	}
	if !reflect.DeepEqual(res.Rows[0]["keywords"], []string{"raw"}) {
		t.Errorf("keywords = %#v", res.Rows[0]["keywords"])
	}

	if _, err := s.ExecuteSQL(ctx, "DROP TABLE memory", nil, false); !profileerr.IsForbiddenStatement(err) {
		t.Errorf("expected forbidden_statement, got %v", err)
	}
	if _, err := s.ExecuteSQL(ctx, "SELECT * FROM no_such_table", nil, true); !profileerr.IsStorage(err) {
		t.Errorf("expected storage_failed, got %v", err)
	}
}

func TestRelations(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	a, _ := s.Insert(ctx, "viewpoint", map[string]any{"content": "tests are documentation"})
	b, _ := s.Insert(ctx, "methodology", map[string]any{"content": "TDD"})
	c, _ := s.Insert(ctx, "insight", map[string]any{"content": "fast feedback wins"})

	id, err := s.AddRelation(ctx, models.RelationInput{SourceTable: "viewpoint", SourceID: a, TargetTable: "methodology", TargetID: b, RelationType: "supports"})
	if err != nil {
		t.Fatalf("AddRelation: %v", err)
	}
	if _, err := s.AddRelation(ctx, models.RelationInput{SourceTable: "insight", SourceID: c, TargetTable: "viewpoint", TargetID: a, RelationType: "derived_from", Strength: "strong", Note: "same retro"}); err != nil {
		t.Fatalf("AddRelation: %v", err)
	}

	all, err := s.Relations(ctx, "viewpoint", a, "")
	if err != nil {
		t.Fatalf("Relations: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d relations, want 2", len(all))
	}
	if all[0].ID != id || all[0].Strength != "medium" {
		t.Errorf("first relation = %+v, want default strength medium", all[0])
	}
	if all[1].Note != "same retro" || all[1].Strength != "strong" {
		t.Errorf("second relation = %+v", all[1])
	}

	// The type filter applies to both directions.
	typed, err := s.Relations(ctx, "viewpoint", a, "derived_from")
	if err != nil {
		t.Fatalf("Relations: %v", err)
	}
	if len(typed) != 1 || typed[0].RelationType != "derived_from" {
		t.Errorf("typed relations = %+v", typed)
	}

	if _, err := s.AddRelation(ctx, models.RelationInput{SourceTable: "belief", SourceID: 1, TargetTable: "memory", TargetID: 1, RelationType: "x"}); !profileerr.IsValidation(err) {
		t.Errorf("unknown source table: got %v", err)
	}
	if _, err := s.AddRelation(ctx, models.RelationInput{SourceTable: "memory", SourceID: 1, TargetTable: "memory", TargetID: 2, RelationType: "x", Strength: "huge"}); !profileerr.IsValidation(err) {
		t.Errorf("bad strength: got %v", err)
	}
	if _, err := s.Relations(ctx, "nonexistent_table", 1, ""); !profileerr.IsUnknownTable(err) {
		t.Errorf("unknown table: got %v", err)
	}
}
