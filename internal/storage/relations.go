package storage

import (
	"context"
	"database/sql"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/catalog"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/models"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/profileerr"
)

const defaultStrength = "medium"

// AddRelation records a directed edge between two records. Both ends must name
// catalog tables; the referenced rows are not checked.
func (s *Store) AddRelation(ctx context.Context, in models.RelationInput) (int64, error) {
	const op = "storage.add_relation"

	if !catalog.IsValidTable(in.SourceTable) {
		return 0, profileerr.Validation(op, "relations", "source_table", in.SourceTable, "unknown table")
	}
	if !catalog.IsValidTable(in.TargetTable) {
		return 0, profileerr.Validation(op, "relations", "target_table", in.TargetTable, "unknown table")
	}
	if in.RelationType == "" {
		return 0, profileerr.Validation(op, "relations", "relation_type", in.RelationType, "relation type is required")
	}
	strength := in.Strength
	if strength == "" {
		strength = defaultStrength
	}

	fields := map[string]any{
		"source_table":  in.SourceTable,
		"source_id":     in.SourceID,
		"target_table":  in.TargetTable,
		"target_id":     in.TargetID,
		"relation_type": in.RelationType,
		"strength":      strength,
	}
	if in.Note != "" {
		fields["note"] = in.Note
	}
	return s.Insert(ctx, "relations", fields)
}

// Relations lists edges touching the given record in either direction,
// optionally restricted to one relation type.
func (s *Store) Relations(ctx context.Context, table string, id int64, relationType string) ([]models.Relation, error) {
	const op = "storage.relations"

	if _, err := catalog.Lookup(table); err != nil {
		return nil, err
	}

	stmt := `SELECT id, source_table, source_id, target_table, target_id, relation_type, strength, note, CAST(created_time AS TEXT)
		FROM relations
		WHERE ((source_table = ? AND source_id = ?) OR (target_table = ? AND target_id = ?))`
	args := []any{table, id, table, id}
	if relationType != "" {
		stmt += ` AND relation_type = ?`
		args = append(args, relationType)
	}
	stmt += ` ORDER BY id`

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, storageErr(op, "relations", err)
	}
	defer rows.Close()

	out := []models.Relation{}
	for rows.Next() {
		var r models.Relation
		var strength, note, created sql.NullString
		if err := rows.Scan(&r.ID, &r.SourceTable, &r.SourceID, &r.TargetTable, &r.TargetID, &r.RelationType, &strength, &note, &created); err != nil {
			return nil, storageErr(op, "relations", err)
		}
		r.Strength = strength.String
		r.Note = note.String
		r.CreatedTime = created.String
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, "relations", err)
	}
	return out, nil
}
