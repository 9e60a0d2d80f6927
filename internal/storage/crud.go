package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/catalog"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/codec"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/models"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/profileerr"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/query"
)

type DeleteOptions struct {
	// CascadeRelations also removes relations whose source or target is the
	// deleted record.
	CascadeRelations bool
}

// Insert adds a record to table and returns its id. A caller-supplied id is
// ignored; privacy_level falls back to the store default.
func (s *Store) Insert(ctx context.Context, table string, fields map[string]any) (int64, error) {
	const op = "storage.insert"

	tbl, err := catalog.Lookup(table)
	if err != nil {
		return 0, err
	}
	if tbl.Name == "persona" {
		return 0, profileerr.Validation(op, table, "id", nil, "the persona is a single fixed row; update it instead")
	}

	clean := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		if k == "id" {
			continue
		}
		clean[k] = v
	}
	if tbl.HasColumn("privacy_level") {
		if v, ok := clean["privacy_level"]; !ok || v == nil {
			clean["privacy_level"] = s.defaultPrivacy
		}
	}
	if err := tbl.ValidateFields(clean); err != nil {
		return 0, err
	}
	if err := tbl.CheckRequired(clean); err != nil {
		return 0, err
	}
	stored := s.codec.EncodeForWrite(clean, false)

	cols := sortedKeys(stored)
	args := make([]any, len(cols))
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = query.QuoteIdent(c)
		args[i] = stored[c]
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		query.QuoteIdent(tbl.Name),
		strings.Join(quoted, ", "),
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", "),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return 0, storageErr(op, table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr(op, table, err)
	}
	return id, nil
}

// Update applies fields to the record with the given id. It reports false when
// no such record exists. An empty change set succeeds without writing.
func (s *Store) Update(ctx context.Context, table string, id int64, fields map[string]any) (bool, error) {
	const op = "storage.update"

	tbl, err := catalog.Lookup(table)
	if err != nil {
		return false, err
	}

	clean := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "id" || k == codec.FieldCreatedTime {
			continue
		}
		clean[k] = v
	}
	if len(clean) == 0 {
		return true, nil
	}
	if err := tbl.ValidateFields(clean); err != nil {
		return false, err
	}
	stored := s.codec.EncodeForWrite(clean, true)

	cols := sortedKeys(stored)
	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = query.QuoteIdent(c) + " = ?"
		args = append(args, stored[c])
	}
	args = append(args, id)
	stmt := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", query.QuoteIdent(tbl.Name), strings.Join(sets, ", "))

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return false, storageErr(op, table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr(op, table, err)
	}
	return n > 0, nil
}

// Delete removes a record without touching relations that point at it.
func (s *Store) Delete(ctx context.Context, table string, id int64) (bool, error) {
	return s.DeleteWithOptions(ctx, table, id, DeleteOptions{})
}

func (s *Store) DeleteWithOptions(ctx context.Context, table string, id int64, opts DeleteOptions) (bool, error) {
	const op = "storage.delete"

	tbl, err := catalog.Lookup(table)
	if err != nil {
		return false, err
	}
	if tbl.Name == "persona" {
		return false, profileerr.Validation(op, table, "id", id, "the persona cannot be deleted")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, storageErr(op, table, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = ?", query.QuoteIdent(tbl.Name)), id)
	if err != nil {
		return false, storageErr(op, table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr(op, table, err)
	}
	if n == 0 {
		return false, nil
	}

	if opts.CascadeRelations && tbl.Name != "relations" {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM relations WHERE (source_table = ? AND source_id = ?) OR (target_table = ? AND target_id = ?)`,
			tbl.Name, id, tbl.Name, id,
		)
		if err != nil {
			return false, storageErr(op, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, storageErr(op, table, err)
	}
	return true, nil
}

// GetByID returns the record or nil when it does not exist.
func (s *Store) GetByID(ctx context.Context, table string, id int64) (models.Record, error) {
	const op = "storage.get"

	tbl, err := catalog.Lookup(table)
	if err != nil {
		return nil, err
	}
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", columnList(tbl), query.QuoteIdent(tbl.Name))

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, stmt, id)
	if err != nil {
		return nil, storageErr(op, table, err)
	}
	defer rows.Close()

	raw, err := scanRecords(rows)
	if err != nil {
		return nil, storageErr(op, table, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return s.codec.DecodeForRead(raw[0]), nil
}

func (s *Store) GetPersona(ctx context.Context) (models.Record, error) {
	return s.GetByID(ctx, "persona", catalog.PersonaID)
}

func (s *Store) UpdatePersona(ctx context.Context, fields map[string]any) (bool, error) {
	return s.Update(ctx, "persona", catalog.PersonaID, fields)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func columnList(tbl catalog.Table) string {
	names := tbl.ColumnNames()
	for i, n := range names {
		names[i] = query.QuoteIdent(n)
	}
	return strings.Join(names, ", ")
}
