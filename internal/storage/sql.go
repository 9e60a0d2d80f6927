package storage

import (
	"context"
	"regexp"
	"strings"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/models"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/profileerr"
)

var (
	allowedStatement = regexp.MustCompile(`^(SELECT|INSERT|UPDATE|DELETE)\b`)
	deniedKeyword    = regexp.MustCompile(`\b(DROP|ALTER|CREATE|TRUNCATE|ATTACH|DETACH|PRAGMA|VACUUM)\b`)
	stringLiteral    = regexp.MustCompile(`'(?:[^']|'')*'`)
)

// CheckStatement rejects anything but a single SELECT, INSERT, UPDATE or
// DELETE statement free of structural keywords. Quoted string literals are
// ignored when looking for keywords.
func CheckStatement(stmt string) error {
	const op = "storage.check_statement"

	upper := strings.ToUpper(strings.TrimSpace(stmt))
	if upper == "" {
		return profileerr.Forbidden(op, "empty statement")
	}
	if !allowedStatement.MatchString(upper) {
		return profileerr.Forbidden(op, "only SELECT, INSERT, UPDATE and DELETE statements are allowed")
	}

	bare := stringLiteral.ReplaceAllString(upper, "''")
	if kw := deniedKeyword.FindString(bare); kw != "" {
		return profileerr.Forbidden(op, "statement contains prohibited keyword "+kw)
	}
	if strings.Contains(strings.TrimRight(bare, "; \t\r\n"), ";") {
		return profileerr.Forbidden(op, "multiple statements are not allowed")
	}
	return nil
}

// ExecuteSQL runs a checked statement. Rows are returned only when fetch is
// set and the statement is a SELECT.
func (s *Store) ExecuteSQL(ctx context.Context, stmt string, params []any, fetch bool) (*models.SQLResult, error) {
	const op = "storage.execute_sql"

	if err := CheckStatement(stmt); err != nil {
		return nil, err
	}
	isSelect := strings.HasPrefix(strings.ToUpper(strings.TrimSpace(stmt)), "SELECT")

	s.mu.Lock()
	defer s.mu.Unlock()

	if isSelect && fetch {
		rows, err := s.db.QueryContext(ctx, stmt, params...)
		if err != nil {
			return nil, storageErr(op, "", err)
		}
		defer rows.Close()
		raw, err := scanRecords(rows)
		if err != nil {
			return nil, storageErr(op, "", err)
		}
		out := &models.SQLResult{Rows: make([]models.Record, 0, len(raw))}
		for _, r := range raw {
			out.Rows = append(out.Rows, s.codec.DecodeForRead(r))
		}
		out.Count = len(out.Rows)
		return out, nil
	}

	res, err := s.db.ExecContext(ctx, stmt, params...)
	if err != nil {
		return nil, storageErr(op, "", err)
	}
	out := &models.SQLResult{}
	if n, err := res.RowsAffected(); err == nil {
		out.RowsAffected = n
	}
	if id, err := res.LastInsertId(); err == nil && !isSelect {
		out.LastInsertID = id
	}
	return out, nil
}
