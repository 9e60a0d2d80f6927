package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/catalog"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/models"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/query"
)

// TableSchema reports the live column layout of one catalog table.
func (s *Store) TableSchema(ctx context.Context, table string) (*models.TableSchema, error) {
	tbl, err := catalog.Lookup(table)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tableSchema(ctx, tbl)
}

// AllTableSchemas reports every catalog table in declaration order.
func (s *Store) AllTableSchemas(ctx context.Context) ([]models.TableSchema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.TableSchema
	for _, tbl := range catalog.Tables() {
		ts, err := s.tableSchema(ctx, tbl)
		if err != nil {
			return nil, err
		}
		out = append(out, *ts)
	}
	return out, nil
}

func (s *Store) tableSchema(ctx context.Context, tbl catalog.Table) (*models.TableSchema, error) {
	const op = "storage.table_schema"

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", query.QuoteIdent(tbl.Name)))
	if err != nil {
		return nil, storageErr(op, tbl.Name, err)
	}
	defer rows.Close()

	ts := &models.TableSchema{Table: tbl.Name, Description: tbl.Description}
	for rows.Next() {
		var (
			cid     int
			col     models.ColumnInfo
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &dflt, &pk); err != nil {
			return nil, storageErr(op, tbl.Name, err)
		}
		col.NotNull = notNull != 0
		col.PrimaryKey = pk != 0
		if dflt.Valid {
			v := dflt.String
			col.DefaultValue = &v
		}
		ts.Columns = append(ts.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, tbl.Name, err)
	}
	return ts, nil
}
