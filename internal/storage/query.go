package storage

import (
	"context"
	"database/sql"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/catalog"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/models"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/query"
)

// Query runs a filtered, sorted, paged query against table. The count and the
// page are read in one transaction so they describe the same snapshot.
func (s *Store) Query(ctx context.Context, table string, p query.Params) (*models.QueryResult, error) {
	const op = "storage.query"

	tbl, err := catalog.Lookup(table)
	if err != nil {
		return nil, err
	}
	st, err := query.Build(tbl, p)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, storageErr(op, table, err)
	}
	defer tx.Rollback()

	var total int64
	if err := tx.QueryRowContext(ctx, st.CountSQL, st.CountArgs...).Scan(&total); err != nil {
		return nil, storageErr(op, table, err)
	}

	rows, err := tx.QueryContext(ctx, st.SelectSQL, st.SelectArgs...)
	if err != nil {
		return nil, storageErr(op, table, err)
	}
	raw, err := scanRecords(rows)
	rows.Close()
	if err != nil {
		return nil, storageErr(op, table, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, storageErr(op, table, err)
	}

	records := make([]models.Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, s.codec.DecodeForRead(r))
	}
	return &models.QueryResult{
		Records:    records,
		TotalCount: total,
		Limit:      st.Limit,
		Offset:     st.Offset,
	}, nil
}
