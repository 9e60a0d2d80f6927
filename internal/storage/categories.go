package storage

import (
	"context"
	"database/sql"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/models"
)

// Categories returns active categories, optionally limited to one first level.
func (s *Store) Categories(ctx context.Context, firstLevel string) ([]models.Category, error) {
	const op = "storage.categories"

	stmt := `SELECT id, first_level, second_level, description FROM category WHERE is_active = 1`
	var args []any
	if firstLevel != "" {
		stmt += ` AND first_level = ?`
		args = append(args, firstLevel)
	}
	stmt += ` ORDER BY id`

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, storageErr(op, "category", err)
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		var c models.Category
		var desc sql.NullString
		if err := rows.Scan(&c.ID, &c.FirstLevel, &c.SecondLevel, &desc); err != nil {
			return nil, storageErr(op, "category", err)
		}
		c.Description = desc.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(op, "category", err)
	}
	return out, nil
}
