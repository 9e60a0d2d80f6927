// Package storage is the SQLite-backed profile store: schema setup, the
// query engine's execution side, and the CRUD facade over the catalog tables.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ncruces/go-sqlite3"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/catalog"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/codec"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/logger"
	"github.com/wagnerlima/memory-cloud/profile-mcp/internal/profileerr"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

type Options struct {
	Path           string
	Clock          codec.Clock
	DefaultPrivacy string
	Logger         *logger.Logger
}

// Store serialises every operation on a single connection.
type Store struct {
	mu             sync.Mutex
	db             *sql.DB
	codec          *codec.Codec
	defaultPrivacy string
	log            *logger.Logger
}

// Open opens (or creates) the database at opts.Path, creates missing tables
// and indexes, and seeds the persona row and default categories.
func Open(ctx context.Context, opts Options) (*Store, error) {
	if opts.Path == "" {
		return nil, errors.New("open store: empty path")
	}
	if opts.Clock == nil {
		opts.Clock = codec.NewClock(0)
	}
	if opts.DefaultPrivacy == "" {
		opts.DefaultPrivacy = catalog.PrivacyPublic
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	if opts.Path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dsn(opts.Path))
	if err != nil {
		return nil, fmt.Errorf("open profile db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping profile db: %w", err)
	}

	s := &Store{
		db:             db,
		codec:          codec.New(opts.Clock),
		defaultPrivacy: opts.DefaultPrivacy,
		log:            opts.Logger,
	}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.seed(ctx); err != nil {
		db.Close()
		return nil, err
	}
	s.log.Info("profile store ready", "path", opts.Path)
	return s, nil
}

// dsn pins _timefmt to the stored timestamp layout. With the driver's
// default, DATE and TIMESTAMP text in other shapes is decoded to time.Time
// and cannot be rendered back to the exact stored text.
func dsn(path string) string {
	params := make([]string, 0, len(pragmas)+1)
	for _, p := range pragmas {
		params = append(params, "_pragma="+p)
	}
	params = append(params, "_timefmt="+url.QueryEscape(codec.TimestampLayout))
	return "file:" + path + "?" + strings.Join(params, "&")
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Codec exposes the store's codec so callers stamp timestamps with the same
// clock.
func (s *Store) Codec() *codec.Codec {
	return s.codec
}

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate profile db: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, Indexes); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

func (s *Store) seed(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	now := s.codec.Timestamp()

	var personas int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM persona`).Scan(&personas); err != nil {
		return fmt.Errorf("count persona: %w", err)
	}
	if personas == 0 {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO persona (id, name, gender, personality, bio, privacy_level, created_time, updated_time)
			 VALUES (?, 'User', 'Not Set', 'To be improved', 'Personal profile to be improved', ?, ?, ?)`,
			catalog.PersonaID, catalog.PrivacyPrivate, now, now,
		)
		if err != nil {
			return fmt.Errorf("seed persona: %w", err)
		}
		s.log.Info("seeded default persona")
	}

	added := 0
	for _, c := range defaultCategories {
		var n int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM category WHERE first_level = ? AND second_level = ?`,
			c.first, c.second,
		).Scan(&n)
		if err != nil {
			return fmt.Errorf("count category: %w", err)
		}
		if n > 0 {
			continue
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO category (first_level, second_level, description, privacy_level, created_time, updated_time)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			c.first, c.second, c.description, s.defaultPrivacy, now, now,
		)
		if err != nil {
			return fmt.Errorf("seed category %s/%s: %w", c.first, c.second, err)
		}
		added++
	}
	if added > 0 {
		s.log.Info("seeded default categories", "count", added)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	return nil
}

// storageErr classifies a driver error. Constraint failures are the caller's
// fault and surface as validation errors.
func storageErr(op, table string, err error) error {
	if errors.Is(err, sqlite3.CONSTRAINT) {
		return &profileerr.Error{
			Code:    profileerr.CodeValidation,
			Op:      op,
			Table:   table,
			Field:   notNullColumn(err.Error()),
			Message: err.Error(),
			Cause:   err,
		}
	}
	return profileerr.Storage(op, table, err)
}

// notNullColumn extracts col from "NOT NULL constraint failed: table.col".
func notNullColumn(msg string) string {
	_, rest, ok := strings.Cut(msg, "NOT NULL constraint failed: ")
	if !ok {
		return ""
	}
	if i := strings.IndexAny(rest, " \n"); i >= 0 {
		rest = rest[:i]
	}
	if _, col, ok := strings.Cut(rest, "."); ok {
		return col
	}
	return rest
}

type scanner interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// scanRecords reads every remaining row into a column-keyed map.
func scanRecords(rows scanner) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			row[c] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
