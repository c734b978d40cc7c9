package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"career-backend/internal/shared/storage/artifact"
)

const table = "report_artifacts"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Store implements artifact.Store on the report_artifacts table.
type Store struct {
	DB *sql.DB
}

// New wraps an open database handle.
func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Save upserts the artifact row keyed by name.
func (s *Store) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := artifact.ValidateName(name); err != nil {
		return "", err
	}
	if s.DB == nil {
		return "", fmt.Errorf("%w: database not configured", artifact.ErrStorage)
	}

	_, err := psql.Insert(table).
		Columns("name", "content", "content_type", "size_bytes").
		Values(name, data, artifact.ContentType, int64(len(data))).
		Suffix("ON CONFLICT (name) DO UPDATE SET content = EXCLUDED.content, content_type = EXCLUDED.content_type, size_bytes = EXCLUDED.size_bytes, updated_at = NOW()").
		RunWith(s.DB).
		ExecContext(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: upsert %s: %v", artifact.ErrStorage, name, err)
	}
	return name, nil
}

// Load reads the artifact content for id.
func (s *Store) Load(ctx context.Context, id string) ([]byte, error) {
	if err := artifact.ValidateName(id); err != nil {
		return nil, fmt.Errorf("%w: %v", artifact.ErrNotFound, err)
	}
	if s.DB == nil {
		return nil, fmt.Errorf("%w: database not configured", artifact.ErrStorage)
	}

	var content []byte
	err := psql.Select("content").
		From(table).
		Where(sq.Eq{"name": id}).
		RunWith(s.DB).
		QueryRowContext(ctx).
		Scan(&content)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, artifact.ErrNotFound
		}
		return nil, fmt.Errorf("%w: select %s: %v", artifact.ErrStorage, id, err)
	}
	return content, nil
}

var _ artifact.Store = (*Store)(nil)
