package photo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository is the persistence contract for photo metadata. The service
// depends on this interface so tests can substitute an in-memory fake.
type Repository interface {
	Insert(ctx context.Context, p *Photo) (*Photo, error)
	List(ctx context.Context, scope Filter) ([]Photo, error)
	Get(ctx context.Context, id string, scope Filter) (*Photo, error)
	Delete(ctx context.Context, id string) error
}

// PostgresRepository implements Repository on a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const photoColumns = `id, org_id, uploaded_by, file_key, file_url, file_name,
	file_size, mime_type, category, notes, tags, alt_text, visibility, created_at`

func scanPhoto(row pgx.Row) (*Photo, error) {
	p := &Photo{}
	err := row.Scan(&p.ID, &p.OrgID, &p.UploadedBy, &p.FileKey, &p.FileURL,
		&p.FileName, &p.FileSize, &p.MimeType, &p.Category, &p.Notes,
		&p.Tags, &p.AltText, &p.Visibility, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan photo: %w", err)
	}
	return p, nil
}

// Insert persists one metadata row and returns it as stored. Re-inserting an
// already confirmed file key returns ErrDuplicateKey.
func (r *PostgresRepository) Insert(ctx context.Context, p *Photo) (*Photo, error) {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	created, err := scanPhoto(r.db.QueryRow(ctx,
		`INSERT INTO photos (org_id, uploaded_by, file_key, file_url, file_name,
			file_size, mime_type, category, notes, tags, alt_text, visibility)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+photoColumns,
		p.OrgID, p.UploadedBy, p.FileKey, p.FileURL, p.FileName,
		p.FileSize, p.MimeType, p.Category, p.Notes, tags, p.AltText, p.Visibility,
	))
	if isUniqueViolation(err) {
		return nil, ErrDuplicateKey
	}
	return created, err
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// List returns all photos matching the scope filter, newest first.
func (r *PostgresRepository) List(ctx context.Context, scope Filter) ([]Photo, error) {
	clause, args := scope.Clause(1)
	rows, err := r.db.Query(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE `+clause+` ORDER BY created_at DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	photos := []Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, *p)
	}
	return photos, rows.Err()
}

// Get fetches one photo by id, restricted to the scope filter. A photo
// outside the scope reads as not found.
func (r *PostgresRepository) Get(ctx context.Context, id string, scope Filter) (*Photo, error) {
	clause, args := scope.Clause(2)
	return scanPhoto(r.db.QueryRow(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE id = $1 AND `+clause,
		append([]any{id}, args...)...,
	))
}

// Delete removes the metadata row. Deleting an absent row is a no-op.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}
