// Package dashboard aggregates the counters shown on the portal landing page.
package dashboard

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clientdesk/portal/internal/session"
)

// Repository runs the aggregate queries behind the dashboard. The service
// depends on this interface so tests can substitute a fake.
type Repository interface {
	PhotoStats(ctx context.Context, caller session.Identity) (count, bytes int64, err error)
	DocumentCount(ctx context.Context, caller session.Identity) (int64, error)
	MemberCount(ctx context.Context, caller session.Identity) (int64, error)
}

// PostgresRepository implements Repository on a pgx connection pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// PhotoStats returns the number of photos and their total byte size within
// the caller's scope.
func (r *PostgresRepository) PhotoStats(ctx context.Context, caller session.Identity) (int64, int64, error) {
	var count, bytes int64
	var err error
	if caller.OrgID != nil {
		err = r.db.QueryRow(ctx,
			`SELECT COUNT(*), COALESCE(SUM(file_size), 0) FROM photos WHERE org_id = $1`,
			*caller.OrgID,
		).Scan(&count, &bytes)
	} else {
		err = r.db.QueryRow(ctx,
			`SELECT COUNT(*), COALESCE(SUM(file_size), 0) FROM photos
			 WHERE org_id IS NULL AND uploaded_by = $1`,
			caller.UserID,
		).Scan(&count, &bytes)
	}
	if err != nil {
		return 0, 0, fmt.Errorf("photo stats: %w", err)
	}
	return count, bytes, nil
}

// DocumentCount returns the number of documents within the caller's scope.
func (r *PostgresRepository) DocumentCount(ctx context.Context, caller session.Identity) (int64, error) {
	var count int64
	var err error
	if caller.OrgID != nil {
		err = r.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM documents WHERE org_id = $1`, *caller.OrgID,
		).Scan(&count)
	} else {
		err = r.db.QueryRow(ctx,
			`SELECT COUNT(*) FROM documents WHERE org_id IS NULL AND uploaded_by = $1`,
			caller.UserID,
		).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("document count: %w", err)
	}
	return count, nil
}

// MemberCount returns the number of users in the caller's organization, or 1
// for a caller without an organization.
func (r *PostgresRepository) MemberCount(ctx context.Context, caller session.Identity) (int64, error) {
	if caller.OrgID == nil {
		return 1, nil
	}
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE org_id = $1`, *caller.OrgID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("member count: %w", err)
	}
	return count, nil
}
