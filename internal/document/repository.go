// Package document provides read access to documents shared with a tenant:
// contracts, invoices, briefs. Documents are provisioned out of band and
// viewed through the portal.
package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clientdesk/portal/internal/session"
)

// ErrNotFound is returned when a document does not exist or is outside the
// caller's scope.
var ErrNotFound = errors.New("document not found")

// Document is one file shared with an organization (or a single orgless user).
type Document struct {
	ID         string    `json:"id"`
	OrgID      *string   `json:"organizationId,omitempty"`
	UploadedBy string    `json:"uploadedBy"`
	Title      string    `json:"title"`
	FileKey    string    `json:"fileKey"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	MimeType   string    `json:"mimeType"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Repository handles document database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new document Repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const documentColumns = `id, org_id, uploaded_by, title, file_key, file_name,
	file_size, mime_type, category, created_at`

func scanDocument(row pgx.Row) (*Document, error) {
	d := &Document{}
	err := row.Scan(&d.ID, &d.OrgID, &d.UploadedBy, &d.Title, &d.FileKey,
		&d.FileName, &d.FileSize, &d.MimeType, &d.Category, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return d, nil
}

// List returns the caller's documents, newest first: everything in their
// organization, or their own documents when they belong to no organization.
func (r *Repository) List(ctx context.Context, caller session.Identity) ([]Document, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if caller.OrgID != nil {
		rows, err = r.db.Query(ctx,
			`SELECT `+documentColumns+` FROM documents
			 WHERE org_id = $1 ORDER BY created_at DESC`,
			*caller.OrgID)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT `+documentColumns+` FROM documents
			 WHERE org_id IS NULL AND uploaded_by = $1 ORDER BY created_at DESC`,
			caller.UserID)
	}
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := []Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *d)
	}
	return docs, rows.Err()
}

// Get fetches one document by id within the caller's scope.
func (r *Repository) Get(ctx context.Context, caller session.Identity, id string) (*Document, error) {
	if caller.OrgID != nil {
		return scanDocument(r.db.QueryRow(ctx,
			`SELECT `+documentColumns+` FROM documents WHERE id = $1 AND org_id = $2`,
			id, *caller.OrgID))
	}
	return scanDocument(r.db.QueryRow(ctx,
		`SELECT `+documentColumns+` FROM documents
		 WHERE id = $1 AND org_id IS NULL AND uploaded_by = $2`,
		id, caller.UserID))
}
