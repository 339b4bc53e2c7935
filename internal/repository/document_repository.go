package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
)

// DocumentRepo stores uploaded files. Binary content lives in the content
// column; metadata queries never select it so listing stays cheap.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo constructs a DocumentRepo with the provided DB handle.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Create inserts a document row including its binary content. The caller
// assigns the id and exactly one parent reference.
func (r *DocumentRepo) Create(ctx context.Context, d *model.Document) error {
	const q = `INSERT INTO documents
		(id, filename, mime_type, size, path, content, claim_id, quote_id, outsourcing_id)
		VALUES (?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q, d.ID, d.Filename, d.MimeType, d.Size,
		d.Path, d.Content, d.ClaimID, d.QuoteID, d.OutsourcingID)
	return err
}

// GetByID fetches a document including its content for download.
// ErrDocumentNotFound when absent.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT id, filename, mime_type, size, path, content,
		claim_id, quote_id, outsourcing_id, created_at
		FROM documents WHERE id = ?`
	var (
		d                             model.Document
		path                          sql.NullString
		claimID, quoteID, outsourceID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, id).Scan(&d.ID, &d.Filename, &d.MimeType,
		&d.Size, &path, &d.Content, &claimID, &quoteID, &outsourceID, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	d.Path = path.String
	if claimID.Valid {
		d.ClaimID = &claimID.String
	}
	if quoteID.Valid {
		d.QuoteID = &quoteID.String
	}
	if outsourceID.Valid {
		d.OutsourcingID = &outsourceID.String
	}
	return &d, nil
}

// ListByParent returns document metadata (no content) for one parent column
// value. column must be one of claim_id, quote_id, outsourcing_id.
func (r *DocumentRepo) ListByParent(ctx context.Context, column, parentID string) ([]model.Document, error) {
	switch column {
	case "claim_id", "quote_id", "outsourcing_id":
	default:
		return nil, errors.New("invalid document parent column: " + column)
	}
	q := `SELECT id, filename, mime_type, size, created_at FROM documents
		WHERE ` + column + ` = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Document
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Filename, &d.MimeType, &d.Size, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
