package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
)

// ResourceRepo stores public downloadable resources (brochures, proposal
// forms, rate guides).
type ResourceRepo struct {
	db *sql.DB
}

// NewResourceRepo constructs a ResourceRepo with the provided DB handle.
func NewResourceRepo(db *sql.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

// Create inserts a resource row including binary content.
func (r *ResourceRepo) Create(ctx context.Context, res *model.Resource) error {
	const q = `INSERT INTO resources (id, title, category, filename, mime_type, size, content)
		VALUES (?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q, res.ID, res.Title, res.Category,
		res.Filename, res.MimeType, res.Size, res.Content)
	return err
}

// List returns one page of resource metadata (no content). Search matches
// title and category; Status is unused for resources.
func (r *ResourceRepo) List(ctx context.Context, q ListQuery) ([]model.Resource, int64, error) {
	q = q.Normalize()
	cond := "1=1"
	args := []any{}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		cond = "(LOWER(title) LIKE ? OR LOWER(category) LIKE ?)"
		args = append(args, needle, needle)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM resources WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT id, title, category, filename, mime_type, size, created_at
		FROM resources WHERE ` + cond + ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), q.Limit, q.Offset())
	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Resource, 0, q.Limit)
	for rows.Next() {
		var res model.Resource
		if err := rows.Scan(&res.ID, &res.Title, &res.Category, &res.Filename,
			&res.MimeType, &res.Size, &res.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetByID fetches a resource including content for download.
// ErrResourceNotFound when absent.
func (r *ResourceRepo) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	const q = `SELECT id, title, category, filename, mime_type, size, content, created_at
		FROM resources WHERE id = ?`
	var res model.Resource
	err := r.db.QueryRowContext(ctx, q, id).Scan(&res.ID, &res.Title, &res.Category,
		&res.Filename, &res.MimeType, &res.Size, &res.Content, &res.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResourceNotFound
		}
		return nil, err
	}
	return &res, nil
}

// Delete removes a resource. ErrResourceNotFound when absent.
func (r *ResourceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM resources WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrResourceNotFound
	}
	return nil
}
