package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
)

// OutsourcingRepo encapsulates all database queries related to outsourcing
// requests. The services list is persisted as a JSON array in one column.
type OutsourcingRepo struct {
	db *sql.DB
}

// NewOutsourcingRepo constructs an OutsourcingRepo with the provided DB handle.
func NewOutsourcingRepo(db *sql.DB) *OutsourcingRepo {
	return &OutsourcingRepo{db: db}
}

const outsourcingColumns = `id, organization_name, services, nature_of_outsourcing,
	budget_range, status, contact_name, email, phone, user_id, created_at, updated_at`

func scanOutsourcing(row interface{ Scan(...any) error }) (*model.OutsourcingRequest, error) {
	var (
		or       model.OutsourcingRequest
		services []byte
		userID   sql.NullInt64
	)
	if err := row.Scan(&or.ID, &or.OrganizationName, &services, &or.NatureOfOutsourcing,
		&or.BudgetRange, &or.Status, &or.ContactName, &or.Email, &or.Phone, &userID,
		&or.CreatedAt, &or.UpdatedAt); err != nil {
		return nil, err
	}
	if len(services) > 0 {
		if err := json.Unmarshal(services, &or.Services); err != nil {
			return nil, fmt.Errorf("outsourcing %s: decode services column: %w", or.ID, err)
		}
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		or.UserID = &uid
	}
	return &or, nil
}

// Create inserts a new outsourcing request with a caller-assigned id and status.
func (r *OutsourcingRepo) Create(ctx context.Context, or *model.OutsourcingRequest) error {
	services, err := json.Marshal(or.Services)
	if err != nil {
		return err
	}
	const qInsert = `INSERT INTO outsourcing_requests
		(id, organization_name, services, nature_of_outsourcing, budget_range,
		 status, contact_name, email, phone, user_id)
		VALUES (?,?,?,?,?,?,?,?,?,?)`
	var userID any
	if or.UserID != nil {
		userID = *or.UserID
	}
	if _, err := r.db.ExecContext(ctx, qInsert, or.ID, or.OrganizationName, services,
		or.NatureOfOutsourcing, or.BudgetRange, or.Status, or.ContactName,
		or.Email, or.Phone, userID); err != nil {
		return err
	}
	const qSelect = "SELECT created_at, updated_at FROM outsourcing_requests WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, or.ID).Scan(&or.CreatedAt, &or.UpdatedAt)
}

// GetByID fetches an outsourcing request by id, returning
// ErrOutsourcingNotFound when absent.
func (r *OutsourcingRepo) GetByID(ctx context.Context, id string) (*model.OutsourcingRequest, error) {
	const q = "SELECT " + outsourcingColumns + " FROM outsourcing_requests WHERE id = ?"
	or, err := scanOutsourcing(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOutsourcingNotFound
		}
		return nil, err
	}
	return or, nil
}

// List returns one page of outsourcing requests plus the total count.
// Search matches organization name, contact name and email.
func (r *OutsourcingRepo) List(ctx context.Context, q ListQuery) ([]model.OutsourcingRequest, int64, error) {
	q = q.Normalize()
	where := []string{}
	args := []any{}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, `(LOWER(organization_name) LIKE ? OR LOWER(contact_name) LIKE ? OR LOWER(email) LIKE ?)`)
		args = append(args, needle, needle, needle)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM outsourcing_requests WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := "SELECT " + outsourcingColumns + " FROM outsourcing_requests WHERE " + cond +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, q.Offset())
	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.OutsourcingRequest, 0, q.Limit)
	for rows.Next() {
		or, err := scanOutsourcing(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *or)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateStatus sets the status column. ErrOutsourcingNotFound when no row matched.
func (r *OutsourcingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	const q = "UPDATE outsourcing_requests SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOutsourcingNotFound
	}
	return nil
}

// Delete removes an outsourcing request and its documents.
// ErrOutsourcingNotFound when absent.
func (r *OutsourcingRepo) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, "DELETE FROM documents WHERE outsourcing_id = ?", id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM outsourcing_requests WHERE id = ?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrOutsourcingNotFound
		return err
	}
	return nil
}
