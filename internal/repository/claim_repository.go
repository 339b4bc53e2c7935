package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
)

// ClaimRepo encapsulates all database queries related to claims. It depends
// on a sql.DB connection configured at startup.
type ClaimRepo struct {
	db *sql.DB
}

// NewClaimRepo constructs a ClaimRepo with the provided DB handle.
func NewClaimRepo(db *sql.DB) *ClaimRepo {
	return &ClaimRepo{db: db}
}

const claimColumns = `id, policy_number, claim_type, incident_date, estimated_loss,
	description, status, full_name, email, phone, user_id, created_at, updated_at`

func scanClaim(row interface{ Scan(...any) error }) (*model.Claim, error) {
	var (
		cl     model.Claim
		userID sql.NullInt64
	)
	if err := row.Scan(&cl.ID, &cl.PolicyNumber, &cl.ClaimType, &cl.IncidentDate,
		&cl.EstimatedLoss, &cl.Description, &cl.Status, &cl.FullName, &cl.Email,
		&cl.Phone, &userID, &cl.CreatedAt, &cl.UpdatedAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		cl.UserID = &uid
	}
	return &cl, nil
}

// Create inserts a new claim. The caller assigns the KSUID id and status
// beforehand; a follow-up SELECT populates the timestamp columns so callers
// receive a fully populated record.
func (r *ClaimRepo) Create(ctx context.Context, cl *model.Claim) error {
	const qInsert = `INSERT INTO claims
		(id, policy_number, claim_type, incident_date, estimated_loss,
		 description, status, full_name, email, phone, user_id)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`
	var userID any
	if cl.UserID != nil {
		userID = *cl.UserID
	}
	if _, err := r.db.ExecContext(ctx, qInsert, cl.ID, cl.PolicyNumber, cl.ClaimType,
		cl.IncidentDate, cl.EstimatedLoss, cl.Description, cl.Status,
		cl.FullName, cl.Email, cl.Phone, userID); err != nil {
		return err
	}
	const qSelect = "SELECT created_at, updated_at FROM claims WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, cl.ID).Scan(&cl.CreatedAt, &cl.UpdatedAt)
}

// GetByID fetches a claim by id, returning ErrClaimNotFound when absent.
func (r *ClaimRepo) GetByID(ctx context.Context, id string) (*model.Claim, error) {
	const q = "SELECT " + claimColumns + " FROM claims WHERE id = ?"
	cl, err := scanClaim(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClaimNotFound
		}
		return nil, err
	}
	return cl, nil
}

// List returns one page of claims plus the total row count for the filter.
// Newest first. Search matches policy number, claim type, submitter name,
// email and description.
func (r *ClaimRepo) List(ctx context.Context, q ListQuery) ([]model.Claim, int64, error) {
	q = q.Normalize()
	where := []string{}
	args := []any{}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, `(LOWER(policy_number) LIKE ? OR LOWER(claim_type) LIKE ?
			OR LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(description) LIKE ?)`)
		args = append(args, needle, needle, needle, needle, needle)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM claims WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := "SELECT " + claimColumns + " FROM claims WHERE " + cond +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, q.Offset())
	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Claim, 0, q.Limit)
	for rows.Next() {
		cl, err := scanClaim(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *cl)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateStatus sets the status column. ErrClaimNotFound when no row matched.
func (r *ClaimRepo) UpdateStatus(ctx context.Context, id, status string) error {
	const q = "UPDATE claims SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrClaimNotFound
	}
	return nil
}

// Delete removes a claim and its documents. ErrClaimNotFound when absent.
func (r *ClaimRepo) Delete(ctx context.Context, id string) error {
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
	if _, err = tx.ExecContext(ctx, "DELETE FROM documents WHERE claim_id = ?", id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM claims WHERE id = ?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrClaimNotFound
		return err
	}
	return nil
}
