package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
)

// DiasporaRepo encapsulates all database queries related to diaspora-service
// requests.
type DiasporaRepo struct {
	db *sql.DB
}

// NewDiasporaRepo constructs a DiasporaRepo with the provided DB handle.
func NewDiasporaRepo(db *sql.DB) *DiasporaRepo {
	return &DiasporaRepo{db: db}
}

const diasporaColumns = `id, country, timezone, service_interest, scheduled_at,
	status, full_name, email, phone, user_id, created_at, updated_at`

func scanDiaspora(row interface{ Scan(...any) error }) (*model.DiasporaRequest, error) {
	var (
		dr          model.DiasporaRequest
		scheduledAt sql.NullTime
		userID      sql.NullInt64
	)
	if err := row.Scan(&dr.ID, &dr.Country, &dr.Timezone, &dr.ServiceInterest,
		&scheduledAt, &dr.Status, &dr.FullName, &dr.Email, &dr.Phone, &userID,
		&dr.CreatedAt, &dr.UpdatedAt); err != nil {
		return nil, err
	}
	if scheduledAt.Valid {
		t := scheduledAt.Time
		dr.ScheduledAt = &t
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		dr.UserID = &uid
	}
	return &dr, nil
}

// Create inserts a new diaspora request with a caller-assigned id and status.
func (r *DiasporaRepo) Create(ctx context.Context, dr *model.DiasporaRequest) error {
	const qInsert = `INSERT INTO diaspora_requests
		(id, country, timezone, service_interest, status, full_name, email, phone, user_id)
		VALUES (?,?,?,?,?,?,?,?,?)`
	var userID any
	if dr.UserID != nil {
		userID = *dr.UserID
	}
	if _, err := r.db.ExecContext(ctx, qInsert, dr.ID, dr.Country, dr.Timezone,
		dr.ServiceInterest, dr.Status, dr.FullName, dr.Email, dr.Phone, userID); err != nil {
		return err
	}
	const qSelect = "SELECT created_at, updated_at FROM diaspora_requests WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, dr.ID).Scan(&dr.CreatedAt, &dr.UpdatedAt)
}

// GetByID fetches a diaspora request by id, returning ErrDiasporaNotFound
// when absent.
func (r *DiasporaRepo) GetByID(ctx context.Context, id string) (*model.DiasporaRequest, error) {
	const q = "SELECT " + diasporaColumns + " FROM diaspora_requests WHERE id = ?"
	dr, err := scanDiaspora(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDiasporaNotFound
		}
		return nil, err
	}
	return dr, nil
}

// List returns one page of diaspora requests plus the total count. Search
// matches country, service interest, requester name and email.
func (r *DiasporaRepo) List(ctx context.Context, q ListQuery) ([]model.DiasporaRequest, int64, error) {
	q = q.Normalize()
	where := []string{}
	args := []any{}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, `(LOWER(country) LIKE ? OR LOWER(service_interest) LIKE ?
			OR LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)`)
		args = append(args, needle, needle, needle, needle)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM diaspora_requests WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := "SELECT " + diasporaColumns + " FROM diaspora_requests WHERE " + cond +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, q.Offset())
	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.DiasporaRequest, 0, q.Limit)
	for rows.Next() {
		dr, err := scanDiaspora(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *dr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateStatus sets the status column. ErrDiasporaNotFound when no row matched.
func (r *DiasporaRepo) UpdateStatus(ctx context.Context, id, status string) error {
	const q = "UPDATE diaspora_requests SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDiasporaNotFound
	}
	return nil
}

// Delete removes a diaspora request. ErrDiasporaNotFound when absent.
func (r *DiasporaRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM diaspora_requests WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDiasporaNotFound
	}
	return nil
}
