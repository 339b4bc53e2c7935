package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
)

// ConsultationRepo encapsulates all database queries related to consultation
// requests, including the scheduling mutation that assigns a meeting slot.
type ConsultationRepo struct {
	db *sql.DB
}

// NewConsultationRepo constructs a ConsultationRepo with the provided DB handle.
func NewConsultationRepo(db *sql.DB) *ConsultationRepo {
	return &ConsultationRepo{db: db}
}

const consultationColumns = `id, service_type, scheduled_at, meeting_link,
	duration_minutes, notes, status, full_name, email, phone, user_id,
	created_at, updated_at`

func scanConsultation(row interface{ Scan(...any) error }) (*model.Consultation, error) {
	var (
		cn          model.Consultation
		scheduledAt sql.NullTime
		meetingLink sql.NullString
		duration    sql.NullInt64
		notes       sql.NullString
		userID      sql.NullInt64
	)
	if err := row.Scan(&cn.ID, &cn.ServiceType, &scheduledAt, &meetingLink, &duration,
		&notes, &cn.Status, &cn.FullName, &cn.Email, &cn.Phone, &userID,
		&cn.CreatedAt, &cn.UpdatedAt); err != nil {
		return nil, err
	}
	if scheduledAt.Valid {
		t := scheduledAt.Time
		cn.ScheduledAt = &t
	}
	cn.MeetingLink = meetingLink.String
	cn.DurationMinutes = int(duration.Int64)
	cn.Notes = notes.String
	if userID.Valid {
		uid := uint64(userID.Int64)
		cn.UserID = &uid
	}
	return &cn, nil
}

// Create inserts a new consultation request with a caller-assigned id and status.
func (r *ConsultationRepo) Create(ctx context.Context, cn *model.Consultation) error {
	const qInsert = `INSERT INTO consultations
		(id, service_type, notes, status, full_name, email, phone, user_id)
		VALUES (?,?,?,?,?,?,?,?)`
	var userID any
	if cn.UserID != nil {
		userID = *cn.UserID
	}
	if _, err := r.db.ExecContext(ctx, qInsert, cn.ID, cn.ServiceType, cn.Notes,
		cn.Status, cn.FullName, cn.Email, cn.Phone, userID); err != nil {
		return err
	}
	const qSelect = "SELECT created_at, updated_at FROM consultations WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, cn.ID).Scan(&cn.CreatedAt, &cn.UpdatedAt)
}

// GetByID fetches a consultation by id, returning ErrConsultationNotFound when absent.
func (r *ConsultationRepo) GetByID(ctx context.Context, id string) (*model.Consultation, error) {
	const q = "SELECT " + consultationColumns + " FROM consultations WHERE id = ?"
	cn, err := scanConsultation(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConsultationNotFound
		}
		return nil, err
	}
	return cn, nil
}

// List returns one page of consultations plus the total count. Search
// matches service type, requester name and email.
func (r *ConsultationRepo) List(ctx context.Context, q ListQuery) ([]model.Consultation, int64, error) {
	q = q.Normalize()
	where := []string{}
	args := []any{}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, `(LOWER(service_type) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)`)
		args = append(args, needle, needle, needle)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM consultations WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := "SELECT " + consultationColumns + " FROM consultations WHERE " + cond +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, q.Offset())
	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Consultation, 0, q.Limit)
	for rows.Next() {
		cn, err := scanConsultation(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *cn)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Schedule assigns a meeting slot and flips the status to scheduled in one
// statement. ErrConsultationNotFound when no row matched.
func (r *ConsultationRepo) Schedule(ctx context.Context, id string, at time.Time, link string, durationMinutes int) error {
	const q = `UPDATE consultations
		SET scheduled_at = ?, meeting_link = ?, duration_minutes = ?,
		    status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, at, link, durationMinutes,
		model.ConsultationStatusScheduled, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConsultationNotFound
	}
	return nil
}

// UpdateStatus sets the status column. ErrConsultationNotFound when no row matched.
func (r *ConsultationRepo) UpdateStatus(ctx context.Context, id, status string) error {
	const q = "UPDATE consultations SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConsultationNotFound
	}
	return nil
}

// Delete removes a consultation. ErrConsultationNotFound when absent.
func (r *ConsultationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM consultations WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConsultationNotFound
	}
	return nil
}
