package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
)

// PaymentRepo encapsulates all database queries related to payments.
// Metadata is stored verbatim as the JSON document the gateway supplied.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo constructs a PaymentRepo with the provided DB handle.
func NewPaymentRepo(db *sql.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

const paymentColumns = `id, amount, currency, payment_method, reference,
	transaction_id, metadata, status, email, user_id, created_at, updated_at`

func scanPayment(row interface{ Scan(...any) error }) (*model.Payment, error) {
	var (
		p        model.Payment
		metadata []byte
		userID   sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.Amount, &p.Currency, &p.PaymentMethod, &p.Reference,
		&p.TransactionID, &metadata, &p.Status, &p.Email, &userID,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		p.Metadata = metadata
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		p.UserID = &uid
	}
	return &p, nil
}

// Create inserts a new payment with caller-assigned id, transaction id and status.
func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	const qInsert = `INSERT INTO payments
		(id, amount, currency, payment_method, reference, transaction_id,
		 metadata, status, email, user_id)
		VALUES (?,?,?,?,?,?,?,?,?,?)`
	var metadata any
	if len(p.Metadata) > 0 {
		metadata = []byte(p.Metadata)
	}
	var userID any
	if p.UserID != nil {
		userID = *p.UserID
	}
	if _, err := r.db.ExecContext(ctx, qInsert, p.ID, p.Amount, p.Currency,
		p.PaymentMethod, p.Reference, p.TransactionID, metadata, p.Status,
		p.Email, userID); err != nil {
		return err
	}
	const qSelect = "SELECT created_at, updated_at FROM payments WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// GetByID fetches a payment by id, returning ErrPaymentNotFound when absent.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	const q = "SELECT " + paymentColumns + " FROM payments WHERE id = ?"
	p, err := scanPayment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns one page of payments plus the total count. Search matches
// reference, transaction id and payer email.
func (r *PaymentRepo) List(ctx context.Context, q ListQuery) ([]model.Payment, int64, error) {
	q = q.Normalize()
	where := []string{}
	args := []any{}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, `(LOWER(reference) LIKE ? OR LOWER(transaction_id) LIKE ? OR LOWER(email) LIKE ?)`)
		args = append(args, needle, needle, needle)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM payments WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := "SELECT " + paymentColumns + " FROM payments WHERE " + cond +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, q.Offset())
	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Payment, 0, q.Limit)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateStatus sets the status column. ErrPaymentNotFound when no row matched.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	const q = "UPDATE payments SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// Delete removes a payment. ErrPaymentNotFound when absent.
func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM payments WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
