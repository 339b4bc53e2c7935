package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
)

// QuoteRepo encapsulates all database queries related to quote requests.
type QuoteRepo struct {
	db *sql.DB
}

// NewQuoteRepo constructs a QuoteRepo with the provided DB handle.
func NewQuoteRepo(db *sql.DB) *QuoteRepo {
	return &QuoteRepo{db: db}
}

const quoteColumns = `id, product, budget, coverage, contact_method, status,
	full_name, email, phone, user_id, created_at, updated_at`

func scanQuote(row interface{ Scan(...any) error }) (*model.Quote, error) {
	var (
		qt     model.Quote
		userID sql.NullInt64
	)
	if err := row.Scan(&qt.ID, &qt.Product, &qt.Budget, &qt.Coverage, &qt.ContactMethod,
		&qt.Status, &qt.FullName, &qt.Email, &qt.Phone, &userID,
		&qt.CreatedAt, &qt.UpdatedAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		qt.UserID = &uid
	}
	return &qt, nil
}

// Create inserts a new quote request with a caller-assigned id and status.
func (r *QuoteRepo) Create(ctx context.Context, qt *model.Quote) error {
	const qInsert = `INSERT INTO quotes
		(id, product, budget, coverage, contact_method, status, full_name, email, phone, user_id)
		VALUES (?,?,?,?,?,?,?,?,?,?)`
	var userID any
	if qt.UserID != nil {
		userID = *qt.UserID
	}
	if _, err := r.db.ExecContext(ctx, qInsert, qt.ID, qt.Product, qt.Budget, qt.Coverage,
		qt.ContactMethod, qt.Status, qt.FullName, qt.Email, qt.Phone, userID); err != nil {
		return err
	}
	const qSelect = "SELECT created_at, updated_at FROM quotes WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, qt.ID).Scan(&qt.CreatedAt, &qt.UpdatedAt)
}

// GetByID fetches a quote by id, returning ErrQuoteNotFound when absent.
func (r *QuoteRepo) GetByID(ctx context.Context, id string) (*model.Quote, error) {
	const q = "SELECT " + quoteColumns + " FROM quotes WHERE id = ?"
	qt, err := scanQuote(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrQuoteNotFound
		}
		return nil, err
	}
	return qt, nil
}

// List returns one page of quotes plus the total count. Search matches
// product, contact name and email.
func (r *QuoteRepo) List(ctx context.Context, q ListQuery) ([]model.Quote, int64, error) {
	q = q.Normalize()
	where := []string{}
	args := []any{}
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.Search != "" {
		needle := "%" + strings.ToLower(q.Search) + "%"
		where = append(where, `(LOWER(product) LIKE ? OR LOWER(full_name) LIKE ? OR LOWER(email) LIKE ?)`)
		args = append(args, needle, needle, needle)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM quotes WHERE "+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	dataSQL := "SELECT " + quoteColumns + " FROM quotes WHERE " + cond +
		" ORDER BY created_at DESC LIMIT ? OFFSET ?"
	argsData := append(append([]any{}, args...), q.Limit, q.Offset())
	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Quote, 0, q.Limit)
	for rows.Next() {
		qt, err := scanQuote(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *qt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateStatus sets the status column. ErrQuoteNotFound when no row matched.
func (r *QuoteRepo) UpdateStatus(ctx context.Context, id, status string) error {
	const q = "UPDATE quotes SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrQuoteNotFound
	}
	return nil
}

// Delete removes a quote and its documents. ErrQuoteNotFound when absent.
func (r *QuoteRepo) Delete(ctx context.Context, id string) error {
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
	if _, err = tx.ExecContext(ctx, "DELETE FROM documents WHERE quote_id = ?", id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, "DELETE FROM quotes WHERE id = ?", id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrQuoteNotFound
		return err
	}
	return nil
}
