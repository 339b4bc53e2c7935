package repository

import (
	"context"
	"database/sql"
	"time"
)

// EntityCounts summarizes one entity collection for the dashboard.
type EntityCounts struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
}

// DashboardCounts aggregates per-entity totals plus pending backlogs.
type DashboardCounts struct {
	Claims        EntityCounts `json:"claims"`
	Quotes        EntityCounts `json:"quotes"`
	Consultations EntityCounts `json:"consultations"`
	Outsourcing   EntityCounts `json:"outsourcing"`
	Diaspora      EntityCounts `json:"diaspora"`
	Payments      EntityCounts `json:"payments"`
	Users         int64        `json:"users"`
}

// DashboardRepo runs the aggregate count queries behind the admin dashboard.
type DashboardRepo struct {
	db *sql.DB
}

// NewDashboardRepo constructs a DashboardRepo with the provided DB handle.
func NewDashboardRepo(db *sql.DB) *DashboardRepo {
	return &DashboardRepo{db: db}
}

func (r *DashboardRepo) countEntity(ctx context.Context, table string) (EntityCounts, error) {
	var c EntityCounts
	q := `SELECT COUNT(*), COALESCE(SUM(status = 'pending'), 0) FROM ` + table
	err := r.db.QueryRowContext(ctx, q).Scan(&c.Total, &c.Pending)
	return c, err
}

// Counts gathers totals and pending backlogs across every collection in one
// round of queries.
func (r *DashboardRepo) Counts(ctx context.Context) (*DashboardCounts, error) {
	var (
		out DashboardCounts
		err error
	)
	if out.Claims, err = r.countEntity(ctx, "claims"); err != nil {
		return nil, err
	}
	if out.Quotes, err = r.countEntity(ctx, "quotes"); err != nil {
		return nil, err
	}
	if out.Consultations, err = r.countEntity(ctx, "consultations"); err != nil {
		return nil, err
	}
	if out.Outsourcing, err = r.countEntity(ctx, "outsourcing_requests"); err != nil {
		return nil, err
	}
	if out.Diaspora, err = r.countEntity(ctx, "diaspora_requests"); err != nil {
		return nil, err
	}
	if out.Payments, err = r.countEntity(ctx, "payments"); err != nil {
		return nil, err
	}
	if err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&out.Users); err != nil {
		return nil, err
	}
	return &out, nil
}

// RecentSubmission is one row of the dashboard's cross-entity activity feed.
type RecentSubmission struct {
	Entity    string    `json:"entity"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Recent returns the newest submissions across every collection, newest
// first. Payments carry no submitter name, so their email stands in.
func (r *DashboardRepo) Recent(ctx context.Context, limit int) ([]RecentSubmission, error) {
	if limit < 1 {
		limit = 10
	}
	q := `
		SELECT 'claims', id, full_name, status, created_at FROM claims
		UNION ALL SELECT 'quotes', id, full_name, status, created_at FROM quotes
		UNION ALL SELECT 'consultations', id, full_name, status, created_at FROM consultations
		UNION ALL SELECT 'outsourcing', id, contact_name, status, created_at FROM outsourcing_requests
		UNION ALL SELECT 'diaspora', id, full_name, status, created_at FROM diaspora_requests
		UNION ALL SELECT 'payments', id, email, status, created_at FROM payments
		ORDER BY created_at DESC
		LIMIT ?`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []RecentSubmission
	for rows.Next() {
		var s RecentSubmission
		if err := rows.Scan(&s.Entity, &s.ID, &s.Name, &s.Status, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
