package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/repository"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

const recentFeedSize = 10

// dashboardSummary is one applied snapshot of the dashboard data.
type dashboardSummary struct {
	Counts *repository.DashboardCounts
	Recent []repository.RecentSubmission
}

// Dashboard returns per-entity totals and pending counts, a cross-entity
// recent-submission feed and the number of buffered submissions. Concurrent
// refreshes are ordered through a version gate so a slow aggregation cannot
// overwrite the snapshot a newer request already applied; when a refresh
// loses the race or the store is down, the last applied snapshot is served
// with a diagnostic message.
// GET /admin/dashboard
func (h *AdminHandler) Dashboard(c echo.Context) error {
	seq := h.gate.Begin()
	res := resilience.Do(c.Request().Context(), h.Exec, "dashboard refresh",
		func(ctx context.Context) (*dashboardSummary, error) {
			counts, err := h.Stats.Counts(ctx)
			if err != nil {
				return nil, err
			}
			recent, err := h.Stats.Recent(ctx, recentFeedSize)
			if err != nil {
				return nil, err
			}
			return &dashboardSummary{Counts: counts, Recent: recent}, nil
		})

	var (
		summary *dashboardSummary
		message string
	)
	switch {
	case res.OK():
		summary = res.Data()
		// Commit and snapshot write share one critical section so a loser
		// can never observe a committed-but-unwritten snapshot.
		h.summaryMu.Lock()
		if h.gate.Commit(seq) {
			h.summary = summary
		} else if h.summary != nil {
			// A newer refresh already applied; serve its snapshot.
			summary = h.summary
		}
		h.summaryMu.Unlock()
	case res.Kind() == resilience.KindAuth:
		return fail(c, http.StatusInternalServerError, "data store authentication failed", res.Message())
	default:
		h.summaryMu.Lock()
		summary = h.summary
		h.summaryMu.Unlock()
		if summary == nil {
			return fail(c, http.StatusServiceUnavailable, "data store unavailable", res.Message())
		}
		message = "showing last known dashboard figures; live data is temporarily unavailable"
	}

	recent := summary.Recent
	if recent == nil {
		recent = []repository.RecentSubmission{}
	}
	return okData(c, http.StatusOK, echo.Map{
		"counts":       summary.Counts,
		"recent":       recent,
		"buffered":     h.Buffers.Len(),
		"generated_at": time.Now().UTC(),
	}, message)
}
