package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/repository"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

// racingStats commits a newer gate sequence while the handler's own fetch is
// still in flight, so the handler's commit loses.
type racingStats struct {
	h      *AdminHandler
	counts repository.DashboardCounts
	raced  bool
}

func (s *racingStats) Counts(ctx context.Context) (*repository.DashboardCounts, error) {
	if !s.raced {
		s.raced = true
		s.h.gate.Commit(s.h.gate.Begin())
	}
	c := s.counts
	return &c, nil
}

func (s *racingStats) Recent(ctx context.Context, limit int) ([]repository.RecentSubmission, error) {
	return nil, nil
}

func TestDashboardLosingRefreshOnColdStartStillRenders(t *testing.T) {
	h := &AdminHandler{
		Exec: resilience.NewExecutor(resilience.Policy{
			Retries: 0, Delay: time.Millisecond, OnTransient: resilience.Fallback,
		}, nil),
		Buffers: resilience.NewBuffers(10),
	}
	h.Stats = &racingStats{h: h, counts: repository.DashboardCounts{Users: 5}}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	if err := h.Dashboard(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even when the commit loses before any snapshot exists", rec.Code)
	}
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Counts repository.DashboardCounts `json:"counts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Data.Counts.Users != 5 {
		t.Fatalf("users = %d success = %v, want the refresh's own figures", body.Data.Counts.Users, body.Success)
	}
}
