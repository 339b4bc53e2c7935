package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/mzigo/insurance-brokerage-portal/internal/repository"
)

type fakeStats struct {
	counts repository.DashboardCounts
	recent []repository.RecentSubmission
	err    error
}

func (f *fakeStats) Counts(ctx context.Context) (*repository.DashboardCounts, error) {
	if f.err != nil {
		return nil, f.err
	}
	c := f.counts
	return &c, nil
}

func (f *fakeStats) Recent(ctx context.Context, limit int) ([]repository.RecentSubmission, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func TestDashboardReturnsCounts(t *testing.T) {
	stats := &fakeStats{
		counts: repository.DashboardCounts{
			Claims: repository.EntityCounts{Total: 12, Pending: 4},
			Users:  7,
		},
		recent: []repository.RecentSubmission{
			{Entity: "claims", ID: "c1", Name: "Grace Wanjiru", Status: "pending"},
		},
	}
	h := newAdminHandler(&fakeClaimStore{})
	h.Stats = stats

	rec, env := request(t, h.Dashboard, http.MethodGet, "/admin/dashboard", "", nil)

	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d success = %v", rec.Code, env.Success)
	}
	var data struct {
		Counts   repository.DashboardCounts    `json:"counts"`
		Recent   []repository.RecentSubmission `json:"recent"`
		Buffered int                           `json:"buffered"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Counts.Claims.Total != 12 || data.Counts.Claims.Pending != 4 || data.Counts.Users != 7 {
		t.Fatalf("counts = %+v", data.Counts)
	}
	if len(data.Recent) != 1 || data.Recent[0].Entity != "claims" {
		t.Fatalf("recent = %+v, want the seeded claim activity", data.Recent)
	}
}

func TestDashboardServesLastSnapshotWhenStoreDown(t *testing.T) {
	stats := &fakeStats{counts: repository.DashboardCounts{Users: 3}}
	h := newAdminHandler(&fakeClaimStore{})
	h.Stats = stats

	// First refresh applies a snapshot.
	if rec, _ := request(t, h.Dashboard, http.MethodGet, "/admin/dashboard", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("priming refresh failed with %d", rec.Code)
	}

	// The store goes away; the dashboard keeps rendering the last figures.
	stats.err = errDown
	rec, env := request(t, h.Dashboard, http.MethodGet, "/admin/dashboard", "", nil)
	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d success = %v, want the cached snapshot", rec.Code, env.Success)
	}
	if !strings.Contains(env.Message, "last known") {
		t.Fatalf("message = %q, want a stale-data diagnostic", env.Message)
	}
	var data struct {
		Counts repository.DashboardCounts `json:"counts"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Counts.Users != 3 {
		t.Fatalf("cached users = %d, want 3", data.Counts.Users)
	}
}

func TestDashboardUnavailableWithoutSnapshot(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{})
	h.Stats = &fakeStats{err: errDown}

	rec, env := request(t, h.Dashboard, http.MethodGet, "/admin/dashboard", "", nil)
	if rec.Code != http.StatusServiceUnavailable || env.Success {
		t.Fatalf("status = %d success = %v, want 503 with no snapshot to serve", rec.Code, env.Success)
	}
}
