package router

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/mzigo/insurance-brokerage-portal/internal/handler"
	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/repository"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

// emptyLibrary backs the resource handler with a store that has no rows.
type emptyLibrary struct{}

func (emptyLibrary) Create(ctx context.Context, res *model.Resource) error { return nil }
func (emptyLibrary) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	return nil, sql.ErrNoRows
}
func (emptyLibrary) List(ctx context.Context, q repository.ListQuery) ([]model.Resource, int64, error) {
	return nil, 0, nil
}
func (emptyLibrary) Delete(ctx context.Context, id string) error { return nil }

type emptyDocuments struct{}

func (emptyDocuments) Create(ctx context.Context, d *model.Document) error { return nil }
func (emptyDocuments) GetByID(ctx context.Context, id string) (*model.Document, error) {
	return nil, sql.ErrNoRows
}
func (emptyDocuments) ListByParent(ctx context.Context, column, parentID string) ([]model.Document, error) {
	return nil, nil
}

func TestRateLimitCoversOnlySubmissions(t *testing.T) {
	e := echo.New()
	// Stand-in limiter that rejects everything it wraps.
	limit := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return c.NoContent(http.StatusTooManyRequests)
		}
	}
	rh := &handler.ResourceHandler{
		Resources: emptyLibrary{},
		Documents: emptyDocuments{},
		Exec: resilience.NewExecutor(resilience.Policy{
			Retries: 0, Delay: time.Millisecond, OnTransient: resilience.Propagate,
		}, nil),
	}
	registerPublic(e, &handler.SubmitHandler{}, rh, limit, nil)

	submissions := []string{
		"/v1/claims", "/v1/quotes", "/v1/consultations",
		"/v1/outsourcing", "/v1/diaspora", "/v1/payments",
	}
	for _, path := range submissions {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("%s: status = %d, submissions must pass through the limiter", path, rec.Code)
		}
	}

	// Library and download reads bypass the limiter entirely.
	reads := map[string]int{
		"/v1/resources":            http.StatusOK,
		"/v1/resources/x/download": http.StatusNotFound,
		"/v1/documents/x/download": http.StatusNotFound,
	}
	for path, want := range reads {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("%s: status = %d, want %d (reads must not be rate limited)", path, rec.Code, want)
		}
	}
}
