package handler_test

import (
	"context"
	"encoding/json"
	"errors"
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
	"github.com/mzigo/insurance-brokerage-portal/internal/utils"
)

// envelope mirrors the uniform response body for decoding in tests.
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination *struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
		Pages int   `json:"pages"`
	} `json:"pagination"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

var errDown = errors.New("dial tcp 127.0.0.1:3306: connection refused")

// fakeClaimStore is an in-memory ClaimStore. Setting err makes every call
// fail with it, simulating an unreachable database.
type fakeClaimStore struct {
	items []model.Claim
	err   error
}

func (f *fakeClaimStore) Create(ctx context.Context, cl *model.Claim) error {
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, *cl)
	return nil
}

func (f *fakeClaimStore) GetByID(ctx context.Context, id string) (*model.Claim, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, repository.ErrClaimNotFound
}

func (f *fakeClaimStore) List(ctx context.Context, q repository.ListQuery) ([]model.Claim, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	q = q.Normalize()
	total := int64(len(f.items))
	start := q.Offset()
	if start >= len(f.items) {
		return nil, total, nil
	}
	end := start + q.Limit
	if end > len(f.items) {
		end = len(f.items)
	}
	return f.items[start:end], total, nil
}

func (f *fakeClaimStore) UpdateStatus(ctx context.Context, id, status string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = status
			return nil
		}
	}
	return repository.ErrClaimNotFound
}

func (f *fakeClaimStore) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrClaimNotFound
}

func seedClaims(n int) []model.Claim {
	items := make([]model.Claim, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, model.Claim{
			ID:           utils.NewID(),
			PolicyNumber: "POL-1000",
			ClaimType:    "Motor",
			Status:       model.ClaimStatusPending,
			FullName:     "Test Person",
			Email:        "t@example.com",
		})
	}
	return items
}

func newAdminHandler(claims handler.ClaimStore) *handler.AdminHandler {
	return &handler.AdminHandler{
		Claims:   claims,
		Exec:     resilience.NewExecutor(resilience.Policy{Retries: 0, Delay: time.Millisecond, OnTransient: resilience.Fallback}, nil),
		Supplier: resilience.NewSupplier(),
		Buffers:  resilience.NewBuffers(10),
		Notifier: resilience.NewNotifier(nil, nil),
	}
}

// request runs an echo handler against a synthetic request and decodes the
// envelope.
func request(t *testing.T, fn echo.HandlerFunc, method, target, body string, params map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	e := echo.New()
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range params {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	if err := fn(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	var env envelope
	if ct := rec.Header().Get(echo.HeaderContentType); strings.Contains(ct, "json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
		}
	}
	return rec, env
}

func TestListClaimsPagination(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{items: seedClaims(25)})
	rec, env := request(t, h.ListClaims, http.MethodGet, "/admin/claims?page=2&limit=10", "", nil)

	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d success = %v", rec.Code, env.Success)
	}
	var items []model.Claim
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(items) != 10 {
		t.Fatalf("page 2 size = %d, want 10", len(items))
	}
	pg := env.Pagination
	if pg == nil || pg.Page != 2 || pg.Limit != 10 || pg.Total != 25 || pg.Pages != 3 {
		t.Fatalf("pagination = %+v, want page 2 limit 10 total 25 pages 3", pg)
	}
}

func TestListClaimsFallsBackToSamples(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{err: errDown})
	rec, env := request(t, h.ListClaims, http.MethodGet, "/admin/claims", "", nil)

	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("degraded list must still render: status = %d success = %v", rec.Code, env.Success)
	}
	if !strings.Contains(env.Message, "sample") {
		t.Fatalf("fallback responses must carry a diagnostic message, got %q", env.Message)
	}
	var items []model.Claim
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("fallback data should not be empty")
	}
}

func TestListClaimsEmptyStoreServesSamples(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{})
	rec, env := request(t, h.ListClaims, http.MethodGet, "/admin/claims", "", nil)

	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d success = %v", rec.Code, env.Success)
	}
	if !strings.Contains(env.Message, "sample") {
		t.Fatalf("zero live rows must be tagged like fallback data, got message %q", env.Message)
	}
	var items []model.Claim
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(items) == 0 {
		t.Fatal("an empty live table should render the sample records")
	}
}

func TestListClaimsMergesBufferFirst(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{items: seedClaims(5)})
	buffered := model.Claim{ID: "buffered-1", Status: model.ClaimStatusPending, FullName: "Offline User"}
	h.Buffers.Claims.Record(buffered)

	_, env := request(t, h.ListClaims, http.MethodGet, "/admin/claims", "", nil)

	var items []model.Claim
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if len(items) == 0 || items[0].ID != "buffered-1" {
		t.Fatalf("buffered submission must lead the first page, got first id %q", items[0].ID)
	}
	if env.Pagination == nil || env.Pagination.Total != 6 {
		t.Fatalf("total = %v, want live 5 + buffered 1", env.Pagination)
	}
}

func TestGetClaimNotFound(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{items: seedClaims(1)})
	rec, env := request(t, h.GetClaim, http.MethodGet, "/admin/claims/nope", "",
		map[string]string{"id": "nope"})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if env.Success {
		t.Fatal("unknown ids must come back success=false, not a crash")
	}
	if !strings.Contains(env.Error, "not found") {
		t.Fatalf("error = %q, want a not-found message", env.Error)
	}
}

func TestUpdateClaimStatusRejectsUnknownValue(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{items: seedClaims(1)})
	rec, env := request(t, h.UpdateClaimStatus, http.MethodPut, "/admin/claims/x/status",
		`{"status":"bogus"}`, map[string]string{"id": "x"})

	if rec.Code != http.StatusBadRequest || env.Success {
		t.Fatalf("status = %d success = %v, want 400 failure", rec.Code, env.Success)
	}
}

func TestUpdateClaimStatusUnknownIDLeavesBufferUntouched(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{items: seedClaims(1)})
	rec, env := request(t, h.UpdateClaimStatus, http.MethodPut, "/admin/claims/ghost/status",
		`{"status":"approved"}`, map[string]string{"id": "ghost"})

	if rec.Code != http.StatusNotFound || env.Success {
		t.Fatalf("status = %d success = %v, want 404 failure", rec.Code, env.Success)
	}
	if h.Buffers.Claims.Len() != 0 {
		t.Fatal("a failed mutation must never land in the write buffer")
	}
}

func TestUpdateClaimStatusApplies(t *testing.T) {
	store := &fakeClaimStore{items: seedClaims(1)}
	id := store.items[0].ID
	h := newAdminHandler(store)

	var events []resilience.Event
	h.Notifier.Subscribe(resilience.EntityChannel("claims"), func(ev resilience.Event) {
		events = append(events, ev)
	})

	rec, env := request(t, h.UpdateClaimStatus, http.MethodPut, "/admin/claims/"+id+"/status",
		`{"status":"approved"}`, map[string]string{"id": id})

	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d success = %v", rec.Code, env.Success)
	}
	if store.items[0].Status != model.ClaimStatusApproved {
		t.Fatalf("store status = %q, want approved", store.items[0].Status)
	}
	if len(events) != 1 || events[0].Action != resilience.ActionUpdated || events[0].ID != id {
		t.Fatalf("expected one updated event for %s, got %+v", id, events)
	}
}

func TestResetBuffersClearsEverything(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{})
	h.Buffers.Claims.Record(model.Claim{ID: "a"})
	h.Buffers.Quotes.Record(model.Quote{ID: "b"})

	rec, env := request(t, h.ResetBuffers, http.MethodPost, "/admin/buffer/reset", "", nil)

	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d success = %v", rec.Code, env.Success)
	}
	if h.Buffers.Len() != 0 {
		t.Fatalf("buffers still hold %d records after reset", h.Buffers.Len())
	}
}
