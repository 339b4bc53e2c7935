package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/mzigo/insurance-brokerage-portal/internal/handler"
	"github.com/mzigo/insurance-brokerage-portal/internal/model"
	"github.com/mzigo/insurance-brokerage-portal/internal/repository"
	"github.com/mzigo/insurance-brokerage-portal/internal/resilience"
)

func newSubmitHandler(claims handler.ClaimStore, payments handler.PaymentStore) (*handler.SubmitHandler, *resilience.Buffers) {
	buffers := resilience.NewBuffers(10)
	return &handler.SubmitHandler{
		Claims:   claims,
		Payments: payments,
		Exec:     resilience.NewExecutor(resilience.Policy{Retries: 0, Delay: time.Millisecond, OnTransient: resilience.Fallback}, nil),
		Buffers:  buffers,
		Notifier: resilience.NewNotifier(nil, nil),
	}, buffers
}

func validClaimBody() string {
	return `{
		"policy_number": "POL-2025-0042",
		"claim_type": "Motor",
		"incident_date": "` + time.Now().Add(-24*time.Hour).UTC().Format(time.RFC3339) + `",
		"estimated_loss": 125000,
		"description": "Windscreen shattered on Thika Road",
		"full_name": "Grace Wanjiru",
		"email": "grace@example.com",
		"phone": "+254712000111"
	}`
}

func TestSubmitClaimPersists(t *testing.T) {
	store := &fakeClaimStore{}
	h, buffers := newSubmitHandler(store, nil)

	rec, env := request(t, h.SubmitClaim, http.MethodPost, "/v1/claims", validClaimBody(), nil)

	if rec.Code != http.StatusCreated || !env.Success {
		t.Fatalf("status = %d success = %v (body %s)", rec.Code, env.Success, rec.Body.String())
	}
	var cl model.Claim
	if err := json.Unmarshal(env.Data, &cl); err != nil {
		t.Fatalf("decode claim: %v", err)
	}
	if cl.ID == "" {
		t.Fatal("submission must return an application-generated id")
	}
	if cl.Status != model.ClaimStatusPending {
		t.Fatalf("status = %q, want pending", cl.Status)
	}
	if len(store.items) != 1 {
		t.Fatalf("store holds %d claims, want 1", len(store.items))
	}
	if buffers.Claims.Len() != 0 {
		t.Fatal("a stored submission must not also land in the buffer")
	}
}

func TestSubmitClaimBuffersWhenStoreDown(t *testing.T) {
	h, buffers := newSubmitHandler(&fakeClaimStore{err: errDown}, nil)

	rec, env := request(t, h.SubmitClaim, http.MethodPost, "/v1/claims", validClaimBody(), nil)

	if rec.Code != http.StatusCreated || !env.Success {
		t.Fatalf("an offline store must not bounce the form: status = %d success = %v", rec.Code, env.Success)
	}
	if buffers.Claims.Len() != 1 {
		t.Fatalf("buffer holds %d records, want 1", buffers.Claims.Len())
	}
	if !strings.Contains(env.Message, "queued") {
		t.Fatalf("message = %q, want it to note the queued processing", env.Message)
	}
}

func TestSubmitThenListShowsBufferedFirst(t *testing.T) {
	downStore := &fakeClaimStore{err: errDown}
	sub, buffers := newSubmitHandler(downStore, nil)
	_, env := request(t, sub.SubmitClaim, http.MethodPost, "/v1/claims", validClaimBody(), nil)
	var submitted model.Claim
	if err := json.Unmarshal(env.Data, &submitted); err != nil {
		t.Fatalf("decode claim: %v", err)
	}

	admin := newAdminHandler(downStore)
	admin.Buffers = buffers
	_, listEnv := request(t, admin.ListClaims, http.MethodGet, "/admin/claims", "", nil)

	var items []model.Claim
	if err := json.Unmarshal(listEnv.Data, &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) == 0 || items[0].ID != submitted.ID {
		t.Fatalf("submitted claim must lead the next read, got first id %q want %q",
			items[0].ID, submitted.ID)
	}
}

func TestSubmitClaimRejectsInvalidBody(t *testing.T) {
	store := &fakeClaimStore{}
	h, buffers := newSubmitHandler(store, nil)

	rec, env := request(t, h.SubmitClaim, http.MethodPost, "/v1/claims",
		`{"policy_number": "POL-1", "claim_type": "Motor"}`, nil)

	if rec.Code != http.StatusBadRequest || env.Success {
		t.Fatalf("status = %d success = %v, want 400 failure", rec.Code, env.Success)
	}
	if len(store.items) != 0 || buffers.Claims.Len() != 0 {
		t.Fatal("rejected submissions must not be stored or buffered")
	}
}

// fakePaymentStore is an in-memory PaymentStore used by the payment tests.
type fakePaymentStore struct {
	items []model.Payment
	err   error
}

func (f *fakePaymentStore) Create(ctx context.Context, p *model.Payment) error {
	if f.err != nil {
		return f.err
	}
	f.items = append(f.items, *p)
	return nil
}

func (f *fakePaymentStore) GetByID(ctx context.Context, id string) (*model.Payment, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, repository.ErrPaymentNotFound
}

func (f *fakePaymentStore) List(ctx context.Context, q repository.ListQuery) ([]model.Payment, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.items, int64(len(f.items)), nil
}

func (f *fakePaymentStore) UpdateStatus(ctx context.Context, id, status string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = status
			return nil
		}
	}
	return repository.ErrPaymentNotFound
}

func (f *fakePaymentStore) Delete(ctx context.Context, id string) error { return nil }

func TestSubmitPaymentAssignsTransactionID(t *testing.T) {
	store := &fakePaymentStore{}
	h, _ := newSubmitHandler(nil, store)

	body := `{"amount": 45200, "payment_method": "mpesa", "reference": "PRM-2025-001", "email": "p@example.com"}`
	rec, env := request(t, h.SubmitPayment, http.MethodPost, "/v1/payments", body, nil)

	if rec.Code != http.StatusCreated || !env.Success {
		t.Fatalf("status = %d success = %v (body %s)", rec.Code, env.Success, rec.Body.String())
	}
	var p model.Payment
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatalf("decode payment: %v", err)
	}
	if p.TransactionID == "" {
		t.Fatal("accepted payments must carry a transaction id")
	}
	if p.Currency != "KES" {
		t.Fatalf("currency = %q, want the KES default", p.Currency)
	}
	if p.Status != model.PaymentStatusPending {
		t.Fatalf("status = %q, want pending", p.Status)
	}
}
