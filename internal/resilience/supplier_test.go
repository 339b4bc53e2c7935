package resilience

import (
	"strings"
	"testing"

	"github.com/mzigo/insurance-brokerage-portal/internal/model"
)

func claimFixture() model.Claim {
	return NewSupplier().Claims()[0]
}

func quoteFixture() model.Quote {
	return NewSupplier().Quotes()[0]
}

func TestSupplierNeverEmpty(t *testing.T) {
	s := NewSupplier()
	if len(s.Claims()) == 0 {
		t.Error("Claims() returned no fixtures")
	}
	if len(s.Quotes()) == 0 {
		t.Error("Quotes() returned no fixtures")
	}
	if len(s.Consultations()) == 0 {
		t.Error("Consultations() returned no fixtures")
	}
	if len(s.Outsourcing()) == 0 {
		t.Error("Outsourcing() returned no fixtures")
	}
	if len(s.Diaspora()) == 0 {
		t.Error("Diaspora() returned no fixtures")
	}
	if len(s.Payments()) == 0 {
		t.Error("Payments() returned no fixtures")
	}
}

func TestSupplierFixturesAreWellFormed(t *testing.T) {
	s := NewSupplier()
	for _, cl := range s.Claims() {
		if cl.ID == "" || !model.ValidClaimStatus(cl.Status) {
			t.Errorf("claim fixture %+v has empty id or invalid status", cl)
		}
	}
	for _, q := range s.Quotes() {
		if q.ID == "" || !model.ValidQuoteStatus(q.Status) {
			t.Errorf("quote fixture %+v has empty id or invalid status", q)
		}
	}
	for _, cn := range s.Consultations() {
		if cn.ID == "" || !model.ValidConsultationStatus(cn.Status) {
			t.Errorf("consultation fixture %+v has empty id or invalid status", cn)
		}
	}
	for _, or := range s.Outsourcing() {
		if or.ID == "" || !model.ValidOutsourcingStatus(or.Status) {
			t.Errorf("outsourcing fixture %+v has empty id or invalid status", or)
		}
	}
	for _, dr := range s.Diaspora() {
		if dr.ID == "" || !model.ValidDiasporaStatus(dr.Status) {
			t.Errorf("diaspora fixture %+v has empty id or invalid status", dr)
		}
	}
	for _, p := range s.Payments() {
		if p.ID == "" || !model.ValidPaymentStatus(p.Status) {
			t.Errorf("payment fixture %+v has empty id or invalid status", p)
		}
	}
}

func TestSupplierMessageNamesEntity(t *testing.T) {
	s := NewSupplier()
	msg := s.Message("claims")
	if !strings.Contains(msg, "claims") || !strings.Contains(msg, "sample") {
		t.Fatalf("Message() = %q, want it to mention the entity and sample data", msg)
	}
}
