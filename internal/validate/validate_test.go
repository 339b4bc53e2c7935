package validate

import (
	"context"
	"strings"
	"testing"
)

func TestSubmissionAcceptsValidClaim(t *testing.T) {
	body := []byte(`{
		"policy_number": "POL-2025-0042",
		"claim_type": "Motor",
		"incident_date": "2025-08-01T10:00:00Z",
		"estimated_loss": 125000,
		"description": "Windscreen shattered",
		"full_name": "Grace Wanjiru",
		"email": "grace@example.com"
	}`)
	if err := Submission(context.Background(), Claim, body); err != nil {
		t.Fatalf("valid claim rejected: %v", err)
	}
}

func TestSubmissionMissingRequiredField(t *testing.T) {
	body := []byte(`{"policy_number": "POL-1", "claim_type": "Motor"}`)
	err := Submission(context.Background(), Claim, body)
	if err == nil {
		t.Fatal("claim without email must be rejected")
	}
}

func TestSubmissionWrongType(t *testing.T) {
	body := []byte(`{
		"amount": "not a number",
		"payment_method": "mpesa",
		"reference": "PRM-1",
		"email": "p@example.com"
	}`)
	if err := Submission(context.Background(), Payment, body); err == nil {
		t.Fatal("string amount must be rejected")
	}
}

func TestSubmissionEnumViolation(t *testing.T) {
	body := []byte(`{
		"amount": 100,
		"payment_method": "cash",
		"reference": "PRM-1",
		"email": "p@example.com"
	}`)
	if err := Submission(context.Background(), Payment, body); err == nil {
		t.Fatal("unknown payment method must be rejected")
	}
}

func TestSubmissionMalformedJSON(t *testing.T) {
	err := Submission(context.Background(), Quote, []byte(`{"product":`))
	if err == nil || !strings.Contains(err.Error(), "invalid JSON") {
		t.Fatalf("err = %v, want an invalid JSON error", err)
	}
}

func TestSubmissionUnknownEntity(t *testing.T) {
	if err := Submission(context.Background(), "tickets", []byte(`{}`)); err == nil {
		t.Fatal("unknown entities have no schema and must error")
	}
}
