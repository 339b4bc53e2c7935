package handler_test

import (
	"encoding/csv"
	"net/http"
	"strings"
	"testing"
)

func TestExportClaimsCSV(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{items: seedClaims(3)})

	rec, _ := request(t, h.Export, http.MethodGet, "/admin/export/claims", "",
		map[string]string{"entity": "claims"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/csv") {
		t.Fatalf("content type = %q, want text/csv", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "claims-export-") {
		t.Fatalf("content disposition = %q, want an export filename", cd)
	}

	rows, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("csv rows = %d, want header + 3 records", len(rows))
	}
	if rows[0][0] != "id" || rows[0][1] != "policy_number" {
		t.Fatalf("unexpected header %v", rows[0])
	}
}

func TestExportJSONFormat(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{items: seedClaims(2)})

	rec, env := request(t, h.Export, http.MethodGet, "/admin/export/claims?format=json", "",
		map[string]string{"entity": "claims"})

	if rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("status = %d success = %v", rec.Code, env.Success)
	}
	if !strings.Contains(string(env.Data), "POL-1000") {
		t.Fatal("json export should carry the records")
	}
}

func TestExportUnknownEntity(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{})

	rec, env := request(t, h.Export, http.MethodGet, "/admin/export/tickets", "",
		map[string]string{"entity": "tickets"})

	if rec.Code != http.StatusBadRequest || env.Success {
		t.Fatalf("status = %d success = %v, want 400 failure", rec.Code, env.Success)
	}
}

func TestExportFailsWhenStoreDown(t *testing.T) {
	h := newAdminHandler(&fakeClaimStore{err: errDown})

	rec, env := request(t, h.Export, http.MethodGet, "/admin/export/claims", "",
		map[string]string{"entity": "claims"})

	if rec.Code != http.StatusServiceUnavailable || env.Success {
		t.Fatalf("status = %d success = %v, want 503: exports never ship sample data", rec.Code, env.Success)
	}
}
