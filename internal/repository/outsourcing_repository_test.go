package repository

import (
	"strings"
	"testing"
)

// fakeOutsourcingRow feeds scanOutsourcing a canned services column.
type fakeOutsourcingRow struct {
	services []byte
}

func (r fakeOutsourcingRow) Scan(dest ...any) error {
	*(dest[0].(*string)) = "or-1"
	*(dest[2].(*[]byte)) = r.services
	return nil
}

func TestScanOutsourcingDecodesServices(t *testing.T) {
	or, err := scanOutsourcing(fakeOutsourcingRow{services: []byte(`["payroll","claims handling"]`)})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(or.Services) != 2 || or.Services[0] != "payroll" {
		t.Fatalf("services = %v, want the two stored entries", or.Services)
	}
}

func TestScanOutsourcingSurfacesCorruptServices(t *testing.T) {
	_, err := scanOutsourcing(fakeOutsourcingRow{services: []byte(`{not json`)})
	if err == nil {
		t.Fatal("corrupt stored JSON must surface an error, not vanish")
	}
	if !strings.Contains(err.Error(), "or-1") || !strings.Contains(err.Error(), "services") {
		t.Fatalf("error %q should name the row and the column", err)
	}
}
