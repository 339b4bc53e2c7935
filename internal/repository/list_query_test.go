package repository

import "testing"

func TestNormalizeDefaults(t *testing.T) {
	q := ListQuery{}.Normalize()
	if q.Page != 1 || q.Limit != 10 {
		t.Fatalf("Normalize() = %+v, want page 1 limit 10", q)
	}
}

func TestNormalizeClampsLimit(t *testing.T) {
	q := ListQuery{Page: 3, Limit: 500}.Normalize()
	if q.Limit != 100 {
		t.Fatalf("limit = %d, want clamp at 100", q.Limit)
	}
	if q.Page != 3 {
		t.Fatalf("page = %d, Normalize must not touch a valid page", q.Page)
	}
}

func TestNormalizeNegativeValues(t *testing.T) {
	q := ListQuery{Page: -4, Limit: -1}.Normalize()
	if q.Page != 1 || q.Limit != 10 {
		t.Fatalf("Normalize() = %+v, want page 1 limit 10", q)
	}
}

func TestOffset(t *testing.T) {
	q := ListQuery{Page: 3, Limit: 20}.Normalize()
	if got := q.Offset(); got != 40 {
		t.Fatalf("Offset() = %d, want 40", got)
	}
}
