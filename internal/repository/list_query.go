package repository

// ListQuery defines filters & pagination shared by every entity list method.
// Status filters on the exact status column value; Search matches a
// per-entity set of text columns case-insensitively.
type ListQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
}

// Normalize clamps paging values: page >= 1, limit in [1, 100] with a
// default of 10.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > 100 {
		q.Limit = 100
	}
	return q
}

// Offset returns the row offset for the normalized query.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
