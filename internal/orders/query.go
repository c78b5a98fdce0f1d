package orders

import "time"

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// ListQuery is the admin listing filter. Zero/nil fields mean "not applied".
type ListQuery struct {
	Keyword  string
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}

// Normalize clamps paging and converts the date filters into range bounds:
// DateFrom becomes an inclusive 00:00 boundary, DateTo an exclusive bound at
// 00:00 of the following day, so the whole "to" calendar day is included.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 || q.PageSize > maxPageSize {
		q.PageSize = defaultPageSize
	}
	if q.DateFrom != nil {
		f := truncateToDay(*q.DateFrom)
		q.DateFrom = &f
	}
	if q.DateTo != nil {
		t := truncateToDay(*q.DateTo).Add(24 * time.Hour)
		q.DateTo = &t
	}
	return q
}

func (q ListQuery) Offset() int { return (q.Page - 1) * q.PageSize }

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
