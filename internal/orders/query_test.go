package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListQuery_Normalize_Paging(t *testing.T) {
	tests := []struct {
		name               string
		page, size         int
		wantPage, wantSize int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative page", -3, 50, 1, 50},
		{"size above cap falls back", 2, 201, 2, 20},
		{"size at cap kept", 2, 200, 2, 200},
		{"size of one kept", 1, 1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := ListQuery{Page: tt.page, PageSize: tt.size}.Normalize()
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantSize, q.PageSize)
		})
	}
}

func TestListQuery_Normalize_DateBounds(t *testing.T) {
	d := time.Date(2025, 3, 14, 15, 4, 5, 0, time.UTC)
	q := ListQuery{DateFrom: &d, DateTo: &d}.Normalize()

	// from is the start of the day, to the start of the next: filtering a
	// single calendar day covers all of it.
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), *q.DateFrom)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), *q.DateTo)
	assert.True(t, q.DateFrom.Before(*q.DateTo))
}

func TestListQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, ListQuery{Page: 1, PageSize: 20}.Offset())
	assert.Equal(t, 20, ListQuery{Page: 2, PageSize: 20}.Offset())
	assert.Equal(t, 40, ListQuery{Page: 3, PageSize: 20}.Offset())
}
