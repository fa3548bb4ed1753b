package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	all := []int{1, 2, 3, 4, 5}

	page := Paginate(all, &PaginationParams{Page: 2, PerPage: 2})
	assert.Equal(t, []int{3, 4}, page.Items)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)

	last := Paginate(all, &PaginationParams{Page: 3, PerPage: 2})
	assert.Equal(t, []int{5}, last.Items)
	assert.False(t, last.Pagination.HasNext)
}

func TestPaginateOutOfRange(t *testing.T) {
	page := Paginate([]string{"a"}, &PaginationParams{Page: 9, PerPage: 10})
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(1), page.Pagination.Total)
}

func TestValidateDefaults(t *testing.T) {
	p := &PaginationParams{}
	p.Validate()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 50, p.PerPage)

	p = &PaginationParams{Page: 1, PerPage: 10000}
	p.Validate()
	assert.Equal(t, 500, p.PerPage)
}
