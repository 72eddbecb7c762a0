package dto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequest_Normalize(t *testing.T) {
	p := PageRequest{}
	p.Normalize(10)
	assert.Equal(t, PageRequest{Page: 1, Limit: 10}, p)
	assert.Equal(t, 0, p.Offset())

	p = PageRequest{Page: 3, Limit: 500}
	p.Normalize(10)
	assert.Equal(t, MaxPageLimit, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestPageRequest_Normalize_PaginaEnorme(t *testing.T) {
	p := PageRequest{Page: math.MaxInt, Limit: 50}
	p.Normalize(10)
	assert.Equal(t, MaxPage, p.Page)
	assert.Positive(t, p.Offset())
	assert.Equal(t, (MaxPage-1)*50, p.Offset())
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 21, TotalPages: 3}, NewPagination(PageRequest{Page: 1, Limit: 10}, 21))
	assert.Equal(t, 0, NewPagination(PageRequest{Page: 1, Limit: 10}, 0).TotalPages)
	assert.Equal(t, 2, NewPagination(PageRequest{Page: 2, Limit: 5}, 10).TotalPages)
}
