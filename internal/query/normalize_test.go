package query_test

import (
	"testing"
	"time"

	"lunar-dashboard/internal/query"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_Defaults(t *testing.T) {
	q := query.Normalize(query.Params{})

	assert.Empty(t, q.Search)
	assert.Empty(t, q.Role)
	assert.Empty(t, q.Status)
	assert.Empty(t, q.Profile)
	assert.Nil(t, q.CreatedFrom)
	assert.Nil(t, q.CreatedTo)
	assert.Equal(t, "id", q.SortField)
	assert.False(t, q.SortDesc)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.PageSize)
}

func TestNormalize_TextFiltersLoweredAndTrimmed(t *testing.T) {
	q := query.Normalize(query.Params{
		Search:  "  John ",
		Role:    "ADMIN",
		Status:  " Connected",
		Profile: "Engineering ",
	})

	assert.Equal(t, "john", q.Search)
	assert.Equal(t, "admin", q.Role)
	assert.Equal(t, "connected", q.Status)
	assert.Equal(t, "engineering", q.Profile)
}

func TestNormalize_PageFlooredToOne(t *testing.T) {
	assert.Equal(t, 1, query.Normalize(query.Params{Page: "0"}).Page)
	assert.Equal(t, 1, query.Normalize(query.Params{Page: "-5"}).Page)
	assert.Equal(t, 1, query.Normalize(query.Params{Page: "abc"}).Page)
	assert.Equal(t, 7, query.Normalize(query.Params{Page: "7"}).Page)
}

func TestNormalize_PageSizeClamped(t *testing.T) {
	assert.Equal(t, 20, query.Normalize(query.Params{PageSize: "abc"}).PageSize)
	assert.Equal(t, 1, query.Normalize(query.Params{PageSize: "-1"}).PageSize)
	assert.Equal(t, 100, query.Normalize(query.Params{PageSize: "500"}).PageSize)
	assert.Equal(t, 50, query.Normalize(query.Params{PageSize: "50"}).PageSize)
}

func TestNormalize_SortParsing(t *testing.T) {
	q := query.Normalize(query.Params{Sort: "name:asc"})
	assert.Equal(t, "name", q.SortField)
	assert.False(t, q.SortDesc)

	q = query.Normalize(query.Params{Sort: "name:desc"})
	assert.Equal(t, "name", q.SortField)
	assert.True(t, q.SortDesc)

	// Любое направление кроме "asc" трактуется как убывание
	q = query.Normalize(query.Params{Sort: "name:ascending"})
	assert.True(t, q.SortDesc)

	q = query.Normalize(query.Params{Sort: "name"})
	assert.True(t, q.SortDesc)
}

func TestNormalize_Dates(t *testing.T) {
	q := query.Normalize(query.Params{CreatedFrom: "2025-03-01", CreatedTo: "2025-09-01"})
	if assert.NotNil(t, q.CreatedFrom) {
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *q.CreatedFrom)
	}
	assert.NotNil(t, q.CreatedTo)
}

func TestNormalize_InvalidDateMeansNoBound(t *testing.T) {
	q := query.Normalize(query.Params{CreatedFrom: "not-a-date", CreatedTo: "2025-13-45"})
	assert.Nil(t, q.CreatedFrom)
	assert.Nil(t, q.CreatedTo)
}

func TestParseDate_SupportedLayouts(t *testing.T) {
	assert.NotNil(t, query.ParseDate("2025-09-21T10:00:00Z"))
	assert.NotNil(t, query.ParseDate("2025-09-21"))
	assert.NotNil(t, query.ParseDate("SEP 21 2025"))
	assert.Nil(t, query.ParseDate(""))
}
