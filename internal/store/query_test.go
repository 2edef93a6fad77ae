package store

import (
	"math"
	"testing"

	"github.com/phrazzld/keyring-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryOptionsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   QueryOptions
		want QueryOptions
	}{
		{"zero values", QueryOptions{}, QueryOptions{Limit: 10, Page: 1}},
		{"negative values", QueryOptions{Limit: -3, Page: -1}, QueryOptions{Limit: 10, Page: 1}},
		{"explicit values", QueryOptions{SortBy: "name", Limit: 5, Page: 3}, QueryOptions{SortBy: "name", Limit: 5, Page: 3}},
		{"limit at cap", QueryOptions{Limit: MaxLimit, Page: 1}, QueryOptions{Limit: MaxLimit, Page: 1}},
		{"limit above cap", QueryOptions{Limit: math.MaxInt / 2, Page: 3}, QueryOptions{Limit: MaxLimit, Page: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestQueryOptionsSkip(t *testing.T) {
	assert.Equal(t, 0, QueryOptions{Limit: 10, Page: 1}.Skip())
	assert.Equal(t, 10, QueryOptions{Limit: 10, Page: 2}.Skip())
	assert.Equal(t, 15, QueryOptions{Limit: 5, Page: 4}.Skip())

	t.Run("non-positive values", func(t *testing.T) {
		assert.Equal(t, 0, QueryOptions{Limit: 10, Page: 0}.Skip())
		assert.Equal(t, 0, QueryOptions{Limit: 0, Page: 4}.Skip())
	})

	t.Run("saturates instead of overflowing", func(t *testing.T) {
		assert.Equal(t, math.MaxInt, QueryOptions{Limit: math.MaxInt / 2, Page: 4}.Skip())
		assert.Equal(t, math.MaxInt, QueryOptions{Limit: MaxLimit, Page: math.MaxInt}.Skip())
	})
}

func TestQueryOptionsSortKeys(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		want   []SortKey
	}{
		{"empty defaults to createdAt", "", []SortKey{{Field: "createdAt"}}},
		{"single field asc", "name", []SortKey{{Field: "name"}}},
		{"explicit desc", "name:desc", []SortKey{{Field: "name", Desc: true}}},
		{
			"multiple fields",
			"role:desc, email:asc",
			[]SortKey{{Field: "role", Desc: true}, {Field: "email"}},
		},
		{"unknown fields dropped", "password:desc,name", []SortKey{{Field: "name"}}},
		{"only unknown fields", "secret:asc", []SortKey{{Field: "createdAt"}}},
		{"duplicates keep first", "name:desc,name:asc", []SortKey{{Field: "name", Desc: true}}},
		{"case-insensitive direction", "updatedAt:DESC", []SortKey{{Field: "updatedAt", Desc: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QueryOptions{SortBy: tt.sortBy}.SortKeys())
		})
	}
}

func TestNewUserPage(t *testing.T) {
	opts := QueryOptions{Limit: 10, Page: 2}

	page := NewUserPage(nil, 15, opts)
	require.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 15, page.TotalResults)

	assert.Equal(t, 0, NewUserPage(nil, 0, opts).TotalPages)
	assert.Equal(t, 1, NewUserPage(nil, 10, opts).TotalPages)
	assert.Equal(t, 2, NewUserPage(nil, 11, opts).TotalPages)

	huge := QueryOptions{Limit: math.MaxInt, Page: 1}
	assert.Equal(t, 1, NewUserPage(nil, 5, huge).TotalPages)
	assert.Equal(t, 1, NewUserPage(nil, math.MaxInt, huge).TotalPages)
}

func TestUserFilterMatches(t *testing.T) {
	u, err := domain.NewUser("a@x.com", "s", "Ann", domain.RoleAdmin)
	require.NoError(t, err)

	name := "Ann"
	other := "Bob"
	admin := domain.RoleAdmin
	user := domain.RoleUser

	assert.True(t, UserFilter{}.Matches(u))
	assert.True(t, UserFilter{Name: &name}.Matches(u))
	assert.True(t, UserFilter{Name: &name, Role: &admin}.Matches(u))
	assert.False(t, UserFilter{Name: &other}.Matches(u))
	assert.False(t, UserFilter{Name: &name, Role: &user}.Matches(u))
}
