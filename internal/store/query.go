package store

import (
	"math"
	"strings"

	"github.com/phrazzld/keyring-api/internal/domain"
)

// Pagination defaults.
const (
	DefaultLimit = 10
	DefaultPage  = 1
	// MaxLimit caps the page size a caller may request.
	MaxLimit = 100
)

// Sortable user fields, named as clients send them.
const (
	SortFieldName      = "name"
	SortFieldEmail     = "email"
	SortFieldRole      = "role"
	SortFieldCreatedAt = "createdAt"
	SortFieldUpdatedAt = "updatedAt"
)

var sortableFields = map[string]struct{}{
	SortFieldName:      {},
	SortFieldEmail:     {},
	SortFieldRole:      {},
	SortFieldCreatedAt: {},
	SortFieldUpdatedAt: {},
}

// UserFilter holds exact-match filters. Nil fields impose no constraint and
// present fields are combined with AND.
type UserFilter struct {
	Name *string
	Role *domain.Role
}

// Matches reports whether u satisfies every present filter field.
func (f UserFilter) Matches(u *domain.User) bool {
	if f.Name != nil && u.Name != *f.Name {
		return false
	}
	if f.Role != nil && u.Role != *f.Role {
		return false
	}
	return true
}

// SortKey is one field of a multi-field ordering.
type SortKey struct {
	Field string
	Desc  bool
}

// QueryOptions controls ordering and pagination of List.
type QueryOptions struct {
	// SortBy uses the form "field:desc,field:asc". Direction defaults to asc.
	SortBy string
	Limit  int
	// Page is 1-indexed.
	Page int
}

// Normalize returns a copy of o with defaults applied to non-positive values
// and Limit capped at MaxLimit.
func (o QueryOptions) Normalize() QueryOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit > MaxLimit {
		o.Limit = MaxLimit
	}
	if o.Page <= 0 {
		o.Page = DefaultPage
	}
	return o
}

// Skip returns the number of documents that precede the requested page,
// saturating at math.MaxInt for pages far past the end.
func (o QueryOptions) Skip() int {
	if o.Page <= 1 || o.Limit <= 0 {
		return 0
	}
	if o.Page-1 > math.MaxInt/o.Limit {
		return math.MaxInt
	}
	return (o.Page - 1) * o.Limit
}

// SortKeys parses SortBy. Unknown fields and empty segments are dropped; a
// field named twice keeps its first position. When nothing usable remains the
// result is createdAt ascending.
func (o QueryOptions) SortKeys() []SortKey {
	var keys []SortKey
	seen := make(map[string]bool)

	for _, part := range strings.Split(o.SortBy, ",") {
		field, order, _ := strings.Cut(strings.TrimSpace(part), ":")
		if _, ok := sortableFields[field]; !ok || seen[field] {
			continue
		}
		seen[field] = true
		keys = append(keys, SortKey{Field: field, Desc: strings.EqualFold(order, "desc")})
	}

	if len(keys) == 0 {
		return []SortKey{{Field: SortFieldCreatedAt}}
	}
	return keys
}

// UserPage is one page of a List query.
type UserPage struct {
	Results      []*domain.User
	Page         int
	Limit        int
	TotalPages   int
	TotalResults int
}

// NewUserPage assembles a page, computing TotalPages as the ceiling of
// total/limit. opts must be normalized.
func NewUserPage(results []*domain.User, total int, opts QueryOptions) *UserPage {
	if results == nil {
		results = []*domain.User{}
	}
	totalPages := 0
	if opts.Limit > 0 {
		totalPages = total / opts.Limit
		if total%opts.Limit != 0 {
			totalPages++
		}
	}
	return &UserPage{
		Results:      results,
		Page:         opts.Page,
		Limit:        opts.Limit,
		TotalPages:   totalPages,
		TotalResults: total,
	}
}
