// Package pagination implements cursor-based pagination. The cursor is the
// UUIDv7 identifier of the last item on the previous page: identifiers are
// time-ordered, so an exclusive bound on the identifier column slices the
// result set without the drift that offset pagination suffers under
// concurrent inserts.
package pagination

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	// DefaultLimit is the page size used when the client does not ask for one.
	DefaultLimit = 20
	// MaxLimit caps the page size regardless of what the client asks for.
	MaxLimit = 100
)

// Request holds cursor pagination parameters parsed from query strings.
type Request struct {
	Limit  int    `form:"limit" binding:"omitempty,min=1"`
	Cursor string `form:"cursor" binding:"omitempty,uuid"`
}

// Clamp forces Limit into [1, MaxLimit], applying the default when unset.
// Out-of-range limits are never an error.
func (r *Request) Clamp() {
	if r.Limit == 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	if r.Limit < 1 {
		r.Limit = 1
	}
}

// Page wraps one page of items with the cursor for the next page.
// NextCursor is set whenever the page is non-empty; callers combine it with
// HasNext to decide whether to follow it.
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	Limit      int     `json:"limit"`
}

// Scope returns a GORM scope that applies the cursor bound, the ordering,
// and the limit+1 fetch for the given request.
//
// The cursor bound is exclusive: strictly less than the cursor when
// descending, strictly greater when ascending. When secondaryColumn is
// non-empty the ordering is composite (secondaryColumn, idColumn), both in
// the same direction; the identifier breaks ties deterministically, so pages
// stay stable and non-overlapping even when many rows share the same
// secondary value. Filters must be applied to the query before this scope.
func Scope(req Request, idColumn string, desc bool, secondaryColumn string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if req.Cursor != "" {
			if desc {
				db = db.Where(idColumn+" < ?", req.Cursor)
			} else {
				db = db.Where(idColumn+" > ?", req.Cursor)
			}
		}

		dir := "ASC"
		if desc {
			dir = "DESC"
		}
		if secondaryColumn != "" {
			db = db.Order(fmt.Sprintf("%s %s, %s %s", secondaryColumn, dir, idColumn, dir))
		} else {
			db = db.Order(fmt.Sprintf("%s %s", idColumn, dir))
		}

		// Fetch one extra row to learn whether a next page exists.
		return db.Limit(req.Limit + 1)
	}
}

// BuildPage assembles a Page from the limit+1 candidate rows fetched via
// Scope. The extra row, if present, is discarded and marks HasNext; the next
// cursor is the identifier of the last item actually returned.
func BuildPage[T any](fetched []T, limit int, id func(T) string) Page[T] {
	hasNext := len(fetched) > limit
	if hasNext {
		fetched = fetched[:limit]
	}
	if fetched == nil {
		fetched = []T{}
	}

	var nextCursor *string
	if len(fetched) > 0 {
		last := id(fetched[len(fetched)-1])
		nextCursor = &last
	}

	return Page[T]{
		Items:      fetched,
		NextCursor: nextCursor,
		HasNext:    hasNext,
		Limit:      limit,
	}
}
