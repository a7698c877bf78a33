package stateful

import (
	"slices"
	"sort"
)

// Pagination defaults.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ArticleQuery selects articles. Filters are conjunctive; empty filters
// are ignored.
type ArticleQuery struct {
	Tag       string
	Author    string
	Favorited string
	Limit     int
	Offset    int
}

// normalize applies pagination defaults: limit <= 0 uses DefaultLimit,
// limits above MaxLimit are capped and a negative offset becomes 0.
func (q ArticleQuery) normalize() ArticleQuery {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

// filterArticles returns the articles matching every filter in q.
// The caller must hold the store lock.
func (s *Store) filterArticles(base []*Article, q ArticleQuery) []*Article {
	var favSet map[string]struct{}
	if q.Favorited != "" {
		uid, ok := s.byUsername[q.Favorited]
		if !ok {
			return nil
		}
		favSet = s.favorites[uid]
	}

	result := make([]*Article, 0, len(base))
	for _, a := range base {
		if q.Tag != "" && !slices.Contains(a.TagList, q.Tag) {
			continue
		}
		if q.Author != "" && a.Author.Username != q.Author {
			continue
		}
		if q.Favorited != "" {
			if _, ok := favSet[a.Slug]; !ok {
				continue
			}
		}
		result = append(result, a)
	}
	return result
}

// sortArticles orders articles newest first, breaking ties by slug.
func sortArticles(items []*Article) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].Slug < items[j].Slug
	})
}

// Paginate applies offset and limit to a slice of items.
// Returns the paginated slice and the total count before pagination.
// Negative offset is treated as 0 and a non-positive limit uses DefaultLimit.
func Paginate[T any](items []T, offset, limit int) ([]T, int) {
	total := len(items)

	start := max(offset, 0)
	if start > total {
		start = total
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > total-start {
		limit = total - start
	}
	end := start + limit

	return items[start:end], total
}
