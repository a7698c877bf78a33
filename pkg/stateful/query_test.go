package stateful

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []int
	}{
		{name: "first page", offset: 0, limit: 2, want: []int{1, 2}},
		{name: "middle page", offset: 2, limit: 2, want: []int{3, 4}},
		{name: "short last page", offset: 4, limit: 2, want: []int{5}},
		{name: "offset past end", offset: 9, limit: 2, want: []int{}},
		{name: "negative offset", offset: -3, limit: 2, want: []int{1, 2}},
		{name: "default limit", offset: 0, limit: 0, want: []int{1, 2, 3, 4, 5}},
		{name: "huge limit", offset: 1, limit: math.MaxInt, want: []int{2, 3, 4, 5}},
		{name: "huge limit past end", offset: 9, limit: math.MaxInt, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total := Paginate(items, tt.offset, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(items), total)
		})
	}
}

func TestArticleQuery_Normalize(t *testing.T) {
	q := ArticleQuery{Limit: 1000, Offset: -1}.normalize()
	assert.Equal(t, MaxLimit, q.Limit)
	assert.Equal(t, 0, q.Offset)

	q = ArticleQuery{}.normalize()
	assert.Equal(t, DefaultLimit, q.Limit)
}
