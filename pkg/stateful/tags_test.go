package stateful

import (
	"testing"

	"github.com/civiclens/conduit-mock/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PopularTags(t *testing.T) {
	s := newTestStore(t)

	tags := s.PopularTags()
	require.Len(t, tags, MaxPopularTags)
	assert.Equal(t, []string{
		"civic-tech", "democracy",
		"activism", "community", "community-organizing", "digital-democracy",
		"digital-tools", "nextjs", "open-data", "open-government",
		"participatory-budgeting", "public-finance", "smart-cities",
		"technology", "tools",
	}, tags)
}

func TestStore_PopularTags_FollowsArticles(t *testing.T) {
	s := newTestStore(t)
	demo := userID(t, s, demoToken)

	for range 3 {
		_, err := s.CreateArticle(demo, NewArticle{
			Title: "Go", Description: "d", Body: "b",
			TagList: []string{"golang", "golang"},
		})
		require.NoError(t, err)
	}
	assert.Equal(t, "golang", s.PopularTags()[0])

	s.Reset()
	assert.NotContains(t, s.PopularTags(), "golang")
}

func TestStore_PopularTags_StaticFallback(t *testing.T) {
	s, err := New(&config.Seed{Tags: []string{"b", "a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, s.PopularTags())
}
