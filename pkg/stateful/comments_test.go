package stateful

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentIDs(list []CommentView) []int64 {
	out := make([]int64, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func TestStore_Comments(t *testing.T) {
	s := newTestStore(t)

	list := s.Comments(0, "how-to-build-civic-engagement-platforms")
	assert.Equal(t, []int64{2, 1}, commentIDs(list), "newest first")
	assert.Equal(t, "demouser", list[0].Author.Username)
	assert.Equal(t, "Demo user for CivicLens platform.", list[0].Author.Bio, "seeded snapshot bio")

	assert.Empty(t, s.Comments(0, "digital-democracy-tools-2024"))
	assert.NotNil(t, s.Comments(0, "missing"))
	assert.Empty(t, s.Comments(0, "missing"))
}

func TestStore_Comments_Following(t *testing.T) {
	s := newTestStore(t)
	jane := userID(t, s, janeToken)

	list := s.Comments(jane, "how-to-build-civic-engagement-platforms")
	require.Len(t, list, 2)
	for _, c := range list {
		assert.True(t, c.Following, "janedoe follows %s", c.Author.Username)
	}
}

func TestStore_AddComment(t *testing.T) {
	s := newTestStore(t)
	demo := userID(t, s, demoToken)
	slug := "digital-democracy-tools-2024"

	first, err := s.AddComment(demo, slug, "nice!")
	require.NoError(t, err)
	assert.Equal(t, int64(6), first.ID, "ids continue after the seeded maximum")
	assert.Equal(t, "nice!", first.Body)
	assert.Equal(t, fixedNow, first.CreatedAt)
	assert.Equal(t, "demouser", first.Author.Username)

	second, err := s.AddComment(demo, "participatory-budgeting-guide", "again")
	require.NoError(t, err)
	assert.Equal(t, int64(7), second.ID, "one sequence across all articles")

	third, err := s.AddComment(demo, slug, "later")
	require.NoError(t, err)
	assert.Equal(t, []int64{third.ID, first.ID}, commentIDs(s.Comments(0, slug)))
}

func TestStore_AddComment_Errors(t *testing.T) {
	s := newTestStore(t)
	demo := userID(t, s, demoToken)

	for _, body := range []string{"", "   ", "\n\t"} {
		_, err := s.AddComment(demo, "participatory-budgeting-guide", body)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr, "body %q", body)
		assert.Equal(t, map[string][]string{"body": {MsgBlank}}, verr.Fields())
	}
	assert.Len(t, s.Comments(0, "participatory-budgeting-guide"), 1)

	_, err := s.AddComment(demo, "missing", "hello")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "article", nf.Resource)

	_, err = s.AddComment(0, "participatory-budgeting-guide", "hello")
	var unauth *UnauthorizedError
	assert.ErrorAs(t, err, &unauth)
}

func TestStore_DeleteComment(t *testing.T) {
	s := newTestStore(t)
	john := userID(t, s, johnToken)
	demo := userID(t, s, demoToken)
	slug := "how-to-build-civic-engagement-platforms"

	err := s.DeleteComment(demo, slug, "1")
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, map[string][]string{"comment": {MsgNotAuthorized}}, forbidden.Fields())

	require.NoError(t, s.DeleteComment(john, slug, "1"))
	assert.Equal(t, []int64{2}, commentIDs(s.Comments(0, slug)))
	assert.Equal(t, 4, s.Overview().Comments)

	var nf *NotFoundError
	err = s.DeleteComment(john, slug, "1")
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "comment", nf.Resource)
}

func TestStore_DeleteComment_NotFound(t *testing.T) {
	tests := []struct {
		name         string
		slug         string
		id           string
		wantResource string
	}{
		{name: "missing article", slug: "missing", id: "1", wantResource: "article"},
		{name: "non-numeric id", slug: "how-to-build-civic-engagement-platforms", id: "abc", wantResource: "comment"},
		{name: "unknown id", slug: "how-to-build-civic-engagement-platforms", id: "999", wantResource: "comment"},
		{name: "comment of another article", slug: "how-to-build-civic-engagement-platforms", id: "5", wantResource: "comment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			john := userID(t, s, johnToken)

			err := s.DeleteComment(john, tt.slug, tt.id)
			var nf *NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, tt.wantResource, nf.Resource)
			assert.Equal(t, 5, s.Overview().Comments)
		})
	}
}
