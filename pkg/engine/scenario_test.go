package engine

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclens/conduit-mock/pkg/conduit"
)

// TestScenario_TwoAuthors walks through a session of two freshly
// registered users writing, following, favoriting and commenting.
func TestScenario_TwoAuthors(t *testing.T) {
	srv := newTestServer(t)

	register := func(name string) conduit.User {
		rec := call(t, srv, http.MethodPost, "/api/users", "", conduit.RegisterRequest{User: &conduit.NewUser{
			Username: name, Email: name + "@example.com", Password: "pw-" + name,
		}})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		return decodeBody[conduit.UserResponse](t, rec).User
	}
	alice := register("alice")
	bob := register("bob")

	// Same title twice gives two distinct slugs.
	var slugs []string
	for range 2 {
		rec := call(t, srv, http.MethodPost, "/api/articles", alice.Token, conduit.NewArticleRequest{
			Article: &conduit.NewArticle{Title: "Hello World", Description: "first", Body: "hi", TagList: []string{"intro"}},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		slugs = append(slugs, decodeBody[conduit.ArticleResponse](t, rec).Article.Slug)
	}
	assert.Equal(t, []string{"hello-world-6", "hello-world-7"}, slugs)

	// Bob's feed is empty until he follows alice.
	rec := call(t, srv, http.MethodGet, "/api/articles/feed", bob.Token, nil)
	assert.Equal(t, 0, decodeBody[conduit.ArticlesResponse](t, rec).ArticlesCount)

	rec = call(t, srv, http.MethodPost, "/api/profiles/alice/follow", bob.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, srv, http.MethodGet, "/api/articles/feed", bob.Token, nil)
	feed := decodeBody[conduit.ArticlesResponse](t, rec)
	assert.Equal(t, 2, feed.ArticlesCount)
	for _, a := range feed.Articles {
		assert.True(t, a.Author.Following)
	}

	// Favorite round trip.
	favPath := "/api/articles/" + slugs[0] + "/favorite"
	rec = call(t, srv, http.MethodPost, favPath, bob.Token, nil)
	a := decodeBody[conduit.ArticleResponse](t, rec).Article
	assert.True(t, a.Favorited)
	assert.Equal(t, 1, a.FavoritesCount)

	rec = call(t, srv, http.MethodGet, "/api/articles?favorited=bob", "", nil)
	assert.Equal(t, 1, decodeBody[conduit.ArticlesResponse](t, rec).ArticlesCount)

	rec = call(t, srv, http.MethodDelete, favPath, bob.Token, nil)
	a = decodeBody[conduit.ArticleResponse](t, rec).Article
	assert.False(t, a.Favorited)
	assert.Equal(t, 0, a.FavoritesCount)

	// Comments.
	commentsPath := "/api/articles/" + slugs[0] + "/comments"
	rec = call(t, srv, http.MethodPost, commentsPath, bob.Token, conduit.NewCommentRequest{Comment: &conduit.NewComment{Body: "   "}})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = call(t, srv, http.MethodPost, commentsPath, bob.Token, conduit.NewCommentRequest{Comment: &conduit.NewComment{Body: "nice!"}})
	require.Equal(t, http.StatusOK, rec.Code)
	comment := decodeBody[conduit.CommentResponse](t, rec).Comment
	assert.Equal(t, "bob", comment.Author.Username)

	// Deleting the article takes its comments with it.
	rec = call(t, srv, http.MethodDelete, "/api/articles/"+slugs[0], alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = call(t, srv, http.MethodGet, "/api/articles/"+slugs[0], "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(t, srv, http.MethodGet, commentsPath, "", nil)
	assert.JSONEq(t, `{"comments":[]}`, rec.Body.String())

	// The intro tag survives through the remaining article.
	rec = call(t, srv, http.MethodGet, "/api/tags", "", nil)
	assert.Contains(t, decodeBody[conduit.TagsResponse](t, rec).Tags, "intro")

	// Login returns the token issued at registration.
	rec = call(t, srv, http.MethodPost, "/api/users/login", "", conduit.LoginRequest{User: &conduit.LoginUser{
		Email: "alice@example.com", Password: "pw-alice",
	}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, alice.Token, decodeBody[conduit.UserResponse](t, rec).User.Token)
}
