package engine

import (
	"net/http"
	"time"

	"github.com/civiclens/conduit-mock/pkg/conduit"
)

// AuthMode says how a route treats the Authorization header.
type AuthMode int

// Authentication modes.
const (
	// AuthNone ignores the caller.
	AuthNone AuthMode = iota
	// AuthOptional personalizes the response when a valid token is sent.
	AuthOptional
	// AuthRequired rejects anonymous callers with 401.
	AuthRequired
)

func (m AuthMode) String() string {
	switch m {
	case AuthOptional:
		return "optional"
	case AuthRequired:
		return "required"
	default:
		return "none"
	}
}

// Route is one entry of the dispatch table.
type Route struct {
	Name    string
	Method  string
	Pattern string
	Summary string
	Auth    AuthMode
	// Status is the status code of a successful response.
	Status int
	// Latency is the default simulated delay.
	Latency time.Duration
	// Request and Response are zero values of the wire envelopes, used to
	// describe the route. Request is nil for routes without a body.
	Request  any
	Response any
	// Query lists the supported query parameters.
	Query []string

	handle handlerFunc
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Routes returns the dispatch table in declaration order.
func Routes() []Route {
	return []Route{
		{
			Name: "login", Method: http.MethodPost, Pattern: "/users/login",
			Summary: "Authenticate with email and password",
			Auth:    AuthNone, Status: http.StatusOK, Latency: ms(300),
			Request: conduit.LoginRequest{}, Response: conduit.UserResponse{},
			handle: handleLogin,
		},
		{
			Name: "register", Method: http.MethodPost, Pattern: "/users",
			Summary: "Register a new user",
			Auth:    AuthNone, Status: http.StatusCreated, Latency: ms(300),
			Request: conduit.RegisterRequest{}, Response: conduit.UserResponse{},
			handle: handleRegister,
		},
		{
			Name: "currentUser", Method: http.MethodGet, Pattern: "/user",
			Summary: "Get the authenticated user",
			Auth:    AuthRequired, Status: http.StatusOK, Latency: ms(200),
			Response: conduit.UserResponse{},
			handle:   handleCurrentUser,
		},
		{
			Name: "updateUser", Method: http.MethodPut, Pattern: "/user",
			Summary: "Update the authenticated user",
			Auth:    AuthRequired, Status: http.StatusOK, Latency: ms(300),
			Request: conduit.UpdateUserRequest{}, Response: conduit.UserResponse{},
			handle: handleUpdateUser,
		},
		{
			Name: "getProfile", Method: http.MethodGet, Pattern: "/profiles/:username",
			Summary: "Get a profile",
			Auth:    AuthOptional, Status: http.StatusOK, Latency: ms(200),
			Response: conduit.ProfileResponse{},
			handle:   handleGetProfile,
		},
		{
			Name: "follow", Method: http.MethodPost, Pattern: "/profiles/:username/follow",
			Summary: "Follow a user",
			Auth:    AuthRequired, Status: http.StatusOK, Latency: ms(300),
			Response: conduit.ProfileResponse{},
			handle:   handleFollow,
		},
		{
			Name: "unfollow", Method: http.MethodDelete, Pattern: "/profiles/:username/follow",
			Summary: "Unfollow a user",
			Auth:    AuthRequired, Status: http.StatusOK, Latency: ms(300),
			Response: conduit.ProfileResponse{},
			handle:   handleUnfollow,
		},
		{
			Name: "listArticles", Method: http.MethodGet, Pattern: "/articles",
			Summary: "List articles, newest first",
			Auth:    AuthOptional, Status: http.StatusOK, Latency: ms(400),
			Response: conduit.ArticlesResponse{},
			Query:    []string{"tag", "author", "favorited", "limit", "offset"},
			handle:   handleListArticles,
		},
		{
			Name: "feed", Method: http.MethodGet, Pattern: "/articles/feed",
			Summary: "List articles by followed authors",
			Auth:    AuthRequired, Status: http.StatusOK, Latency: ms(400),
			Response: conduit.ArticlesResponse{},
			Query:    []string{"tag", "author", "favorited", "limit", "offset"},
			handle:   handleFeed,
		},
		{
			Name: "getArticle", Method: http.MethodGet, Pattern: "/articles/:slug",
			Summary: "Get an article",
			Auth:    AuthOptional, Status: http.StatusOK, Latency: ms(300),
			Response: conduit.ArticleResponse{},
			handle:   handleGetArticle,
		},
		{
			Name: "createArticle", Method: http.MethodPost, Pattern: "/articles",
			Summary: "Create an article",
			Auth:    AuthRequired, Status: http.StatusCreated, Latency: ms(500),
			Request: conduit.NewArticleRequest{}, Response: conduit.ArticleResponse{},
			handle: handleCreateArticle,
		},
		{
			Name: "updateArticle", Method: http.MethodPut, Pattern: "/articles/:slug",
			Summary: "Update an article",
			Auth:    AuthRequired, Status: http.StatusOK, Latency: ms(400),
			Request: conduit.UpdateArticleRequest{}, Response: conduit.ArticleResponse{},
			handle: handleUpdateArticle,
		},
		{
			Name: "deleteArticle", Method: http.MethodDelete, Pattern: "/articles/:slug",
			Summary: "Delete an article and its comments",
			Auth:    AuthRequired, Status: http.StatusOK, Latency: ms(300),
			Response: struct{}{},
			handle:   handleDeleteArticle,
		},
		{
			Name: "favorite", Method: http.MethodPost, Pattern: "/articles/:slug/favorite",
			Summary: "Favorite an article",
			Auth:    AuthRequired, Status: http.StatusOK, Latency: ms(300),
			Response: conduit.ArticleResponse{},
			handle:   handleFavorite,
		},
		{
			Name: "unfavorite", Method: http.MethodDelete, Pattern: "/articles/:slug/favorite",
			Summary: "Unfavorite an article",
			Auth:    AuthRequired, Status: http.StatusOK, Latency: ms(300),
			Response: conduit.ArticleResponse{},
			handle:   handleUnfavorite,
		},
		{
			Name: "listComments", Method: http.MethodGet, Pattern: "/articles/:slug/comments",
			Summary: "List the comments of an article, newest first",
			Auth:    AuthOptional, Status: http.StatusOK, Latency: ms(300),
			Response: conduit.CommentsResponse{},
			handle:   handleListComments,
		},
		{
			Name: "createComment", Method: http.MethodPost, Pattern: "/articles/:slug/comments",
			Summary: "Comment on an article",
			Auth:    AuthRequired, Status: http.StatusOK, Latency: ms(400),
			Request: conduit.NewCommentRequest{}, Response: conduit.CommentResponse{},
			handle: handleCreateComment,
		},
		{
			Name: "deleteComment", Method: http.MethodDelete, Pattern: "/articles/:slug/comments/:id",
			Summary: "Delete a comment",
			Auth:    AuthRequired, Status: http.StatusOK, Latency: ms(300),
			Response: struct{}{},
			handle:   handleDeleteComment,
		},
		{
			Name: "tags", Method: http.MethodGet, Pattern: "/tags",
			Summary: "List popular tags",
			Auth:    AuthNone, Status: http.StatusOK, Latency: ms(200),
			Response: conduit.TagsResponse{},
			handle:   handleTags,
		},
	}
}
